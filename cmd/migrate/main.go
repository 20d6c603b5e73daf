package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"chem.app/api/common/logger"
	"chem.app/api/core/config"
	"chem.app/api/core/db"
)

const usage = `usage: migrate <command> [args]

commands:
  up          apply all pending migrations
  up-by-one   apply the next pending migration
  down        roll back the latest migration
  redo        roll back and reapply the latest migration
  status      print the status of every migration
  version     print the current schema version`

func main() {
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()

	cfg, err := config.Load(config.WithoutIdentity())
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Setup(cfg)

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	command := flag.Arg(0)
	if err := database.Migrate(ctx, command, flag.Args()[1:]...); err != nil {
		slog.ErrorContext(ctx, "migration failed", "command", command, "error", err)
		database.Close()
		os.Exit(1)
	}
	slog.InfoContext(ctx, "migration complete", "command", command)
}
