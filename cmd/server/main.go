package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"chem.app/api/common/id"
	"chem.app/api/common/logger"
	"chem.app/api/common/otel"
	"chem.app/api/core/config"
	"chem.app/api/core/db"
	"chem.app/api/internal/http/middleware"
	httprouter "chem.app/api/internal/http/router"
	"chem.app/api/internal/identity"
	"chem.app/api/internal/notify"
	"chem.app/api/internal/service"
	"chem.app/api/internal/store"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg)
	if err != nil {
		// slog is not set up yet when OTel fails
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "chem api starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(cfg.NodeID); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err, "node_id", cfg.NodeID)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	broker, closeBroker, err := setupBroker(ctx, cfg.Redis)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer closeBroker()

	provider, err := setupIdentity(ctx, cfg)
	if err != nil {
		slog.ErrorContext(ctx, "failed to initialize firebase", "error", err)
		os.Exit(1)
	}

	services := service.NewServices(
		store.NewStores(database.Conn()),
		service.NewTxRunner(database),
		broker,
		provider,
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services, broker, provider)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Notification streams stay open; handlers set their own write deadlines.
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Cancelling the base context ends open notification streams.
	stop()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

// setupBroker relays notifications through Redis when configured so every
// replica sees every event; otherwise events stay in process.
func setupBroker(ctx context.Context, cfg config.RedisConfig) (notify.Broker, func(), error) {
	hub := notify.NewHub(notify.DefaultBuffer)
	if !cfg.Enabled() {
		slog.InfoContext(ctx, "redis disabled, notifications are local to this replica")
		return hub, func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("pinging redis: %w", err)
	}
	slog.InfoContext(ctx, "redis connected", "channel", cfg.NotifyChannel)

	broker := notify.NewRedisBroker(client, cfg.NotifyChannel, hub)
	go func() {
		if err := broker.Run(ctx); err != nil && ctx.Err() == nil {
			slog.ErrorContext(ctx, "notification relay stopped", "error", err)
		}
	}()

	return broker, func() { _ = client.Close() }, nil
}

func setupIdentity(ctx context.Context, cfg config.Config) (identity.Provider, error) {
	if !cfg.Firebase.Enabled() {
		slog.WarnContext(ctx, "firebase not configured, all authenticated requests will be rejected")
		return identity.Unavailable{}, nil
	}
	return identity.NewFirebase(ctx, cfg.Firebase)
}

func setupRouter(cfg config.Config, services *service.Services, broker notify.Broker, provider identity.Provider) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	httprouter.SetupRoutes(router, services, broker, provider, httprouter.RouterConfig{
		ProtectResources:  cfg.HTTP.ProtectResources,
		SessionCookieName: cfg.HTTP.SessionCookieName,
		SecureCookies:     cfg.IsProduction(),
		AllowedOrigins:    cfg.HTTP.AllowedOrigins,
	})

	return router
}

const banner = `
 ██████╗██╗  ██╗███████╗███╗   ███╗     █████╗ ██████╗ ██╗
██╔════╝██║  ██║██╔════╝████╗ ████║    ██╔══██╗██╔══██╗██║
██║     ███████║█████╗  ██╔████╔██║    ███████║██████╔╝██║
██║     ██╔══██║██╔══╝  ██║╚██╔╝██║    ██╔══██║██╔═══╝ ██║
╚██████╗██║  ██║███████╗██║ ╚═╝ ██║    ██║  ██║██║     ██║
 ╚═════╝╚═╝  ╚═╝╚══════╝╚═╝     ╚═╝    ╚═╝  ╚═╝╚═╝     ╚═╝
`
