package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"chem.app/api/core/db"
	"chem.app/api/internal/query"
)

// PostgreSQL SQLSTATE codes translated into store sentinels.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// translate maps driver errors onto the store sentinels, keeping the
// constraint name for logs.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", ErrConflict, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", ErrReference, pgErr.ConstraintName)
		case pgCheckViolation:
			return fmt.Errorf("%w: %s", ErrCheck, pgErr.ConstraintName)
		}
	}
	return err
}

// list runs the windowed select for c. Items and total come from the same
// statement; an empty window falls back to a plain count so the total is
// still reported.
func list[T any](ctx context.Context, q db.DBTX, t query.Table, c query.Criteria, scan func(pgx.Row, ...any) (*T, error)) (query.Result[T], error) {
	res := query.Result[T]{Items: []T{}}

	stmt, err := t.Select(c)
	if err != nil {
		return res, err
	}

	rows, err := q.Query(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return res, translate(err)
	}
	for rows.Next() {
		item, err := scan(rows, &res.Total)
		if err != nil {
			rows.Close()
			return res, err
		}
		res.Items = append(res.Items, *item)
	}
	// The connection stays busy until rows are closed, which matters inside a transaction.
	rows.Close()
	if err := rows.Err(); err != nil {
		return res, translate(err)
	}

	if len(res.Items) > 0 {
		return res, nil
	}

	stmt, err = t.Count(c)
	if err != nil {
		return res, err
	}
	if err := q.QueryRow(ctx, stmt.SQL, stmt.Args...).Scan(&res.Total); err != nil {
		return res, translate(err)
	}
	return res, nil
}

// assignments accumulates the SET clause of a partial update.
type assignments struct {
	cols []string
	args []any
}

func (a *assignments) set(col string, v any) {
	a.args = append(a.args, v)
	a.cols = append(a.cols, col+" = $"+strconv.Itoa(len(a.args)))
}

func (a *assignments) empty() bool {
	return len(a.cols) == 0
}

// update builds "UPDATE table SET ... WHERE id = $n RETURNING returning".
func (a *assignments) update(table string, id int64, returning []string) (string, []any) {
	args := append(a.args, id)
	sql := fmt.Sprintf("UPDATE %s SET %s, updated_at = now() WHERE id = $%d RETURNING %s",
		table, strings.Join(a.cols, ", "), len(args), strings.Join(returning, ", "))
	return sql, args
}

func columns(alias string, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = alias + "." + c
	}
	return out
}
