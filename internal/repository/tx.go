package repository

import (
	"context"
	"database/sql"

	"mentormatch/internal/database"
)

// querier is the subset of *sql.DB / *sql.Tx the repositories use, so
// every method works both standalone and inside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

// WithTx runs fn inside a single database transaction. The transaction
// travels in the context, so any repository method called with the
// derived context joins it. Rolls back on error, commits otherwise.
func WithTx(ctx context.Context, db *database.DB, fn func(ctx context.Context) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	return tx.Commit()
}

// q returns the ambient transaction if the context carries one, else
// the bare connection pool.
func q(ctx context.Context, db *database.DB) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}
