package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type contextKey string

const txKey contextKey = "db_tx"

// InTx runs fn inside a transaction. The transaction is stored in the context
// passed to fn so repositories pick it up through ConnFromContext; every
// repository call made with that context joins the same transaction. The
// transaction is rolled back if fn returns an error and committed otherwise.
func InTx(ctx context.Context, pool *pgxpool.Pool, fn func(ctx context.Context) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(context.WithValue(ctx, txKey, tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ConnFromContext retrieves the transaction from context, if any. Repositories
// fall back to the pool when it is nil.
func ConnFromContext(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(txKey).(pgx.Tx)
	return tx
}

// Runner lets services start transactions without holding the pool type
// directly. A Runner with a nil pool runs fn without a transaction, which is
// what service tests use.
type Runner struct {
	Pool *pgxpool.Pool
}

func (r Runner) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if r.Pool == nil {
		return fn(ctx)
	}
	return InTx(ctx, r.Pool, fn)
}
