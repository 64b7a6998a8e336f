package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/phrazzld/userbase-api/internal/platform/logger"
	"github.com/phrazzld/userbase-api/internal/redact"
)

// TxFn is the body of a transaction. Returning nil commits; returning an
// error or panicking rolls back.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// TxRunner runs a TxFn inside a transaction. Services depend on this rather
// than on *sql.DB so they can be exercised without a database.
type TxRunner interface {
	RunInTransaction(ctx context.Context, fn TxFn) error
}

// SQLTxRunner is the TxRunner backed by a *sql.DB.
type SQLTxRunner struct {
	db *sql.DB
}

// NewTxRunner returns a TxRunner that opens transactions on db.
func NewTxRunner(db *sql.DB) *SQLTxRunner {
	return &SQLTxRunner{db: db}
}

// RunInTransaction implements TxRunner.
func (r *SQLTxRunner) RunInTransaction(ctx context.Context, fn TxFn) error {
	return RunInTransaction(ctx, r.db, fn)
}

// RunInTransaction begins a transaction on db, runs fn and commits. Errors
// from fn come back unchanged unless the rollback also fails, in which case
// both are joined. A panic in fn rolls back and is re-raised.
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) error {
	log := logger.FromContext(ctx).With("component", "tx")

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("begin transaction", "error", redact.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("rollback after panic", "error", redact.Error(rbErr), "panic", p)
		}
		panic(p)
	}()

	if fnErr := fn(ctx, tx); fnErr != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("rollback", "error", redact.Error(rbErr))
			return errors.Join(fnErr, fmt.Errorf("rollback: %w", rbErr))
		}
		log.Debug("transaction rolled back", "cause", redact.Error(fnErr))
		return fnErr
	}

	if err := tx.Commit(); err != nil {
		log.Error("commit transaction", "error", redact.Error(err))
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
