package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager is implemented by repositories that can group several
// writes, such as a rule row and its version snapshot, into one database transaction.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback is safe to defer after Commit; a finished transaction is left alone.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
