package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/SscSPs/bank_rules_app/internal/apperrors"
	"github.com/SscSPs/bank_rules_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_rules_app/internal/core/ports/repositories"
	"github.com/SscSPs/bank_rules_app/internal/models"
	"github.com/SscSPs/bank_rules_app/internal/utils/mapping"
	"github.com/SscSPs/bank_rules_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultPageSize = 50

type PgxBankTransactionRepository struct {
	BaseRepository
}

// newPgxBankTransactionRepository creates a new repository for imported bank transactions.
func newPgxBankTransactionRepository(pool *pgxpool.Pool) portsrepo.BankTransactionRepositoryWithTx {
	return &PgxBankTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxBankTransactionRepository implements portsrepo.BankTransactionRepositoryWithTx
var _ portsrepo.BankTransactionRepositoryWithTx = (*PgxBankTransactionRepository)(nil)

const bankTransactionSelect = `
	SELECT t.id, t.run_id, t.booking_date, t.account_id, ba.name, ba.status_account,
	       t.amount, bp.raw, tp.status, tp.rule_applied
	FROM bank_transaction t
	LEFT JOIN bank_account ba ON ba.id = t.account_id
	LEFT JOIN banking_payload bp ON bp.id = t.payload_id
	LEFT JOIN transaction_processing tp ON tp.transaction_id = t.id`

func scanBankTransaction(row pgx.Row) (models.BankTransaction, error) {
	var m models.BankTransaction
	err := row.Scan(
		&m.TransactionID,
		&m.RunID,
		&m.BookingDate,
		&m.AccountID,
		&m.BankAccountName,
		&m.StatusAccount,
		&m.Amount,
		&m.Payload,
		&m.ProcessingStatus,
		&m.AppliedRuleID,
	)
	return m, err
}

// FindBankTransactionByID retrieves one transaction with its payload and processing state.
func (r *PgxBankTransactionRepository) FindBankTransactionByID(ctx context.Context, transactionID string) (*domain.BankTransaction, error) {
	m, err := scanBankTransaction(r.Pool.QueryRow(ctx, bankTransactionSelect+` WHERE t.id = $1`, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("transaction " + transactionID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction "+transactionID, err)
	}
	txn, err := mapping.ToDomainBankTransaction(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode transaction "+transactionID, err)
	}
	return &txn, nil
}

// ListOpenTransactions retrieves open or unprocessed transactions using keyset pagination
// on (booking_date, id), newest first.
func (r *PgxBankTransactionRepository) ListOpenTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.BankTransaction, *string, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	query := bankTransactionSelect + ` WHERE (tp.status IS NULL OR tp.status = 'open')`
	args := []any{}

	if nextToken != nil && *nextToken != "" {
		cursor, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", fmt.Errorf("%w: %v", apperrors.ErrValidation, decodeErr))
		}
		query += ` AND (t.booking_date, t.id) < ($1, $2)`
		args = append(args, cursor.BookingDate, cursor.TransactionID)
	}

	query += ` ORDER BY t.booking_date DESC, t.id DESC LIMIT $` + strconv.Itoa(len(args)+1)
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query open transactions", err)
	}
	defer rows.Close()

	txns := make([]domain.BankTransaction, 0, fetchLimit)
	for rows.Next() {
		m, err := scanBankTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		txn, err := mapping.ToDomainBankTransaction(m)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to decode transaction "+m.TransactionID, err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	var next *string
	if len(txns) > limit {
		last := txns[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{BookingDate: last.BookingDate, TransactionID: last.TransactionID})
		next = &token
		txns = txns[:limit]
	}
	return txns, next, nil
}

// ProcessBankTransaction runs fn under a row lock on the transaction and marks it
// booked in the same database transaction when fn succeeds.
func (r *PgxBankTransactionRepository) ProcessBankTransaction(ctx context.Context, transactionID string, actor string, now time.Time, fn portsrepo.ProcessFunc) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m, err := scanBankTransaction(tx.QueryRow(ctx, bankTransactionSelect+` WHERE t.id = $1 FOR UPDATE OF t`, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError("transaction " + transactionID + " not found")
		}
		return apperrors.NewAppError(500, "failed to lock transaction "+transactionID, err)
	}
	txn, err := mapping.ToDomainBankTransaction(m)
	if err != nil {
		return apperrors.NewAppError(500, "failed to decode transaction "+transactionID, err)
	}

	if err := fn(ctx, txn); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO transaction_processing (transaction_id, status, rule_applied, processed_at, processed_by)
		VALUES ($1, 'booked', NULL, $2, $3)
		ON CONFLICT (transaction_id) DO UPDATE
		SET status = 'booked', rule_applied = NULL, processed_at = EXCLUDED.processed_at, processed_by = EXCLUDED.processed_by`,
		transactionID, now, actor)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark transaction "+transactionID+" booked", err)
	}

	return r.Commit(ctx, tx)
}
