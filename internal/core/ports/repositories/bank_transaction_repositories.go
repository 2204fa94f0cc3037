package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bank_rules_app/internal/core/domain"
)

// ProcessFunc posts a locked, loaded transaction. Returning an error aborts
// processing and leaves the transaction unchanged.
type ProcessFunc func(ctx context.Context, txn domain.BankTransaction) error

// BankTransactionReader defines read operations for imported bank transactions
type BankTransactionReader interface {
	// FindBankTransactionByID loads one transaction with its payload and processing state.
	FindBankTransactionByID(ctx context.Context, transactionID string) (*domain.BankTransaction, error)

	// ListOpenTransactions retrieves a page of open or unprocessed transactions, newest booking date first.
	// It returns the transactions, a token for the next page, and an error.
	ListOpenTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.BankTransaction, *string, error)
}

// BankTransactionProcessor defines the guarded posting of a transaction
type BankTransactionProcessor interface {
	// ProcessBankTransaction locks the transaction row, hands it to fn and, when fn
	// succeeds, marks it booked by actor at now within the same database transaction.
	ProcessBankTransaction(ctx context.Context, transactionID string, actor string, now time.Time, fn ProcessFunc) error
}

// BankTransactionRepositoryFacade combines the bank transaction repository interfaces
type BankTransactionRepositoryFacade interface {
	BankTransactionReader
	BankTransactionProcessor
}

// BankTransactionRepositoryWithTx extends BankTransactionRepositoryFacade with transaction capabilities
type BankTransactionRepositoryWithTx interface {
	BankTransactionRepositoryFacade
	TransactionManager
}
