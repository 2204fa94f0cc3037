package services

import (
	"context"

	"github.com/SscSPs/bank_rules_app/internal/core/domain"
	"github.com/SscSPs/bank_rules_app/internal/dto"
)

// TransactionSvcFacade defines the operations on imported bank transactions
type TransactionSvcFacade interface {
	// ListOpenTransactions returns a page of transactions still waiting to be posted.
	ListOpenTransactions(ctx context.Context, params dto.ListOpenTransactionsParams) (*dto.ListOpenTransactionsResponse, error)

	// ProcessTransaction posts an open transaction manually and marks it booked.
	ProcessTransaction(ctx context.Context, transactionID string, req dto.ProcessTransactionRequest, actor string) (*dto.ProcessTransactionResponse, error)
}

// ErpSubmitter hands posting lines to the ERP.
type ErpSubmitter interface {
	SubmitPosting(ctx context.Context, submission domain.PostingSubmission) (*domain.PostingReceipt, error)
}

// Notifier tells a recipient that a transaction was posted.
type Notifier interface {
	NotifyPosted(ctx context.Context, to string, txn domain.BankTransaction, receipt domain.PostingReceipt) error
}
