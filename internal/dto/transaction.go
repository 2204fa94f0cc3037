package dto

import (
	"time"

	"github.com/SscSPs/bank_rules_app/internal/core/domain"
	"github.com/SscSPs/bank_rules_app/internal/utils/posting"
	"github.com/shopspring/decimal"
)

// ListOpenTransactionsParams are the query parameters of the open transaction list.
type ListOpenTransactionsParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken *string `form:"nextToken"`
}

// OpenTransactionResponse is one unposted bank transaction.
type OpenTransactionResponse struct {
	TransactionID    string               `json:"transactionId"`
	RunID            string               `json:"runId"`
	BookingDate      time.Time            `json:"bookingDate"`
	AccountID        string               `json:"accountId"`
	BankAccountName  string               `json:"bankAccountName"`
	Amount           decimal.Decimal      `json:"amount"`
	Counterpart      *string              `json:"counterpart,omitempty"`
	TransactionType  *string              `json:"transactionType,omitempty"`
	References       []string             `json:"references"`
	ProcessingStatus domain.BookingStatus `json:"processingStatus"`
}

// ListOpenTransactionsResponse is a page of open transactions.
type ListOpenTransactionsResponse struct {
	Transactions []OpenTransactionResponse `json:"transactions"`
	NextToken    *string                   `json:"nextToken,omitempty"`
}

// ToOpenTransactionResponse resolves the display fields of a transaction.
func ToOpenTransactionResponse(txn domain.BankTransaction) OpenTransactionResponse {
	status := txn.ProcessingStatus
	if status == "" {
		status = domain.StatusOpen
	}
	return OpenTransactionResponse{
		TransactionID:    txn.TransactionID,
		RunID:            txn.RunID,
		BookingDate:      txn.BookingDate,
		AccountID:        txn.AccountID,
		BankAccountName:  txn.BankAccountName,
		Amount:           txn.Amount,
		Counterpart:      posting.ResolveCounterpartyName(txn),
		TransactionType:  txn.Payload.TransactionType(),
		References:       txn.Payload.ReferenceList(),
		ProcessingStatus: status,
	}
}

// ProcessTransactionRequest is the operator's input for posting a transaction manually.
type ProcessTransactionRequest struct {
	PrimaryAccount   string              `json:"primaryAccount" validate:"required"`
	SecondaryAccount *string             `json:"secondaryAccount"`
	TertiaryAccount  *string             `json:"tertiaryAccount"`
	Text             *string             `json:"text" validate:"omitempty,max=255"`
	CprType          string              `json:"cprType" validate:"omitempty,oneof=none static dynamic"`
	CprNumber        *string             `json:"cprNumber"`
	NotifyTo         *string             `json:"notifyTo" validate:"omitempty,email"`
	Note             *string             `json:"note" validate:"omitempty,max=500"`
	Attachments      []AttachmentRequest `json:"attachments" validate:"dive"`
}

// ProcessTransactionResponse reports the accepted ERP submission.
type ProcessTransactionResponse struct {
	Success    bool   `json:"success"`
	RequestID  string `json:"requestId"`
	Filename   string `json:"filename"`
	RemotePath string `json:"remotePath"`
	LineCount  int    `json:"lineCount"`
}
