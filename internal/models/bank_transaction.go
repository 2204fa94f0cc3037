package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransaction is a bank_transaction row joined with its account, payload and processing state.
type BankTransaction struct {
	TransactionID    string          `db:"id"`
	RunID            string          `db:"run_id"`
	BookingDate      time.Time       `db:"booking_date"`
	AccountID        string          `db:"account_id"`
	BankAccountName  *string         `db:"bank_account_name"`
	StatusAccount    *string         `db:"status_account"`
	Amount           decimal.Decimal `db:"amount"`
	Payload          []byte          `db:"raw"`
	ProcessingStatus *string         `db:"status"`
	AppliedRuleID    *int64          `db:"rule_applied"`
}
