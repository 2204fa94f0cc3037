package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostingSide is the debit/credit side of a posting line.
type PostingSide string

const (
	Debit  PostingSide = "DEBIT"
	Credit PostingSide = "CREDIT"
)

// Opposite returns the other side.
func (s PostingSide) Opposite() PostingSide {
	if s == Debit {
		return Credit
	}
	return Debit
}

// AccountTarget is the account triple a posting lands on.
type AccountTarget struct {
	Primary   string
	Secondary *string
	Tertiary  *string
}

// PostingLine is one debit or credit instruction for the ERP.
type PostingLine struct {
	Account          string          `json:"account"`
	AccountSecondary *string         `json:"accountSecondary,omitempty"`
	AccountTertiary  *string         `json:"accountTertiary,omitempty"`
	Side             PostingSide     `json:"side"`
	Amount           decimal.Decimal `json:"amount"`
	Text             string          `json:"text"`
	Cpr              *string         `json:"cpr,omitempty"`
	Attachments      []Attachment    `json:"attachments,omitempty"`
}

// PostingSubmission is handed to the ERP collaborator.
type PostingSubmission struct {
	TransactionID string
	RunID         string
	BookingDate   time.Time
	Lines         []PostingLine
	Note          *string
}

// PostingReceipt is what the ERP collaborator reports back after accepting a submission.
type PostingReceipt struct {
	RequestID  string `json:"requestId"`
	Filename   string `json:"filename"`
	RemotePath string `json:"remotePath"`
	LineCount  int    `json:"lineCount"`
}
