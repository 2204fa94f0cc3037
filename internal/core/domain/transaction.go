package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus tracks whether a bank transaction has been posted.
type BookingStatus string

const (
	StatusOpen   BookingStatus = "open"
	StatusBooked BookingStatus = "booked"
)

// Party is a debtor or creditor as reported by the bank.
type Party struct {
	ID   *string `json:"id,omitempty"`
	Name *string `json:"name,omitempty"`
}

// TransactionCodes is the bank's classification of a transaction.
type TransactionCodes struct {
	Type      *string `json:"type,omitempty"`
	Domain    *string `json:"domain,omitempty"`
	Family    *string `json:"family,omitempty"`
	SubFamily *string `json:"subFamily,omitempty"`
}

// BankPayload is the raw record delivered by the bank for one transaction.
// Every field is optional; banks fill them inconsistently.
type BankPayload struct {
	Text             *string           `json:"text,omitempty"`
	PrimaryReference *string           `json:"primaryReference,omitempty"`
	ID               *string           `json:"id,omitempty"`
	Batch            *string           `json:"batch,omitempty"`
	EndToEndID       *string           `json:"endToEndId,omitempty"`
	OcrReference     *string           `json:"ocrReference,omitempty"`
	DebtorsPaymentID *string           `json:"debtorsPaymentId,omitempty"`
	DebtorText       *string           `json:"debtorText,omitempty"`
	DebtorMessage    *string           `json:"debtorMessage,omitempty"`
	CreditorText     *string           `json:"creditorText,omitempty"`
	CreditorMessage  *string           `json:"creditorMessage,omitempty"`
	Debtor           *Party            `json:"debtor,omitempty"`
	Creditor         *Party            `json:"creditor,omitempty"`
	Type             *string           `json:"type,omitempty"`
	TransactionCodes *TransactionCodes `json:"transactionCodes,omitempty"`
	References       []string          `json:"references,omitempty"`
}

// TransactionType prefers the explicit payload type, then the code type, then the code domain.
func (p *BankPayload) TransactionType() *string {
	if p == nil {
		return nil
	}
	if nonEmpty(p.Type) {
		return p.Type
	}
	if p.TransactionCodes == nil {
		return nil
	}
	if nonEmpty(p.TransactionCodes.Type) {
		return p.TransactionCodes.Type
	}
	if nonEmpty(p.TransactionCodes.Domain) {
		return p.TransactionCodes.Domain
	}
	return nil
}

// ReferenceList gathers every reference-like field, first occurrence wins.
func (p *BankPayload) ReferenceList() []string {
	if p == nil {
		return []string{}
	}
	candidates := []*string{
		p.PrimaryReference, p.DebtorMessage, p.DebtorText, p.CreditorMessage,
		p.CreditorText, p.OcrReference, p.DebtorsPaymentID, p.Batch,
	}
	seen := make(map[string]struct{})
	out := []string{}
	add := func(v string) {
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	for _, c := range candidates {
		if c != nil {
			add(*c)
		}
	}
	for _, r := range p.References {
		add(r)
	}
	return out
}

// BankTransaction is an imported bank line together with its processing state.
type BankTransaction struct {
	TransactionID    string          `json:"transactionId"`
	RunID            string          `json:"runId"`
	BookingDate      time.Time       `json:"bookingDate"`
	AccountID        string          `json:"accountId"`
	BankAccountName  string          `json:"bankAccountName"`
	StatusAccount    string          `json:"statusAccount"`
	Amount           decimal.Decimal `json:"amount"`
	Payload          *BankPayload    `json:"payload,omitempty"`
	ProcessingStatus BookingStatus   `json:"processingStatus"`
	AppliedRuleID    *int64          `json:"appliedRuleId,omitempty"`
}

// IsOutgoing reports whether money left the account.
func (t BankTransaction) IsOutgoing() bool {
	return t.Amount.IsNegative()
}

// IsOpen reports whether the transaction may still be posted. Unprocessed lines count as open.
func (t BankTransaction) IsOpen() bool {
	return t.ProcessingStatus == "" || t.ProcessingStatus == StatusOpen
}

func nonEmpty(s *string) bool {
	return s != nil && *s != ""
}
