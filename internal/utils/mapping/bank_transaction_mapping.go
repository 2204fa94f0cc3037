package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/bank_rules_app/internal/core/domain"
	"github.com/SscSPs/bank_rules_app/internal/models"
)

// ToDomainBankTransaction converts a joined transaction row, parsing the raw bank payload.
func ToDomainBankTransaction(m models.BankTransaction) (domain.BankTransaction, error) {
	d := domain.BankTransaction{
		TransactionID:    m.TransactionID,
		RunID:            m.RunID,
		BookingDate:      m.BookingDate,
		AccountID:        m.AccountID,
		Amount:           m.Amount,
		ProcessingStatus: domain.StatusOpen,
		AppliedRuleID:    m.AppliedRuleID,
	}
	if m.BankAccountName != nil {
		d.BankAccountName = *m.BankAccountName
	}
	if m.StatusAccount != nil {
		d.StatusAccount = *m.StatusAccount
	}
	if m.ProcessingStatus != nil {
		d.ProcessingStatus = domain.BookingStatus(*m.ProcessingStatus)
	}
	if len(m.Payload) > 0 {
		var payload domain.BankPayload
		if err := json.Unmarshal(m.Payload, &payload); err != nil {
			return domain.BankTransaction{}, fmt.Errorf("unmarshal payload of transaction %s: %w", m.TransactionID, err)
		}
		d.Payload = &payload
	}
	return d, nil
}
