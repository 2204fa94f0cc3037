package posting_test

import (
	"testing"

	"github.com/SscSPs/bank_rules_app/internal/core/domain"
	"github.com/SscSPs/bank_rules_app/internal/utils/posting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func txnWith(amount int64, payload *domain.BankPayload) domain.BankTransaction {
	return domain.BankTransaction{
		TransactionID: "tx-42",
		Amount:        decimal.NewFromInt(amount),
		StatusAccount: "9000",
		Payload:       payload,
	}
}

func TestResolvePostingText(t *testing.T) {
	tests := []struct {
		name     string
		template *string
		txn      domain.BankTransaction
		want     string
	}{
		{
			name: "BDP marker takes 18 characters and strips whitespace",
			txn:  txnWith(100, &domain.BankPayload{DebtorMessage: strPtr("BDP202509ABCDEFGH")}),
			want: "BDP202509ABCDEFGH",
		},
		{
			name:     "BDP marker in the middle wins over template",
			template: strPtr("Rent"),
			txn:      txnWith(100, &domain.BankPayload{Text: strPtr("ref BDP 2025 09 AB CDEFGHIJKLMNOP")}),
			want:     "BDP202509ABCDE",
		},
		{
			name: "KSD marker appends counterparty",
			txn: txnWith(100, &domain.BankPayload{
				CreditorMessage: strPtr("KSD123456789012345678 tail"),
				Debtor:          &domain.Party{Name: strPtr("ACME")},
			}),
			want: "KSD123456789012345678ACME",
		},
		{
			name: "no template falls back to payload text",
			txn:  txnWith(100, &domain.BankPayload{Text: strPtr("Office rent"), PrimaryReference: strPtr("REF")}),
			want: "Office rent",
		},
		{
			name: "no template falls back to primary reference",
			txn:  txnWith(100, &domain.BankPayload{PrimaryReference: strPtr("REF")}),
			want: "REF",
		},
		{
			name: "no template and no payload falls back to transaction id",
			txn:  txnWith(100, nil),
			want: "tx-42",
		},
		{
			name:     "text from bank sentinel",
			template: strPtr("text from bank"),
			txn:      txnWith(100, &domain.BankPayload{Text: strPtr("Office rent")}),
			want:     "Office rent",
		},
		{
			name:     "legacy sentinel is normalized",
			template: strPtr("  Tekst fra bank "),
			txn:      txnWith(100, &domain.BankPayload{Text: strPtr("Office rent")}),
			want:     "Office rent",
		},
		{
			name:     "sender from bank uses counterparty",
			template: strPtr("Sender from bank"),
			txn:      txnWith(-100, &domain.BankPayload{Text: strPtr("t"), Creditor: &domain.Party{Name: strPtr("Utility Co")}}),
			want:     "Utility Co",
		},
		{
			name:     "sender from bank without counterparty falls back to text",
			template: strPtr("sender from bank"),
			txn:      txnWith(-100, &domain.BankPayload{Text: strPtr("t")}),
			want:     "t",
		},
		{
			name:     "sender from bank with nothing falls back to id",
			template: strPtr("sender from bank"),
			txn:      txnWith(-100, nil),
			want:     "tx-42",
		},
		{
			name:     "other template is verbatim",
			template: strPtr(" Monthly rent "),
			txn:      txnWith(100, &domain.BankPayload{Text: strPtr("Office rent")}),
			want:     " Monthly rent ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, posting.ResolvePostingText(tt.template, tt.txn))
		})
	}
}

func TestResolveCounterpartyName(t *testing.T) {
	payload := &domain.BankPayload{
		Debtor:          &domain.Party{ID: strPtr("D-1")},
		DebtorText:      strPtr("debtor text"),
		Creditor:        &domain.Party{Name: strPtr("Creditor Name")},
		CreditorMessage: strPtr("creditor message"),
	}

	assert.Equal(t, "debtor text", *posting.ResolveCounterpartyName(txnWith(0, payload)))
	assert.Equal(t, "Creditor Name", *posting.ResolveCounterpartyName(txnWith(-1, payload)))

	onlyID := &domain.BankPayload{Creditor: &domain.Party{ID: strPtr("C-9")}}
	assert.Equal(t, "C-9", *posting.ResolveCounterpartyName(txnWith(-1, onlyID)))

	assert.Nil(t, posting.ResolveCounterpartyName(txnWith(5, &domain.BankPayload{})))
	assert.Nil(t, posting.ResolveCounterpartyName(txnWith(5, nil)))
}
