package posting

import "github.com/SscSPs/bank_rules_app/internal/core/domain"

// MaxTextLength is the longest posting text the ERP accepts.
const MaxTextLength = 50

// BuildPostingLines produces the balanced pair for a transaction: a status line
// on the transaction's own status account and a landing line on target.
// Incoming money debits the status account; outgoing money credits it.
// CPR and attachments ride on the landing line only.
func BuildPostingLines(txn domain.BankTransaction, target domain.AccountTarget, text string, cpr *string, attachments []domain.Attachment) []domain.PostingLine {
	amount := txn.Amount.Abs()
	text = Truncate(text, MaxTextLength)

	statusSide := domain.Debit
	if txn.IsOutgoing() {
		statusSide = domain.Credit
	}

	status := domain.PostingLine{
		Account: txn.StatusAccount,
		Side:    statusSide,
		Amount:  amount,
		Text:    text,
	}
	landing := domain.PostingLine{
		Account:          target.Primary,
		AccountSecondary: target.Secondary,
		AccountTertiary:  target.Tertiary,
		Side:             statusSide.Opposite(),
		Amount:           amount,
		Text:             text,
		Cpr:              cpr,
	}
	if len(attachments) > 0 {
		landing.Attachments = attachments
	}

	return []domain.PostingLine{status, landing}
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	return takeRunes(s, n)
}
