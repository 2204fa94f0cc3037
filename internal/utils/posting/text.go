package posting

import (
	"strings"
	"unicode"

	"github.com/SscSPs/bank_rules_app/internal/core/domain"
)

const (
	// SentinelTextFromBank asks for the bank's own free text.
	SentinelTextFromBank = "text from bank"
	// SentinelSenderFromBank asks for the counterparty name.
	SentinelSenderFromBank = "sender from bank"

	bdpMarker = "BDP"
	bdpLength = 18
	ksdMarker = "KSD"
	ksdLength = 21
)

// legacy template values saved before the vocabulary was translated
var (
	textFromBankAliases   = []string{SentinelTextFromBank, "tekst fra bank"}
	senderFromBankAliases = []string{SentinelSenderFromBank, "afsender fra bank"}
)

// ResolvePostingText picks the free text for a posting. Bank references with a
// BDP or KSD marker win over any template; otherwise the template decides.
func ResolvePostingText(template *string, txn domain.BankTransaction) string {
	p := payloadOf(txn)
	message := firstNonEmpty(p.DebtorMessage, p.CreditorMessage, p.Text)

	if i := strings.Index(message, bdpMarker); i >= 0 {
		return stripSpace(takeRunes(message[i:], bdpLength))
	}
	if i := strings.Index(message, ksdMarker); i >= 0 {
		ref := takeRunes(message[i:], ksdLength)
		if name := ResolveCounterpartyName(txn); name != nil {
			ref += *name
		}
		return strings.TrimSpace(ref)
	}

	if template == nil || *template == "" {
		return bankText(p, txn)
	}

	normalized := strings.ToLower(strings.TrimSpace(*template))
	switch {
	case oneOf(normalized, textFromBankAliases):
		return bankText(p, txn)
	case oneOf(normalized, senderFromBankAliases):
		if name := ResolveCounterpartyName(txn); name != nil {
			return *name
		}
		if text := firstNonEmpty(p.Text); text != "" {
			return text
		}
		return txn.TransactionID
	}
	return *template
}

// ResolveCounterpartyName returns the other party of the transaction: the
// creditor for outgoing money, the debtor for incoming.
func ResolveCounterpartyName(txn domain.BankTransaction) *string {
	if txn.Payload == nil {
		return nil
	}
	p := txn.Payload

	party, text, message := p.Debtor, p.DebtorText, p.DebtorMessage
	if txn.IsOutgoing() {
		party, text, message = p.Creditor, p.CreditorText, p.CreditorMessage
	}
	if party == nil {
		party = &domain.Party{}
	}

	if name := firstNonEmpty(party.Name, text, message, party.ID); name != "" {
		return &name
	}
	return nil
}

func bankText(p *domain.BankPayload, txn domain.BankTransaction) string {
	if text := firstNonEmpty(p.Text, p.PrimaryReference); text != "" {
		return text
	}
	return txn.TransactionID
}

func payloadOf(txn domain.BankTransaction) *domain.BankPayload {
	if txn.Payload == nil {
		return &domain.BankPayload{}
	}
	return txn.Payload
}

func firstNonEmpty(values ...*string) string {
	for _, v := range values {
		if v != nil && *v != "" {
			return *v
		}
	}
	return ""
}

func takeRunes(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func oneOf(s string, set []string) bool {
	for _, x := range set {
		if s == x {
			return true
		}
	}
	return false
}
