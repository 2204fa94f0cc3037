package posting

import (
	"regexp"
	"strings"

	"github.com/SscSPs/bank_rules_app/internal/core/domain"
)

// cprPattern matches a calendar-valid DDMMYY date, Feb 29 only in leap years,
// followed by optional dashes and four digits.
var cprPattern = regexp.MustCompile(
	`(((0[1-9]|[12][0-9]|3[01])(0[13578]|10|12)(\d{2}))` +
		`|(([0][1-9]|[12][0-9]|30)(0[469]|11)(\d{2}))` +
		`|((0[1-9]|1[0-9]|2[0-8])(02)(\d{2}))` +
		`|((29)(02)(00))` +
		`|((29)(02)([2468][048]))` +
		`|((29)(02)([13579][26])))` +
		`[-]*\d{4}`)

// ExtractCpr returns the first CPR number found in text, without separators.
func ExtractCpr(text string) *string {
	match := cprPattern.FindString(text)
	if match == "" {
		return nil
	}
	cpr := strings.ReplaceAll(match, "-", "")
	return &cpr
}

// ExtractCprFromTransaction scans the payload's free-text fields in priority order.
func ExtractCprFromTransaction(txn domain.BankTransaction) *string {
	if txn.Payload == nil {
		return nil
	}
	p := txn.Payload
	for _, field := range []*string{p.Text, p.PrimaryReference, p.DebtorMessage, p.CreditorMessage, p.DebtorText, p.CreditorText} {
		if field == nil || *field == "" {
			continue
		}
		if cpr := ExtractCpr(*field); cpr != nil {
			return cpr
		}
	}
	return nil
}

// ResolveCpr applies the manual CPR policy: static uses the operator's number
// as given, dynamic extracts from the transaction, none never attaches one.
func ResolveCpr(cprType domain.CprType, number *string, txn domain.BankTransaction) *string {
	switch cprType {
	case domain.CprStatic:
		return number
	case domain.CprDynamic:
		return ExtractCprFromTransaction(txn)
	default:
		return nil
	}
}
