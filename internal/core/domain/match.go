package domain

import "strings"

// MatchCategory groups the match fields a rule condition can target.
type MatchCategory string

const (
	CategoryReferences     MatchCategory = "references"
	CategoryCounterparties MatchCategory = "counterparties"
	CategoryClassification MatchCategory = "classification"
)

// MatchField names one underlying match column.
type MatchField string

// Reference fields.
const (
	FieldText             MatchField = "match_text"
	FieldPrimaryReference MatchField = "match_primary_reference"
	FieldID               MatchField = "match_id"
	FieldBatch            MatchField = "match_batch"
	FieldEndToEndID       MatchField = "match_end_to_end_id"
	FieldOcrReference     MatchField = "match_ocr_reference"
	FieldDebtorsPaymentID MatchField = "match_debtors_payment_id"
	FieldDebtorText       MatchField = "match_debtor_text"
	FieldDebtorMessage    MatchField = "match_debtor_message"
	FieldCreditorText     MatchField = "match_creditor_text"
	FieldCreditorMessage  MatchField = "match_creditor_message"
)

// Counterparty fields.
const (
	FieldDebtorID     MatchField = "match_debtor_id"
	FieldDebtorName   MatchField = "match_debtor_name"
	FieldCreditorID   MatchField = "match_creditor_id"
	FieldCreditorName MatchField = "match_creditor_name"
)

// Classification fields.
const (
	FieldType        MatchField = "match_type"
	FieldTxDomain    MatchField = "match_tx_domain"
	FieldTxFamily    MatchField = "match_tx_family"
	FieldTxSubFamily MatchField = "match_tx_sub_family"
)

// Gate is the combinator a client sends with a match entry. It is not stored.
type Gate string

const (
	GateAnd Gate = "AND"
	GateOr  Gate = "OR"

	// DefaultGate is what every decoded entry carries.
	DefaultGate = GateAnd
)

// MatchEntry is one user-facing match condition.
type MatchEntry struct {
	Category MatchCategory `json:"category"`
	Value    string        `json:"value"`
	Fields   []MatchField  `json:"fields,omitempty"` // nil means every field of the category
	Gate     Gate          `json:"gate"`
}

// MatchCategories lists the categories in their fixed order.
var MatchCategories = []MatchCategory{CategoryReferences, CategoryCounterparties, CategoryClassification}

var categoryFields = map[MatchCategory][]MatchField{
	CategoryReferences: {
		FieldText, FieldPrimaryReference, FieldID, FieldBatch, FieldEndToEndID, FieldOcrReference,
		FieldDebtorsPaymentID, FieldDebtorText, FieldDebtorMessage, FieldCreditorText, FieldCreditorMessage,
	},
	CategoryCounterparties: {FieldDebtorID, FieldDebtorName, FieldCreditorID, FieldCreditorName},
	CategoryClassification: {FieldType, FieldTxDomain, FieldTxFamily, FieldTxSubFamily},
}

// older clients sent Danish labels for the same three categories
var categoryAliases = map[string]MatchCategory{
	"references":     CategoryReferences,
	"referencer":     CategoryReferences,
	"counterparties": CategoryCounterparties,
	"modparter":      CategoryCounterparties,
	"modpart":        CategoryCounterparties,
	"classification": CategoryClassification,
	"klassifikation": CategoryClassification,
}

// ParseMatchCategory normalizes a category label, accepting the legacy Danish labels.
func ParseMatchCategory(label string) (MatchCategory, bool) {
	c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(label))]
	return c, ok
}

// Fields returns the ordered fields of the category. The slice is a copy.
func (c MatchCategory) Fields() []MatchField {
	fields := categoryFields[c]
	out := make([]MatchField, len(fields))
	copy(out, fields)
	return out
}

// IsValid reports whether c is one of the known categories.
func (c MatchCategory) IsValid() bool {
	_, ok := categoryFields[c]
	return ok
}

// Contains reports whether f belongs to the category.
func (c MatchCategory) Contains(f MatchField) bool {
	for _, field := range categoryFields[c] {
		if field == f {
			return true
		}
	}
	return false
}

// AllMatchFields returns every match field, grouped by category in category order.
func AllMatchFields() []MatchField {
	var all []MatchField
	for _, c := range MatchCategories {
		all = append(all, categoryFields[c]...)
	}
	return all
}
