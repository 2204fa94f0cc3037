package dto

import (
	"time"

	"github.com/SscSPs/bank_rules_app/internal/core/domain"
	"github.com/SscSPs/bank_rules_app/internal/models"
	"github.com/SscSPs/bank_rules_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

// RuleListItem is the flattened rule shown in the rule overview.
type RuleListItem struct {
	ID                         int64            `json:"id"`
	Type                       string           `json:"type"`
	Status                     string           `json:"status"`
	References                 []string         `json:"references"`
	Counterparties             []string         `json:"counterparties"`
	Classification             []string         `json:"classification"`
	MatchAmountMin             *decimal.Decimal `json:"matchAmountMin,omitempty"`
	MatchAmountMax             *decimal.Decimal `json:"matchAmountMax,omitempty"`
	AccountingPrimaryAccount   string           `json:"accountingPrimaryAccount"`
	AccountingSecondaryAccount *string          `json:"accountingSecondaryAccount,omitempty"`
	AccountingTertiaryAccount  *string          `json:"accountingTertiaryAccount,omitempty"`
	AccountingText             *string          `json:"accountingText,omitempty"`
	RelatedBankAccounts        []string         `json:"relatedBankAccounts"`
	RuleTags                   []string         `json:"ruleTags"`
	LastUsed                   *time.Time       `json:"lastUsed,omitempty"`
	CurrentVersionID           int              `json:"currentVersionId"`
	UpdatedAt                  time.Time        `json:"updatedAt"`
}

// ToRuleListItem flattens a list row. Match values are concatenated per
// category with empty values dropped; duplicates are kept.
func ToRuleListItem(row models.RuleListRow) RuleListItem {
	return RuleListItem{
		ID:                         row.ID,
		Type:                       row.Type,
		Status:                     row.Status,
		References:                 mapping.FlattenCategory(row.Matches, domain.CategoryReferences),
		Counterparties:             mapping.FlattenCategory(row.Matches, domain.CategoryCounterparties),
		Classification:             mapping.FlattenCategory(row.Matches, domain.CategoryClassification),
		MatchAmountMin:             row.MatchAmountMin,
		MatchAmountMax:             row.MatchAmountMax,
		AccountingPrimaryAccount:   row.PrimaryAccount,
		AccountingSecondaryAccount: row.SecondaryAccount,
		AccountingTertiaryAccount:  row.TertiaryAccount,
		AccountingText:             row.Text,
		RelatedBankAccounts:        relationList(row.BankAccounts),
		RuleTags:                   relationList(row.RuleTags),
		LastUsed:                   row.LastUsed,
		CurrentVersionID:           row.CurrentVersionID,
		UpdatedAt:                  row.UpdatedAt,
	}
}

// ToRuleListItems flattens every row.
func ToRuleListItems(rows []models.RuleListRow) []RuleListItem {
	items := make([]RuleListItem, len(rows))
	for i, row := range rows {
		items[i] = ToRuleListItem(row)
	}
	return items
}

func relationList(ids models.RelationIDs) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}
