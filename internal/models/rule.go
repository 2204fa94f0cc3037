package models

import (
	"time"

	"github.com/SscSPs/bank_rules_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MatchColumns is the flat storage form of a rule's match conditions: one text[] per match column.
type MatchColumns map[domain.MatchField][]string

// Rule mirrors a row of the rule table plus its relation rows.
type Rule struct {
	ID                  int64            `db:"id"`
	Type                string           `db:"type"`
	Status              string           `db:"status"`
	Matches             MatchColumns     // match_* columns
	MatchAmountMin      *decimal.Decimal `db:"match_amount_min"`
	MatchAmountMax      *decimal.Decimal `db:"match_amount_max"`
	PrimaryAccount      string           `db:"accounting_primary_account"`
	SecondaryAccount    *string          `db:"accounting_secondary_account"`
	TertiaryAccount     *string          `db:"accounting_tertiary_account"`
	Text                *string          `db:"accounting_text"`
	CprType             string           `db:"accounting_cpr_type"`
	CprNumber           *string          `db:"accounting_cpr_number"`
	NotifyTo            *string          `db:"accounting_notify_to"`
	Note                *string          `db:"accounting_note"`
	AttachmentNames     []string         `db:"accounting_attachment_names"`
	AttachmentTypes     []string         `db:"accounting_attachment_types"`
	AttachmentData      []string         `db:"accounting_attachment_data"`
	LastUsed            *time.Time       `db:"last_used"`
	CurrentVersionID    int              `db:"current_version_id"`
	LockedAt            *time.Time       `db:"locked_at"`
	LockedBy            *string          `db:"locked_by"`
	BankAccountIDs      []string         // rule_bank_account
	RuleTagIDs          []string         // rule_rule_tag
	AuditFields
}

// RuleVersion mirrors a row of rule_version. Content is the JSON snapshot.
type RuleVersion struct {
	RuleID    int64     `db:"rule_id"`
	Version   int       `db:"version"`
	Content   []byte    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
	CreatedBy string    `db:"created_by"`
}

// RuleListRow is the joined shape read for the rule overview.
type RuleListRow struct {
	ID               int64            `db:"id"`
	Type             string           `db:"type"`
	Status           string           `db:"status"`
	Matches          MatchColumns     // match_* columns
	MatchAmountMin   *decimal.Decimal `db:"match_amount_min"`
	MatchAmountMax   *decimal.Decimal `db:"match_amount_max"`
	PrimaryAccount   string           `db:"accounting_primary_account"`
	SecondaryAccount *string          `db:"accounting_secondary_account"`
	TertiaryAccount  *string          `db:"accounting_tertiary_account"`
	Text             *string          `db:"accounting_text"`
	LastUsed         *time.Time       `db:"last_used"`
	CurrentVersionID int              `db:"current_version_id"`
	LockedAt         *time.Time       `db:"locked_at"`
	UpdatedAt        time.Time        `db:"updated_at"`
	BankAccounts     RelationIDs      `db:"bank_accounts"`
	RuleTags         RelationIDs      `db:"rule_tags"`
}
