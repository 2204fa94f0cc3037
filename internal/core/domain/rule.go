package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RuleType classifies how broadly a rule applies.
type RuleType string

const (
	RuleStandard  RuleType = "standard"
	RuleException RuleType = "exception"
	RuleOneOff    RuleType = "one-off"
)

// RuleStatus toggles whether the matcher considers a rule.
type RuleStatus string

const (
	RuleActive   RuleStatus = "active"
	RuleInactive RuleStatus = "inactive"
)

// CprType selects how a posting gets its CPR number.
type CprType string

const (
	CprNone    CprType = "none"
	CprStatic  CprType = "static"
	CprDynamic CprType = "dynamic"
)

// Attachment is a file carried on the landing posting line.
type Attachment struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data string `json:"data"` // base64
}

// Rule matches bank transactions and describes where to post them.
type Rule struct {
	ID                  int64            `json:"id"`
	Type                RuleType         `json:"type"`
	Status              RuleStatus       `json:"status"`
	RelatedBankAccounts []string         `json:"relatedBankAccounts"`
	Matches             []MatchEntry     `json:"matches"`
	MatchAmountMin      *decimal.Decimal `json:"matchAmountMin,omitempty"`
	MatchAmountMax      *decimal.Decimal `json:"matchAmountMax,omitempty"`
	PrimaryAccount      string           `json:"accountingPrimaryAccount"`
	SecondaryAccount    *string          `json:"accountingSecondaryAccount,omitempty"`
	TertiaryAccount     *string          `json:"accountingTertiaryAccount,omitempty"`
	Text                *string          `json:"accountingText,omitempty"`
	CprType             CprType          `json:"accountingCprType"`
	CprNumber           *string          `json:"accountingCprNumber,omitempty"`
	NotifyTo            *string          `json:"accountingNotifyTo,omitempty"`
	Note                *string          `json:"accountingNote,omitempty"`
	Attachments         []Attachment     `json:"accountingAttachments,omitempty"`
	RuleTags            []string         `json:"ruleTags"`
	LastUsed            *time.Time       `json:"lastUsed,omitempty"`
	CurrentVersionID    int              `json:"currentVersionId"`

	// lease fields are live state and never part of a snapshot
	LockedAt *time.Time `json:"-"`
	LockedBy *string    `json:"-"`

	AuditFields
}

// LandingTarget returns the rule's account triple.
func (r Rule) LandingTarget() AccountTarget {
	return AccountTarget{Primary: r.PrimaryAccount, Secondary: r.SecondaryAccount, Tertiary: r.TertiaryAccount}
}
