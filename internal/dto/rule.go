package dto

import (
	"time"

	"github.com/SscSPs/bank_rules_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AttachmentRequest is a base64 encoded file sent with a rule or a manual posting.
type AttachmentRequest struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required"`
	Data string `json:"data" validate:"required,base64"`
}

// MatchEntryRequest is one match condition as sent by the client.
// Category accepts the legacy Danish labels; Gate is accepted but not stored.
type MatchEntryRequest struct {
	Category string   `json:"category" validate:"required"`
	Value    string   `json:"value" validate:"required"`
	Fields   []string `json:"fields,omitempty"`
	Gate     string   `json:"gate,omitempty" validate:"omitempty,oneof=AND OR"`
}

// RuleDraftRequest is the payload for creating or updating a rule.
type RuleDraftRequest struct {
	Type                       string              `json:"type" validate:"required,oneof=standard exception one-off"`
	Status                     string              `json:"status" validate:"required,oneof=active inactive"`
	RelatedBankAccounts        []string            `json:"relatedBankAccounts" validate:"required,min=1,dive,required"`
	Matches                    []MatchEntryRequest `json:"matches" validate:"dive"`
	MatchAmountMin             *decimal.Decimal    `json:"matchAmountMin"`
	MatchAmountMax             *decimal.Decimal    `json:"matchAmountMax"`
	AccountingPrimaryAccount   string              `json:"accountingPrimaryAccount" validate:"required"`
	AccountingSecondaryAccount *string             `json:"accountingSecondaryAccount"`
	AccountingTertiaryAccount  *string             `json:"accountingTertiaryAccount"`
	AccountingText             *string             `json:"accountingText" validate:"omitempty,max=255"`
	AccountingCprType          string              `json:"accountingCprType" validate:"omitempty,oneof=none static dynamic"`
	AccountingCprNumber        *string             `json:"accountingCprNumber" validate:"omitempty,len=10,numeric"`
	AccountingNotifyTo         *string             `json:"accountingNotifyTo" validate:"omitempty,email"`
	AccountingNote             *string             `json:"accountingNote" validate:"omitempty,max=500"`
	AccountingAttachments      []AttachmentRequest `json:"accountingAttachments" validate:"dive"`
	RuleTags                   []string            `json:"ruleTags" validate:"dive,required"`
}

// RuleResponse is a rule as returned to the editor.
// IsLocked means another actor holds the edit lease and the rule is read-only.
type RuleResponse struct {
	domain.Rule
	IsLocked bool       `json:"isLocked"`
	LockedAt *time.Time `json:"lockedAt,omitempty"`
	LockedBy *string    `json:"lockedBy,omitempty"`
}

// CreateRuleResponse is returned after a rule is created.
type CreateRuleResponse struct {
	Success bool  `json:"success"`
	RuleID  int64 `json:"ruleId"`
}

// UpdateRuleResponse is returned after a rule is updated.
type UpdateRuleResponse struct {
	Success bool  `json:"success"`
	RuleID  int64 `json:"ruleId"`
	Version int   `json:"version"`
}

// ErrorResponse carries either a message or a list of field issues.
type ErrorResponse struct {
	Success bool `json:"success"`
	Error   any  `json:"error"`
}

// ToRuleResponse wraps a rule with its lock state.
func ToRuleResponse(rule domain.Rule, locked bool) *RuleResponse {
	resp := &RuleResponse{Rule: rule, IsLocked: locked}
	if locked {
		resp.LockedAt = rule.LockedAt
		resp.LockedBy = rule.LockedBy
	}
	return resp
}
