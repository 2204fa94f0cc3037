package services

import (
	"context"

	"github.com/SscSPs/bank_rules_app/internal/core/domain"
	"github.com/SscSPs/bank_rules_app/internal/dto"
)

// RuleReaderSvc defines read operations for rules
type RuleReaderSvc interface {
	// GetRule opens a rule for editing by actor. When another actor holds an active
	// lease the rule comes back read-only with IsLocked set.
	GetRule(ctx context.Context, ruleID int64, actor string) (*dto.RuleResponse, error)

	// ListRules returns the rule overview.
	ListRules(ctx context.Context) ([]dto.RuleListItem, error)

	// ListRuleVersions returns the snapshot history of a rule.
	ListRuleVersions(ctx context.Context, ruleID int64) ([]domain.RuleVersion, error)
}

// RuleWriterSvc defines write operations for rules
type RuleWriterSvc interface {
	// CreateRule validates and stores a new rule, returning its id.
	CreateRule(ctx context.Context, req dto.RuleDraftRequest, actor string) (int64, error)

	// UpdateRule validates and stores a new version of a rule, returning the version number.
	UpdateRule(ctx context.Context, ruleID int64, req dto.RuleDraftRequest, actor string) (int, error)

	// ReleaseRuleLock gives up actor's lease on a rule.
	ReleaseRuleLock(ctx context.Context, ruleID int64, actor string) error
}

// RuleSvcFacade combines all rule-related service interfaces
type RuleSvcFacade interface {
	RuleReaderSvc
	RuleWriterSvc
}

// RuleListCache keeps the rule overview between writes.
type RuleListCache interface {
	Get() ([]dto.RuleListItem, bool)
	Set(items []dto.RuleListItem)
	Invalidate()
}
