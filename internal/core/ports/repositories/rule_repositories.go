package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bank_rules_app/internal/core/domain"
	"github.com/SscSPs/bank_rules_app/internal/models"
)

// RuleReader defines read operations for rule data
type RuleReader interface {
	// FindRuleByID loads a rule with its relation id sets. Unknown ids return apperrors.ErrNotFound.
	FindRuleByID(ctx context.Context, ruleID int64) (*domain.Rule, error)

	// ListRules returns the joined rows of the rule overview, newest first.
	ListRules(ctx context.Context) ([]models.RuleListRow, error)

	// ListRuleVersions returns every snapshot of a rule in ascending version order.
	ListRuleVersions(ctx context.Context, ruleID int64) ([]domain.RuleVersion, error)
}

// RuleWriter defines write operations for rule data
type RuleWriter interface {
	// CreateRule inserts the rule, its relation rows and the version 1 snapshot atomically.
	// The rule's matches are stored through the match codec. It returns the new id.
	CreateRule(ctx context.Context, rule domain.Rule) (int64, error)

	// UpdateRule replaces a rule's content, rewrites its relation rows and appends
	// the next version snapshot atomically, clearing any lease. It fails with
	// apperrors.ErrConflict when a lease active at now is held by anyone other than
	// rule.LastUpdatedBy, and returns the new version number.
	UpdateRule(ctx context.Context, rule domain.Rule, now time.Time, ttl time.Duration) (int, error)
}

// RuleLocker manages the edit lease on a rule
type RuleLocker interface {
	// AcquireRuleLock sets the lease in a single conditional write. It succeeds only
	// while the rule is still at expectedVersion and its lease is absent, expired or
	// already held by actor.
	AcquireRuleLock(ctx context.Context, ruleID int64, expectedVersion int, actor string, now time.Time, ttl time.Duration) (bool, error)

	// ReleaseRuleLock clears the lease if actor holds it.
	ReleaseRuleLock(ctx context.Context, ruleID int64, actor string) (bool, error)
}

// RuleRepositoryFacade combines all rule-related repository interfaces
type RuleRepositoryFacade interface {
	RuleReader
	RuleWriter
	RuleLocker
}

// RuleRepositoryWithTx extends RuleRepositoryFacade with transaction capabilities
type RuleRepositoryWithTx interface {
	RuleRepositoryFacade
	TransactionManager
}
