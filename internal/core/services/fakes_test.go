package services_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/bank_rules_app/internal/apperrors"
	"github.com/SscSPs/bank_rules_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_rules_app/internal/core/ports/repositories"
	"github.com/SscSPs/bank_rules_app/internal/models"
	"github.com/SscSPs/bank_rules_app/internal/utils/mapping"
)

// memoryRuleRepository keeps rules the way the database does: matches as flat
// columns, snapshots normalized, one version per successful write.
type memoryRuleRepository struct {
	mu       sync.Mutex
	nextID   int64
	rules    map[int64]domain.Rule
	columns  map[int64]models.MatchColumns
	versions map[int64][]domain.RuleVersion
}

var _ portsrepo.RuleRepositoryFacade = (*memoryRuleRepository)(nil)

func newMemoryRuleRepository() *memoryRuleRepository {
	return &memoryRuleRepository{
		rules:    map[int64]domain.Rule{},
		columns:  map[int64]models.MatchColumns{},
		versions: map[int64][]domain.RuleVersion{},
	}
}

func (r *memoryRuleRepository) FindRuleByID(_ context.Context, ruleID int64) (*domain.Rule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rule, ok := r.rules[ruleID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("rule %d not found", ruleID))
	}
	rule.Matches = mapping.ToMatchEntries(r.columns[ruleID])
	return &rule, nil
}

func (r *memoryRuleRepository) ListRules(context.Context) ([]models.RuleListRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := make([]models.RuleListRow, 0, len(r.rules))
	for id, rule := range r.rules {
		rows = append(rows, models.RuleListRow{
			ID:               id,
			Type:             string(rule.Type),
			Status:           string(rule.Status),
			Matches:          r.columns[id],
			PrimaryAccount:   rule.PrimaryAccount,
			CurrentVersionID: rule.CurrentVersionID,
			BankAccounts:     rule.RelatedBankAccounts,
			RuleTags:         rule.RuleTags,
		})
	}
	return rows, nil
}

func (r *memoryRuleRepository) ListRuleVersions(_ context.Context, ruleID int64) ([]domain.RuleVersion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	versions, ok := r.versions[ruleID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("rule %d not found", ruleID))
	}
	return append([]domain.RuleVersion(nil), versions...), nil
}

func (r *memoryRuleRepository) CreateRule(_ context.Context, rule domain.Rule) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	rule.ID = r.nextID
	rule.CurrentVersionID = 1
	r.store(rule, rule.CreatedBy, rule.CreatedAt)
	return rule.ID, nil
}

func (r *memoryRuleRepository) UpdateRule(_ context.Context, rule domain.Rule, now time.Time, ttl time.Duration) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.rules[rule.ID]
	if !ok {
		return 0, apperrors.NewNotFoundError(fmt.Sprintf("rule %d not found", rule.ID))
	}
	if existing.LockedByOther(rule.LastUpdatedBy, now, ttl) {
		return 0, apperrors.NewConflictError("locked by another actor")
	}
	rule.CurrentVersionID = existing.CurrentVersionID + 1
	rule.CreatedAt, rule.CreatedBy = existing.CreatedAt, existing.CreatedBy
	rule.LockedAt, rule.LockedBy = nil, nil
	r.store(rule, rule.LastUpdatedBy, rule.LastUpdatedAt)
	return rule.CurrentVersionID, nil
}

func (r *memoryRuleRepository) store(rule domain.Rule, actor string, at time.Time) {
	r.columns[rule.ID] = mapping.ToMatchColumns(rule.Matches)
	snapshot := rule
	snapshot.Matches = mapping.NormalizeMatches(rule.Matches)
	rule.Matches = nil
	r.rules[rule.ID] = rule
	r.versions[rule.ID] = append(r.versions[rule.ID], domain.RuleVersion{
		RuleID:    rule.ID,
		Version:   rule.CurrentVersionID,
		Content:   snapshot,
		CreatedAt: at,
		CreatedBy: actor,
	})
}

func (r *memoryRuleRepository) AcquireRuleLock(_ context.Context, ruleID int64, expectedVersion int, actor string, now time.Time, ttl time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rule, ok := r.rules[ruleID]
	if !ok || rule.CurrentVersionID != expectedVersion {
		return false, nil
	}
	if rule.LockActive(now, ttl) && !rule.HeldBy(actor, now, ttl) {
		return false, nil
	}
	rule.LockedAt, rule.LockedBy = &now, &actor
	r.rules[ruleID] = rule
	return true, nil
}

func (r *memoryRuleRepository) ReleaseRuleLock(_ context.Context, ruleID int64, actor string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rule, ok := r.rules[ruleID]
	if !ok || rule.LockedBy == nil || *rule.LockedBy != actor {
		return false, nil
	}
	rule.LockedAt, rule.LockedBy = nil, nil
	r.rules[ruleID] = rule
	return true, nil
}

// memoryTransactionRepository books a transaction only when the process func succeeds.
type memoryTransactionRepository struct {
	mu   sync.Mutex
	txns map[string]domain.BankTransaction
}

var _ portsrepo.BankTransactionRepositoryFacade = (*memoryTransactionRepository)(nil)

func newMemoryTransactionRepository(txns ...domain.BankTransaction) *memoryTransactionRepository {
	repo := &memoryTransactionRepository{txns: map[string]domain.BankTransaction{}}
	for _, t := range txns {
		repo.txns[t.TransactionID] = t
	}
	return repo
}

func (r *memoryTransactionRepository) FindBankTransactionByID(_ context.Context, transactionID string) (*domain.BankTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.txns[transactionID]
	if !ok {
		return nil, apperrors.NewNotFoundError("transaction " + transactionID + " not found")
	}
	return &t, nil
}

func (r *memoryTransactionRepository) ListOpenTransactions(_ context.Context, _ int, _ *string) ([]domain.BankTransaction, *string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.BankTransaction
	for _, t := range r.txns {
		if t.IsOpen() {
			out = append(out, t)
		}
	}
	return out, nil, nil
}

func (r *memoryTransactionRepository) ProcessBankTransaction(ctx context.Context, transactionID string, _ string, _ time.Time, fn portsrepo.ProcessFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.txns[transactionID]
	if !ok {
		return apperrors.NewNotFoundError("transaction " + transactionID + " not found")
	}
	if err := fn(ctx, t); err != nil {
		return err
	}
	t.ProcessingStatus = domain.StatusBooked
	r.txns[transactionID] = t
	return nil
}
