package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/bank_rules_app/internal/apperrors"
	"github.com/SscSPs/bank_rules_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_rules_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_rules_app/internal/core/ports/services"
	"github.com/SscSPs/bank_rules_app/internal/dto"
	"github.com/SscSPs/bank_rules_app/internal/metrics"
)

// lockAttempts bounds how often GetRule retries after losing a lease race.
const lockAttempts = 2

// ruleService implements the RuleSvcFacade interface
type ruleService struct {
	BaseService
	ruleRepo  portsrepo.RuleRepositoryFacade
	listCache portssvc.RuleListCache
	lockTTL   time.Duration
	rules     ruleDraftRules
	validator *requestValidator
	now       func() time.Time
}

// RuleServiceOption is a functional option for configuring the rule service
type RuleServiceOption func(*ruleService)

// WithRuleListCache caches the rule overview between writes.
func WithRuleListCache(cache portssvc.RuleListCache) RuleServiceOption {
	return func(s *ruleService) {
		s.listCache = cache
	}
}

// WithLockTTL overrides how long an edit lease is honored.
func WithLockTTL(ttl time.Duration) RuleServiceOption {
	return func(s *ruleService) {
		if ttl > 0 {
			s.lockTTL = ttl
		}
	}
}

// WithNotifyDomain requires notify-to addresses to belong to mailDomain.
func WithNotifyDomain(mailDomain string) RuleServiceOption {
	return func(s *ruleService) {
		s.rules.notifyDomain = strings.TrimSpace(mailDomain)
	}
}

// WithSingleCostObject requires exactly one of the secondary and tertiary accounts.
func WithSingleCostObject(enabled bool) RuleServiceOption {
	return func(s *ruleService) {
		s.rules.singleCostObject = enabled
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) RuleServiceOption {
	return func(s *ruleService) {
		s.now = now
	}
}

// NewRuleService creates a new rule service with the provided options
func NewRuleService(repo portsrepo.RuleRepositoryFacade, options ...RuleServiceOption) portssvc.RuleSvcFacade {
	svc := &ruleService{
		ruleRepo:  repo,
		lockTTL:   domain.DefaultLockTTL,
		validator: newRequestValidator(),
		now:       time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.RuleSvcFacade = (*ruleService)(nil)

// GetRule returns the rule read-only when another actor holds an active lease.
// Otherwise it takes the lease for actor with a conditional write and returns an
// editable rule. A lease actor already holds is honored as is.
func (s *ruleService) GetRule(ctx context.Context, ruleID int64, actor string) (*dto.RuleResponse, error) {
	for attempt := 1; attempt <= lockAttempts; attempt++ {
		rule, err := s.ruleRepo.FindRuleByID(ctx, ruleID)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				s.LogError(ctx, err, "Failed to load rule", slog.Int64("rule_id", ruleID))
			}
			return nil, err
		}

		now := s.now()
		if rule.LockedByOther(actor, now, s.lockTTL) {
			metrics.RuleLockOutcomes.WithLabelValues("locked").Inc()
			return dto.ToRuleResponse(*rule, true), nil
		}
		if rule.HeldBy(actor, now, s.lockTTL) {
			metrics.RuleLockOutcomes.WithLabelValues("held").Inc()
			return dto.ToRuleResponse(*rule, false), nil
		}

		acquired, err := s.ruleRepo.AcquireRuleLock(ctx, ruleID, rule.CurrentVersionID, actor, now, s.lockTTL)
		if err != nil {
			s.LogError(ctx, err, "Failed to acquire rule lock", slog.Int64("rule_id", ruleID))
			return nil, err
		}
		if acquired {
			rule.LockedAt, rule.LockedBy = &now, &actor
			metrics.RuleLockOutcomes.WithLabelValues("acquired").Inc()
			s.LogDebug(ctx, "Rule lock acquired", slog.Int64("rule_id", ruleID))
			return dto.ToRuleResponse(*rule, false), nil
		}

		s.LogDebug(ctx, "Rule changed while acquiring lock, reloading",
			slog.Int64("rule_id", ruleID), slog.Int("attempt", attempt))
	}

	metrics.RuleLockOutcomes.WithLabelValues("lost").Inc()
	return nil, apperrors.NewConflictError(fmt.Sprintf("rule %d changed while it was being opened, retry", ruleID))
}

// ListRules returns the rule overview, from cache when possible.
func (s *ruleService) ListRules(ctx context.Context) ([]dto.RuleListItem, error) {
	if s.listCache != nil {
		if items, ok := s.listCache.Get(); ok {
			return items, nil
		}
	}

	rows, err := s.ruleRepo.ListRules(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list rules")
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}

	items := dto.ToRuleListItems(rows)
	if s.listCache != nil {
		s.listCache.Set(items)
	}
	s.LogDebug(ctx, "Rules listed", slog.Int("count", len(items)))
	return items, nil
}

func (s *ruleService) ListRuleVersions(ctx context.Context, ruleID int64) ([]domain.RuleVersion, error) {
	versions, err := s.ruleRepo.ListRuleVersions(ctx, ruleID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to list rule versions", slog.Int64("rule_id", ruleID))
		}
		return nil, err
	}
	return versions, nil
}

// CreateRule validates the draft and stores it as version 1.
func (s *ruleService) CreateRule(ctx context.Context, req dto.RuleDraftRequest, actor string) (int64, error) {
	rule, err := s.draftToRule(req)
	if err != nil {
		metrics.RuleWrites.WithLabelValues("create", "invalid").Inc()
		return 0, err
	}

	now := s.now()
	rule.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor,
		LastUpdatedAt: now,
		LastUpdatedBy: actor,
	}

	ruleID, err := s.ruleRepo.CreateRule(ctx, rule)
	if err != nil {
		metrics.RuleWrites.WithLabelValues("create", resultLabel(err)).Inc()
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to create rule")
		}
		return 0, err
	}

	s.invalidateList()
	metrics.RuleWrites.WithLabelValues("create", "ok").Inc()
	s.LogInfo(ctx, "Rule created", slog.Int64("rule_id", ruleID))
	return ruleID, nil
}

// UpdateRule validates the draft and stores it as the rule's next version.
func (s *ruleService) UpdateRule(ctx context.Context, ruleID int64, req dto.RuleDraftRequest, actor string) (int, error) {
	rule, err := s.draftToRule(req)
	if err != nil {
		metrics.RuleWrites.WithLabelValues("update", "invalid").Inc()
		return 0, err
	}

	now := s.now()
	rule.ID = ruleID
	rule.LastUpdatedAt = now
	rule.LastUpdatedBy = actor

	version, err := s.ruleRepo.UpdateRule(ctx, rule, now, s.lockTTL)
	if err != nil {
		metrics.RuleWrites.WithLabelValues("update", resultLabel(err)).Inc()
		switch {
		case errors.Is(err, apperrors.ErrConflict):
			s.LogInfo(ctx, "Rule update rejected, locked by another actor", slog.Int64("rule_id", ruleID))
		case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrValidation):
		default:
			s.LogError(ctx, err, "Failed to update rule", slog.Int64("rule_id", ruleID))
		}
		return 0, err
	}

	s.invalidateList()
	metrics.RuleWrites.WithLabelValues("update", "ok").Inc()
	s.LogInfo(ctx, "Rule updated", slog.Int64("rule_id", ruleID), slog.Int("version", version))
	return version, nil
}

// ReleaseRuleLock clears actor's lease. Releasing a lease actor does not hold is a no-op.
func (s *ruleService) ReleaseRuleLock(ctx context.Context, ruleID int64, actor string) error {
	if _, err := s.ruleRepo.FindRuleByID(ctx, ruleID); err != nil {
		return err
	}
	released, err := s.ruleRepo.ReleaseRuleLock(ctx, ruleID, actor)
	if err != nil {
		s.LogError(ctx, err, "Failed to release rule lock", slog.Int64("rule_id", ruleID))
		return err
	}
	s.LogDebug(ctx, "Rule lock release", slog.Int64("rule_id", ruleID), slog.Bool("released", released))
	return nil
}

func (s *ruleService) invalidateList() {
	if s.listCache != nil {
		s.listCache.Invalidate()
	}
}

// draftToRule validates the normalized draft and builds the rule it describes.
// Matches keep every entry as sent so the stored columns reflect repeated values.
func (s *ruleService) draftToRule(req dto.RuleDraftRequest) (domain.Rule, error) {
	req = normalizeDraftRequest(req)

	verr := &apperrors.ValidationError{}
	if err := s.validator.check(req, verr); err != nil {
		return domain.Rule{}, err
	}
	s.rules.check(req, verr)
	if err := verr.OrNil(); err != nil {
		return domain.Rule{}, err
	}

	cprType := domain.CprType(req.AccountingCprType)
	if cprType == "" {
		cprType = domain.CprNone
	}

	matches := make([]domain.MatchEntry, 0, len(req.Matches))
	for _, m := range req.Matches {
		category, _ := domain.ParseMatchCategory(m.Category)
		entry := domain.MatchEntry{
			Category: category,
			Value:    m.Value,
			Gate:     domain.Gate(m.Gate),
		}
		if entry.Gate == "" {
			entry.Gate = domain.DefaultGate
		}
		for _, f := range m.Fields {
			entry.Fields = append(entry.Fields, parseMatchField(f))
		}
		matches = append(matches, entry)
	}

	attachments := make([]domain.Attachment, 0, len(req.AccountingAttachments))
	for _, a := range req.AccountingAttachments {
		attachments = append(attachments, domain.Attachment{Name: a.Name, Type: a.Type, Data: a.Data})
	}

	return domain.Rule{
		Type:                domain.RuleType(req.Type),
		Status:              domain.RuleStatus(req.Status),
		RelatedBankAccounts: req.RelatedBankAccounts,
		Matches:             matches,
		MatchAmountMin:      req.MatchAmountMin,
		MatchAmountMax:      req.MatchAmountMax,
		PrimaryAccount:      req.AccountingPrimaryAccount,
		SecondaryAccount:    req.AccountingSecondaryAccount,
		TertiaryAccount:     req.AccountingTertiaryAccount,
		Text:                req.AccountingText,
		CprType:             cprType,
		CprNumber:           req.AccountingCprNumber,
		NotifyTo:            req.AccountingNotifyTo,
		Note:                req.AccountingNote,
		Attachments:         attachments,
		RuleTags:            req.RuleTags,
	}, nil
}

// normalizeDraftRequest trims the draft before validation: blank optional strings
// become absent and relation ids are trimmed and de-duplicated. A relation list
// left empty becomes nil so it fails as missing.
func normalizeDraftRequest(req dto.RuleDraftRequest) dto.RuleDraftRequest {
	req.Type = strings.TrimSpace(req.Type)
	req.Status = strings.TrimSpace(req.Status)
	req.AccountingPrimaryAccount = strings.TrimSpace(req.AccountingPrimaryAccount)
	req.AccountingSecondaryAccount = trimmedOrNil(req.AccountingSecondaryAccount)
	req.AccountingTertiaryAccount = trimmedOrNil(req.AccountingTertiaryAccount)
	req.AccountingText = trimmedOrNil(req.AccountingText)
	req.AccountingCprType = strings.ToLower(strings.TrimSpace(req.AccountingCprType))
	req.AccountingCprNumber = trimmedOrNil(req.AccountingCprNumber)
	req.AccountingNotifyTo = trimmedOrNil(req.AccountingNotifyTo)
	req.AccountingNote = trimmedOrNil(req.AccountingNote)

	req.RelatedBankAccounts = uniqueIDs(req.RelatedBankAccounts)
	if len(req.RelatedBankAccounts) == 0 {
		req.RelatedBankAccounts = nil
	}
	req.RuleTags = uniqueIDs(req.RuleTags)
	return req
}

// uniqueIDs trims ids and drops repeats, keeping first-seen order.
func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return "invalid"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperrors.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}
