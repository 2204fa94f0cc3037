package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/bank_rules_app/internal/core/domain"
	"github.com/SscSPs/bank_rules_app/internal/dto"
	"github.com/SscSPs/bank_rules_app/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockRuleRepository is a mock type for the RuleRepositoryFacade interface
type MockRuleRepository struct {
	mock.Mock
}

func (m *MockRuleRepository) FindRuleByID(ctx context.Context, ruleID int64) (*domain.Rule, error) {
	args := m.Called(ctx, ruleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rule), args.Error(1)
}

func (m *MockRuleRepository) ListRules(ctx context.Context) ([]models.RuleListRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RuleListRow), args.Error(1)
}

func (m *MockRuleRepository) ListRuleVersions(ctx context.Context, ruleID int64) ([]domain.RuleVersion, error) {
	args := m.Called(ctx, ruleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RuleVersion), args.Error(1)
}

func (m *MockRuleRepository) CreateRule(ctx context.Context, rule domain.Rule) (int64, error) {
	args := m.Called(ctx, rule)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRuleRepository) UpdateRule(ctx context.Context, rule domain.Rule, now time.Time, ttl time.Duration) (int, error) {
	args := m.Called(ctx, rule, now, ttl)
	return args.Int(0), args.Error(1)
}

func (m *MockRuleRepository) AcquireRuleLock(ctx context.Context, ruleID int64, expectedVersion int, actor string, now time.Time, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, ruleID, expectedVersion, actor, now, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockRuleRepository) ReleaseRuleLock(ctx context.Context, ruleID int64, actor string) (bool, error) {
	args := m.Called(ctx, ruleID, actor)
	return args.Bool(0), args.Error(1)
}

// MockRuleListCache is a mock type for the RuleListCache interface
type MockRuleListCache struct {
	mock.Mock
}

func (m *MockRuleListCache) Get() ([]dto.RuleListItem, bool) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]dto.RuleListItem), args.Bool(1)
}

func (m *MockRuleListCache) Set(items []dto.RuleListItem) {
	m.Called(items)
}

func (m *MockRuleListCache) Invalidate() {
	m.Called()
}

// MockErpSubmitter is a mock type for the ErpSubmitter interface
type MockErpSubmitter struct {
	mock.Mock
}

func (m *MockErpSubmitter) SubmitPosting(ctx context.Context, submission domain.PostingSubmission) (*domain.PostingReceipt, error) {
	args := m.Called(ctx, submission)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingReceipt), args.Error(1)
}

// MockNotifier is a mock type for the Notifier interface
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyPosted(ctx context.Context, to string, txn domain.BankTransaction, receipt domain.PostingReceipt) error {
	args := m.Called(ctx, to, txn, receipt)
	return args.Error(0)
}

func stringPtr(s string) *string {
	return &s
}
