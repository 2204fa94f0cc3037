package handlers_test

import (
	"context"

	"github.com/SscSPs/bank_rules_app/internal/core/domain"
	portssvc "github.com/SscSPs/bank_rules_app/internal/core/ports/services"
	"github.com/SscSPs/bank_rules_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock RuleService ---
type MockRuleService struct {
	mock.Mock
}

func (m *MockRuleService) GetRule(ctx context.Context, ruleID int64, actor string) (*dto.RuleResponse, error) {
	args := m.Called(ctx, ruleID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RuleResponse), args.Error(1)
}
func (m *MockRuleService) ListRules(ctx context.Context) ([]dto.RuleListItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.RuleListItem), args.Error(1)
}
func (m *MockRuleService) ListRuleVersions(ctx context.Context, ruleID int64) ([]domain.RuleVersion, error) {
	args := m.Called(ctx, ruleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RuleVersion), args.Error(1)
}
func (m *MockRuleService) CreateRule(ctx context.Context, req dto.RuleDraftRequest, actor string) (int64, error) {
	args := m.Called(ctx, req, actor)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockRuleService) UpdateRule(ctx context.Context, ruleID int64, req dto.RuleDraftRequest, actor string) (int, error) {
	args := m.Called(ctx, ruleID, req, actor)
	return args.Int(0), args.Error(1)
}
func (m *MockRuleService) ReleaseRuleLock(ctx context.Context, ruleID int64, actor string) error {
	args := m.Called(ctx, ruleID, actor)
	return args.Error(0)
}

var _ portssvc.RuleSvcFacade = (*MockRuleService)(nil)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) ListOpenTransactions(ctx context.Context, params dto.ListOpenTransactionsParams) (*dto.ListOpenTransactionsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListOpenTransactionsResponse), args.Error(1)
}
func (m *MockTransactionService) ProcessTransaction(ctx context.Context, transactionID string, req dto.ProcessTransactionRequest, actor string) (*dto.ProcessTransactionResponse, error) {
	args := m.Called(ctx, transactionID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProcessTransactionResponse), args.Error(1)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)
