package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/bank_rules_app/internal/apperrors"
	"github.com/SscSPs/bank_rules_app/internal/core/domain"
	portssvc "github.com/SscSPs/bank_rules_app/internal/core/ports/services"
	"github.com/SscSPs/bank_rules_app/internal/core/services"
	"github.com/SscSPs/bank_rules_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func openTransaction(id string, amount int64) domain.BankTransaction {
	return domain.BankTransaction{
		TransactionID: id,
		RunID:         "run-1",
		BookingDate:   time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		AccountID:     "acc-1",
		StatusAccount: "9100",
		Amount:        decimal.NewFromInt(amount),
		Payload: &domain.BankPayload{
			Text:   stringPtr("Refusion cpr 010190-1234 modtaget"),
			Debtor: &domain.Party{Name: stringPtr("Jens Hansen")},
		},
		ProcessingStatus: domain.StatusOpen,
	}
}

var receipt = &domain.PostingReceipt{
	RequestID:  "req-1",
	Filename:   "posting-req-1.xml",
	RemotePath: "/inbound/postings/posting-req-1.xml",
	LineCount:  2,
}

// --- Test Suite Setup ---

type TransactionServiceTestSuite struct {
	suite.Suite
	repo     *memoryTransactionRepository
	erp      *MockErpSubmitter
	notifier *MockNotifier
	service  portssvc.TransactionSvcFacade
	ctx      context.Context
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.repo = newMemoryTransactionRepository(
		openTransaction("tx-in", 250),
		openTransaction("tx-out", -80),
	)
	suite.erp = new(MockErpSubmitter)
	suite.notifier = new(MockNotifier)
	suite.ctx = context.Background()
	suite.service = services.NewTransactionService(
		suite.repo,
		suite.erp,
		services.WithErrorAccount("9999"),
		services.WithNotifier(suite.notifier),
	)
}

func (suite *TransactionServiceTestSuite) status(id string) domain.BookingStatus {
	txn, err := suite.repo.FindBankTransactionByID(suite.ctx, id)
	suite.Require().NoError(err)
	return txn.ProcessingStatus
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestProcessTransaction_Success() {
	suite.erp.On("SubmitPosting", suite.ctx, mock.MatchedBy(func(s domain.PostingSubmission) bool {
		return s.TransactionID == "tx-in" &&
			len(s.Lines) == 2 &&
			s.Lines[0].Account == "9100" && s.Lines[0].Side == domain.Debit &&
			s.Lines[1].Account == "4000" && s.Lines[1].Side == domain.Credit &&
			s.Lines[0].Amount.Equal(decimal.NewFromInt(250)) &&
			s.Lines[1].Text == "Husleje" &&
			s.Lines[1].Cpr != nil && *s.Lines[1].Cpr == "0101901234" &&
			s.Lines[0].Cpr == nil
	})).Return(receipt, nil).Once()

	resp, err := suite.service.ProcessTransaction(suite.ctx, "tx-in", dto.ProcessTransactionRequest{
		PrimaryAccount: " 4000 ",
		Text:           stringPtr("Husleje"),
		CprType:        "static",
		CprNumber:      stringPtr("010190-1234"),
	}, "alice")

	suite.Require().NoError(err)
	suite.True(resp.Success)
	suite.Equal("req-1", resp.RequestID)
	suite.Equal(2, resp.LineCount)
	suite.Equal(domain.StatusBooked, suite.status("tx-in"))
	suite.notifier.AssertNotCalled(suite.T(), "NotifyPosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.erp.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestProcessTransaction_DynamicCprAndOutgoingSides() {
	suite.erp.On("SubmitPosting", suite.ctx, mock.MatchedBy(func(s domain.PostingSubmission) bool {
		return s.Lines[0].Side == domain.Credit && s.Lines[1].Side == domain.Debit &&
			s.Lines[1].Amount.Equal(decimal.NewFromInt(80)) &&
			s.Lines[1].Text == "Refusion cpr 010190-1234 modtaget" &&
			s.Lines[1].Cpr != nil && *s.Lines[1].Cpr == "0101901234"
	})).Return(receipt, nil).Once()

	_, err := suite.service.ProcessTransaction(suite.ctx, "tx-out", dto.ProcessTransactionRequest{
		PrimaryAccount: "4000",
		CprType:        "dynamic",
	}, "alice")

	suite.Require().NoError(err)
	suite.erp.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestProcessTransaction_AlreadyBooked() {
	booked := openTransaction("tx-booked", 10)
	booked.ProcessingStatus = domain.StatusBooked
	suite.repo.txns[booked.TransactionID] = booked

	resp, err := suite.service.ProcessTransaction(suite.ctx, "tx-booked", dto.ProcessTransactionRequest{PrimaryAccount: "4000"}, "alice")

	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.erp.AssertNotCalled(suite.T(), "SubmitPosting", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestProcessTransaction_SubmitFailureLeavesOpen() {
	erpErr := errors.New("sftp unreachable")
	suite.erp.On("SubmitPosting", suite.ctx, mock.Anything).Return(nil, erpErr).Once()

	resp, err := suite.service.ProcessTransaction(suite.ctx, "tx-in", dto.ProcessTransactionRequest{PrimaryAccount: "4000"}, "alice")

	suite.Nil(resp)
	suite.ErrorIs(err, erpErr)
	suite.Equal(domain.StatusOpen, suite.status("tx-in"))
}

func (suite *TransactionServiceTestSuite) TestProcessTransaction_FallsBackToErrorAccount() {
	noStatus := openTransaction("tx-nostatus", 10)
	noStatus.StatusAccount = ""
	suite.repo.txns[noStatus.TransactionID] = noStatus
	suite.erp.On("SubmitPosting", suite.ctx, mock.MatchedBy(func(s domain.PostingSubmission) bool {
		return s.Lines[0].Account == "9999"
	})).Return(receipt, nil).Once()

	_, err := suite.service.ProcessTransaction(suite.ctx, "tx-nostatus", dto.ProcessTransactionRequest{PrimaryAccount: "4000"}, "alice")

	suite.Require().NoError(err)
	suite.erp.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestProcessTransaction_NoStatusAccountConfigured() {
	noStatus := openTransaction("tx-nostatus", 10)
	noStatus.StatusAccount = ""
	repo := newMemoryTransactionRepository(noStatus)
	svc := services.NewTransactionService(repo, suite.erp)

	_, err := svc.ProcessTransaction(suite.ctx, "tx-nostatus", dto.ProcessTransactionRequest{PrimaryAccount: "4000"}, "alice")

	suite.ErrorIs(err, apperrors.ErrInternal)
	suite.erp.AssertNotCalled(suite.T(), "SubmitPosting", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestProcessTransaction_ValidationIssues() {
	resp, err := suite.service.ProcessTransaction(suite.ctx, "tx-in", dto.ProcessTransactionRequest{
		PrimaryAccount: "  ",
		CprType:        "static",
		CprNumber:      stringPtr("--"),
		NotifyTo:       stringPtr("not-an-email"),
	}, "alice")

	suite.Nil(resp)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	paths := issuePaths(apperrors.IssuesOf(err))
	suite.ElementsMatch([]string{"primaryAccount", "notifyTo", "cprNumber"}, paths)
	suite.Equal(domain.StatusOpen, suite.status("tx-in"))
}

func (suite *TransactionServiceTestSuite) TestProcessTransaction_NotFound() {
	_, err := suite.service.ProcessTransaction(suite.ctx, "missing", dto.ProcessTransactionRequest{PrimaryAccount: "4000"}, "alice")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestProcessTransaction_NotificationFailureIsNotFatal() {
	suite.erp.On("SubmitPosting", suite.ctx, mock.Anything).Return(receipt, nil).Once()
	suite.notifier.On("NotifyPosted", suite.ctx, "finance@kommune.dk", mock.Anything, *receipt).
		Return(errors.New("mailgun rejected")).Once()

	resp, err := suite.service.ProcessTransaction(suite.ctx, "tx-in", dto.ProcessTransactionRequest{
		PrimaryAccount: "4000",
		NotifyTo:       stringPtr(" finance@kommune.dk "),
	}, "alice")

	suite.Require().NoError(err)
	suite.True(resp.Success)
	suite.Equal(domain.StatusBooked, suite.status("tx-in"))
	suite.notifier.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListOpenTransactions() {
	booked := openTransaction("tx-booked", 10)
	booked.ProcessingStatus = domain.StatusBooked
	suite.repo.txns[booked.TransactionID] = booked

	resp, err := suite.service.ListOpenTransactions(suite.ctx, dto.ListOpenTransactionsParams{Limit: 10})

	suite.Require().NoError(err)
	suite.Len(resp.Transactions, 2)
	suite.Nil(resp.NextToken)
	for _, txn := range resp.Transactions {
		suite.Equal(domain.StatusOpen, txn.ProcessingStatus)
		suite.NotNil(txn.References)
	}
}

func TestTransactionService(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
