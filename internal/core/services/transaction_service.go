package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/SscSPs/bank_rules_app/internal/apperrors"
	"github.com/SscSPs/bank_rules_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_rules_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_rules_app/internal/core/ports/services"
	"github.com/SscSPs/bank_rules_app/internal/dto"
	"github.com/SscSPs/bank_rules_app/internal/metrics"
	"github.com/SscSPs/bank_rules_app/internal/utils/posting"
)

// transactionService implements the TransactionSvcFacade interface
type transactionService struct {
	BaseService
	txnRepo      portsrepo.BankTransactionRepositoryFacade
	erp          portssvc.ErpSubmitter
	notifier     portssvc.Notifier
	errorAccount string
	validator    *requestValidator
	now          func() time.Time
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithErrorAccount sets the status account used when a transaction has none.
func WithErrorAccount(account string) TransactionServiceOption {
	return func(s *transactionService) {
		s.errorAccount = strings.TrimSpace(account)
	}
}

// WithNotifier sends a mail to notifyTo after a successful posting.
func WithNotifier(n portssvc.Notifier) TransactionServiceOption {
	return func(s *transactionService) {
		s.notifier = n
	}
}

// WithTransactionClock replaces time.Now, mainly for tests.
func WithTransactionClock(now func() time.Time) TransactionServiceOption {
	return func(s *transactionService) {
		s.now = now
	}
}

// NewTransactionService creates a new transaction service with the provided options
func NewTransactionService(repo portsrepo.BankTransactionRepositoryFacade, erp portssvc.ErpSubmitter, options ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		txnRepo:   repo,
		erp:       erp,
		validator: newRequestValidator(),
		now:       time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) ListOpenTransactions(ctx context.Context, params dto.ListOpenTransactionsParams) (*dto.ListOpenTransactionsResponse, error) {
	txns, nextToken, err := s.txnRepo.ListOpenTransactions(ctx, params.Limit, params.NextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list open transactions", slog.Int("limit", params.Limit))
		}
		return nil, err
	}

	resp := &dto.ListOpenTransactionsResponse{
		Transactions: make([]dto.OpenTransactionResponse, 0, len(txns)),
		NextToken:    nextToken,
	}
	for _, txn := range txns {
		resp.Transactions = append(resp.Transactions, dto.ToOpenTransactionResponse(txn))
	}
	s.LogDebug(ctx, "Open transactions listed", slog.Int("count", len(txns)))
	return resp, nil
}

// ProcessTransaction posts an open transaction on the operator's accounts.
// The ERP submission happens while the transaction row is locked and the
// transaction is marked booked only when it succeeds.
func (s *transactionService) ProcessTransaction(ctx context.Context, transactionID string, req dto.ProcessTransactionRequest, actor string) (*dto.ProcessTransactionResponse, error) {
	req = normalizeProcessRequest(req)

	verr := &apperrors.ValidationError{}
	if err := s.validator.check(req, verr); err != nil {
		return nil, err
	}
	if domain.CprType(req.CprType) == domain.CprStatic && req.CprNumber == nil {
		verr.Add("cprNumber", "is required when cprType is static")
	}
	if err := verr.OrNil(); err != nil {
		metrics.ManualPostings.WithLabelValues("invalid").Inc()
		return nil, err
	}

	attachments := make([]domain.Attachment, 0, len(req.Attachments))
	for _, a := range req.Attachments {
		attachments = append(attachments, domain.Attachment{Name: a.Name, Type: a.Type, Data: a.Data})
	}
	target := domain.AccountTarget{
		Primary:   req.PrimaryAccount,
		Secondary: req.SecondaryAccount,
		Tertiary:  req.TertiaryAccount,
	}

	var (
		receipt *domain.PostingReceipt
		posted  domain.BankTransaction
	)
	err := s.txnRepo.ProcessBankTransaction(ctx, transactionID, actor, s.now(), func(ctx context.Context, txn domain.BankTransaction) error {
		if !txn.IsOpen() {
			return apperrors.NewConflictError(fmt.Sprintf("transaction %s is already %s", transactionID, txn.ProcessingStatus))
		}
		if txn.StatusAccount == "" {
			if s.errorAccount == "" {
				return apperrors.NewAppError(500, "transaction has no status account and no error account is configured", apperrors.ErrInternal)
			}
			s.LogInfo(ctx, "Transaction has no status account, using error account", slog.String("transaction_id", transactionID))
			txn.StatusAccount = s.errorAccount
		}

		text := posting.ResolvePostingText(req.Text, txn)
		cpr := posting.ResolveCpr(domain.CprType(req.CprType), req.CprNumber, txn)
		lines := posting.BuildPostingLines(txn, target, text, cpr, attachments)

		r, err := s.erp.SubmitPosting(ctx, domain.PostingSubmission{
			TransactionID: txn.TransactionID,
			RunID:         txn.RunID,
			BookingDate:   txn.BookingDate,
			Lines:         lines,
			Note:          req.Note,
		})
		if err != nil {
			return fmt.Errorf("failed to submit posting for transaction %s: %w", transactionID, err)
		}
		s.LogDebug(ctx, "Posting submitted",
			slog.String("transaction_id", transactionID),
			slog.Bool("has_cpr", cpr != nil),
			slog.Int("line_count", len(lines)))
		receipt, posted = r, txn
		return nil
	})
	if err != nil {
		metrics.ManualPostings.WithLabelValues(resultLabel(err)).Inc()
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to process transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}

	metrics.ManualPostings.WithLabelValues("ok").Inc()
	s.LogInfo(ctx, "Transaction posted manually",
		slog.String("transaction_id", transactionID),
		slog.String("request_id", receipt.RequestID))

	if s.notifier != nil && req.NotifyTo != nil {
		if err := s.notifier.NotifyPosted(ctx, *req.NotifyTo, posted, *receipt); err != nil {
			metrics.NotificationFailures.Inc()
			s.LogError(ctx, err, "Failed to send posting notification", slog.String("transaction_id", transactionID))
		}
	}

	return &dto.ProcessTransactionResponse{
		Success:    true,
		RequestID:  receipt.RequestID,
		Filename:   receipt.Filename,
		RemotePath: receipt.RemotePath,
		LineCount:  receipt.LineCount,
	}, nil
}

// normalizeProcessRequest trims the operator input: blank optional strings
// become absent, the CPR number keeps its digits only and cprType defaults to none.
func normalizeProcessRequest(req dto.ProcessTransactionRequest) dto.ProcessTransactionRequest {
	req.PrimaryAccount = strings.TrimSpace(req.PrimaryAccount)
	req.SecondaryAccount = trimmedOrNil(req.SecondaryAccount)
	req.TertiaryAccount = trimmedOrNil(req.TertiaryAccount)
	req.Text = trimmedOrNil(req.Text)
	req.NotifyTo = trimmedOrNil(req.NotifyTo)
	req.Note = trimmedOrNil(req.Note)

	req.CprType = strings.ToLower(strings.TrimSpace(req.CprType))
	if req.CprType == "" {
		req.CprType = string(domain.CprNone)
	}

	if req.CprNumber != nil {
		digits := strings.Map(func(r rune) rune {
			if unicode.IsDigit(r) {
				return r
			}
			return -1
		}, *req.CprNumber)
		req.CprNumber = trimmedOrNil(&digits)
	}
	return req
}
