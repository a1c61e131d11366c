package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/remit_backend/internal/apperrors"
	"github.com/SscSPs/remit_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/remit_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/remit_backend/internal/core/ports/services"
	"github.com/SscSPs/remit_backend/internal/dto"
	"github.com/SscSPs/remit_backend/internal/platform/metrics"
	"github.com/SscSPs/remit_backend/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// transactionService implements the TransactionSvcFacade interface
type transactionService struct {
	BaseService
	txnRepo   portsrepo.TransactionRepositoryFacade
	quotes    portssvc.QuoteSvc
	publisher portssvc.TransactionEventPublisher
	now       func() time.Time
	newID     func() string
}

// TransactionOption is a functional option for configuring the transaction service
type TransactionOption func(*transactionService)

// WithEventPublisher announces every committed transaction through publisher.
func WithEventPublisher(publisher portssvc.TransactionEventPublisher) TransactionOption {
	return func(s *transactionService) {
		s.publisher = publisher
	}
}

// WithTransactionClock overrides the clock used for audit timestamps.
func WithTransactionClock(now func() time.Time) TransactionOption {
	return func(s *transactionService) {
		s.now = now
	}
}

// NewTransactionService creates a new transaction service with the provided options
func NewTransactionService(repo portsrepo.TransactionRepositoryFacade, quotes portssvc.QuoteSvc, options ...TransactionOption) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		txnRepo: repo,
		quotes:  quotes,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) Commit(ctx context.Context, breakdown domain.Breakdown, userID, recipientName string) (*domain.Transaction, error) {
	now := s.now().UTC()
	txn := domain.Transaction{
		TransactionID:  s.newID(),
		UserID:         userID,
		AmountUSD:      breakdown.AmountUSD,
		TargetCurrency: breakdown.TargetCurrency,
		ExchangeRate:   breakdown.ExchangeRate,
		FeePercentage:  breakdown.FeePercentage,
		FeeAmount:      breakdown.FeeAmount,
		FinalAmount:    breakdown.FinalAmount,
		RecipientName:  strings.TrimSpace(recipientName),
		Status:         domain.StatusPending,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	completed := txn
	if err := completed.TransitionTo(domain.StatusCompleted); err != nil {
		return nil, err
	}

	if err := s.txnRepo.SaveTransaction(ctx, completed); err != nil {
		// The pending record never reached storage.
		if tErr := txn.TransitionTo(domain.StatusFailed); tErr != nil {
			s.LogError(ctx, tErr, "Failed to mark transaction as failed")
		}
		metrics.TransactionsCommittedTotal.WithLabelValues(txn.TargetCurrency, string(txn.Status)).Inc()
		s.LogError(ctx, err, "Failed to persist transaction",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("user_id", userID),
			slog.String("target_currency", txn.TargetCurrency))
		return &txn, fmt.Errorf("%w: transaction %s was calculated but not recorded: %w", apperrors.ErrPersistence, txn.TransactionID, err)
	}

	metrics.TransactionsCommittedTotal.WithLabelValues(completed.TargetCurrency, string(completed.Status)).Inc()
	s.LogInfo(ctx, "Transaction committed",
		slog.String("transaction_id", completed.TransactionID),
		slog.String("user_id", userID),
		slog.String("target_currency", completed.TargetCurrency),
		slog.String("final_amount", completed.FinalAmount.StringFixed(2)))

	if s.publisher != nil {
		if err := s.publisher.PublishTransactionCommitted(ctx, completed); err != nil {
			s.LogWarn(ctx, err, "Failed to publish transaction event",
				slog.String("transaction_id", completed.TransactionID))
		}
	}

	return &completed, nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, userID string, amountUSD decimal.Decimal, targetCurrency, recipientName string) (*domain.Transaction, *domain.Breakdown, error) {
	breakdown, err := s.quotes.Calculate(ctx, amountUSD, targetCurrency)
	if err != nil {
		return nil, nil, err
	}

	txn, err := s.Commit(ctx, *breakdown, userID, recipientName)
	if err != nil {
		return txn, breakdown, err
	}
	return txn, breakdown, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, transactionID, userID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load transaction", slog.String("transaction_id", transactionID))
		}
		return nil, fmt.Errorf("failed to get transaction %s: %w", transactionID, err)
	}
	// Other users' transactions are reported as missing.
	if txn.UserID != userID {
		return nil, apperrors.NewNotFoundError("transaction " + transactionID)
	}
	return txn, nil
}

func (s *transactionService) ListTransactionHistory(ctx context.Context, userID string, page int) (*dto.TransactionHistoryResponse, error) {
	total, err := s.txnRepo.CountTransactionsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count transactions", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	p := pagination.NewPage(page, pagination.DefaultPageSize, total)

	txns, err := s.txnRepo.ListTransactionsByUser(ctx, userID, p.Limit(), p.Offset())
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &dto.TransactionHistoryResponse{
		Transactions: dto.ToTransactionResponses(txns),
		TotalPages:   p.TotalPages(),
		CurrentPage:  p.Number,
		HasNext:      p.HasNext(),
		HasPrevious:  p.HasPrevious(),
	}, nil
}
