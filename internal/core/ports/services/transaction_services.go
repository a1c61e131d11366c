package services

import (
	"context"

	"github.com/SscSPs/remit_backend/internal/core/domain"
	"github.com/SscSPs/remit_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// TransactionReaderSvc defines read operations for a user's transactions
type TransactionReaderSvc interface {
	// GetTransaction returns a transaction owned by userID.
	GetTransaction(ctx context.Context, transactionID, userID string) (*domain.Transaction, error)

	// ListTransactionHistory returns one page of userID's transactions, newest first.
	ListTransactionHistory(ctx context.Context, userID string, page int) (*dto.TransactionHistoryResponse, error)
}

// TransactionWriterSvc defines write operations for transactions
type TransactionWriterSvc interface {
	// Commit persists breakdown as a new COMPLETED transaction owned by userID.
	// It never recomputes the breakdown and is not idempotent.
	Commit(ctx context.Context, breakdown domain.Breakdown, userID, recipientName string) (*domain.Transaction, error)

	// CreateTransaction prices the transfer and commits it in one call.
	CreateTransaction(ctx context.Context, userID string, amountUSD decimal.Decimal, targetCurrency, recipientName string) (*domain.Transaction, *domain.Breakdown, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}

// TransactionEventPublisher announces committed transactions to other systems.
type TransactionEventPublisher interface {
	PublishTransactionCommitted(ctx context.Context, txn domain.Transaction) error
}
