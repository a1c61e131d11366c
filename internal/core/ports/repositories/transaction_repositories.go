package repositories

import (
	"context"

	"github.com/SscSPs/remit_backend/internal/core/domain"
)

// TransactionReader defines read operations for remittance transactions
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByUser retrieves a user's transactions, newest first.
	ListTransactionsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Transaction, error)

	// CountTransactionsByUser returns how many transactions a user owns.
	CountTransactionsByUser(ctx context.Context, userID string) (int, error)
}

// TransactionWriter defines write operations for remittance transactions.
// Transactions are insert-only.
type TransactionWriter interface {
	// SaveTransaction inserts a new transaction. Returns apperrors.ErrDuplicate
	// if the identifier already exists.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
