package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/remit_backend/internal/apperrors"
	"github.com/SscSPs/remit_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/remit_backend/internal/core/ports/repositories"
)

type TransactionRepository struct {
	lock   sync.RWMutex
	byID   map[string]domain.Transaction
	byUser map[string][]string
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{
		byID:   map[string]domain.Transaction{},
		byUser: map[string][]string{},
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

func (r *TransactionRepository) SaveTransaction(_ context.Context, txn domain.Transaction) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, exists := r.byID[txn.TransactionID]; exists {
		return fmt.Errorf("%w: transaction %s already exists", apperrors.ErrDuplicate, txn.TransactionID)
	}
	r.byID[txn.TransactionID] = txn
	r.byUser[txn.UserID] = append(r.byUser[txn.UserID], txn.TransactionID)
	return nil
}

func (r *TransactionRepository) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	r.lock.RLock()
	txn, ok := r.byID[transactionID]
	r.lock.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return &txn, nil
}

func (r *TransactionRepository) ListTransactionsByUser(_ context.Context, userID string, limit, offset int) ([]domain.Transaction, error) {
	r.lock.RLock()
	ids := r.byUser[userID]
	txns := make([]domain.Transaction, 0, len(ids))
	for _, id := range ids {
		txns = append(txns, r.byID[id])
	}
	r.lock.RUnlock()

	sort.SliceStable(txns, func(i, j int) bool {
		if txns[i].CreatedAt.Equal(txns[j].CreatedAt) {
			return txns[i].TransactionID < txns[j].TransactionID
		}
		return txns[i].CreatedAt.After(txns[j].CreatedAt)
	})

	if offset < 0 {
		offset = 0
	}
	if offset >= len(txns) {
		return []domain.Transaction{}, nil
	}
	end := len(txns)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return txns[offset:end], nil
}

func (r *TransactionRepository) CountTransactionsByUser(_ context.Context, userID string) (int, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.byUser[userID]), nil
}
