// Package memory provides process-local repositories used when no database is
// configured. They are safe for concurrent use but do not survive restarts.
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

type ExchangeRateRepository struct {
	lock  sync.RWMutex
	rates map[string]domain.ExchangeRate
}

func NewExchangeRateRepository() *ExchangeRateRepository {
	return &ExchangeRateRepository{rates: map[string]domain.ExchangeRate{}}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*ExchangeRateRepository)(nil)

func (r *ExchangeRateRepository) FindExchangeRate(_ context.Context, currencyCode string) (*domain.ExchangeRate, error) {
	r.lock.RLock()
	rate, ok := r.rates[currencyCode]
	r.lock.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: exchange rate for %s", apperrors.ErrNotFound, currencyCode)
	}
	return &rate, nil
}

func (r *ExchangeRateRepository) ListExchangeRates(_ context.Context, currencyCodes []string) ([]domain.ExchangeRate, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	out := make([]domain.ExchangeRate, 0, len(currencyCodes))
	for _, code := range currencyCodes {
		if rate, ok := r.rates[code]; ok {
			out = append(out, rate)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CurrencyCode < out[j].CurrencyCode })
	return out, nil
}

// UpsertExchangeRate is a blind overwrite keyed by currency code.
func (r *ExchangeRateRepository) UpsertExchangeRate(_ context.Context, rate domain.ExchangeRate) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.rates[rate.CurrencyCode] = rate
	return nil
}
