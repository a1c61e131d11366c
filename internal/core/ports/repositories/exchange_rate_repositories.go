package repositories

import (
	"context"

	"github.com/SscSPs/remit_backend/internal/core/domain"
)

// ExchangeRateReader defines read operations for cached exchange rates
type ExchangeRateReader interface {
	// FindExchangeRate retrieves the cached rate for a currency code.
	// Returns apperrors.ErrNotFound when the code has never been cached.
	FindExchangeRate(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves the cached rates for the given codes, ordered by code.
	ListExchangeRates(ctx context.Context, currencyCodes []string) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for cached exchange rates
type ExchangeRateWriter interface {
	// UpsertExchangeRate inserts the rate or overwrites rate and last-updated
	// time of the existing record for the same currency code.
	UpsertExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
