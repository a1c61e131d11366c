package dto

import (
	"time"

	"github.com/SscSPs/remit_backend/internal/core/domain"
)

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	CurrencyCode string    `json:"currency_code"`
	RateToUSD    string    `json:"rate_to_usd"`
	LastUpdated  time.Time `json:"last_updated"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(r *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		CurrencyCode: r.CurrencyCode,
		RateToUSD:    rate(r.RateToUSD),
		LastUpdated:  r.LastUpdated,
	}
}

// ToListExchangeRateResponse converts a slice of domain rates to response DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}
