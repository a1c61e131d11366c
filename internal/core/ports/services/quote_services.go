package services

import (
	"context"

	"github.com/SscSPs/remit_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// QuoteSvc prices prospective transfers. It has no side effects.
type QuoteSvc interface {
	// Calculate returns the fee and conversion breakdown for sending amountUSD
	// to targetCurrency. Fails with apperrors.ErrValidation for bad input and
	// apperrors.ErrRateUnavailable when no rate can be resolved.
	Calculate(ctx context.Context, amountUSD decimal.Decimal, targetCurrency string) (*domain.Breakdown, error)
}
