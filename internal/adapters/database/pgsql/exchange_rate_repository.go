package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/remit_backend/internal/apperrors"
	"github.com/SscSPs/remit_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/remit_backend/internal/core/ports/repositories"
	"github.com/SscSPs/remit_backend/internal/models"
	"github.com/SscSPs/remit_backend/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxExchangeRateRepository stores the rate cache in the exchange_rates table.
type PgxExchangeRateRepository struct {
	BaseRepository
}

func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

// UpsertExchangeRate relies on the unique index on currency_code; concurrent
// writers resolve last-writer-wins.
func (r *PgxExchangeRateRepository) UpsertExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	m := mapping.ToModelExchangeRate(rate)
	query := `
		INSERT INTO exchange_rates (exchange_rate_id, currency_code, rate_to_usd, last_updated)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (currency_code) DO UPDATE SET
			rate_to_usd = EXCLUDED.rate_to_usd,
			last_updated = EXCLUDED.last_updated;
	`
	_, err := r.Pool.Exec(ctx, query, uuid.NewString(), m.CurrencyCode, m.RateToUSD, m.LastUpdated)
	if err != nil {
		return fmt.Errorf("failed to upsert exchange rate %s: %w", m.CurrencyCode, err)
	}
	return nil
}

func (r *PgxExchangeRateRepository) FindExchangeRate(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error) {
	query := `
		SELECT exchange_rate_id, currency_code, rate_to_usd, last_updated
		FROM exchange_rates
		WHERE currency_code = $1;
	`
	var m models.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, currencyCode).Scan(
		&m.ExchangeRateID,
		&m.CurrencyCode,
		&m.RateToUSD,
		&m.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: exchange rate for %s", apperrors.ErrNotFound, currencyCode)
		}
		return nil, fmt.Errorf("failed to find exchange rate %s: %w", currencyCode, err)
	}

	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context, currencyCodes []string) ([]domain.ExchangeRate, error) {
	query := `
		SELECT exchange_rate_id, currency_code, rate_to_usd, last_updated
		FROM exchange_rates
		WHERE currency_code = ANY($1)
		ORDER BY currency_code;
	`
	rows, err := r.Pool.Query(ctx, query, currencyCodes)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	defer rows.Close()

	modelRates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExchangeRate, error) {
		var m models.ExchangeRate
		err := row.Scan(&m.ExchangeRateID, &m.CurrencyCode, &m.RateToUSD, &m.LastUpdated)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan exchange rates: %w", err)
	}
	return mapping.ToDomainExchangeRateSlice(modelRates), nil
}
