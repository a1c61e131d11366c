package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/remit_backend/internal/adapters/database/memory"
	"github.com/SscSPs/remit_backend/internal/apperrors"
	"github.com/SscSPs/remit_backend/internal/core/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchangeRateRepository_UpsertOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewExchangeRateRepository()

	_, err := repo.FindExchangeRate(ctx, "GBP")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, repo.UpsertExchangeRate(ctx, domain.ExchangeRate{CurrencyCode: "GBP", RateToUSD: decimal.RequireFromString("0.75")}))
	require.NoError(t, repo.UpsertExchangeRate(ctx, domain.ExchangeRate{CurrencyCode: "GBP", RateToUSD: decimal.RequireFromString("0.80")}))

	rate, err := repo.FindExchangeRate(ctx, "GBP")
	require.NoError(t, err)
	assert.Equal(t, "0.8", rate.RateToUSD.String())
	rates, err := repo.ListExchangeRates(ctx, []string{"GBP"})
	require.NoError(t, err)
	assert.Len(t, rates, 1)
}

func TestExchangeRateRepository_ConcurrentUpsertsConverge(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewExchangeRateRepository()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.UpsertExchangeRate(ctx, domain.ExchangeRate{CurrencyCode: "ZAR", RateToUSD: decimal.RequireFromString("17.5")})
			_, _ = repo.FindExchangeRate(ctx, "ZAR")
		}()
	}
	wg.Wait()

	rates, err := repo.ListExchangeRates(ctx, []string{"GBP", "ZAR"})
	require.NoError(t, err)
	require.Len(t, rates, 1)
	assert.Equal(t, "ZAR", rates[0].CurrencyCode)
}

func TestTransactionRepository_HistoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTransactionRepository()
	userID := uuid.NewString()
	base := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 12; i++ {
		txn := domain.Transaction{
			TransactionID: uuid.NewString(),
			UserID:        userID,
			AuditFields:   domain.AuditFields{CreatedAt: base.Add(time.Duration(i) * time.Hour)},
		}
		ids = append(ids, txn.TransactionID)
		require.NoError(t, repo.SaveTransaction(ctx, txn))
	}
	require.NoError(t, repo.SaveTransaction(ctx, domain.Transaction{TransactionID: uuid.NewString(), UserID: uuid.NewString()}))

	count, err := repo.CountTransactionsByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 12, count)

	first, err := repo.ListTransactionsByUser(ctx, userID, 10, 0)
	require.NoError(t, err)
	require.Len(t, first, 10)
	assert.Equal(t, ids[11], first[0].TransactionID)

	second, err := repo.ListTransactionsByUser(ctx, userID, 10, 10)
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, ids[0], second[1].TransactionID)

	empty, err := repo.ListTransactionsByUser(ctx, userID, 10, 50)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTransactionRepository_InsertOnly(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTransactionRepository()
	txn := domain.Transaction{TransactionID: uuid.NewString(), UserID: uuid.NewString()}

	require.NoError(t, repo.SaveTransaction(ctx, txn))
	assert.ErrorIs(t, repo.SaveTransaction(ctx, txn), apperrors.ErrDuplicate)
}

func TestAdvertisementRepository_ActiveOrdering(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAdvertisementRepository()
	now := time.Now()

	require.NoError(t, repo.SaveAdvertisement(ctx, domain.Advertisement{AdvertisementID: "b", Order: 2, IsActive: true, CreatedAt: now}))
	require.NoError(t, repo.SaveAdvertisement(ctx, domain.Advertisement{AdvertisementID: "a", Order: 1, IsActive: true, CreatedAt: now}))
	require.NoError(t, repo.SaveAdvertisement(ctx, domain.Advertisement{AdvertisementID: "c", Order: 0, IsActive: false, CreatedAt: now}))

	active, err := repo.ListAdvertisements(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "a", active[0].AdvertisementID)

	all, err := repo.ListAdvertisements(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	err = repo.UpdateAdvertisement(ctx, domain.Advertisement{AdvertisementID: "missing"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUserRepository_UniqueUsername(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	user := domain.User{UserID: uuid.NewString(), Username: "alice"}

	require.NoError(t, repo.SaveUser(ctx, user))
	err := repo.SaveUser(ctx, domain.User{UserID: uuid.NewString(), Username: "alice"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	found, err := repo.FindUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.UserID, found.UserID)

	_, err = repo.FindUserByID(ctx, "nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
