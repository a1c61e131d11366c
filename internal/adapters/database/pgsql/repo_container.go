package pgsql

import (
	portsrepo "github.com/SscSPs/remit_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ExchangeRateRepo:  newPgxExchangeRateRepository(dbPool),
		TransactionRepo:   newPgxTransactionRepository(dbPool),
		AdvertisementRepo: newPgxAdvertisementRepository(dbPool),
		UserRepo:          newPgxUserRepository(dbPool),
	}
}
