package memory

import portsrepo "github.com/SscSPs/remit_backend/internal/core/ports/repositories"

// NewRepositoryProvider returns empty in-memory repositories.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ExchangeRateRepo:  NewExchangeRateRepository(),
		TransactionRepo:   NewTransactionRepository(),
		AdvertisementRepo: NewAdvertisementRepository(),
		UserRepo:          NewUserRepository(),
	}
}
