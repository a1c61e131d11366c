package services

import (
	"github.com/SscSPs/remit_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/remit_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/remit_backend/internal/core/ports/services"
)

// ContainerDeps are the collaborators the services need beyond repositories.
type ContainerDeps struct {
	RateSource portssvc.RateSource
	Publisher  portssvc.TransactionEventPublisher
	Currencies domain.CurrencyConfig
	Limits     QuoteLimits
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, deps ContainerDeps) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.RateCache = NewRateCacheService(repos.ExchangeRateRepo, deps.RateSource, deps.Currencies)
	container.Quote = NewQuoteService(container.RateCache, deps.Currencies, deps.Limits)

	var txnOpts []TransactionOption
	if deps.Publisher != nil {
		txnOpts = append(txnOpts, WithEventPublisher(deps.Publisher))
	}
	container.Transaction = NewTransactionService(repos.TransactionRepo, container.Quote, txnOpts...)

	container.Advertisement = NewAdvertisementService(repos.AdvertisementRepo)
	container.User = NewUserService(repos.UserRepo)

	return container
}
