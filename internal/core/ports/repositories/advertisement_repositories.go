package repositories

import (
	"context"

	"github.com/SscSPs/remit_backend/internal/core/domain"
)

// AdvertisementReader defines read operations for advertisements
type AdvertisementReader interface {
	FindAdvertisementByID(ctx context.Context, adID string) (*domain.Advertisement, error)

	// ListAdvertisements returns advertisements ordered by display order, then
	// creation time. When activeOnly is set inactive entries are skipped.
	ListAdvertisements(ctx context.Context, activeOnly bool) ([]domain.Advertisement, error)
}

// AdvertisementWriter defines write operations for advertisements
type AdvertisementWriter interface {
	SaveAdvertisement(ctx context.Context, ad domain.Advertisement) error
	UpdateAdvertisement(ctx context.Context, ad domain.Advertisement) error
}

// AdvertisementRepositoryFacade combines all advertisement-related repository interfaces
type AdvertisementRepositoryFacade interface {
	AdvertisementReader
	AdvertisementWriter
}
