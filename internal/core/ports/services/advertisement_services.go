package services

import (
	"context"

	"github.com/SscSPs/remit_backend/internal/core/domain"
	"github.com/SscSPs/remit_backend/internal/dto"
)

// AdvertisementReaderSvc defines read operations for advertisements
type AdvertisementReaderSvc interface {
	// ListActiveAdvertisements returns the ads shown to clients, in display order.
	ListActiveAdvertisements(ctx context.Context) ([]domain.Advertisement, error)

	GetAdvertisement(ctx context.Context, adID string) (*domain.Advertisement, error)
}

// AdvertisementWriterSvc defines admin curation of advertisements
type AdvertisementWriterSvc interface {
	CreateAdvertisement(ctx context.Context, req dto.CreateAdvertisementRequest, adminUserID string) (*domain.Advertisement, error)
	UpdateAdvertisement(ctx context.Context, adID string, req dto.UpdateAdvertisementRequest, adminUserID string) (*domain.Advertisement, error)
	DeactivateAdvertisement(ctx context.Context, adID string, adminUserID string) error
}

// AdvertisementSvcFacade combines all advertisement-related service interfaces
type AdvertisementSvcFacade interface {
	AdvertisementReaderSvc
	AdvertisementWriterSvc
}
