package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/remit_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/remit_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/remit_backend/internal/core/ports/services"
	"github.com/SscSPs/remit_backend/internal/dto"
	"github.com/google/uuid"
)

// advertisementService implements the AdvertisementSvcFacade interface
type advertisementService struct {
	BaseService
	adRepo portsrepo.AdvertisementRepositoryFacade
}

// NewAdvertisementService creates a new advertisement service.
func NewAdvertisementService(repo portsrepo.AdvertisementRepositoryFacade) portssvc.AdvertisementSvcFacade {
	return &advertisementService{adRepo: repo}
}

var _ portssvc.AdvertisementSvcFacade = (*advertisementService)(nil)

func (s *advertisementService) ListActiveAdvertisements(ctx context.Context) ([]domain.Advertisement, error) {
	ads, err := s.adRepo.ListAdvertisements(ctx, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to list advertisements")
		return nil, fmt.Errorf("failed to list advertisements: %w", err)
	}
	return ads, nil
}

func (s *advertisementService) GetAdvertisement(ctx context.Context, adID string) (*domain.Advertisement, error) {
	ad, err := s.adRepo.FindAdvertisementByID(ctx, adID)
	if err != nil {
		return nil, fmt.Errorf("failed to get advertisement %s: %w", adID, err)
	}
	return ad, nil
}

func (s *advertisementService) CreateAdvertisement(ctx context.Context, req dto.CreateAdvertisementRequest, adminUserID string) (*domain.Advertisement, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	ad := domain.Advertisement{
		AdvertisementID: uuid.NewString(),
		Title:           req.Title,
		Description:     req.Description,
		ImageURL:        req.ImageURL,
		LinkURL:         req.LinkURL,
		IsActive:        isActive,
		Order:           req.Order,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.adRepo.SaveAdvertisement(ctx, ad); err != nil {
		s.LogError(ctx, err, "Failed to save advertisement", slog.String("admin_user_id", adminUserID))
		return nil, fmt.Errorf("failed to create advertisement: %w", err)
	}

	s.LogInfo(ctx, "Advertisement created",
		slog.String("advertisement_id", ad.AdvertisementID),
		slog.String("admin_user_id", adminUserID))
	return &ad, nil
}

func (s *advertisementService) UpdateAdvertisement(ctx context.Context, adID string, req dto.UpdateAdvertisementRequest, adminUserID string) (*domain.Advertisement, error) {
	ad, err := s.adRepo.FindAdvertisementByID(ctx, adID)
	if err != nil {
		return nil, fmt.Errorf("failed to find advertisement %s for update: %w", adID, err)
	}

	if req.Title != nil {
		ad.Title = *req.Title
	}
	if req.Description != nil {
		ad.Description = *req.Description
	}
	if req.ImageURL != nil {
		ad.ImageURL = *req.ImageURL
	}
	if req.LinkURL != nil {
		ad.LinkURL = *req.LinkURL
	}
	if req.IsActive != nil {
		ad.IsActive = *req.IsActive
	}
	if req.Order != nil {
		ad.Order = *req.Order
	}

	if err := s.adRepo.UpdateAdvertisement(ctx, *ad); err != nil {
		s.LogError(ctx, err, "Failed to update advertisement",
			slog.String("advertisement_id", adID),
			slog.String("admin_user_id", adminUserID))
		return nil, fmt.Errorf("failed to update advertisement: %w", err)
	}
	return ad, nil
}

func (s *advertisementService) DeactivateAdvertisement(ctx context.Context, adID string, adminUserID string) error {
	inactive := false
	_, err := s.UpdateAdvertisement(ctx, adID, dto.UpdateAdvertisementRequest{IsActive: &inactive}, adminUserID)
	return err
}
