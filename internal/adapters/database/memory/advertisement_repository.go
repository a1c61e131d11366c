package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/remit_backend/internal/apperrors"
	"github.com/SscSPs/remit_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/remit_backend/internal/core/ports/repositories"
)

type AdvertisementRepository struct {
	lock sync.RWMutex
	ads  map[string]domain.Advertisement
}

func NewAdvertisementRepository() *AdvertisementRepository {
	return &AdvertisementRepository{ads: map[string]domain.Advertisement{}}
}

var _ portsrepo.AdvertisementRepositoryFacade = (*AdvertisementRepository)(nil)

func (r *AdvertisementRepository) FindAdvertisementByID(_ context.Context, adID string) (*domain.Advertisement, error) {
	r.lock.RLock()
	ad, ok := r.ads[adID]
	r.lock.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: advertisement %s", apperrors.ErrNotFound, adID)
	}
	return &ad, nil
}

func (r *AdvertisementRepository) ListAdvertisements(_ context.Context, activeOnly bool) ([]domain.Advertisement, error) {
	r.lock.RLock()
	out := make([]domain.Advertisement, 0, len(r.ads))
	for _, ad := range r.ads {
		if activeOnly && !ad.IsActive {
			continue
		}
		out = append(out, ad)
	}
	r.lock.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *AdvertisementRepository) SaveAdvertisement(_ context.Context, ad domain.Advertisement) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, exists := r.ads[ad.AdvertisementID]; exists {
		return fmt.Errorf("%w: advertisement %s already exists", apperrors.ErrDuplicate, ad.AdvertisementID)
	}
	r.ads[ad.AdvertisementID] = ad
	return nil
}

func (r *AdvertisementRepository) UpdateAdvertisement(_ context.Context, ad domain.Advertisement) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, exists := r.ads[ad.AdvertisementID]; !exists {
		return fmt.Errorf("%w: advertisement %s", apperrors.ErrNotFound, ad.AdvertisementID)
	}
	r.ads[ad.AdvertisementID] = ad
	return nil
}
