package mapping

import (
	"database/sql"

	"github.com/SscSPs/remit_backend/internal/core/domain"
	"github.com/SscSPs/remit_backend/internal/models"
)

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// ToModelAdvertisement converts a domain Advertisement to a model Advertisement
func ToModelAdvertisement(d domain.Advertisement) models.Advertisement {
	return models.Advertisement{
		AdvertisementID: d.AdvertisementID,
		Title:           d.Title,
		Description:     d.Description,
		ImageURL:        toNullString(d.ImageURL),
		LinkURL:         toNullString(d.LinkURL),
		IsActive:        d.IsActive,
		DisplayOrder:    d.Order,
		CreatedAt:       d.CreatedAt,
	}
}

// ToDomainAdvertisement converts a model Advertisement to a domain Advertisement
func ToDomainAdvertisement(m models.Advertisement) domain.Advertisement {
	return domain.Advertisement{
		AdvertisementID: m.AdvertisementID,
		Title:           m.Title,
		Description:     m.Description,
		ImageURL:        m.ImageURL.String,
		LinkURL:         m.LinkURL.String,
		IsActive:        m.IsActive,
		Order:           m.DisplayOrder,
		CreatedAt:       m.CreatedAt,
	}
}

// ToDomainAdvertisementSlice converts a slice of model Advertisements
func ToDomainAdvertisementSlice(ms []models.Advertisement) []domain.Advertisement {
	ds := make([]domain.Advertisement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAdvertisement(m)
	}
	return ds
}
