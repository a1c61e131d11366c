package dto

import (
	"time"

	"github.com/SscSPs/remit_backend/internal/core/domain"
)

// CreateAdvertisementRequest is the admin payload for a new advertisement.
type CreateAdvertisementRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"required"`
	ImageURL    string `json:"image_url" binding:"omitempty,url"`
	LinkURL     string `json:"link_url" binding:"omitempty,url"`
	IsActive    *bool  `json:"is_active"`
	Order       int    `json:"order"`
}

// UpdateAdvertisementRequest uses pointers to differentiate omitted fields from zero values.
type UpdateAdvertisementRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,min=1"`
	ImageURL    *string `json:"image_url" binding:"omitempty,url"`
	LinkURL     *string `json:"link_url" binding:"omitempty,url"`
	IsActive    *bool   `json:"is_active"`
	Order       *int    `json:"order"`
}

// AdvertisementResponse renders an advertisement.
type AdvertisementResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    *string   `json:"image_url"`
	LinkURL     string    `json:"link_url"`
	IsActive    bool      `json:"is_active"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToAdvertisementResponse converts a domain.Advertisement to its response DTO.
func ToAdvertisementResponse(ad *domain.Advertisement) AdvertisementResponse {
	var imageURL *string
	if ad.ImageURL != "" {
		u := ad.ImageURL
		imageURL = &u
	}
	return AdvertisementResponse{
		ID:          ad.AdvertisementID,
		Title:       ad.Title,
		Description: ad.Description,
		ImageURL:    imageURL,
		LinkURL:     ad.LinkURL,
		IsActive:    ad.IsActive,
		Order:       ad.Order,
		CreatedAt:   ad.CreatedAt,
	}
}

// ToListAdvertisementResponse converts a slice of domain advertisements.
func ToListAdvertisementResponse(ads []domain.Advertisement) []AdvertisementResponse {
	out := make([]AdvertisementResponse, len(ads))
	for i := range ads {
		out[i] = ToAdvertisementResponse(&ads[i])
	}
	return out
}
