package domain

import "time"

// Advertisement is an admin-curated promotional entry shown to clients.
type Advertisement struct {
	AdvertisementID string    `json:"advertisementID"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	LinkURL         string    `json:"linkUrl,omitempty"`
	IsActive        bool      `json:"isActive"`
	Order           int       `json:"order"`
	CreatedAt       time.Time `json:"createdAt"`
}
