package models

import (
	"database/sql"
	"time"
)

// Advertisement is a row of the advertisements table.
type Advertisement struct {
	AdvertisementID string         `db:"advertisement_id"`
	Title           string         `db:"title"`
	Description     string         `db:"description"`
	ImageURL        sql.NullString `db:"image_url"`
	LinkURL         sql.NullString `db:"link_url"`
	IsActive        bool           `db:"is_active"`
	DisplayOrder    int            `db:"display_order"`
	CreatedAt       time.Time      `db:"created_at"`
}
