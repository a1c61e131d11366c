package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/remit_backend/internal/apperrors"
	"github.com/SscSPs/remit_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/remit_backend/internal/core/ports/repositories"
	"github.com/SscSPs/remit_backend/internal/models"
	"github.com/SscSPs/remit_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAdvertisementRepository struct {
	BaseRepository
}

func newPgxAdvertisementRepository(pool *pgxpool.Pool) portsrepo.AdvertisementRepositoryFacade {
	return &PgxAdvertisementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AdvertisementRepositoryFacade = (*PgxAdvertisementRepository)(nil)

func scanAdvertisement(row pgx.Row) (models.Advertisement, error) {
	var m models.Advertisement
	err := row.Scan(
		&m.AdvertisementID,
		&m.Title,
		&m.Description,
		&m.ImageURL,
		&m.LinkURL,
		&m.IsActive,
		&m.DisplayOrder,
		&m.CreatedAt,
	)
	return m, err
}

func (r *PgxAdvertisementRepository) SaveAdvertisement(ctx context.Context, ad domain.Advertisement) error {
	m := mapping.ToModelAdvertisement(ad)
	query := `
		INSERT INTO advertisements (advertisement_id, title, description, image_url, link_url, is_active, display_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AdvertisementID, m.Title, m.Description, m.ImageURL, m.LinkURL, m.IsActive, m.DisplayOrder, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: advertisement %s already exists", apperrors.ErrDuplicate, m.AdvertisementID)
		}
		return fmt.Errorf("failed to save advertisement %s: %w", m.AdvertisementID, err)
	}
	return nil
}

func (r *PgxAdvertisementRepository) UpdateAdvertisement(ctx context.Context, ad domain.Advertisement) error {
	m := mapping.ToModelAdvertisement(ad)
	query := `
		UPDATE advertisements
		SET title = $2, description = $3, image_url = $4, link_url = $5, is_active = $6, display_order = $7
		WHERE advertisement_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.AdvertisementID, m.Title, m.Description, m.ImageURL, m.LinkURL, m.IsActive, m.DisplayOrder,
	)
	if err != nil {
		return fmt.Errorf("failed to update advertisement %s: %w", m.AdvertisementID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: advertisement %s", apperrors.ErrNotFound, m.AdvertisementID)
	}
	return nil
}

func (r *PgxAdvertisementRepository) FindAdvertisementByID(ctx context.Context, adID string) (*domain.Advertisement, error) {
	query := `
		SELECT advertisement_id, title, description, image_url, link_url, is_active, display_order, created_at
		FROM advertisements
		WHERE advertisement_id = $1;
	`
	m, err := scanAdvertisement(r.Pool.QueryRow(ctx, query, adID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: advertisement %s", apperrors.ErrNotFound, adID)
		}
		return nil, fmt.Errorf("failed to find advertisement %s: %w", adID, err)
	}
	ad := mapping.ToDomainAdvertisement(m)
	return &ad, nil
}

func (r *PgxAdvertisementRepository) ListAdvertisements(ctx context.Context, activeOnly bool) ([]domain.Advertisement, error) {
	query := `
		SELECT advertisement_id, title, description, image_url, link_url, is_active, display_order, created_at
		FROM advertisements
		WHERE ($1 = FALSE OR is_active)
		ORDER BY display_order, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to query advertisements: %w", err)
	}
	defer rows.Close()

	modelAds, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Advertisement, error) {
		return scanAdvertisement(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan advertisements: %w", err)
	}
	return mapping.ToDomainAdvertisementSlice(modelAds), nil
}
