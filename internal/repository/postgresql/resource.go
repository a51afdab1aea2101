package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/sarang-church/groupware-backend-go/internal/domain/reservation"
	"github.com/sarang-church/groupware-backend-go/internal/pkg/database"
)

type resourceRepositoryImpl struct {
	db *database.DB
}

func NewResourceRepository(db *database.DB) reservation.ResourceRepository {
	return &resourceRepositoryImpl{db: db}
}

const resourceColumns = `id, name, category, is_active, color, mileage, created_at, updated_at`

func scanResource(row pgx.Row) (reservation.Resource, error) {
	var res reservation.Resource
	err := row.Scan(
		&res.ID,
		&res.Name,
		&res.Category,
		&res.IsActive,
		&res.Color,
		&res.Mileage,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	return res, err
}

// Create implements reservation.ResourceRepository.
func (r *resourceRepositoryImpl) Create(ctx context.Context, resource reservation.Resource) (reservation.Resource, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO resources (name, category, is_active, color, mileage, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + resourceColumns

	return scanResource(q.QueryRow(ctx, query,
		resource.Name, resource.Category, resource.IsActive, resource.Color, resource.Mileage,
	))
}

// GetByID implements reservation.ResourceRepository.
func (r *resourceRepositoryImpl) GetByID(ctx context.Context, id string) (reservation.Resource, error) {
	q := GetQuerier(ctx, r.db)

	res, err := scanResource(q.QueryRow(ctx, `SELECT `+resourceColumns+` FROM resources WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return reservation.Resource{}, reservation.ErrResourceNotFound
		}
		return reservation.Resource{}, err
	}
	return res, nil
}

// List implements reservation.ResourceRepository.
func (r *resourceRepositoryImpl) List(ctx context.Context, category reservation.Category, activeOnly bool) ([]reservation.Resource, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + resourceColumns + `
		FROM resources
		WHERE ($1 = '' OR category = $1) AND (NOT $2 OR is_active)
		ORDER BY category, name
	`

	rows, err := q.Query(ctx, query, string(category), activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resources []reservation.Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, res)
	}
	return resources, rows.Err()
}

// UpdateMileage implements reservation.ResourceRepository.
func (r *resourceRepositoryImpl) UpdateMileage(ctx context.Context, id string, mileage int) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE resources SET mileage = $2, updated_at = NOW() WHERE id = $1`, id, mileage)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return reservation.ErrResourceNotFound
	}
	return nil
}
