package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"imogest_backend/platform/apperr"
)

const propertyColumns = `id, title, description, price, city, location, property_type,
	bedrooms, area_sqm, status, photo_keys, created_at, updated_at`

// Repo implements Repository on PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a property repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts a listing. New listings start as available.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Property, error) {
	query := `
		INSERT INTO crm_properties (title, description, price, city, location, property_type, bedrooms, area_sqm)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + propertyColumns

	row := r.pool.QueryRow(ctx, query,
		params.Title, params.Description, params.Price, params.City,
		params.Location, params.PropertyType, params.Bedrooms, params.AreaSqm)

	property, err := scanProperty(row)
	if err != nil {
		return Property{}, fmt.Errorf("create property: %w", err)
	}
	return property, nil
}

// GetByID fetches a single listing.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM crm_properties WHERE id = $1`

	property, err := scanProperty(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Property{}, apperr.NotFound("property not found")
		}
		return Property{}, fmt.Errorf("get property: %w", err)
	}
	return property, nil
}

// List returns filtered listings with a total count.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Property, int, error) {
	var conditions []string
	var args []any

	addCondition := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if params.City != nil {
		addCondition("city ILIKE $%d", *params.City)
	}
	if params.Type != nil {
		addCondition("property_type = $%d", *params.Type)
	}
	if params.Status != nil {
		addCondition("status = $%d", *params.Status)
	}
	if params.MaxPrice != nil {
		addCondition("price <= $%d", *params.MaxPrice)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM crm_properties` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count properties: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`SELECT `+propertyColumns+` FROM crm_properties`+where+`
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	properties, err := scanProperties(rows)
	if err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}

// Update applies a partial update via COALESCE.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (Property, error) {
	query := `
		UPDATE crm_properties SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			price = COALESCE($4, price),
			city = COALESCE($5, city),
			location = COALESCE($6, location),
			property_type = COALESCE($7, property_type),
			bedrooms = COALESCE($8, bedrooms),
			area_sqm = COALESCE($9, area_sqm),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + propertyColumns

	row := r.pool.QueryRow(ctx, query, params.ID,
		params.Title, params.Description, params.Price, params.City,
		params.Location, params.PropertyType, params.Bedrooms, params.AreaSqm)

	property, err := scanProperty(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Property{}, apperr.NotFound("property not found")
		}
		return Property{}, fmt.Errorf("update property: %w", err)
	}
	return property, nil
}

// Delete removes a listing.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM crm_properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("property not found")
	}
	return nil
}

// UpdateStatus changes listing availability.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Property, error) {
	query := `
		UPDATE crm_properties SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + propertyColumns

	property, err := scanProperty(r.pool.QueryRow(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Property{}, apperr.NotFound("property not found")
		}
		return Property{}, fmt.Errorf("update property status: %w", err)
	}
	return property, nil
}

// AddPhotoKey appends a photo object key to the listing.
func (r *Repo) AddPhotoKey(ctx context.Context, id uuid.UUID, key string) (Property, error) {
	query := `
		UPDATE crm_properties SET photo_keys = array_append(photo_keys, $2), updated_at = NOW()
		WHERE id = $1
		RETURNING ` + propertyColumns

	property, err := scanProperty(r.pool.QueryRow(ctx, query, id, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Property{}, apperr.NotFound("property not found")
		}
		return Property{}, fmt.Errorf("add photo key: %w", err)
	}
	return property, nil
}

// RemovePhotoKey detaches a photo object key from the listing.
func (r *Repo) RemovePhotoKey(ctx context.Context, id uuid.UUID, key string) (Property, error) {
	query := `
		UPDATE crm_properties SET photo_keys = array_remove(photo_keys, $2), updated_at = NOW()
		WHERE id = $1
		RETURNING ` + propertyColumns

	property, err := scanProperty(r.pool.QueryRow(ctx, query, id, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Property{}, apperr.NotFound("property not found")
		}
		return Property{}, fmt.Errorf("remove photo key: %w", err)
	}
	return property, nil
}

// ListCandidates returns available listings ordered by price ascending,
// optionally price-capped, for the matcher.
func (r *Repo) ListCandidates(ctx context.Context, params CandidateParams) ([]Property, error) {
	var conditions = []string{"status = 'available'"}
	var args []any

	if params.MaxPrice != nil {
		args = append(args, *params.MaxPrice)
		conditions = append(conditions, fmt.Sprintf("price <= $%d", len(args)))
	}

	args = append(args, params.Limit)
	query := fmt.Sprintf(`SELECT `+propertyColumns+` FROM crm_properties
		WHERE `+strings.Join(conditions, " AND ")+`
		ORDER BY price ASC
		LIMIT $%d`, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list match candidates: %w", err)
	}
	defer rows.Close()

	return scanProperties(rows)
}

func scanProperty(row pgx.Row) (Property, error) {
	var p Property
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.City, &p.Location,
		&p.PropertyType, &p.Bedrooms, &p.AreaSqm, &p.Status, &p.PhotoKeys,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Property{}, err
	}
	return p, nil
}

func scanProperties(rows pgx.Rows) ([]Property, error) {
	properties := make([]Property, 0)
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		properties = append(properties, property)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate properties: %w", err)
	}
	return properties, nil
}
