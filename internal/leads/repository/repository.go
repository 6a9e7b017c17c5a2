package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"imogest_backend/platform/apperr"
)

const leadNotFoundMessage = "lead not found"

const leadColumns = `id, name, email, phone, budget, location_preference, property_type,
	intent, status, score, assigned_agent_id, source, notes, created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new leads repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts a new lead in the "new" stage with a zero score.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Lead, error) {
	query := `
		INSERT INTO crm_leads (name, email, phone, budget, location_preference, property_type, intent, assigned_agent_id, source, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + leadColumns

	row := r.pool.QueryRow(ctx, query,
		params.Name, params.Email, params.Phone, params.Budget, params.LocationPreference,
		params.PropertyType, params.Intent, params.AssignedAgentID, params.Source, params.Notes,
	)

	lead, err := scanLead(row)
	if err != nil {
		return Lead{}, fmt.Errorf("create lead: %w", err)
	}
	return lead, nil
}

// GetByID retrieves a lead by its ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM crm_leads WHERE id = $1`

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("get lead by id: %w", err)
	}
	return lead, nil
}

// List retrieves leads with optional status filter, name/email search, and paging.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Lead, int, error) {
	var searchParam any
	if params.Search != "" {
		searchParam = "%" + params.Search + "%"
	}

	countQuery := `
		SELECT COUNT(*)
		FROM crm_leads
		WHERE ($1::text IS NULL OR status = $1)
			AND ($2::text IS NULL OR name ILIKE $2 OR email ILIKE $2)`

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, params.Status, searchParam).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	query := `
		SELECT ` + leadColumns + `
		FROM crm_leads
		WHERE ($1::text IS NULL OR status = $1)
			AND ($2::text IS NULL OR name ILIKE $2 OR email ILIKE $2)
		ORDER BY score DESC, created_at DESC
		LIMIT $3 OFFSET $4`

	rows, err := r.pool.Query(ctx, query, params.Status, searchParam, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads, err := scanLeads(rows)
	if err != nil {
		return nil, 0, err
	}
	return leads, total, nil
}

// Update applies a partial update; nil params keep the stored value.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (Lead, error) {
	query := `
		UPDATE crm_leads SET
			name = COALESCE($2, name),
			email = COALESCE($3, email),
			phone = COALESCE($4, phone),
			budget = COALESCE($5, budget),
			location_preference = COALESCE($6, location_preference),
			property_type = COALESCE($7, property_type),
			intent = COALESCE($8, intent),
			assigned_agent_id = COALESCE($9, assigned_agent_id),
			source = COALESCE($10, source),
			notes = COALESCE($11, notes),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + leadColumns

	row := r.pool.QueryRow(ctx, query,
		params.ID, params.Name, params.Email, params.Phone, params.Budget, params.LocationPreference,
		params.PropertyType, params.Intent, params.AssignedAgentID, params.Source, params.Notes,
	)

	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("update lead: %w", err)
	}
	return lead, nil
}

// Delete removes a lead by ID.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM crm_leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(leadNotFoundMessage)
	}
	return nil
}

// UpdateStatus moves a lead to a new pipeline stage.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Lead, error) {
	query := `
		UPDATE crm_leads SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + leadColumns

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("update lead status: %w", err)
	}
	return lead, nil
}

// UpdateScore persists a recomputed score.
func (r *Repo) UpdateScore(ctx context.Context, id uuid.UUID, score int) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE crm_leads SET score = $2, updated_at = now() WHERE id = $1`, id, score)
	if err != nil {
		return fmt.Errorf("update lead score: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(leadNotFoundMessage)
	}
	return nil
}

func scanLead(row pgx.Row) (Lead, error) {
	var l Lead
	err := row.Scan(
		&l.ID, &l.Name, &l.Email, &l.Phone, &l.Budget, &l.LocationPreference, &l.PropertyType,
		&l.Intent, &l.Status, &l.Score, &l.AssignedAgentID, &l.Source, &l.Notes,
		&l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

func scanLeads(rows pgx.Rows) ([]Lead, error) {
	var results []Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		results = append(results, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return results, nil
}
