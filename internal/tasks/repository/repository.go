// Package repository provides persistence for agenda tasks.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"imogest_backend/platform/apperr"
)

// Task is a stored agenda item, optionally tied to a lead or a listing.
type Task struct {
	ID           uuid.UUID
	LeadID       *uuid.UUID
	PropertyID   *uuid.UUID
	Title        string
	Notes        *string
	DueAt        time.Time
	RemindBefore time.Duration
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateParams holds the fields for a new task.
type CreateParams struct {
	LeadID       *uuid.UUID
	PropertyID   *uuid.UUID
	Title        string
	Notes        *string
	DueAt        time.Time
	RemindBefore time.Duration
}

// UpdateParams holds a partial task update. Nil fields are left unchanged.
type UpdateParams struct {
	ID           uuid.UUID
	Title        *string
	Notes        *string
	DueAt        *time.Time
	RemindBefore *time.Duration
}

// ListParams filters the task query.
type ListParams struct {
	LeadID     *uuid.UUID
	PropertyID *uuid.UUID
	Status     *string
	DueBefore  *time.Time
	Limit      int
	Offset     int
}

// Repository defines task persistence operations.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (Task, error)
	List(ctx context.Context, params ListParams) ([]Task, int, error)
	Update(ctx context.Context, params UpdateParams) (Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Task, error)
}

const taskColumns = `id, lead_id, property_id, title, notes, due_at, remind_before_seconds, status, created_at, updated_at`

// Repo implements Repository on PostgreSQL. The reminder offset is stored in
// whole seconds.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a task repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts a task in the pending state.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Task, error) {
	query := `
		INSERT INTO crm_tasks (lead_id, property_id, title, notes, due_at, remind_before_seconds)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + taskColumns

	row := r.pool.QueryRow(ctx, query,
		params.LeadID, params.PropertyID, params.Title, params.Notes,
		params.DueAt, int64(params.RemindBefore/time.Second))

	task, err := scanTask(row)
	if err != nil {
		return Task{}, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// GetByID fetches a single task.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Task, error) {
	query := `SELECT ` + taskColumns + ` FROM crm_tasks WHERE id = $1`

	task, err := scanTask(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Task{}, apperr.NotFound("task not found")
		}
		return Task{}, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

// List returns filtered tasks ordered by due date with a total count.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Task, int, error) {
	conditions := []string{"TRUE"}
	var args []any

	addCondition := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if params.LeadID != nil {
		addCondition("lead_id = $%d", *params.LeadID)
	}
	if params.PropertyID != nil {
		addCondition("property_id = $%d", *params.PropertyID)
	}
	if params.Status != nil {
		addCondition("status = $%d", *params.Status)
	}
	if params.DueBefore != nil {
		addCondition("due_at <= $%d", *params.DueBefore)
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM crm_tasks`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`SELECT `+taskColumns+` FROM crm_tasks`+where+`
		ORDER BY due_at ASC
		LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, total, nil
}

// Update applies a partial update via COALESCE.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (Task, error) {
	var remindSeconds *int64
	if params.RemindBefore != nil {
		seconds := int64(*params.RemindBefore / time.Second)
		remindSeconds = &seconds
	}

	query := `
		UPDATE crm_tasks SET
			title = COALESCE($2, title),
			notes = COALESCE($3, notes),
			due_at = COALESCE($4, due_at),
			remind_before_seconds = COALESCE($5, remind_before_seconds),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + taskColumns

	row := r.pool.QueryRow(ctx, query, params.ID, params.Title, params.Notes, params.DueAt, remindSeconds)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Task{}, apperr.NotFound("task not found")
		}
		return Task{}, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// Delete removes a task.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM crm_tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("task not found")
	}
	return nil
}

// UpdateStatus transitions a task.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Task, error) {
	query := `
		UPDATE crm_tasks SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + taskColumns

	task, err := scanTask(r.pool.QueryRow(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Task{}, apperr.NotFound("task not found")
		}
		return Task{}, fmt.Errorf("update task status: %w", err)
	}
	return task, nil
}

func scanTask(row pgx.Row) (Task, error) {
	var t Task
	var remindSeconds int64
	err := row.Scan(
		&t.ID, &t.LeadID, &t.PropertyID, &t.Title, &t.Notes,
		&t.DueAt, &remindSeconds, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return Task{}, err
	}
	t.RemindBefore = time.Duration(remindSeconds) * time.Second
	return t, nil
}
