package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Lead is the persisted lead record.
type Lead struct {
	ID                 uuid.UUID  `json:"id"`
	Name               string     `json:"name"`
	Email              *string    `json:"email,omitempty"`
	Phone              *string    `json:"phone,omitempty"`
	Budget             *float64   `json:"budget,omitempty"`
	LocationPreference *string    `json:"locationPreference,omitempty"`
	PropertyType       *string    `json:"propertyType,omitempty"`
	Intent             string     `json:"intent"`
	Status             string     `json:"status"`
	Score              int        `json:"score"`
	AssignedAgentID    *uuid.UUID `json:"assignedAgentId,omitempty"`
	Source             *string    `json:"source,omitempty"`
	Notes              *string    `json:"notes,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// CreateParams are the fields accepted on lead creation.
type CreateParams struct {
	Name               string
	Email              *string
	Phone              *string
	Budget             *float64
	LocationPreference *string
	PropertyType       *string
	Intent             string
	AssignedAgentID    *uuid.UUID
	Source             *string
	Notes              *string
}

// UpdateParams carry partial updates; nil fields keep their current value.
type UpdateParams struct {
	ID                 uuid.UUID
	Name               *string
	Email              *string
	Phone              *string
	Budget             *float64
	LocationPreference *string
	PropertyType       *string
	Intent             *string
	AssignedAgentID    *uuid.UUID
	Source             *string
	Notes              *string
}

// ListParams filter and page the lead listing.
type ListParams struct {
	Status *string
	Search string
	Limit  int
	Offset int
}

// Repository is the storage boundary for leads.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Lead, error)
	GetByID(ctx context.Context, id uuid.UUID) (Lead, error)
	List(ctx context.Context, params ListParams) ([]Lead, int, error)
	Update(ctx context.Context, params UpdateParams) (Lead, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Lead, error)
	UpdateScore(ctx context.Context, id uuid.UUID, score int) error
}
