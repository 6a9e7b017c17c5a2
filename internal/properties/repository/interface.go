// Package repository provides persistence for property listings.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Property is a stored listing.
type Property struct {
	ID           uuid.UUID
	Title        string
	Description  *string
	Price        float64
	City         string
	Location     string
	PropertyType string
	Bedrooms     *int
	AreaSqm      *float64
	Status       string
	PhotoKeys    []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateParams holds the fields for a new listing.
type CreateParams struct {
	Title        string
	Description  *string
	Price        float64
	City         string
	Location     string
	PropertyType string
	Bedrooms     *int
	AreaSqm      *float64
}

// UpdateParams holds a partial listing update. Nil fields are left unchanged.
type UpdateParams struct {
	ID           uuid.UUID
	Title        *string
	Description  *string
	Price        *float64
	City         *string
	Location     *string
	PropertyType *string
	Bedrooms     *int
	AreaSqm      *float64
}

// ListParams filters the listing query.
type ListParams struct {
	City     *string
	Type     *string
	Status   *string
	MaxPrice *float64
	Limit    int
	Offset   int
}

// CandidateParams selects match candidates for a lead.
type CandidateParams struct {
	MaxPrice *float64
	Limit    int
}

// Repository defines property persistence operations.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Property, error)
	GetByID(ctx context.Context, id uuid.UUID) (Property, error)
	List(ctx context.Context, params ListParams) ([]Property, int, error)
	Update(ctx context.Context, params UpdateParams) (Property, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Property, error)
	AddPhotoKey(ctx context.Context, id uuid.UUID, key string) (Property, error)
	RemovePhotoKey(ctx context.Context, id uuid.UUID, key string) (Property, error)
	ListCandidates(ctx context.Context, params CandidateParams) ([]Property, error)
}
