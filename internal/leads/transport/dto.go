// Package transport defines request and response DTOs for the leads API.
package transport

import (
	"time"

	"github.com/google/uuid"

	"imogest_backend/internal/leads/repository"
)

// CreateLeadRequest is the payload for creating a lead.
type CreateLeadRequest struct {
	Name               string     `json:"name" validate:"required,min=2,max=200"`
	Email              *string    `json:"email" validate:"omitempty,email"`
	Phone              *string    `json:"phone" validate:"omitempty,min=6,max=32"`
	Budget             *float64   `json:"budget" validate:"omitempty,gt=0"`
	LocationPreference *string    `json:"locationPreference" validate:"omitempty,max=200"`
	PropertyType       *string    `json:"propertyType" validate:"omitempty,oneof=apartment house land office store"`
	Intent             string     `json:"intent" validate:"omitempty,oneof=buyer tenant investor"`
	AssignedAgentID    *uuid.UUID `json:"assignedAgentId"`
	Source             *string    `json:"source" validate:"omitempty,max=100"`
	Notes              *string    `json:"notes" validate:"omitempty,max=5000"`
}

// UpdateLeadRequest carries a partial lead update.
type UpdateLeadRequest struct {
	Name               *string    `json:"name" validate:"omitempty,min=2,max=200"`
	Email              *string    `json:"email" validate:"omitempty,email"`
	Phone              *string    `json:"phone" validate:"omitempty,min=6,max=32"`
	Budget             *float64   `json:"budget" validate:"omitempty,gt=0"`
	LocationPreference *string    `json:"locationPreference" validate:"omitempty,max=200"`
	PropertyType       *string    `json:"propertyType" validate:"omitempty,oneof=apartment house land office store"`
	Intent             *string    `json:"intent" validate:"omitempty,oneof=buyer tenant investor"`
	AssignedAgentID    *uuid.UUID `json:"assignedAgentId"`
	Source             *string    `json:"source" validate:"omitempty,max=100"`
	Notes              *string    `json:"notes" validate:"omitempty,max=5000"`
}

// ChangeStatusRequest moves a lead to another pipeline stage.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListLeadsRequest filters the lead listing.
type ListLeadsRequest struct {
	Status   string `form:"status"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// LeadResponse is the API shape of a lead.
type LeadResponse struct {
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

// LeadListResponse pages lead results.
type LeadListResponse struct {
	Items    []LeadResponse `json:"items"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

// ToLeadResponse maps a stored lead to its API shape.
func ToLeadResponse(lead repository.Lead) LeadResponse {
	return LeadResponse{
		ID:                 lead.ID,
		Name:               lead.Name,
		Email:              lead.Email,
		Phone:              lead.Phone,
		Budget:             lead.Budget,
		LocationPreference: lead.LocationPreference,
		PropertyType:       lead.PropertyType,
		Intent:             lead.Intent,
		Status:             lead.Status,
		Score:              lead.Score,
		AssignedAgentID:    lead.AssignedAgentID,
		Source:             lead.Source,
		Notes:              lead.Notes,
		CreatedAt:          lead.CreatedAt,
		UpdatedAt:          lead.UpdatedAt,
	}
}
