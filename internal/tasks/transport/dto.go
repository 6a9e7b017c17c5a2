// Package transport defines the HTTP DTOs of the tasks module.
package transport

import (
	"time"

	"github.com/google/uuid"

	"imogest_backend/internal/tasks/repository"
)

// CreateTaskRequest carries a new agenda task. RemindBeforeMinutes of zero
// disables the reminder.
type CreateTaskRequest struct {
	LeadID              *uuid.UUID `json:"leadId"`
	PropertyID          *uuid.UUID `json:"propertyId"`
	Title               string     `json:"title" validate:"required,min=2,max=200"`
	Notes               *string    `json:"notes" validate:"omitempty,max=5000"`
	DueAt               time.Time  `json:"dueAt" validate:"required"`
	RemindBeforeMinutes int        `json:"remindBeforeMinutes" validate:"gte=0,lte=10080"`
}

// UpdateTaskRequest carries a partial task update.
type UpdateTaskRequest struct {
	Title               *string    `json:"title" validate:"omitempty,min=2,max=200"`
	Notes               *string    `json:"notes" validate:"omitempty,max=5000"`
	DueAt               *time.Time `json:"dueAt"`
	RemindBeforeMinutes *int       `json:"remindBeforeMinutes" validate:"omitempty,gte=0,lte=10080"`
}

// ChangeStatusRequest transitions a task.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending done cancelled"`
}

// ListTasksRequest filters the task listing.
type ListTasksRequest struct {
	LeadID     *uuid.UUID `form:"leadId"`
	PropertyID *uuid.UUID `form:"propertyId"`
	Status     string     `form:"status"`
	DueBefore  *time.Time `form:"dueBefore" time_format:"2006-01-02T15:04:05Z07:00"`
	Page       int        `form:"page"`
	PageSize   int        `form:"pageSize"`
}

// TaskResponse is the API shape of a task.
type TaskResponse struct {
	ID                  uuid.UUID  `json:"id"`
	LeadID              *uuid.UUID `json:"leadId,omitempty"`
	PropertyID          *uuid.UUID `json:"propertyId,omitempty"`
	Title               string     `json:"title"`
	Notes               *string    `json:"notes,omitempty"`
	DueAt               time.Time  `json:"dueAt"`
	RemindBeforeMinutes int        `json:"remindBeforeMinutes"`
	Status              string     `json:"status"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// TaskListResponse pages tasks.
type TaskListResponse struct {
	Items    []TaskResponse `json:"items"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

// ToTaskResponse maps a stored task to its API shape.
func ToTaskResponse(t repository.Task) TaskResponse {
	return TaskResponse{
		ID:                  t.ID,
		LeadID:              t.LeadID,
		PropertyID:          t.PropertyID,
		Title:               t.Title,
		Notes:               t.Notes,
		DueAt:               t.DueAt,
		RemindBeforeMinutes: int(t.RemindBefore / time.Minute),
		Status:              t.Status,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
}
