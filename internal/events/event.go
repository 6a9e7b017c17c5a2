// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"imogest_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCreated is published when a new lead enters the pipeline.
type LeadCreated struct {
	BaseEvent
	LeadID          uuid.UUID  `json:"leadId"`
	Name            string     `json:"name"`
	Email           string     `json:"email,omitempty"`
	Phone           string     `json:"phone,omitempty"`
	Source          string     `json:"source,omitempty"`
	AssignedAgentID *uuid.UUID `json:"assignedAgentId,omitempty"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// LeadStageChanged is published when a lead moves to a different pipeline stage.
type LeadStageChanged struct {
	BaseEvent
	LeadID          uuid.UUID  `json:"leadId"`
	Name            string     `json:"name"`
	OldStatus       string     `json:"oldStatus"`
	NewStatus       string     `json:"newStatus"`
	AssignedAgentID *uuid.UUID `json:"assignedAgentId,omitempty"`
}

func (e LeadStageChanged) EventName() string { return "leads.stage.changed" }

// LeadScoreUpdated is published after a lead score recomputation that changed
// the persisted value.
type LeadScoreUpdated struct {
	BaseEvent
	LeadID   uuid.UUID `json:"leadId"`
	OldScore int       `json:"oldScore"`
	NewScore int       `json:"newScore"`
}

func (e LeadScoreUpdated) EventName() string { return "leads.score.updated" }

// =============================================================================
// Properties Domain Events
// =============================================================================

// PropertyStatusChanged is published when a listing changes availability.
type PropertyStatusChanged struct {
	BaseEvent
	PropertyID uuid.UUID `json:"propertyId"`
	Title      string    `json:"title"`
	OldStatus  string    `json:"oldStatus"`
	NewStatus  string    `json:"newStatus"`
}

func (e PropertyStatusChanged) EventName() string { return "properties.status.changed" }

// =============================================================================
// Tasks Domain Events
// =============================================================================

// TaskReminderDue is published by the worker when a task reminder fires.
type TaskReminderDue struct {
	BaseEvent
	TaskID     uuid.UUID  `json:"taskId"`
	LeadID     *uuid.UUID `json:"leadId,omitempty"`
	PropertyID *uuid.UUID `json:"propertyId,omitempty"`
	Title      string     `json:"title"`
	DueAt      time.Time  `json:"dueAt"`
}

func (e TaskReminderDue) EventName() string { return "tasks.reminder.due" }
