// Package service provides business logic for agenda tasks and their
// reminders.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"imogest_backend/internal/scheduler"
	"imogest_backend/internal/tasks/repository"
	"imogest_backend/internal/tasks/transport"
	"imogest_backend/platform/apperr"
	"imogest_backend/platform/logger"
)

// Service orchestrates task CRUD and reminder scheduling.
type Service struct {
	repo      repository.Repository
	reminders scheduler.ReminderScheduler
	log       *logger.Logger
}

// New creates a tasks service. reminders may be nil when the queue is not
// configured, in which case no reminders are scheduled.
func New(repo repository.Repository, reminders scheduler.ReminderScheduler, log *logger.Logger) *Service {
	return &Service{repo: repo, reminders: reminders, log: log}
}

// RemindAt computes when the reminder for a task should fire. Zero means no
// reminder.
func RemindAt(dueAt time.Time, remindBefore time.Duration) time.Time {
	if remindBefore <= 0 {
		return time.Time{}
	}
	return dueAt.Add(-remindBefore)
}

// Create stores a task and schedules its reminder when one is requested.
// Reminder scheduling failures are logged, the task itself is kept.
func (s *Service) Create(ctx context.Context, req transport.CreateTaskRequest) (transport.TaskResponse, error) {
	if !req.DueAt.After(time.Now()) {
		return transport.TaskResponse{}, apperr.Validation("due date must be in the future")
	}

	remindBefore := time.Duration(req.RemindBeforeMinutes) * time.Minute

	task, err := s.repo.Create(ctx, repository.CreateParams{
		LeadID:       req.LeadID,
		PropertyID:   req.PropertyID,
		Title:        req.Title,
		Notes:        req.Notes,
		DueAt:        req.DueAt,
		RemindBefore: remindBefore,
	})
	if err != nil {
		return transport.TaskResponse{}, err
	}

	s.scheduleReminder(ctx, task)

	s.log.Info("task created", "id", task.ID, "due_at", task.DueAt)
	return transport.ToTaskResponse(task), nil
}

// GetByID retrieves a task.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.TaskResponse, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.TaskResponse{}, err
	}
	return transport.ToTaskResponse(task), nil
}

// List retrieves tasks filtered and paged.
func (s *Service) List(ctx context.Context, req transport.ListTasksRequest) (transport.TaskListResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	params := repository.ListParams{
		LeadID:     req.LeadID,
		PropertyID: req.PropertyID,
		DueBefore:  req.DueBefore,
		Limit:      pageSize,
		Offset:     (page - 1) * pageSize,
	}
	if req.Status != "" {
		if req.Status != "pending" && req.Status != "done" && req.Status != "cancelled" {
			return transport.TaskListResponse{}, apperr.Validation("invalid task status: " + req.Status)
		}
		status := req.Status
		params.Status = &status
	}

	tasks, total, err := s.repo.List(ctx, params)
	if err != nil {
		return transport.TaskListResponse{}, err
	}

	items := make([]transport.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, transport.ToTaskResponse(task))
	}

	return transport.TaskListResponse{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

// Update applies a partial update. A rescheduled due date gets a fresh
// reminder for the remaining offset.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateTaskRequest) (transport.TaskResponse, error) {
	var remindBefore *time.Duration
	if req.RemindBeforeMinutes != nil {
		d := time.Duration(*req.RemindBeforeMinutes) * time.Minute
		remindBefore = &d
	}

	task, err := s.repo.Update(ctx, repository.UpdateParams{
		ID:           id,
		Title:        req.Title,
		Notes:        req.Notes,
		DueAt:        req.DueAt,
		RemindBefore: remindBefore,
	})
	if err != nil {
		return transport.TaskResponse{}, err
	}

	if req.DueAt != nil || req.RemindBeforeMinutes != nil {
		s.scheduleReminder(ctx, task)
	}

	return transport.ToTaskResponse(task), nil
}

// Delete removes a task.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ChangeStatus transitions a task.
func (s *Service) ChangeStatus(ctx context.Context, id uuid.UUID, status string) (transport.TaskResponse, error) {
	task, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return transport.TaskResponse{}, err
	}
	return transport.ToTaskResponse(task), nil
}

func (s *Service) scheduleReminder(ctx context.Context, task repository.Task) {
	if s.reminders == nil {
		return
	}

	runAt := RemindAt(task.DueAt, task.RemindBefore)
	if runAt.IsZero() || runAt.Before(time.Now()) {
		return
	}

	payload := scheduler.TaskReminderPayload{TaskID: task.ID.String()}
	if err := s.reminders.ScheduleTaskReminder(ctx, payload, runAt); err != nil {
		s.log.Error("failed to schedule task reminder", "task_id", task.ID, "run_at", runAt, "error", err)
	}
}
