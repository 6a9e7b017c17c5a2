// Package tasks wires the agenda bounded context.
package tasks

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"imogest_backend/internal/http"
	"imogest_backend/internal/scheduler"
	"imogest_backend/internal/tasks/handler"
	"imogest_backend/internal/tasks/repository"
	"imogest_backend/internal/tasks/service"
	"imogest_backend/platform/logger"
	"imogest_backend/platform/validator"
)

// Module bundles the tasks handlers and their dependencies.
type Module struct {
	handler *handler.Handler
}

// NewModule constructs the tasks module. reminders may be nil when the job
// queue is not configured.
func NewModule(pool *pgxpool.Pool, reminders scheduler.ReminderScheduler, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, reminders, log)
	return &Module{handler: handler.New(svc, val)}
}

// Name implements http.Module.
func (m *Module) Name() string { return "tasks" }

// RegisterRoutes implements http.Module.
func (m *Module) RegisterRoutes(ctx *http.RouterContext) {
	group := ctx.Protected.Group("/tasks")
	group.POST("", m.handler.Create)
	group.GET("", m.handler.List)
	group.GET("/:id", m.handler.Get)
	group.PATCH("/:id", m.handler.Update)
	group.DELETE("/:id", m.handler.Delete)
	group.POST("/:id/status", m.handler.ChangeStatus)
}
