// Package leads wires the lead management bounded context.
package leads

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"imogest_backend/internal/events"
	"imogest_backend/internal/http"
	"imogest_backend/internal/leads/handler"
	"imogest_backend/internal/leads/repository"
	"imogest_backend/internal/leads/scoring"
	"imogest_backend/internal/leads/service"
	"imogest_backend/platform/logger"
	"imogest_backend/platform/validator"
)

// Module bundles the leads handlers and their dependencies.
type Module struct {
	handler *handler.Handler
	repo    *repository.Repo
	scorer  *scoring.Service
	svc     *service.Service
}

// NewModule constructs the leads module.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	scorer := scoring.New(repo, bus, log)
	svc := service.New(repo, scorer, bus, log)
	return &Module{
		handler: handler.New(svc, val),
		repo:    repo,
		scorer:  scorer,
		svc:     svc,
	}
}

// Name implements http.Module.
func (m *Module) Name() string { return "leads" }

// Scorer exposes the scoring service for other modules and the worker.
func (m *Module) Scorer() *scoring.Service { return m.scorer }

// Repository exposes the lead repository for the matching module.
func (m *Module) Repository() repository.Repository { return m.repo }

// RegisterRoutes implements http.Module.
func (m *Module) RegisterRoutes(ctx *http.RouterContext) {
	group := ctx.Protected.Group("/leads")
	group.POST("", m.handler.Create)
	group.GET("", m.handler.List)
	group.GET("/:id", m.handler.Get)
	group.PATCH("/:id", m.handler.Update)
	group.DELETE("/:id", m.handler.Delete)
	group.POST("/:id/status", m.handler.ChangeStatus)
	group.POST("/:id/score", m.handler.Score)
}
