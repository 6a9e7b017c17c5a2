// Package properties wires the listing management bounded context.
package properties

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"imogest_backend/internal/events"
	"imogest_backend/internal/http"
	"imogest_backend/internal/properties/handler"
	"imogest_backend/internal/properties/repository"
	"imogest_backend/internal/properties/service"
	"imogest_backend/internal/storage"
	"imogest_backend/platform/logger"
	"imogest_backend/platform/validator"
)

// Module bundles the properties handlers and their dependencies.
type Module struct {
	handler *handler.Handler
	repo    *repository.Repo
}

// NewModule constructs the properties module. store may be nil when object
// storage is disabled.
func NewModule(pool *pgxpool.Pool, store storage.ObjectStore, photoBucket string, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, store, photoBucket, bus, log)
	return &Module{
		handler: handler.New(svc, val),
		repo:    repo,
	}
}

// Name implements http.Module.
func (m *Module) Name() string { return "properties" }

// Repository exposes the property repository for the matching module.
func (m *Module) Repository() repository.Repository { return m.repo }

// RegisterRoutes implements http.Module.
func (m *Module) RegisterRoutes(ctx *http.RouterContext) {
	group := ctx.Protected.Group("/properties")
	group.POST("", m.handler.Create)
	group.GET("", m.handler.List)
	group.GET("/:id", m.handler.Get)
	group.PATCH("/:id", m.handler.Update)
	group.DELETE("/:id", m.handler.Delete)
	group.POST("/:id/status", m.handler.ChangeStatus)
	group.POST("/:id/photos", m.handler.PresignPhotoUpload)
	group.GET("/:id/photos", m.handler.PresignPhotoDownload)
	group.DELETE("/:id/photos", m.handler.DeletePhoto)
}
