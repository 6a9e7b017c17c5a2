package matching

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"imogest_backend/internal/http"
	leadrepo "imogest_backend/internal/leads/repository"
	proprepo "imogest_backend/internal/properties/repository"
	"imogest_backend/platform/apperr"
	"imogest_backend/platform/httpkit"
	"imogest_backend/platform/logger"
)

// Module exposes lead-to-property matching over HTTP.
type Module struct {
	svc *Service
}

// NewModule constructs the matching module. cache may be nil.
func NewModule(leads leadrepo.Repository, properties proprepo.Repository, cache *redis.Client, log *logger.Logger) *Module {
	return &Module{svc: New(leads, properties, cache, log)}
}

// Name implements http.Module.
func (m *Module) Name() string { return "matching" }

// RegisterRoutes implements http.Module.
func (m *Module) RegisterRoutes(ctx *http.RouterContext) {
	ctx.Protected.GET("/leads/:id/matches", m.findMatches)
}

func (m *Module) findMatches(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid lead id"))
		return
	}

	matches, err := m.svc.FindMatchesForLead(c.Request.Context(), id)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, gin.H{"items": matches, "total": len(matches)})
}
