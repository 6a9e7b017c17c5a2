package financing

import (
	"github.com/gin-gonic/gin"

	"imogest_backend/internal/http"
	"imogest_backend/platform/apperr"
	"imogest_backend/platform/httpkit"
	"imogest_backend/platform/validator"
)

// SimulateRequest carries the inputs of a financing simulation.
type SimulateRequest struct {
	PropertyValue float64 `json:"propertyValue" validate:"required,gt=0"`
	DownPayment   float64 `json:"downPayment" validate:"gte=0"`
	InterestRate  float64 `json:"interestRate" validate:"gte=0"`
	Spread        float64 `json:"spread" validate:"gte=0"`
	TermYears     int     `json:"termYears" validate:"required,gte=1,lte=50"`
}

// SimulateResponse bundles the mortgage schedule with the acquisition costs.
type SimulateResponse struct {
	Mortgage   MortgageResult `json:"mortgage"`
	ExtraCosts ExtraCosts     `json:"extraCosts"`
}

// Module exposes the financing simulator over HTTP.
type Module struct {
	val *validator.Validator
}

// NewModule constructs the financing module.
func NewModule(val *validator.Validator) *Module {
	return &Module{val: val}
}

// Name implements http.Module.
func (m *Module) Name() string { return "financing" }

// RegisterRoutes implements http.Module.
func (m *Module) RegisterRoutes(ctx *http.RouterContext) {
	ctx.Protected.POST("/financing/simulate", m.simulate)
}

func (m *Module) simulate(c *gin.Context) {
	var req SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body"))
		return
	}
	if err := m.val.Struct(req); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	mortgage, err := CalculateMortgage(MortgageParams{
		PropertyValue: req.PropertyValue,
		DownPayment:   req.DownPayment,
		InterestRate:  req.InterestRate,
		Spread:        req.Spread,
		TermYears:     req.TermYears,
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	costs, err := CalculateExtraCosts(req.PropertyValue)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, SimulateResponse{Mortgage: mortgage, ExtraCosts: costs})
}
