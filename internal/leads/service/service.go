// Package service provides business logic for the leads bounded context.
package service

import (
	"context"

	"github.com/google/uuid"

	"imogest_backend/internal/events"
	"imogest_backend/internal/leads/domain"
	"imogest_backend/internal/leads/repository"
	"imogest_backend/internal/leads/scoring"
	"imogest_backend/internal/leads/transport"
	"imogest_backend/platform/logger"
	"imogest_backend/platform/phone"
)

// Service orchestrates lead CRUD, pipeline transitions, and rescoring.
type Service struct {
	repo   repository.Repository
	scorer *scoring.Service
	bus    events.Bus
	log    *logger.Logger
}

// New creates a new leads service.
func New(repo repository.Repository, scorer *scoring.Service, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, scorer: scorer, bus: bus, log: log}
}

// Create stores a new lead, normalizes its phone number, scores it, and
// publishes LeadCreated.
func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	intent, err := domain.ParseIntent(req.Intent)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	params := repository.CreateParams{
		Name:               req.Name,
		Email:              req.Email,
		Phone:              normalizePhone(req.Phone),
		Budget:             req.Budget,
		LocationPreference: req.LocationPreference,
		PropertyType:       req.PropertyType,
		Intent:             intent.String(),
		AssignedAgentID:    req.AssignedAgentID,
		Source:             req.Source,
		Notes:              req.Notes,
	}

	lead, err := s.repo.Create(ctx, params)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	result := s.scorer.CalculateLeadScore(ctx, lead.ID)
	lead.Score = result.Score

	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent:       events.NewBaseEvent(),
		LeadID:          lead.ID,
		Name:            lead.Name,
		Email:           deref(lead.Email),
		Phone:           deref(lead.Phone),
		Source:          deref(lead.Source),
		AssignedAgentID: lead.AssignedAgentID,
	})

	s.log.Info("lead created", "id", lead.ID, "name", lead.Name, "score", lead.Score)
	return transport.ToLeadResponse(lead), nil
}

// GetByID retrieves a lead.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	return transport.ToLeadResponse(lead), nil
}

// List retrieves leads filtered and paged.
func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) (transport.LeadListResponse, error) {
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

	var status *string
	if req.Status != "" {
		parsed, err := domain.ParseStatus(req.Status)
		if err != nil {
			return transport.LeadListResponse{}, err
		}
		value := parsed.String()
		status = &value
	}

	leads, total, err := s.repo.List(ctx, repository.ListParams{
		Status: status,
		Search: req.Search,
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		return transport.LeadListResponse{}, err
	}

	items := make([]transport.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		items = append(items, transport.ToLeadResponse(lead))
	}

	return transport.LeadListResponse{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

// Update applies a partial update and rescores the lead, since completeness
// fields may have changed.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateLeadRequest) (transport.LeadResponse, error) {
	if req.Intent != nil {
		if _, err := domain.ParseIntent(*req.Intent); err != nil {
			return transport.LeadResponse{}, err
		}
	}

	lead, err := s.repo.Update(ctx, repository.UpdateParams{
		ID:                 id,
		Name:               req.Name,
		Email:              req.Email,
		Phone:              normalizePhone(req.Phone),
		Budget:             req.Budget,
		LocationPreference: req.LocationPreference,
		PropertyType:       req.PropertyType,
		Intent:             req.Intent,
		AssignedAgentID:    req.AssignedAgentID,
		Source:             req.Source,
		Notes:              req.Notes,
	})
	if err != nil {
		return transport.LeadResponse{}, err
	}

	result := s.scorer.CalculateLeadScore(ctx, lead.ID)
	lead.Score = result.Score

	return transport.ToLeadResponse(lead), nil
}

// Delete removes a lead.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("lead deleted", "id", id)
	return nil
}

// ChangeStatus moves a lead through the pipeline, rescores it, and publishes
// LeadStageChanged.
func (s *Service) ChangeStatus(ctx context.Context, id uuid.UUID, rawStatus string) (transport.LeadResponse, error) {
	status, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	lead, err := s.repo.UpdateStatus(ctx, id, status.String())
	if err != nil {
		return transport.LeadResponse{}, err
	}

	result := s.scorer.CalculateLeadScore(ctx, lead.ID)
	lead.Score = result.Score

	if current.Status != lead.Status {
		s.bus.Publish(ctx, events.LeadStageChanged{
			BaseEvent:       events.NewBaseEvent(),
			LeadID:          lead.ID,
			Name:            lead.Name,
			OldStatus:       current.Status,
			NewStatus:       lead.Status,
			AssignedAgentID: lead.AssignedAgentID,
		})
	}

	return transport.ToLeadResponse(lead), nil
}

// Score recomputes the lead's score on demand.
func (s *Service) Score(ctx context.Context, id uuid.UUID) scoring.Result {
	return s.scorer.CalculateLeadScore(ctx, id)
}

func normalizePhone(raw *string) *string {
	if raw == nil {
		return nil
	}
	normalized := phone.NormalizeE164(*raw)
	return &normalized
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
