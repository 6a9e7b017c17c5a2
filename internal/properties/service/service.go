// Package service provides business logic for property listings.
package service

import (
	"context"

	"github.com/google/uuid"

	"imogest_backend/internal/events"
	"imogest_backend/internal/properties/domain"
	"imogest_backend/internal/properties/repository"
	"imogest_backend/internal/properties/transport"
	"imogest_backend/internal/storage"
	"imogest_backend/platform/logger"
)

// Service orchestrates listing CRUD, availability transitions, and photo
// presigning.
type Service struct {
	repo        repository.Repository
	store       storage.ObjectStore
	photoBucket string
	bus         events.Bus
	log         *logger.Logger
}

// New creates a properties service. store may be nil when object storage is
// not configured; photo operations then fail with a validation error.
func New(repo repository.Repository, store storage.ObjectStore, photoBucket string, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, store: store, photoBucket: photoBucket, bus: bus, log: log}
}

// Create stores a new listing.
func (s *Service) Create(ctx context.Context, req transport.CreatePropertyRequest) (transport.PropertyResponse, error) {
	if _, err := domain.ParseType(req.PropertyType); err != nil {
		return transport.PropertyResponse{}, err
	}

	property, err := s.repo.Create(ctx, repository.CreateParams{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		City:         req.City,
		Location:     req.Location,
		PropertyType: req.PropertyType,
		Bedrooms:     req.Bedrooms,
		AreaSqm:      req.AreaSqm,
	})
	if err != nil {
		return transport.PropertyResponse{}, err
	}

	s.log.Info("property created", "id", property.ID, "title", property.Title, "price", property.Price)
	return transport.ToPropertyResponse(property), nil
}

// GetByID retrieves a listing.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.PropertyResponse, error) {
	property, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.PropertyResponse{}, err
	}
	return transport.ToPropertyResponse(property), nil
}

// List retrieves listings filtered and paged.
func (s *Service) List(ctx context.Context, req transport.ListPropertiesRequest) (transport.PropertyListResponse, error) {
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
		MaxPrice: req.MaxPrice,
		Limit:    pageSize,
		Offset:   (page - 1) * pageSize,
	}
	if req.City != "" {
		city := req.City
		params.City = &city
	}
	if req.Type != "" {
		parsed, err := domain.ParseType(req.Type)
		if err != nil {
			return transport.PropertyListResponse{}, err
		}
		value := parsed.String()
		params.Type = &value
	}
	if req.Status != "" {
		parsed, err := domain.ParseStatus(req.Status)
		if err != nil {
			return transport.PropertyListResponse{}, err
		}
		value := parsed.String()
		params.Status = &value
	}

	properties, total, err := s.repo.List(ctx, params)
	if err != nil {
		return transport.PropertyListResponse{}, err
	}

	items := make([]transport.PropertyResponse, 0, len(properties))
	for _, property := range properties {
		items = append(items, transport.ToPropertyResponse(property))
	}

	return transport.PropertyListResponse{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

// Update applies a partial update to a listing.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdatePropertyRequest) (transport.PropertyResponse, error) {
	if req.PropertyType != nil {
		if _, err := domain.ParseType(*req.PropertyType); err != nil {
			return transport.PropertyResponse{}, err
		}
	}

	property, err := s.repo.Update(ctx, repository.UpdateParams{
		ID:           id,
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		City:         req.City,
		Location:     req.Location,
		PropertyType: req.PropertyType,
		Bedrooms:     req.Bedrooms,
		AreaSqm:      req.AreaSqm,
	})
	if err != nil {
		return transport.PropertyResponse{}, err
	}
	return transport.ToPropertyResponse(property), nil
}

// Delete removes a listing and its stored photos.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	property, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.store != nil {
		// Photo cleanup is best effort, orphaned objects are harmless.
		for _, key := range property.PhotoKeys {
			if err := s.store.DeleteObject(ctx, s.photoBucket, key); err != nil {
				s.log.Warn("failed to delete property photo", "property_id", id, "key", key, "error", err)
			}
		}
	}

	s.log.Info("property deleted", "id", id)
	return nil
}

// ChangeStatus changes a listing's availability and publishes
// PropertyStatusChanged.
func (s *Service) ChangeStatus(ctx context.Context, id uuid.UUID, rawStatus string) (transport.PropertyResponse, error) {
	status, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return transport.PropertyResponse{}, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.PropertyResponse{}, err
	}

	property, err := s.repo.UpdateStatus(ctx, id, status.String())
	if err != nil {
		return transport.PropertyResponse{}, err
	}

	if current.Status != property.Status {
		s.bus.Publish(ctx, events.PropertyStatusChanged{
			BaseEvent:  events.NewBaseEvent(),
			PropertyID: property.ID,
			Title:      property.Title,
			OldStatus:  current.Status,
			NewStatus:  property.Status,
		})
	}

	return transport.ToPropertyResponse(property), nil
}
