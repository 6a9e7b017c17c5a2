package service

import (
	"context"

	"github.com/google/uuid"

	"imogest_backend/internal/properties/transport"
	"imogest_backend/platform/apperr"
)

// CreatePhotoUploadURL presigns a PUT URL for a listing photo and records the
// object key on the listing.
func (s *Service) CreatePhotoUploadURL(ctx context.Context, propertyID uuid.UUID, req transport.PhotoUploadRequest) (transport.PhotoResponse, error) {
	if s.store == nil {
		return transport.PhotoResponse{}, apperr.Validation("object storage is not configured")
	}

	if _, err := s.repo.GetByID(ctx, propertyID); err != nil {
		return transport.PhotoResponse{}, err
	}

	presigned, err := s.store.GenerateUploadURL(ctx, s.photoBucket, propertyID.String(), req.FileName, req.ContentType, req.SizeBytes)
	if err != nil {
		return transport.PhotoResponse{}, err
	}

	if _, err := s.repo.AddPhotoKey(ctx, propertyID, presigned.FileKey); err != nil {
		return transport.PhotoResponse{}, err
	}

	s.log.Info("photo upload presigned", "property_id", propertyID, "key", presigned.FileKey)
	return transport.ToPhotoResponse(presigned), nil
}

// CreatePhotoDownloadURL presigns a GET URL for a stored listing photo.
func (s *Service) CreatePhotoDownloadURL(ctx context.Context, propertyID uuid.UUID, fileKey string) (transport.PhotoResponse, error) {
	if s.store == nil {
		return transport.PhotoResponse{}, apperr.Validation("object storage is not configured")
	}

	property, err := s.repo.GetByID(ctx, propertyID)
	if err != nil {
		return transport.PhotoResponse{}, err
	}
	if !hasPhotoKey(property.PhotoKeys, fileKey) {
		return transport.PhotoResponse{}, apperr.NotFound("photo not found")
	}

	presigned, err := s.store.GenerateDownloadURL(ctx, s.photoBucket, fileKey)
	if err != nil {
		return transport.PhotoResponse{}, err
	}
	return transport.ToPhotoResponse(presigned), nil
}

// DeletePhoto removes a photo object and detaches it from the listing.
func (s *Service) DeletePhoto(ctx context.Context, propertyID uuid.UUID, fileKey string) error {
	if s.store == nil {
		return apperr.Validation("object storage is not configured")
	}

	property, err := s.repo.GetByID(ctx, propertyID)
	if err != nil {
		return err
	}
	if !hasPhotoKey(property.PhotoKeys, fileKey) {
		return apperr.NotFound("photo not found")
	}

	if err := s.store.DeleteObject(ctx, s.photoBucket, fileKey); err != nil {
		return err
	}
	if _, err := s.repo.RemovePhotoKey(ctx, propertyID, fileKey); err != nil {
		return err
	}

	s.log.Info("photo deleted", "property_id", propertyID, "key", fileKey)
	return nil
}

func hasPhotoKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
