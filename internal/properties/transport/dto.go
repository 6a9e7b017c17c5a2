// Package transport defines the HTTP DTOs of the properties module.
package transport

import (
	"time"

	"github.com/google/uuid"

	"imogest_backend/internal/properties/repository"
	"imogest_backend/internal/storage"
)

// CreatePropertyRequest carries a new listing.
type CreatePropertyRequest struct {
	Title        string   `json:"title" validate:"required,min=2,max=200"`
	Description  *string  `json:"description" validate:"omitempty,max=10000"`
	Price        float64  `json:"price" validate:"required,gt=0"`
	City         string   `json:"city" validate:"required,max=100"`
	Location     string   `json:"location" validate:"required,max=200"`
	PropertyType string   `json:"propertyType" validate:"required,oneof=apartment house land office store"`
	Bedrooms     *int     `json:"bedrooms" validate:"omitempty,gte=0,lte=50"`
	AreaSqm      *float64 `json:"areaSqm" validate:"omitempty,gt=0"`
}

// UpdatePropertyRequest carries a partial listing update.
type UpdatePropertyRequest struct {
	Title        *string  `json:"title" validate:"omitempty,min=2,max=200"`
	Description  *string  `json:"description" validate:"omitempty,max=10000"`
	Price        *float64 `json:"price" validate:"omitempty,gt=0"`
	City         *string  `json:"city" validate:"omitempty,max=100"`
	Location     *string  `json:"location" validate:"omitempty,max=200"`
	PropertyType *string  `json:"propertyType" validate:"omitempty,oneof=apartment house land office store"`
	Bedrooms     *int     `json:"bedrooms" validate:"omitempty,gte=0,lte=50"`
	AreaSqm      *float64 `json:"areaSqm" validate:"omitempty,gt=0"`
}

// ChangeStatusRequest moves a listing to another availability status.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListPropertiesRequest filters the listing query.
type ListPropertiesRequest struct {
	City     string   `form:"city"`
	Type     string   `form:"type"`
	Status   string   `form:"status"`
	MaxPrice *float64 `form:"maxPrice"`
	Page     int      `form:"page"`
	PageSize int      `form:"pageSize"`
}

// PhotoUploadRequest asks for a presigned upload URL for a listing photo.
type PhotoUploadRequest struct {
	FileName    string `json:"fileName" validate:"required,max=255"`
	ContentType string `json:"contentType" validate:"required,max=100"`
	SizeBytes   int64  `json:"sizeBytes" validate:"required,gt=0"`
}

// PhotoResponse returns a presigned URL for a photo operation.
type PhotoResponse struct {
	URL       string    `json:"url"`
	FileKey   string    `json:"fileKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// PropertyResponse is the API shape of a listing.
type PropertyResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description,omitempty"`
	Price        float64   `json:"price"`
	City         string    `json:"city"`
	Location     string    `json:"location"`
	PropertyType string    `json:"propertyType"`
	Bedrooms     *int      `json:"bedrooms,omitempty"`
	AreaSqm      *float64  `json:"areaSqm,omitempty"`
	Status       string    `json:"status"`
	PhotoKeys    []string  `json:"photoKeys"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PropertyListResponse pages listings.
type PropertyListResponse struct {
	Items    []PropertyResponse `json:"items"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"pageSize"`
}

// ToPropertyResponse maps a stored listing to its API shape.
func ToPropertyResponse(p repository.Property) PropertyResponse {
	photoKeys := p.PhotoKeys
	if photoKeys == nil {
		photoKeys = []string{}
	}
	return PropertyResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Price:        p.Price,
		City:         p.City,
		Location:     p.Location,
		PropertyType: p.PropertyType,
		Bedrooms:     p.Bedrooms,
		AreaSqm:      p.AreaSqm,
		Status:       p.Status,
		PhotoKeys:    photoKeys,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToPhotoResponse maps a presigned URL to its API shape.
func ToPhotoResponse(u *storage.PresignedURL) PhotoResponse {
	return PhotoResponse{URL: u.URL, FileKey: u.FileKey, ExpiresAt: u.ExpiresAt}
}
