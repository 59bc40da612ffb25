package dto

import (
	"time"

	"github.com/quotestash/quotestash/internal/model"
)

// CreateCollectionRequest represents the request body for creating a collection.
type CreateCollectionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	IsDefault   bool   `json:"isDefault,omitempty"`
}

// UpdateCollectionRequest represents the request body for updating a collection.
// All fields are optional; at least one must be present.
type UpdateCollectionRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	IsDefault   *bool   `json:"isDefault,omitempty"`
}

// HasFields reports whether any patchable field is present.
func (r UpdateCollectionRequest) HasFields() bool {
	return r.Name != nil || r.Description != nil || r.Icon != nil || r.IsDefault != nil
}

// CollectionResponse represents a collection in API responses.
type CollectionResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	IsDefault   bool      `json:"isDefault"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CollectionListResponse represents the owner's collections.
type CollectionListResponse struct {
	Items []CollectionResponse `json:"items"`
	Total int                  `json:"total"`
}

// ToCollectionResponse converts a Collection model to its response DTO.
func ToCollectionResponse(collection *model.Collection) *CollectionResponse {
	return &CollectionResponse{
		ID:          collection.ID,
		Name:        collection.Name,
		Description: collection.Description,
		Icon:        collection.Icon,
		IsDefault:   collection.IsDefault,
		CreatedAt:   collection.CreatedAt,
		UpdatedAt:   collection.UpdatedAt,
	}
}

// ToCollectionListResponse converts a slice of Collection models.
func ToCollectionListResponse(collections []*model.Collection) *CollectionListResponse {
	items := make([]CollectionResponse, len(collections))
	for i, collection := range collections {
		items[i] = *ToCollectionResponse(collection)
	}
	return &CollectionListResponse{
		Items: items,
		Total: len(items),
	}
}
