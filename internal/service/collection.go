package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/quotestash/quotestash/internal/metrics"
	"github.com/quotestash/quotestash/internal/model"
	"github.com/quotestash/quotestash/internal/repository"
)

// Service errors. Validation errors are reported before any store access.
var (
	ErrNameRequired       = errors.New("collection name is required")
	ErrNameTooLong        = errors.New("collection name exceeds maximum length")
	ErrDescriptionTooLong = errors.New("collection description exceeds maximum length")
	ErrNoFieldsToUpdate   = errors.New("at least one field must be provided")
	ErrCollectionNotFound = errors.New("collection not found")
)

// Field length limits.
const (
	maxNameLength        = 120
	maxDescriptionLength = 1024
	maxIconLength        = 64
)

// CollectionService handles collection business logic.
type CollectionService struct {
	store   Store
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewCollectionService creates a new CollectionService.
func NewCollectionService(store Store, logger *slog.Logger, recorder metrics.Recorder) *CollectionService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &CollectionService{
		store:   store,
		logger:  logger,
		metrics: recorder,
	}
}

// CreateCollectionInput defines input for creating a collection.
type CreateCollectionInput struct {
	OwnerID     string
	Name        string
	Description string
	Icon        string
	IsDefault   bool
}

// CreateCollection creates a new collection for the owner.
// Duplicate names are permitted; is_default is advisory and not unique.
func (s *CollectionService) CreateCollection(ctx context.Context, input CreateCollectionInput) (*model.Collection, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(name) > maxNameLength {
		return nil, ErrNameTooLong
	}
	if len(input.Description) > maxDescriptionLength {
		return nil, ErrDescriptionTooLong
	}

	now := time.Now().UTC()
	collection := &model.Collection{
		ID:          ulid.Make().String(),
		UserID:      input.OwnerID,
		Name:        name,
		Description: input.Description,
		Icon:        input.Icon,
		IsDefault:   input.IsDefault,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateCollection(ctx, collection); err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	s.metrics.IncCollectionCreated()

	return collection, nil
}

// UpdateCollectionInput defines input for updating a collection.
// Nil fields are left untouched (partial patch semantics).
type UpdateCollectionInput struct {
	ID          string
	OwnerID     string
	Name        *string
	Description *string
	Icon        *string
	IsDefault   *bool
}

// hasFields reports whether at least one patchable field is set.
func (in UpdateCollectionInput) hasFields() bool {
	return in.Name != nil || in.Description != nil || in.Icon != nil || in.IsDefault != nil
}

// UpdateCollection applies a partial patch to an owned collection.
// The empty-patch check runs before any store access, so a caller without
// ownership still sees a validation error for an empty patch.
func (s *CollectionService) UpdateCollection(ctx context.Context, input UpdateCollectionInput) (*model.Collection, error) {
	if !input.hasFields() {
		return nil, ErrNoFieldsToUpdate
	}

	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed == "" {
			return nil, ErrNameRequired
		}
		if len(trimmed) > maxNameLength {
			return nil, ErrNameTooLong
		}
		input.Name = &trimmed
	}
	if input.Description != nil && len(*input.Description) > maxDescriptionLength {
		return nil, ErrDescriptionTooLong
	}

	collection, err := requireOwnedCollection(ctx, s.store, input.ID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		collection.Name = *input.Name
	}
	if input.Description != nil {
		collection.Description = *input.Description
	}
	if input.Icon != nil {
		collection.Icon = *input.Icon
	}
	if input.IsDefault != nil {
		collection.IsDefault = *input.IsDefault
	}
	collection.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateCollection(ctx, collection); err != nil {
		// The write re-checks ownership in its WHERE clause; zero rows
		// affected after a passing guard still reports not found.
		if errors.Is(err, repository.ErrCollectionNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}

	s.metrics.IncCollectionUpdated()

	return collection, nil
}

// ListCollections returns all collections owned by the caller.
// Unpaginated: the surface exposes no pagination.
func (s *CollectionService) ListCollections(ctx context.Context, ownerID string) ([]*model.Collection, error) {
	collections, err := s.store.ListCollectionsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	return collections, nil
}
