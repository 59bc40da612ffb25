package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/quotestash/quotestash/internal/model"
	"github.com/quotestash/quotestash/internal/repository"
)

// ownedCollectionGetter is the slice of Store the ownership guard needs.
type ownedCollectionGetter interface {
	GetCollectionForOwner(ctx context.Context, id, userID string) (*model.Collection, error)
}

// requireOwnedCollection verifies that collectionID exists and belongs to
// userID. A missing collection and one owned by another user both produce
// ErrCollectionNotFound, so callers cannot probe for existence.
//
// The returned collection is current as of this call only. Mutating
// statements repeat the ownership predicate in their own WHERE clause, so a
// row deleted or re-owned after this check affects zero rows rather than
// leaking a write.
func requireOwnedCollection(ctx context.Context, store ownedCollectionGetter, collectionID, userID string) (*model.Collection, error) {
	collection, err := store.GetCollectionForOwner(ctx, collectionID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCollectionNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, fmt.Errorf("failed to verify collection ownership: %w", err)
	}

	return collection, nil
}
