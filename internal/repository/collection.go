package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/quotestash/quotestash/internal/model"
)

// Common errors for collection repository operations.
var (
	// ErrCollectionNotFound is returned both when no collection with the
	// given ID exists and when it exists but belongs to another user.
	// Callers must not be able to tell the two cases apart.
	ErrCollectionNotFound = errors.New("collection not found")
)

// CreateCollection inserts a new collection into the database.
func (r *Repository) CreateCollection(ctx context.Context, collection *model.Collection) error {
	query := `
		INSERT INTO collections (id, user_id, name, description, icon, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		collection.ID,
		collection.UserID,
		collection.Name,
		collection.Description,
		collection.Icon,
		collection.IsDefault,
		collection.CreatedAt,
		collection.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return nil
}

// GetCollectionForOwner retrieves a collection by ID scoped to its owner.
// This is the ownership guard lookup: the owner filter lives in the query
// itself, so a missing row and a foreign-owned row are indistinguishable.
func (r *Repository) GetCollectionForOwner(ctx context.Context, id, userID string) (*model.Collection, error) {
	query := `
		SELECT id, user_id, name, description, icon, is_default, created_at, updated_at
		FROM collections
		WHERE id = $1 AND user_id = $2
	`

	collection, err := scanCollection(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCollectionNotFound
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}

	return collection, nil
}

// GetCollectionByID retrieves a collection by ID regardless of owner.
// Reserved for admin tooling; request paths must use GetCollectionForOwner.
func (r *Repository) GetCollectionByID(ctx context.Context, id string) (*model.Collection, error) {
	query := `
		SELECT id, user_id, name, description, icon, is_default, created_at, updated_at
		FROM collections
		WHERE id = $1
	`

	collection, err := scanCollection(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCollectionNotFound
		}
		return nil, fmt.Errorf("failed to get collection by ID: %w", err)
	}

	return collection, nil
}

// ListCollectionsByOwner retrieves all collections owned by a user,
// newest first. Unpaginated: the surface has no pagination.
func (r *Repository) ListCollectionsByOwner(ctx context.Context, userID string) ([]*model.Collection, error) {
	query := `
		SELECT id, user_id, name, description, icon, is_default, created_at, updated_at
		FROM collections
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	var collections []*model.Collection
	for rows.Next() {
		collection, err := scanCollection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		collections = append(collections, collection)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating collections: %w", err)
	}

	return collections, nil
}

// UpdateCollection updates a collection's mutable fields.
// The owner predicate is repeated in the WHERE clause so the write itself
// re-checks ownership; a row deleted or re-owned since the guard check
// simply affects zero rows and reports ErrCollectionNotFound.
func (r *Repository) UpdateCollection(ctx context.Context, collection *model.Collection) error {
	query := `
		UPDATE collections
		SET name = $3, description = $4, icon = $5, is_default = $6, updated_at = $7
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.pool.Exec(ctx, query,
		collection.ID,
		collection.UserID,
		collection.Name,
		collection.Description,
		collection.Icon,
		collection.IsDefault,
		collection.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update collection: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrCollectionNotFound
	}

	return nil
}

// CountQuotesInCollection returns the number of quotes under a collection.
// Used by admin lookup only.
func (r *Repository) CountQuotesInCollection(ctx context.Context, collectionID string) (int64, error) {
	query := `SELECT COUNT(*) FROM quotes WHERE collection_id = $1`

	var count int64
	if err := r.pool.QueryRow(ctx, query, collectionID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count quotes: %w", err)
	}

	return count, nil
}

// scanCollection scans a single row into a Collection model.
func scanCollection(row pgx.Row) (*model.Collection, error) {
	var collection model.Collection
	err := row.Scan(
		&collection.ID,
		&collection.UserID,
		&collection.Name,
		&collection.Description,
		&collection.Icon,
		&collection.IsDefault,
		&collection.CreatedAt,
		&collection.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &collection, nil
}
