package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/quotestash/quotestash/internal/model"
)

// Common errors for quote repository operations.
var (
	// ErrQuoteNotFound covers a missing ID, an ID under a different
	// collection than claimed, and a row owned by another user.
	ErrQuoteNotFound = errors.New("quote not found")
)

// CreateQuote inserts a new quote into the database.
// The database enforces the collection_id foreign key; the caller is
// responsible for having verified collection ownership first.
func (r *Repository) CreateQuote(ctx context.Context, quote *model.Quote) error {
	query := `
		INSERT INTO quotes (id, collection_id, user_id, text, attributed_to, mood, tags, language, is_favorite, is_public, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		quote.ID,
		quote.CollectionID,
		quote.UserID,
		quote.Text,
		quote.AttributedTo,
		quote.Mood,
		quote.Tags,
		quote.Language,
		quote.IsFavorite,
		quote.IsPublic,
		quote.CreatedAt,
		quote.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create quote: %w", err)
	}

	return nil
}

// GetQuoteInCollection retrieves a quote by the (id, collectionID) pair.
// An ID that exists under a different collection does not match.
func (r *Repository) GetQuoteInCollection(ctx context.Context, id, collectionID string) (*model.Quote, error) {
	query := `
		SELECT id, collection_id, user_id, text, attributed_to, mood, tags, language, is_favorite, is_public, created_at, updated_at
		FROM quotes
		WHERE id = $1 AND collection_id = $2
	`

	quote, err := scanQuote(r.pool.QueryRow(ctx, query, id, collectionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	return quote, nil
}

// ListQuotes retrieves quotes in a collection scoped to their owner,
// oldest first, optionally narrowed to favorites.
func (r *Repository) ListQuotes(ctx context.Context, collectionID, userID string, favoritesOnly bool) ([]*model.Quote, error) {
	query := `
		SELECT id, collection_id, user_id, text, attributed_to, mood, tags, language, is_favorite, is_public, created_at, updated_at
		FROM quotes
		WHERE collection_id = $1 AND user_id = $2
	`
	args := []any{collectionID, userID}

	if favoritesOnly {
		query += ` AND is_favorite = TRUE`
	}

	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	defer rows.Close()

	var quotes []*model.Quote
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		quotes = append(quotes, quote)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quotes: %w", err)
	}

	return quotes, nil
}

// UpdateQuote updates a quote's mutable fields. user_id is deliberately
// absent from the SET list: the denormalized owner is written once at
// creation and never changed. The WHERE clause repeats the collection and
// owner predicates so the write re-checks authorization on its own.
func (r *Repository) UpdateQuote(ctx context.Context, quote *model.Quote) error {
	query := `
		UPDATE quotes
		SET text = $4, attributed_to = $5, mood = $6, tags = $7, language = $8, is_favorite = $9, is_public = $10, updated_at = $11
		WHERE id = $1 AND collection_id = $2 AND user_id = $3
	`

	result, err := r.pool.Exec(ctx, query,
		quote.ID,
		quote.CollectionID,
		quote.UserID,
		quote.Text,
		quote.AttributedTo,
		quote.Mood,
		quote.Tags,
		quote.Language,
		quote.IsFavorite,
		quote.IsPublic,
		quote.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update quote: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrQuoteNotFound
	}

	return nil
}

// DeleteQuote removes a quote, strictly scoped to the (id, collectionID,
// userID) triple. Zero rows affected reports ErrQuoteNotFound.
func (r *Repository) DeleteQuote(ctx context.Context, id, collectionID, userID string) error {
	query := `
		DELETE FROM quotes
		WHERE id = $1 AND collection_id = $2 AND user_id = $3
	`

	result, err := r.pool.Exec(ctx, query, id, collectionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete quote: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrQuoteNotFound
	}

	return nil
}

// scanQuote scans a single row into a Quote model.
func scanQuote(row pgx.Row) (*model.Quote, error) {
	var quote model.Quote
	err := row.Scan(
		&quote.ID,
		&quote.CollectionID,
		&quote.UserID,
		&quote.Text,
		&quote.AttributedTo,
		&quote.Mood,
		&quote.Tags,
		&quote.Language,
		&quote.IsFavorite,
		&quote.IsPublic,
		&quote.CreatedAt,
		&quote.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &quote, nil
}
