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

// Quote service errors.
var (
	ErrTextRequired  = errors.New("quote text is required")
	ErrTextTooLong   = errors.New("quote text exceeds maximum length")
	ErrQuoteNotFound = errors.New("quote not found")
)

const maxTextLength = 8192

// QuoteService handles quote business logic. Every operation that touches a
// quote first verifies ownership of its collection.
type QuoteService struct {
	store   Store
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewQuoteService creates a new QuoteService.
func NewQuoteService(store Store, logger *slog.Logger, recorder metrics.Recorder) *QuoteService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &QuoteService{
		store:   store,
		logger:  logger,
		metrics: recorder,
	}
}

// CreateQuoteInput defines input for creating a quote.
type CreateQuoteInput struct {
	CollectionID string
	OwnerID      string
	Text         string
	AttributedTo string
	Mood         string
	Tags         string
	Language     string
	IsFavorite   bool
	IsPublic     bool
}

// CreateQuote creates a quote under a collection the caller owns.
// The denormalized user_id is copied from the authenticated caller, not
// from the collection row; this is the single code path that sets it.
func (s *QuoteService) CreateQuote(ctx context.Context, input CreateQuoteInput) (*model.Quote, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, ErrTextRequired
	}
	if len(text) > maxTextLength {
		return nil, ErrTextTooLong
	}

	if _, err := requireOwnedCollection(ctx, s.store, input.CollectionID, input.OwnerID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	quote := &model.Quote{
		ID:           ulid.Make().String(),
		CollectionID: input.CollectionID,
		UserID:       input.OwnerID,
		Text:         text,
		AttributedTo: input.AttributedTo,
		Mood:         input.Mood,
		Tags:         input.Tags,
		Language:     input.Language,
		IsFavorite:   input.IsFavorite,
		IsPublic:     input.IsPublic,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateQuote(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to create quote: %w", err)
	}

	s.metrics.IncQuoteCreated()

	return quote, nil
}

// UpdateQuoteInput defines input for updating a quote.
// Nil fields are left untouched (partial patch semantics).
type UpdateQuoteInput struct {
	ID           string
	CollectionID string
	OwnerID      string
	Text         *string
	AttributedTo *string
	Mood         *string
	Tags         *string
	Language     *string
	IsFavorite   *bool
	IsPublic     *bool
}

// hasFields reports whether at least one patchable field is set.
func (in UpdateQuoteInput) hasFields() bool {
	return in.Text != nil || in.AttributedTo != nil || in.Mood != nil ||
		in.Tags != nil || in.Language != nil || in.IsFavorite != nil || in.IsPublic != nil
}

// UpdateQuote applies a partial patch to a quote addressed by the
// (id, collectionID) pair after verifying collection ownership. An ID that
// lives under a different collection than claimed is not found, even when
// the named collection itself is owned by the caller.
func (s *QuoteService) UpdateQuote(ctx context.Context, input UpdateQuoteInput) (*model.Quote, error) {
	if !input.hasFields() {
		return nil, ErrNoFieldsToUpdate
	}

	if input.Text != nil {
		trimmed := strings.TrimSpace(*input.Text)
		if trimmed == "" {
			return nil, ErrTextRequired
		}
		if len(trimmed) > maxTextLength {
			return nil, ErrTextTooLong
		}
		input.Text = &trimmed
	}

	if _, err := requireOwnedCollection(ctx, s.store, input.CollectionID, input.OwnerID); err != nil {
		return nil, err
	}

	quote, err := s.store.GetQuoteInCollection(ctx, input.ID, input.CollectionID)
	if err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}

	if input.Text != nil {
		quote.Text = *input.Text
	}
	if input.AttributedTo != nil {
		quote.AttributedTo = *input.AttributedTo
	}
	if input.Mood != nil {
		quote.Mood = *input.Mood
	}
	if input.Tags != nil {
		quote.Tags = *input.Tags
	}
	if input.Language != nil {
		quote.Language = *input.Language
	}
	if input.IsFavorite != nil {
		quote.IsFavorite = *input.IsFavorite
	}
	if input.IsPublic != nil {
		quote.IsPublic = *input.IsPublic
	}
	quote.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateQuote(ctx, quote); err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}

	s.metrics.IncQuoteUpdated()

	return quote, nil
}

// DeleteQuote removes a quote addressed by the (id, collectionID) pair
// after verifying collection ownership.
func (s *QuoteService) DeleteQuote(ctx context.Context, id, collectionID, ownerID string) error {
	if _, err := requireOwnedCollection(ctx, s.store, collectionID, ownerID); err != nil {
		return err
	}

	if err := s.store.DeleteQuote(ctx, id, collectionID, ownerID); err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			return ErrQuoteNotFound
		}
		return err
	}

	s.metrics.IncQuoteDeleted()

	return nil
}

// ListQuotesInput defines input for listing quotes.
type ListQuotesInput struct {
	CollectionID  string
	OwnerID       string
	FavoritesOnly bool
	// IncludePublic is accepted but has no effect on the owner's own
	// listing; owners always see all of their items. Reserved for a
	// future non-owner gallery path.
	IncludePublic bool
}

// ListQuotes returns the caller's quotes in an owned collection,
// optionally narrowed to favorites.
func (s *QuoteService) ListQuotes(ctx context.Context, input ListQuotesInput) ([]*model.Quote, error) {
	if _, err := requireOwnedCollection(ctx, s.store, input.CollectionID, input.OwnerID); err != nil {
		return nil, err
	}

	quotes, err := s.store.ListQuotes(ctx, input.CollectionID, input.OwnerID, input.FavoritesOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}

	return quotes, nil
}
