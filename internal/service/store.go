// Package service provides business logic for the application.
package service

import (
	"context"

	"github.com/quotestash/quotestash/internal/model"
)

// Store is the persistence surface the services depend on.
// *repository.Repository implements it; tests substitute an in-memory fake.
type Store interface {
	CreateCollection(ctx context.Context, collection *model.Collection) error
	GetCollectionForOwner(ctx context.Context, id, userID string) (*model.Collection, error)
	ListCollectionsByOwner(ctx context.Context, userID string) ([]*model.Collection, error)
	UpdateCollection(ctx context.Context, collection *model.Collection) error

	CreateQuote(ctx context.Context, quote *model.Quote) error
	GetQuoteInCollection(ctx context.Context, id, collectionID string) (*model.Quote, error)
	ListQuotes(ctx context.Context, collectionID, userID string, favoritesOnly bool) ([]*model.Quote, error)
	UpdateQuote(ctx context.Context, quote *model.Quote) error
	DeleteQuote(ctx context.Context, id, collectionID, userID string) error
}
