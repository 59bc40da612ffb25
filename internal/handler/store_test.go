package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/quotestash/quotestash/internal/auth"
	"github.com/quotestash/quotestash/internal/model"
	"github.com/quotestash/quotestash/internal/repository"
	"github.com/quotestash/quotestash/internal/service"
)

// fakeStore is an in-memory service.Store for handler tests. It keeps the
// repository's filter semantics so ownership failures surface the same way.
type fakeStore struct {
	collections map[string]*model.Collection
	quotes      map[string]*model.Quote
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		collections: make(map[string]*model.Collection),
		quotes:      make(map[string]*model.Quote),
	}
}

func (f *fakeStore) CreateCollection(ctx context.Context, collection *model.Collection) error {
	copied := *collection
	f.collections[collection.ID] = &copied
	return nil
}

func (f *fakeStore) GetCollectionForOwner(ctx context.Context, id, userID string) (*model.Collection, error) {
	collection, ok := f.collections[id]
	if !ok || collection.UserID != userID {
		return nil, repository.ErrCollectionNotFound
	}
	copied := *collection
	return &copied, nil
}

func (f *fakeStore) ListCollectionsByOwner(ctx context.Context, userID string) ([]*model.Collection, error) {
	var out []*model.Collection
	for _, collection := range f.collections {
		if collection.UserID == userID {
			copied := *collection
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateCollection(ctx context.Context, collection *model.Collection) error {
	existing, ok := f.collections[collection.ID]
	if !ok || existing.UserID != collection.UserID {
		return repository.ErrCollectionNotFound
	}
	copied := *collection
	f.collections[collection.ID] = &copied
	return nil
}

func (f *fakeStore) CreateQuote(ctx context.Context, quote *model.Quote) error {
	copied := *quote
	f.quotes[quote.ID] = &copied
	return nil
}

func (f *fakeStore) GetQuoteInCollection(ctx context.Context, id, collectionID string) (*model.Quote, error) {
	quote, ok := f.quotes[id]
	if !ok || quote.CollectionID != collectionID {
		return nil, repository.ErrQuoteNotFound
	}
	copied := *quote
	return &copied, nil
}

func (f *fakeStore) ListQuotes(ctx context.Context, collectionID, userID string, favoritesOnly bool) ([]*model.Quote, error) {
	var out []*model.Quote
	for _, quote := range f.quotes {
		if quote.CollectionID != collectionID || quote.UserID != userID {
			continue
		}
		if favoritesOnly && !quote.IsFavorite {
			continue
		}
		copied := *quote
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeStore) UpdateQuote(ctx context.Context, quote *model.Quote) error {
	existing, ok := f.quotes[quote.ID]
	if !ok || existing.CollectionID != quote.CollectionID || existing.UserID != quote.UserID {
		return repository.ErrQuoteNotFound
	}
	copied := *quote
	f.quotes[quote.ID] = &copied
	return nil
}

func (f *fakeStore) DeleteQuote(ctx context.Context, id, collectionID, userID string) error {
	existing, ok := f.quotes[id]
	if !ok || existing.CollectionID != collectionID || existing.UserID != userID {
		return repository.ErrQuoteNotFound
	}
	delete(f.quotes, id)
	return nil
}

// ---------------------------------------------------------------------------
// shared test helpers
// ---------------------------------------------------------------------------

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHandlers(store service.Store) (*CollectionHandler, *QuoteHandler) {
	logger := discardLogger()
	collections := NewCollectionHandler(service.NewCollectionService(store, logger, nil), logger)
	quotes := NewQuoteHandler(service.NewQuoteService(store, logger, nil), logger)
	return collections, quotes
}

// authedRequest builds a request carrying an auth context for userID.
func authedRequest(t *testing.T, method, target, body string, userID string) *http.Request {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	authCtx := &model.AuthContext{
		KeyID:  "key-1",
		UserID: userID,
		Scopes: []string{model.ScopeRead, model.ScopeWrite},
	}
	return req.WithContext(auth.ContextWithAuth(req.Context(), authCtx))
}
