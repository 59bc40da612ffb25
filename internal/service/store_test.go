package service

import (
	"context"
	"sync"

	"github.com/quotestash/quotestash/internal/model"
	"github.com/quotestash/quotestash/internal/repository"
)

// memStore is an in-memory Store used by service tests. It mirrors the
// repository's filter semantics, including the owner predicates embedded in
// update and delete, and counts every call so tests can assert that
// validation failures never reach the store.
type memStore struct {
	mu          sync.Mutex
	collections map[string]*model.Collection
	quotes      map[string]*model.Quote
	calls       int
}

func newMemStore() *memStore {
	return &memStore{
		collections: make(map[string]*model.Collection),
		quotes:      make(map[string]*model.Quote),
	}
}

func (m *memStore) touch() {
	m.calls++
}

func (m *memStore) CreateCollection(ctx context.Context, collection *model.Collection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()

	copied := *collection
	m.collections[collection.ID] = &copied
	return nil
}

func (m *memStore) GetCollectionForOwner(ctx context.Context, id, userID string) (*model.Collection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()

	collection, ok := m.collections[id]
	if !ok || collection.UserID != userID {
		return nil, repository.ErrCollectionNotFound
	}
	copied := *collection
	return &copied, nil
}

func (m *memStore) ListCollectionsByOwner(ctx context.Context, userID string) ([]*model.Collection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()

	var out []*model.Collection
	for _, collection := range m.collections {
		if collection.UserID == userID {
			copied := *collection
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memStore) UpdateCollection(ctx context.Context, collection *model.Collection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()

	existing, ok := m.collections[collection.ID]
	if !ok || existing.UserID != collection.UserID {
		return repository.ErrCollectionNotFound
	}
	copied := *collection
	m.collections[collection.ID] = &copied
	return nil
}

func (m *memStore) CreateQuote(ctx context.Context, quote *model.Quote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()

	copied := *quote
	m.quotes[quote.ID] = &copied
	return nil
}

func (m *memStore) GetQuoteInCollection(ctx context.Context, id, collectionID string) (*model.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()

	quote, ok := m.quotes[id]
	if !ok || quote.CollectionID != collectionID {
		return nil, repository.ErrQuoteNotFound
	}
	copied := *quote
	return &copied, nil
}

func (m *memStore) ListQuotes(ctx context.Context, collectionID, userID string, favoritesOnly bool) ([]*model.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()

	var out []*model.Quote
	for _, quote := range m.quotes {
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

func (m *memStore) UpdateQuote(ctx context.Context, quote *model.Quote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()

	existing, ok := m.quotes[quote.ID]
	if !ok || existing.CollectionID != quote.CollectionID || existing.UserID != quote.UserID {
		return repository.ErrQuoteNotFound
	}
	copied := *quote
	m.quotes[quote.ID] = &copied
	return nil
}

func (m *memStore) DeleteQuote(ctx context.Context, id, collectionID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()

	existing, ok := m.quotes[id]
	if !ok || existing.CollectionID != collectionID || existing.UserID != userID {
		return repository.ErrQuoteNotFound
	}
	delete(m.quotes, id)
	return nil
}

func (m *memStore) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
