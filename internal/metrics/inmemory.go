package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	CollectionsCreated uint64
	CollectionsUpdated uint64
	QuotesCreated      uint64
	QuotesUpdated      uint64
	QuotesDeleted      uint64
	AuthCacheHits      uint64
	AuthCacheMisses    uint64
}

// InMemoryRecorder stores metrics in memory for tests and the /metrics endpoint.
type InMemoryRecorder struct {
	collectionsCreated uint64
	collectionsUpdated uint64
	quotesCreated      uint64
	quotesUpdated      uint64
	quotesDeleted      uint64
	authCacheHits      uint64
	authCacheMisses    uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		CollectionsCreated: atomic.LoadUint64(&m.collectionsCreated),
		CollectionsUpdated: atomic.LoadUint64(&m.collectionsUpdated),
		QuotesCreated:      atomic.LoadUint64(&m.quotesCreated),
		QuotesUpdated:      atomic.LoadUint64(&m.quotesUpdated),
		QuotesDeleted:      atomic.LoadUint64(&m.quotesDeleted),
		AuthCacheHits:      atomic.LoadUint64(&m.authCacheHits),
		AuthCacheMisses:    atomic.LoadUint64(&m.authCacheMisses),
	}
}

// IncCollectionCreated increments the collection created counter.
func (m *InMemoryRecorder) IncCollectionCreated() {
	atomic.AddUint64(&m.collectionsCreated, 1)
}

// IncCollectionUpdated increments the collection updated counter.
func (m *InMemoryRecorder) IncCollectionUpdated() {
	atomic.AddUint64(&m.collectionsUpdated, 1)
}

// IncQuoteCreated increments the quote created counter.
func (m *InMemoryRecorder) IncQuoteCreated() {
	atomic.AddUint64(&m.quotesCreated, 1)
}

// IncQuoteUpdated increments the quote updated counter.
func (m *InMemoryRecorder) IncQuoteUpdated() {
	atomic.AddUint64(&m.quotesUpdated, 1)
}

// IncQuoteDeleted increments the quote deleted counter.
func (m *InMemoryRecorder) IncQuoteDeleted() {
	atomic.AddUint64(&m.quotesDeleted, 1)
}

// IncAuthCacheHit increments the auth cache hit counter.
func (m *InMemoryRecorder) IncAuthCacheHit() {
	atomic.AddUint64(&m.authCacheHits, 1)
}

// IncAuthCacheMiss increments the auth cache miss counter.
func (m *InMemoryRecorder) IncAuthCacheMiss() {
	atomic.AddUint64(&m.authCacheMisses, 1)
}
