// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Collection management metrics
	IncCollectionCreated()
	IncCollectionUpdated()

	// Quote management metrics
	IncQuoteCreated()
	IncQuoteUpdated()
	IncQuoteDeleted()

	// Auth cache metrics
	IncAuthCacheHit()
	IncAuthCacheMiss()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
