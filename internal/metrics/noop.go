package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncCollectionCreated is a no-op.
func (n *NoopRecorder) IncCollectionCreated() {}

// IncCollectionUpdated is a no-op.
func (n *NoopRecorder) IncCollectionUpdated() {}

// IncQuoteCreated is a no-op.
func (n *NoopRecorder) IncQuoteCreated() {}

// IncQuoteUpdated is a no-op.
func (n *NoopRecorder) IncQuoteUpdated() {}

// IncQuoteDeleted is a no-op.
func (n *NoopRecorder) IncQuoteDeleted() {}

// IncAuthCacheHit is a no-op.
func (n *NoopRecorder) IncAuthCacheHit() {}

// IncAuthCacheMiss is a no-op.
func (n *NoopRecorder) IncAuthCacheMiss() {}
