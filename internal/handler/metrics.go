package handler

import (
	"fmt"
	"net/http"

	"github.com/quotestash/quotestash/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "quotestash_collections_created_total %d\n", snap.CollectionsCreated)
	writeMetric(w, "quotestash_collections_updated_total %d\n", snap.CollectionsUpdated)

	writeMetric(w, "quotestash_quotes_created_total %d\n", snap.QuotesCreated)
	writeMetric(w, "quotestash_quotes_updated_total %d\n", snap.QuotesUpdated)
	writeMetric(w, "quotestash_quotes_deleted_total %d\n", snap.QuotesDeleted)

	writeMetric(w, "quotestash_auth_cache_hits_total %d\n", snap.AuthCacheHits)
	writeMetric(w, "quotestash_auth_cache_misses_total %d\n", snap.AuthCacheMisses)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
