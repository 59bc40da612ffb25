package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/quotestash/quotestash/internal/model"
)

// AdminCollectionReader defines the repository surface for admin lookups.
type AdminCollectionReader interface {
	GetCollectionByID(ctx context.Context, id string) (*model.Collection, error)
	CountQuotesInCollection(ctx context.Context, collectionID string) (int64, error)
}

// AdminKeyLister defines the interface for listing API keys.
type AdminKeyLister interface {
	ListAPIKeysByUserID(ctx context.Context, userID string) ([]*model.APIKey, error)
}

// AdminHandler provides admin-only endpoints for debugging and operations.
type AdminHandler struct {
	collections AdminCollectionReader
	keys        AdminKeyLister
	logger      *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(collections AdminCollectionReader, keys AdminKeyLister, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		collections: collections,
		keys:        keys,
		logger:      logger,
	}
}

// AdminCollectionResponse represents a collection in admin context with
// the owner and quote count included.
type AdminCollectionResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	IsDefault   bool      `json:"isDefault"`
	QuoteCount  int64     `json:"quoteCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LookupCollection handles GET /api/v1/admin/collections/{collectionID}.
// Cross-user lookup for operational debugging; bypasses the ownership filter.
func (h *AdminHandler) LookupCollection(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("collectionID")
	if id == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Collection ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	collection, err := h.collections.GetCollectionByID(ctx, id)
	if err != nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Collection not found")
		return
	}

	count, err := h.collections.CountQuotesInCollection(ctx, collection.ID)
	if err != nil {
		h.logger.Error("failed to count quotes",
			"error", err,
			"collection_id", collection.ID,
		)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to inspect collection")
		return
	}

	writeSuccess(w, http.StatusOK, AdminCollectionResponse{
		ID:          collection.ID,
		UserID:      collection.UserID,
		Name:        collection.Name,
		Description: collection.Description,
		Icon:        collection.Icon,
		IsDefault:   collection.IsDefault,
		QuoteCount:  count,
		CreatedAt:   collection.CreatedAt,
		UpdatedAt:   collection.UpdatedAt,
	})
}

// AdminAPIKeyListResponse represents the response for API key listing.
type AdminAPIKeyListResponse struct {
	Keys  []model.APIKeyResponse `json:"keys"`
	Total int                    `json:"total"`
}

// ListAPIKeysByUser handles GET /api/v1/admin/api-keys?user_id={id}.
// Lists all API keys for a specific user (admin only).
func (h *AdminHandler) ListAPIKeysByUser(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "query parameter 'user_id' is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	keys, err := h.keys.ListAPIKeysByUserID(ctx, userID)
	if err != nil {
		h.logger.Error("failed to list API keys",
			"error", err,
			"user_id", userID,
		)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list API keys")
		return
	}

	response := AdminAPIKeyListResponse{
		Keys:  make([]model.APIKeyResponse, 0, len(keys)),
		Total: len(keys),
	}
	for _, key := range keys {
		response.Keys = append(response.Keys, key.ToResponse())
	}

	writeSuccess(w, http.StatusOK, response)
}

// StatsResponse represents operational statistics.
type StatsResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
}

// Stats handles GET /api/v1/admin/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, StatsResponse{
		Timestamp: time.Now().UTC(),
		Service:   "quotestash",
		Version:   "0.1.0",
	})
}
