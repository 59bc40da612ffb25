package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/quotestash/quotestash/internal/auth"
	"github.com/quotestash/quotestash/internal/handler/dto"
	"github.com/quotestash/quotestash/internal/service"
)

// CollectionHandler handles HTTP requests for collection operations.
type CollectionHandler struct {
	svc    *service.CollectionService
	logger *slog.Logger
}

// NewCollectionHandler creates a new CollectionHandler.
func NewCollectionHandler(svc *service.CollectionService, logger *slog.Logger) *CollectionHandler {
	return &CollectionHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/v1/collections.
func (h *CollectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.AuthFromContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req dto.CreateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request body")
		return
	}

	collection, err := h.svc.CreateCollection(r.Context(), service.CreateCollectionInput{
		OwnerID:     authCtx.UserID,
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		IsDefault:   req.IsDefault,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("collection_created",
		"collection_id", collection.ID,
		"user_id", authCtx.UserID,
		"is_default", collection.IsDefault,
	)

	writeSuccess(w, http.StatusCreated, dto.ToCollectionResponse(collection))
}

// Update handles PATCH /api/v1/collections/{collectionID}.
func (h *CollectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.AuthFromContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id := r.PathValue("collectionID")
	if id == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Collection ID is required")
		return
	}

	var req dto.UpdateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request body")
		return
	}

	collection, err := h.svc.UpdateCollection(r.Context(), service.UpdateCollectionInput{
		ID:          id,
		OwnerID:     authCtx.UserID,
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		IsDefault:   req.IsDefault,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("collection_updated",
		"collection_id", collection.ID,
		"user_id", authCtx.UserID,
	)

	writeSuccess(w, http.StatusOK, dto.ToCollectionResponse(collection))
}

// List handles GET /api/v1/collections.
func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.AuthFromContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	collections, err := h.svc.ListCollections(r.Context(), authCtx.UserID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, dto.ToCollectionListResponse(collections))
}

// handleServiceError maps service errors to HTTP responses.
func (h *CollectionHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrCollectionNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Collection not found")
	case errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrNameTooLong),
		errors.Is(err, service.ErrDescriptionTooLong),
		errors.Is(err, service.ErrNoFieldsToUpdate):
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
