package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/quotestash/quotestash/internal/auth"
	"github.com/quotestash/quotestash/internal/handler/dto"
	"github.com/quotestash/quotestash/internal/middleware"
	"github.com/quotestash/quotestash/internal/service"
)

// QuoteHandler handles HTTP requests for quote operations.
type QuoteHandler struct {
	svc    *service.QuoteService
	logger *slog.Logger
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(svc *service.QuoteService, logger *slog.Logger) *QuoteHandler {
	return &QuoteHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/v1/collections/{collectionID}/quotes.
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.AuthFromContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	collectionID := r.PathValue("collectionID")
	if collectionID == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Collection ID is required")
		return
	}

	var req dto.CreateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request body")
		return
	}

	if err := validateQuoteFields(req.AttributedTo, req.Mood, req.Tags, req.Language); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	quote, err := h.svc.CreateQuote(r.Context(), service.CreateQuoteInput{
		CollectionID: collectionID,
		OwnerID:      authCtx.UserID,
		Text:         req.Text,
		AttributedTo: req.AttributedTo,
		Mood:         req.Mood,
		Tags:         req.Tags,
		Language:     req.Language,
		IsFavorite:   req.IsFavorite,
		IsPublic:     req.IsPublic,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("quote_created",
		"quote_id", quote.ID,
		"collection_id", quote.CollectionID,
		"user_id", authCtx.UserID,
	)

	writeSuccess(w, http.StatusCreated, dto.ToQuoteResponse(quote))
}

// List handles GET /api/v1/collections/{collectionID}/quotes.
// Supports favoritesOnly and includePublic query flags.
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.AuthFromContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	collectionID := r.PathValue("collectionID")
	if collectionID == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Collection ID is required")
		return
	}

	query := r.URL.Query()
	quotes, err := h.svc.ListQuotes(r.Context(), service.ListQuotesInput{
		CollectionID:  collectionID,
		OwnerID:       authCtx.UserID,
		FavoritesOnly: query.Get("favoritesOnly") == "true",
		IncludePublic: query.Get("includePublic") == "true",
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, dto.ToQuoteListResponse(quotes))
}

// Update handles PATCH /api/v1/collections/{collectionID}/quotes/{quoteID}.
func (h *QuoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.AuthFromContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	collectionID := r.PathValue("collectionID")
	quoteID := r.PathValue("quoteID")
	if collectionID == "" || quoteID == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Collection ID and quote ID are required")
		return
	}

	var req dto.UpdateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request body")
		return
	}

	if err := validateQuoteFields(
		stringOrEmpty(req.AttributedTo),
		stringOrEmpty(req.Mood),
		stringOrEmpty(req.Tags),
		stringOrEmpty(req.Language),
	); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	quote, err := h.svc.UpdateQuote(r.Context(), service.UpdateQuoteInput{
		ID:           quoteID,
		CollectionID: collectionID,
		OwnerID:      authCtx.UserID,
		Text:         req.Text,
		AttributedTo: req.AttributedTo,
		Mood:         req.Mood,
		Tags:         req.Tags,
		Language:     req.Language,
		IsFavorite:   req.IsFavorite,
		IsPublic:     req.IsPublic,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("quote_updated",
		"quote_id", quote.ID,
		"collection_id", quote.CollectionID,
		"user_id", authCtx.UserID,
	)

	writeSuccess(w, http.StatusOK, dto.ToQuoteResponse(quote))
}

// Delete handles DELETE /api/v1/collections/{collectionID}/quotes/{quoteID}.
func (h *QuoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.AuthFromContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	collectionID := r.PathValue("collectionID")
	quoteID := r.PathValue("quoteID")
	if collectionID == "" || quoteID == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Collection ID and quote ID are required")
		return
	}

	if err := h.svc.DeleteQuote(r.Context(), quoteID, collectionID, authCtx.UserID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("quote_deleted",
		"quote_id", quoteID,
		"collection_id", collectionID,
		"user_id", authCtx.UserID,
	)

	writeSuccess(w, http.StatusOK, nil)
}

// handleServiceError maps service errors to HTTP responses.
func (h *QuoteHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrCollectionNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Collection not found")
	case errors.Is(err, service.ErrQuoteNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Quote not found")
	case errors.Is(err, service.ErrTextRequired),
		errors.Is(err, service.ErrTextTooLong),
		errors.Is(err, service.ErrNoFieldsToUpdate):
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// validateQuoteFields checks the optional metadata fields of a quote.
func validateQuoteFields(attributedTo, mood, tags, language string) error {
	if err := middleware.ValidateAttribution(attributedTo); err != nil {
		return err
	}
	if err := middleware.ValidateMood(mood); err != nil {
		return err
	}
	if err := middleware.ValidateTags(tags); err != nil {
		return err
	}
	return middleware.ValidateLanguage(language)
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
