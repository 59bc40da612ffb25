// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/quotestash/quotestash/internal/handler/dto"
)

// Handler serves the unauthenticated root endpoints.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// Hello is a simple hello endpoint for smoke tests.
// GET /
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]string{
		"message": "Hello from Quotestash!",
		"version": "0.1.0",
	})
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent, nothing useful left to do
		_ = err
	}
}

// writeSuccess writes a successful envelope response.
func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, dto.Success(data))
}

// writeError writes a failed envelope response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.Failure(code, message))
}
