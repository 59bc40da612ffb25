package dto

import (
	"time"

	"github.com/quotestash/quotestash/internal/model"
)

// CreateQuoteRequest represents the request body for creating a quote.
type CreateQuoteRequest struct {
	Text         string `json:"text"`
	AttributedTo string `json:"attributedTo,omitempty"`
	Mood         string `json:"mood,omitempty"`
	Tags         string `json:"tags,omitempty"`
	Language     string `json:"language,omitempty"`
	IsFavorite   bool   `json:"isFavorite,omitempty"`
	IsPublic     bool   `json:"isPublic,omitempty"`
}

// UpdateQuoteRequest represents the request body for updating a quote.
// All fields are optional; at least one must be present.
type UpdateQuoteRequest struct {
	Text         *string `json:"text,omitempty"`
	AttributedTo *string `json:"attributedTo,omitempty"`
	Mood         *string `json:"mood,omitempty"`
	Tags         *string `json:"tags,omitempty"`
	Language     *string `json:"language,omitempty"`
	IsFavorite   *bool   `json:"isFavorite,omitempty"`
	IsPublic     *bool   `json:"isPublic,omitempty"`
}

// HasFields reports whether any patchable field is present.
func (r UpdateQuoteRequest) HasFields() bool {
	return r.Text != nil || r.AttributedTo != nil || r.Mood != nil ||
		r.Tags != nil || r.Language != nil || r.IsFavorite != nil || r.IsPublic != nil
}

// QuoteResponse represents a quote in API responses.
type QuoteResponse struct {
	ID           string    `json:"id"`
	CollectionID string    `json:"collectionId"`
	Text         string    `json:"text"`
	AttributedTo string    `json:"attributedTo,omitempty"`
	Mood         string    `json:"mood,omitempty"`
	Tags         string    `json:"tags,omitempty"`
	Language     string    `json:"language,omitempty"`
	IsFavorite   bool      `json:"isFavorite"`
	IsPublic     bool      `json:"isPublic"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// QuoteListResponse represents the quotes of one collection.
type QuoteListResponse struct {
	Items []QuoteResponse `json:"items"`
	Total int             `json:"total"`
}

// ToQuoteResponse converts a Quote model to its response DTO.
func ToQuoteResponse(quote *model.Quote) *QuoteResponse {
	return &QuoteResponse{
		ID:           quote.ID,
		CollectionID: quote.CollectionID,
		Text:         quote.Text,
		AttributedTo: quote.AttributedTo,
		Mood:         quote.Mood,
		Tags:         quote.Tags,
		Language:     quote.Language,
		IsFavorite:   quote.IsFavorite,
		IsPublic:     quote.IsPublic,
		CreatedAt:    quote.CreatedAt,
		UpdatedAt:    quote.UpdatedAt,
	}
}

// ToQuoteListResponse converts a slice of Quote models.
func ToQuoteListResponse(quotes []*model.Quote) *QuoteListResponse {
	items := make([]QuoteResponse, len(quotes))
	for i, quote := range quotes {
		items[i] = *ToQuoteResponse(quote)
	}
	return &QuoteListResponse{
		Items: items,
		Total: len(items),
	}
}
