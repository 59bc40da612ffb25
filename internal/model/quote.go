package model

import "time"

// Quote represents a single stored text item belonging to exactly one
// collection. UserID is a denormalized copy of the collection owner's ID,
// set once at creation from the authenticated caller and never updated.
type Quote struct {
	ID           string    `json:"id"`
	CollectionID string    `json:"collection_id"`
	UserID       string    `json:"user_id"`
	Text         string    `json:"text"`
	AttributedTo string    `json:"attributed_to,omitempty"`
	Mood         string    `json:"mood,omitempty"`
	Tags         string    `json:"tags,omitempty"`
	Language     string    `json:"language,omitempty"`
	IsFavorite   bool      `json:"is_favorite"`
	// IsPublic is stored but has no effect on owner-scoped listings.
	// Reserved for a future non-owner gallery path.
	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
