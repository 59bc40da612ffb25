// Package model defines domain entities for the application.
package model

import "time"

// Collection represents a named grouping of quotes owned by one user.
type Collection struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	IsDefault   bool      `json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsOwnedBy reports whether the collection belongs to the given user.
func (c *Collection) IsOwnedBy(userID string) bool {
	return c.UserID == userID
}
