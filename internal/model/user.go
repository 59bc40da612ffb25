package model

import "time"

// User represents a minimal user entity that owns collections and API keys.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
