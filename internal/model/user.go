// Package model defines domain models and types used throughout the application.
package model

import "time"

// User represents an account that owns skills, events and API keys.
// There is no interactive login; users authenticate with API keys only.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
