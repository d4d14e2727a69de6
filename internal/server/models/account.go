// Package models defines server-side data models persisted in the database.
package models

import "time"

// Account is a registered identity. PasswordHash holds a bcrypt hash and is
// never serialized.
type Account struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CartID       string    `json:"cart,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
