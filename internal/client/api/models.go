package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Cart struct {
	ID string `json:"_id"`
}

type Order struct {
	ID        string    `json:"_id"`
	CreatedAt time.Time `json:"createdAt"`
}

// User is the account view returned by GET /users/:id.
type User struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Cart       *Cart     `json:"cart"`
	PastOrders []Order   `json:"pastOrders"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// UpdateRequest lists the profile fields to change; nil fields are omitted.
type UpdateRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// Identity is the readable part of a session token.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	ID    string `json:"id"`
	jwt.RegisteredClaims
}

// IdentityFromToken decodes the token payload without checking the
// signature. The server remains the only party that verifies tokens.
func IdentityFromToken(token string) (*Identity, error) {
	var id Identity
	if _, _, err := jwt.NewParser().ParseUnverified(token, &id); err != nil {
		return nil, err
	}
	return &id, nil
}
