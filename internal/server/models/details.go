package models

import "time"

// AccountDetails is an account with its cart and past orders expanded.
type AccountDetails struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Cart       *Cart     `json:"cart"`
	PastOrders []Order   `json:"pastOrders"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewAccountDetails combines an account with its related rows. A nil
// orders slice is reported as an empty list.
func NewAccountDetails(a *Account, cart *Cart, orders []Order) *AccountDetails {
	if orders == nil {
		orders = []Order{}
	}
	return &AccountDetails{
		ID:         a.ID,
		Name:       a.Name,
		Email:      a.Email,
		Cart:       cart,
		PastOrders: orders,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
