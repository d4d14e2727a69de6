package models

import "time"

type Order struct {
	ID        string    `json:"_id"`
	AccountID string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}
