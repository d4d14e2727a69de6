package models

import "time"

type Cart struct {
	ID        string    `json:"_id"`
	CreatedAt time.Time `json:"createdAt"`
}
