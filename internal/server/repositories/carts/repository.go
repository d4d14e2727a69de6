package carts

import (
	"context"

	"github.com/dmitrijs2005/arondight/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context) (*models.Cart, error)
	FindByID(ctx context.Context, id string) (*models.Cart, error)
}
