package accounts

import (
	"context"

	"github.com/dmitrijs2005/arondight/internal/server/models"
)

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindByID(ctx context.Context, id string) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	AttachCart(ctx context.Context, accountID, cartID string) error
	Save(ctx context.Context, account *models.Account) error
	DeleteByID(ctx context.Context, id string) error
}
