package orders

import (
	"context"

	"github.com/dmitrijs2005/arondight/internal/server/models"
)

type Repository interface {
	ListByAccount(ctx context.Context, accountID string) ([]models.Order, error)
}
