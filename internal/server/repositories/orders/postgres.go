package orders

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/arondight/internal/dbx"
	"github.com/dmitrijs2005/arondight/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListByAccount returns the account's orders, oldest first.
func (r *PostgresRepository) ListByAccount(ctx context.Context, accountID string) ([]models.Order, error) {
	query :=
		`SELECT id, account_id, created_at FROM orders
		 WHERE account_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Order, 0)
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.AccountID, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
