package carts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/arondight/internal/common"
	"github.com/dmitrijs2005/arondight/internal/dbx"
	"github.com/dmitrijs2005/arondight/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var newID = func() string { return uuid.NewString() }

func (r *PostgresRepository) Create(ctx context.Context) (*models.Cart, error) {
	query :=
		`INSERT INTO carts (id)
		 VALUES ($1)
		 RETURNING created_at
		 `

	cart := &models.Cart{ID: newID()}
	if err := r.db.QueryRowContext(ctx, query, cart.ID).Scan(&cart.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return cart, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Cart, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrNotFound
	}

	query :=
		`SELECT id, created_at FROM carts
		 WHERE id = $1
		 `

	cart := &models.Cart{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&cart.ID, &cart.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return cart, nil
}
