// Package accounts persists registered identities in PostgreSQL.
package accounts

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

// newID is replaced in tests.
var newID = func() string { return uuid.NewString() }

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	query :=
		`SELECT id, name, email, password_hash, COALESCE(cart_id::text, ''), created_at, updated_at
		 FROM accounts
		 WHERE email = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, common.NormalizeEmail(email)))
}

// FindByID loads an account. Ids that are not UUIDs cannot exist and are
// reported as common.ErrNotFound without a query.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrNotFound
	}

	query :=
		`SELECT id, name, email, password_hash, COALESCE(cart_id::text, ''), created_at, updated_at
		 FROM accounts
		 WHERE id = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Account, error) {
	a := &models.Account{}
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.CartID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

// Create inserts account, assigning its ID. The cart is linked separately
// with AttachCart.
func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	query :=
		`INSERT INTO accounts (id, name, email, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at
		 `

	id := newID()
	email := common.NormalizeEmail(account.Email)

	err := r.db.QueryRowContext(ctx, query, id, account.Name, email, account.PasswordHash).
		Scan(&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrDuplicateResource
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	account.ID = id
	account.Email = email
	return account, nil
}

func (r *PostgresRepository) AttachCart(ctx context.Context, accountID, cartID string) error {
	query :=
		`UPDATE accounts SET cart_id = $2, updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, accountID, cartID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireOneRow(res)
}

// Save overwrites name, email and password hash of an existing account.
func (r *PostgresRepository) Save(ctx context.Context, account *models.Account) error {
	query :=
		`UPDATE accounts SET name = $2, email = $3, password_hash = $4, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at
		 `

	email := common.NormalizeEmail(account.Email)

	err := r.db.QueryRowContext(ctx, query, account.ID, account.Name, email, account.PasswordHash).
		Scan(&account.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		if dbx.IsUniqueViolation(err) {
			return common.ErrDuplicateResource
		}
		return fmt.Errorf("db error: %w", err)
	}

	account.Email = email
	return nil
}

// DeleteByID removes the account row. Its cart and orders are left in place.
func (r *PostgresRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireOneRow(res)
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
