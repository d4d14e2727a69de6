package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/arondight/internal/dbx"
	"github.com/dmitrijs2005/arondight/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/arondight/internal/server/repositories/carts"
	"github.com/dmitrijs2005/arondight/internal/server/repositories/orders"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Carts(db dbx.DBTX) carts.Repository
	Orders(db dbx.DBTX) orders.Repository
}
