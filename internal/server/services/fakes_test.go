package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/arondight/internal/common"
	"github.com/dmitrijs2005/arondight/internal/dbx"
	"github.com/dmitrijs2005/arondight/internal/server/auth"
	"github.com/dmitrijs2005/arondight/internal/server/models"
	"github.com/dmitrijs2005/arondight/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/arondight/internal/server/repositories/carts"
	"github.com/dmitrijs2005/arondight/internal/server/repositories/orders"
	"golang.org/x/crypto/bcrypt"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// store is a shared in-memory backing for the fake repositories.
type store struct {
	mu       sync.Mutex
	seq      int
	accounts map[string]*models.Account
	carts    map[string]*models.Cart
	orders   []models.Order

	findErr   error
	createErr error
	cartErr   error
	attachErr error
	saveErr   error
	deleteErr error
	ordersErr error
}

func newStore() *store {
	return &store{accounts: map[string]*models.Account{}, carts: map[string]*models.Cart{}}
}

func (s *store) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

type fakeAccounts struct{ s *store }

func (f *fakeAccounts) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.findErr != nil {
		return nil, f.s.findErr
	}
	for _, a := range f.s.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeAccounts) FindByID(ctx context.Context, id string) (*models.Account, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.findErr != nil {
		return nil, f.s.findErr
	}
	a, ok := f.s.accounts[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccounts) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.createErr != nil {
		return nil, f.s.createErr
	}
	for _, other := range f.s.accounts {
		if other.Email == a.Email {
			return nil, common.ErrDuplicateResource
		}
	}
	a.ID = f.s.nextID("acc")
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	f.s.accounts[a.ID] = &cp
	return a, nil
}

func (f *fakeAccounts) AttachCart(ctx context.Context, accountID, cartID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.attachErr != nil {
		return f.s.attachErr
	}
	a, ok := f.s.accounts[accountID]
	if !ok {
		return common.ErrNotFound
	}
	a.CartID = cartID
	return nil
}

func (f *fakeAccounts) Save(ctx context.Context, a *models.Account) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.saveErr != nil {
		return f.s.saveErr
	}
	if _, ok := f.s.accounts[a.ID]; !ok {
		return common.ErrNotFound
	}
	cp := *a
	f.s.accounts[a.ID] = &cp
	return nil
}

func (f *fakeAccounts) DeleteByID(ctx context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.deleteErr != nil {
		return f.s.deleteErr
	}
	if _, ok := f.s.accounts[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.s.accounts, id)
	return nil
}

type fakeCarts struct{ s *store }

func (f *fakeCarts) Create(ctx context.Context) (*models.Cart, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.cartErr != nil {
		return nil, f.s.cartErr
	}
	c := &models.Cart{ID: f.s.nextID("cart"), CreatedAt: time.Now()}
	f.s.carts[c.ID] = c
	return c, nil
}

func (f *fakeCarts) FindByID(ctx context.Context, id string) (*models.Cart, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c, ok := f.s.carts[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return c, nil
}

type fakeOrders struct{ s *store }

func (f *fakeOrders) ListByAccount(ctx context.Context, accountID string) ([]models.Order, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.ordersErr != nil {
		return nil, f.s.ordersErr
	}
	out := []models.Order{}
	for _, o := range f.s.orders {
		if o.AccountID == accountID {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeRepoManager struct{ s *store }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Accounts(db dbx.DBTX) accounts.Repository     { return &fakeAccounts{m.s} }
func (m *fakeRepoManager) Carts(db dbx.DBTX) carts.Repository           { return &fakeCarts{m.s} }
func (m *fakeRepoManager) Orders(db dbx.DBTX) orders.Repository         { return &fakeOrders{m.s} }

type fakeIssuer struct {
	err  error
	last auth.Claims
}

func (f *fakeIssuer) Issue(c auth.Claims) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.last = c
	return "token-for-" + c.ID, nil
}

type brokenHasher struct{}

func (brokenHasher) Hash(string) (string, error) { return "", errors.New("entropy gone") }
func (brokenHasher) Verify(string, string) bool  { return false }

type recordedAuth struct{ op, outcome string }

type fakeRecorder struct {
	mu     sync.Mutex
	events []recordedAuth
}

func (r *fakeRecorder) RecordAuth(op, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedAuth{op, outcome})
}

func (r *fakeRecorder) last() recordedAuth {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return recordedAuth{}
	}
	return r.events[len(r.events)-1]
}

type fixture struct {
	db       *sql.DB
	mock     sqlmock.Sqlmock
	store    *store
	issuer   *fakeIssuer
	recorder *fakeRecorder
	svc      *AccountService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, mock := newSQLMockDB(t)
	f := &fixture{
		db:       db,
		mock:     mock,
		store:    newStore(),
		issuer:   &fakeIssuer{},
		recorder: &fakeRecorder{},
	}
	f.svc = NewAccountService(db, &fakeRepoManager{f.store}, auth.NewBcryptHasher(bcrypt.MinCost), f.issuer, nil, f.recorder)
	return f
}

// register runs a successful registration and returns the new account id.
func (f *fixture) register(t *testing.T, name, email, password string) string {
	t.Helper()
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	if _, err := f.svc.Register(context.Background(), RegisterInput{Name: name, Email: email, Password: password}); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	return f.issuer.last.ID
}
