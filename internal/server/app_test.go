package server

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/arondight/internal/dbx"
	"github.com/dmitrijs2005/arondight/internal/server/config"
	"github.com/dmitrijs2005/arondight/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/arondight/internal/server/repositories/carts"
	"github.com/dmitrijs2005/arondight/internal/server/repositories/orders"
	"github.com/dmitrijs2005/arondight/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepoManager struct {
	migrateErr error
	migrated   bool
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error {
	m.migrated = true
	return m.migrateErr
}
func (m *fakeRepoManager) Accounts(db dbx.DBTX) accounts.Repository { return nil }
func (m *fakeRepoManager) Carts(db dbx.DBTX) carts.Repository       { return nil }
func (m *fakeRepoManager) Orders(db dbx.DBTX) orders.Repository     { return nil }

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.SecretKey = "secret"
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.ShutdownTimeout = time.Second
	c.LogLevel = "error"
	return c
}

func withSeams(t *testing.T, rm *fakeRepoManager, pingErr error) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	ping := mock.ExpectPing()
	if pingErr != nil {
		ping.WillReturnError(pingErr)
	}

	origOpen, origRM := openDB, newRepositoryManager
	openDB = func(string) (*sql.DB, error) { return db, nil }
	newRepositoryManager = func() repomanager.RepositoryManager { return rm }
	t.Cleanup(func() {
		openDB, newRepositoryManager = origOpen, origRM
		db.Close()
	})
	return mock
}

func TestNewApp_RequiresSecret(t *testing.T) {
	c := testConfig()
	c.SecretKey = ""

	_, err := NewApp(context.Background(), c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret")
}

func TestNewApp_Success(t *testing.T) {
	rm := &fakeRepoManager{}
	withSeams(t, rm, nil)

	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)
	require.NotNil(t, app)
	assert.True(t, rm.migrated)
	assert.NotNil(t, app.accounts)
	assert.Equal(t, 24*time.Hour, app.issuer.TTL())
}

func TestNewApp_PingFailure(t *testing.T) {
	withSeams(t, &fakeRepoManager{}, errors.New("refused"))

	_, err := NewApp(context.Background(), testConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db ping error")
}

func TestNewApp_MigrationFailure(t *testing.T) {
	withSeams(t, &fakeRepoManager{migrateErr: errors.New("bad sql")}, nil)

	_, err := NewApp(context.Background(), testConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations error")
}

func TestNewApp_OpenFailure(t *testing.T) {
	orig := openDB
	openDB = func(string) (*sql.DB, error) { return nil, errors.New("no driver") }
	defer func() { openDB = orig }()

	_, err := NewApp(context.Background(), testConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db init error")
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	mock := withSeams(t, &fakeRepoManager{}, nil)
	mock.ExpectClose()

	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
