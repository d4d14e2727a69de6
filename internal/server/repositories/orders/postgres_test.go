package orders

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

const listOrders = `(?s)^SELECT\s+id,\s*account_id,\s*created_at\s+FROM\s+orders\s+WHERE\s+account_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s*$`

func TestListByAccount(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	t0 := time.Now().Add(-time.Hour)
	rows := sqlmock.NewRows([]string{"id", "account_id", "created_at"}).
		AddRow("o1", "a1", t0).
		AddRow("o2", "a1", t0.Add(time.Minute))
	mock.ExpectQuery(listOrders).WithArgs("a1").WillReturnRows(rows)

	got, err := repo.ListByAccount(context.Background(), "a1")
	if err != nil {
		t.Fatalf("ListByAccount error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "o1" || got[1].ID != "o2" {
		t.Fatalf("unexpected orders: %+v", got)
	}
}

func TestListByAccount_Empty(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(listOrders).WithArgs("a1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "created_at"}))

	got, err := repo.ListByAccount(context.Background(), "a1")
	if err != nil {
		t.Fatalf("ListByAccount error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestListByAccount_Errors(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(listOrders).WithArgs("a1").WillReturnError(errors.New("db err"))
	_, err = repo.ListByAccount(context.Background(), "a1")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}

	rows := sqlmock.NewRows([]string{"id", "account_id", "created_at"}).
		AddRow("o1", "a1", time.Now()).
		RowError(0, errors.New("row broke"))
	mock.ExpectQuery(listOrders).WithArgs("a1").WillReturnRows(rows)
	_, err = repo.ListByAccount(context.Background(), "a1")
	if err == nil || !regexp.MustCompile(`db error: .*row broke`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped row error, got %v", err)
	}
}
