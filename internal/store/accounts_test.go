package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/obiora/librarium/internal/models"
)

func TestGetAccountByUsername(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "username", "password", "role", "created_at"}).
		AddRow(int64(1), "boss", "$2a$10$hash", "admin", time.Now())

	mock.ExpectQuery("SELECT id, username, password, role, created_at").
		WithArgs("boss", "admin").
		WillReturnRows(rows)

	account, err := store.GetAccountByUsername(context.Background(), "boss", models.RoleAdmin)

	if err != nil {
		t.Fatalf("GetAccountByUsername() error: %v", err)
	}

	if account.Id != 1 || account.Username != "boss" || account.Role != models.RoleAdmin {
		t.Fatalf("unexpected account: %+v", account)
	}
}

func TestGetAccountByUsernameNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id, username, password, role, created_at").
		WithArgs("ghost", "reader").
		WillReturnError(sql.ErrNoRows)

	if _, err := store.GetAccountByUsername(context.Background(), "ghost", models.RoleReader); err != ErrAccountNotFound {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestGetAccountRoleNamespacesAreDisjoint(t *testing.T) {
	store, mock := newMockStore(t)

	// the same username exists only under the reader role here, so the
	// admin namespace lookup misses
	mock.ExpectQuery("SELECT id, username, password, role, created_at").
		WithArgs("sam", "admin").
		WillReturnError(sql.ErrNoRows)

	if _, err := store.GetAccountByUsername(context.Background(), "sam", models.RoleAdmin); err != ErrAccountNotFound {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}

	rows := sqlmock.NewRows([]string{"id", "username", "password", "role", "created_at"}).
		AddRow(int64(2), "sam", "$2a$10$hash", "reader", time.Now())

	mock.ExpectQuery("SELECT id, username, password, role, created_at").
		WithArgs("sam", "reader").
		WillReturnRows(rows)

	account, err := store.GetAccountByUsername(context.Background(), "sam", models.RoleReader)

	if err != nil {
		t.Fatalf("GetAccountByUsername() error: %v", err)
	}

	if account.Role != models.RoleReader {
		t.Fatalf("expected reader role, got %s", account.Role)
	}
}
