package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/obiora/librarium/internal/models"
)

type Store interface {
	GetAccountByUsername(ctx context.Context, username string, role models.Role) (*models.Account, error)
	GetBooksWithStatus(ctx context.Context) ([]models.BookWithStatus, error)
	CreateBook(ctx context.Context, book *models.HandleBookParams) (*models.Book, error)
	UpdateBook(ctx context.Context, id int64, book *models.HandleBookParams) (*models.Book, error)
	DeleteBook(ctx context.Context, id int64) error
	BorrowBook(ctx context.Context, bookId int64, readerId int64) error
	ReturnBook(ctx context.Context, bookId int64, readerId int64) error
	PurchaseBook(ctx context.Context, bookId int64, readerId int64) error
	GetOutstandingLoans(ctx context.Context) ([]models.OutstandingLoan, error)
}

type PostgresStore struct {
	*sql.DB
}

func Open(conn string, maxConns int) (*sql.DB, error) {
	db, err := sql.Open("postgres", conn)

	if err != nil {
		return nil, fmt.Errorf("error connecting to db: %v", err)
	}

	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
		db.SetMaxIdleConns(maxConns)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error pinging db: %v", err)
	}

	return db, nil
}

func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	s := &PostgresStore{DB: db}

	if err := s.ensureSchema(); err != nil {
		return nil, err
	}

	return s, nil
}

// ensureSchema creates the catalog tables. The partial unique index on
// borrowed_books backs the one-open-loan-per-book guarantee even if two
// conditional inserts race.
func (s *PostgresStore) ensureSchema() error {
	const q = `
CREATE TABLE IF NOT EXISTS accounts (
	id BIGSERIAL PRIMARY KEY,
	username TEXT NOT NULL,
	password TEXT NOT NULL,
	role TEXT NOT NULL CHECK (role IN ('reader', 'admin')),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (username, role)
);

CREATE TABLE IF NOT EXISTS books (
	id BIGSERIAL PRIMARY KEY,
	title TEXT NOT NULL,
	author TEXT NOT NULL,
	cover TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS borrowed_books (
	id BIGSERIAL PRIMARY KEY,
	book_id BIGINT NOT NULL REFERENCES books (id) ON DELETE CASCADE,
	reader_id BIGINT NOT NULL REFERENCES accounts (id),
	borrow_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	return_date TIMESTAMPTZ
);

CREATE UNIQUE INDEX IF NOT EXISTS borrowed_books_one_open_loan
	ON borrowed_books (book_id) WHERE return_date IS NULL;

CREATE TABLE IF NOT EXISTS purchased_books (
	id BIGSERIAL PRIMARY KEY,
	book_id BIGINT NOT NULL,
	reader_id BIGINT NOT NULL REFERENCES accounts (id),
	purchase_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

	if _, err := s.DB.Exec(q); err != nil {
		return fmt.Errorf("error ensuring schema: %v", err)
	}

	return nil
}
