package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/obiora/librarium/internal/models"
)

var (
	ErrBookNotFound = errors.New("book not found")
)

func (s *PostgresStore) GetBooksWithStatus(ctx context.Context) ([]models.BookWithStatus, error) {
	books := []models.BookWithStatus{}

	query := `
			SELECT b.id, b.title, b.author, b.cover,
			CASE
				WHEN bb.book_id IS NOT NULL AND bb.return_date IS NULL THEN 'borrowed'
				ELSE 'available'
			END AS status,
			a.username AS borrowed_by
			FROM books b
			LEFT JOIN borrowed_books bb ON (b.id = bb.book_id AND bb.return_date IS NULL)
			LEFT JOIN accounts a ON (bb.reader_id = a.id);
	`

	rows, err := s.DB.QueryContext(ctx, query)

	if err != nil {
		return nil, fmt.Errorf("error getting books: %v", err)
	}

	defer rows.Close()

	for rows.Next() {
		var book models.BookWithStatus

		if err := rows.Scan(
			&book.Id,
			&book.Title,
			&book.Author,
			&book.Cover,
			&book.Status,
			&book.BorrowedBy,
		); err != nil {
			return nil, fmt.Errorf("error scanning books: %v", err)
		}

		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %v", err)
	}

	return books, nil
}

func (s *PostgresStore) CreateBook(ctx context.Context, book *models.HandleBookParams) (*models.Book, error) {
	var created models.Book

	query := `
			INSERT INTO books (title, author, cover, created_at)
			VALUES ($1, $2, $3, NOW())
			RETURNING id, title, author, cover, created_at;
	`

	if err := s.DB.QueryRowContext(ctx, query, book.Title, book.Author, book.Cover).Scan(
		&created.Id,
		&created.Title,
		&created.Author,
		&created.Cover,
		&created.Created_at,
	); err != nil {
		return nil, fmt.Errorf("error inserting into books table: %v", err)
	}

	return &created, nil
}

// UpdateBook overwrites all three fields and then re-reads the row. A missing
// id is a silent no-op on the update that surfaces as ErrBookNotFound from
// the re-read.
func (s *PostgresStore) UpdateBook(ctx context.Context, id int64, book *models.HandleBookParams) (*models.Book, error) {
	query := `
			UPDATE books
			SET title = $1, author = $2, cover = $3
			WHERE id = $4;
	`

	if _, err := s.DB.ExecContext(ctx, query, book.Title, book.Author, book.Cover, id); err != nil {
		return nil, fmt.Errorf("error updating book: %v", err)
	}

	var updated models.Book

	query = `
			SELECT id, title, author, cover, created_at FROM books WHERE id = $1;
	`

	if err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&updated.Id,
		&updated.Title,
		&updated.Author,
		&updated.Cover,
		&updated.Created_at,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBookNotFound
		}

		return nil, fmt.Errorf("error scanning book: %v", err)
	}

	return &updated, nil
}

func (s *PostgresStore) DeleteBook(ctx context.Context, id int64) error {
	query := `
			DELETE FROM books WHERE id = $1;
	`

	if _, err := s.DB.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("error deleting book: %v", err)
	}

	return nil
}
