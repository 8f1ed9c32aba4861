package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/obiora/librarium/internal/models"
)

var (
	ErrBookAlreadyBorrowed = errors.New("book is already borrowed")
	ErrLoanNotFound        = errors.New("no open loan for this reader and book")
)

const uniqueViolation = "23505"

// BorrowBook opens a loan with a single conditional insert, so the check and
// the write cannot interleave with a concurrent borrow. A racing insert that
// slips past the WHERE NOT EXISTS is stopped by the partial unique index and
// reported the same way.
func (s *PostgresStore) BorrowBook(ctx context.Context, bookId int64, readerId int64) error {
	query := `
			INSERT INTO borrowed_books (book_id, reader_id, borrow_date)
			SELECT $1, $2, NOW()
			WHERE NOT EXISTS (
				SELECT 1 FROM borrowed_books WHERE book_id = $1 AND return_date IS NULL
			);
	`

	result, err := s.DB.ExecContext(ctx, query, bookId, readerId)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrBookAlreadyBorrowed
		}

		return fmt.Errorf("error inserting loan: %v", err)
	}

	rows, err := result.RowsAffected()

	if err != nil {
		return fmt.Errorf("error reading rows affected: %v", err)
	}

	if rows == 0 {
		return ErrBookAlreadyBorrowed
	}

	return nil
}

// ReturnBook closes the open loan held by this reader. A reader can only
// return a book they borrowed themselves.
func (s *PostgresStore) ReturnBook(ctx context.Context, bookId int64, readerId int64) error {
	query := `
			UPDATE borrowed_books
			SET return_date = NOW()
			WHERE book_id = $1 AND reader_id = $2 AND return_date IS NULL;
	`

	result, err := s.DB.ExecContext(ctx, query, bookId, readerId)

	if err != nil {
		return fmt.Errorf("error closing loan: %v", err)
	}

	rows, err := result.RowsAffected()

	if err != nil {
		return fmt.Errorf("error reading rows affected: %v", err)
	}

	if rows == 0 {
		return ErrLoanNotFound
	}

	return nil
}

func (s *PostgresStore) GetOutstandingLoans(ctx context.Context) ([]models.OutstandingLoan, error) {
	loans := []models.OutstandingLoan{}

	query := `
			SELECT bb.book_id, b.title, a.username AS borrowed_by, bb.borrow_date
			FROM borrowed_books bb
			JOIN books b ON (bb.book_id = b.id)
			JOIN accounts a ON (bb.reader_id = a.id)
			WHERE bb.return_date IS NULL;
	`

	rows, err := s.DB.QueryContext(ctx, query)

	if err != nil {
		return nil, fmt.Errorf("error getting outstanding loans: %v", err)
	}

	defer rows.Close()

	for rows.Next() {
		var loan models.OutstandingLoan

		if err := rows.Scan(
			&loan.Book_id,
			&loan.Title,
			&loan.BorrowedBy,
			&loan.Borrow_date,
		); err != nil {
			return nil, fmt.Errorf("error scanning loans: %v", err)
		}

		loans = append(loans, loan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating loans: %v", err)
	}

	return loans, nil
}
