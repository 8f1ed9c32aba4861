package store

import (
	"context"
	"fmt"
)

// PurchaseBook appends a purchase record. There is no stock tracking, so
// every purchase succeeds and repeat purchases each get their own row.
func (s *PostgresStore) PurchaseBook(ctx context.Context, bookId int64, readerId int64) error {
	query := `
			INSERT INTO purchased_books (book_id, reader_id, purchase_date)
			VALUES ($1, $2, NOW());
	`

	if _, err := s.DB.ExecContext(ctx, query, bookId, readerId); err != nil {
		return fmt.Errorf("error inserting purchase: %v", err)
	}

	return nil
}
