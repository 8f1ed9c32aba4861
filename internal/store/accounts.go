package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/obiora/librarium/internal/models"
)

var (
	ErrAccountNotFound = errors.New("account not found")
)

func (s *PostgresStore) GetAccountByUsername(ctx context.Context, username string, role models.Role) (*models.Account, error) {
	var account models.Account

	query := `
			SELECT id, username, password, role, created_at
			FROM accounts
			WHERE username = $1 AND role = $2;
	`

	if err := s.DB.QueryRowContext(ctx, query, username, string(role)).Scan(
		&account.Id,
		&account.Username,
		&account.Password,
		&account.Role,
		&account.Created_at,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAccountNotFound
		}

		return nil, fmt.Errorf("error querying accounts table: %v", err)
	}

	return &account, nil
}
