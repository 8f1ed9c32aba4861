package session

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/obiora/librarium/internal/models"
)

var (
	ErrSessionNotFound = errors.New("session not found or expired")
)

// Session binds an opaque browser-held token to an authenticated identity.
type Session struct {
	Id         uuid.UUID
	Token      string
	UserId     int64
	Username   string
	Role       models.Role
	Created_at time.Time
	Expires_at time.Time
}

func (s *Session) Identity() *models.Identity {
	return &models.Identity{
		UserId:   s.UserId,
		Username: s.Username,
		Role:     s.Role,
	}
}

type Manager interface {
	Create(ctx context.Context, identity *models.Identity) (*Session, error)
	Get(ctx context.Context, token string) (*Session, error)
	Destroy(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type PostgresManager struct {
	db      *sql.DB
	ttl     time.Duration
	nowFunc func() time.Time
}

func NewPostgresManager(db *sql.DB, ttl time.Duration) (*PostgresManager, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be > 0")
	}

	m := &PostgresManager{db: db, ttl: ttl, nowFunc: time.Now}

	if err := m.ensureSchema(); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *PostgresManager) ensureSchema() error {
	const q = `
CREATE TABLE IF NOT EXISTS sessions (
	token TEXT PRIMARY KEY,
	session_id UUID NOT NULL UNIQUE,
	user_id BIGINT NOT NULL,
	username TEXT NOT NULL,
	role TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL
)`

	if _, err := m.db.Exec(q); err != nil {
		return fmt.Errorf("error ensuring sessions schema: %v", err)
	}

	return nil
}

func generateToken(n int) (string, error) {
	buf := make([]byte, n)

	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error generating token: %v", err)
	}

	return hex.EncodeToString(buf), nil
}

func (m *PostgresManager) Create(ctx context.Context, identity *models.Identity) (*Session, error) {
	token, err := generateToken(32)

	if err != nil {
		return nil, err
	}

	now := m.nowFunc()

	session := &Session{
		Id:         uuid.New(),
		Token:      token,
		UserId:     identity.UserId,
		Username:   identity.Username,
		Role:       identity.Role,
		Created_at: now,
		Expires_at: now.Add(m.ttl),
	}

	query := `
			INSERT INTO sessions (token, session_id, user_id, username, role, created_at, expires_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7);
	`

	if _, err := m.db.ExecContext(ctx, query,
		session.Token,
		session.Id,
		session.UserId,
		session.Username,
		string(session.Role),
		session.Created_at,
		session.Expires_at,
	); err != nil {
		return nil, fmt.Errorf("error inserting session: %v", err)
	}

	return session, nil
}

func (m *PostgresManager) Get(ctx context.Context, token string) (*Session, error) {
	var session Session

	query := `
			SELECT token, session_id, user_id, username, role, created_at, expires_at
			FROM sessions
			WHERE token = $1 AND expires_at > $2;
	`

	if err := m.db.QueryRowContext(ctx, query, token, m.nowFunc()).Scan(
		&session.Token,
		&session.Id,
		&session.UserId,
		&session.Username,
		&session.Role,
		&session.Created_at,
		&session.Expires_at,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSessionNotFound
		}

		return nil, fmt.Errorf("error querying sessions table: %v", err)
	}

	return &session, nil
}

func (m *PostgresManager) Destroy(ctx context.Context, token string) error {
	query := `
			DELETE FROM sessions WHERE token = $1;
	`

	if _, err := m.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("error deleting session: %v", err)
	}

	return nil
}

// DeleteExpired removes sessions past their expiry and reports how many were
// swept. The http command runs this on a ticker.
func (m *PostgresManager) DeleteExpired(ctx context.Context) (int64, error) {
	query := `
			DELETE FROM sessions WHERE expires_at <= $1;
	`

	result, err := m.db.ExecContext(ctx, query, m.nowFunc())

	if err != nil {
		return 0, fmt.Errorf("error sweeping sessions: %v", err)
	}

	rows, err := result.RowsAffected()

	if err != nil {
		return 0, fmt.Errorf("error reading rows affected: %v", err)
	}

	return rows, nil
}
