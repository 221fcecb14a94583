package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/cookeryapp/cookery-server/internal/domain"
	"github.com/cookeryapp/cookery-server/internal/store"
)

// sessionColumns is the ordered list of columns selected in session queries.
// Must match the scan order in scanSession.
const sessionColumns = `id, user_id, refresh_token_hash, expires_at, created_at, last_seen_at`

// scanSession scans a sql.Row (or sql.Rows via its Scan method) into a domain.Session.
func scanSession(scanner interface{ Scan(dest ...any) error }) (*domain.Session, error) {
	var sess domain.Session

	var (
		expiresAt  string
		createdAt  string
		lastSeenAt string
	)

	err := scanner.Scan(
		&sess.ID,
		&sess.UserID,
		&sess.RefreshTokenHash,
		&expiresAt,
		&createdAt,
		&lastSeenAt,
	)
	if err != nil {
		return nil, err
	}

	sess.ExpiresAt, err = parseTime(expiresAt)
	if err != nil {
		return nil, err
	}
	sess.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	sess.LastSeenAt, err = parseTime(lastSeenAt)
	if err != nil {
		return nil, err
	}

	return &sess, nil
}

// CreateSession inserts a new session into the database.
// Returns store.ErrAlreadyExists if the session ID already exists.
func (s *Store) CreateSession(ctx context.Context, session *domain.Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (
			id, user_id, refresh_token_hash, expires_at, created_at, last_seen_at
		) VALUES (?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.UserID,
		session.RefreshTokenHash,
		formatTime(session.ExpiresAt),
		formatTime(session.CreatedAt),
		formatTime(session.LastSeenAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetSessionByTokenHash retrieves a session by its refresh token hash.
// Returns store.ErrNotFound if no session matches.
func (s *Store) GetSessionByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE refresh_token_hash = ?`, tokenHash)

	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// UpdateSession performs a full row update on an existing session.
// Returns store.ErrNotFound if the session does not exist.
func (s *Store) UpdateSession(ctx context.Context, session *domain.Session) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE sessions SET
			user_id = ?,
			refresh_token_hash = ?,
			expires_at = ?,
			last_seen_at = ?
		WHERE id = ?`,
		session.UserID,
		session.RefreshTokenHash,
		formatTime(session.ExpiresAt),
		formatTime(session.LastSeenAt),
		session.ID,
	)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteSession performs a hard delete of a session by ID.
// Returns store.ErrNotFound if the session does not exist.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteExpiredSessions removes sessions whose expiry is in the past and
// returns the number removed.
func (s *Store) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ?`, formatTime(time.Now()))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
