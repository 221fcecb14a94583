package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/cookeryapp/cookery-server/internal/domain"
	"github.com/cookeryapp/cookery-server/internal/store"
)

// userColumns is the ordered list of columns selected in user queries.
// Must match the scan order in scanUser.
const userColumns = `id, email, password_hash, name, is_active, is_staff, is_superuser,
	created_at, updated_at, last_login_at`

// scanUser scans a sql.Row (or sql.Rows via its Scan method) into a domain.User.
func scanUser(scanner interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var u domain.User

	var (
		isActive    int
		isStaff     int
		isSuperuser int
		createdAt   string
		updatedAt   string
		lastLoginAt string
	)

	err := scanner.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&isActive,
		&isStaff,
		&isSuperuser,
		&createdAt,
		&updatedAt,
		&lastLoginAt,
	)
	if err != nil {
		return nil, err
	}

	u.IsActive = isActive != 0
	u.IsStaff = isStaff != 0
	u.IsSuperuser = isSuperuser != 0

	u.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	u.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	u.LastLoginAt, err = parseOptionalTime(lastLoginAt)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// CreateUser inserts a new user into the database. The uniqueness check runs
// against the normalized email, so "A@Example.com" and "A@example.com"
// collide. Returns store.ErrAlreadyExists on such a collision.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (
			id, email, email_norm, password_hash, name,
			is_active, is_staff, is_superuser,
			created_at, updated_at, last_login_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Email,
		domain.NormalizeEmail(user.Email),
		user.PasswordHash,
		user.Name,
		boolToInt(user.IsActive),
		boolToInt(user.IsStaff),
		boolToInt(user.IsSuperuser),
		formatTime(user.CreatedAt),
		formatTime(user.UpdatedAt),
		formatOptionalTime(user.LastLoginAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetUser retrieves a user by ID.
// Returns store.ErrNotFound if the user does not exist.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByEmail retrieves a user by normalized email.
// Returns store.ErrNotFound if the user does not exist.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email_norm = ?`,
		domain.NormalizeEmail(email))

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateUser performs a full row update on an existing user.
// Returns store.ErrNotFound if the user does not exist.
func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE users SET
			email = ?,
			email_norm = ?,
			password_hash = ?,
			name = ?,
			is_active = ?,
			is_staff = ?,
			is_superuser = ?,
			updated_at = ?,
			last_login_at = ?
		WHERE id = ?`,
		user.Email,
		domain.NormalizeEmail(user.Email),
		user.PasswordHash,
		user.Name,
		boolToInt(user.IsActive),
		boolToInt(user.IsStaff),
		boolToInt(user.IsSuperuser),
		formatTime(user.UpdatedAt),
		formatOptionalTime(user.LastLoginAt),
		user.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
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
