package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/cookeryapp/cookery-server/internal/domain"
	"github.com/cookeryapp/cookery-server/internal/store"
)

// tagColumns is the ordered list of columns selected in tag queries.
// Must match the scan order in scanTag.
const tagColumns = `id, user_id, name`

// scanTag scans a sql.Row (or sql.Rows via its Scan method) into a domain.Tag.
func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag
	if err := scanner.Scan(&t.ID, &t.UserID, &t.Name); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTag inserts a new tag for a user.
// Returns store.ErrAlreadyExists when the user already has a tag of that name.
func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (user_id, name) VALUES (?, ?)`,
		t.UserID,
		t.Name,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}

	t.ID, err = result.LastInsertId()
	return err
}

// GetTag retrieves one of a user's tags by ID. Other users' tags are
// invisible and report store.ErrNotFound.
func (s *Store) GetTag(ctx context.Context, userID string, tagID int64) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id = ? AND user_id = ?`, tagID, userID)

	t, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetTagByName retrieves a user's tag by exact name.
// Returns store.ErrNotFound if the user has no such tag.
func (s *Store) GetTagByName(ctx context.Context, userID, name string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE user_id = ? AND name = ?`, userID, name)

	t, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTags returns all of a user's tags ordered by name descending.
func (s *Store) ListTags(ctx context.Context, userID string) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE user_id = ? ORDER BY name DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if tags == nil {
		tags = []*domain.Tag{}
	}

	return tags, nil
}

// FindOrCreateTag finds a user's tag by name or creates it.
// Returns (tag, created, error) where created is true if a new tag was made.
func (s *Store) FindOrCreateTag(ctx context.Context, userID, name string) (*domain.Tag, bool, error) {
	existing, err := s.GetTagByName(ctx, userID, name)
	if err == nil {
		return existing, false, nil
	}
	if err != store.ErrNotFound {
		return nil, false, err
	}

	t := &domain.Tag{UserID: userID, Name: name}
	if err := s.CreateTag(ctx, t); err != nil {
		if err == store.ErrAlreadyExists {
			// Race: another request created it between the lookup and insert.
			existing, err := s.GetTagByName(ctx, userID, name)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	return t, true, nil
}
