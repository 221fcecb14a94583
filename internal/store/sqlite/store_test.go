package sqlite

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cookeryapp/cookery-server/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestUser inserts a user row so foreign keys on owned rows hold.
func createTestUser(t *testing.T, s *Store, id, email string) *domain.User {
	t.Helper()
	now := time.Now()
	u := &domain.User{
		ID:           id,
		Email:        email,
		PasswordHash: "$argon2id$fake",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("create user %s: %v", id, err)
	}
	return u
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	// Verify WAL mode is set.
	var journalMode string
	err := s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode)
	if err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("expected wal, got %s", journalMode)
	}

	// Verify foreign keys are enabled.
	var fk int
	err = s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("expected foreign_keys=1, got %d", fk)
	}

	// Verify tables exist.
	tables := []string{
		"users", "sessions", "tags", "ingredients",
		"recipes", "recipe_tags", "recipe_ingredients",
	}
	for _, table := range tables {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestOpen_Reopen(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	createTestUser(t, s, "user-reopen", "reopen@example.com")

	if err := s.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	// Reopening runs the schema again; data must survive.
	s2, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer s2.Close()

	u, err := s2.GetUser(context.Background(), "user-reopen")
	if err != nil {
		t.Fatalf("get user after reopen: %v", err)
	}
	if u.Email != "reopen@example.com" {
		t.Errorf("Email: got %q, want %q", u.Email, "reopen@example.com")
	}
}
