package sqlite

import (
	"context"
	"testing"

	"github.com/cookeryapp/cookery-server/internal/domain"
	"github.com/cookeryapp/cookery-server/internal/store"
)

func TestCreateAndGetTag(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	createTestUser(t, s, "user-1", "tags@example.com")

	tag := &domain.Tag{UserID: "user-1", Name: "Vegan"}
	if err := s.CreateTag(ctx, tag); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	if tag.ID == 0 {
		t.Fatal("expected generated ID")
	}

	got, err := s.GetTag(ctx, "user-1", tag.ID)
	if err != nil {
		t.Fatalf("GetTag: %v", err)
	}
	if got.Name != "Vegan" {
		t.Errorf("Name: got %q, want %q", got.Name, "Vegan")
	}
	if got.UserID != "user-1" {
		t.Errorf("UserID: got %q, want %q", got.UserID, "user-1")
	}
}

func TestGetTag_ScopedToOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	createTestUser(t, s, "user-1", "owner@example.com")
	createTestUser(t, s, "user-2", "other@example.com")

	tag := &domain.Tag{UserID: "user-1", Name: "Dessert"}
	if err := s.CreateTag(ctx, tag); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	// Another user cannot see it.
	if _, err := s.GetTag(ctx, "user-2", tag.ID); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound for other user, got %v", err)
	}
}

func TestCreateTag_DuplicatePerUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	createTestUser(t, s, "user-1", "dup1@example.com")
	createTestUser(t, s, "user-2", "dup2@example.com")

	if err := s.CreateTag(ctx, &domain.Tag{UserID: "user-1", Name: "Vegan"}); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	// Same name for the same user collides.
	err := s.CreateTag(ctx, &domain.Tag{UserID: "user-1", Name: "Vegan"})
	if err != store.ErrAlreadyExists {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}

	// Same name for a different user is fine.
	if err := s.CreateTag(ctx, &domain.Tag{UserID: "user-2", Name: "Vegan"}); err != nil {
		t.Errorf("second user's tag should succeed: %v", err)
	}
}

func TestListTags_OrderAndScope(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	createTestUser(t, s, "user-1", "list1@example.com")
	createTestUser(t, s, "user-2", "list2@example.com")

	for _, name := range []string{"Appetizer", "Vegan", "Dessert"} {
		if err := s.CreateTag(ctx, &domain.Tag{UserID: "user-1", Name: name}); err != nil {
			t.Fatalf("CreateTag %s: %v", name, err)
		}
	}
	if err := s.CreateTag(ctx, &domain.Tag{UserID: "user-2", Name: "Fruity"}); err != nil {
		t.Fatalf("CreateTag other user: %v", err)
	}

	tags, err := s.ListTags(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}

	want := []string{"Vegan", "Dessert", "Appetizer"}
	if len(tags) != len(want) {
		t.Fatalf("expected %d tags, got %d", len(want), len(tags))
	}
	for i, name := range want {
		if tags[i].Name != name {
			t.Errorf("tags[%d]: got %q, want %q", i, tags[i].Name, name)
		}
	}
}

func TestListTags_Empty(t *testing.T) {
	s := newTestStore(t)

	createTestUser(t, s, "user-1", "empty@example.com")

	tags, err := s.ListTags(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if tags == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(tags) != 0 {
		t.Errorf("expected 0 tags, got %d", len(tags))
	}
}

func TestFindOrCreateTag(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	createTestUser(t, s, "user-1", "foc@example.com")

	first, created, err := s.FindOrCreateTag(ctx, "user-1", "Breakfast")
	if err != nil {
		t.Fatalf("FindOrCreateTag: %v", err)
	}
	if !created {
		t.Error("expected created=true on first call")
	}

	second, created, err := s.FindOrCreateTag(ctx, "user-1", "Breakfast")
	if err != nil {
		t.Fatalf("FindOrCreateTag second: %v", err)
	}
	if created {
		t.Error("expected created=false on second call")
	}
	if second.ID != first.ID {
		t.Errorf("expected same tag, got IDs %d and %d", first.ID, second.ID)
	}

	tags, err := s.ListTags(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 1 {
		t.Errorf("expected 1 tag, got %d", len(tags))
	}
}
