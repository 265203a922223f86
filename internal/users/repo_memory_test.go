package users

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryRepoCaseInsensitiveUsername(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	user := User{ID: "user-1", Username: "Alice", PasswordHash: "hash", CreatedAt: time.Now().UTC()}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if got.ID != "user-1" {
		t.Fatalf("expected user-1, got %s", got.ID)
	}
	if err := repo.Create(ctx, User{ID: "user-2", Username: "ALICE"}); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if _, err := repo.GetByID(ctx, "user-2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepoHonorsCanceledContext(t *testing.T) {
	repo := NewMemoryRepo()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := repo.Create(ctx, User{ID: "user-1", Username: "alice"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
