package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	domainerrors "postline/contexts/identity/auth-service/domain/errors"
	"postline/contexts/identity/auth-service/ports"
)

func seedUser(t *testing.T, store *Store, id string, email string) ports.User {
	t.Helper()
	now := time.Now().UTC()
	user, err := store.CreateUser(context.Background(), ports.User{
		ID:           id,
		Email:        email,
		Name:         "Seed",
		PasswordHash: "hash",
		Status:       ports.DefaultStatus,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("seeding user failed: %v", err)
	}
	return user
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	store := NewStore()
	seedUser(t, store, "user-1", "dup@example.com")

	_, err := store.CreateUser(context.Background(), ports.User{ID: "user-2", Email: "dup@example.com"})
	if !errors.Is(err, domainerrors.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestGetUserByEmailIsExactMatch(t *testing.T) {
	store := NewStore()
	seedUser(t, store, "user-1", "Case@example.com")

	if _, err := store.GetUserByEmail(context.Background(), "Case@example.com"); err != nil {
		t.Fatalf("exact lookup failed: %v", err)
	}
	if _, err := store.GetUserByEmail(context.Background(), "case@example.com"); !errors.Is(err, domainerrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for different casing, got %v", err)
	}
}

func TestUpdateStatusUnknownUser(t *testing.T) {
	store := NewStore()

	_, err := store.UpdateStatus(context.Background(), "missing", "hello", time.Now().UTC())
	if !errors.Is(err, domainerrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdateStatusBumpsUpdatedAt(t *testing.T) {
	store := NewStore()
	user := seedUser(t, store, "user-1", "bump@example.com")

	later := user.UpdatedAt.Add(time.Minute)
	updated, err := store.UpdateStatus(context.Background(), "user-1", "new status", later)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != "new status" {
		t.Fatalf("unexpected status %q", updated.Status)
	}
	if !updated.UpdatedAt.Equal(later) {
		t.Fatalf("expected UpdatedAt %v, got %v", later, updated.UpdatedAt)
	}
}
