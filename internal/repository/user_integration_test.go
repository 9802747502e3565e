//go:build integration

package repository

import (
	"errors"
	"testing"

	"github.com/tpdocs/tpdocs/internal/testutil"
)

func TestIntegrationUserRepository_CreateAndGet(t *testing.T) {
	ctx, repo := newTestEnv(t, "000001_users")

	user := testutil.NewTestUser(t, "alice@example.com", "tp")
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	retrieved, err := repo.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if retrieved.EMail != user.EMail {
		t.Errorf("EMail mismatch: got %q, want %q", retrieved.EMail, user.EMail)
	}
	if len(retrieved.Roles) != 1 || retrieved.Roles[0] != "tp" {
		t.Errorf("Roles mismatch: got %v", retrieved.Roles)
	}

	byMail, err := repo.GetUserByEMail(ctx, user.EMail)
	if err != nil {
		t.Fatalf("GetUserByEMail failed: %v", err)
	}
	if byMail.ID != user.ID {
		t.Errorf("ID mismatch: got %q, want %q", byMail.ID, user.ID)
	}
}

func TestIntegrationUserRepository_DuplicateEMail(t *testing.T) {
	ctx, repo := newTestEnv(t, "000001_users")

	first := testutil.NewTestUser(t, "dup@example.com")
	second := testutil.NewTestUser(t, "dup@example.com")

	if err := repo.CreateUser(ctx, first); err != nil {
		t.Fatalf("CreateUser (first) failed: %v", err)
	}
	if err := repo.CreateUser(ctx, second); !errors.Is(err, ErrEMailExists) {
		t.Errorf("Expected ErrEMailExists, got: %v", err)
	}
}

func TestIntegrationUserRepository_EmptyRolesRoundtrip(t *testing.T) {
	ctx, repo := newTestEnv(t, "000001_users")

	user := testutil.NewTestUser(t, "noroles@example.com")
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	retrieved, err := repo.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if retrieved.Roles == nil {
		t.Error("Roles should be an empty slice, not nil")
	}
	if len(retrieved.Roles) != 0 {
		t.Errorf("Roles should be empty, got %v", retrieved.Roles)
	}
}

func TestIntegrationUserRepository_NotFound(t *testing.T) {
	ctx, repo := newTestEnv(t, "000001_users")

	if _, err := repo.GetUserByID(ctx, "nonexistent-id"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got: %v", err)
	}
	if _, err := repo.DeleteUser(ctx, "nonexistent-id"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got: %v", err)
	}
}

func TestIntegrationUserRepository_DeleteReturnsRecord(t *testing.T) {
	ctx, repo := newTestEnv(t, "000001_users")

	user := testutil.NewTestUser(t, "gone@example.com", "admin")
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	deleted, err := repo.DeleteUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}
	if deleted.EMail != user.EMail {
		t.Errorf("EMail mismatch: got %q, want %q", deleted.EMail, user.EMail)
	}

	if _, err := repo.GetUserByID(ctx, user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound after delete, got: %v", err)
	}
}

func TestIntegrationUserRepository_ListPagination(t *testing.T) {
	ctx, repo := newTestEnv(t, "000001_users")

	for _, mail := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		if err := repo.CreateUser(ctx, testutil.NewTestUser(t, mail)); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	page, err := repo.ListUsers(ctx, 1, 1)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(page) != 1 {
		t.Fatalf("expected 1 user, got %d", len(page))
	}

	all, err := repo.ListUsers(ctx, 0, 50)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 users, got %d", len(all))
	}
}
