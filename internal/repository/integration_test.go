//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/tpdocs/tpdocs/internal/testutil"
)

// newTestEnv connects to the test database, serializes against other
// integration tests and resets the named schemas.
func newTestEnv(t *testing.T, schemas ...string) (context.Context, *Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "TEST_DATABASE_URL")

	repo, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	for _, schema := range schemas {
		if err := testutil.ResetSchema(ctx, repo.Pool(), schema); err != nil {
			t.Fatalf("reset schema %s: %v", schema, err)
		}
	}

	return ctx, repo
}
