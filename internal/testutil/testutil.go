// Package testutil provides helpers for integration tests. Tests that
// need Postgres or Redis are gated on TEST_DATABASE_URL / TEST_REDIS_URL
// and skip when unset.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"

	"github.com/tpdocs/tpdocs/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 731731

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// ResetSchema drops and recreates one migration's schema for tests.
// The name is the migration stem, e.g. "000002_entities".
func ResetSchema(ctx context.Context, pool *pgxpool.Pool, name string) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	downSQL, err := os.ReadFile(filepath.Join(root, "migrations", name+".down.sql"))
	if err != nil {
		return fmt.Errorf("read down migration: %w", err)
	}
	if _, err := pool.Exec(ctx, string(downSQL)); err != nil {
		return fmt.Errorf("apply down migration: %w", err)
	}

	upSQL, err := os.ReadFile(filepath.Join(root, "migrations", name+".up.sql"))
	if err != nil {
		return fmt.Errorf("read up migration: %w", err)
	}
	if _, err := pool.Exec(ctx, string(upSQL)); err != nil {
		return fmt.Errorf("apply up migration: %w", err)
	}

	return nil
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(filename), "..", "..")), nil
}

// NewTestUser creates a user record with sensible defaults.
func NewTestUser(t testing.TB, eMail string, roles ...string) *model.User {
	t.Helper()
	if roles == nil {
		roles = []string{}
	}
	return &model.User{
		ID:        ulid.Make().String(),
		EMail:     eMail,
		Password:  "$argon2id$v=19$m=65536,t=1,p=4$dGVzdHNhbHQ$dGVzdGhhc2g",
		FirstName: "Test",
		LastName:  "User",
		Roles:     roles,
		CreatedAt: time.Now().UTC(),
	}
}

// NewTestEntity creates an entity record with sensible defaults.
func NewTestEntity(t testing.TB, name string) *model.Entity {
	t.Helper()
	now := time.Now().UTC()
	e := &model.Entity{
		ID:        ulid.Make().String(),
		Name:      name,
		Type:      "company",
		Country:   "DE",
		CreatedAt: now,
		UpdatedAt: now,
	}
	e.Questionnaire.Normalize()
	return e
}

// NewTestTransaction creates a transaction record between the given
// participant snapshots.
func NewTestTransaction(t testing.TB, name string, participants ...model.CondensedEntity) *model.Transaction {
	t.Helper()
	now := time.Now().UTC()
	tx := &model.Transaction{
		ID:        ulid.Make().String(),
		Name:      name,
		Type:      "services",
		Entities:  participants,
		CreatedAt: now,
		UpdatedAt: now,
	}
	tx.Normalize()
	return tx
}

// NewTestTemplate creates a template record with sensible defaults.
func NewTestTemplate(t testing.TB, target, typ string) *model.Template {
	t.Helper()
	now := time.Now().UTC()
	tmpl := &model.Template{
		ID:        ulid.Make().String(),
		For:       target,
		Type:      typ,
		CreatedAt: now,
		UpdatedAt: now,
	}
	tmpl.Questionnaire.Normalize()
	return tmpl
}
