//go:build integration

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tpdocs/tpdocs/internal/auth"
	"github.com/tpdocs/tpdocs/internal/model"
	"github.com/tpdocs/tpdocs/internal/repository"
	"github.com/tpdocs/tpdocs/internal/service"
	"github.com/tpdocs/tpdocs/internal/testutil"
)

func newEntityTestHandler(t *testing.T) (context.Context, *EntityHandler) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "TEST_DATABASE_URL")

	repo, err := repository.New(ctx, dbURL)
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

	if err := testutil.ResetSchema(ctx, repo.Pool(), "000002_entities"); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	h := NewEntityHandler(
		service.NewEntityService(repo),
		service.NewUploadService(repo),
		discardLogger(),
	)
	return ctx, h
}

func TestEntityCreateDropsUnknownFields(t *testing.T) {
	_, h := newEntityTestHandler(t)

	body := `{
		"name": "Acme GmbH",
		"type": "company",
		"country": "DE",
		"noPropertyOfTheModel": "should be discarded"
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/entities", strings.NewReader(body))
	req = req.WithContext(auth.ContextWithAuth(req.Context(), &model.AuthContext{
		EMail: "tp@example.com",
		Roles: []string{"tp"},
	}))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := got["noPropertyOfTheModel"]; ok {
		t.Error("unknown request field leaked into the response")
	}
	if got["name"] != "Acme GmbH" {
		t.Errorf("expected name %q, got %v", "Acme GmbH", got["name"])
	}
	if got["country"] != "DE" {
		t.Errorf("expected country %q, got %v", "DE", got["country"])
	}
}
