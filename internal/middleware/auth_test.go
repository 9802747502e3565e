package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tpdocs/tpdocs/internal/auth"
	"github.com/tpdocs/tpdocs/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthMiddleware(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", "tpdocs", time.Hour)
	token, err := issuer.Mint(&model.User{
		ID:    "01HUSER",
		EMail: "alice@example.com",
		Roles: []string{"tp"},
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	var gotAuth *model.AuthContext
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = auth.AuthFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	mw := Auth(AuthConfig{Logger: discardLogger(), Verifier: issuer})
	handler := mw(next)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantAuth   bool
	}{
		{"missing_header", "", http.StatusUnauthorized, false},
		{"wrong_scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, false},
		{"garbage_token", "Bearer not.a.jwt", http.StatusUnauthorized, false},
		{"valid_token", "Bearer " + token, http.StatusOK, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			gotAuth = nil
			req := httptest.NewRequest(http.MethodGet, "/api/entities", nil)
			if test.authHeader != "" {
				req.Header.Set("Authorization", test.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != test.wantStatus {
				t.Fatalf("expected status %d, got %d", test.wantStatus, rec.Code)
			}
			if test.wantAuth {
				if gotAuth == nil {
					t.Fatal("auth context missing after successful authentication")
				}
				if gotAuth.EMail != "alice@example.com" || !gotAuth.HasRole("tp") {
					t.Errorf("auth context mismatch: %+v", gotAuth)
				}
			} else if gotAuth != nil {
				t.Error("next handler ran despite failed authentication")
			}
		})
	}
}

func TestAuthMiddlewareRejectsForeignSecret(t *testing.T) {
	victim := auth.NewTokenIssuer("real-secret", "tpdocs", time.Hour)
	attacker := auth.NewTokenIssuer("other-secret", "tpdocs", time.Hour)

	forged, err := attacker.Mint(&model.User{ID: "01HEVIL", EMail: "evil@example.com", Roles: []string{"admin"}})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	called := false
	handler := Auth(AuthConfig{Logger: discardLogger(), Verifier: victim})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/templates", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if called {
		t.Error("next handler ran with a forged token")
	}
}
