package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tpdocs/tpdocs/internal/handler/dto"
	"github.com/tpdocs/tpdocs/internal/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNotFoundResponse(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/nothing-here", nil)
	rec := httptest.NewRecorder()

	NotFound(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var resp dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "Not Found" {
		t.Errorf("expected message %q, got %q", "Not Found", resp.Error)
	}
}

func TestMethodNotAllowedResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	MethodNotAllowed(rec, httptest.NewRequest(http.MethodPatch, "/api/users", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestHandleServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"not_found", service.ErrNotFound, http.StatusNotFound, "Not Found"},
		{"forbidden_is_401", service.ErrForbidden, http.StatusUnauthorized, "Unauthorized"},
		{"invalid_credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, ""},
		{"validation", service.ErrInvalidCountry, http.StatusBadRequest, service.ErrInvalidCountry.Error()},
		{"unexpected", errors.New("pool exhausted"), http.StatusInternalServerError, "An internal error occurred"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(rec, discardLogger(), test.err)

			if rec.Code != test.wantStatus {
				t.Fatalf("expected status %d, got %d", test.wantStatus, rec.Code)
			}

			var resp dto.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if test.wantMsg != "" && resp.Error != test.wantMsg {
				t.Errorf("expected message %q, got %q", test.wantMsg, resp.Error)
			}
			if test.name == "unexpected" && strings.Contains(resp.Error, "pool") {
				t.Error("internal detail leaked into the response")
			}
		})
	}
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantSkip  int
		wantLimit int
	}{
		{"defaults", "", 0, 50},
		{"explicit", "skip=10&limit=5", 10, 5},
		{"negative_skip_ignored", "skip=-3", 0, 50},
		{"zero_limit_ignored", "limit=0", 0, 50},
		{"oversized_limit_ignored", "limit=10000", 0, 50},
		{"garbage_ignored", "skip=abc&limit=xyz", 0, 50},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/users?"+test.query, nil)
			skip, limit := parsePagination(req)
			if skip != test.wantSkip || limit != test.wantLimit {
				t.Errorf("got (%d, %d), want (%d, %d)", skip, limit, test.wantSkip, test.wantLimit)
			}
		})
	}
}

func TestUserCreateRejectsMalformedJSON(t *testing.T) {
	h := NewUserHandler(service.NewUserService(nil), discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{"eMail": `))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUserCreateRejectsInvalidEMail(t *testing.T) {
	h := NewUserHandler(service.NewUserService(nil), discardLogger())

	body := `{"eMail": "not-an-address", "password": "secret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Code != "VALIDATION_ERROR" {
		t.Errorf("expected code VALIDATION_ERROR, got %q", resp.Code)
	}
}
