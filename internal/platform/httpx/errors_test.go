package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lumina-reports/lumina/internal/shared"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{shared.ErrNotFound, http.StatusNotFound},
		{shared.ErrDuplicate, http.StatusConflict},
		{shared.ErrInUse, http.StatusConflict},
		{shared.ErrInvalid, http.StatusBadRequest},
		{shared.ErrInvalidToken, http.StatusUnauthorized},
		{errors.New("boom"), http.StatusInternalServerError},
		{fmt.Errorf("roles: get role 7: %w", shared.ErrNotFound), http.StatusNotFound},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		RespondError(rec, tc.err)
		if rec.Code != tc.status {
			t.Fatalf("error %v mapped to %d, want %d", tc.err, rec.Code, tc.status)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Fatalf("content type %q", ct)
		}
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, errors.New("pq: connection refused"))

	var body ProblemDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode problem body: %v", err)
	}
	if body.Detail != "" {
		t.Fatalf("internal error leaked detail %q", body.Detail)
	}
}

func TestDenyEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Deny(rec, "you do not have permission to perform this action", DenialDetails{
		Reason:             "missing_capability",
		RequiredPermission: "campaigns_delete",
		UserRole:           "Manager",
		AvailableActions:   []string{"create", "read"},
		Suggestion:         "contact an administrator to request this capability",
	})

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode denial body: %v", err)
	}
	if success, ok := body["success"].(bool); !ok || success {
		t.Fatalf("success field: %v", body["success"])
	}
	details, ok := body["details"].(map[string]any)
	if !ok {
		t.Fatalf("details missing: %v", body)
	}
	if details["requiredPermission"] != "campaigns_delete" {
		t.Fatalf("requiredPermission: %v", details["requiredPermission"])
	}
}

func TestDenyOmitsEmptyDetailFields(t *testing.T) {
	rec := httptest.NewRecorder()
	Deny(rec, "not the owner of this resource", DenialDetails{Reason: "not_owner"})

	var body struct {
		Details map[string]any `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode denial body: %v", err)
	}
	if len(body.Details) != 1 {
		t.Fatalf("ownership denial should carry only the reason, got %v", body.Details)
	}
}
