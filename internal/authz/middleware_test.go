package authz

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumina-reports/lumina/internal/shared"
)

func TestRequireAllowsGrantedActor(t *testing.T) {
	store := &stubStore{
		roles: map[int64][]BoundRole{7: {{ID: 2, Name: "Manager", Level: 5, Tier: TierStandard}}},
		perms: map[int64][]string{7: {"campaigns_read"}},
	}
	mw := Middleware{Service: newTestService(store, nil)}

	called := false
	handler := mw.Require("campaigns_read")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/campaigns", nil)
	req = req.WithContext(shared.ContextWithActor(req.Context(), shared.Actor{ID: 7}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireWritesDenialEnvelope(t *testing.T) {
	store := &stubStore{
		roles: map[int64][]BoundRole{7: {{ID: 2, Name: "Manager", Level: 5, Tier: TierStandard}}},
		perms: map[int64][]string{7: {"campaigns_read", "campaigns_create"}},
	}
	mw := Middleware{Service: newTestService(store, nil)}

	handler := mw.Require("campaigns_delete")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run on denial")
	}))

	req := httptest.NewRequest(http.MethodDelete, "/campaigns/1", nil)
	req = req.WithContext(shared.ContextWithActor(req.Context(), shared.Actor{ID: 7}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Details struct {
			Reason             string   `json:"reason"`
			RequiredPermission string   `json:"requiredPermission"`
			UserRole           string   `json:"userRole"`
			AvailableActions   []string `json:"availableActions"`
			Suggestion         string   `json:"suggestion"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "you do not have permission to perform this action", body.Message)
	assert.Equal(t, "missing_capability", body.Details.Reason)
	assert.Equal(t, "campaigns_delete", body.Details.RequiredPermission)
	assert.Equal(t, "Manager", body.Details.UserRole)
	assert.Equal(t, []string{"create", "read"}, body.Details.AvailableActions)
	assert.NotEmpty(t, body.Details.Suggestion)
}

func TestRequireRejectsAnonymousRequest(t *testing.T) {
	mw := Middleware{Service: newTestService(&stubStore{}, nil)}

	handler := mw.Require("campaigns_read")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without an actor")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/campaigns", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWriteDenialOwnershipMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteDenial(rec, Decision{Allowed: false, Reason: ReasonNotOwner})

	require.Equal(t, http.StatusForbidden, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Details struct {
			Reason string `json:"reason"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "not the owner of this resource", body.Message)
	assert.Equal(t, "not_owner", body.Details.Reason)
}
