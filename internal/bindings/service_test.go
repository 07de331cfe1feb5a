package bindings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumina-reports/lumina/internal/shared"
)

type bindingKey struct {
	actorID, roleID int64
}

type mockRepo struct {
	bindings map[bindingKey]*Binding
	roles    map[int64]string
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		bindings: map[bindingKey]*Binding{},
		roles:    map[int64]string{1: "Viewer", 2: "Manager"},
	}
}

func (m *mockRepo) ListForActor(_ context.Context, actorID int64) ([]Binding, error) {
	var out []Binding
	for key, b := range m.bindings {
		if key.actorID == actorID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockRepo) Bind(_ context.Context, actorID, roleID, boundBy int64) error {
	if _, ok := m.roles[roleID]; !ok {
		return shared.ErrNotFound
	}
	key := bindingKey{actorID, roleID}
	if b, ok := m.bindings[key]; ok {
		b.IsActive = true
		return nil
	}
	m.bindings[key] = &Binding{
		ActorID:  actorID,
		RoleID:   roleID,
		RoleName: m.roles[roleID],
		IsActive: true,
		BoundBy:  boundBy,
	}
	return nil
}

func (m *mockRepo) Unbind(_ context.Context, actorID, roleID int64) error {
	b, ok := m.bindings[bindingKey{actorID, roleID}]
	if !ok || !b.IsActive {
		return shared.ErrNotFound
	}
	b.IsActive = false
	return nil
}

type spyInvalidator struct {
	actorIDs []int64
}

func (s *spyInvalidator) Invalidate(_ context.Context, actorIDs ...int64) {
	s.actorIDs = append(s.actorIDs, actorIDs...)
}

func TestBindRecordsActor(t *testing.T) {
	repo := newMockRepo()
	inv := &spyInvalidator{}
	svc := NewService(repo, inv)
	ctx := context.Background()

	require.NoError(t, svc.Bind(ctx, 7, 2, shared.Actor{ID: 9}))

	list, err := svc.ListForActor(ctx, 7)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Manager", list[0].RoleName)
	assert.True(t, list[0].IsActive)
	assert.Equal(t, int64(9), list[0].BoundBy)
	assert.Equal(t, []int64{7}, inv.actorIDs, "only the bound actor's cache entry is dropped")
}

func TestBindValidation(t *testing.T) {
	svc := NewService(newMockRepo(), nil)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Bind(ctx, 0, 2, shared.Actor{ID: 9}), shared.ErrInvalid)
	assert.ErrorIs(t, svc.Bind(ctx, 7, 0, shared.Actor{ID: 9}), shared.ErrInvalid)
	assert.ErrorIs(t, svc.Bind(ctx, 7, 99, shared.Actor{ID: 9}), shared.ErrNotFound)
}

func TestUnbindDeactivatesNotDeletes(t *testing.T) {
	repo := newMockRepo()
	inv := &spyInvalidator{}
	svc := NewService(repo, inv)
	ctx := context.Background()

	require.NoError(t, svc.Bind(ctx, 7, 1, shared.Actor{ID: 9}))
	require.NoError(t, svc.Unbind(ctx, 7, 1))

	list, err := svc.ListForActor(ctx, 7)
	require.NoError(t, err)
	require.Len(t, list, 1, "deactivated binding stays in the history")
	assert.False(t, list[0].IsActive)
	assert.Equal(t, []int64{7, 7}, inv.actorIDs)
}

func TestUnbindMissingBinding(t *testing.T) {
	svc := NewService(newMockRepo(), nil)

	err := svc.Unbind(context.Background(), 7, 1)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestRebindReactivates(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	require.NoError(t, svc.Bind(ctx, 7, 1, shared.Actor{ID: 9}))
	require.NoError(t, svc.Unbind(ctx, 7, 1))
	require.NoError(t, svc.Bind(ctx, 7, 1, shared.Actor{ID: 9}))

	list, err := svc.ListForActor(ctx, 7)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsActive)
}
