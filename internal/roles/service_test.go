package roles

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumina-reports/lumina/internal/authz"
	"github.com/lumina-reports/lumina/internal/shared"
)

type mockRepo struct {
	roles          map[int64]Role
	grants         map[int64][]int64
	permKeys       map[int64]string
	activeBindings map[int64]int
	nextID         int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		roles:          map[int64]Role{},
		grants:         map[int64][]int64{},
		permKeys:       map[int64]string{1: "campaigns_read", 2: "campaigns_create", 3: "reports_read"},
		activeBindings: map[int64]int{},
		nextID:         1,
	}
}

func (m *mockRepo) List(context.Context) ([]Role, error) {
	out := make([]Role, 0, len(m.roles))
	for _, r := range m.roles {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockRepo) Get(_ context.Context, id int64) (Role, error) {
	r, ok := m.roles[id]
	if !ok {
		return Role{}, shared.ErrNotFound
	}
	return r, nil
}

func (m *mockRepo) Create(_ context.Context, role Role) (Role, error) {
	for _, existing := range m.roles {
		if existing.Name == role.Name {
			return Role{}, shared.ErrDuplicate
		}
	}
	role.ID = m.nextID
	m.nextID++
	m.roles[role.ID] = role
	return role, nil
}

func (m *mockRepo) Update(_ context.Context, id int64, name string, level int, tier string, isActive bool) (Role, error) {
	r, ok := m.roles[id]
	if !ok {
		return Role{}, shared.ErrNotFound
	}
	r.Name = name
	r.Level = level
	r.Tier = authz.Tier(tier)
	r.IsActive = isActive
	m.roles[id] = r
	return r, nil
}

func (m *mockRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.roles[id]; !ok {
		return shared.ErrNotFound
	}
	if m.activeBindings[id] > 0 {
		return shared.ErrInUse
	}
	delete(m.roles, id)
	delete(m.grants, id)
	return nil
}

func (m *mockRepo) ListGrants(_ context.Context, roleID int64) ([]Grant, error) {
	var out []Grant
	for _, pid := range m.grants[roleID] {
		out = append(out, Grant{PermissionID: pid, Key: m.permKeys[pid]})
	}
	return out, nil
}

func (m *mockRepo) ReplaceGrants(_ context.Context, roleID int64, permissionIDs []int64) error {
	if _, ok := m.roles[roleID]; !ok {
		return shared.ErrNotFound
	}
	for _, pid := range permissionIDs {
		if _, ok := m.permKeys[pid]; !ok {
			return shared.ErrNotFound
		}
	}
	m.grants[roleID] = permissionIDs
	return nil
}

type spyInvalidator struct {
	flushes int
}

func (s *spyInvalidator) InvalidateAll(context.Context) { s.flushes++ }

func TestCreateRole(t *testing.T) {
	svc := NewService(newMockRepo(), nil)

	role, err := svc.Create(context.Background(), " Manager ", 5, authz.TierStandard, false)
	require.NoError(t, err)
	assert.Equal(t, "Manager", role.Name)
	assert.Equal(t, 5, role.Level)
	assert.True(t, role.IsActive)
}

func TestCreateRoleValidation(t *testing.T) {
	svc := NewService(newMockRepo(), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "", 1, authz.TierStandard, false)
	assert.ErrorIs(t, err, shared.ErrInvalid)

	_, err = svc.Create(ctx, "Manager", -1, authz.TierStandard, false)
	assert.ErrorIs(t, err, shared.ErrInvalid)

	_, err = svc.Create(ctx, "Manager", 1, authz.Tier("root"), false)
	assert.ErrorIs(t, err, shared.ErrInvalid)
}

func TestUpdateRoleFlushesResolverCache(t *testing.T) {
	repo := newMockRepo()
	inv := &spyInvalidator{}
	svc := NewService(repo, inv)
	ctx := context.Background()

	role, err := svc.Create(ctx, "Manager", 5, authz.TierStandard, false)
	require.NoError(t, err)
	assert.Zero(t, inv.flushes)

	updated, err := svc.Update(ctx, role.ID, "Manager", 5, authz.TierElevated, true)
	require.NoError(t, err)
	assert.Equal(t, authz.TierElevated, updated.Tier)
	assert.Equal(t, 1, inv.flushes)
}

func TestDeleteRoleWithActiveBindings(t *testing.T) {
	repo := newMockRepo()
	inv := &spyInvalidator{}
	svc := NewService(repo, inv)
	ctx := context.Background()

	role, err := svc.Create(ctx, "Manager", 5, authz.TierStandard, false)
	require.NoError(t, err)
	repo.activeBindings[role.ID] = 2

	err = svc.Delete(ctx, role.ID)
	assert.ErrorIs(t, err, shared.ErrInUse)
	assert.Zero(t, inv.flushes, "refused deletes do not flush")

	repo.activeBindings[role.ID] = 0
	require.NoError(t, svc.Delete(ctx, role.ID))
	assert.Equal(t, 1, inv.flushes)
}

func TestReplaceGrants(t *testing.T) {
	repo := newMockRepo()
	inv := &spyInvalidator{}
	svc := NewService(repo, inv)
	ctx := context.Background()

	role, err := svc.Create(ctx, "Manager", 5, authz.TierStandard, false)
	require.NoError(t, err)

	require.NoError(t, svc.ReplaceGrants(ctx, role.ID, []int64{1, 2, 2, 1}))
	assert.Equal(t, []int64{1, 2}, repo.grants[role.ID], "duplicate ids collapse")
	assert.Equal(t, 1, inv.flushes)

	// The new set fully replaces the old one.
	require.NoError(t, svc.ReplaceGrants(ctx, role.ID, []int64{3}))
	assert.Equal(t, []int64{3}, repo.grants[role.ID])

	// An empty set clears every grant.
	require.NoError(t, svc.ReplaceGrants(ctx, role.ID, nil))
	assert.Empty(t, repo.grants[role.ID])
	assert.Equal(t, 3, inv.flushes)
}

func TestReplaceGrantsUnknownPermission(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	role, err := svc.Create(ctx, "Manager", 5, authz.TierStandard, false)
	require.NoError(t, err)

	err = svc.ReplaceGrants(ctx, role.ID, []int64{99})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGrantsUnknownRole(t *testing.T) {
	svc := NewService(newMockRepo(), nil)

	_, err := svc.Grants(context.Background(), 42)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
