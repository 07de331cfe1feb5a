package authz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumina-reports/lumina/internal/shared"
)

func TestVisibilityScopeStandardActor(t *testing.T) {
	store := &stubStore{
		roles: map[int64][]BoundRole{7: {{ID: 2, Name: "Manager", Level: 5, Tier: TierStandard}}},
	}
	svc := newTestService(store, nil)

	scope, err := svc.VisibilityScope(context.Background(), shared.Actor{ID: 7})
	require.NoError(t, err)
	require.NotNil(t, scope.OwnerID)
	assert.Equal(t, int64(7), *scope.OwnerID)
}

func TestVisibilityScopeElevatedActorSeesEverything(t *testing.T) {
	store := &stubStore{
		roles: map[int64][]BoundRole{9: {{ID: 3, Name: "SuperAdmin", Level: 10, Tier: TierElevated}}},
	}
	svc := newTestService(store, nil)

	scope, err := svc.VisibilityScope(context.Background(), shared.Actor{ID: 9})
	require.NoError(t, err)
	assert.Nil(t, scope.OwnerID)
}

func TestAssertOwnership(t *testing.T) {
	store := &stubStore{
		roles: map[int64][]BoundRole{
			7: {{ID: 2, Name: "Manager", Level: 5, Tier: TierStandard}},
			9: {{ID: 3, Name: "SuperAdmin", Level: 10, Tier: TierElevated}},
		},
	}
	rec := &countingRecorder{}
	svc := newTestService(store, rec)
	ctx := context.Background()

	dec, err := svc.AssertOwnership(ctx, shared.Actor{ID: 7}, 7)
	require.NoError(t, err)
	assert.True(t, dec.Allowed, "owner may mutate own row")

	dec, err = svc.AssertOwnership(ctx, shared.Actor{ID: 7}, 8)
	require.NoError(t, err)
	assert.False(t, dec.Allowed, "standard actor may not mutate another's row")
	assert.Equal(t, ReasonNotOwner, dec.Reason)

	dec, err = svc.AssertOwnership(ctx, shared.Actor{ID: 9}, 8)
	require.NoError(t, err)
	assert.True(t, dec.Allowed, "elevated actor may mutate any row")

	assert.Equal(t, 1, rec.outcomes["deny_ownership"])
}

func TestAssignOwnerAlwaysStampsActor(t *testing.T) {
	svc := newTestService(&stubStore{}, nil)

	assert.Equal(t, int64(7), svc.AssignOwner(shared.Actor{ID: 7}))
	// Elevation grants visibility, not authorship: an elevated actor's
	// new rows are still theirs.
	assert.Equal(t, int64(9), svc.AssignOwner(shared.Actor{ID: 9}))
}
