package authz

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*PermissionCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewPermissionCache(client, time.Minute), mr
}

func TestPermissionCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	_, hit, err := cache.Get(ctx, 7)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, cache.Set(ctx, 7, []string{"campaigns_read", "reports_read"}))

	perms, hit, err := cache.Get(ctx, 7)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"campaigns_read", "reports_read"}, perms)
}

func TestPermissionCacheCachesEmptySet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, 7, []string{}))

	perms, hit, err := cache.Get(ctx, 7)
	require.NoError(t, err)
	assert.True(t, hit, "an empty permission set is a valid cached value")
	assert.Empty(t, perms)
}

func TestPermissionCacheInvalidate(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, 7, []string{"campaigns_read"}))
	require.NoError(t, cache.Set(ctx, 8, []string{"reports_read"}))

	require.NoError(t, cache.Invalidate(ctx, 7))

	_, hit, err := cache.Get(ctx, 7)
	require.NoError(t, err)
	assert.False(t, hit)

	_, hit, err = cache.Get(ctx, 8)
	require.NoError(t, err)
	assert.True(t, hit, "other actors keep their entries")
}

func TestPermissionCacheInvalidateAll(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, 7, []string{"campaigns_read"}))
	require.NoError(t, cache.Set(ctx, 8, []string{"reports_read"}))

	require.NoError(t, cache.InvalidateAll(ctx))

	for _, id := range []int64{7, 8} {
		_, hit, err := cache.Get(ctx, id)
		require.NoError(t, err)
		assert.False(t, hit)
	}
}

func TestPermissionCacheEntriesExpire(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, 7, []string{"campaigns_read"}))
	mr.FastForward(2 * time.Minute)

	_, hit, err := cache.Get(ctx, 7)
	require.NoError(t, err)
	assert.False(t, hit)
}

type flakyStore struct {
	stubStore
	calls int
}

func (s *flakyStore) EffectivePermissions(ctx context.Context, actorID int64) ([]string, error) {
	s.calls++
	return s.stubStore.EffectivePermissions(ctx, actorID)
}

func TestResolverServesFromCacheUntilInvalidated(t *testing.T) {
	cache, _ := newTestCache(t)
	store := &flakyStore{stubStore: stubStore{
		perms: map[int64][]string{7: {"campaigns_read"}},
	}}
	resolver := NewResolver(store, cache, nil)
	ctx := context.Background()

	perms, err := resolver.EffectivePermissions(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"campaigns_read"}, perms)
	assert.Equal(t, 1, store.calls)

	// Second read hits the cache.
	_, err = resolver.EffectivePermissions(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, store.calls)

	// Invalidation forces the next read back to the store.
	resolver.Invalidate(ctx, 7)
	store.perms[7] = []string{"campaigns_read", "campaigns_create"}

	perms, err = resolver.EffectivePermissions(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, store.calls)
	assert.Equal(t, []string{"campaigns_read", "campaigns_create"}, perms)
}

func TestResolverDegradesWhenCacheIsDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cache := NewPermissionCache(client, time.Minute)

	store := &stubStore{perms: map[int64][]string{7: {"campaigns_read"}}}
	resolver := NewResolver(store, cache, nil)

	mr.Close()

	perms, err := resolver.EffectivePermissions(context.Background(), 7)
	require.NoError(t, err, "cache outage must not fail authorization")
	assert.Equal(t, []string{"campaigns_read"}, perms)
}
