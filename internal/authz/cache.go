package authz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "authz:perms:"

// PermissionCache is an optional short-TTL cache of resolved permission
// sets keyed by actor id. Using it trades the always-current resolver
// contract for bounded staleness; administration operations invalidate
// affected entries to keep the window small.
type PermissionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPermissionCache constructs a cache with the given TTL.
func NewPermissionCache(client *redis.Client, ttl time.Duration) *PermissionCache {
	return &PermissionCache{client: client, ttl: ttl}
}

func cacheKey(actorID int64) string {
	return cacheKeyPrefix + strconv.FormatInt(actorID, 10)
}

// Get returns the cached permission set for the actor, if present.
func (c *PermissionCache) Get(ctx context.Context, actorID int64) ([]string, bool, error) {
	raw, err := c.client.Get(ctx, cacheKey(actorID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("authz: cache get: %w", err)
	}
	var perms []string
	if err := json.Unmarshal(raw, &perms); err != nil {
		return nil, false, fmt.Errorf("authz: cache decode: %w", err)
	}
	return perms, true, nil
}

// Set stores the permission set for the actor.
func (c *PermissionCache) Set(ctx context.Context, actorID int64, perms []string) error {
	raw, err := json.Marshal(perms)
	if err != nil {
		return fmt.Errorf("authz: cache encode: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(actorID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("authz: cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached entries for the given actors.
func (c *PermissionCache) Invalidate(ctx context.Context, actorIDs ...int64) error {
	if len(actorIDs) == 0 {
		return nil
	}
	keys := make([]string, len(actorIDs))
	for i, id := range actorIDs {
		keys[i] = cacheKey(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("authz: cache invalidate: %w", err)
	}
	return nil
}

// InvalidateAll drops every cached permission set. Used after grant or
// role changes whose affected actors are not cheaply enumerable.
func (c *PermissionCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, cacheKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("authz: cache flush: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("authz: cache scan: %w", err)
	}
	return nil
}
