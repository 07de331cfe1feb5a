package authz

import (
	"context"
	"log/slog"
)

// Resolver computes an actor's effective permission set: the union of
// grants across all of the actor's active role bindings. An actor with
// no bindings resolves to the empty set, which fails every membership
// check closed.
type Resolver struct {
	store  Store
	cache  *PermissionCache
	logger *slog.Logger
}

// NewResolver constructs a Resolver. cache may be nil, in which case
// every call reads current state from the store.
func NewResolver(store Store, cache *PermissionCache, logger *slog.Logger) *Resolver {
	return &Resolver{store: store, cache: cache, logger: logger}
}

// EffectivePermissions returns the deduplicated permission keys the
// actor currently holds. Cache failures degrade to a store read rather
// than failing the check.
func (r *Resolver) EffectivePermissions(ctx context.Context, actorID int64) ([]string, error) {
	if r.cache != nil {
		perms, hit, err := r.cache.Get(ctx, actorID)
		if err != nil && r.logger != nil {
			r.logger.Warn("permission cache read", slog.Any("error", err))
		}
		if hit {
			return perms, nil
		}
	}

	perms, err := r.store.EffectivePermissions(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, actorID, perms); err != nil && r.logger != nil {
			r.logger.Warn("permission cache write", slog.Any("error", err))
		}
	}
	return perms, nil
}

// Invalidate drops cached permission sets for the given actors.
// A no-op when caching is disabled.
func (r *Resolver) Invalidate(ctx context.Context, actorIDs ...int64) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Invalidate(ctx, actorIDs...); err != nil && r.logger != nil {
		r.logger.Warn("permission cache invalidate", slog.Any("error", err))
	}
}

// InvalidateAll drops every cached permission set.
func (r *Resolver) InvalidateAll(ctx context.Context) {
	if r.cache == nil {
		return
	}
	if err := r.cache.InvalidateAll(ctx); err != nil && r.logger != nil {
		r.logger.Warn("permission cache flush", slog.Any("error", err))
	}
}

func toSet(perms []string) map[string]struct{} {
	set := make(map[string]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}
