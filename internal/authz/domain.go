// Package authz is the entitlement core: it resolves an actor's
// effective permission set, classifies elevated roles, and gates both
// capabilities and row ownership. It owns no HTTP or business state;
// callers feed it an actor and get back a decision.
package authz

import (
	"context"
	"strings"
)

// Tier is the explicit elevation tier stored on a role. It is the
// primary elevation signal; the numeric level threshold remains as a
// redundant safety net.
type Tier string

const (
	TierStandard Tier = "standard"
	TierElevated Tier = "elevated"
)

// ElevationThreshold is the role level at or above which a role is
// elevated regardless of its tier field.
const ElevationThreshold = 10

// BoundRole is a role as seen through an actor's active binding.
type BoundRole struct {
	ID           int64
	Name         string
	Level        int
	Tier         Tier
	IsSystemRole bool
}

// Store reads current role and grant state. Implementations must return
// state as of the call; the resolver layers optional caching on top.
type Store interface {
	RolesForActor(ctx context.Context, actorID int64) ([]BoundRole, error)
	EffectivePermissions(ctx context.Context, actorID int64) ([]string, error)
}

// DenyReason distinguishes the two denial classes surfaced by the core.
type DenyReason string

const (
	ReasonMissingCapability DenyReason = "missing_capability"
	ReasonNotOwner          DenyReason = "not_owner"
)

// Suggestion is the static self-service hint attached to capability denials.
const Suggestion = "contact an administrator to request this capability"

// Decision is the outcome of an authorization check. When Allowed is
// false the remaining fields describe the denial; all of them are safe
// to show to the caller.
type Decision struct {
	Allowed            bool
	Reason             DenyReason
	RequiredPermission string
	RoleName           string
	AvailableActions   []string
	Suggestion         string
}

// Allow is the positive decision.
var Allow = Decision{Allowed: true}

// SplitKey separates a permission key into its module and action parts.
// Keys use the "<module>_<action>" convention with the action after the
// last underscore, so module names may themselves contain underscores.
func SplitKey(key string) (module, action string) {
	idx := strings.LastIndex(key, "_")
	if idx < 0 {
		return key, ""
	}
	return key[:idx], key[idx+1:]
}

// BuildKey composes the canonical permission key for a module and action.
func BuildKey(module, action string) string {
	return module + "_" + action
}
