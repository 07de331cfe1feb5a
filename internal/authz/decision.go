package authz

import (
	"context"
	"sort"
)

// DecisionRecorder counts authorization outcomes. Satisfied by
// observability.Metrics; nil is allowed.
type DecisionRecorder interface {
	RecordDecision(outcome string)
}

// Service is the access decision point. It consults the elevation
// classifier first and falls through to the permission resolver, so a
// revoked grant can never lock out a top-tier operator.
type Service struct {
	store      Store
	resolver   *Resolver
	classifier Classifier
	metrics    DecisionRecorder
}

// NewService constructs the decision point.
func NewService(store Store, resolver *Resolver, classifier Classifier, metrics DecisionRecorder) *Service {
	return &Service{store: store, resolver: resolver, classifier: classifier, metrics: metrics}
}

// Resolver exposes the underlying resolver for cache invalidation by
// administration operations.
func (s *Service) Resolver() *Resolver {
	return s.resolver
}

// IsElevated reports whether any of the actor's active role bindings is
// elevated.
func (s *Service) IsElevated(ctx context.Context, actorID int64) (bool, error) {
	roles, err := s.store.RolesForActor(ctx, actorID)
	if err != nil {
		return false, err
	}
	return s.classifier.AnyElevated(roles), nil
}

// EffectivePermissions returns the actor's current permission keys.
func (s *Service) EffectivePermissions(ctx context.Context, actorID int64) ([]string, error) {
	return s.resolver.EffectivePermissions(ctx, actorID)
}

// Authorize decides whether the actor may perform the required
// capability. The decision is pure: no side effects beyond metrics.
func (s *Service) Authorize(ctx context.Context, actorID int64, requiredKey string) (Decision, error) {
	roles, err := s.store.RolesForActor(ctx, actorID)
	if err != nil {
		return Decision{}, err
	}

	// Elevated roles bypass the resolver entirely.
	if s.classifier.AnyElevated(roles) {
		s.record("allow")
		return Allow, nil
	}

	perms, err := s.resolver.EffectivePermissions(ctx, actorID)
	if err != nil {
		return Decision{}, err
	}
	if _, ok := toSet(perms)[requiredKey]; ok {
		s.record("allow")
		return Allow, nil
	}

	s.record("deny_capability")
	return Decision{
		Allowed:            false,
		Reason:             ReasonMissingCapability,
		RequiredPermission: requiredKey,
		RoleName:           primaryRoleName(roles),
		AvailableActions:   actionsInModule(perms, requiredKey),
		Suggestion:         Suggestion,
	}, nil
}

func (s *Service) record(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordDecision(outcome)
	}
}

// primaryRoleName picks the most senior bound role for denial messages.
// RolesForActor orders by level descending, but do not depend on it.
func primaryRoleName(roles []BoundRole) string {
	name := ""
	level := -1
	for _, role := range roles {
		if role.Level > level {
			name = role.Name
			level = role.Level
		}
	}
	return name
}

// actionsInModule lists the actions the actor already holds in the
// module of the required key, to aid self-service diagnosis.
func actionsInModule(perms []string, requiredKey string) []string {
	module, _ := SplitKey(requiredKey)
	var actions []string
	for _, p := range perms {
		if m, action := SplitKey(p); m == module && action != "" {
			actions = append(actions, action)
		}
	}
	sort.Strings(actions)
	return actions
}
