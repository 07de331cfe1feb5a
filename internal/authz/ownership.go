package authz

import (
	"context"

	"github.com/lumina-reports/lumina/internal/shared"
)

// Scope restricts a row-returning query to the rows the actor may see.
// A nil OwnerID means full visibility (elevated actor); otherwise the
// repository must add an owner equality predicate, so rows belonging to
// other actors are never even materialized.
type Scope struct {
	OwnerID *int64
}

// VisibilityScope computes the ownership scope for list and read
// queries. Every business module storing an owner attribute applies it.
func (s *Service) VisibilityScope(ctx context.Context, actor shared.Actor) (Scope, error) {
	elevated, err := s.IsElevated(ctx, actor.ID)
	if err != nil {
		return Scope{}, err
	}
	if elevated {
		return Scope{}, nil
	}
	owner := actor.ID
	return Scope{OwnerID: &owner}, nil
}

// AssertOwnership guards updates and deletes of an existing row. A
// non-elevated actor may only mutate rows they own; the denial reason
// is distinct from a capability denial.
func (s *Service) AssertOwnership(ctx context.Context, actor shared.Actor, rowOwnerID int64) (Decision, error) {
	elevated, err := s.IsElevated(ctx, actor.ID)
	if err != nil {
		return Decision{}, err
	}
	if elevated || rowOwnerID == actor.ID {
		s.record("allow")
		return Allow, nil
	}
	s.record("deny_ownership")
	return Decision{
		Allowed: false,
		Reason:  ReasonNotOwner,
	}, nil
}

// AssignOwner returns the owner id to stamp on a newly created row:
// always the acting actor, regardless of any client-supplied value and
// regardless of elevation. Elevation affects visibility and mutation
// rights, not authorship attribution.
func (s *Service) AssignOwner(actor shared.Actor) int64 {
	return actor.ID
}
