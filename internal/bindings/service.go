package bindings

import (
	"context"
	"fmt"

	"github.com/lumina-reports/lumina/internal/shared"
)

// RepositoryPort defines data access methods for bindings.
type RepositoryPort interface {
	ListForActor(ctx context.Context, actorID int64) ([]Binding, error)
	Bind(ctx context.Context, actorID, roleID, boundBy int64) error
	Unbind(ctx context.Context, actorID, roleID int64) error
}

// Invalidator drops cached permission resolutions for specific actors.
type Invalidator interface {
	Invalidate(ctx context.Context, actorIDs ...int64)
}

// Service handles actor-role binding business logic.
type Service struct {
	repo        RepositoryPort
	invalidator Invalidator
}

// NewService builds Service instance. invalidator may be nil when no
// resolver cache is configured.
func NewService(repo RepositoryPort, invalidator Invalidator) *Service {
	return &Service{repo: repo, invalidator: invalidator}
}

// ListForActor returns the actor's binding history.
func (s *Service) ListForActor(ctx context.Context, actorID int64) ([]Binding, error) {
	return s.repo.ListForActor(ctx, actorID)
}

// Bind gives the actor a role, recording who performed the binding.
func (s *Service) Bind(ctx context.Context, actorID, roleID int64, boundBy shared.Actor) error {
	if actorID <= 0 || roleID <= 0 {
		return fmt.Errorf("bindings: actor and role required: %w", shared.ErrInvalid)
	}
	if err := s.repo.Bind(ctx, actorID, roleID, boundBy.ID); err != nil {
		return err
	}
	s.invalidate(ctx, actorID)
	return nil
}

// Unbind deactivates the actor's binding to the role.
func (s *Service) Unbind(ctx context.Context, actorID, roleID int64) error {
	if err := s.repo.Unbind(ctx, actorID, roleID); err != nil {
		return err
	}
	s.invalidate(ctx, actorID)
	return nil
}

func (s *Service) invalidate(ctx context.Context, actorID int64) {
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, actorID)
	}
}
