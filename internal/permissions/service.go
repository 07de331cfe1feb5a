package permissions

import (
	"context"
	"fmt"
	"strings"

	"github.com/lumina-reports/lumina/internal/authz"
	"github.com/lumina-reports/lumina/internal/shared"
)

// RepositoryPort defines data access methods for permissions.
type RepositoryPort interface {
	List(ctx context.Context) ([]Permission, error)
	Get(ctx context.Context, id int64) (Permission, error)
	ModuleName(ctx context.Context, moduleID int64) (string, error)
	Create(ctx context.Context, p Permission) (Permission, error)
	SetActive(ctx context.Context, id int64, isActive bool) (Permission, error)
	Delete(ctx context.Context, id int64) error
}

// Invalidator drops cached permission resolutions after catalog changes.
type Invalidator interface {
	InvalidateAll(ctx context.Context)
}

// Service handles permission catalog business logic.
type Service struct {
	repo        RepositoryPort
	invalidator Invalidator
}

// NewService builds Service instance. invalidator may be nil when no
// resolver cache is configured.
func NewService(repo RepositoryPort, invalidator Invalidator) *Service {
	return &Service{repo: repo, invalidator: invalidator}
}

// List returns all permissions.
func (s *Service) List(ctx context.Context) ([]Permission, error) {
	return s.repo.List(ctx)
}

// Get fetches a permission by ID.
func (s *Service) Get(ctx context.Context, id int64) (Permission, error) {
	return s.repo.Get(ctx, id)
}

// Create registers a capability as a validated (module, action) pair.
// The stored key is generated, so a typo'd capability can only fail at
// the catalog, never silently always-deny at the decision point.
func (s *Service) Create(ctx context.Context, moduleID int64, action, displayName, description string) (Permission, error) {
	action = strings.TrimSpace(strings.ToLower(action))
	if !ValidAction(action) {
		return Permission{}, fmt.Errorf("permissions: action %q is not in the catalog action set: %w", action, shared.ErrInvalid)
	}
	moduleName, err := s.repo.ModuleName(ctx, moduleID)
	if err != nil {
		return Permission{}, err
	}
	key := authz.BuildKey(moduleName, action)
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = key
	}
	return s.repo.Create(ctx, Permission{
		Key:         key,
		DisplayName: displayName,
		Description: strings.TrimSpace(description),
		ModuleID:    moduleID,
		IsActive:    true,
	})
}

// SetActive flips the activation flag. Deactivated permissions drop out
// of every resolved set.
func (s *Service) SetActive(ctx context.Context, id int64, isActive bool) (Permission, error) {
	p, err := s.repo.SetActive(ctx, id, isActive)
	if err != nil {
		return Permission{}, err
	}
	s.invalidateAll(ctx)
	return p, nil
}

// Delete removes a permission and, via cascade, every grant referencing
// it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateAll(ctx)
	return nil
}

func (s *Service) invalidateAll(ctx context.Context) {
	if s.invalidator != nil {
		s.invalidator.InvalidateAll(ctx)
	}
}
