package roles

import (
	"context"
	"fmt"
	"strings"

	"github.com/lumina-reports/lumina/internal/authz"
	"github.com/lumina-reports/lumina/internal/shared"
)

// RepositoryPort defines data access methods for roles and grants.
type RepositoryPort interface {
	List(ctx context.Context) ([]Role, error)
	Get(ctx context.Context, id int64) (Role, error)
	Create(ctx context.Context, role Role) (Role, error)
	Update(ctx context.Context, id int64, name string, level int, tier string, isActive bool) (Role, error)
	Delete(ctx context.Context, id int64) error
	ListGrants(ctx context.Context, roleID int64) ([]Grant, error)
	ReplaceGrants(ctx context.Context, roleID int64, permissionIDs []int64) error
}

// Invalidator drops cached permission resolutions after grant changes.
type Invalidator interface {
	InvalidateAll(ctx context.Context)
}

// Service handles role business logic.
type Service struct {
	repo        RepositoryPort
	invalidator Invalidator
}

// NewService builds Service instance. invalidator may be nil when no
// resolver cache is configured.
func NewService(repo RepositoryPort, invalidator Invalidator) *Service {
	return &Service{repo: repo, invalidator: invalidator}
}

// List returns all roles.
func (s *Service) List(ctx context.Context) ([]Role, error) {
	return s.repo.List(ctx)
}

// Get fetches a role by ID.
func (s *Service) Get(ctx context.Context, id int64) (Role, error) {
	return s.repo.Get(ctx, id)
}

// Create inserts a new role. The tier is set here, once; later edits go
// through Update with the same validation.
func (s *Service) Create(ctx context.Context, name string, level int, tier authz.Tier, isSystemRole bool) (Role, error) {
	name = strings.TrimSpace(name)
	if err := validate(name, level, tier); err != nil {
		return Role{}, err
	}
	return s.repo.Create(ctx, Role{
		Name:         name,
		Level:        level,
		Tier:         tier,
		IsSystemRole: isSystemRole,
		IsActive:     true,
	})
}

// Update modifies an existing role.
func (s *Service) Update(ctx context.Context, id int64, name string, level int, tier authz.Tier, isActive bool) (Role, error) {
	name = strings.TrimSpace(name)
	if err := validate(name, level, tier); err != nil {
		return Role{}, err
	}
	role, err := s.repo.Update(ctx, id, name, level, string(tier), isActive)
	if err != nil {
		return Role{}, err
	}
	// Level or tier edits change elevation, deactivation changes reach.
	s.invalidateAll(ctx)
	return role, nil
}

// Delete removes a role without active bindings; its grants go with it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateAll(ctx)
	return nil
}

// Grants returns a role's current permission set.
func (s *Service) Grants(ctx context.Context, roleID int64) ([]Grant, error) {
	if _, err := s.repo.Get(ctx, roleID); err != nil {
		return nil, err
	}
	return s.repo.ListGrants(ctx, roleID)
}

// ReplaceGrants atomically swaps the role's permission set. Last writer
// wins between concurrent replaces; no merge semantics.
func (s *Service) ReplaceGrants(ctx context.Context, roleID int64, permissionIDs []int64) error {
	if err := s.repo.ReplaceGrants(ctx, roleID, dedupe(permissionIDs)); err != nil {
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

func validate(name string, level int, tier authz.Tier) error {
	if name == "" {
		return fmt.Errorf("roles: name required: %w", shared.ErrInvalid)
	}
	if level < 0 {
		return fmt.Errorf("roles: level must be >= 0: %w", shared.ErrInvalid)
	}
	if tier != authz.TierStandard && tier != authz.TierElevated {
		return fmt.Errorf("roles: tier %q: %w", tier, shared.ErrInvalid)
	}
	return nil
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
