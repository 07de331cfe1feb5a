package modules

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/lumina-reports/lumina/internal/shared"
)

// RepositoryPort defines data access methods for modules.
type RepositoryPort interface {
	List(ctx context.Context) ([]Module, error)
	ListWithPermissions(ctx context.Context) ([]ModuleWithPermissions, error)
	Get(ctx context.Context, id int64) (Module, error)
	Create(ctx context.Context, m Module) (Module, error)
	Update(ctx context.Context, id int64, displayName, route string, sortOrder int, isActive bool) (Module, error)
	Delete(ctx context.Context, id int64) error
}

var moduleNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Service handles module catalog business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns all modules.
func (s *Service) List(ctx context.Context) ([]Module, error) {
	return s.repo.List(ctx)
}

// ListWithPermissions returns the catalog view of modules and their
// permissions.
func (s *Service) ListWithPermissions(ctx context.Context) ([]ModuleWithPermissions, error) {
	return s.repo.ListWithPermissions(ctx)
}

// Get fetches a module by ID.
func (s *Service) Get(ctx context.Context, id int64) (Module, error) {
	return s.repo.Get(ctx, id)
}

// Create registers a new functional area. The name becomes part of
// every permission key in the module, so it must be stable snake_case.
func (s *Service) Create(ctx context.Context, m Module) (Module, error) {
	m.Name = strings.TrimSpace(m.Name)
	if !moduleNamePattern.MatchString(m.Name) {
		return Module{}, fmt.Errorf("modules: name %q must be snake_case: %w", m.Name, shared.ErrInvalid)
	}
	m.DisplayName = strings.TrimSpace(m.DisplayName)
	if m.DisplayName == "" {
		m.DisplayName = m.Name
	}
	return s.repo.Create(ctx, m)
}

// Update modifies display metadata and the activation flag.
func (s *Service) Update(ctx context.Context, id int64, displayName, route string, sortOrder int, isActive bool) (Module, error) {
	return s.repo.Update(ctx, id, strings.TrimSpace(displayName), strings.TrimSpace(route), sortOrder, isActive)
}

// Delete removes a module without permissions.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
