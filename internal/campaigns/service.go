package campaigns

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/lumina-reports/lumina/internal/authz"
	"github.com/lumina-reports/lumina/internal/shared"
)

// RepositoryPort defines data access methods for campaigns.
type RepositoryPort interface {
	List(ctx context.Context, req ListCampaignsRequest) ([]Campaign, int, error)
	Get(ctx context.Context, id uuid.UUID, ownerID *int64) (Campaign, error)
	GetAny(ctx context.Context, id uuid.UUID) (Campaign, error)
	Create(ctx context.Context, c Campaign) (Campaign, error)
	Update(ctx context.Context, id uuid.UUID, name, description, status string) (Campaign, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Entitlements is the slice of the authorization core the campaign
// module consumes: ownership scoping, the mutation guard and owner
// assignment.
type Entitlements interface {
	VisibilityScope(ctx context.Context, actor shared.Actor) (authz.Scope, error)
	AssertOwnership(ctx context.Context, actor shared.Actor, rowOwnerID int64) (authz.Decision, error)
	AssignOwner(actor shared.Actor) int64
}

// DeniedError carries an ownership denial out of the service so the
// handler can render the structured 403 envelope.
type DeniedError struct {
	Decision authz.Decision
}

func (e *DeniedError) Error() string {
	return "campaigns: " + string(e.Decision.Reason)
}

// Service handles campaign business logic. Every row-returning call is
// ownership scoped and every mutation is ownership guarded.
type Service struct {
	repo  RepositoryPort
	authz Entitlements
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, entitlements Entitlements) *Service {
	return &Service{repo: repo, authz: entitlements}
}

// List returns the campaigns visible to the actor.
func (s *Service) List(ctx context.Context, actor shared.Actor, req ListCampaignsRequest) ([]Campaign, int, error) {
	scope, err := s.authz.VisibilityScope(ctx, actor)
	if err != nil {
		return nil, 0, err
	}
	req.OwnerID = scope.OwnerID
	return s.repo.List(ctx, req)
}

// Get fetches a campaign visible to the actor.
func (s *Service) Get(ctx context.Context, actor shared.Actor, id uuid.UUID) (Campaign, error) {
	scope, err := s.authz.VisibilityScope(ctx, actor)
	if err != nil {
		return Campaign{}, err
	}
	return s.repo.Get(ctx, id, scope.OwnerID)
}

// Create inserts a campaign owned by the actor. Any client-supplied
// owner value is discarded.
func (s *Service) Create(ctx context.Context, actor shared.Actor, req CreateCampaignRequest) (Campaign, error) {
	status := req.Status
	if status == "" {
		status = StatusDraft
	}
	return s.repo.Create(ctx, Campaign{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Status:      status,
		OwnerID:     s.authz.AssignOwner(actor),
	})
}

// Update modifies a campaign the actor owns (or any campaign, when
// elevated).
func (s *Service) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req UpdateCampaignRequest) (Campaign, error) {
	existing, err := s.repo.GetAny(ctx, id)
	if err != nil {
		return Campaign{}, err
	}
	decision, err := s.authz.AssertOwnership(ctx, actor, existing.OwnerID)
	if err != nil {
		return Campaign{}, err
	}
	if !decision.Allowed {
		return Campaign{}, &DeniedError{Decision: decision}
	}
	return s.repo.Update(ctx, id, strings.TrimSpace(req.Name), strings.TrimSpace(req.Description), req.Status)
}

// Delete removes a campaign the actor owns (or any campaign, when
// elevated).
func (s *Service) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	existing, err := s.repo.GetAny(ctx, id)
	if err != nil {
		return err
	}
	decision, err := s.authz.AssertOwnership(ctx, actor, existing.OwnerID)
	if err != nil {
		return err
	}
	if !decision.Allowed {
		return &DeniedError{Decision: decision}
	}
	return s.repo.Delete(ctx, id)
}
