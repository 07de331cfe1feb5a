package campaigns

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lumina-reports/lumina/internal/shared"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const campaignColumns = `id, name, description, status, owner_id, created_at, updated_at`

func scanCampaign(row pgx.Row) (Campaign, error) {
	var c Campaign
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Status, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// List returns campaigns matching the filters plus the total count. The
// owner filter is the ownership scope: when set, rows belonging to
// other actors are excluded at query time.
func (r *Repository) List(ctx context.Context, req ListCampaignsRequest) ([]Campaign, int, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if req.OwnerID != nil {
		conditions = append(conditions, fmt.Sprintf("owner_id = $%d", argPos))
		args = append(args, *req.OwnerID)
		argPos++
	}
	if req.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *req.Status)
		argPos++
	}
	if req.Search != nil && *req.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+*req.Search+"%")
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + conditions[0]
		for i := 1; i < len(conditions); i++ {
			whereClause += " AND " + conditions[i]
		}
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM campaigns %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	paging := shared.NewPagination(req.Page, req.PerPage, total)
	query := fmt.Sprintf(`
		SELECT %s FROM campaigns
		%s
		ORDER BY created_at DESC, id
		LIMIT $%d OFFSET $%d
	`, campaignColumns, whereClause, argPos, argPos+1)
	args = append(args, paging.PerPage, paging.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

// Get fetches a campaign visible under the given scope. A scoped get of
// another actor's row reports not found, exactly like the list filter.
func (r *Repository) Get(ctx context.Context, id uuid.UUID, ownerID *int64) (Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`
	args := []interface{}{id}
	if ownerID != nil {
		query += ` AND owner_id = $2`
		args = append(args, *ownerID)
	}
	c, err := scanCampaign(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Campaign{}, fmt.Errorf("campaigns: id %s: %w", id, shared.ErrNotFound)
		}
		return Campaign{}, err
	}
	return c, nil
}

// GetAny fetches a campaign regardless of owner, for the mutation
// ownership check.
func (r *Repository) GetAny(ctx context.Context, id uuid.UUID) (Campaign, error) {
	return r.Get(ctx, id, nil)
}

// Create inserts a new campaign.
func (r *Repository) Create(ctx context.Context, c Campaign) (Campaign, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO campaigns (id, name, description, status, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+campaignColumns,
		c.ID, c.Name, c.Description, c.Status, c.OwnerID)
	return scanCampaign(row)
}

// Update modifies a campaign's mutable fields. The owner column is
// deliberately absent from the statement.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, name, description, status string) (Campaign, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE campaigns
		SET name = $2, description = $3, status = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING `+campaignColumns,
		id, name, description, status)
	c, err := scanCampaign(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Campaign{}, fmt.Errorf("campaigns: id %s: %w", id, shared.ErrNotFound)
		}
		return Campaign{}, err
	}
	return c, nil
}

// Delete removes a campaign.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("campaigns: id %s: %w", id, shared.ErrNotFound)
	}
	return nil
}
