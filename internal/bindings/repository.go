package bindings

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
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

// ListForActor returns the actor's bindings, active first.
func (r *Repository) ListForActor(ctx context.Context, actorID int64) ([]Binding, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT b.actor_id, b.role_id, ro.name, b.is_active, b.bound_by, b.bound_at
		FROM actor_role_bindings b
		JOIN roles ro ON ro.id = b.role_id
		WHERE b.actor_id = $1
		ORDER BY b.is_active DESC, b.bound_at DESC
	`, actorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Binding
	for rows.Next() {
		var b Binding
		if err := rows.Scan(&b.ActorID, &b.RoleID, &b.RoleName, &b.IsActive, &b.BoundBy, &b.BoundAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Bind activates a role binding for the actor, reviving a previously
// deactivated one if it exists.
func (r *Repository) Bind(ctx context.Context, actorID, roleID, boundBy int64) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO actor_role_bindings (actor_id, role_id, is_active, bound_by, bound_at)
		VALUES ($1, $2, TRUE, $3, NOW())
		ON CONFLICT (actor_id, role_id)
		DO UPDATE SET is_active = TRUE, bound_by = EXCLUDED.bound_by, bound_at = NOW()
	`, actorID, roleID, boundBy)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("bindings: role %d: %w", roleID, shared.ErrNotFound)
		}
		return err
	}
	return nil
}

// Unbind deactivates a binding. The row is kept for audit history.
func (r *Repository) Unbind(ctx context.Context, actorID, roleID int64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE actor_role_bindings SET is_active = FALSE
		WHERE actor_id = $1 AND role_id = $2 AND is_active = TRUE
	`, actorID, roleID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("bindings: actor %d role %d: %w", actorID, roleID, shared.ErrNotFound)
	}
	return nil
}
