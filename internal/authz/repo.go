package authz

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed reads of role and grant state.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// RolesForActor returns the active roles bound to the actor, most
// senior first.
func (r *Repository) RolesForActor(ctx context.Context, actorID int64) ([]BoundRole, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT r.id, r.name, r.level, r.tier, r.is_system_role
		FROM actor_role_bindings b
		JOIN roles r ON r.id = b.role_id
		WHERE b.actor_id = $1 AND b.is_active = TRUE AND r.is_active = TRUE
		ORDER BY r.level DESC, r.name
	`, actorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []BoundRole
	for rows.Next() {
		var role BoundRole
		var tier string
		if err := rows.Scan(&role.ID, &role.Name, &role.Level, &tier, &role.IsSystemRole); err != nil {
			return nil, err
		}
		role.Tier = Tier(tier)
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// EffectivePermissions returns the distinct permission keys granted
// through the actor's active bindings. Inactive roles, permissions and
// modules contribute nothing.
func (r *Repository) EffectivePermissions(ctx context.Context, actorID int64) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT p.key
		FROM actor_role_bindings b
		JOIN roles r ON r.id = b.role_id AND r.is_active = TRUE
		JOIN role_permissions rp ON rp.role_id = r.id
		JOIN permissions p ON p.id = rp.permission_id AND p.is_active = TRUE
		JOIN modules m ON m.id = p.module_id AND m.is_active = TRUE
		WHERE b.actor_id = $1 AND b.is_active = TRUE
		ORDER BY p.key
	`, actorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
