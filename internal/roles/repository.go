package roles

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lumina-reports/lumina/internal/platform/db"
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

const roleColumns = `id, name, level, tier, is_system_role, is_active, created_at, updated_at`

func scanRole(row pgx.Row) (Role, error) {
	var r Role
	err := row.Scan(&r.ID, &r.Name, &r.Level, &r.Tier, &r.IsSystemRole, &r.IsActive, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

// List returns all roles ordered by seniority then name.
func (r *Repository) List(ctx context.Context) ([]Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+roleColumns+` FROM roles ORDER BY level DESC, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// Get fetches a role by ID.
func (r *Repository) Get(ctx context.Context, id int64) (Role, error) {
	role, err := scanRole(r.pool.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, fmt.Errorf("roles: id %d: %w", id, shared.ErrNotFound)
		}
		return Role{}, err
	}
	return role, nil
}

// Create inserts a new role.
func (r *Repository) Create(ctx context.Context, role Role) (Role, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO roles (name, level, tier, is_system_role, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+roleColumns,
		role.Name, role.Level, role.Tier, role.IsSystemRole, role.IsActive)
	created, err := scanRole(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Role{}, fmt.Errorf("roles: name %q: %w", role.Name, shared.ErrDuplicate)
		}
		return Role{}, err
	}
	return created, nil
}

// Update modifies an existing role.
func (r *Repository) Update(ctx context.Context, id int64, name string, level int, tier string, isActive bool) (Role, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE roles
		SET name = $2, level = $3, tier = $4, is_active = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING `+roleColumns,
		id, name, level, tier, isActive)
	role, err := scanRole(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, fmt.Errorf("roles: id %d: %w", id, shared.ErrNotFound)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Role{}, fmt.Errorf("roles: name %q: %w", name, shared.ErrDuplicate)
		}
		return Role{}, err
	}
	return role, nil
}

// Delete removes a role and its grants in one transaction. A role with
// active bindings is reported as in use and left untouched.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var active int
		err := tx.QueryRow(ctx, `
			SELECT COUNT(*) FROM actor_role_bindings
			WHERE role_id = $1 AND is_active = TRUE
		`, id).Scan(&active)
		if err != nil {
			return err
		}
		if active > 0 {
			return fmt.Errorf("roles: id %d has %d active bindings: %w", id, active, shared.ErrInUse)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("roles: id %d: %w", id, shared.ErrNotFound)
		}
		return nil
	})
}

// ListGrants returns the permissions granted to a role.
func (r *Repository) ListGrants(ctx context.Context, roleID int64) ([]Grant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.key, p.display_name
		FROM role_permissions rp
		JOIN permissions p ON p.id = rp.permission_id
		WHERE rp.role_id = $1
		ORDER BY p.key
	`, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []Grant
	for rows.Next() {
		var g Grant
		if err := rows.Scan(&g.PermissionID, &g.Key, &g.DisplayName); err != nil {
			return nil, err
		}
		grants = append(grants, g)
	}
	return grants, rows.Err()
}

// ReplaceGrants swaps the role's whole grant set in one transaction:
// delete everything, then insert the new set. A concurrent resolve
// never observes the intermediate empty state.
func (r *Repository) ReplaceGrants(ctx context.Context, roleID int64, permissionIDs []int64) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM roles WHERE id = $1)`, roleID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("roles: id %d: %w", roleID, shared.ErrNotFound)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
			return err
		}
		for _, permissionID := range permissionIDs {
			_, err := tx.Exec(ctx, `
				INSERT INTO role_permissions (role_id, permission_id)
				VALUES ($1, $2)
				ON CONFLICT (role_id, permission_id) DO NOTHING
			`, roleID, permissionID)
			if err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == "23503" {
					return fmt.Errorf("roles: permission %d: %w", permissionID, shared.ErrNotFound)
				}
				return err
			}
		}
		return nil
	})
}
