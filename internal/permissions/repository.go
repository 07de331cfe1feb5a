package permissions

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
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

const permissionColumns = `id, key, display_name, description, module_id, is_active`

func scanPermission(row pgx.Row) (Permission, error) {
	var p Permission
	err := row.Scan(&p.ID, &p.Key, &p.DisplayName, &p.Description, &p.ModuleID, &p.IsActive)
	return p, err
}

// List returns all permissions ordered by key.
func (r *Repository) List(ctx context.Context) ([]Permission, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+permissionColumns+` FROM permissions ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var perms []Permission
	for rows.Next() {
		p, err := scanPermission(rows)
		if err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

// Get fetches a permission by ID.
func (r *Repository) Get(ctx context.Context, id int64) (Permission, error) {
	p, err := scanPermission(r.pool.QueryRow(ctx, `SELECT `+permissionColumns+` FROM permissions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Permission{}, fmt.Errorf("permissions: id %d: %w", id, shared.ErrNotFound)
		}
		return Permission{}, err
	}
	return p, nil
}

// ModuleName returns the name of an active module, or ErrNotFound when
// the module is missing or inactive. Permissions may only be attached
// to active modules.
func (r *Repository) ModuleName(ctx context.Context, moduleID int64) (string, error) {
	var name string
	err := r.pool.QueryRow(ctx, `SELECT name FROM modules WHERE id = $1 AND is_active = TRUE`, moduleID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("permissions: active module %d: %w", moduleID, shared.ErrNotFound)
		}
		return "", err
	}
	return name, nil
}

// Create inserts a new permission.
func (r *Repository) Create(ctx context.Context, p Permission) (Permission, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO permissions (key, display_name, description, module_id, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+permissionColumns,
		p.Key, p.DisplayName, p.Description, p.ModuleID, p.IsActive)
	created, err := scanPermission(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Permission{}, fmt.Errorf("permissions: key %q: %w", p.Key, shared.ErrDuplicate)
		}
		return Permission{}, err
	}
	return created, nil
}

// SetActive flips the activation flag.
func (r *Repository) SetActive(ctx context.Context, id int64, isActive bool) (Permission, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE permissions SET is_active = $2 WHERE id = $1
		RETURNING `+permissionColumns, id, isActive)
	p, err := scanPermission(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Permission{}, fmt.Errorf("permissions: id %d: %w", id, shared.ErrNotFound)
		}
		return Permission{}, err
	}
	return p, nil
}

// Delete removes a permission. Grants referencing it cascade away.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM permissions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("permissions: id %d: %w", id, shared.ErrNotFound)
	}
	return nil
}
