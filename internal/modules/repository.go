package modules

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

const moduleColumns = `id, name, display_name, route, sort_order, is_active, created_at, updated_at`

func scanModule(row pgx.Row) (Module, error) {
	var m Module
	err := row.Scan(&m.ID, &m.Name, &m.DisplayName, &m.Route, &m.SortOrder, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// List returns all modules ordered by sort order.
func (r *Repository) List(ctx context.Context) ([]Module, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+moduleColumns+` FROM modules ORDER BY sort_order, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mods []Module
	for rows.Next() {
		m, err := scanModule(rows)
		if err != nil {
			return nil, err
		}
		mods = append(mods, m)
	}
	return mods, rows.Err()
}

// ListWithPermissions returns all modules with their permission entries
// attached, in catalog order.
func (r *Repository) ListWithPermissions(ctx context.Context) ([]ModuleWithPermissions, error) {
	mods, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT module_id, id, key, display_name, description, is_active
		FROM permissions
		ORDER BY key
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byModule := make(map[int64][]PermissionSummary)
	for rows.Next() {
		var moduleID int64
		var p PermissionSummary
		if err := rows.Scan(&moduleID, &p.ID, &p.Key, &p.DisplayName, &p.Description, &p.IsActive); err != nil {
			return nil, err
		}
		byModule[moduleID] = append(byModule[moduleID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]ModuleWithPermissions, len(mods))
	for i, m := range mods {
		perms := byModule[m.ID]
		if perms == nil {
			perms = []PermissionSummary{}
		}
		out[i] = ModuleWithPermissions{Module: m, Permissions: perms}
	}
	return out, nil
}

// Get fetches a module by ID.
func (r *Repository) Get(ctx context.Context, id int64) (Module, error) {
	m, err := scanModule(r.pool.QueryRow(ctx, `SELECT `+moduleColumns+` FROM modules WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Module{}, fmt.Errorf("modules: id %d: %w", id, shared.ErrNotFound)
		}
		return Module{}, err
	}
	return m, nil
}

// Create inserts a new module.
func (r *Repository) Create(ctx context.Context, m Module) (Module, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO modules (name, display_name, route, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+moduleColumns,
		m.Name, m.DisplayName, m.Route, m.SortOrder, m.IsActive)
	created, err := scanModule(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Module{}, fmt.Errorf("modules: name %q: %w", m.Name, shared.ErrDuplicate)
		}
		return Module{}, err
	}
	return created, nil
}

// Update modifies the mutable fields of a module. The name is identity
// and stays fixed.
func (r *Repository) Update(ctx context.Context, id int64, displayName, route string, sortOrder int, isActive bool) (Module, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE modules
		SET display_name = $2, route = $3, sort_order = $4, is_active = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING `+moduleColumns,
		id, displayName, route, sortOrder, isActive)
	m, err := scanModule(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Module{}, fmt.Errorf("modules: id %d: %w", id, shared.ErrNotFound)
		}
		return Module{}, err
	}
	return m, nil
}

// Delete removes a module. Modules with permissions are protected by
// the catalog foreign key and report as in use.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM modules WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("modules: id %d has permissions: %w", id, shared.ErrInUse)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("modules: id %d: %w", id, shared.ErrNotFound)
	}
	return nil
}
