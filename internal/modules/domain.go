package modules

import "time"

// Module is a named functional area that owns a set of permissions.
// Its name is the stable identity permission keys are built from and is
// immutable once created.
type Module struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName"`
	Route       string    `json:"route"`
	SortOrder   int       `json:"sortOrder"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PermissionSummary is the catalog view of a permission when listing
// modules with their permissions expanded.
type PermissionSummary struct {
	ID          int64  `json:"id"`
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
}

// ModuleWithPermissions pairs a module with its permission entries.
type ModuleWithPermissions struct {
	Module
	Permissions []PermissionSummary `json:"permissions"`
}
