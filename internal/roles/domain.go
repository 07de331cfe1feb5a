package roles

import (
	"time"

	"github.com/lumina-reports/lumina/internal/authz"
)

// Role is a named, leveled bundle of grants assignable to actors.
// Elevation is derived from tier and level at classification time, never
// stored as its own flag.
type Role struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Level        int        `json:"level"`
	Tier         authz.Tier `json:"tier"`
	IsSystemRole bool       `json:"isSystemRole"`
	IsActive     bool       `json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Grant is the persisted view of one (role, permission) association.
type Grant struct {
	PermissionID int64  `json:"permissionId"`
	Key          string `json:"key"`
	DisplayName  string `json:"displayName"`
}
