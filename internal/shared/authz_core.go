package shared

// Core platform permission keys. Keys follow the catalog convention
// "<module>_<action>" and must match the seeded permission rows.
const (
	PermCampaignsRead   = "campaigns_read"
	PermCampaignsCreate = "campaigns_create"
	PermCampaignsEdit   = "campaigns_edit"
	PermCampaignsDelete = "campaigns_delete"

	PermRolesRead = "roles_read"
	PermRolesEdit = "roles_edit"

	PermModulesRead = "modules_read"
	PermModulesEdit = "modules_edit"

	PermActorsRead = "actors_read"
	PermActorsEdit = "actors_edit"
)

// CoreScopes lists all permissions related to the core platform.
func CoreScopes() []string {
	return []string{
		PermCampaignsRead,
		PermCampaignsCreate,
		PermCampaignsEdit,
		PermCampaignsDelete,
		PermRolesRead,
		PermRolesEdit,
		PermModulesRead,
		PermModulesEdit,
		PermActorsRead,
		PermActorsEdit,
	}
}
