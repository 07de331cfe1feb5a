package permissions

// Permission is a single capability scoped to one module. The key is
// the stable string the decision point compares against; it is
// generated from the (module, action) pair, never typed by hand.
type Permission struct {
	ID          int64  `json:"id"`
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	ModuleID    int64  `json:"moduleId"`
	IsActive    bool   `json:"isActive"`
}

// Actions is the closed set of catalog actions. A permission is always
// one of these applied to a module; free-form keys are not accepted.
var Actions = []string{"read", "create", "edit", "delete", "export", "manage"}

// ValidAction reports whether the action belongs to the closed set.
func ValidAction(action string) bool {
	for _, a := range Actions {
		if a == action {
			return true
		}
	}
	return false
}
