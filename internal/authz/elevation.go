package authz

import "strings"

// Classifier decides whether a role is elevated. The tier field is the
// source of truth; level acts as a redundant threshold, and a small
// configured list of canonical role names covers legacy rows whose tier
// was never migrated.
type Classifier struct {
	canonical map[string]struct{}
}

// NewClassifier builds a Classifier from the configured canonical
// elevated role designations.
func NewClassifier(canonicalNames []string) Classifier {
	canonical := make(map[string]struct{}, len(canonicalNames))
	for _, name := range canonicalNames {
		if n := canonicalName(name); n != "" {
			canonical[n] = struct{}{}
		}
	}
	return Classifier{canonical: canonical}
}

// IsElevated reports whether the role bypasses capability checks and
// ownership filtering.
func (c Classifier) IsElevated(role BoundRole) bool {
	if role.Tier == TierElevated {
		return true
	}
	if role.Level >= ElevationThreshold {
		return true
	}
	_, ok := c.canonical[canonicalName(role.Name)]
	return ok
}

// AnyElevated reports whether any of the actor's bound roles is elevated.
func (c Classifier) AnyElevated(roles []BoundRole) bool {
	for _, role := range roles {
		if c.IsElevated(role) {
			return true
		}
	}
	return false
}

// canonicalName folds the historical spellings of a role name into one
// comparable form: "Super Admin", "super_admin" and "SUPERADMIN" all
// collapse to "superadmin".
func canonicalName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch r {
		case ' ', '_', '-':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
