package authz

import "testing"

func TestClassifierTierIsPrimary(t *testing.T) {
	c := NewClassifier(nil)

	if !c.IsElevated(BoundRole{Name: "Operations", Level: 2, Tier: TierElevated}) {
		t.Fatalf("expected elevated tier to elevate regardless of level")
	}
	if c.IsElevated(BoundRole{Name: "Operations", Level: 2, Tier: TierStandard}) {
		t.Fatalf("expected standard tier at low level to stay standard")
	}
}

func TestClassifierLevelThresholdIsSafetyNet(t *testing.T) {
	c := NewClassifier(nil)

	if !c.IsElevated(BoundRole{Name: "Whatever", Level: ElevationThreshold, Tier: TierStandard}) {
		t.Fatalf("expected level %d to elevate", ElevationThreshold)
	}
	if !c.IsElevated(BoundRole{Name: "Whatever", Level: 99, Tier: TierStandard}) {
		t.Fatalf("expected level above threshold to elevate")
	}
	if c.IsElevated(BoundRole{Name: "Whatever", Level: ElevationThreshold - 1, Tier: TierStandard}) {
		t.Fatalf("expected level below threshold to stay standard")
	}
}

func TestClassifierCanonicalNamesFoldSpellings(t *testing.T) {
	c := NewClassifier([]string{"superadmin"})

	spellings := []string{
		"superadmin",
		"SuperAdmin",
		"SUPER ADMIN",
		"super_admin",
		"Super-Admin",
		" super admin ",
	}
	for _, name := range spellings {
		if !c.IsElevated(BoundRole{Name: name, Level: 0, Tier: TierStandard}) {
			t.Fatalf("expected spelling %q to match canonical designation", name)
		}
	}

	if c.IsElevated(BoundRole{Name: "supervisor", Level: 0, Tier: TierStandard}) {
		t.Fatalf("expected unrelated name to stay standard")
	}
}

func TestClassifierAnyElevated(t *testing.T) {
	c := NewClassifier(nil)

	roles := []BoundRole{
		{Name: "Viewer", Level: 1, Tier: TierStandard},
		{Name: "SuperAdmin", Level: 10, Tier: TierElevated},
	}
	if !c.AnyElevated(roles) {
		t.Fatalf("expected one elevated binding to elevate the actor")
	}
	if c.AnyElevated(roles[:1]) {
		t.Fatalf("expected all-standard bindings to stay standard")
	}
	if c.AnyElevated(nil) {
		t.Fatalf("expected no bindings to stay standard")
	}
}
