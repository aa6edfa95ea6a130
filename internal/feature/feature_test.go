package feature

import (
	"testing"

	"voxelengine/internal/external"
)

func TestEvaluateEmptyConstraintsAccepts(t *testing.T) {
	if !Evaluate(nil, Site{}) {
		t.Fatal("empty constraint list should always accept")
	}
}

func TestElevationConstraint(t *testing.T) {
	c := Elevation(60, 90)
	if !c.Check(Site{Elevation: 75}) {
		t.Fatal("75 should be within [60,90]")
	}
	if c.Check(Site{Elevation: 200}) {
		t.Fatal("200 should be rejected")
	}
}

func TestBiomeTypeConstraint(t *testing.T) {
	c := BiomeType(1, 2, 3)
	if !c.Check(Site{BiomeID: 2}) {
		t.Fatal("biome 2 should be eligible")
	}
	if c.Check(Site{BiomeID: 9}) {
		t.Fatal("biome 9 should be rejected")
	}
}

func TestNearFeatureDefaultsToAcceptWhenDepMissing(t *testing.T) {
	c := NearFeature("oak_tree", 10)
	if !c.Check(Site{Deps: nil}) {
		t.Fatal("missing dependency should default to accept")
	}
	if !c.Check(Site{Deps: map[string]float64{"oak_tree": 5}}) {
		t.Fatal("distance 5 <= 10 should accept")
	}
	if c.Check(Site{Deps: map[string]float64{"oak_tree": 50}}) {
		t.Fatal("distance 50 > 10 should reject")
	}
}

func TestTryPlaceInvokesGeneratorOnlyWhenEligible(t *testing.T) {
	called := false
	ti := TypeInfo{
		Name:        "test_feature",
		Constraints: []Constraint{Elevation(0, 10)},
		Generate: func(site Site, place func(external.Vec3, uint16)) {
			called = true
			place(external.Vec3{}, 1)
		},
	}

	placed := TryPlace(ti, Site{Elevation: 100}, func(external.Vec3, uint16) {})
	if placed || called {
		t.Fatal("should not place or call generator when constraint fails")
	}

	placed = TryPlace(ti, Site{Elevation: 5}, func(external.Vec3, uint16) {})
	if !placed || !called {
		t.Fatal("should place and call generator when constraint passes")
	}
}

func TestRegistryRoundTrip(t *testing.T) {
	r := NewRegistry()
	r.Register(TypeInfo{Name: "rock"})
	got, ok := r.Get("rock")
	if !ok || got.Name != "rock" {
		t.Fatal("expected to retrieve registered feature type")
	}
	if _, ok := r.Get("missing"); ok {
		t.Fatal("unregistered type should not be found")
	}
}
