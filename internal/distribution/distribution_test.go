package distribution

import (
	"testing"

	"voxelengine/internal/voxel"
)

func TestChunkRandDeterministic(t *testing.T) {
	coord := voxel.ChunkCoord{X: 3, Y: 0, Z: -7}
	r1 := ChunkRand(coord, 42)
	r2 := ChunkRand(coord, 42)
	for i := 0; i < 10; i++ {
		if r1.Float64() != r2.Float64() {
			t.Fatal("same coord+seed should produce identical sequences")
		}
	}
}

func TestChunkRandDivergesAcrossCoords(t *testing.T) {
	r1 := ChunkRand(voxel.ChunkCoord{X: 0}, 1)
	r2 := ChunkRand(voxel.ChunkCoord{X: 1}, 1)
	if r1.Float64() == r2.Float64() {
		// astronomically unlikely to collide; treat as failure
		t.Fatal("different coords should (almost certainly) diverge")
	}
}

func TestPatternsStayWithinBounds(t *testing.T) {
	patterns := []Pattern{
		PatternUniform, PatternClustered, PatternGradient, PatternStratified,
		PatternVoronoi, PatternBlueNoise, PatternFibonacci,
	}
	for _, p := range patterns {
		rng := ChunkRand(voxel.ChunkCoord{}, 7)
		pts := Generate(p, rng, 16, 20)
		for _, pt := range pts {
			if pt.X < -0.001 || pt.X > 16.001 || pt.Z < -0.001 || pt.Z > 16.001 {
				t.Fatalf("pattern %v produced out-of-bounds point %+v", p, pt)
			}
		}
	}
}

func TestSphericalModifierFalloff(t *testing.T) {
	m := Spherical([3]float64{0, 0, 0}, 10, 1.0)
	if m(0, 0, 0) != 1.0 {
		t.Fatalf("center should have full strength, got %f", m(0, 0, 0))
	}
	if m(20, 0, 0) != 0 {
		t.Fatalf("outside radius should be zero, got %f", m(20, 0, 0))
	}
}

func TestLinearGradientClampsToRange(t *testing.T) {
	m := LinearGradient([3]float64{0, 0, 0}, [3]float64{1, 0, 0}, 10, 0, 1)
	if v := m(-5, 0, 0); v != 0 {
		t.Fatalf("before origin should clamp to 'from', got %f", v)
	}
	if v := m(100, 0, 0); v != 1 {
		t.Fatalf("far beyond span should clamp to 'to', got %f", v)
	}
}
