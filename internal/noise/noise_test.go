package noise

import (
	"math"
	"testing"
)

func assertInUnitRange(t *testing.T, name string, v float64) {
	t.Helper()
	if v < -1.0001 || v > 1.0001 {
		t.Fatalf("%s out of [-1,1]: %v", name, v)
	}
}

func TestAlgorithmsStayInUnitRange(t *testing.T) {
	algs := []Algorithm{
		AlgorithmPerlin, AlgorithmSimplex, AlgorithmWorley, AlgorithmValue,
		AlgorithmCubic, AlgorithmWhiteNoise, AlgorithmVoronoi, AlgorithmRidged,
		AlgorithmBillow, AlgorithmDomain,
	}
	for _, alg := range algs {
		s := New(alg, 42, InterpQuintic)
		for i := 0; i < 50; i++ {
			x := float64(i) * 0.37
			y := float64(i) * 0.91
			z := float64(i) * 0.13
			v := s.Sample3D(x, y, z)
			if math.IsNaN(v) {
				t.Fatalf("alg %v produced NaN", alg)
			}
			assertInUnitRange(t, "alg", v)
		}
	}
}

func TestValueNoiseIsDeterministic(t *testing.T) {
	s1 := NewValue(7, InterpQuintic)
	s2 := NewValue(7, InterpQuintic)
	if s1.Sample3D(1.5, 2.5, 3.5) != s2.Sample3D(1.5, 2.5, 3.5) {
		t.Fatal("same seed should produce same value")
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	s1 := NewValue(1, InterpQuintic)
	s2 := NewValue(2, InterpQuintic)
	same := true
	for i := 0; i < 20; i++ {
		x := float64(i) * 1.23
		if s1.Sample3D(x, x, x) != s2.Sample3D(x, x, x) {
			same = false
			break
		}
	}
	if same {
		t.Fatal("expected different seeds to diverge somewhere")
	}
}

func TestFractalTypesStayInUnitRange(t *testing.T) {
	types := []FractalType{
		FractalFBM, FractalRigid, FractalBillow, FractalMultiFractal,
		FractalHybridMulti, FractalDeCarpentier,
	}
	base := NewPerlin(5)
	for _, ft := range types {
		f := NewFractal(base, ft, DefaultFractalParams())
		for i := 0; i < 30; i++ {
			x := float64(i) * 0.21
			v := f.Sample3D(x, x*0.5, x*0.25)
			assertInUnitRange(t, "fractal", v)
		}
	}
}

func TestCombineOperationsBehave(t *testing.T) {
	if Combine(CombineAdd, 0.5, 0.6, 0) != 1.0 {
		t.Fatal("add should clamp at 1.0")
	}
	if Combine(CombineMin, 0.5, -0.2, 0) != -0.2 {
		t.Fatal("min should pick smaller")
	}
	if Combine(CombineMax, 0.5, -0.2, 0) != 0.5 {
		t.Fatal("max should pick larger")
	}
	if Combine(CombineBlend, 0, 1, 0.25) != 0.25 {
		t.Fatal("blend should linearly interpolate")
	}
}

func TestPresetsBuildAndSampleWithoutPanic(t *testing.T) {
	presets := []Preset{PresetTerrain, PresetCaves, PresetOre, PresetBiomeBlend, PresetDetailTexture}
	for _, p := range presets {
		gen := BuildPreset(p, 99)
		v := gen.Sample3D(10, 20, 30)
		assertInUnitRange(t, string(p), v)
	}
}

func TestDomainWarpDiffersFromUnwarped(t *testing.T) {
	base := NewPerlin(3)
	warp := NewPerlin(4)
	warped := NewDomainWarp(base, warp, 5.0)
	differs := false
	for i := 0; i < 20; i++ {
		x := float64(i) * 0.5
		if base.Sample3D(x, x, x) != warped.Sample3D(x, x, x) {
			differs = true
			break
		}
	}
	if !differs {
		t.Fatal("expected domain warp to change sampled values")
	}
}
