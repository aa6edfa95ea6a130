package genparams

import "testing"

func TestDefaultValidates(t *testing.T) {
	p := Default()
	if err := p.Validate(); err != nil {
		t.Fatalf("default params should validate: %v", err)
	}
}

func TestAllNamedPresetsValidate(t *testing.T) {
	names := []string{"flat", "hills", "mountains", "islands", "caves", "desert", "jungle", "canyon", "archipelago"}
	for _, name := range names {
		p := Preset(name)
		if err := p.Validate(); err != nil {
			t.Fatalf("preset %q failed validation: %v", name, err)
		}
	}
}

func TestUnknownPresetFallsBackToHills(t *testing.T) {
	got := Preset("nonexistent")
	want := Preset("hills")
	if got != want {
		t.Fatalf("unknown preset should fall back to hills: got %+v want %+v", got, want)
	}
}

func TestValidateRejectsBadOctaves(t *testing.T) {
	p := Default()
	p.Octaves = 0
	if err := p.Validate(); err == nil {
		t.Fatal("expected error for zero octaves")
	}
}

func TestValidateRejectsBadLacunarity(t *testing.T) {
	p := Default()
	p.Lacunarity = 1.0
	if err := p.Validate(); err == nil {
		t.Fatal("expected error for lacunarity <= 1")
	}
}
