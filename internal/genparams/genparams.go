// Package genparams defines GenerationParameters, the typed configuration
// bag the orchestrator reads to drive terrain/biome/feature generation,
// plus its named presets. The Validate()/Default() shape is grounded on
// firestar-voxel-world/chunk-server/internal/config/config.go, the only
// pack repo with a dedicated, validated configuration object; its nested
// TerrainConfig (Seed/Frequency/Amplitude/Octaves/Persistence/Lacunarity)
// maps directly onto this package's fields.
package genparams

import (
	"fmt"

	"voxelengine/internal/noise"
)

// TerrainMode selects which generation strategy the orchestrator's terrain
// pass uses.
type TerrainMode int

const (
	TerrainFlat TerrainMode = iota
	TerrainHeightMap
	TerrainVolumetric
	TerrainIslands
	TerrainMountains
)

func (m TerrainMode) String() string {
	switch m {
	case TerrainFlat:
		return "flat"
	case TerrainHeightMap:
		return "heightmap"
	case TerrainVolumetric:
		return "volumetric"
	case TerrainIslands:
		return "islands"
	case TerrainMountains:
		return "mountains"
	}
	return "unknown"
}

// GenerationParameters is the full configuration for one world generation
// run: seed, terrain shape, noise layer composition, and the additive
// passes (ore veins, structural collapse) SPEC_FULL.md supplements.
type GenerationParameters struct {
	Seed        int64       `json:"seed" yaml:"seed"`
	Mode        TerrainMode `json:"mode" yaml:"mode"`
	SeaLevel    int32       `json:"seaLevel" yaml:"seaLevel"`
	BaseHeight  int32       `json:"baseHeight" yaml:"baseHeight"`
	Amplitude   float64     `json:"amplitude" yaml:"amplitude"`
	Frequency   float64     `json:"frequency" yaml:"frequency"`
	Octaves     int         `json:"octaves" yaml:"octaves"`
	Persistence float64     `json:"persistence" yaml:"persistence"`
	Lacunarity  float64     `json:"lacunarity" yaml:"lacunarity"`

	TerrainPreset noise.Preset `json:"terrainPreset" yaml:"terrainPreset"`

	EnableCaves              bool `json:"enableCaves" yaml:"enableCaves"`
	EnableOreVeins           bool `json:"enableOreVeins" yaml:"enableOreVeins"`
	EnableStructuralCollapse bool `json:"enableStructuralCollapse" yaml:"enableStructuralCollapse"`

	// CaveDensity/CaveSize gate how aggressively the cave-noise threshold
	// in the terrain pass carves out solid rock. Bit-exact field names and
	// clamp ranges with original_source's GenerationParameters::setCaveDensity
	// ([0,1]) and setCaveSize ([0.1,10]) — these are tunable per-preset
	// parameters in the original implementation, not fixed constants.
	CaveDensity float64 `json:"caveDensity" yaml:"caveDensity"`
	CaveSize    float64 `json:"caveSize" yaml:"caveSize"`
}

// Validate checks invariants the orchestrator and noise layers depend on,
// following the teacher config's plain errors.New-style validation rather
// than a struct-tag validator library (none of the pack's repos pull one).
func (p *GenerationParameters) Validate() error {
	if p.Octaves <= 0 {
		return fmt.Errorf("genparams: octaves must be positive, got %d", p.Octaves)
	}
	if p.Persistence <= 0 || p.Persistence > 1 {
		return fmt.Errorf("genparams: persistence must be in (0,1], got %f", p.Persistence)
	}
	if p.Lacunarity <= 1 {
		return fmt.Errorf("genparams: lacunarity must be > 1, got %f", p.Lacunarity)
	}
	if p.Amplitude < 0 {
		return fmt.Errorf("genparams: amplitude must be non-negative, got %f", p.Amplitude)
	}
	if p.CaveDensity < 0 || p.CaveDensity > 1 {
		return fmt.Errorf("genparams: caveDensity must be in [0,1], got %f", p.CaveDensity)
	}
	if p.CaveSize < 0.1 || p.CaveSize > 10 {
		return fmt.Errorf("genparams: caveSize must be in [0.1,10], got %f", p.CaveSize)
	}
	return nil
}

// Default returns the "hills" preset, matching the teacher config's
// Default()'s role as a safe out-of-the-box configuration.
func Default() GenerationParameters {
	return Preset("hills")
}

// Preset returns a named GenerationParameters configuration. Unknown names
// fall back to "hills" (spec §7's Resource-kind fallback-to-default rule).
func Preset(name string) GenerationParameters {
	base := GenerationParameters{
		Seed:          1337,
		Mode:          TerrainHeightMap,
		SeaLevel:      64,
		BaseHeight:    64,
		Amplitude:     32,
		Frequency:     0.01,
		Octaves:       4,
		Persistence:   0.5,
		Lacunarity:    2.0,
		TerrainPreset: noise.PresetTerrain,
		EnableCaves:   true,
		CaveDensity:   0.5,
		CaveSize:      1.0,
	}
	switch name {
	case "flat":
		base.Mode = TerrainFlat
		base.Amplitude = 0
		base.EnableCaves = false
	case "hills":
		// base already is "hills"
	case "mountains":
		base.Mode = TerrainMountains
		base.Amplitude = 96
		base.Octaves = 6
		base.Persistence = 0.55
	case "islands":
		base.Mode = TerrainIslands
		base.SeaLevel = 72
		base.Amplitude = 48
	case "caves":
		base.Mode = TerrainVolumetric
		base.EnableCaves = true
		base.EnableOreVeins = true
		base.Amplitude = 40
		base.CaveDensity = 0.6
		base.CaveSize = 1.5
	case "desert":
		base.Mode = TerrainHeightMap
		base.Amplitude = 16
		base.EnableCaves = false
	case "jungle":
		base.Mode = TerrainHeightMap
		base.Amplitude = 40
		base.Octaves = 5
		base.CaveDensity = 0.3
	case "canyon":
		base.Mode = TerrainVolumetric
		base.Amplitude = 80
		base.EnableStructuralCollapse = true
	case "archipelago":
		base.Mode = TerrainIslands
		base.SeaLevel = 80
		base.Amplitude = 36
	default:
		return Preset("hills")
	}
	return base
}
