package noise

// Preset names a ready-made LayeredGenerator configuration, matching the
// preset families spec.md's GenerationParameters references by name.
type Preset string

const (
	PresetTerrain       Preset = "terrain"
	PresetCaves         Preset = "caves"
	PresetOre           Preset = "ore"
	PresetBiomeBlend    Preset = "biome-blend"
	PresetDetailTexture Preset = "detail-texture"
)

// BuildPreset constructs the LayeredGenerator for a named preset at the
// given seed. Each preset picks algorithms and fractal types suited to its
// role: terrain uses ridged multifractal Perlin for mountainous relief
// blended with a smooth FBM base; caves use billowed Worley to carve
// cavity networks; ore reproduces
// original_source/src/Voxel/NoiseGenerator.cpp's presetOreDistribution
// three-layer stack bit-for-bit in shape (a Perlin FBM "distribution" base,
// a Worley "veins" layer multiplied in at weight 0.6, and a Value FBM
// "deposits" detail layer added at weight 0.4); biome-blend uses
// low-frequency domain-warped Perlin for smooth regions; detail-texture
// uses high-frequency cubic value noise for surface micro-variation.
func BuildPreset(preset Preset, seed int64) *LayeredGenerator {
	switch preset {
	case PresetTerrain:
		base := NewFractal(NewPerlin(seed), FractalFBM, FractalParams{Octaves: 5, Frequency: 0.01, Persistence: 0.5, Lacunarity: 2.0})
		ridge := NewFractal(NewPerlin(seed+1), FractalRigid, FractalParams{Octaves: 4, Frequency: 0.02, Persistence: 0.55, Lacunarity: 2.1})
		return &LayeredGenerator{Layers: []Layer{
			{Sampler: base, Op: CombineAdd, Weight: 1.0},
			{Sampler: ridge, Op: CombineAdd, Weight: 0.6},
		}}
	case PresetCaves:
		worley := NewBillow(NewWorley(seed))
		return &LayeredGenerator{Layers: []Layer{
			{Sampler: worley, Op: CombineAdd, Weight: 1.0},
		}}
	case PresetOre:
		distribution := NewFractal(NewPerlin(seed), FractalFBM, FractalParams{Octaves: 2, Frequency: 0.1, Persistence: 0.5, Lacunarity: 2.0})
		veins := NewFractal(NewWorley(seed+1), FractalFBM, FractalParams{Octaves: 1, Frequency: 0.2, Persistence: 0.5, Lacunarity: 2.0})
		deposits := NewFractal(NewValue(seed+2, InterpLinear), FractalFBM, FractalParams{Octaves: 3, Frequency: 0.3, Persistence: 0.3, Lacunarity: 2.5})
		return &LayeredGenerator{Layers: []Layer{
			{Sampler: distribution, Op: CombineAdd, Weight: 1.0},
			{Sampler: veins, Op: CombineMultiply, Weight: 0.6},
			{Sampler: deposits, Op: CombineAdd, Weight: 0.4},
		}}
	case PresetBiomeBlend:
		warped := NewDomainWarp(NewPerlin(seed+4), NewPerlin(seed+5), 6.0)
		return &LayeredGenerator{Layers: []Layer{
			{Sampler: warped, Op: CombineAdd, Weight: 1.0},
		}}
	case PresetDetailTexture:
		detail := NewCubic(seed + 6)
		return &LayeredGenerator{Layers: []Layer{
			{Sampler: detail, Op: CombineAdd, Weight: 0.3},
		}}
	}
	return &LayeredGenerator{}
}
