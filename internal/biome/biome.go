// Package biome implements the biome registry and influence-blending logic
// that selects surface materials and feature eligibility per-column.
// Grounded on dantero-ps-mini-mc-go/internal/world/biome.go's Biome struct
// and height-threshold selection, generalized from a single winner-takes-
// all lookup into weighted influence blending across several candidate
// biomes as spec.md's BiomeInfo requires.
package biome

import "voxelengine/internal/voxel"

// Info describes one registered biome: its id, climate axes, and the
// voxel types it contributes at the surface and as filler beneath it.
type Info struct {
	ID          int
	Name        string
	Temperature float64 // normalized [0,1] axis center
	Moisture    float64 // normalized [0,1] axis center
	MinHeight   int32
	MaxHeight   int32
	SurfaceType uint16
	FillerType  uint16
}

// Registry is a lock-free (single-writer-at-setup) map of biome id to Info,
// mirroring the teacher's package-level Biomes slice but keyed for O(1)
// lookup and duplicate-registration detection.
type Registry struct {
	biomes map[int]Info
	order  []int
}

func NewRegistry() *Registry {
	return &Registry{biomes: make(map[int]Info)}
}

// Register adds a biome, returning an error if its id is already taken —
// callers should log a warning and keep the first registration per
// spec §7's duplicate-registration rule.
func (r *Registry) Register(b Info) error {
	if _, exists := r.biomes[b.ID]; exists {
		return &DuplicateError{ID: b.ID}
	}
	r.biomes[b.ID] = b
	r.order = append(r.order, b.ID)
	return nil
}

// DuplicateError reports an attempt to re-register a biome id.
type DuplicateError struct{ ID int }

func (e *DuplicateError) Error() string {
	return "biome: duplicate registration for id"
}

// Get returns the biome registered under id.
func (r *Registry) Get(id int) (Info, bool) {
	b, ok := r.biomes[id]
	return b, ok
}

// All returns every registered biome in registration order.
func (r *Registry) All() []Info {
	out := make([]Info, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.biomes[id])
	}
	return out
}

// Influence is one biome's blended weight at a sample point.
type Influence struct {
	Biome  Info
	Weight float64
}

// Blend computes each registered biome's influence at a (temperature,
// moisture, height) sample using axis-weight products: a biome whose
// temperature/moisture/height windows all contain the sample contributes
// weight proportional to how centered the sample is within each window;
// biomes outside any window contribute zero. Weights are normalized to sum
// to 1 over the contributing set, or returned empty if no biome matches —
// callers then fall back to a default biome, never panicking on an empty
// blend.
func (r *Registry) Blend(temperature, moisture float64, height int32) []Influence {
	var out []Influence
	var total float64
	for _, id := range r.order {
		b := r.biomes[id]
		if height < b.MinHeight || height > b.MaxHeight {
			continue
		}
		tw := axisWeight(temperature, b.Temperature)
		mw := axisWeight(moisture, b.Moisture)
		w := tw * mw
		if w <= 0 {
			continue
		}
		out = append(out, Influence{Biome: b, Weight: w})
		total += w
	}
	if total == 0 {
		return nil
	}
	for i := range out {
		out[i].Weight /= total
	}
	return out
}

// axisWeight returns a triangular falloff centered on target: 1 at the
// center, 0 at distance >= 0.5 along a normalized [0,1] axis.
func axisWeight(sample, target float64) float64 {
	d := sample - target
	if d < 0 {
		d = -d
	}
	if d >= 0.5 {
		return 0
	}
	return 1 - d*2
}

// SurfaceVoxel picks the winning biome's surface material by highest
// blended weight, falling back to a provided default type if the blend is
// empty.
func SurfaceVoxel(influences []Influence, fallback uint16) voxel.Voxel {
	if len(influences) == 0 {
		return voxel.Voxel{Type: fallback}
	}
	best := influences[0]
	for _, inf := range influences[1:] {
		if inf.Weight > best.Weight {
			best = inf
		}
	}
	return voxel.Voxel{Type: best.Biome.SurfaceType}
}
