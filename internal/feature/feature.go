// Package feature implements point-of-interest and decorative feature
// placement: type-erased generator closures gated by tagged constraints.
// The closure-based generator registry is grounded on the teacher's
// TerrainGenerator interface pattern
// (dantero-ps-mini-mc-go/internal/world/generator.go/density.go both
// satisfy one shared interface consumed by ChunkStreamer), generalized
// from "one generator per world" to "many named feature generators,
// each independently constraint-gated".
package feature

import (
	"voxelengine/internal/chunk"
	"voxelengine/internal/external"
	"voxelengine/internal/voxel"
)

// ConstraintKind tags the kind of eligibility test a Constraint performs,
// so the placement pass can report which check rejected a candidate site
// without string-matching messages.
type ConstraintKind int

const (
	ConstraintElevation ConstraintKind = iota
	ConstraintDistance
	ConstraintBiomeType
	ConstraintSlopeAngle
	ConstraintNearWater
	ConstraintFarFromWater
	ConstraintNearFeature
	ConstraintFarFromFeature
	ConstraintNoiseThreshold
	ConstraintDensity
	ConstraintCustom
)

// Site is the candidate location and ambient data a Constraint evaluates.
type Site struct {
	Position    external.Vec3
	Elevation   float64
	BiomeID     int
	Slope       float64
	NearestWater float64 // distance to nearest water voxel; +Inf if unknown
	NoiseValue  float64
	Density     float64
	// Deps carries optional precomputed data (nearby feature distances,
	// biome maps) a constraint may need. A constraint whose required key
	// is absent defaults to accepting the site rather than rejecting it —
	// spec's "default-accept on missing dependency" rule, since refusing
	// placement outright for infrastructure the orchestrator simply hasn't
	// wired yet would silently starve world generation.
	Deps map[string]float64
}

// Constraint is one named, tagged eligibility test.
type Constraint struct {
	Kind ConstraintKind
	// Check returns true if site is eligible. Check may consult site.Deps
	// and must default to true if a referenced dependency key is absent.
	Check func(site Site) bool
}

// Evaluate runs every constraint against site, short-circuiting on the
// first rejection. An empty constraint list always accepts.
func Evaluate(constraints []Constraint, site Site) bool {
	for _, c := range constraints {
		if !c.Check(site) {
			return false
		}
	}
	return true
}

// Elevation builds an elevation-window constraint.
func Elevation(min, max float64) Constraint {
	return Constraint{Kind: ConstraintElevation, Check: func(s Site) bool {
		return s.Elevation >= min && s.Elevation <= max
	}}
}

// BiomeType restricts placement to a set of eligible biome ids.
func BiomeType(ids ...int) Constraint {
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return Constraint{Kind: ConstraintBiomeType, Check: func(s Site) bool {
		return set[s.BiomeID]
	}}
}

// SlopeAngle restricts placement to sites with slope at or below maxDegrees.
func SlopeAngle(maxDegrees float64) Constraint {
	return Constraint{Kind: ConstraintSlopeAngle, Check: func(s Site) bool {
		return s.Slope <= maxDegrees
	}}
}

// NearWater requires the site be within maxDistance of water.
func NearWater(maxDistance float64) Constraint {
	return Constraint{Kind: ConstraintNearWater, Check: func(s Site) bool {
		return s.NearestWater <= maxDistance
	}}
}

// FarFromWater requires the site be at least minDistance from water.
func FarFromWater(minDistance float64) Constraint {
	return Constraint{Kind: ConstraintFarFromWater, Check: func(s Site) bool {
		return s.NearestWater >= minDistance
	}}
}

// NoiseThreshold requires the site's sampled noise value be at or above threshold.
func NoiseThreshold(threshold float64) Constraint {
	return Constraint{Kind: ConstraintNoiseThreshold, Check: func(s Site) bool {
		return s.NoiseValue >= threshold
	}}
}

// Density requires the site's density value be at or above threshold.
func Density(threshold float64) Constraint {
	return Constraint{Kind: ConstraintDensity, Check: func(s Site) bool {
		return s.Density >= threshold
	}}
}

// NearFeature/FarFromFeature read a named distance out of site.Deps,
// defaulting to accept (true) when the key is absent — the orchestrator
// may not have computed inter-feature distances for every feature type.
func NearFeature(key string, maxDistance float64) Constraint {
	return Constraint{Kind: ConstraintNearFeature, Check: func(s Site) bool {
		d, ok := s.Deps[key]
		if !ok {
			return true
		}
		return d <= maxDistance
	}}
}

func FarFromFeature(key string, minDistance float64) Constraint {
	return Constraint{Kind: ConstraintFarFromFeature, Check: func(s Site) bool {
		d, ok := s.Deps[key]
		if !ok {
			return true
		}
		return d >= minDistance
	}}
}

// Custom wraps an arbitrary predicate as a tagged constraint, for
// feature-specific logic that doesn't fit the named constraint kinds.
func Custom(check func(Site) bool) Constraint {
	return Constraint{Kind: ConstraintCustom, Check: check}
}

// Generator places voxels for one feature type at an eligible site. It is
// a type-erased closure (not an interface) so callers can build ad hoc
// generators (single tree, multi-block structure, scatter cluster)
// without a new named type per feature.
type Generator func(site Site, place func(offset external.Vec3, voxelType uint16))

// TypeInfo describes one registered feature type: its generator, gating
// constraints, and a human name for logs and save-file provenance.
type TypeInfo struct {
	Name        string
	Constraints []Constraint
	Generate    Generator
}

// Registry holds named feature types, preserving registration order so
// callers that iterate every type (the orchestrator's placement pass) see
// a stable, deterministic sequence run to run.
type Registry struct {
	types map[string]TypeInfo
	order []string
}

func NewRegistry() *Registry {
	return &Registry{types: make(map[string]TypeInfo)}
}

func (r *Registry) Register(t TypeInfo) {
	if _, exists := r.types[t.Name]; !exists {
		r.order = append(r.order, t.Name)
	}
	r.types[t.Name] = t
}

func (r *Registry) Get(name string) (TypeInfo, bool) {
	t, ok := r.types[name]
	return t, ok
}

// Names returns every registered feature type name in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// TryPlace evaluates t's constraints against site and, if eligible, invokes
// its generator through place. Returns whether placement occurred.
func TryPlace(t TypeInfo, site Site, place func(offset external.Vec3, voxelType uint16)) bool {
	if !Evaluate(t.Constraints, site) {
		return false
	}
	t.Generate(site, place)
	return true
}

// PointOfInterest records a placed feature's identity and location for the
// save format and for NearFeature/FarFromFeature distance lookups.
type PointOfInterest struct {
	TypeName string
	Position external.Vec3
}

// EvaluateSupport collapses floating solid spans shorter than minSpan
// voxels tall: a run of opaque voxels in a column with air both directly
// above and below it, not reaching the chunk floor, has nothing holding it
// up and is cleared to air. original_source has no equivalent (PixelCraft's
// voxel system treats every placed block as permanent, see
// original_source/src/Voxel/Chunk.cpp), so this pass is a pure enrichment
// grounded on firestar-voxel-world/chunk-server/internal/world/stability.go's
// column-support sweep; it runs only when
// genparams.GenerationParameters.EnableStructuralCollapse is set, off by
// default, so default terrain is unaffected.
func EvaluateSupport(c *chunk.Chunk, opaque func(voxel.Voxel) bool, minSpan int32) {
	s := c.Size
	for lz := int32(0); lz < s; lz++ {
		for lx := int32(0); lx < s; lx++ {
			spanStart := int32(-1)
			for ly := int32(0); ly <= s; ly++ {
				solid := ly < s && opaque(c.At(lx, ly, lz))
				if solid {
					if spanStart == -1 {
						spanStart = ly
					}
					continue
				}
				if spanStart == -1 {
					continue
				}
				span := ly - spanStart
				restsOnFloor := spanStart == 0
				if !restsOnFloor && span < minSpan {
					for y := spanStart; y < ly; y++ {
						c.Set(lx, y, lz, voxel.Voxel{})
					}
				}
				spanStart = -1
			}
		}
	}
}
