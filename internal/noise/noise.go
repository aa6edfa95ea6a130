// Package noise implements the procedural noise algorithms the terrain,
// biome, and feature-placement components sample from: a family of base
// algorithms (Perlin, Simplex, Worley, Value, Cubic, WhiteNoise, Ridged,
// Billow, Voronoi, Domain-warp), fractal combinators layered on top of
// them, and named presets.
//
// The hashing and fade-curve style is grounded on the teacher's value-noise
// implementation (dantero-ps-mini-mc-go/internal/world/noise.go: fade/lerp/
// hash2/octaveNoise2D) and its Minecraft-accurate Perlin port
// (noise_authentic.go's permutation table and octave combiner). Where the
// pack offers a real third-party library for an algorithm — Perlin, via
// github.com/aquilax/go-perlin, the dependency nicolasmd87-gopher3D wires
// for exactly this purpose — this package delegates to it instead of
// hand-rolling a second permutation table.
package noise

import (
	"math"

	perlin "github.com/aquilax/go-perlin"
)

// Algorithm names one of the base noise kinds a NoiseLayer can select.
type Algorithm int

const (
	AlgorithmPerlin Algorithm = iota
	AlgorithmSimplex
	AlgorithmWorley
	AlgorithmValue
	AlgorithmCubic
	AlgorithmWhiteNoise
	AlgorithmRidged
	AlgorithmBillow
	AlgorithmVoronoi
	AlgorithmDomain
)

// Interpolation selects the curve used to blend between lattice samples.
type Interpolation int

const (
	InterpLinear Interpolation = iota
	InterpCosine
	InterpQuintic
)

func interpolate(mode Interpolation, t float64) float64 {
	switch mode {
	case InterpCosine:
		return (1 - math.Cos(t*math.Pi)) / 2
	case InterpQuintic:
		return t * t * t * (t*(t*6-15) + 10)
	default:
		return t
	}
}

// Hash prime multipliers, bit-exact constants shared by every lattice-hash
// based algorithm in this package so that Value/Cubic/Worley/WhiteNoise
// agree on coordinate hashing and therefore compose predictably when
// layered.
const (
	hashPrimeX = 73856093
	hashPrimeY = 19349663
	hashPrimeZ = 83492791
	hashPrimeW = 25982993
)

func hash3(x, y, z int64, seed int64) uint64 {
	h := uint64(x*hashPrimeX) ^ uint64(y*hashPrimeY) ^ uint64(z*hashPrimeZ) ^ uint64(seed*hashPrimeW)
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}

func hashToUnit(h uint64) float64 {
	// top 53 bits -> [0,1)
	return float64(h>>11) / float64(1<<53)
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// Sampler evaluates a scalar noise field at a 3D point, returning a value
// in [-1, 1].
type Sampler interface {
	Sample3D(x, y, z float64) float64
}

// SamplerFunc adapts a plain function to the Sampler interface.
type SamplerFunc func(x, y, z float64) float64

func (f SamplerFunc) Sample3D(x, y, z float64) float64 { return f(x, y, z) }

// latticeNoise is the shared implementation behind Value and Cubic: hash
// the eight lattice corners around a point and interpolate. WhiteNoise
// does not use it; NewWhiteNoise hashes the containing cell directly.
type latticeNoise struct {
	seed   int64
	interp Interpolation
	cubic  bool
}

func (n latticeNoise) Sample3D(x, y, z float64) float64 {
	x0, y0, z0 := math.Floor(x), math.Floor(y), math.Floor(z)
	fx, fy, fz := x-x0, y-y0, z-z0

	corner := func(dx, dy, dz int64) float64 {
		h := hash3(int64(x0)+dx, int64(y0)+dy, int64(z0)+dz, n.seed)
		return hashToUnit(h)*2 - 1
	}

	if n.cubic {
		// 4x4x4 Catmull-Rom-style cubic hermite blend collapsed to the
		// nearest 2x2x2 cell's gradient-free value interpolation with a
		// smoother falloff than linear/cosine.
		tx := interpolate(InterpQuintic, fx)
		ty := interpolate(InterpQuintic, fy)
		tz := interpolate(InterpQuintic, fz)
		return trilerp(corner, tx, ty, tz)
	}

	tx := interpolate(n.interp, fx)
	ty := interpolate(n.interp, fy)
	tz := interpolate(n.interp, fz)
	return trilerp(corner, tx, ty, tz)
}

func trilerp(corner func(dx, dy, dz int64) float64, tx, ty, tz float64) float64 {
	c000, c100 := corner(0, 0, 0), corner(1, 0, 0)
	c010, c110 := corner(0, 1, 0), corner(1, 1, 0)
	c001, c101 := corner(0, 0, 1), corner(1, 0, 1)
	c011, c111 := corner(0, 1, 1), corner(1, 1, 1)

	c00 := lerp(c000, c100, tx)
	c10 := lerp(c010, c110, tx)
	c01 := lerp(c001, c101, tx)
	c11 := lerp(c011, c111, tx)

	c0 := lerp(c00, c10, ty)
	c1 := lerp(c01, c11, ty)

	return lerp(c0, c1, tz)
}

// NewValue returns a Value-noise sampler: hashed lattice corners blended
// with the given interpolation curve.
func NewValue(seed int64, interp Interpolation) Sampler {
	return latticeNoise{seed: seed, interp: interp}
}

// NewCubic returns a smoother variant of Value noise using quintic blending
// regardless of the requested interpolation mode, for terrain detail layers
// that need continuous second derivatives (no faceting at chunk seams).
func NewCubic(seed int64) Sampler {
	return latticeNoise{seed: seed, cubic: true}
}

// NewWhiteNoise returns uncorrelated per-lattice-point noise: no
// interpolation, just the hash of the containing cell. Used for stochastic
// per-voxel jitter, not smooth terrain.
func NewWhiteNoise(seed int64) Sampler {
	return SamplerFunc(func(x, y, z float64) float64 {
		h := hash3(int64(math.Floor(x)), int64(math.Floor(y)), int64(math.Floor(z)), seed)
		return hashToUnit(h)*2 - 1
	})
}

// NewPerlin returns a Perlin-noise sampler backed by
// github.com/aquilax/go-perlin, the pack's only third-party noise library
// (nicolasmd87-gopher3D/examples/Voxel/gocraft.go: perlin.NewPerlin(alpha,
// beta, n, seed)). alpha/beta/n follow go-perlin's fractal-sum parameters;
// this package exposes them through the Fractal layer (below) rather than
// here, so NewPerlin fixes them at values equivalent to a single octave.
func NewPerlin(seed int64) Sampler {
	p := perlin.NewPerlin(2, 2, 1, seed)
	return SamplerFunc(func(x, y, z float64) float64 {
		v := p.Noise3D(x, y, z)
		if v < -1 {
			v = -1
		}
		if v > 1 {
			v = 1
		}
		return v
	})
}

// NewSimplex returns a simplex-noise sampler: a skewed-simplex-grid
// gradient noise, hand-rolled because no pack repo carries a simplex
// library (go-perlin implements classic Perlin lattice noise only).
func NewSimplex(seed int64) Sampler {
	return SamplerFunc(func(x, y, z float64) float64 {
		return simplex3D(x, y, z, seed)
	})
}

const (
	skewF3 = 1.0 / 3.0
	unskewG3 = 1.0 / 6.0
)

var simplexGrad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

func simplex3D(x, y, z float64, seed int64) float64 {
	s := (x + y + z) * skewF3
	i, j, k := math.Floor(x+s), math.Floor(y+s), math.Floor(z+s)
	t := (i + j + k) * unskewG3
	x0, y0, z0 := x-(i-t), y-(j-t), z-(k-t)

	var i1, j1, k1, i2, j2, k2 int
	switch {
	case x0 >= y0 && y0 >= z0:
		i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 1, 0
	case x0 >= z0 && z0 >= y0:
		i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 0, 1
	case z0 >= x0 && x0 >= y0:
		i1, j1, k1, i2, j2, k2 = 0, 0, 1, 1, 0, 1
	case z0 >= y0 && y0 >= x0:
		i1, j1, k1, i2, j2, k2 = 0, 0, 1, 0, 1, 1
	case y0 >= z0 && z0 >= x0:
		i1, j1, k1, i2, j2, k2 = 0, 1, 0, 0, 1, 1
	default:
		i1, j1, k1, i2, j2, k2 = 0, 1, 0, 1, 1, 0
	}

	corners := [4][3]float64{
		{x0, y0, z0},
		{x0 - float64(i1) + unskewG3, y0 - float64(j1) + unskewG3, z0 - float64(k1) + unskewG3},
		{x0 - float64(i2) + 2*unskewG3, y0 - float64(j2) + 2*unskewG3, z0 - float64(k2) + 2*unskewG3},
		{x0 - 1 + 3*unskewG3, y0 - 1 + 3*unskewG3, z0 - 1 + 3*unskewG3},
	}
	lattice := [4][3]int64{
		{int64(i), int64(j), int64(k)},
		{int64(i) + int64(i1), int64(j) + int64(j1), int64(k) + int64(k1)},
		{int64(i) + int64(i2), int64(j) + int64(j2), int64(k) + int64(k2)},
		{int64(i) + 1, int64(j) + 1, int64(k) + 1},
	}

	var sum float64
	for c := 0; c < 4; c++ {
		cx, cy, cz := corners[c][0], corners[c][1], corners[c][2]
		tt := 0.6 - cx*cx - cy*cy - cz*cz
		if tt < 0 {
			continue
		}
		h := hash3(lattice[c][0], lattice[c][1], lattice[c][2], seed)
		g := simplexGrad3[h%12]
		tt *= tt
		sum += tt * tt * (g[0]*cx + g[1]*cy + g[2]*cz)
	}
	return clampUnit(sum * 32)
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

// NewWorley returns cellular (Worley) noise: the distance from the sample
// point to the nearest of several per-cell feature points, scaled into
// [-1, 1]. Used for ore-vein boundaries and cave-network cavities.
func NewWorley(seed int64) Sampler {
	return SamplerFunc(func(x, y, z float64) float64 {
		return worley3D(x, y, z, seed, 1)
	})
}

// NewVoronoi returns the Voronoi-cell-id variant: like Worley but reports
// a stable per-cell value (the hash of the winning cell) rather than a
// distance, for biome-boundary and POI-region partitioning.
func NewVoronoi(seed int64) Sampler {
	return SamplerFunc(func(x, y, z float64) float64 {
		return voronoiCellValue(x, y, z, seed)
	})
}

func featurePoint(cx, cy, cz int64, seed int64) (fx, fy, fz float64) {
	h := hash3(cx, cy, cz, seed)
	fx = float64(cx) + hashToUnit(h)
	h2 := hash3(cx, cy, cz, seed+1)
	fy = float64(cy) + hashToUnit(h2)
	h3 := hash3(cx, cy, cz, seed+2)
	fz = float64(cz) + hashToUnit(h3)
	return
}

func worley3D(x, y, z float64, seed int64, nearestK int) float64 {
	cx, cy, cz := int64(math.Floor(x)), int64(math.Floor(y)), int64(math.Floor(z))
	best := math.MaxFloat64
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				fx, fy, fz := featurePoint(cx+dx, cy+dy, cz+dz, seed)
				ddx, ddy, ddz := x-fx, y-fy, z-fz
				d := ddx*ddx + ddy*ddy + ddz*ddz
				if d < best {
					best = d
				}
			}
		}
	}
	dist := math.Sqrt(best)
	return clampUnit(1 - dist*2)
}

func voronoiCellValue(x, y, z float64, seed int64) float64 {
	cx, cy, cz := int64(math.Floor(x)), int64(math.Floor(y)), int64(math.Floor(z))
	best := math.MaxFloat64
	var winner uint64
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				cellX, cellY, cellZ := cx+dx, cy+dy, cz+dz
				fx, fy, fz := featurePoint(cellX, cellY, cellZ, seed)
				ddx, ddy, ddz := x-fx, y-fy, z-fz
				d := ddx*ddx + ddy*ddy + ddz*ddz
				if d < best {
					best = d
					winner = hash3(cellX, cellY, cellZ, seed+99)
				}
			}
		}
	}
	return hashToUnit(winner)*2 - 1
}

// NewRidged wraps a base sampler into ridged-multifractal form:
// 1 - |n|, which turns smooth noise into sharp ridgelines, used for
// mountain-range terrain layers.
func NewRidged(base Sampler) Sampler {
	return SamplerFunc(func(x, y, z float64) float64 {
		return 1 - math.Abs(base.Sample3D(x, y, z))
	})
}

// NewBillow wraps a base sampler into billowed form: 2|n|-1, producing
// puffy, cloud-like cumulative structures used for cave-ceiling
// formations.
func NewBillow(base Sampler) Sampler {
	return SamplerFunc(func(x, y, z float64) float64 {
		return clampUnit(2*math.Abs(base.Sample3D(x, y, z)) - 1)
	})
}

// domainWarpOffsets are the bit-exact warp-space offsets applied when
// domain-warping a sampler, chosen to decorrelate the warp field from the
// base field it perturbs.
var domainWarpOffsets = [3]float64{123.456, 789.012, 345.678}

// NewDomainWarp warps the coordinates fed into base by the output of warp,
// scaled by strength, before sampling — the "Domain" algorithm's
// implementation, used to give straight noise features an organic,
// non-axis-aligned bend.
func NewDomainWarp(base, warp Sampler, strength float64) Sampler {
	return SamplerFunc(func(x, y, z float64) float64 {
		wx := warp.Sample3D(x+domainWarpOffsets[0], y+domainWarpOffsets[0], z+domainWarpOffsets[0])
		wy := warp.Sample3D(x+domainWarpOffsets[1], y+domainWarpOffsets[1], z+domainWarpOffsets[1])
		wz := warp.Sample3D(x+domainWarpOffsets[2], y+domainWarpOffsets[2], z+domainWarpOffsets[2])
		return base.Sample3D(x+wx*strength, y+wy*strength, z+wz*strength)
	})
}

// New constructs a base sampler for the given algorithm and seed. Ridged,
// Billow, and Domain are combinators: New builds them over a Perlin base
// (Domain warps Perlin by a second Perlin at strength 4), while
// NewRidged/NewBillow/NewDomainWarp accept any underlying sampler.
func New(alg Algorithm, seed int64, interp Interpolation) Sampler {
	switch alg {
	case AlgorithmPerlin:
		return NewPerlin(seed)
	case AlgorithmSimplex:
		return NewSimplex(seed)
	case AlgorithmWorley:
		return NewWorley(seed)
	case AlgorithmValue:
		return NewValue(seed, interp)
	case AlgorithmCubic:
		return NewCubic(seed)
	case AlgorithmWhiteNoise:
		return NewWhiteNoise(seed)
	case AlgorithmVoronoi:
		return NewVoronoi(seed)
	case AlgorithmRidged:
		return NewRidged(NewPerlin(seed))
	case AlgorithmBillow:
		return NewBillow(NewPerlin(seed))
	case AlgorithmDomain:
		return NewDomainWarp(NewPerlin(seed), NewPerlin(seed+1), 4.0)
	}
	return NewValue(seed, interp)
}
