// Package distribution controls how candidate placement points are
// scattered within a chunk column: named point patterns plus density
// modifiers that bias where a pattern produces points. The per-chunk
// deterministic PRNG seeding reproduces the original implementation's
// chunk-seed fold bit-for-bit (original_source/src/Voxel/DistributionControl.cpp,
// every Generate* method: chunkSeed = seed; chunkSeed = chunkSeed*73856093 +
// x*19349663; chunkSeed = chunkSeed*73856093 + y*83492791; chunkSeed =
// chunkSeed*73856093 + z*25982993), since spec.md's magic-number policy
// calls these four primes out by name as bit-exact and must-preserve.
package distribution

import (
	"math"
	"math/rand"

	"voxelengine/internal/voxel"
)

// Pattern names a point-scattering strategy.
type Pattern int

const (
	PatternUniform Pattern = iota
	PatternClustered
	PatternGradient
	PatternStratified
	PatternVoronoi
	PatternBlueNoise
	PatternFibonacci
	PatternCustom
)

// Chunk-seed fold primes, bit-exact per spec.md's magic-number policy and
// original_source/src/Voxel/DistributionControl.cpp.
const (
	chunkSeedPrimeMul = 73856093
	chunkSeedPrimeX   = 19349663
	chunkSeedPrimeY   = 83492791
	chunkSeedPrimeZ   = 25982993
)

// ChunkRand returns a deterministic PRNG seeded from a chunk coordinate and
// a world seed. The same (coord, worldSeed) pair always yields the same
// point sequence. The fold is computed in wrapping uint32 arithmetic to
// match the original implementation's uint32_t chunkSeed exactly.
func ChunkRand(coord voxel.ChunkCoord, worldSeed int64) *rand.Rand {
	seed := uint32(worldSeed)
	seed = seed*chunkSeedPrimeMul + uint32(coord.X)*chunkSeedPrimeX
	seed = seed*chunkSeedPrimeMul + uint32(coord.Y)*chunkSeedPrimeY
	seed = seed*chunkSeedPrimeMul + uint32(coord.Z)*chunkSeedPrimeZ
	return rand.New(rand.NewSource(int64(seed)))
}

// Point2D is a candidate placement location within a chunk column, in
// local [0, size) coordinates.
type Point2D struct {
	X, Z float64
}

// Generate scatters count candidate points across a size x size column
// using the named pattern, seeded by rng.
func Generate(pattern Pattern, rng *rand.Rand, size float64, count int) []Point2D {
	switch pattern {
	case PatternClustered:
		return clustered(rng, size, count)
	case PatternGradient:
		return gradient(rng, size, count)
	case PatternStratified:
		return stratified(rng, size, count)
	case PatternVoronoi:
		return voronoi(rng, size, count)
	case PatternBlueNoise:
		return blueNoise(rng, size, count)
	case PatternFibonacci:
		return fibonacci(size, count)
	default:
		return uniform(rng, size, count)
	}
}

// voronoi generates Voronoi cell-center candidates. The original
// implementation (original_source/src/Voxel/DistributionControl.cpp's
// generatePointsVoronoi) documents itself as a deliberate simplification —
// "generate random points that will be used as Voronoi cell centers" — and
// does not relax them; this mirrors that exactly rather than inventing a
// Lloyd relaxation pass the reference implementation itself skips.
func voronoi(rng *rand.Rand, size float64, count int) []Point2D {
	return uniform(rng, size, count)
}

func uniform(rng *rand.Rand, size float64, count int) []Point2D {
	pts := make([]Point2D, count)
	for i := range pts {
		pts[i] = Point2D{X: rng.Float64() * size, Z: rng.Float64() * size}
	}
	return pts
}

// clustered picks a handful of cluster centers, then scatters points
// around them with a gaussian-ish falloff (sum of two uniforms).
func clustered(rng *rand.Rand, size float64, count int) []Point2D {
	numClusters := max(1, count/6)
	centers := make([]Point2D, numClusters)
	for i := range centers {
		centers[i] = Point2D{X: rng.Float64() * size, Z: rng.Float64() * size}
	}
	pts := make([]Point2D, count)
	for i := range pts {
		c := centers[rng.Intn(numClusters)]
		spread := size * 0.1
		dx := (rng.Float64() + rng.Float64() - 1) * spread
		dz := (rng.Float64() + rng.Float64() - 1) * spread
		pts[i] = Point2D{X: clamp(c.X+dx, 0, size), Z: clamp(c.Z+dz, 0, size)}
	}
	return pts
}

// gradient biases point density toward one edge of the column (x=0), for
// terrain features that should thin out across a transition zone.
func gradient(rng *rand.Rand, size float64, count int) []Point2D {
	pts := make([]Point2D, 0, count)
	for attempts := 0; len(pts) < count; attempts++ {
		if attempts >= count*4 {
			break // avoid pathological spin when density is near zero
		}
		x := rng.Float64() * size
		z := rng.Float64() * size
		density := 1 - x/size
		if rng.Float64() < density {
			pts = append(pts, Point2D{X: x, Z: z})
		}
	}
	return pts
}

// stratified divides the column into a grid of cells and places one
// jittered point per cell, avoiding the large empty gaps pure uniform
// sampling can produce.
func stratified(rng *rand.Rand, size float64, count int) []Point2D {
	cellsPerAxis := int(math.Ceil(math.Sqrt(float64(count))))
	if cellsPerAxis < 1 {
		cellsPerAxis = 1
	}
	cellSize := size / float64(cellsPerAxis)
	var pts []Point2D
	for gz := 0; gz < cellsPerAxis && len(pts) < count; gz++ {
		for gx := 0; gx < cellsPerAxis && len(pts) < count; gx++ {
			jx := float64(gx)*cellSize + rng.Float64()*cellSize
			jz := float64(gz)*cellSize + rng.Float64()*cellSize
			pts = append(pts, Point2D{X: jx, Z: jz})
		}
	}
	return pts
}

// blueNoise uses rejection sampling (Bridson-lite: no spatial grid
// acceleration, fine at chunk-column scale) to produce points with a
// minimum mutual separation.
func blueNoise(rng *rand.Rand, size float64, count int) []Point2D {
	minDist := size / (math.Sqrt(float64(count)) * 1.5)
	var pts []Point2D
	for attempts := 0; attempts < count*30 && len(pts) < count; attempts++ {
		cand := Point2D{X: rng.Float64() * size, Z: rng.Float64() * size}
		ok := true
		for _, p := range pts {
			dx, dz := cand.X-p.X, cand.Z-p.Z
			if dx*dx+dz*dz < minDist*minDist {
				ok = false
				break
			}
		}
		if ok {
			pts = append(pts, cand)
		}
	}
	return pts
}

// fibonacci places points along a golden-angle spiral, giving deterministic
// (rng-independent) even coverage — used for decorative scatter where
// exact repeatability across regenerations matters more than randomness.
func fibonacci(size float64, count int) []Point2D {
	const goldenAngle = math.Pi * (3 - 2.2360679774997896) // pi*(3-sqrt(5))
	pts := make([]Point2D, count)
	center := size / 2
	for i := range pts {
		r := center * math.Sqrt(float64(i)/float64(max(count-1, 1)))
		theta := float64(i) * goldenAngle
		pts[i] = Point2D{X: center + r*math.Cos(theta), Z: center + r*math.Sin(theta)}
	}
	return pts
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// DensityModifier biases a base density value at a sample point, used to
// shape where features concentrate within a region (a spherical vein, an
// attractor cluster, a linear gradient across a biome transition).
type DensityModifier func(x, y, z float64) float64

// Spherical returns a modifier boosting density within radius of center,
// falling off to zero at the boundary.
func Spherical(center [3]float64, radius, strength float64) DensityModifier {
	return func(x, y, z float64) float64 {
		dx, dy, dz := x-center[0], y-center[1], z-center[2]
		d := math.Sqrt(dx*dx + dy*dy + dz*dz)
		if d >= radius {
			return 0
		}
		return strength * (1 - d/radius)
	}
}

// AttractorCluster returns a modifier that sums the pull of several point
// attractors, all sharing the same radius and strength (for multi-vein ore
// clustering).
func AttractorCluster(attractors [][3]float64, radius, strength float64) DensityModifier {
	mods := make([]DensityModifier, len(attractors))
	for i, a := range attractors {
		mods[i] = Spherical(a, radius, strength)
	}
	return func(x, y, z float64) float64 {
		var sum float64
		for _, m := range mods {
			sum += m(x, y, z)
		}
		return sum
	}
}

// LinearGradient returns a modifier that varies linearly along axis
// direction dir (normalized) between from and to strengths over distance
// span, starting at origin.
func LinearGradient(origin, dir [3]float64, span, from, to float64) DensityModifier {
	return func(x, y, z float64) float64 {
		dx, dy, dz := x-origin[0], y-origin[1], z-origin[2]
		t := (dx*dir[0] + dy*dir[1] + dz*dir[2]) / span
		t = clamp(t, 0, 1)
		return from + (to-from)*t
	}
}
