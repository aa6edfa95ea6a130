package mesh

import (
	"math"
	"math/rand"

	"voxelengine/internal/chunk"
	"voxelengine/internal/voxel"
)

// AORaySamples/AORayLength/AORayBias are the hemisphere-sampling constants
// ComputeAO defaults to, bit-exact with
// original_source/src/Voxel/ChunkMesh.cpp's calculateAmbientOcclusion
// (AO_RAY_SAMPLES/AO_RAY_LENGTH/AO_RAY_BIAS).
const (
	AORaySamples = 16
	AORayLength  = 8.0
	AORayBias    = 0.05
)

// primaryLightDir is the fixed "sun" direction calculateAmbientOcclusion
// biases occlusion against (normalize(0.5, 1.0, 0.3) in the original).
var primaryLightDir = normalize([3]float64{0.5, 1.0, 0.3})

// ComputeAO estimates ambient occlusion at a surface point by casting a
// cosine-weighted set of rays over the hemisphere above the face normal,
// reproducing original_source/src/Voxel/ChunkMesh.cpp's
// calculateAmbientOcclusion: one ray is replaced by a direction biased
// toward the primary light, each hit contributes a squared
// distance-falloff weight rather than a flat count, and the resulting
// ambient term is blended 70/30 with a directional (normal·light) factor
// before being inverted into a 0-255 brightness value. This replaces the
// teacher's flat per-face brightness constants (greedy.go's
// Top=255/Bottom=128/Sides=204), which remain available as the fast-path
// fallback via FlatBrightness when sampling is disabled for performance.
func ComputeAO(c *chunk.Chunk, opaque func(voxel.Voxel) bool, origin [3]float64, normal [3]float64, samples int, maxDistance float64, rng *rand.Rand) uint8 {
	if samples <= 0 {
		samples = AORaySamples
	}
	if maxDistance <= 0 {
		maxDistance = AORayLength
	}
	rayOrigin := [3]float64{
		origin[0] + normal[0]*AORayBias,
		origin[1] + normal[1]*AORayBias,
		origin[2] + normal[2]*AORayBias,
	}
	tangent, bitangent := orthonormalBasis(normal)

	biasedLight := normalize([3]float64{
		primaryLightDir[0] + normal[0]*0.5,
		primaryLightDir[1] + normal[1]*0.5,
		primaryLightDir[2] + normal[2]*0.5,
	})

	var occlusion float64
	hitCount := 0
	stride := int(math.Ceil(math.Sqrt(float64(samples))))
	for i := 0; i < samples; i++ {
		var dir [3]float64
		if i == 0 {
			// Replace the first hemisphere sample with the light-biased
			// direction, matching rayDirs[0] = biasedLightDir upstream.
			dir = biasedLight
		} else {
			// stratified hemisphere sample: jitter within a stride x stride
			// grid cell in (u,v) space, then cosine-weight toward the normal.
			cellU := float64(i%stride) / float64(stride)
			cellV := float64(i/stride) / float64(stride)
			u := (cellU + rng.Float64()/float64(stride)) * 2 * math.Pi
			v := cellV + rng.Float64()/float64(stride)
			r := math.Sqrt(v)
			theta := u

			dx := r * math.Cos(theta)
			dy := r * math.Sin(theta)
			dz := math.Sqrt(max0(1 - v))

			dir = [3]float64{
				tangent[0]*dx + bitangent[0]*dy + normal[0]*dz,
				tangent[1]*dx + bitangent[1]*dy + normal[1]*dz,
				tangent[2]*dx + bitangent[2]*dy + normal[2]*dz,
			}
		}

		res := RaycastDDA(c, opaque, rayOrigin, dir, maxDistance)
		if res.Hit {
			weight := 1.0 - res.Distance/maxDistance
			occlusion += weight * weight
			hitCount++
		}
	}

	if hitCount == 0 {
		return 255
	}
	occlusion /= float64(samples)

	nDotL := math.Max(0, dot(normal, primaryLightDir))
	directional := 1.0 - nDotL*0.5
	occlusion = lerp(occlusion, directional, 0.3)

	value := occlusion * 255.0
	if value < 0 {
		value = 0
	}
	if value > 255 {
		value = 255
	}
	brightness := 255.0 - value
	return uint8(brightness)
}

func dot(a, b [3]float64) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func orthonormalBasis(n [3]float64) (t, b [3]float64) {
	var up [3]float64
	if math.Abs(n[1]) < 0.99 {
		up = [3]float64{0, 1, 0}
	} else {
		up = [3]float64{1, 0, 0}
	}
	t = cross(up, n)
	t = normalize(t)
	b = cross(n, t)
	return t, b
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize(v [3]float64) [3]float64 {
	l := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l == 0 {
		return v
	}
	return [3]float64{v[0] / l, v[1] / l, v[2] / l}
}

// FlatBrightness reproduces the teacher's constant per-face brightness
// values, used as a fast-path fallback when full AO sampling is disabled.
func FlatBrightness(f int) uint8 {
	switch f {
	case int(voxel.NeighborPosY):
		return 255
	case int(voxel.NeighborNegY):
		return 128
	default:
		return 204
	}
}
