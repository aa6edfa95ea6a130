package mesh

import (
	"math"

	"voxelengine/internal/chunk"
	"voxelengine/internal/voxel"
)

// RaycastResult is the outcome of a voxel DDA raycast.
type RaycastResult struct {
	Hit      bool
	Voxel    voxel.Voxel
	Position [3]int32 // coordinate of the hit voxel (chunk-local for RaycastDDA, world for RaycastWorld)
	Adjacent [3]int32 // coordinate of the empty voxel just before the hit, in the same frame
	Distance float64
}

// RaycastDDA steps a ray through a chunk's voxel grid using the standard
// 3D digital differential analyzer (DDA): at each step it advances along
// whichever axis has the smallest accumulated side-distance, guaranteeing
// every traversed voxel cell is visited exactly once. This replaces the
// teacher's fixed-step marching raycast
// (dantero-ps-mini-mc-go/internal/physics/raycast.go's stepSize=0.02 loop)
// with the exact algorithm spec.md requires, while keeping that file's
// RaycastResult shape (hit/adjacent/distance) as the return-value
// convention.
func RaycastDDA(c *chunk.Chunk, opaque func(voxel.Voxel) bool, origin [3]float64, dir [3]float64, maxDistance float64) RaycastResult {
	s := sampler{c: c}
	return ddaWalk(s.at, opaque, origin, dir, maxDistance)
}

// RaycastWorld runs the same DDA walk against a caller-supplied world-space
// voxel lookup, letting the grid façade cast rays across chunk boundaries
// without going through a single chunk's neighbor-linked sampler.
func RaycastWorld(at func(x, y, z int32) voxel.Voxel, opaque func(voxel.Voxel) bool, origin [3]float64, dir [3]float64, maxDistance float64) RaycastResult {
	return ddaWalk(at, opaque, origin, dir, maxDistance)
}

func ddaWalk(at func(x, y, z int32) voxel.Voxel, opaque func(voxel.Voxel) bool, origin [3]float64, dir [3]float64, maxDistance float64) RaycastResult {
	dir = normalize(dir)

	mapX := int32(math.Floor(origin[0]))
	mapY := int32(math.Floor(origin[1]))
	mapZ := int32(math.Floor(origin[2]))

	var deltaDist [3]float64
	for i := 0; i < 3; i++ {
		d := indexDir(dir, i)
		if d == 0 {
			deltaDist[i] = math.MaxFloat64
		} else {
			deltaDist[i] = math.Abs(1 / d)
		}
	}

	var step [3]int32
	var sideDist [3]float64
	origins := [3]float64{origin[0], origin[1], origin[2]}
	maps := [3]int32{mapX, mapY, mapZ}

	for i := 0; i < 3; i++ {
		d := indexDir(dir, i)
		if d < 0 {
			step[i] = -1
			sideDist[i] = (origins[i] - float64(maps[i])) * deltaDist[i]
		} else {
			step[i] = 1
			sideDist[i] = (float64(maps[i]) + 1 - origins[i]) * deltaDist[i]
		}
	}

	var traveled float64

	for traveled < maxDistance {
		adjacent := maps

		axis := 0
		if sideDist[1] < sideDist[axis] {
			axis = 1
		}
		if sideDist[2] < sideDist[axis] {
			axis = 2
		}

		maps[axis] += step[axis]
		traveled = sideDist[axis]
		sideDist[axis] += deltaDist[axis]

		here := at(maps[0], maps[1], maps[2])
		if opaque(here) {
			return RaycastResult{
				Hit:      true,
				Voxel:    here,
				Position: maps,
				Adjacent: adjacent,
				Distance: traveled,
			}
		}
	}
	return RaycastResult{Hit: false, Distance: maxDistance}
}

func indexDir(v [3]float64, i int) float64 { return v[i] }
