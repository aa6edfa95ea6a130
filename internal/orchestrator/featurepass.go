package orchestrator

import (
	"voxelengine/internal/chunk"
	"voxelengine/internal/distribution"
	"voxelengine/internal/external"
	"voxelengine/internal/feature"
	"voxelengine/internal/voxel"
)

// featuresPerChunk bounds how many candidate sites the distribution
// pattern scatters per chunk column, independent of feature type count —
// every registered feature type is evaluated against the same candidate
// set, each with its own constraints.
const featuresPerChunk = 8

// placeFeatures scatters candidate sites across the chunk column for each
// registered feature type and places one where eligible, writing voxels
// directly into c via local-coordinate offsets from the site.
func placeFeatures(ctx GenerationContext, c *chunk.Chunk, logger external.Logger) error {
	if ctx.Features == nil {
		return nil
	}
	rng := distribution.ChunkRand(ctx.Coord, ctx.Seed)
	points := distribution.Generate(ctx.Distribution, rng, float64(c.Size), featuresPerChunk)

	for _, name := range ctx.Features.Names() {
		t, ok := ctx.Features.Get(name)
		if !ok {
			continue
		}
		for _, pt := range points {
			lx, lz := int32(pt.X), int32(pt.Z)
			if lx < 0 || lx >= c.Size || lz < 0 || lz >= c.Size {
				continue
			}
			surfaceLY, ok := findSurface(c, lx, lz)
			if !ok {
				continue
			}
			wx, wy, wz := worldOf(ctx, lx, surfaceLY, lz)
			site := feature.Site{
				Position:  external.Vec3{X: float64(wx), Y: float64(wy), Z: float64(wz)},
				Elevation: float64(wy),
			}
			if ctx.Terrain != nil {
				site.NoiseValue = ctx.Terrain.Sample3D(float64(wx)*0.01, float64(wy)*0.01, float64(wz)*0.01)
			}
			feature.TryPlace(t, site, func(offset external.Vec3, voxelType uint16) {
				plx := lx + int32(offset.X)
				ply := surfaceLY + 1 + int32(offset.Y)
				plz := lz + int32(offset.Z)
				if plx < 0 || plx >= c.Size || ply < 0 || ply >= c.Size || plz < 0 || plz >= c.Size {
					return
				}
				c.Set(plx, ply, plz, voxel.Voxel{Type: voxelType})
			})
		}
	}

	if ctx.Params.EnableStructuralCollapse {
		feature.EvaluateSupport(c, opaqueVoxel, structuralCollapseMinSpan)
	}
	return nil
}

// structuralCollapseMinSpan is the shortest vertical span of solid voxels
// that survives feature.EvaluateSupport's floating-span check; anything
// shorter with air above and below and no connection to the chunk floor
// collapses.
const structuralCollapseMinSpan = 3

func opaqueVoxel(v voxel.Voxel) bool { return !v.IsAir() }
