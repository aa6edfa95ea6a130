package orchestrator

import (
	"voxelengine/internal/chunk"
	"voxelengine/internal/voxel"
)

// applyBiomes recolors each column's surface and the few voxels beneath it
// according to the blended biome influence at that column, replacing the
// terrain pass's single stone/water materials with biome-specific surface
// and filler types. Columns with no non-air voxel are skipped.
func applyBiomes(ctx GenerationContext, c *chunk.Chunk) error {
	if ctx.Biomes == nil {
		return nil
	}
	s := c.Size
	const fillerDepth = 3
	for lz := int32(0); lz < s; lz++ {
		for lx := int32(0); lx < s; lx++ {
			surfaceLY, ok := findSurface(c, lx, lz)
			if !ok {
				continue
			}
			wx, wy, wz := worldOf(ctx, lx, surfaceLY, lz)
			temperature := climateAxis(ctx, wx, wz, 4001)
			moisture := climateAxis(ctx, wx, wz, 9001)
			influences := ctx.Biomes.Blend(temperature, moisture, wy)
			if len(influences) == 0 {
				continue
			}
			best := influences[0]
			for _, inf := range influences[1:] {
				if inf.Weight > best.Weight {
					best = inf
				}
			}
			c.Set(lx, surfaceLY, lz, voxel.Voxel{Type: best.Biome.SurfaceType})
			for d := int32(1); d <= fillerDepth && surfaceLY-d >= 0; d++ {
				below := c.At(lx, surfaceLY-d, lz)
				if below.IsAir() {
					break
				}
				c.Set(lx, surfaceLY-d, lz, voxel.Voxel{Type: best.Biome.FillerType})
			}
		}
	}
	return nil
}

// findSurface returns the highest non-air local Y in column (lx, lz).
func findSurface(c *chunk.Chunk, lx, lz int32) (int32, bool) {
	for ly := c.Size - 1; ly >= 0; ly-- {
		if !c.At(lx, ly, lz).IsAir() {
			return ly, true
		}
	}
	return 0, false
}

// climateAxis derives a stable [0,1] climate value for a world column by
// sampling the terrain generator at a distinct low frequency and offset
// per axis (salt), folding its [-1,1] output into [0,1]. This keeps biome
// assignment deterministic and chunk-reentrant without a dedicated climate
// noise generator the orchestrator doesn't otherwise need.
func climateAxis(ctx GenerationContext, wx, wz int32, salt int64) float64 {
	if ctx.Terrain == nil {
		return 0.5
	}
	n := ctx.Terrain.Sample3D(float64(wx)*0.003+float64(salt)*0.1, float64(salt), float64(wz)*0.003)
	return (n + 1) / 2
}
