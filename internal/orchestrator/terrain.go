package orchestrator

import (
	"fmt"

	"voxelengine/internal/biome"
	"voxelengine/internal/chunk"
	"voxelengine/internal/genparams"
	"voxelengine/internal/voxel"
)

// typeWater is the voxel type id used for sea-level fill, distinct from
// every solid material biome.Type* defines.
const typeWater uint16 = 8

// generateTerrain fills c according to ctx.Params.Mode. A malformed chunk
// size or missing terrain generator is the only failure mode (aborts per
// spec's "terrain failure aborts the whole pass" rule); every other
// condition degrades gracefully (e.g. a zero-value noise generator still
// samples, just flatly).
func generateTerrain(ctx GenerationContext, c *chunk.Chunk) error {
	if c.Size <= 0 {
		return fmt.Errorf("orchestrator: invalid chunk size %d", c.Size)
	}
	if ctx.Terrain == nil {
		return fmt.Errorf("orchestrator: generation context has no terrain generator")
	}

	p := ctx.Params
	minH := p.BaseHeight - int32(p.Amplitude)
	maxH := p.BaseHeight + int32(p.Amplitude)
	if maxH <= minH {
		maxH = minH + 1
	}

	switch p.Mode {
	case genparams.TerrainFlat:
		terrainFlat(ctx, c, minH, maxH)
	case genparams.TerrainHeightMap:
		terrainHeightMap(ctx, c, minH, maxH)
	case genparams.TerrainVolumetric:
		terrainVolumetric(ctx, c, minH, maxH)
	case genparams.TerrainIslands:
		terrainIslands(ctx, c, minH, maxH)
	case genparams.TerrainMountains:
		terrainMountains(ctx, c, minH, maxH)
	default:
		terrainHeightMap(ctx, c, minH, maxH)
	}
	return nil
}

func worldOf(ctx GenerationContext, lx, ly, lz int32) (wx, wy, wz int32) {
	s := ctx.ChunkSize
	return ctx.Coord.X*s + lx, ctx.Coord.Y*s + ly, ctx.Coord.Z*s + lz
}

func terrainFlat(ctx GenerationContext, c *chunk.Chunk, minH, maxH int32) {
	surface := (minH + maxH) / 2
	s := c.Size
	for lz := int32(0); lz < s; lz++ {
		for lx := int32(0); lx < s; lx++ {
			for ly := int32(0); ly < s; ly++ {
				_, wy, _ := worldOf(ctx, lx, ly, lz)
				switch {
				case wy < surface:
					c.Set(lx, ly, lz, voxel.Voxel{Type: biome.TypeStone})
				case wy < ctx.Params.SeaLevel:
					c.Set(lx, ly, lz, voxel.Voxel{Type: typeWater})
				}
			}
		}
	}
}

func terrainHeightMap(ctx GenerationContext, c *chunk.Chunk, minH, maxH int32) {
	s := c.Size
	caveOn := ctx.Params.EnableCaves && ctx.Caves != nil
	oreOn := ctx.Params.EnableOreVeins && ctx.Ore != nil
	for lz := int32(0); lz < s; lz++ {
		for lx := int32(0); lx < s; lx++ {
			wx, _, wz := worldOf(ctx, lx, 0, lz)
			n := ctx.Terrain.Sample3D(float64(wx)*ctx.Params.Frequency, 0, float64(wz)*ctx.Params.Frequency)
			surface := minH + int32((n+1)/2*float64(maxH-minH))
			for ly := int32(0); ly < s; ly++ {
				_, wy, _ := worldOf(ctx, lx, ly, lz)
				if wy >= surface {
					if wy < ctx.Params.SeaLevel {
						c.Set(lx, ly, lz, voxel.Voxel{Type: typeWater})
					}
					continue
				}
				if caveOn {
					// isCave = caveNoise > (1.0 - caveDensity*caveSize), bit-exact
					// with original_source/src/Voxel/ProceduralGenerationSystem.cpp.
					cn := ctx.Caves.Sample3D(float64(wx)*0.05, float64(wy)*0.05, float64(wz)*0.05)
					if cn > 1-ctx.Params.CaveDensity*ctx.Params.CaveSize {
						continue
					}
				}
				if oreOn {
					if on := ctx.Ore.Sample3D(float64(wx), float64(wy), float64(wz)); on > oreVeinThreshold {
						c.Set(lx, ly, lz, voxel.Voxel{Type: biome.TypeOre})
						continue
					}
				}
				c.Set(lx, ly, lz, voxel.Voxel{Type: biome.TypeStone})
			}
		}
	}
}

func terrainVolumetric(ctx GenerationContext, c *chunk.Chunk, minH, maxH int32) {
	s := c.Size
	caveOn := ctx.Params.EnableCaves && ctx.Caves != nil
	oreOn := ctx.Params.EnableOreVeins && ctx.Ore != nil
	span := float64(maxH - minH)
	for lz := int32(0); lz < s; lz++ {
		for ly := int32(0); ly < s; ly++ {
			for lx := int32(0); lx < s; lx++ {
				wx, wy, wz := worldOf(ctx, lx, ly, lz)
				density := ctx.Terrain.Sample3D(float64(wx)*ctx.Params.Frequency, float64(wy)*ctx.Params.Frequency, float64(wz)*ctx.Params.Frequency)
				density *= 1 - (float64(wy-minH))/span
				if caveOn {
					// density -= caveNoise*caveDensity*caveSize, bit-exact with
					// original_source/src/Voxel/ProceduralGenerationSystem.cpp's
					// volumetric-with-caves branch.
					cn := ctx.Caves.Sample3D(float64(wx)*0.05, float64(wy)*0.05, float64(wz)*0.05)
					density -= cn * ctx.Params.CaveDensity * ctx.Params.CaveSize
				}
				if density > 0 {
					if oreOn {
						if on := ctx.Ore.Sample3D(float64(wx), float64(wy), float64(wz)); on > oreVeinThreshold {
							c.Set(lx, ly, lz, voxel.Voxel{Type: biome.TypeOre})
							continue
						}
					}
					c.Set(lx, ly, lz, voxel.Voxel{Type: biome.TypeStone})
				} else if wy < ctx.Params.SeaLevel {
					c.Set(lx, ly, lz, voxel.Voxel{Type: typeWater})
				}
			}
		}
	}
}

// oreVeinThreshold gates how much of the combined ore-noise stack (weighted
// distribution/veins/deposits layers, see noise.PresetOre) counts as an
// ore deposit rather than plain stone. Tuned so veins read as rare seams,
// not a replacement for most stone.
const oreVeinThreshold = 0.55

func terrainIslands(ctx GenerationContext, c *chunk.Chunk, minH, maxH int32) {
	s := c.Size
	mid := float64(minH+maxH) / 2
	for lz := int32(0); lz < s; lz++ {
		for ly := int32(0); ly < s; ly++ {
			for lx := int32(0); lx < s; lx++ {
				wx, wy, wz := worldOf(ctx, lx, ly, lz)
				n := ctx.Terrain.Sample3D(float64(wx)*0.05, float64(wy)*0.05, float64(wz)*0.05)
				heightFactor := (float64(wy) - mid) / mid
				if heightFactor < 0 {
					heightFactor = -heightFactor
				}
				density := n - 1.5*heightFactor
				if density > 0 {
					c.Set(lx, ly, lz, voxel.Voxel{Type: biome.TypeStone})
				} else if wy < ctx.Params.SeaLevel {
					c.Set(lx, ly, lz, voxel.Voxel{Type: typeWater})
				}
			}
		}
	}
}

func terrainMountains(ctx GenerationContext, c *chunk.Chunk, minH, maxH int32) {
	s := c.Size
	for lz := int32(0); lz < s; lz++ {
		for lx := int32(0); lx < s; lx++ {
			wx, _, wz := worldOf(ctx, lx, 0, lz)
			base := ctx.Terrain.Sample3D(float64(wx)*0.01, 0, float64(wz)*0.01)
			drama := base * base * base
			detail := ctx.Terrain.Sample3D(float64(wx)*0.05, 10, float64(wz)*0.05) * 0.3
			n := drama + detail
			surface := minH + int32((n+1)/2*float64(maxH-minH))
			for ly := int32(0); ly < s; ly++ {
				_, wy, _ := worldOf(ctx, lx, ly, lz)
				if wy >= surface {
					if wy < ctx.Params.SeaLevel {
						c.Set(lx, ly, lz, voxel.Voxel{Type: typeWater})
					}
					continue
				}
				c.Set(lx, ly, lz, voxel.Voxel{Type: altitudeBand(wy, minH, maxH)})
			}
		}
	}
}

// altitudeBand stratifies voxel material by how high wy sits within the
// terrain's [minH,maxH] span, giving mountains a snow cap and a rocky
// upper band over an otherwise stone body.
func altitudeBand(wy, minH, maxH int32) uint16 {
	span := maxH - minH
	if span <= 0 {
		return biome.TypeStone
	}
	t := float64(wy-minH) / float64(span)
	switch {
	case t > 0.85:
		return biome.TypeSnow
	case t > 0.6:
		return biome.TypeGravel
	default:
		return biome.TypeStone
	}
}
