// Command worldgen is a debug harness for the voxel engine core: it spins
// up an orchestrator and grid over a disk-backed chunk manager, generates
// a square region of chunks with a named parameter preset, builds and
// simplifies meshes for the generated chunks, flushes them to disk, and
// reports summary statistics. It optionally exports a heightmap PNG of
// the generated region for visual sanity-checking without a renderer.
//
// Flags mirror the teacher's cmd/mini-mc style of a flat main() wiring
// every subsystem together by hand (dantero-ps-mini-mc-go/main.go), here
// driven by command-line flags instead of compile-time constants since
// this binary has no window/render loop to configure through code.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"time"

	"github.com/xlab/closer"
	"golang.org/x/image/draw"

	"voxelengine/internal/chunkmanager"
	"voxelengine/internal/genparams"
	"voxelengine/internal/grid"
	"voxelengine/internal/mesh"
	"voxelengine/internal/orchestrator"
	"voxelengine/internal/profiling"
	"voxelengine/internal/storage"
	"voxelengine/internal/telemetry"
	"voxelengine/internal/voxel"
)

func main() {
	var (
		outDir     = flag.String("out", "./world-data", "directory to persist generated chunks into")
		preset     = flag.String("preset", "hills", "generation parameter preset name")
		radius     = flag.Int("radius", 2, "chunk radius to generate around the origin (inclusive)")
		chunkSize  = flag.Int("chunk-size", 16, "cubic chunk edge length")
		heightmap  = flag.String("heightmap", "", "optional path to write a heightmap PNG of the generated region")
		lodLevel   = flag.Int("lod", 0, "mesh simplification level (0-3) to report alongside LOD 0 stats")
		devLogging = flag.Bool("dev", false, "use a development zap logger (human-readable, more verbose)")
	)
	flag.Parse()

	var logger *telemetry.ZapLogger
	var err error
	if *devLogging {
		logger, err = telemetry.NewDevelopmentZapLogger()
	} else {
		logger, err = telemetry.NewZapLogger()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "worldgen: logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	size := int32(*chunkSize)
	store := storage.NewDiskStore(*outDir)
	manager := chunkmanager.New(size, store, logger)
	closer.Bind(manager.Close)

	bounds := voxel.Bounds{
		Min: voxel.BlockCoord{X: -size * int32(*radius+4), Y: -256, Z: -size * int32(*radius+4)},
		Max: voxel.BlockCoord{X: size * int32(*radius+4), Y: 256, Z: size * int32(*radius+4)},
	}
	g := grid.New(manager, bounds, size)

	orch := orchestrator.New(g, logger)
	closer.Bind(orch.Close)

	params := genparams.Preset(*preset)
	orch.RegisterParams(*preset, params)

	logger.Infow("starting region generation", "preset", *preset, "radius", *radius, "chunkSize", size)
	start := time.Now()
	profiling.ResetFrame()

	var generated int
	var totalTriangles int
	var triangleLOD int
	for x := int32(-*radius); x <= int32(*radius); x++ {
		for z := int32(-*radius); z <= int32(*radius); z++ {
			coord := voxel.ChunkCoord{X: x, Y: 0, Z: z}
			c := manager.GetOrCreate(coord)
			ctx := orch.CreateContext(coord, *preset, size, bounds)
			if err := orch.GenerateChunk(ctx, c); err != nil {
				logger.Errorw("chunk generation failed", "coord", coord, "error", err)
				continue
			}
			manager.MarkDirty(coord)
			generated++

			m := mesh.BuildGreedy(c, opaqueNonAir, nil)
			totalTriangles += len(m.Indices) / 3
			if *lodLevel > 0 {
				simplified := mesh.Simplify(m, *lodLevel)
				triangleLOD += len(simplified.Indices) / 3
			}
		}
	}

	manager.Flush()
	elapsed := time.Since(start)

	fmt.Printf("generated %d chunks in %s\n", generated, elapsed)
	fmt.Printf("generation pass breakdown: %s\n", profiling.TopN(5))
	fmt.Printf("total LOD0 triangles: %d\n", totalTriangles)
	if *lodLevel > 0 {
		fmt.Printf("total LOD%d triangles: %d\n", *lodLevel, triangleLOD)
	}

	if *heightmap != "" {
		if err := exportHeightmap(g, bounds, *heightmap); err != nil {
			logger.Errorw("heightmap export failed", "error", err)
		} else {
			fmt.Printf("wrote heightmap to %s\n", *heightmap)
		}
	}

	closer.Close()
}

func opaqueNonAir(v voxel.Voxel) bool { return !v.IsAir() }

// exportHeightmap samples the grid's topmost non-air voxel across the X/Z
// extent of bounds and writes it as a grayscale PNG, upscaled 4x with a
// bilinear filter via x/image/draw so a single-voxel-per-pixel image is legible
// without a viewer that supports nearest-neighbor zoom.
func exportHeightmap(g *grid.Grid, bounds voxel.Bounds, path string) error {
	w := int(bounds.Max.X - bounds.Min.X)
	h := int(bounds.Max.Z - bounds.Min.Z)
	if w <= 0 || h <= 0 {
		return fmt.Errorf("worldgen: empty bounds for heightmap export")
	}

	img := image.NewGray(image.Rect(0, 0, w, h))
	minY, maxY := bounds.Min.Y, bounds.Max.Y
	span := float64(maxY - minY)
	if span <= 0 {
		span = 1
	}
	for pz := 0; pz < h; pz++ {
		for px := 0; px < w; px++ {
			wx := bounds.Min.X + int32(px)
			wz := bounds.Min.Z + int32(pz)
			surfaceY := topmostNonAir(g, wx, wz, minY, maxY)
			level := uint8(float64(surfaceY-minY) / span * 255)
			img.SetGray(px, pz, color.Gray{Y: level})
		}
	}

	const scale = 4
	scaled := image.NewGray(image.Rect(0, 0, w*scale, h*scale))
	draw.BiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Over, nil)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("worldgen: create heightmap file: %w", err)
	}
	defer f.Close()
	return png.Encode(f, scaled)
}

func topmostNonAir(g *grid.Grid, wx, wz, minY, maxY int32) int32 {
	for wy := maxY - 1; wy >= minY; wy-- {
		v := g.GetVoxel(voxel.BlockCoord{X: wx, Y: wy, Z: wz})
		if !v.IsAir() {
			return wy
		}
	}
	return minY
}
