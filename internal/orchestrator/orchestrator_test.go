package orchestrator

import (
	"testing"
	"time"

	"voxelengine/internal/chunk"
	"voxelengine/internal/chunkmanager"
	"voxelengine/internal/external"
	"voxelengine/internal/feature"
	"voxelengine/internal/genparams"
	"voxelengine/internal/grid"
	"voxelengine/internal/storage"
	"voxelengine/internal/voxel"
)

func newTestOrchestrator(t *testing.T) (*Orchestrator, *grid.Grid) {
	t.Helper()
	mgr := chunkmanager.New(16, storage.NewMemoryStore(), external.NopLogger{})
	t.Cleanup(mgr.Close)
	bounds := voxel.Bounds{
		Min: voxel.BlockCoord{X: -2048, Y: -256, Z: -2048},
		Max: voxel.BlockCoord{X: 2048, Y: 256, Z: 2048},
	}
	g := grid.New(mgr, bounds, 16)
	o := New(g, external.NopLogger{})
	t.Cleanup(o.Close)
	return o, g
}

func TestCreateContextFallsBackToDefaultOnUnknownParams(t *testing.T) {
	o, g := newTestOrchestrator(t)
	ctx := o.CreateContext(voxel.ChunkCoord{}, "does-not-exist", g.Size(), g.Bounds())
	if ctx.Params != genparams.Default() {
		t.Fatalf("expected default params on unknown name, got %+v", ctx.Params)
	}
}

func TestGenerateChunkFlatProducesSolidBelowSurface(t *testing.T) {
	o, g := newTestOrchestrator(t)
	o.RegisterParams("flat", genparams.Preset("flat"))
	ctx := o.CreateContext(voxel.ChunkCoord{}, "flat", g.Size(), g.Bounds())
	c := chunk.New(voxel.ChunkCoord{}, g.Size())
	if err := o.GenerateChunk(ctx, c); err != nil {
		t.Fatalf("GenerateChunk: %v", err)
	}
	if c.Empty() {
		t.Fatal("flat terrain should not be empty")
	}
}

func TestGenerateChunkHeightMapIsDeterministic(t *testing.T) {
	o, g := newTestOrchestrator(t)
	ctx := o.CreateContext(voxel.ChunkCoord{X: 3, Y: 0, Z: -2}, "default", g.Size(), g.Bounds())

	c1 := chunk.New(ctx.Coord, g.Size())
	c2 := chunk.New(ctx.Coord, g.Size())
	if err := o.GenerateChunk(ctx, c1); err != nil {
		t.Fatalf("GenerateChunk c1: %v", err)
	}
	if err := o.GenerateChunk(ctx, c2); err != nil {
		t.Fatalf("GenerateChunk c2: %v", err)
	}
	v1, v2 := c1.Voxels(), c2.Voxels()
	if len(v1) != len(v2) {
		t.Fatalf("voxel count mismatch: %d vs %d", len(v1), len(v2))
	}
	for i := range v1 {
		if v1[i] != v2[i] {
			t.Fatalf("non-deterministic terrain at index %d: %+v vs %+v", i, v1[i], v2[i])
		}
	}
}

func TestGenerateChunkAllTerrainModesProduceNoError(t *testing.T) {
	o, g := newTestOrchestrator(t)
	for _, mode := range []genparams.TerrainMode{
		genparams.TerrainFlat,
		genparams.TerrainHeightMap,
		genparams.TerrainVolumetric,
		genparams.TerrainIslands,
		genparams.TerrainMountains,
	} {
		p := genparams.Default()
		p.Mode = mode
		o.RegisterParams(mode.String(), p)
		ctx := o.CreateContext(voxel.ChunkCoord{}, mode.String(), g.Size(), g.Bounds())
		c := chunk.New(voxel.ChunkCoord{}, g.Size())
		if err := o.GenerateChunk(ctx, c); err != nil {
			t.Fatalf("mode %v: GenerateChunk: %v", mode, err)
		}
	}
}

func TestFeaturePassInvokesEligibleGenerator(t *testing.T) {
	o, g := newTestOrchestrator(t)

	placed := false
	o.features.Register(feature.TypeInfo{
		Name: "test-marker",
		Generate: func(site feature.Site, place func(offset external.Vec3, voxelType uint16)) {
			placed = true
			place(external.Vec3{}, 99)
		},
	})

	p := genparams.Preset("flat")
	o.RegisterParams("flat", p)
	ctx := o.CreateContext(voxel.ChunkCoord{}, "flat", g.Size(), g.Bounds())
	c := chunk.New(voxel.ChunkCoord{}, g.Size())
	if err := o.GenerateChunk(ctx, c); err != nil {
		t.Fatalf("GenerateChunk: %v", err)
	}
	if !placed {
		t.Fatal("expected feature generator to be invoked for at least one candidate site")
	}
}

func TestPregenTaskEventuallyCompletes(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	task := o.Submit(ChunkRange{Min: voxel.ChunkCoord{}, Max: voxel.ChunkCoord{}}, "default", 0)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if task.Complete() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("expected pre-generation task to complete within 2s")
}

func TestSetSeedReseedsGenerators(t *testing.T) {
	o, g := newTestOrchestrator(t)
	ctxBefore := o.CreateContext(voxel.ChunkCoord{X: 1}, "default", g.Size(), g.Bounds())
	before := ctxBefore.Terrain.Sample3D(10, 0, 10)

	o.SetSeed(99999)
	ctxAfter := o.CreateContext(voxel.ChunkCoord{X: 1}, "default", g.Size(), g.Bounds())
	after := ctxAfter.Terrain.Sample3D(10, 0, 10)

	if before == after {
		t.Fatal("expected reseeding to change terrain sampler output")
	}
}
