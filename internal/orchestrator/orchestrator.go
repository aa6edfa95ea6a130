// Package orchestrator assembles the per-chunk generation context and
// drives the terrain → biome → feature pipeline, plus a background
// pre-generation task queue. Grounded on
// dantero-ps-mini-mc-go/internal/world/chunk_streamer.go's ChunkStreamer
// (background worker draining a priority-ish queue of chunk requests),
// generalized from "stream chunks from disk" to "assemble and run the
// full procedural pipeline for a coordinate".
package orchestrator

import (
	"sync"
	"sync/atomic"
	"time"

	"voxelengine/internal/biome"
	"voxelengine/internal/chunk"
	"voxelengine/internal/distribution"
	"voxelengine/internal/external"
	"voxelengine/internal/feature"
	"voxelengine/internal/genparams"
	"voxelengine/internal/grid"
	"voxelengine/internal/noise"
	"voxelengine/internal/profiling"
	"voxelengine/internal/voxel"
)

// GenerationContext is the borrow-bundle assembled once per generateChunk
// call: every subordinate system a generation pass may need, plus the
// chunk coordinate and parameters driving this call. It holds no chunks
// and is never stored past the call that builds it.
type GenerationContext struct {
	Coord        voxel.ChunkCoord
	Params       genparams.GenerationParameters
	Terrain      *noise.LayeredGenerator
	Caves        *noise.LayeredGenerator
	Ore          *noise.LayeredGenerator
	Biomes       *biome.Registry
	Features     *feature.Registry
	Distribution distribution.Pattern
	Seed         int64
	WorldBounds  voxel.Bounds
	ChunkSize    int32
}

// Orchestrator owns every procedural-generation subordinate system and
// drives chunk generation and the background pre-generation worker. Init
// creates a default noise/terrain/cave pair, a default feature registry,
// a default distribution pattern, and a default parameter set, matching
// the teacher's cmd/mini-mc wiring style of "construct every subsystem up
// front in one place" (dantero-ps-mini-mc-go/main.go).
type Orchestrator struct {
	mu sync.RWMutex

	seed int64

	biomes       *biome.Registry
	noiseGens    map[string]*noise.LayeredGenerator
	features     *feature.Registry
	distribution distribution.Pattern
	params       map[string]genparams.GenerationParameters

	logger external.Logger
	grid   *grid.Grid

	tasksMu sync.Mutex
	tasks   []*Task

	stopped atomic.Bool
	wg      sync.WaitGroup
}

// New constructs an Orchestrator wired to g (the grid façade chunk
// generation writes into) and starts its background pre-generation
// worker.
func New(g *grid.Grid, logger external.Logger) *Orchestrator {
	if logger == nil {
		logger = external.NopLogger{}
	}
	o := &Orchestrator{
		biomes:       biome.Realistic(),
		noiseGens:    make(map[string]*noise.LayeredGenerator),
		features:     feature.NewRegistry(),
		distribution: distribution.PatternStratified,
		params:       make(map[string]genparams.GenerationParameters),
		logger:       logger,
		grid:         g,
	}
	o.noiseGens["default"] = noise.BuildPreset(noise.PresetTerrain, 1337)
	o.noiseGens["terrain"] = noise.BuildPreset(noise.PresetTerrain, 1337)
	o.noiseGens["caves"] = noise.BuildPreset(noise.PresetCaves, 1337)
	o.noiseGens["ore"] = noise.BuildPreset(noise.PresetOre, 1337)
	o.params["default"] = genparams.Default()

	o.wg.Add(1)
	go o.pregenWorker()
	return o
}

// SetSeed propagates derived seeds to every subordinate noise generator:
// each generator's effective seed is s XOR a stable hash of its name, so
// changing the world seed reseeds every layer deterministically without
// entangling their streams.
func (o *Orchestrator) SetSeed(s int64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seed = s
	for name := range o.noiseGens {
		derived := s ^ hashName(name)
		switch name {
		case "caves":
			o.noiseGens[name] = noise.BuildPreset(noise.PresetCaves, derived)
		case "ore":
			o.noiseGens[name] = noise.BuildPreset(noise.PresetOre, derived)
		default:
			o.noiseGens[name] = noise.BuildPreset(noise.PresetTerrain, derived)
		}
	}
}

func hashName(name string) int64 {
	var h int64 = 1469598103934665603
	for _, b := range []byte(name) {
		h ^= int64(b)
		h *= 1099511628211
	}
	return h
}

// CreateContext assembles a GenerationContext for coord using the named
// parameter set, substituting "default" and logging a warning when
// paramsID is unknown.
func (o *Orchestrator) CreateContext(coord voxel.ChunkCoord, paramsID string, chunkSize int32, worldBounds voxel.Bounds) GenerationContext {
	o.mu.RLock()
	defer o.mu.RUnlock()

	p, ok := o.params[paramsID]
	if !ok {
		o.logger.Warnw("unknown parameter set, falling back to default", "requested", paramsID)
		p = o.params["default"]
	}
	return GenerationContext{
		Coord:        coord,
		Params:       p,
		Terrain:      o.noiseGens["terrain"],
		Caves:        o.noiseGens["caves"],
		Ore:          o.noiseGens["ore"],
		Biomes:       o.biomes,
		Features:     o.features,
		Distribution: o.distribution,
		Seed:         o.seed,
		WorldBounds:  worldBounds,
		ChunkSize:    chunkSize,
	}
}

// RegisterParams installs a named parameter set, usable as CreateContext's
// paramsID.
func (o *Orchestrator) RegisterParams(name string, p genparams.GenerationParameters) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.params[name] = p
}

// GenerateChunk runs terrain, then biomes, then features, into c. A
// terrain failure aborts the whole pass (the chunk is left however far
// terrain got); biome/feature failures are logged and generation
// continues, since a missing decorative pass is recoverable but missing
// ground is not. Each pass is tracked under internal/profiling so
// callers (cmd/worldgen, a future live server) can inspect per-stage cost
// via profiling.Snapshot()/TopN() the same way the teacher instruments
// its own per-frame subsystems.
func (o *Orchestrator) GenerateChunk(ctx GenerationContext, c *chunk.Chunk) error {
	terrErr := func() error {
		defer profiling.Track("orchestrator.generateTerrain")()
		return generateTerrain(ctx, c)
	}()
	if terrErr != nil {
		return terrErr
	}
	if err := func() error {
		defer profiling.Track("orchestrator.applyBiomes")()
		return applyBiomes(ctx, c)
	}(); err != nil {
		o.logger.Warnw("biome pass failed", "coord", ctx.Coord, "error", err)
	}
	if err := func() error {
		defer profiling.Track("orchestrator.placeFeatures")()
		return placeFeatures(ctx, c, o.logger)
	}(); err != nil {
		o.logger.Warnw("feature pass failed", "coord", ctx.Coord, "error", err)
	}
	return nil
}

// Close stops the background pre-generation worker, waiting for its
// current iteration to finish.
func (o *Orchestrator) Close() {
	o.stopped.Store(true)
	o.wg.Wait()
}

// pregenWorker scans the task list for the lowest-priority-value
// non-complete non-canceled task, generates its region, marks it complete,
// and sleeps between polls — matching spec's pre-generation scheduling
// model exactly (shared mutex-guarded vector, 10ms poll sleep, atomic
// shutdown flag).
func (o *Orchestrator) pregenWorker() {
	defer o.wg.Done()
	for !o.stopped.Load() {
		t := o.pickTask()
		if t != nil {
			o.runTask(t)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func (o *Orchestrator) pickTask() *Task {
	o.tasksMu.Lock()
	defer o.tasksMu.Unlock()
	var best *Task
	for _, t := range o.tasks {
		if t.Complete() || t.Canceled() {
			continue
		}
		if best == nil || t.Priority < best.Priority {
			best = t
		}
	}
	return best
}

func (o *Orchestrator) runTask(t *Task) {
	for x := t.Region.Min.X; x <= t.Region.Max.X; x++ {
		for y := t.Region.Min.Y; y <= t.Region.Max.Y; y++ {
			for z := t.Region.Min.Z; z <= t.Region.Max.Z; z++ {
				if t.Canceled() {
					return
				}
				coord := voxel.ChunkCoord{X: x, Y: y, Z: z}
				o.generateViaGrid(coord, t.ParamsID)
			}
		}
	}
	t.complete.Store(true)
}

func (o *Orchestrator) generateViaGrid(coord voxel.ChunkCoord, paramsID string) {
	if o.grid == nil {
		return
	}
	size := o.grid.Size()
	ctx := o.CreateContext(coord, paramsID, size, o.grid.Bounds())
	base := voxel.BlockCoord{X: coord.X * size, Y: coord.Y * size, Z: coord.Z * size}
	dummy := chunk.New(coord, size)
	if err := o.GenerateChunk(ctx, dummy); err != nil {
		o.logger.Errorw("pregen chunk generation failed", "coord", coord, "error", err)
		return
	}
	for lz := int32(0); lz < size; lz++ {
		for ly := int32(0); ly < size; ly++ {
			for lx := int32(0); lx < size; lx++ {
				v := dummy.At(lx, ly, lz)
				if v.IsAir() {
					continue
				}
				pos := voxel.BlockCoord{X: base.X + lx, Y: base.Y + ly, Z: base.Z + lz}
				_ = o.grid.SetVoxel(pos, v)
			}
		}
	}
}

// ChunkRange is an inclusive coordinate-space box of chunk coordinates.
type ChunkRange struct {
	Min, Max voxel.ChunkCoord
}

// Task is a pre-generation request: a region to generate at a given
// priority, with atomic complete/canceled flags so the worker and any
// submitting goroutine can observe state changes without a lock.
type Task struct {
	ID       uint64
	Region   ChunkRange
	ParamsID string
	Priority int

	complete atomic.Bool
	canceled atomic.Bool
}

func (t *Task) Complete() bool { return t.complete.Load() }
func (t *Task) Canceled() bool { return t.canceled.Load() }
func (t *Task) Cancel()        { t.canceled.Store(true) }

var nextTaskID atomic.Uint64

// Submit enqueues a new pre-generation task and returns it so the caller
// can poll Complete()/cancel it later.
func (o *Orchestrator) Submit(region ChunkRange, paramsID string, priority int) *Task {
	t := &Task{
		ID:       nextTaskID.Add(1),
		Region:   region,
		ParamsID: paramsID,
		Priority: priority,
	}
	o.tasksMu.Lock()
	o.tasks = append(o.tasks, t)
	o.tasksMu.Unlock()
	return t
}
