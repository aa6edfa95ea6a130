// Pool implements the cancellable, progressive mesh-generation worker
// pool, adapted directly from
// dantero-ps-mini-mc-go/internal/meshing/pool.go's WorkerPool: the same
// job-channel/result-channel shape and ctx-cancellation-checked worker
// loop, generalized from a single BuildGreedyMeshForChunk call per job to
// a build-then-optionally-LOD-simplify pipeline, and reporting mesh
// lifecycle transitions (chunk.MeshBuilding/MeshBuilt/MeshDirty) on the
// chunk itself as it goes.
package mesh

import (
	"context"
	"runtime"
	"sync"

	"voxelengine/internal/chunk"
	"voxelengine/internal/external"
	"voxelengine/internal/voxel"
)

// Job is one chunk's mesh build request.
type Job struct {
	Chunk      *chunk.Chunk
	Opaque     func(voxel.Voxel) bool
	LODLevel   int
	ResultChan chan Result
}

// Result is a completed (or cancelled) mesh build.
type Result struct {
	Coord     voxel.ChunkCoord
	Mesh      *Mesh
	Cancelled bool
	Err       error
}

// Pool runs a fixed number of worker goroutines pulling Jobs off a
// buffered channel, exactly mirroring the teacher's NewWorkerPool shape.
type Pool struct {
	jobs   chan Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger external.Logger
}

// NewPool starts workers goroutines (runtime.NumCPU() if workers <= 0)
// each servicing jobs from a channel of the given queue size.
func NewPool(workers, queueSize int, logger external.Logger) *Pool {
	if workers <= 0 {
		workers = max(runtime.NumCPU(), 1)
	}
	if logger == nil {
		logger = external.NopLogger{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		jobs:   make(chan Job, queueSize),
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			p.run(job)
		}
	}
}

func (p *Pool) run(job Job) {
	c := job.Chunk
	c.SetMeshState(chunk.MeshBuilding)

	token := NewCancelToken()
	c.SetCancelFunc(token.Cancel)
	startGen := c.Generation()

	var built *Mesh
	if c.Empty() {
		built = &Mesh{}
	} else {
		built = BuildGreedy(c, job.Opaque, token)
		if job.LODLevel > 0 {
			built = Simplify(built, job.LODLevel)
		}
	}

	select {
	case <-p.ctx.Done():
		job.ResultChan <- Result{Coord: c.Coord, Cancelled: true}
		return
	default:
	}

	if token.Cancelled() || c.Generation() != startGen {
		c.SetMeshState(chunk.MeshDirty)
		job.ResultChan <- Result{Coord: c.Coord, Cancelled: true}
		p.logger.Debugw("mesh build cancelled", "coord", c.Coord)
		return
	}

	c.SetMeshState(chunk.MeshBuilt)
	job.ResultChan <- Result{Coord: c.Coord, Mesh: built}
}

// Submit enqueues a job, blocking if the queue is full.
func (p *Pool) Submit(job Job) {
	p.jobs <- job
}

// TrySubmit enqueues a job without blocking, reporting whether it was
// accepted.
func (p *Pool) TrySubmit(job Job) bool {
	select {
	case p.jobs <- job:
		return true
	default:
		return false
	}
}

// Shutdown cancels all in-flight and queued work and waits for workers to
// exit, mirroring the teacher's Shutdown (cancel + close + wait).
func (p *Pool) Shutdown() {
	p.cancel()
	close(p.jobs)
	p.wg.Wait()
}
