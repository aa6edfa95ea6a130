// Package chunkmanager owns the resident chunk map, neighbor linking, and
// the background save worker. Grounded on
// dantero-ps-mini-mc-go/internal/world/chunk_store.go's ChunkStore
// (double-checked-locking GetChunk, column index, boundary dirty
// propagation) combined with that repo's chunk_streamer.go worker-pool
// shape for the save path instead of the generation path.
package chunkmanager

import (
	"context"
	"sync"

	"voxelengine/internal/chunk"
	"voxelengine/internal/external"
	"voxelengine/internal/storage"
	"voxelengine/internal/voxel"
)

// Manager holds every resident chunk, keyed by ChunkCoord, plus a pending
// dirty set the background save worker drains.
type Manager struct {
	chunksMutex sync.RWMutex
	chunks      map[voxel.ChunkCoord]*chunk.Chunk

	dirtyChunksMutex sync.Mutex
	dirtyChunks      map[voxel.ChunkCoord]struct{}

	size    int32
	store   storage.ChunkStore
	logger  external.Logger
	saveCh  chan voxel.ChunkCoord
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a Manager with the given chunk edge size and persistence
// backend, and starts a single background save worker (mirroring the
// teacher's one-goroutine-per-concern style rather than a pool, since
// saves are I/O-bound and serialized per chunk file anyway).
func New(size int32, store storage.ChunkStore, logger external.Logger) *Manager {
	if logger == nil {
		logger = external.NopLogger{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		chunks:      make(map[voxel.ChunkCoord]*chunk.Chunk),
		dirtyChunks: make(map[voxel.ChunkCoord]struct{}),
		size:        size,
		store:       store,
		logger:      logger,
		saveCh:      make(chan voxel.ChunkCoord, 1024),
		cancel:      cancel,
	}
	m.wg.Add(1)
	go m.saveWorker(ctx)
	return m
}

// Get returns the chunk at coord if resident.
func (m *Manager) Get(coord voxel.ChunkCoord) (*chunk.Chunk, bool) {
	m.chunksMutex.RLock()
	defer m.chunksMutex.RUnlock()
	c, ok := m.chunks[coord]
	return c, ok
}

// GetOrCreate returns the resident chunk at coord, creating and linking it
// to any already-resident neighbors if absent. Uses double-checked locking
// the way the teacher's ChunkStore.GetChunk does.
func (m *Manager) GetOrCreate(coord voxel.ChunkCoord) *chunk.Chunk {
	m.chunksMutex.RLock()
	c, ok := m.chunks[coord]
	m.chunksMutex.RUnlock()
	if ok {
		return c
	}

	m.chunksMutex.Lock()
	defer m.chunksMutex.Unlock()
	if existing, ok := m.chunks[coord]; ok {
		return existing
	}
	c = chunk.New(coord, m.size)
	m.chunks[coord] = c
	m.linkNeighborsLocked(coord, c)
	return c
}

// linkNeighborsLocked wires the 6 neighbor back-references for a newly
// inserted chunk, and updates any already-resident neighbors' links back
// to it. Must be called with chunksMutex held for writing.
func (m *Manager) linkNeighborsLocked(coord voxel.ChunkCoord, c *chunk.Chunk) {
	for _, n := range voxel.All() {
		nbCoord := coord.Add(n)
		if nb, ok := m.chunks[nbCoord]; ok {
			c.LinkNeighbor(n, nb)
			nb.LinkNeighbor(opposite(n), c)
		}
	}
}

func opposite(n voxel.Neighbor) voxel.Neighbor {
	switch n {
	case voxel.NeighborPosX:
		return voxel.NeighborNegX
	case voxel.NeighborNegX:
		return voxel.NeighborPosX
	case voxel.NeighborPosY:
		return voxel.NeighborNegY
	case voxel.NeighborNegY:
		return voxel.NeighborPosY
	case voxel.NeighborPosZ:
		return voxel.NeighborNegZ
	default:
		return voxel.NeighborPosZ
	}
}

// MarkDirty schedules coord for the next background save pass.
func (m *Manager) MarkDirty(coord voxel.ChunkCoord) {
	m.dirtyChunksMutex.Lock()
	m.dirtyChunks[coord] = struct{}{}
	m.dirtyChunksMutex.Unlock()
	select {
	case m.saveCh <- coord:
	default:
		m.logger.Warnw("save queue full, chunk will be picked up on next flush", "coord", coord)
	}
}

// Unload evicts a chunk from the resident map, unlinking it from its
// neighbors first. Callers should ensure it has been saved (or is clean)
// before calling this.
func (m *Manager) Unload(coord voxel.ChunkCoord) {
	m.chunksMutex.Lock()
	defer m.chunksMutex.Unlock()
	c, ok := m.chunks[coord]
	if !ok {
		return
	}
	for _, n := range voxel.All() {
		if nb := c.Neighbor(n); nb != nil {
			nb.LinkNeighbor(opposite(n), nil)
		}
	}
	delete(m.chunks, coord)
}

// Resident returns every currently loaded chunk coordinate.
func (m *Manager) Resident() []voxel.ChunkCoord {
	m.chunksMutex.RLock()
	defer m.chunksMutex.RUnlock()
	out := make([]voxel.ChunkCoord, 0, len(m.chunks))
	for c := range m.chunks {
		out = append(out, c)
	}
	return out
}

func (m *Manager) saveWorker(ctx context.Context) {
	defer m.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case coord := <-m.saveCh:
			m.saveOne(coord)
		}
	}
}

func (m *Manager) saveOne(coord voxel.ChunkCoord) {
	m.dirtyChunksMutex.Lock()
	_, stillDirty := m.dirtyChunks[coord]
	delete(m.dirtyChunks, coord)
	m.dirtyChunksMutex.Unlock()
	if !stillDirty {
		return
	}

	c, ok := m.Get(coord)
	if !ok {
		return
	}
	end, err := c.BeginWrite()
	if err != nil {
		// another writer is active; re-queue for the next pass rather
		// than blocking the save worker.
		m.MarkDirty(coord)
		return
	}
	defer end()

	if err := m.store.Save(coord, c); err != nil {
		m.logger.Errorw("chunk save failed", "coord", coord, "error", err)
		return
	}
	c.ClearDirty()
}

// Flush synchronously saves every currently dirty chunk, used on graceful
// shutdown so no writer goroutine races an in-progress process exit.
func (m *Manager) Flush() {
	m.dirtyChunksMutex.Lock()
	pending := make([]voxel.ChunkCoord, 0, len(m.dirtyChunks))
	for c := range m.dirtyChunks {
		pending = append(pending, c)
	}
	m.dirtyChunksMutex.Unlock()
	for _, coord := range pending {
		m.saveOne(coord)
	}
}

// Close stops the background save worker after flushing pending writes.
func (m *Manager) Close() {
	m.Flush()
	m.cancel()
	m.wg.Wait()
}
