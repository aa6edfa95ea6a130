// Package chunk implements the dense per-chunk voxel grid: a cubic SxSxS
// array of voxel.Voxel plus the dirty/empty/mesh-state bookkeeping the rest
// of the engine depends on. Structurally this replaces the teacher's
// sectioned, sparse BlockType array
// (dantero-ps-mini-mc-go/internal/world/chunk.go's 16x16x16 Section slabs)
// with the single dense array spec.md's data model requires, while keeping
// the teacher's bounds-checked accessor style and its boundary
// neighbor-dirtying idiom
// (dantero-ps-mini-mc-go/internal/world/chunk_store.go's Set method).
package chunk

import (
	"fmt"
	"sync/atomic"

	"voxelengine/internal/voxel"
)

// MeshState describes the lifecycle of a chunk's generated render mesh.
type MeshState int

const (
	MeshEmpty MeshState = iota
	MeshBuilding
	MeshBuilt
	MeshDirty
)

func (s MeshState) String() string {
	switch s {
	case MeshEmpty:
		return "empty"
	case MeshBuilding:
		return "building"
	case MeshBuilt:
		return "built"
	case MeshDirty:
		return "dirty"
	}
	return "unknown"
}

// Chunk is a cubic SxSxS dense voxel grid. Chunk itself applies no internal
// locking: callers (chunkmanager) serialize writers per spec's concurrency
// model; concurrent writers are rejected with ErrConcurrentWrite rather than
// silently racing.
type Chunk struct {
	Coord voxel.ChunkCoord
	Size  int32

	voxels []voxel.Voxel

	dirty         bool
	empty         bool
	meshState     MeshState
	generation    uint64 // bumped on every successful write, used for mesh cache invalidation
	writerActive  int32  // atomic flag: 0 = idle, 1 = a writer is in progress
	neighbors     [6]*Chunk
	cancelMeshGen func()
}

// ErrConcurrentWrite is returned by BeginWrite when another writer is
// already active on the same chunk.
var ErrConcurrentWrite = fmt.Errorf("chunk: concurrent write rejected")

// New allocates an empty (all-air) chunk of edge length size.
func New(coord voxel.ChunkCoord, size int32) *Chunk {
	return &Chunk{
		Coord:     coord,
		Size:      size,
		voxels:    make([]voxel.Voxel, size*size*size),
		empty:     true,
		meshState: MeshEmpty,
	}
}

// BeginWrite marks the chunk as having an active writer, returning
// ErrConcurrentWrite if one is already in progress. Callers must call the
// returned end function exactly once.
func (c *Chunk) BeginWrite() (end func(), err error) {
	if !atomic.CompareAndSwapInt32(&c.writerActive, 0, 1) {
		return nil, ErrConcurrentWrite
	}
	return func() { atomic.StoreInt32(&c.writerActive, 0) }, nil
}

// At returns the voxel at local coordinates (lx, ly, lz), each in [0, Size).
func (c *Chunk) At(lx, ly, lz int32) voxel.Voxel {
	return c.voxels[voxel.Index(lx, ly, lz, c.Size)]
}

// Set writes a voxel at local coordinates, updating dirty/empty/mesh-dirty
// bookkeeping. If the write touches a boundary cell, linked neighbor chunks
// (if present) also have their mesh marked dirty, since a face that used to
// be hidden against that neighbor may now be exposed (or vice versa).
func (c *Chunk) Set(lx, ly, lz int32, v voxel.Voxel) {
	idx := voxel.Index(lx, ly, lz, c.Size)
	if c.voxels[idx] == v {
		return
	}
	c.voxels[idx] = v
	c.dirty = true
	c.generation++
	c.markMeshDirty()

	if lx == 0 {
		c.dirtyNeighbor(voxel.NeighborNegX)
	} else if lx == c.Size-1 {
		c.dirtyNeighbor(voxel.NeighborPosX)
	}
	if ly == 0 {
		c.dirtyNeighbor(voxel.NeighborNegY)
	} else if ly == c.Size-1 {
		c.dirtyNeighbor(voxel.NeighborPosY)
	}
	if lz == 0 {
		c.dirtyNeighbor(voxel.NeighborNegZ)
	} else if lz == c.Size-1 {
		c.dirtyNeighbor(voxel.NeighborPosZ)
	}

	if !v.IsAir() {
		c.empty = false
	} else {
		c.recomputeEmpty()
	}
}

func (c *Chunk) dirtyNeighbor(n voxel.Neighbor) {
	nb := c.neighbors[n]
	if nb != nil {
		nb.markMeshDirty()
	}
}

func (c *Chunk) markMeshDirty() {
	if c.meshState == MeshBuilt || c.meshState == MeshBuilding {
		c.meshState = MeshDirty
	}
}

func (c *Chunk) recomputeEmpty() {
	for _, v := range c.voxels {
		if !v.IsAir() {
			c.empty = false
			return
		}
	}
	c.empty = true
}

// Dirty reports whether the chunk has unsaved modifications.
func (c *Chunk) Dirty() bool { return c.dirty }

// ClearDirty resets the dirty flag, typically after a successful save.
func (c *Chunk) ClearDirty() { c.dirty = false }

// Empty reports whether every voxel in the chunk is air.
func (c *Chunk) Empty() bool { return c.empty }

// MeshState returns the chunk's current mesh lifecycle state.
func (c *Chunk) MeshState() MeshState { return c.meshState }

// SetMeshState transitions the chunk's mesh lifecycle state explicitly,
// used by the mesh package's worker pool as it builds/cancels a mesh.
func (c *Chunk) SetMeshState(s MeshState) { c.meshState = s }

// Generation returns a counter incremented on every voxel write, used to
// detect whether a previously-built mesh is stale relative to voxel data.
func (c *Chunk) Generation() uint64 { return c.generation }

// LinkNeighbor installs a non-owning back-reference to an adjacent chunk.
// The chunk manager is responsible for wiring and tearing down these links
// as chunks load and unload; Chunk never allocates or frees a neighbor.
func (c *Chunk) LinkNeighbor(n voxel.Neighbor, other *Chunk) {
	c.neighbors[n] = other
}

// Neighbor returns the linked chunk in direction n, or nil if unlinked.
func (c *Chunk) Neighbor(n voxel.Neighbor) *Chunk {
	return c.neighbors[n]
}

// Voxels returns the chunk's backing array for bulk read access (codec
// serialization, mesh extraction). Callers must not mutate it directly;
// use Set so bookkeeping stays correct.
func (c *Chunk) Voxels() []voxel.Voxel {
	return c.voxels
}

// SetCancelFunc stores the cancellation hook for an in-flight progressive
// mesh build, so a later mesh-dirty event (e.g. a write arriving mid-build)
// can cancel stale work. Owned and invoked by the mesh package.
func (c *Chunk) SetCancelFunc(cancel func()) {
	c.cancelMeshGen = cancel
}

// CancelMeshGeneration cancels an in-flight mesh build for this chunk, if
// any is registered. It is not an error to call this when none is active.
func (c *Chunk) CancelMeshGeneration() {
	if c.cancelMeshGen != nil {
		c.cancelMeshGen()
		c.cancelMeshGen = nil
	}
}
