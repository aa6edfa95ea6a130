package chunk

import (
	"testing"

	"voxelengine/internal/voxel"
)

func newTestChunk() *Chunk {
	return New(voxel.ChunkCoord{}, 16)
}

func TestNewChunkIsEmpty(t *testing.T) {
	c := newTestChunk()
	if !c.Empty() {
		t.Fatal("new chunk should be empty")
	}
	if c.Dirty() {
		t.Fatal("new chunk should not be dirty")
	}
}

func TestSetMarksDirtyAndNonEmpty(t *testing.T) {
	c := newTestChunk()
	c.Set(1, 1, 1, voxel.Voxel{Type: 3})
	if !c.Dirty() {
		t.Fatal("expected dirty after write")
	}
	if c.Empty() {
		t.Fatal("expected non-empty after writing a solid voxel")
	}
	if got := c.At(1, 1, 1); got.Type != 3 {
		t.Fatalf("got %+v", got)
	}
}

func TestEmptyRecomputedOnErase(t *testing.T) {
	c := newTestChunk()
	c.Set(0, 0, 0, voxel.Voxel{Type: 1})
	c.Set(0, 0, 0, voxel.Air)
	if !c.Empty() {
		t.Fatal("chunk should be empty again after erasing its only voxel")
	}
}

func TestBoundaryWriteMarksNeighborMeshDirty(t *testing.T) {
	center := New(voxel.ChunkCoord{}, 16)
	neg := New(voxel.ChunkCoord{X: -1}, 16)
	center.LinkNeighbor(voxel.NeighborNegX, neg)
	center.SetMeshState(MeshBuilt)
	neg.SetMeshState(MeshBuilt)

	center.Set(0, 5, 5, voxel.Voxel{Type: 2})

	if neg.MeshState() != MeshDirty {
		t.Fatalf("expected neighbor mesh dirty, got %v", neg.MeshState())
	}
}

func TestInteriorWriteDoesNotDirtyNeighbor(t *testing.T) {
	center := New(voxel.ChunkCoord{}, 16)
	neg := New(voxel.ChunkCoord{X: -1}, 16)
	center.LinkNeighbor(voxel.NeighborNegX, neg)
	neg.SetMeshState(MeshBuilt)

	center.Set(8, 8, 8, voxel.Voxel{Type: 2})

	if neg.MeshState() != MeshBuilt {
		t.Fatalf("interior write should not dirty unrelated neighbor, got %v", neg.MeshState())
	}
}

func TestConcurrentWriteRejected(t *testing.T) {
	c := newTestChunk()
	end, err := c.BeginWrite()
	if err != nil {
		t.Fatalf("unexpected error on first writer: %v", err)
	}
	if _, err := c.BeginWrite(); err != ErrConcurrentWrite {
		t.Fatalf("expected ErrConcurrentWrite, got %v", err)
	}
	end()
	if _, err := c.BeginWrite(); err != nil {
		t.Fatalf("expected writer slot free after end(), got %v", err)
	}
}

func TestGenerationIncrementsOnWrite(t *testing.T) {
	c := newTestChunk()
	g0 := c.Generation()
	c.Set(2, 2, 2, voxel.Voxel{Type: 9})
	if c.Generation() == g0 {
		t.Fatal("expected generation to change after a write")
	}
}
