package storage

import (
	"bytes"
	"testing"

	"voxelengine/internal/chunk"
	"voxelengine/internal/voxel"
)

func populatedChunk(coord voxel.ChunkCoord, size int32) *chunk.Chunk {
	c := chunk.New(coord, size)
	c.Set(1, 2, 3, voxel.Voxel{Type: 5, Data: 1})
	c.Set(size-1, size-1, size-1, voxel.Voxel{Type: 9})
	return c
}

func TestDiskStoreSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskStore(dir)
	coord := voxel.ChunkCoord{X: 2, Y: -1, Z: 7}
	original := populatedChunk(coord, 16)

	if err := store.Save(coord, original); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, ok, err := store.Load(coord, 16)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatal("expected chunk to be found")
	}
	if got := loaded.At(1, 2, 3); got.Type != 5 || got.Data != 1 {
		t.Fatalf("expected voxel {5,1} at (1,2,3), got %+v", got)
	}
	if got := loaded.At(15, 15, 15); got.Type != 9 {
		t.Fatalf("expected voxel type 9 at (15,15,15), got %+v", got)
	}
	if loaded.Dirty() {
		t.Fatal("freshly loaded chunk should be clean")
	}
}

func TestDiskStoreLoadMissingReturnsNotFound(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskStore(dir)
	_, ok, err := store.Load(voxel.ChunkCoord{X: 99}, 16)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for a chunk that was never saved")
	}
}

func TestMemoryStoreSaveLoadRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	coord := voxel.ChunkCoord{X: 0, Y: 0, Z: 0}
	original := populatedChunk(coord, 16)

	if err := store.Save(coord, original); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, ok, err := store.Load(coord, 16)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatal("expected chunk to be found")
	}
	if got := loaded.At(1, 2, 3); got.Type != 5 {
		t.Fatalf("expected voxel type 5 at (1,2,3), got %+v", got)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	entries := []SnapshotEntry{
		{Coord: voxel.ChunkCoord{X: 1}, Size: 16, Voxels: populatedChunk(voxel.ChunkCoord{X: 1}, 16).Voxels()},
	}
	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, entries); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	got, err := ReadSnapshot(&buf)
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	if len(got) != 1 || len(got[0].Voxels) != len(entries[0].Voxels) {
		t.Fatalf("snapshot round trip mismatch: %+v", got)
	}
}
