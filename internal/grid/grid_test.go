package grid

import (
	"bytes"
	"testing"

	"voxelengine/internal/chunkmanager"
	"voxelengine/internal/codec"
	"voxelengine/internal/external"
	"voxelengine/internal/storage"
	"voxelengine/internal/voxel"
)

func newTestGrid(t *testing.T) *Grid {
	t.Helper()
	mgr := chunkmanager.New(16, storage.NewMemoryStore(), external.NopLogger{})
	t.Cleanup(mgr.Close)
	bounds := voxel.Bounds{
		Min: voxel.BlockCoord{X: -1024, Y: -1024, Z: -1024},
		Max: voxel.BlockCoord{X: 1024, Y: 1024, Z: 1024},
	}
	return New(mgr, bounds, 16)
}

func TestGetVoxelOnMissingChunkReturnsAir(t *testing.T) {
	g := newTestGrid(t)
	v := g.GetVoxel(voxel.BlockCoord{X: 5, Y: 5, Z: 5})
	if !v.IsAir() {
		t.Fatalf("expected air on unloaded chunk, got %+v", v)
	}
}

func TestSetVoxelAutoCreatesChunk(t *testing.T) {
	g := newTestGrid(t)
	pos := voxel.BlockCoord{X: -5, Y: 3, Z: 20}
	if err := g.SetVoxel(pos, voxel.Voxel{Type: 7}); err != nil {
		t.Fatalf("SetVoxel: %v", err)
	}
	got := g.GetVoxel(pos)
	if got.Type != 7 {
		t.Fatalf("expected type 7, got %+v", got)
	}
}

func TestSetVoxelRejectsOutOfBounds(t *testing.T) {
	g := newTestGrid(t)
	err := g.SetVoxel(voxel.BlockCoord{X: 100000, Y: 0, Z: 0}, voxel.Voxel{Type: 1})
	if err == nil {
		t.Fatal("expected out-of-bounds write to fail")
	}
}

func TestRaycastCrossesChunkBoundary(t *testing.T) {
	g := newTestGrid(t)
	if err := g.SetVoxel(voxel.BlockCoord{X: 0, Y: 0, Z: 20}, voxel.Voxel{Type: 1}); err != nil {
		t.Fatalf("SetVoxel: %v", err)
	}
	res := g.Raycast([3]float64{0.5, 0.5, 0.5}, [3]float64{0, 0, 1}, 40)
	if !res.Hit {
		t.Fatal("expected raycast to hit voxel across chunk boundary at z=20")
	}
	if res.Position[2] != 20 {
		t.Fatalf("expected hit at z=20, got %+v", res.Position)
	}
}

func TestSerializeDeserializeRoundTripsMetadata(t *testing.T) {
	g := newTestGrid(t)
	var buf bytes.Buffer
	w := codec.NewWriter(&buf)
	if err := g.Serialize(w); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	r := codec.NewReader(&buf)
	mgr := chunkmanager.New(16, storage.NewMemoryStore(), external.NopLogger{})
	defer mgr.Close()
	got, count, err := Deserialize(r, mgr)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if got.Size() != g.Size() {
		t.Fatalf("expected size %d, got %d", g.Size(), got.Size())
	}
	if got.Bounds() != g.Bounds() {
		t.Fatalf("expected bounds %+v, got %+v", g.Bounds(), got.Bounds())
	}
	if count != 0 {
		t.Fatalf("expected zero resident chunks on a fresh grid, got %d", count)
	}
}
