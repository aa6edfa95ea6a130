package mesh

import (
	"testing"
	"time"

	"voxelengine/internal/chunk"
	"voxelengine/internal/external"
	"voxelengine/internal/voxel"
)

func TestPoolBuildsMeshAsynchronously(t *testing.T) {
	p := NewPool(2, 8, external.NopLogger{})
	defer p.Shutdown()

	c := chunk.New(voxel.ChunkCoord{}, 16)
	c.Set(3, 3, 3, voxel.Voxel{Type: 1})

	results := make(chan Result, 1)
	p.Submit(Job{Chunk: c, Opaque: opaqueNonAir, ResultChan: results})

	select {
	case res := <-results:
		if res.Cancelled || res.Err != nil {
			t.Fatalf("unexpected result: %+v", res)
		}
		if len(res.Mesh.Indices) == 0 {
			t.Fatal("expected a non-empty mesh")
		}
		if c.MeshState() != chunk.MeshBuilt {
			t.Fatalf("expected chunk mesh state Built, got %v", c.MeshState())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for mesh build")
	}
}

func TestPoolShutdownStopsWorkers(t *testing.T) {
	p := NewPool(1, 4, external.NopLogger{})
	p.Shutdown()
	// Shutdown waits on every worker, so returning here without a
	// deadlock means all workers exited after the jobs channel closed.
}
