// Package grid implements the thin world-space façade over chunkmanager:
// it translates world voxel coordinates to chunk+local coordinates, owns
// the world bounds AABB and default air voxel, and exposes the raycast
// and bulk-query operations callers use instead of reaching into
// chunkmanager/chunk directly. Grounded on
// dantero-ps-mini-mc-go/internal/world/world.go's World type, which plays
// the same "thin façade over the chunk store" role there.
package grid

import (
	"fmt"

	"voxelengine/internal/chunkmanager"
	"voxelengine/internal/codec"
	"voxelengine/internal/mesh"
	"voxelengine/internal/voxel"
)

// Grid owns a handle to the chunk manager plus the world's static extent
// and edge length; it does not own any chunk itself.
type Grid struct {
	manager *chunkmanager.Manager
	bounds  voxel.Bounds
	size    int32
	air     voxel.Voxel
}

// New constructs a façade over an existing manager. bounds is expressed
// in world block coordinates.
func New(manager *chunkmanager.Manager, bounds voxel.Bounds, size int32) *Grid {
	return &Grid{manager: manager, bounds: bounds, size: size, air: voxel.Air}
}

// Size returns the chunk edge length this grid was constructed with.
func (g *Grid) Size() int32 { return g.size }

// Bounds returns the world's static AABB in block coordinates.
func (g *Grid) Bounds() voxel.Bounds { return g.bounds }

// GetVoxel looks up the voxel at a world block position. A position whose
// chunk is not resident yields the grid's default (air) voxel rather than
// an error, matching the façade's "missing chunk reads as empty" contract.
func (g *Grid) GetVoxel(pos voxel.BlockCoord) voxel.Voxel {
	cc := voxel.ChunkOf(pos, g.size)
	lx, ly, lz := voxel.LocalOf(pos, g.size)
	c, ok := g.manager.Get(cc)
	if !ok {
		return g.air
	}
	return c.At(lx, ly, lz)
}

// SetVoxel writes a voxel at a world block position, auto-creating the
// owning chunk if it is absent and pos lies within the grid's bounds. A
// position outside bounds is a no-op error rather than a silent write.
func (g *Grid) SetVoxel(pos voxel.BlockCoord, v voxel.Voxel) error {
	if !g.bounds.Contains(pos) {
		return fmt.Errorf("grid: position %+v outside world bounds %+v", pos, g.bounds)
	}
	cc := voxel.ChunkOf(pos, g.size)
	lx, ly, lz := voxel.LocalOf(pos, g.size)
	c := g.manager.GetOrCreate(cc)
	end, err := c.BeginWrite()
	if err != nil {
		return err
	}
	defer end()
	c.Set(lx, ly, lz, v)
	g.manager.MarkDirty(cc)
	return nil
}

// Raycast runs the same 3D DDA the mesh package uses for per-chunk
// raycasts, but against this grid's world-spanning voxel function so a
// ray can cross chunk boundaries transparently.
func (g *Grid) Raycast(origin, dir [3]float64, maxDist float64) mesh.RaycastResult {
	return mesh.RaycastWorld(func(x, y, z int32) voxel.Voxel {
		return g.GetVoxel(voxel.BlockCoord{X: x, Y: y, Z: z})
	}, func(v voxel.Voxel) bool { return !v.IsAir() }, origin, dir, maxDist)
}

// Serialize writes the whole grid as a single BSER record: static
// metadata followed by every resident chunk, header fields first and the
// bulk chunk payload last.
func (g *Grid) Serialize(w *codec.Writer) error {
	resident := g.manager.Resident()
	return w.WriteObject([]codec.FieldWriter{
		{Name: "size", Body: func(w *codec.Writer) error { return w.WriteI32(g.size) }},
		{Name: "boundsMinX", Body: func(w *codec.Writer) error { return w.WriteI32(g.bounds.Min.X) }},
		{Name: "boundsMinY", Body: func(w *codec.Writer) error { return w.WriteI32(g.bounds.Min.Y) }},
		{Name: "boundsMinZ", Body: func(w *codec.Writer) error { return w.WriteI32(g.bounds.Min.Z) }},
		{Name: "boundsMaxX", Body: func(w *codec.Writer) error { return w.WriteI32(g.bounds.Max.X) }},
		{Name: "boundsMaxY", Body: func(w *codec.Writer) error { return w.WriteI32(g.bounds.Max.Y) }},
		{Name: "boundsMaxZ", Body: func(w *codec.Writer) error { return w.WriteI32(g.bounds.Max.Z) }},
		{Name: "defaultType", Body: func(w *codec.Writer) error { return w.WriteU16(g.air.Type) }},
		{Name: "chunkCount", Body: func(w *codec.Writer) error { return w.WriteU32(uint32(len(resident))) }},
		{Name: "chunks", Body: func(w *codec.Writer) error {
			return g.writeChunks(w, resident)
		}},
	})
}

// writeChunks emits one nested tagged object per resident chunk, directly
// through the same writer (and its string-interning cache) rather than via
// a separate sub-stream — a missing chunk is simply skipped, so the array
// length may be less than len(coords).
func (g *Grid) writeChunks(w *codec.Writer, coords []voxel.ChunkCoord) error {
	present := coords[:0:0]
	for _, cc := range coords {
		if _, ok := g.manager.Get(cc); ok {
			present = append(present, cc)
		}
	}
	return w.WriteArray(codec.TagObject, len(present), func(w *codec.Writer, i int) error {
		c, _ := g.manager.Get(present[i])
		voxels := c.Voxels()
		return w.WriteObject([]codec.FieldWriter{
			{Name: "x", Body: func(w *codec.Writer) error { return w.WriteI32(c.Coord.X) }},
			{Name: "y", Body: func(w *codec.Writer) error { return w.WriteI32(c.Coord.Y) }},
			{Name: "z", Body: func(w *codec.Writer) error { return w.WriteI32(c.Coord.Z) }},
			{Name: "voxels", Body: func(w *codec.Writer) error {
				return w.WriteArray(codec.TagU32, len(voxels), func(w *codec.Writer, j int) error {
					return w.WriteU32(uint32(voxels[j].Type) | uint32(voxels[j].Data)<<16)
				})
			}},
		})
	})
}

// Deserialize rebuilds grid metadata from a stream written by Serialize.
// It does not repopulate the chunk manager's resident set directly (that
// remains the manager's job via storage.ChunkStore); it only restores the
// façade's own static fields (size, bounds, default voxel) and reports
// the stored chunk count for the caller to reconcile against its store.
func Deserialize(r *codec.Reader, manager *chunkmanager.Manager) (*Grid, int, error) {
	hdr, err := r.BeginObject()
	if err != nil {
		return nil, 0, err
	}
	values := make(map[string]any, len(hdr.FieldOrder))
	for _, name := range hdr.FieldOrder {
		switch name {
		case "size", "boundsMinX", "boundsMinY", "boundsMinZ", "boundsMaxX", "boundsMaxY", "boundsMaxZ":
			v, err := r.ReadI32()
			if err != nil {
				return nil, 0, err
			}
			values[name] = v
		case "defaultType":
			v, err := r.ReadU16()
			if err != nil {
				return nil, 0, err
			}
			values[name] = v
		case "chunkCount":
			v, err := r.ReadU32()
			if err != nil {
				return nil, 0, err
			}
			values[name] = v
		default:
			if err := r.SkipValue(); err != nil {
				return nil, 0, err
			}
		}
	}
	g := &Grid{
		manager: manager,
		size:    values["size"].(int32),
		bounds: voxel.Bounds{
			Min: voxel.BlockCoord{X: values["boundsMinX"].(int32), Y: values["boundsMinY"].(int32), Z: values["boundsMinZ"].(int32)},
			Max: voxel.BlockCoord{X: values["boundsMaxX"].(int32), Y: values["boundsMaxY"].(int32), Z: values["boundsMaxZ"].(int32)},
		},
		air: voxel.Voxel{Type: values["defaultType"].(uint16)},
	}
	count, _ := values["chunkCount"].(uint32)
	return g, int(count), nil
}
