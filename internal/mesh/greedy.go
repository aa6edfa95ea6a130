// Package mesh extracts renderable geometry from a chunk's voxel grid:
// greedy meshing (the primary path), a simple per-face fallback, ambient
// occlusion via hemisphere ray sampling, LOD simplification, a DDA voxel
// raycast, and a cancellable worker pool that builds meshes off the main
// thread.
//
// The greedy algorithm's structure — per-axis mask sweep, rectangle-merge
// expansion, mask zeroing after each emitted quad — is adapted directly
// from dantero-ps-mini-mc-go/internal/meshing/greedy.go's
// buildGreedyForDirection, generalized from that file's fixed 6-direction
// BlockType grid to an arbitrary voxel.Voxel chunk with real neighbor-chunk
// visibility tests (chunk.Chunk.Neighbor) instead of a single monolithic
// World lookup.
package mesh

import (
	"voxelengine/internal/chunk"
	"voxelengine/internal/voxel"
)

// VertexStride is the number of uint32 words per emitted vertex: position
// (packed x/y/z + face normal) and material (voxel type in the low 16 bits,
// voxel data in the high 16 bits), matching the teacher's two-word packed
// vertex layout.
const VertexStride = 2

// face identifies one of the six mesh-able directions.
type face struct {
	axis       int // 0=x,1=y,2=z
	sign       int32
	neighborID voxel.Neighbor
}

var faces = []face{
	{axis: 0, sign: 1, neighborID: voxel.NeighborPosX},
	{axis: 0, sign: -1, neighborID: voxel.NeighborNegX},
	{axis: 1, sign: 1, neighborID: voxel.NeighborPosY},
	{axis: 1, sign: -1, neighborID: voxel.NeighborNegY},
	{axis: 2, sign: 1, neighborID: voxel.NeighborPosZ},
	{axis: 2, sign: -1, neighborID: voxel.NeighborNegZ},
}

// Mesh is the extracted geometry for one chunk, ready for upload via
// external.MeshUpload.
type Mesh struct {
	Vertices []uint32
	Indices  []uint32
}

// CancelToken lets a long-running mesh build be aborted mid-sweep, checked
// between each face-direction pass.
type CancelToken struct {
	cancelled bool
}

func NewCancelToken() *CancelToken         { return &CancelToken{} }
func (t *CancelToken) Cancel()             { t.cancelled = true }
func (t *CancelToken) Cancelled() bool     { return t.cancelled }

// sampler abstracts voxel lookups across a chunk boundary: it answers
// "what voxel sits at this local coordinate", consulting the linked
// neighbor chunk when the coordinate falls outside [0,Size).
type sampler struct {
	c *chunk.Chunk
}

func (s sampler) at(lx, ly, lz int32) voxel.Voxel {
	size := s.c.Size
	if lx >= 0 && lx < size && ly >= 0 && ly < size && lz >= 0 && lz < size {
		return s.c.At(lx, ly, lz)
	}
	// Determine which single axis crossed the boundary (face sweeps only
	// ever step one unit past an edge) and consult that neighbor.
	var n voxel.Neighbor
	var nlx, nly, nlz int32 = lx, ly, lz
	switch {
	case lx < 0:
		n, nlx = voxel.NeighborNegX, size-1
	case lx >= size:
		n, nlx = voxel.NeighborPosX, 0
	case ly < 0:
		n, nly = voxel.NeighborNegY, size-1
	case ly >= size:
		n, nly = voxel.NeighborPosY, 0
	case lz < 0:
		n, nlz = voxel.NeighborNegZ, size-1
	case lz >= size:
		n, nlz = voxel.NeighborPosZ, 0
	}
	nb := s.c.Neighbor(n)
	if nb == nil {
		return voxel.Air // unloaded neighbor: treat as air, matching teacher's "nil or air" visibility rule
	}
	return nb.At(nlx, nly, nlz)
}

// BuildGreedy extracts a greedy-meshed Mesh for c, consulting linked
// neighbor chunks for boundary visibility. cancel, if non-nil, is checked
// between face directions so a stale in-flight build can abort early.
func BuildGreedy(c *chunk.Chunk, opaque func(voxel.Voxel) bool, cancel *CancelToken) *Mesh {
	m := &Mesh{}
	s := sampler{c: c}
	for _, f := range faces {
		if cancel != nil && cancel.Cancelled() {
			return m
		}
		buildDirection(c, s, f, opaque, m)
	}
	return m
}

func buildDirection(c *chunk.Chunk, s sampler, f face, opaque func(voxel.Voxel) bool, m *Mesh) {
	size := c.Size
	u := (f.axis + 1) % 3
	v := (f.axis + 2) % 3

	mask := make([]voxel.Voxel, size*size)
	visible := make([]bool, size*size)

	for layer := int32(0); layer < size; layer++ {
		for i := range mask {
			visible[i] = false
		}
		for uu := int32(0); uu < size; uu++ {
			for vv := int32(0); vv < size; vv++ {
				lc := [3]int32{}
				lc[f.axis] = layer
				lc[u] = uu
				lc[v] = vv
				here := s.at(lc[0], lc[1], lc[2])
				if !opaque(here) {
					continue
				}
				nc := lc
				nc[f.axis] += f.sign
				there := s.at(nc[0], nc[1], nc[2])
				if opaque(there) {
					continue // face hidden: neighbor in this direction is also solid
				}
				idx := uu*size + vv
				mask[idx] = here
				visible[idx] = true
			}
		}

		for uu := int32(0); uu < size; uu++ {
			for vv := int32(0); vv < size; vv++ {
				idx := uu*size + vv
				if !visible[idx] {
					continue
				}
				here := mask[idx]

				// expand width along v
				w := int32(1)
				for vv+w < size {
					nIdx := uu*size + (vv + w)
					if !visible[nIdx] || mask[nIdx] != here {
						break
					}
					w++
				}

				// expand height along u, requiring the whole width-row matches
				h := int32(1)
			heightExpand:
				for uu+h < size {
					for k := int32(0); k < w; k++ {
						nIdx := (uu+h)*size + (vv + k)
						if !visible[nIdx] || mask[nIdx] != here {
							break heightExpand
						}
					}
					h++
				}

				// zero the covered region
				for du := int32(0); du < h; du++ {
					for dv := int32(0); dv < w; dv++ {
						visible[(uu+du)*size+(vv+dv)] = false
					}
				}

				emitQuad(m, f, layer, uu, vv, h, w, here)
			}
		}
	}
}

// emitQuad appends two CCW triangles for one merged rectangle, packing
// each vertex's position/normal/material into VertexStride uint32 words.
func emitQuad(m *Mesh, f face, layer, u0, v0, h, w int32, vx voxel.Voxel) {
	base := uint32(len(m.Vertices) / VertexStride)

	corners := [4][3]int32{}
	fillCorner := func(i int, du, dv int32) {
		c := [3]int32{}
		c[f.axis] = layer
		if f.sign > 0 {
			c[f.axis]++
		}
		c[(f.axis+1)%3] = u0 + du
		c[(f.axis+2)%3] = v0 + dv
		corners[i] = c
	}
	fillCorner(0, 0, 0)
	fillCorner(1, h, 0)
	fillCorner(2, h, w)
	fillCorner(3, 0, w)

	normal := encodeNormal(f)
	for _, c := range corners {
		m.Vertices = append(m.Vertices, packPosition(c[0], c[1], c[2], normal), packMaterial(vx))
	}

	// two CCW triangles, winding matched to outward-facing normal sign
	if f.sign > 0 {
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	} else {
		m.Indices = append(m.Indices, base, base+2, base+1, base, base+3, base+2)
	}
}

func encodeNormal(f face) uint32 {
	// 0..5 matching the faces slice order, packed in the low 3 bits.
	idx := f.axis * 2
	if f.sign < 0 {
		idx++
	}
	return uint32(idx)
}

func packPosition(x, y, z int32, normal uint32) uint32 {
	return uint32(x&0x1F) | uint32(y&0x1FF)<<5 | uint32(z&0x1F)<<14 | (normal&0x7)<<19
}

func packMaterial(v voxel.Voxel) uint32 {
	return uint32(v.Type) | uint32(v.Data)<<16
}

// BuildSimple is the non-greedy path: one quad per visible face, no
// merging, mirroring the teacher's simpler per-cube path before
// BuildGreedyMeshForChunk was introduced. Nothing in this module selects
// it automatically; the worker pool always builds with BuildGreedy.
func BuildSimple(c *chunk.Chunk, opaque func(voxel.Voxel) bool) *Mesh {
	m := &Mesh{}
	s := sampler{c: c}
	size := c.Size
	for x := int32(0); x < size; x++ {
		for y := int32(0); y < size; y++ {
			for z := int32(0); z < size; z++ {
				here := c.At(x, y, z)
				if !opaque(here) {
					continue
				}
				for _, f := range faces {
					nc := [3]int32{x, y, z}
					nc[f.axis] += f.sign
					if opaque(s.at(nc[0], nc[1], nc[2])) {
						continue
					}
					emitQuad(m, f, pickLayer(f, x, y, z), pickU(f, x, y, z), pickV(f, x, y, z), 1, 1, here)
				}
			}
		}
	}
	return m
}

func pickLayer(f face, x, y, z int32) int32 {
	c := [3]int32{x, y, z}
	return c[f.axis]
}
func pickU(f face, x, y, z int32) int32 {
	c := [3]int32{x, y, z}
	return c[(f.axis+1)%3]
}
func pickV(f face, x, y, z int32) int32 {
	c := [3]int32{x, y, z}
	return c[(f.axis+2)%3]
}
