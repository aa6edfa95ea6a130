// Package storage persists chunks to disk using the BSER codec
// (internal/codec), and offers a secondary debug snapshot path via
// encoding/gob+compress/zlib. Generation parameters are not persisted
// here. The on-disk layout — one file per chunk under a root directory,
// atomic write-then-rename — is grounded on
// firestar-voxel-world/chunk-server/internal/world/storage_disk.go's
// diskBlockStorage, generalized from that file's append-log-plus-index
// design (suited to a column store) to whole-chunk snapshot files (suited
// to this module's dense SxSxS array).
package storage

import (
	"bytes"
	"compress/zlib"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"voxelengine/internal/chunk"
	"voxelengine/internal/codec"
	"voxelengine/internal/voxel"
)

// ChunkStore is the persistence interface chunkmanager.Manager depends on,
// letting tests substitute an in-memory implementation.
type ChunkStore interface {
	Save(coord voxel.ChunkCoord, c *chunk.Chunk) error
	Load(coord voxel.ChunkCoord, size int32) (*chunk.Chunk, bool, error)
}

// DiskStore persists each chunk as its own BSER file under root, named by
// coordinate, matching the teacher's one-file-per-unit convention but with
// chunk granularity instead of per-column append logs.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) *DiskStore {
	return &DiskStore{root: root}
}

func (d *DiskStore) pathFor(coord voxel.ChunkCoord) string {
	return filepath.Join(d.root, fmt.Sprintf("%d_%d_%d.bser", coord.X, coord.Y, coord.Z))
}

// Save writes c to disk via a temp-file-then-atomic-rename sequence,
// exactly the pattern storage_disk.go uses for its index file, to avoid a
// torn write being observed by a concurrent reader or a crash mid-write.
func (d *DiskStore) Save(coord voxel.ChunkCoord, c *chunk.Chunk) error {
	if err := os.MkdirAll(d.root, 0o755); err != nil {
		return fmt.Errorf("storage: mkdir: %w", err)
	}

	var buf bytes.Buffer
	w := codec.NewWriter(&buf)
	if err := w.WriteHeader(codec.CurrentVersion); err != nil {
		return err
	}
	if err := encodeChunk(w, c); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}

	final := d.pathFor(coord)
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("storage: write temp file: %w", err)
	}
	if err := os.Rename(tmp, final); err != nil {
		return fmt.Errorf("storage: rename: %w", err)
	}
	return nil
}

// Load reads a chunk back from disk, returning (nil, false, nil) if no
// file exists for coord (not an error: an unloaded/never-generated chunk
// is an expected condition, not a failure).
func (d *DiskStore) Load(coord voxel.ChunkCoord, size int32) (*chunk.Chunk, bool, error) {
	data, err := os.ReadFile(d.pathFor(coord))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: read: %w", err)
	}

	r := codec.NewReader(bytes.NewReader(data))
	v, err := r.ReadHeader()
	if err != nil {
		return nil, false, err
	}
	if !codec.CurrentVersion.Compatible(v) {
		return nil, false, fmt.Errorf("storage: incompatible chunk version %+v", v)
	}
	c, err := decodeChunk(r, coord, size)
	if err != nil {
		return nil, false, err
	}
	return c, true, nil
}

func encodeChunk(w *codec.Writer, c *chunk.Chunk) error {
	voxels := c.Voxels()
	return w.WriteObject([]codec.FieldWriter{
		{Name: "coordX", Body: func(w *codec.Writer) error { return w.WriteI32(c.Coord.X) }},
		{Name: "coordY", Body: func(w *codec.Writer) error { return w.WriteI32(c.Coord.Y) }},
		{Name: "coordZ", Body: func(w *codec.Writer) error { return w.WriteI32(c.Coord.Z) }},
		{Name: "size", Body: func(w *codec.Writer) error { return w.WriteI32(c.Size) }},
		{Name: "voxels", Body: func(w *codec.Writer) error {
			return w.WriteArray(codec.TagU32, len(voxels), func(w *codec.Writer, i int) error {
				packed := uint32(voxels[i].Type) | uint32(voxels[i].Data)<<16
				return w.WriteU32(packed)
			})
		}},
	})
}

// decodeChunk reads the body block written by encodeChunk. Bodies follow
// the object's field directory strictly in declared order (see
// codec.Writer.WriteObject), so this reads coordX/Y/Z, size, then the
// voxel array in that fixed sequence rather than dispatching on field
// name — cheaper than FindField-based random access and correct as long
// as encodeChunk's field order here matches.
func decodeChunk(r *codec.Reader, coord voxel.ChunkCoord, size int32) (*chunk.Chunk, error) {
	hdr, err := r.BeginObject()
	if err != nil {
		return nil, err
	}
	if !hdr.HasField("voxels") {
		return nil, fmt.Errorf("storage: chunk record missing voxels field")
	}

	for _, name := range []string{"coordX", "coordY", "coordZ", "size"} {
		if err := r.SkipValue(); err != nil {
			return nil, fmt.Errorf("storage: skip %s: %w", name, err)
		}
	}

	c := chunk.New(coord, size)
	if err := readVoxelArray(r, c); err != nil {
		return nil, err
	}
	c.ClearDirty()
	return c, nil
}

func readVoxelArray(r *codec.Reader, c *chunk.Chunk) error {
	n, decode, err := r.BeginArray()
	if err != nil {
		return fmt.Errorf("storage: begin voxel array: %w", err)
	}
	size := c.Size
	for i := uint32(0); i < n; i++ {
		packed, err := decode(r)
		if err != nil {
			return fmt.Errorf("storage: read voxel %d: %w", i, err)
		}
		v := voxel.Voxel{Type: uint16(packed & 0xFFFF), Data: uint16(packed >> 16)}
		if v.IsAir() {
			continue
		}
		lz := int32(i) / (size * size)
		rem := int32(i) % (size * size)
		ly := rem / size
		lx := rem % size
		c.Set(lx, ly, lz, v)
	}
	return nil
}

// Debug snapshot export/import: secondary, non-authoritative path using
// gob+zlib, grounded on firestar-voxel-world's disk storage compression
// choice, for dumping a manager's resident set for offline inspection.

// SnapshotEntry is one chunk's voxel payload in a debug snapshot.
type SnapshotEntry struct {
	Coord  voxel.ChunkCoord
	Size   int32
	Voxels []voxel.Voxel
}

// WriteSnapshot gob-encodes and zlib-compresses entries to w.
func WriteSnapshot(w io.Writer, entries []SnapshotEntry) error {
	zw := zlib.NewWriter(w)
	enc := gob.NewEncoder(zw)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("storage: encode snapshot: %w", err)
	}
	return zw.Close()
}

// ReadSnapshot decompresses and gob-decodes a debug snapshot written by
// WriteSnapshot.
func ReadSnapshot(r io.Reader) ([]SnapshotEntry, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("storage: zlib reader: %w", err)
	}
	defer zr.Close()
	var entries []SnapshotEntry
	dec := gob.NewDecoder(zr)
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("storage: decode snapshot: %w", err)
	}
	return entries, nil
}

// MemoryStore is an in-memory ChunkStore, used by tests; the chunk
// manager uses whichever ChunkStore its caller passes to New.
type MemoryStore struct {
	chunks map[voxel.ChunkCoord][]voxel.Voxel
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{chunks: make(map[voxel.ChunkCoord][]voxel.Voxel)}
}

func (m *MemoryStore) Save(coord voxel.ChunkCoord, c *chunk.Chunk) error {
	cp := make([]voxel.Voxel, len(c.Voxels()))
	copy(cp, c.Voxels())
	m.chunks[coord] = cp
	return nil
}

func (m *MemoryStore) Load(coord voxel.ChunkCoord, size int32) (*chunk.Chunk, bool, error) {
	data, ok := m.chunks[coord]
	if !ok {
		return nil, false, nil
	}
	c := chunk.New(coord, size)
	for i, v := range data {
		if v.IsAir() {
			continue
		}
		lz := int32(i) / (size * size)
		rem := int32(i) % (size * size)
		ly := rem / size
		lx := rem % size
		c.Set(lx, ly, lz, v)
	}
	c.ClearDirty()
	return c, true, nil
}
