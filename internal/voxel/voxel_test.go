package voxel

import "testing"

func TestFloorDivNegativeSafe(t *testing.T) {
	cases := []struct{ a, b, want int32 }{
		{-1, 16, -1},
		{-16, 16, -1},
		{-17, 16, -2},
		{0, 16, 0},
		{15, 16, 0},
		{16, 16, 1},
	}
	for _, c := range cases {
		if got := FloorDiv(c.a, c.b); got != c.want {
			t.Errorf("FloorDiv(%d,%d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestFloorModAlwaysNonNegative(t *testing.T) {
	for a := int32(-33); a <= 33; a++ {
		m := FloorMod(a, 16)
		if m < 0 || m >= 16 {
			t.Fatalf("FloorMod(%d,16) = %d out of range", a, m)
		}
	}
}

func TestChunkAndLocalRoundTrip(t *testing.T) {
	const s = int32(16)
	coords := []BlockCoord{{X: 0, Y: 0, Z: 0}, {X: -1, Y: -1, Z: -1}, {X: 33, Y: -40, Z: 5}}
	for _, b := range coords {
		c := ChunkOf(b, s)
		lx, ly, lz := LocalOf(b, s)
		rebuilt := BlockCoord{X: c.X*s + lx, Y: c.Y*s + ly, Z: c.Z*s + lz}
		if rebuilt != b {
			t.Errorf("round trip failed for %+v: got %+v", b, rebuilt)
		}
	}
}

func TestIndexWithinBounds(t *testing.T) {
	const s = int32(16)
	seen := make(map[int]bool)
	for z := int32(0); z < s; z++ {
		for y := int32(0); y < s; y++ {
			for x := int32(0); x < s; x++ {
				idx := Index(x, y, z, s)
				if idx < 0 || idx >= int(s*s*s) {
					t.Fatalf("index %d out of bounds for (%d,%d,%d)", idx, x, y, z)
				}
				if seen[idx] {
					t.Fatalf("duplicate index %d for (%d,%d,%d)", idx, x, y, z)
				}
				seen[idx] = true
			}
		}
	}
}

func TestNeighborOffsetsAreUnique(t *testing.T) {
	seen := make(map[ChunkCoord]bool)
	base := ChunkCoord{X: 5, Y: 5, Z: 5}
	for _, n := range All() {
		next := base.Add(n)
		if seen[next] {
			t.Fatalf("duplicate neighbor coord %+v", next)
		}
		seen[next] = true
	}
}

func TestAirIsZeroValue(t *testing.T) {
	var v Voxel
	if !v.IsAir() {
		t.Fatal("zero value Voxel should be air")
	}
	if !Air.IsAir() {
		t.Fatal("Air constant should be air")
	}
}
