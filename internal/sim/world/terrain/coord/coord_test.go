package coord

import "testing"

func TestPackUnpack_RoundTrip(t *testing.T) {
	vals := []int{MinPacked, MinPacked + 1, -2_000_000 / ChunkSize, -17, -16, -1, 0, 1, 15, 16, 125_000, MaxPacked - 1, MaxPacked}
	for _, x := range vals {
		for _, y := range vals {
			for _, z := range vals {
				gx, gy, gz := Unpack(Pack(x, y, z))
				if gx != x || gy != y || gz != z {
					t.Fatalf("Unpack(Pack(%d,%d,%d)) = (%d,%d,%d)", x, y, z, gx, gy, gz)
				}
			}
		}
	}
}

func TestPack_NoCollisionsNearOrigin(t *testing.T) {
	seen := map[Key][3]int{}
	for x := -20; x <= 20; x++ {
		for y := -20; y <= 20; y++ {
			for z := -20; z <= 20; z++ {
				k := Pack(x, y, z)
				if prev, ok := seen[k]; ok {
					t.Fatalf("collision: %v and (%d,%d,%d)", prev, x, y, z)
				}
				seen[k] = [3]int{x, y, z}
			}
		}
	}
}

func TestChunkOf_FloorsNegatives(t *testing.T) {
	cases := []struct {
		x, y, z    int
		cx, cy, cz int
	}{
		{0, 0, 0, 0, 0, 0},
		{15, 15, 15, 0, 0, 0},
		{16, -1, -16, 1, -1, -1},
		{-17, -32, 31, -2, -2, 1},
		{-2_000_000, 2_000_000, -1, -125_000, 125_000, -1},
	}
	for _, c := range cases {
		cx, cy, cz := ChunkOf(c.x, c.y, c.z)
		if cx != c.cx || cy != c.cy || cz != c.cz {
			t.Fatalf("ChunkOf(%d,%d,%d)=(%d,%d,%d) want (%d,%d,%d)", c.x, c.y, c.z, cx, cy, cz, c.cx, c.cy, c.cz)
		}
	}
}

func TestResolve_OriginPlusLocalIsIdentity(t *testing.T) {
	for _, p := range [][3]int{{-1, -1, -1}, {-16, 0, 33}, {1_999_999, -1_999_999, 7}} {
		ck, lk := Resolve(p[0], p[1], p[2])
		cx, cy, cz := Unpack(ck)
		lx, ly, lz := Unpack(lk)
		if lx < 0 || lx >= ChunkSize || ly < 0 || ly >= ChunkSize || lz < 0 || lz >= ChunkSize {
			t.Fatalf("local out of range for %v: (%d,%d,%d)", p, lx, ly, lz)
		}
		ox, oy, oz := ChunkOrigin(cx, cy, cz)
		if ox+lx != p[0] || oy+ly != p[1] || oz+lz != p[2] {
			t.Fatalf("origin+local != %v", p)
		}
	}
}

func TestPack_AxisRange(t *testing.T) {
	if MinPacked != -1_048_576 || MaxPacked != 1_048_575 {
		t.Fatalf("axis range [%d, %d]", MinPacked, MaxPacked)
	}
	// Chunk keys for the whole +-2,000,000 voxel range fit with room to spare.
	if c := 2_000_000 / ChunkSize; c > MaxPacked || -c-1 < MinPacked {
		t.Fatalf("chunk coordinate %d outside packed range", c)
	}
	if Pack(MaxPacked+1, 0, 0) != Pack(MinPacked, 0, 0) {
		t.Fatalf("out-of-range values should wrap")
	}
}
