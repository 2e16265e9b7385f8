package mathx

import "testing"

func TestFloorDivAndMod_Negative(t *testing.T) {
	cases := []struct{ a, q, m int }{
		{0, 0, 0},
		{15, 0, 15},
		{16, 1, 0},
		{-1, -1, 15},
		{-16, -1, 0},
		{-17, -2, 15},
	}
	for _, c := range cases {
		if got := FloorDiv(c.a, 16); got != c.q {
			t.Fatalf("FloorDiv(%d,16)=%d want %d", c.a, got, c.q)
		}
		if got := Mod(c.a, 16); got != c.m {
			t.Fatalf("Mod(%d,16)=%d want %d", c.a, got, c.m)
		}
	}
}

func TestHash3_DeterministicAndSeeded(t *testing.T) {
	if Hash3(7, 1, 2, 3) != Hash3(7, 1, 2, 3) {
		t.Fatalf("hash not deterministic")
	}
	if Hash3(7, 1, 2, 3) == Hash3(8, 1, 2, 3) {
		t.Fatalf("seed should change hash")
	}
	if Hash3(7, 1, 2, 3) == Hash3(7, 3, 2, 1) {
		t.Fatalf("axes should not commute")
	}
}

func TestRoll_Bounds(t *testing.T) {
	if Roll(0, 0) {
		t.Fatalf("permille 0 must never roll")
	}
	if !Roll(999, 1000) {
		t.Fatalf("permille 1000 must always roll")
	}
	if Roll(1005, 5) {
		t.Fatalf("1005%%1000=5 is not < 5")
	}
}
