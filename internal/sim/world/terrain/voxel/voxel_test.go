package voxel

import "testing"

func TestClassification(t *testing.T) {
	cases := []struct {
		t             Type
		solid, liquid bool
	}{
		{0, true, false},
		{1, true, false},
		{63, true, false},
		{64, false, true},
		{70, false, true},
		{127, false, true},
		{128, true, false},
		{130, true, false},
		{Foliage, true, false},
	}
	for _, c := range cases {
		if IsSolid(c.t) != c.solid {
			t.Fatalf("IsSolid(%d)=%v want %v", c.t, IsSolid(c.t), c.solid)
		}
		if IsLiquid(c.t) != c.liquid {
			t.Fatalf("IsLiquid(%d)=%v want %v", c.t, IsLiquid(c.t), c.liquid)
		}
	}
}
