package structure

import (
	"github.com/go-gl/mathgl/mgl64"

	"voxelterrain.ai/internal/sim/world/logic/mathx"
	"voxelterrain.ai/internal/sim/world/terrain/noise"
	"voxelterrain.ai/internal/sim/world/terrain/voxel"
)

// PlaceFunc writes one voxel through the mutation protocol.
type PlaceFunc func(x, y, z int, t voxel.Type, overwrite bool)

// Generator inspects a column and optionally emits extra voxels. y is the
// column's adjusted top: the first free y above the terrain.
type Generator interface {
	ConditionMet(x, y, z int, billow noise.Module) bool
	Generate(place PlaceFunc, x, y, z int)
}

// Tree is a trunk with a round canopy. Trunk voxels overwrite, canopy
// voxels only fill empty cells.
type Tree struct {
	Seed           int64
	ChancePermille int
	// MinGround is the lowest column top a tree may stand on; columns
	// flooded to the liquid line have a top of -1.
	MinGround    int
	TrunkHeight  int
	CanopyRadius float64
	// CanopyOffset is the canopy centre's height above the trunk base.
	CanopyOffset int
}

func DefaultTree(seed int64) Tree {
	return Tree{
		Seed:           seed,
		ChancePermille: 8,
		MinGround:      0,
		TrunkHeight:    5,
		CanopyRadius:   3,
		CanopyOffset:   5,
	}
}

func (t Tree) ConditionMet(x, y, z int, billow noise.Module) bool {
	if y < t.MinGround {
		return false
	}
	if billow.Value(float64(x)/60.0, 0, float64(z)/60.0) <= 0 {
		return false
	}
	return mathx.Roll(mathx.Hash3(t.Seed, x, y, z), t.ChancePermille)
}

func (t Tree) Generate(place PlaceFunc, x, y, z int) {
	for i := 0; i < t.TrunkHeight; i++ {
		place(x, y+i, z, voxel.Wood, true)
	}
	Sphere(place, x, y+t.CanopyOffset, z, t.CanopyRadius, voxel.Foliage, false)
}

// Sphere places t at every offset of the bounding cube whose length is
// strictly below radius.
func Sphere(place PlaceFunc, cx, cy, cz int, radius float64, t voxel.Type, overwrite bool) {
	r := int(radius)
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			for dz := -r; dz <= r; dz++ {
				if (mgl64.Vec3{float64(dx), float64(dy), float64(dz)}).Len() < radius {
					place(cx+dx, cy+dy, cz+dz, t, overwrite)
				}
			}
		}
	}
}

// Run evaluates generators in order and invokes each whose condition holds.
func Run(gens []Generator, place PlaceFunc, billow noise.Module, x, y, z int) int {
	n := 0
	for _, g := range gens {
		if g.ConditionMet(x, y, z, billow) {
			g.Generate(place, x, y, z)
			n++
		}
	}
	return n
}
