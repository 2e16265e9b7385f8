package world

import (
	"math/rand"

	"voxelterrain.ai/internal/sim/world/terrain/noise"
	"voxelterrain.ai/internal/sim/world/terrain/structure"
	"voxelterrain.ai/internal/sim/world/terrain/voxel"
)

const (
	simpleScale       = 16.0
	simpleTreeChance  = 0.01
	simpleTrunkHeight = 5
	simpleCanopyLift  = 6
	simpleCanopySize  = 4.0
)

// GenerateSimple fills the square [-radius, radius) with a plain height
// field and scatters trees on it. It returns the number of trees.
func (w *World) GenerateSimple(radius int) int {
	r := rand.New(rand.NewSource(w.cfg.Seed))
	trees := 0
	for x := -radius; x < radius; x++ {
		for z := -radius; z < radius; z++ {
			h := SimpleHeight(x, z)
			for y := 0; y < h; y++ {
				w.placeQuiet(x, y, z, voxel.TopSoil, true)
			}
			if r.Float64() >= simpleTreeChance {
				continue
			}
			for i := 0; i < simpleTrunkHeight; i++ {
				w.placeQuiet(x, h+i, z, voxel.Wood, true)
			}
			structure.Sphere(w.placeQuiet, x, h+simpleCanopyLift, z, simpleCanopySize, voxel.Foliage, true)
			trees++
		}
	}
	w.log.Info("simple terrain generated", "radius", radius, "trees", trees, "chunks", w.chunks.Len())
	return trees
}

// SimpleHeight is the column height used by GenerateSimple.
func SimpleHeight(x, z int) int {
	return int(noise.Perlin2D(1000+float64(x)/30, 8000+float64(z)/30) * simpleScale)
}

// GenerateTest writes a fixed pattern: a 16x8x16 block hollowed by a
// sphere of radius 6 around (8,8,8), plus two marker voxels at the origin.
func (w *World) GenerateTest() {
	for x := 0; x < 16; x++ {
		for y := 0; y < 8; y++ {
			for z := 0; z < 16; z++ {
				dx, dy, dz := x-8, y-8, z-8
				if dx*dx+dy*dy+dz*dz > 36 {
					w.placeQuiet(x, y, z, voxel.Wood, true)
				}
			}
		}
	}
	w.placeQuiet(0, 0, 0, voxel.TopSoil, true)
	w.placeQuiet(0, 1, 0, voxel.TopSoil, true)
	w.log.Info("test pattern generated", "chunks", w.chunks.Len())
}
