package world

import "voxelterrain.ai/internal/sim/world/terrain/structure"

type WorldConfig struct {
	// ID tags log lines. Empty means a fresh random run ID.
	ID   string
	Seed int64

	// Workers bounds the terrain phase of area generation. 0 means NumCPU.
	Workers int

	// Generators run in order after each terrain column.
	// If nil, a default tree generator is registered; if non-nil but empty,
	// no structures are placed.
	Generators []structure.Generator
}
