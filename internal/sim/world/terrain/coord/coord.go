// Package coord maps absolute voxel coordinates onto chunks and packs
// 3D integer coordinates into a single int64 map key.
package coord

import "voxelterrain.ai/internal/sim/world/logic/mathx"

// ChunkSize is the edge length of a cubic chunk in voxels.
const ChunkSize = 16

// Key is a packed 3D coordinate. The same encoding is used for chunk
// identity keys and for chunk-local voxel keys.
type Key int64

const (
	axisBits = 21
	axisMask = 1<<axisBits - 1
	axisBias = 1 << (axisBits - 1)

	// MinPacked and MaxPacked bound each axis accepted by Pack. Chunk
	// coordinates in this range cover absolute voxel coordinates of
	// roughly +-16.7M.
	MinPacked = -axisBias
	MaxPacked = axisBias - 1
)

// Pack interleaves three biased 21-bit fields. Covering +-2,000,000 on
// all three axes would take 22 bits each, 66 in total, which does not fit
// an int64. Each axis therefore gets 21 bits, [-1,048,576, 1,048,575],
// and only chunk coordinates and chunk-local coordinates are ever packed,
// never absolute voxel coordinates. Values outside [MinPacked, MaxPacked]
// wrap and may collide.
func Pack(x, y, z int) Key {
	ux := uint64(x+axisBias) & axisMask
	uy := uint64(y+axisBias) & axisMask
	uz := uint64(z+axisBias) & axisMask
	return Key(ux | uy<<axisBits | uz<<(2*axisBits))
}

func Unpack(k Key) (x, y, z int) {
	u := uint64(k)
	x = int(u&axisMask) - axisBias
	y = int((u>>axisBits)&axisMask) - axisBias
	z = int((u>>(2*axisBits))&axisMask) - axisBias
	return
}

// ChunkOf returns the chunk containing an absolute voxel coordinate.
func ChunkOf(x, y, z int) (cx, cy, cz int) {
	return mathx.FloorDiv(x, ChunkSize), mathx.FloorDiv(y, ChunkSize), mathx.FloorDiv(z, ChunkSize)
}

// ChunkOrigin returns the absolute coordinate of a chunk's (0,0,0) voxel.
func ChunkOrigin(cx, cy, cz int) (ox, oy, oz int) {
	return cx * ChunkSize, cy * ChunkSize, cz * ChunkSize
}

// Local returns the voxel's position inside its chunk, each axis in [0, ChunkSize).
func Local(x, y, z int) (lx, ly, lz int) {
	return mathx.Mod(x, ChunkSize), mathx.Mod(y, ChunkSize), mathx.Mod(z, ChunkSize)
}

// Resolve splits an absolute coordinate into its chunk key and local key.
func Resolve(x, y, z int) (chunk Key, local Key) {
	cx, cy, cz := ChunkOf(x, y, z)
	lx, ly, lz := Local(x, y, z)
	return Pack(cx, cy, cz), Pack(lx, ly, lz)
}
