package world

import (
	"voxelterrain.ai/internal/sim/world/terrain/coord"
	"voxelterrain.ai/internal/sim/world/terrain/store"
	"voxelterrain.ai/internal/sim/world/terrain/voxel"
)

// DestroyThreshold is the accumulated damage a voxel survives.
const DestroyThreshold = 1.0

// PlaceVoxel writes t at an absolute coordinate, registering the chunk if
// needed. voxel.Empty removes. With overwrite false an occupied cell is
// kept.
func (w *World) PlaceVoxel(x, y, z int, t voxel.Type, overwrite bool) {
	w.place(x, y, z, t, overwrite, w.Signaling())
}

// placeQuiet is the generation path: it never raises the geometry flag.
func (w *World) placeQuiet(x, y, z int, t voxel.Type, overwrite bool) {
	w.place(x, y, z, t, overwrite, false)
}

func (w *World) place(x, y, z int, t voxel.Type, overwrite, signal bool) bool {
	ck, lk := coord.Resolve(x, y, z)
	c, ok := w.chunks.LookupKey(ck)
	if !ok {
		cx, cy, cz := coord.Unpack(ck)
		var created bool
		if c, created = w.chunks.GetOrCreate(cx, cy, cz); created {
			w.log.Debug("chunk registered", "cx", cx, "cy", cy, "cz", cz)
		}
	}
	return c.Set(lk, t, overwrite, signal)
}

// lookup finds the registered container holding an absolute coordinate
// and the coordinate's local key inside it.
func (w *World) lookup(x, y, z int) (*store.Container, coord.Key, bool) {
	ck, lk := coord.Resolve(x, y, z)
	c, ok := w.chunks.LookupKey(ck)
	return c, lk, ok
}

// PlaceDamage adds amount to the voxel's damage and destroys it once the
// running total exceeds DestroyThreshold. Unregistered chunks are ignored.
// Damage is kept after destruction.
func (w *World) PlaceDamage(x, y, z int, amount float64) {
	c, lk, ok := w.lookup(x, y, z)
	if !ok {
		return
	}
	if c.AddDamage(lk, amount) > DestroyThreshold {
		w.PlaceVoxel(x, y, z, voxel.Empty, true)
	}
}

// GetVoxel never registers a chunk.
func (w *World) GetVoxel(x, y, z int) (voxel.Type, bool) {
	c, lk, ok := w.lookup(x, y, z)
	if !ok {
		return voxel.Empty, false
	}
	return c.Get(lk)
}

// Damage returns the accumulated damage at a coordinate.
func (w *World) Damage(x, y, z int) float64 {
	c, lk, ok := w.lookup(x, y, z)
	if !ok {
		return 0
	}
	return c.Damage(lk)
}

func (w *World) has(x, y, z int) bool {
	_, ok := w.GetVoxel(x, y, z)
	return ok
}

// contactFaces are checked by IsContactVoxel. The face below is left out,
// so a voxel resting on nothing is still enclosed.
var contactFaces = [...][3]int{
	{1, 0, 0},
	{-1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
	{0, 0, -1},
}

// IsContactVoxel reports whether a present voxel has an open face among
// east, west, up, north and south.
func (w *World) IsContactVoxel(x, y, z int) bool {
	if !w.has(x, y, z) {
		return false
	}
	for _, d := range contactFaces {
		if !w.has(x+d[0], y+d[1], z+d[2]) {
			return true
		}
	}
	return false
}

// Chunk looks up a registered container.
func (w *World) Chunk(cx, cy, cz int) (*store.Container, bool) {
	return w.chunks.Lookup(cx, cy, cz)
}

func (w *World) ChunkCount() int { return w.chunks.Len() }
