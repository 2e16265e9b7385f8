package world

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"voxelterrain.ai/internal/sim/world/terrain/store"
)

// Digest hashes every non-empty chunk in key order. Two worlds holding
// the same voxels digest equal regardless of how they were built.
func (w *World) Digest() uint64 {
	h := xxhash.New()
	var tmp [8]byte
	w.chunks.Each(func(c *store.Container) {
		if c.Len() == 0 {
			return
		}
		binary.LittleEndian.PutUint64(tmp[:], c.Digest())
		_, _ = h.Write(tmp[:])
	})
	return h.Sum64()
}

// DirtyChunks returns containers with either dirty flag set, in key order.
// Flags are left alone; the caller clears them with TakeGeometryDirty and
// TakeBreakageDirty once it has reprocessed a chunk.
func (w *World) DirtyChunks() []*store.Container {
	var out []*store.Container
	w.chunks.Each(func(c *store.Container) {
		if c.GeometryDirty() || c.BreakageDirty() {
			out = append(out, c)
		}
	})
	return out
}
