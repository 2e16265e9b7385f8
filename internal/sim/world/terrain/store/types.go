package store

import (
	"encoding/binary"
	"sort"
	"sync"

	"github.com/brentp/intintmap"
	"github.com/cespare/xxhash/v2"

	"voxelterrain.ai/internal/sim/world/terrain/coord"
	"voxelterrain.ai/internal/sim/world/terrain/voxel"
)

type ChunkKey struct {
	CX, CY, CZ int
}

func (k ChunkKey) Packed() coord.Key {
	return coord.Pack(k.CX, k.CY, k.CZ)
}

// Container holds the sparse voxels and accumulated damage of one chunk.
// One mutex guards both maps and both dirty flags.
type Container struct {
	CX, CY, CZ int

	mu            sync.Mutex
	voxels        *intintmap.Map
	damage        map[coord.Key]float64
	geometryDirty bool
	breakageDirty bool
}

func newContainer(cx, cy, cz int) *Container {
	return &Container{
		CX:     cx,
		CY:     cy,
		CZ:     cz,
		voxels: intintmap.New(64, 0.6),
		damage: map[coord.Key]float64{},
	}
}

func (c *Container) Key() ChunkKey {
	return ChunkKey{CX: c.CX, CY: c.CY, CZ: c.CZ}
}

// Origin returns the absolute coordinate of local (0,0,0).
func (c *Container) Origin() (x, y, z int) {
	return coord.ChunkOrigin(c.CX, c.CY, c.CZ)
}

// Set writes t at a local key. Empty removes. With overwrite false an
// occupied key is left alone. signal controls whether a real change
// raises the geometry flag. Reports whether stored state changed.
func (c *Container) Set(local coord.Key, t voxel.Type, overwrite, signal bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := int64(local)
	prev, ok := c.voxels.Get(k)
	changed := false
	switch {
	case t == voxel.Empty:
		if ok {
			c.voxels.Del(k)
			changed = true
		}
	case overwrite || !ok:
		if !ok || voxel.Type(prev) != t {
			c.voxels.Put(k, int64(t))
			changed = true
		}
	}
	if changed && signal {
		c.geometryDirty = true
	}
	return changed
}

func (c *Container) Get(local coord.Key) (voxel.Type, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.voxels.Get(int64(local))
	if !ok {
		return voxel.Empty, false
	}
	return voxel.Type(v), true
}

func (c *Container) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.voxels.Size()
}

// AddDamage accumulates amount at a local key, raises the breakage flag
// and returns the running total. Entries survive voxel removal.
func (c *Container) AddDamage(local coord.Key, amount float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.damage[local] += amount
	c.breakageDirty = true
	return c.damage[local]
}

func (c *Container) Damage(local coord.Key) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.damage[local]
}

func (c *Container) GeometryDirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.geometryDirty
}

func (c *Container) BreakageDirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.breakageDirty
}

// TakeGeometryDirty reports and clears the geometry flag.
func (c *Container) TakeGeometryDirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := c.geometryDirty
	c.geometryDirty = false
	return d
}

// TakeBreakageDirty reports and clears the breakage flag.
func (c *Container) TakeBreakageDirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := c.breakageDirty
	c.breakageDirty = false
	return d
}

// Each visits stored voxels in ascending local key order.
func (c *Container) Each(fn func(local coord.Key, t voxel.Type)) {
	c.mu.Lock()
	items := make([][2]int64, 0, c.voxels.Size())
	for kv := range c.voxels.Items() {
		items = append(items, kv)
	}
	c.mu.Unlock()

	sort.Slice(items, func(i, j int) bool { return items[i][0] < items[j][0] })
	for _, kv := range items {
		fn(coord.Key(kv[0]), voxel.Type(kv[1]))
	}
}

// Digest hashes the chunk key and its voxels in key order.
func (c *Container) Digest() uint64 {
	h := xxhash.New()
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], uint64(c.Key().Packed()))
	_, _ = h.Write(tmp[:])
	c.Each(func(local coord.Key, t voxel.Type) {
		binary.LittleEndian.PutUint64(tmp[:], uint64(local))
		_, _ = h.Write(tmp[:])
		binary.LittleEndian.PutUint64(tmp[:], uint64(t))
		_, _ = h.Write(tmp[:])
	})
	return h.Sum64()
}
