package store

import (
	"sort"
	"sync"

	"voxelterrain.ai/internal/sim/world/terrain/coord"
)

// ChunkView is the rendering side of a chunk. It hears about creation
// once; dirtiness is polled from the container flags.
type ChunkView interface {
	ChunkCreated(c *Container)
}

type NopView struct{}

func (NopView) ChunkCreated(*Container) {}

// ChunkStore owns every container, keyed by packed chunk coordinate.
type ChunkStore struct {
	view ChunkView

	mu     sync.RWMutex
	chunks map[coord.Key]*Container
}

func NewChunkStore(view ChunkView) *ChunkStore {
	if view == nil {
		view = NopView{}
	}
	return &ChunkStore{
		view:   view,
		chunks: map[coord.Key]*Container{},
	}
}

// Lookup never creates.
func (s *ChunkStore) Lookup(cx, cy, cz int) (*Container, bool) {
	return s.LookupKey(coord.Pack(cx, cy, cz))
}

func (s *ChunkStore) LookupKey(k coord.Key) (*Container, bool) {
	s.mu.RLock()
	c, ok := s.chunks[k]
	s.mu.RUnlock()
	return c, ok
}

// GetOrCreate returns the container for a chunk, registering an empty one
// if needed. Exactly one caller per key sees created == true, and only
// that caller notifies the view.
func (s *ChunkStore) GetOrCreate(cx, cy, cz int) (c *Container, created bool) {
	k := coord.Pack(cx, cy, cz)
	if c, ok := s.LookupKey(k); ok {
		return c, false
	}

	s.mu.Lock()
	if c = s.chunks[k]; c == nil {
		c = newContainer(cx, cy, cz)
		s.chunks[k] = c
		created = true
	}
	s.mu.Unlock()

	if created {
		s.view.ChunkCreated(c)
	}
	return c, created
}

func (s *ChunkStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

func (s *ChunkStore) LoadedChunkKeys() []ChunkKey {
	s.mu.RLock()
	keys := make([]ChunkKey, 0, len(s.chunks))
	for _, c := range s.chunks {
		keys = append(keys, c.Key())
	}
	s.mu.RUnlock()

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].CX != keys[j].CX {
			return keys[i].CX < keys[j].CX
		}
		if keys[i].CY != keys[j].CY {
			return keys[i].CY < keys[j].CY
		}
		return keys[i].CZ < keys[j].CZ
	})
	return keys
}

// Each visits containers in LoadedChunkKeys order.
func (s *ChunkStore) Each(fn func(c *Container)) {
	for _, k := range s.LoadedChunkKeys() {
		if c, ok := s.Lookup(k.CX, k.CY, k.CZ); ok {
			fn(c)
		}
	}
}
