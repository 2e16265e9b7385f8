package world

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync/atomic"

	"github.com/google/uuid"

	"voxelterrain.ai/internal/sim/world/terrain/gen"
	"voxelterrain.ai/internal/sim/world/terrain/store"
	"voxelterrain.ai/internal/sim/world/terrain/structure"
)

// World owns the chunk registry, the terrain synthesizer and the ordered
// structure generators. The mutation API is safe for concurrent use.
type World struct {
	cfg WorldConfig
	log *slog.Logger

	chunks *store.ChunkStore
	synth  *gen.Synthesizer
	gens   []structure.Generator

	// signal gates the geometry flag for PlaceVoxel. Generation drivers
	// never read it; they always place quietly.
	signal atomic.Bool
}

func New(cfg WorldConfig, view store.ChunkView, logger *slog.Logger) (*World, error) {
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers must be >= 0, got %d", cfg.Workers)
	}
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	gens := cfg.Generators
	if gens == nil {
		gens = []structure.Generator{structure.DefaultTree(cfg.Seed)}
	}

	w := &World{
		cfg:    cfg,
		log:    logger.With("world", cfg.ID),
		chunks: store.NewChunkStore(view),
		synth:  gen.New(cfg.Seed),
		gens:   gens,
	}
	w.signal.Store(true)
	return w, nil
}

func (w *World) ID() string           { return w.cfg.ID }
func (w *World) Seed() int64          { return w.cfg.Seed }
func (w *World) Logger() *slog.Logger { return w.log }

// SetSignaling toggles whether PlaceVoxel marks containers geometry-dirty.
func (w *World) SetSignaling(on bool) { w.signal.Store(on) }

func (w *World) Signaling() bool { return w.signal.Load() }

func (w *World) workers() int {
	if w.cfg.Workers > 0 {
		return w.cfg.Workers
	}
	return runtime.NumCPU()
}
