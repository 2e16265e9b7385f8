package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"voxelterrain.ai/internal/sim/tuning"
	"voxelterrain.ai/internal/sim/world"
	"voxelterrain.ai/internal/sim/world/terrain/store"
)

// chunkCounter stands in for a renderer: it only counts allocations.
type chunkCounter struct{ n atomic.Int64 }

func (v *chunkCounter) ChunkCreated(*store.Container) { v.n.Add(1) }

func main() {
	var (
		configPath = flag.String("config", "", "path to a .yaml or .toml config (optional)")
		seed       = flag.Int64("seed", 0, "world seed (overrides config)")
		mode       = flag.String("mode", "", "terrain | simple | test (overrides config)")
		workers    = flag.Int("workers", 0, "terrain workers, 0 = NumCPU (overrides config)")
		logLevel   = flag.String("log_level", "", "debug | info | warn | error (overrides config)")
	)
	flag.Parse()

	cfg, err := tuning.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(2)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed, cfg.SeedText = *seed, ""
		case "mode":
			cfg.Mode = *mode
		case "workers":
			cfg.Workers = *workers
		case "log_level":
			cfg.LogLevel = *logLevel
		}
	})
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("terraingen failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg tuning.Config, logger *slog.Logger) error {
	view := &chunkCounter{}
	w, err := world.New(cfg.WorldConfig(), view, logger)
	if err != nil {
		return fmt.Errorf("new world: %w", err)
	}
	log := w.Logger()
	log.Info("world created", "seed", w.Seed(), "mode", cfg.Mode, "workers", cfg.Workers)

	start := time.Now()
	if err := cfg.Generate(ctx, w); err != nil {
		return err
	}
	log.Info("generation done", "chunks", w.ChunkCount(), "views", view.n.Load(), "elapsed", time.Since(start))

	n, err := cfg.ApplyEdits(w)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Info("edits applied", "count", n)
	}
	tick(w, log)
	log.Info("done", "chunks", w.ChunkCount(), "digest", fmt.Sprintf("%016x", w.Digest()))
	return nil
}

// tick drains the dirty flags the way a render loop would.
func tick(w *world.World, log *slog.Logger) {
	for _, c := range w.DirtyChunks() {
		geom := c.TakeGeometryDirty()
		brk := c.TakeBreakageDirty()
		log.Info("chunk dirty", "cx", c.CX, "cy", c.CY, "cz", c.CZ, "geometry", geom, "breakage", brk, "voxels", c.Len())
	}
}
