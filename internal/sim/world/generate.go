package world

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alitto/pond/v2"

	"voxelterrain.ai/internal/sim/world/logic/mathx"
	"voxelterrain.ai/internal/sim/world/terrain/coord"
	"voxelterrain.ai/internal/sim/world/terrain/gen"
	"voxelterrain.ai/internal/sim/world/terrain/store"
	"voxelterrain.ai/internal/sim/world/terrain/structure"
	"voxelterrain.ai/internal/sim/world/terrain/voxel"
)

// GenerateColumn synthesizes one terrain column and then runs the
// structure generators on its top. Nothing is marked dirty.
func (w *World) GenerateColumn(x, z int) gen.Profile {
	p := w.terrainColumn(x, z)
	structure.Run(w.gens, w.placeQuiet, w.synth.Billow, x, p.Top(), z)
	return p
}

func (w *World) terrainColumn(x, z int) gen.Profile {
	return w.synth.Column(x, z, func(y int, t voxel.Type) {
		w.place(x, y, z, t, true, false)
	})
}

// Area is an inclusive rectangle of terrain columns.
type Area struct {
	MinX, MinZ int
	MaxX, MaxZ int
}

func (a Area) Width() int { return a.MaxX - a.MinX + 1 }
func (a Area) Depth() int { return a.MaxZ - a.MinZ + 1 }

func (a Area) Empty() bool { return a.MaxX < a.MinX || a.MaxZ < a.MinZ }

// Columns is the number of terrain columns inside the area.
func (a Area) Columns() int {
	if a.Empty() {
		return 0
	}
	return a.Width() * a.Depth()
}

type AreaStats struct {
	Columns    int
	Structures int
	Chunks     int
	Voxels     int
	Elapsed    time.Duration
}

// GenerateArea builds every column of a in two phases. Terrain runs on a
// worker pool with one task per chunk column, so no two tasks share a
// container. Structures then run on a single goroutine in x-major order,
// which keeps the result independent of the worker count.
func (w *World) GenerateArea(ctx context.Context, a Area) (AreaStats, error) {
	if a.Empty() {
		return AreaStats{}, fmt.Errorf("generate area: empty area %+v", a)
	}
	start := time.Now()
	depth := a.Depth()
	tops := make([]int, a.Columns())

	pool := pond.NewPool(w.workers())
	var wg sync.WaitGroup

	cx0, cx1 := mathx.FloorDiv(a.MinX, coord.ChunkSize), mathx.FloorDiv(a.MaxX, coord.ChunkSize)
	cz0, cz1 := mathx.FloorDiv(a.MinZ, coord.ChunkSize), mathx.FloorDiv(a.MaxZ, coord.ChunkSize)
submit:
	for cx := cx0; cx <= cx1; cx++ {
		for cz := cz0; cz <= cz1; cz++ {
			if ctx.Err() != nil {
				break submit
			}
			wg.Add(1)
			pool.Submit(func() {
				defer wg.Done()
				if ctx.Err() != nil {
					return
				}
				ox, _, oz := coord.ChunkOrigin(cx, 0, cz)
				for x := max(ox, a.MinX); x <= min(ox+coord.ChunkSize-1, a.MaxX); x++ {
					for z := max(oz, a.MinZ); z <= min(oz+coord.ChunkSize-1, a.MaxZ); z++ {
						tops[(x-a.MinX)*depth+(z-a.MinZ)] = w.terrainColumn(x, z).Top()
					}
				}
			})
		}
	}
	wg.Wait()
	pool.StopAndWait()

	stats := AreaStats{Columns: a.Columns()}
	if err := ctx.Err(); err != nil {
		return stats, fmt.Errorf("generate area: terrain: %w", err)
	}

	for x := a.MinX; x <= a.MaxX; x++ {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("generate area: structures: %w", err)
		}
		for z := a.MinZ; z <= a.MaxZ; z++ {
			stats.Structures += structure.Run(w.gens, w.placeQuiet, w.synth.Billow, x, tops[(x-a.MinX)*depth+(z-a.MinZ)], z)
		}
	}

	stats.Chunks = w.chunks.Len()
	w.chunks.Each(func(c *store.Container) { stats.Voxels += c.Len() })
	stats.Elapsed = time.Since(start)

	w.log.Info("area generated",
		"min_x", a.MinX, "min_z", a.MinZ, "max_x", a.MaxX, "max_z", a.MaxZ,
		"columns", stats.Columns,
		"structures", stats.Structures,
		"chunks", stats.Chunks,
		"voxels", stats.Voxels,
		"elapsed", stats.Elapsed,
	)
	return stats, nil
}
