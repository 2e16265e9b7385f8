package world

import (
	"context"
	"errors"
	"testing"

	"voxelterrain.ai/internal/sim/world/terrain/noise"
	"voxelterrain.ai/internal/sim/world/terrain/store"
	"voxelterrain.ai/internal/sim/world/terrain/structure"
	"voxelterrain.ai/internal/sim/world/terrain/voxel"
)

func TestGenerateColumn_SeedZeroFixture(t *testing.T) {
	w, err := New(WorldConfig{Seed: 0}, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p := w.GenerateColumn(0, 0)
	if p.Ground != 49 || p.Top() != 33 || p.RockDepth != 26 || p.DirtDepth != -5 {
		t.Fatalf("profile=%+v", p)
	}
	for y := -16; y <= 32; y++ {
		if got, ok := w.GetVoxel(0, y, 0); !ok || got != voxel.Rock {
			t.Fatalf("y=%d: (%d,%v) want rock", y, got, ok)
		}
	}
	if _, ok := w.GetVoxel(0, 33, 0); ok {
		t.Fatalf("nothing should sit on top of the origin column")
	}
	if _, ok := w.GetVoxel(0, -17, 0); ok {
		t.Fatalf("column must start at y=-16")
	}
	if w.ChunkCount() != 4 {
		t.Fatalf("chunks=%d want 4", w.ChunkCount())
	}
	if len(w.DirtyChunks()) != 0 {
		t.Fatalf("generation must not mark chunks dirty")
	}
}

type call struct {
	name    string
	x, y, z int
}

// recordingGen logs every call and drops a voxel at the column top.
type recordingGen struct {
	name  string
	t     voxel.Type
	calls *[]call
}

func (g recordingGen) ConditionMet(x, y, z int, billow noise.Module) bool { return billow != nil }

func (g recordingGen) Generate(place structure.PlaceFunc, x, y, z int) {
	*g.calls = append(*g.calls, call{g.name, x, y, z})
	place(x, y, z, g.t, false)
}

func TestGenerateColumn_RunsGeneratorsOnTop(t *testing.T) {
	var calls []call
	w, err := New(WorldConfig{Seed: 0, Generators: []structure.Generator{
		recordingGen{name: "first", t: voxel.Wood, calls: &calls},
		recordingGen{name: "second", t: voxel.Sand, calls: &calls},
	}}, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p := w.GenerateColumn(0, 0)
	want := []call{{"first", 0, p.Top(), 0}, {"second", 0, p.Top(), 0}}
	if len(calls) != len(want) || calls[0] != want[0] || calls[1] != want[1] {
		t.Fatalf("calls=%+v want %+v", calls, want)
	}
	if got, ok := w.GetVoxel(0, p.Top(), 0); !ok || got != voxel.Wood {
		t.Fatalf("top=(%d,%v) want wood from the first generator", got, ok)
	}
	if len(w.DirtyChunks()) != 0 {
		t.Fatalf("structure placement must not mark chunks dirty")
	}
}

func TestGenerateArea_RunsGeneratorsOnEachTop(t *testing.T) {
	var calls []call
	w, err := New(WorldConfig{Seed: 3, Workers: 2, Generators: []structure.Generator{
		recordingGen{name: "rec", t: voxel.Wood, calls: &calls},
	}}, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	area := Area{MinX: -2, MinZ: 14, MaxX: 1, MaxZ: 17}
	st, err := w.GenerateArea(context.Background(), area)
	if err != nil {
		t.Fatalf("GenerateArea: %v", err)
	}
	if st.Structures != area.Columns() || len(calls) != area.Columns() {
		t.Fatalf("structures=%d calls=%d want %d", st.Structures, len(calls), area.Columns())
	}
	i := 0
	for x := area.MinX; x <= area.MaxX; x++ {
		for z := area.MinZ; z <= area.MaxZ; z++ {
			top := w.synth.Profile(x, z).Top()
			if calls[i] != (call{"rec", x, top, z}) {
				t.Fatalf("call %d=%+v want (%d,%d,%d)", i, calls[i], x, top, z)
			}
			if got, _ := w.GetVoxel(x, top, z); got != voxel.Wood {
				t.Fatalf("(%d,%d,%d)=%d want wood", x, top, z, got)
			}
			i++
		}
	}
	if len(w.DirtyChunks()) != 0 {
		t.Fatalf("structure placement must not mark chunks dirty")
	}
}

func TestGenerateColumn_SameSeedSameDigest(t *testing.T) {
	a, _ := New(WorldConfig{Seed: 0}, nil, nil)
	b, _ := New(WorldConfig{Seed: 0}, nil, nil)
	a.GenerateColumn(0, 0)
	b.GenerateColumn(0, 0)
	if a.Digest() != b.Digest() {
		t.Fatalf("seed 0 column digest differs between runs")
	}
}

func TestGenerateArea_IndependentOfWorkerCount(t *testing.T) {
	area := Area{MinX: -20, MinZ: -20, MaxX: 20, MaxZ: 20}
	var digests []uint64
	var chunks []int
	for _, workers := range []int{1, 4} {
		w, err := New(WorldConfig{Seed: 7, Workers: workers}, nil, nil)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		st, err := w.GenerateArea(context.Background(), area)
		if err != nil {
			t.Fatalf("GenerateArea: %v", err)
		}
		if st.Columns != 41*41 {
			t.Fatalf("columns=%d want %d", st.Columns, 41*41)
		}
		if st.Voxels == 0 || st.Chunks != w.ChunkCount() {
			t.Fatalf("stats=%+v chunks=%d", st, w.ChunkCount())
		}
		if len(w.DirtyChunks()) != 0 {
			t.Fatalf("area generation must not mark chunks dirty")
		}
		digests = append(digests, w.Digest())
		chunks = append(chunks, st.Chunks)
	}
	if digests[0] != digests[1] || chunks[0] != chunks[1] {
		t.Fatalf("results differ by worker count: digests=%v chunks=%v", digests, chunks)
	}
}

func TestGenerateArea_MatchesColumnByColumn(t *testing.T) {
	area := Area{MinX: -9, MinZ: 3, MaxX: 18, MaxZ: 21}
	cfg := WorldConfig{Seed: 42, Workers: 3, Generators: []structure.Generator{}}
	a, _ := New(cfg, nil, nil)
	b, _ := New(cfg, nil, nil)

	if _, err := a.GenerateArea(context.Background(), area); err != nil {
		t.Fatalf("GenerateArea: %v", err)
	}
	for x := area.MinX; x <= area.MaxX; x++ {
		for z := area.MinZ; z <= area.MaxZ; z++ {
			b.GenerateColumn(x, z)
		}
	}
	if a.Digest() != b.Digest() || a.ChunkCount() != b.ChunkCount() {
		t.Fatalf("parallel terrain differs from sequential columns")
	}
}

func TestGenerateArea_Cancelled(t *testing.T) {
	w := newBareWorld(t, 1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := w.GenerateArea(ctx, Area{MinX: 0, MinZ: 0, MaxX: 63, MaxZ: 63})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v want context.Canceled", err)
	}
	if w.ChunkCount() != 0 {
		t.Fatalf("cancelled generation registered %d chunks", w.ChunkCount())
	}
}

func TestGenerateArea_RejectsEmptyArea(t *testing.T) {
	w := newBareWorld(t, 1, nil)
	if _, err := w.GenerateArea(context.Background(), Area{MinX: 1, MaxX: 0}); err == nil {
		t.Fatalf("expected error for empty area")
	}
}

func TestGenerateTest_Pattern(t *testing.T) {
	w := newBareWorld(t, 1, nil)
	w.GenerateTest()

	total := 0
	w.chunks.Each(func(c *store.Container) { total += c.Len() })
	if total != 1642 || w.ChunkCount() != 1 {
		t.Fatalf("voxels=%d chunks=%d want 1642/1", total, w.ChunkCount())
	}
	for _, y := range []int{0, 1} {
		if got, _ := w.GetVoxel(0, y, 0); got != voxel.TopSoil {
			t.Fatalf("marker at y=%d is %d", y, got)
		}
	}
	if got, _ := w.GetVoxel(15, 7, 15); got != voxel.Wood {
		t.Fatalf("corner=%d want wood", got)
	}
	if _, ok := w.GetVoxel(8, 7, 8); ok {
		t.Fatalf("hollow centre should be empty")
	}
}

func TestGenerateSimple_FillsHeightField(t *testing.T) {
	a := newBareWorld(t, 11, nil)
	b := newBareWorld(t, 11, nil)
	ta := a.GenerateSimple(6)
	tb := b.GenerateSimple(6)
	if ta != tb || a.Digest() != b.Digest() {
		t.Fatalf("simple generation not deterministic: trees %d/%d", ta, tb)
	}
	for x := -6; x < 6; x++ {
		for z := -6; z < 6; z++ {
			h := SimpleHeight(x, z)
			for y := 0; y < h; y++ {
				if _, ok := a.GetVoxel(x, y, z); !ok {
					t.Fatalf("(%d,%d,%d) missing below height %d", x, y, z, h)
				}
			}
		}
	}
}
