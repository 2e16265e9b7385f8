package gen

import (
	"math"
	"math/rand"

	"voxelterrain.ai/internal/sim/world/terrain/noise"
	"voxelterrain.ai/internal/sim/world/terrain/voxel"
)

const (
	// ColumnOffset shifts column layer 0 this far below the reference level.
	ColumnOffset = 16
	// MinColumnHeight is the least number of layers a column iterates;
	// layers above ground level inside it are liquid.
	MinColumnHeight = 15
)

// Synthesizer derives terrain from two seeded fields. It is read-only
// after New and can be shared across goroutines.
type Synthesizer struct {
	Billow *noise.Billow
	Ridged *noise.RidgedMulti
}

// New seeds both fields. The frequency jitter for the billow field is
// drawn before the ridged one.
func New(seed int64) *Synthesizer {
	r := rand.New(rand.NewSource(seed))
	s32 := foldSeed(seed)
	b := noise.NewBillow(s32)
	f := noise.NewRidgedMulti(s32)
	b.Frequency = r.Float64() + 0.5
	f.Frequency = r.Float64() + 0.5
	return &Synthesizer{Billow: b, Ridged: f}
}

// foldSeed xors the high half of seed into the low half for the 32-bit
// noise fields. Seeds in [0, 1<<32) keep their low bits unchanged.
func foldSeed(seed int64) int32 {
	return int32(seed ^ seed>>32)
}

// GroundLevel rounds half to even.
func (s *Synthesizer) GroundLevel(x, z int) int {
	v := s.Ridged.Value(float64(x)/100.0, 0, float64(z)/100.0)*20.0 + 20.0
	return int(math.RoundToEven(v))
}

func (s *Synthesizer) RockDepth(x, z int) int {
	v := (s.Ridged.Value(float64(x)/480.0, 0, float64(z)/480.0)*96.0 - 88.0) * 0.5
	return int(softClamp(v))
}

func (s *Synthesizer) DirtDepth(x, z int) int {
	v := (s.Billow.Value(float64(x)/550.0, 0, float64(z)/550.0)*60.0 + 30.0) * 0.5
	return int(softClamp(v))
}

// softClamp compresses negative values with a square root.
func softClamp(v float64) float64 {
	if v < 0 {
		return -math.Sqrt(-v)
	}
	return v
}

// Profile is the per-column terrain state. It is never stored.
type Profile struct {
	X, Z int

	Ground    int     // ground level, at least 1
	Billow    float64 // billow sample scaled by 5
	Height    int     // layers iterated: max(Ground, MinColumnHeight)
	RockDepth int
	DirtDepth int
}

// Top is Height moved into the same space as placed y coordinates: the
// first y above the column's highest layer.
func (p Profile) Top() int {
	return p.Height - ColumnOffset
}

func (s *Synthesizer) Profile(x, z int) Profile {
	ground := s.GroundLevel(x, z)
	if ground <= 0 {
		ground = 1
	}
	return Profile{
		X:         x,
		Z:         z,
		Ground:    ground,
		Billow:    s.Billow.Value(float64(x)/100.0, 0, float64(z)/100.0) * 5.0,
		Height:    max(ground, MinColumnHeight),
		RockDepth: s.RockDepth(x, z),
		DirtDepth: s.DirtDepth(x, z),
	}
}

// Material picks the type for layer la in [0, Height). Later rules win.
func (p Profile) Material(la int) voxel.Type {
	t := voxel.Subsoil
	if la == p.Height-1 {
		t = voxel.TopSoil
	}
	if float64(p.Ground) > 26+p.Billow {
		t = voxel.Rock
	}
	if float64(p.Ground) < 19+p.Billow {
		t = voxel.Sand
	}
	if la > p.Ground {
		t = voxel.Water
	}
	return t
}

// Column computes the profile for (x, z) and emits every layer bottom-up.
func (s *Synthesizer) Column(x, z int, emit func(y int, t voxel.Type)) Profile {
	p := s.Profile(x, z)
	for la := 0; la < p.Height; la++ {
		emit(la-ColumnOffset, p.Material(la))
	}
	return p
}
