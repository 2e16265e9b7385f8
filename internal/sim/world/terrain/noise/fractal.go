package noise

import "math"

const ridgedMaxOctaves = 30

// Billow sums absolute-valued octaves, giving rounded lumpy features.
type Billow struct {
	Seed        int32
	Frequency   float64
	Lacunarity  float64
	Persistence float64
	Octaves     int
}

func NewBillow(seed int32) *Billow {
	return &Billow{
		Seed:        seed,
		Frequency:   1.0,
		Lacunarity:  2.0,
		Persistence: 0.5,
		Octaves:     6,
	}
}

func (b *Billow) Value(x, y, z float64) float64 {
	var value float64
	p := 1.0
	x *= b.Frequency
	y *= b.Frequency
	z *= b.Frequency
	for o := 0; o < b.Octaves; o++ {
		seed := int32(uint32(b.Seed) + uint32(o))
		signal := GradientCoherent3D(makeInt32Range(x), makeInt32Range(y), makeInt32Range(z), seed)
		signal = 2.0*math.Abs(signal) - 1.0
		value += signal * p

		x *= b.Lacunarity
		y *= b.Lacunarity
		z *= b.Lacunarity
		p *= b.Persistence
	}
	return value + 0.5
}

// RidgedMulti is a ridged multifractal: sharp crests where the base
// noise crosses zero, with each octave weighted by the previous one.
// Lacunarity is fixed at construction since the spectral weights
// depend on it.
type RidgedMulti struct {
	Seed      int32
	Frequency float64
	Octaves   int
	Offset    float64
	Gain      float64

	lacunarity float64
	weights    [ridgedMaxOctaves]float64
}

func NewRidgedMulti(seed int32) *RidgedMulti {
	r := &RidgedMulti{
		Seed:       seed,
		Frequency:  1.0,
		Octaves:    6,
		Offset:     1.0,
		Gain:       2.0,
		lacunarity: 2.0,
	}
	r.calcSpectralWeights()
	return r
}

func (r *RidgedMulti) calcSpectralWeights() {
	const h = 1.0
	f := 1.0
	for i := range r.weights {
		r.weights[i] = math.Pow(f, -h)
		f *= r.lacunarity
	}
}

func (r *RidgedMulti) Value(x, y, z float64) float64 {
	x *= r.Frequency
	y *= r.Frequency
	z *= r.Frequency

	var value float64
	weight := 1.0
	octaves := min(r.Octaves, ridgedMaxOctaves)
	for o := 0; o < octaves; o++ {
		seed := int32((uint32(r.Seed) + uint32(o)) & 0x7fffffff)
		signal := GradientCoherent3D(makeInt32Range(x), makeInt32Range(y), makeInt32Range(z), seed)

		signal = r.Offset - math.Abs(signal)
		signal *= signal
		signal *= weight

		weight = signal * r.Gain
		if weight > 1.0 {
			weight = 1.0
		}
		if weight < 0.0 {
			weight = 0.0
		}

		value += signal * r.weights[o]

		x *= r.lacunarity
		y *= r.lacunarity
		z *= r.lacunarity
	}
	return value*1.25 - 1.0
}

// Perlin2D is unseeded 2D coherent noise remapped to [0, 1].
func Perlin2D(x, y float64) float64 {
	v := GradientCoherent3D(x, y, 0, 0)*0.5 + 0.5
	return math.Max(0, math.Min(1, v))
}
