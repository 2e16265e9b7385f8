// Package noise implements seeded gradient coherent noise and the two
// fractal modules terrain shaping is built on. Every module is read-only
// after construction and safe for concurrent Value calls.
package noise

import "math"

// Module is a 3D noise source.
type Module interface {
	Value(x, y, z float64) float64
}

const (
	xNoiseGen     = 1619
	yNoiseGen     = 31337
	zNoiseGen     = 6971
	seedNoiseGen  = 1013
	shiftNoiseGen = 8

	// gradScale keeps single-octave output close to [-1, 1] for the
	// sqrt(2)-length edge gradients below.
	gradScale = 1.5
)

var grad3 = [12][3]float64{
	{1, 1, 0},
	{-1, 1, 0},
	{1, -1, 0},
	{-1, -1, 0},
	{1, 0, 1},
	{-1, 0, 1},
	{1, 0, -1},
	{-1, 0, -1},
	{0, 1, 1},
	{0, -1, 1},
	{0, 1, -1},
	{0, -1, -1},
}

// gradientNoise3D is the contribution of lattice corner (ix,iy,iz) at (fx,fy,fz).
func gradientNoise3D(fx, fy, fz float64, ix, iy, iz int, seed int32) float64 {
	idx := uint32(xNoiseGen*int32(ix) + yNoiseGen*int32(iy) + zNoiseGen*int32(iz) + seedNoiseGen*seed)
	idx ^= idx >> shiftNoiseGen
	g := grad3[(idx&0xff)%12]

	px := fx - float64(ix)
	py := fy - float64(iy)
	pz := fz - float64(iz)
	return (g[0]*px + g[1]*py + g[2]*pz) * gradScale
}

// GradientCoherent3D is smooth noise that is exactly zero on integer lattice points.
func GradientCoherent3D(x, y, z float64, seed int32) float64 {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	z0 := int(math.Floor(z))
	x1, y1, z1 := x0+1, y0+1, z0+1

	xs := sCurve3(x - float64(x0))
	ys := sCurve3(y - float64(y0))
	zs := sCurve3(z - float64(z0))

	n0 := gradientNoise3D(x, y, z, x0, y0, z0, seed)
	n1 := gradientNoise3D(x, y, z, x1, y0, z0, seed)
	ix0 := lerp(n0, n1, xs)
	n0 = gradientNoise3D(x, y, z, x0, y1, z0, seed)
	n1 = gradientNoise3D(x, y, z, x1, y1, z0, seed)
	ix1 := lerp(n0, n1, xs)
	iy0 := lerp(ix0, ix1, ys)

	n0 = gradientNoise3D(x, y, z, x0, y0, z1, seed)
	n1 = gradientNoise3D(x, y, z, x1, y0, z1, seed)
	ix0 = lerp(n0, n1, xs)
	n0 = gradientNoise3D(x, y, z, x0, y1, z1, seed)
	n1 = gradientNoise3D(x, y, z, x1, y1, z1, seed)
	ix1 = lerp(n0, n1, xs)
	iy1 := lerp(ix0, ix1, ys)

	return lerp(iy0, iy1, zs)
}

func sCurve3(a float64) float64 {
	return a * a * (3.0 - 2.0*a)
}

func lerp(a, b, t float64) float64 {
	return (1.0-t)*a + t*b
}

// makeInt32Range folds huge inputs back so lattice indices stay in int32.
func makeInt32Range(n float64) float64 {
	const r = 1073741824.0
	switch {
	case n >= r:
		return 2.0*math.Mod(n, r) - r
	case n <= -r:
		return 2.0*math.Mod(n, r) + r
	default:
		return n
	}
}
