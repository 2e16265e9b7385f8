package voxel

// Type is a material type code. Zero means empty and is never stored.
type Type int

const (
	Empty   Type = 0
	TopSoil Type = 1
	Wood    Type = 2
	Subsoil Type = 3
	Rock    Type = 4
	Sand    Type = 6
	Water   Type = 64
	Foliage Type = 2048
)

// IsSolid covers [0,63] and [128,...). Zero is classified solid by the
// formula even though it never reaches storage.
func IsSolid(t Type) bool {
	return t < 64 || t >= 128
}

func IsLiquid(t Type) bool {
	return t >= 64 && t < 128
}
