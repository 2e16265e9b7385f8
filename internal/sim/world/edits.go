package world

import (
	"fmt"

	"voxelterrain.ai/internal/sim/world/terrain/voxel"
)

const (
	EditPlace  = "place"
	EditDamage = "damage"
)

// Edit is one scripted call into the mutation API.
type Edit struct {
	Op   string     `yaml:"op" toml:"op" json:"op"`
	X    int        `yaml:"x" toml:"x" json:"x"`
	Y    int        `yaml:"y" toml:"y" json:"y"`
	Z    int        `yaml:"z" toml:"z" json:"z"`
	Type voxel.Type `yaml:"type,omitempty" toml:"type" json:"type,omitempty"`
	// Overwrite defaults to true when omitted.
	Overwrite *bool   `yaml:"overwrite,omitempty" toml:"overwrite" json:"overwrite,omitempty"`
	Amount    float64 `yaml:"amount,omitempty" toml:"amount" json:"amount,omitempty"`
}

func (e Edit) overwrite() bool {
	return e.Overwrite == nil || *e.Overwrite
}

// ApplyEdit dispatches e to PlaceVoxel or PlaceDamage.
func (w *World) ApplyEdit(e Edit) error {
	switch e.Op {
	case EditPlace:
		w.PlaceVoxel(e.X, e.Y, e.Z, e.Type, e.overwrite())
	case EditDamage:
		w.PlaceDamage(e.X, e.Y, e.Z, e.Amount)
	default:
		return fmt.Errorf("unknown edit op %q", e.Op)
	}
	return nil
}
