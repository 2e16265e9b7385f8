package tuning

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/segmentio/fasthash/fnv1a"
	"gopkg.in/yaml.v3"

	"voxelterrain.ai/internal/sim/world"
	"voxelterrain.ai/internal/sim/world/terrain/structure"
)

const (
	ModeTerrain = "terrain"
	ModeSimple  = "simple"
	ModeTest    = "test"
)

type Config struct {
	Seed     int64  `yaml:"seed" toml:"seed" json:"seed"`
	SeedText string `yaml:"seed_text" toml:"seed_text" json:"seed_text"`

	Mode         string   `yaml:"mode" toml:"mode" json:"mode"`
	Area         AreaSpec `yaml:"area" toml:"area" json:"area"`
	SimpleRadius int      `yaml:"simple_radius" toml:"simple_radius" json:"simple_radius"`
	Workers      int      `yaml:"workers" toml:"workers" json:"workers"`

	LogLevel string `yaml:"log_level" toml:"log_level" json:"log_level"`

	Tree  TreeSpec     `yaml:"tree" toml:"tree" json:"tree"`
	Edits []world.Edit `yaml:"edits,omitempty" toml:"edits" json:"edits,omitempty"`
}

// AreaSpec bounds are inclusive column coordinates.
type AreaSpec struct {
	MinX int `yaml:"min_x" toml:"min_x" json:"min_x"`
	MinZ int `yaml:"min_z" toml:"min_z" json:"min_z"`
	MaxX int `yaml:"max_x" toml:"max_x" json:"max_x"`
	MaxZ int `yaml:"max_z" toml:"max_z" json:"max_z"`
}

type TreeSpec struct {
	ChancePermille int     `yaml:"chance_permille" toml:"chance_permille" json:"chance_permille"`
	TrunkHeight    int     `yaml:"trunk_height" toml:"trunk_height" json:"trunk_height"`
	CanopyRadius   float64 `yaml:"canopy_radius" toml:"canopy_radius" json:"canopy_radius"`
	MinGround      int     `yaml:"min_ground" toml:"min_ground" json:"min_ground"`
}

// Load reads a .yaml/.yml or .toml file over the defaults. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) == "" {
		cfg.Normalize()
		return cfg, nil
	}
	name := filepath.Base(path)
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", name, err)
		}
	case ".toml":
		if err := toml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", name, err)
		}
	default:
		return cfg, fmt.Errorf("%s: unsupported config format %q", name, filepath.Ext(path))
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", name, err)
	}
	return cfg, nil
}

func Defaults() Config {
	t := structure.DefaultTree(0)
	return Config{
		Mode:         ModeTerrain,
		Area:         AreaSpec{MinX: -32, MinZ: -32, MaxX: 31, MaxZ: 31},
		SimpleRadius: 150,
		LogLevel:     "info",
		Tree: TreeSpec{
			ChancePermille: t.ChancePermille,
			TrunkHeight:    t.TrunkHeight,
			CanopyRadius:   t.CanopyRadius,
			MinGround:      t.MinGround,
		},
	}
}

func (c *Config) Normalize() {
	if c == nil {
		return
	}
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	if c.Mode == "" {
		c.Mode = ModeTerrain
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	for i := range c.Edits {
		c.Edits[i].Op = strings.ToLower(strings.TrimSpace(c.Edits[i].Op))
	}
}

// Validate checks the config against the embedded schema first, then the
// rules the schema cannot express.
func (c Config) Validate() error {
	c.Normalize()
	if err := validateSchema(c); err != nil {
		return err
	}
	if c.Area.MaxX < c.Area.MinX || c.Area.MaxZ < c.Area.MinZ {
		return fmt.Errorf("area max must not be below min")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	for i, e := range c.Edits {
		switch e.Op {
		case world.EditPlace:
			if e.Type < 0 {
				return fmt.Errorf("edits[%d] type must be >= 0", i)
			}
		case world.EditDamage:
			if e.Amount <= 0 {
				return fmt.Errorf("edits[%d] damage amount must be > 0", i)
			}
		default:
			return fmt.Errorf("edits[%d] unknown op %q", i, e.Op)
		}
	}
	return nil
}

// SeedValue is the world seed. A non-empty seed_text wins over seed.
// The noise fields take 32-bit seeds; gen.New folds the high half into
// the low half, so seeds differing only above bit 31 still differ.
func (c Config) SeedValue() int64 {
	if c.SeedText != "" {
		return int64(fnv1a.HashString64(c.SeedText))
	}
	return c.Seed
}

func (c Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

func (c Config) WorldArea() world.Area {
	return world.Area{MinX: c.Area.MinX, MinZ: c.Area.MinZ, MaxX: c.Area.MaxX, MaxZ: c.Area.MaxZ}
}

// WorldConfig builds the world options, registering the configured tree.
func (c Config) WorldConfig() world.WorldConfig {
	seed := c.SeedValue()
	tree := structure.DefaultTree(seed)
	tree.ChancePermille = c.Tree.ChancePermille
	tree.TrunkHeight = c.Tree.TrunkHeight
	tree.CanopyRadius = c.Tree.CanopyRadius
	tree.MinGround = c.Tree.MinGround
	return world.WorldConfig{
		Seed:       seed,
		Workers:    c.Workers,
		Generators: []structure.Generator{tree},
	}
}

// jsonDoc converts c into the generic form the schema validator expects.
func jsonDoc(c Config) (any, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// ApplyEdits applies the scripted edits to w in order and returns how many
// were applied.
func (c Config) ApplyEdits(w *world.World) (int, error) {
	for i, e := range c.Edits {
		if err := w.ApplyEdit(e); err != nil {
			return i, fmt.Errorf("edits[%d]: %w", i, err)
		}
	}
	return len(c.Edits), nil
}

// Generate runs the configured generation mode on w.
func (c Config) Generate(ctx context.Context, w *world.World) error {
	switch c.Mode {
	case ModeTerrain:
		_, err := w.GenerateArea(ctx, c.WorldArea())
		return err
	case ModeSimple:
		w.GenerateSimple(c.SimpleRadius)
	case ModeTest:
		w.GenerateTest()
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	return nil
}
