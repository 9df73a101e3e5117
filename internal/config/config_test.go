package config

import (
	"errors"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/johnxnguyen/newton/internal/geometry"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.G != 1.0 {
		t.Errorf("default g = %v, want 1", cfg.G)
	}
	if cfg.Theta != 0.5 {
		t.Errorf("default theta = %v, want 0.5", cfg.Theta)
	}
	if cfg.MinDist != 1.0 {
		t.Errorf("default min_dist = %v, want 1", cfg.MinDist)
	}
	if cfg.MaxDist != 0 {
		t.Errorf("default max_dist = %v, want 0 (no cutoff)", cfg.MaxDist)
	}
	if cfg.Dt != 1.0 {
		t.Errorf("default dt = %v, want 1", cfg.Dt)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
g: 2.0
solar_mass: 5000
theta: 0.7
seed: 42
gens:
  - name: stellar
    type: mass
    min: 0.5
    max: 2.0
  - name: disc
    type: translation
    x: {min: -100, max: 100}
    y: {min: -100, max: 100}
bodies:
  - name: stars
    num: 20
    mass: stellar
    translation: disc
rings:
  - num: 10
    min_dist: 50
    max_dist: 250
    dy: 10
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.G != 2.0 || cfg.SolarMass != 5000 || cfg.Theta != 0.7 || cfg.Seed != 42 {
		t.Errorf("unexpected parameters: %+v", cfg)
	}
	// unspecified values keep their defaults
	if cfg.MinDist != 1.0 || cfg.Dt != 1.0 {
		t.Errorf("defaults not applied: min_dist=%v dt=%v", cfg.MinDist, cfg.Dt)
	}
	if len(cfg.Gens) != 2 || len(cfg.Bodies) != 1 || len(cfg.Rings) != 1 {
		t.Errorf("sections not parsed: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := writeConfig(t, "g: [not a number")
	_, err := Load(path)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"non-positive g", func(c *Config) { c.G = 0 }},
		{"negative theta", func(c *Config) { c.Theta = -0.1 }},
		{"non-positive dt", func(c *Config) { c.Dt = 0 }},
		{"negative solar mass", func(c *Config) { c.SolarMass = -1 }},
		{"unknown gen type", func(c *Config) {
			c.Gens = []GenConfig{{Name: "x", Type: "spin"}}
		}},
		{"unnamed gen", func(c *Config) {
			c.Gens = []GenConfig{{Type: "mass", Min: 1, Max: 2}}
		}},
		{"duplicate gen", func(c *Config) {
			c.Gens = []GenConfig{
				{Name: "m", Type: "mass", Min: 1, Max: 2},
				{Name: "m", Type: "mass", Min: 1, Max: 2},
			}
		}},
		{"unknown reference", func(c *Config) {
			c.Bodies = []GroupConfig{{Name: "g", Num: 5, Mass: "absent"}}
		}},
		{"mistyped reference", func(c *Config) {
			c.Gens = []GenConfig{{Name: "m", Type: "mass", Min: 1, Max: 2}}
			c.Bodies = []GroupConfig{{Name: "g", Num: 5, Translation: "m"}}
		}},
		{"non-positive group count", func(c *Config) {
			c.Bodies = []GroupConfig{{Name: "g", Num: 0}}
		}},
		{"reversed ring annulus", func(c *Config) {
			c.Rings = []RingConfig{{Num: 5, MinDist: 100, MaxDist: 50}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestMaterialize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SolarMass = 1000
	cfg.Gens = []GenConfig{
		{Name: "stellar", Type: "mass", Min: 0.5, Max: 2.0},
		{Name: "disc", Type: "translation",
			X: Range{Min: 10, Max: 20}, Y: Range{Min: 10, Max: 20}},
		{Name: "spin", Type: "rotation", Min: 0, Max: 2 * math.Pi},
	}
	cfg.Bodies = []GroupConfig{
		{Name: "stars", Num: 50, Mass: "stellar", Translation: "disc", Rotation: "spin"},
	}
	cfg.Rings = []RingConfig{{Num: 30, MinDist: 50, MaxDist: 100, Dy: 5}}

	specs, err := cfg.Materialize(rand.New(rand.NewSource(9)))
	if err != nil {
		t.Fatalf("materialize failed: %v", err)
	}

	if len(specs) != 81 {
		t.Fatalf("materialized %d bodies, want 81", len(specs))
	}

	// ids are sequential from zero, the sun first
	for i, spec := range specs {
		if spec.ID != uint32(i) {
			t.Errorf("spec %d has id %d", i, spec.ID)
		}
	}
	if specs[0].Mass != 1000 || specs[0].Position != geometry.Origin() {
		t.Errorf("central body = %+v", specs[0])
	}

	for _, spec := range specs[1:51] {
		if spec.Mass < 0.5 || spec.Mass > 2.0 {
			t.Errorf("body %d mass %v outside gen range", spec.ID, spec.Mass)
		}
		// rotation preserves the distance from the origin
		r := spec.Position.DistanceTo(geometry.Origin())
		if r < math.Sqrt(200)-1e-9 || r > math.Sqrt(800)+1e-9 {
			t.Errorf("body %d radius %v outside rotated box range", spec.ID, r)
		}
	}

	for _, spec := range specs[51:] {
		r := spec.Position.DistanceTo(geometry.Origin())
		if r < 50-1e-9 || r > 100+1e-9 {
			t.Errorf("ring body %d radius %v outside [50, 100]", spec.ID, r)
		}
		if spec.Mass != 1.0 {
			t.Errorf("ring body %d mass %v, want 1", spec.ID, spec.Mass)
		}
	}
}

func TestMaterializeDeterministic(t *testing.T) {
	cfg := GetPreset("cluster")

	a, err := cfg.Materialize(rand.New(rand.NewSource(4)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := cfg.Materialize(rand.New(rand.NewSource(4)))
	if err != nil {
		t.Fatal(err)
	}

	if len(a) != len(b) {
		t.Fatalf("runs produced %d and %d bodies", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("spec %d differs between identically seeded runs", i)
		}
	}
}

func TestPopulate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rings = []RingConfig{{Num: 25, MinDist: 10, MaxDist: 20, Dy: 1}}

	field := cfg.NewField()
	if err := cfg.Populate(field, rand.New(rand.NewSource(2))); err != nil {
		t.Fatalf("populate failed: %v", err)
	}

	if field.Len() != 25 {
		t.Errorf("field has %d bodies, want 25", field.Len())
	}
	if field.Theta != cfg.Theta || field.Dt != cfg.Dt {
		t.Error("field parameters do not match the config")
	}
}

func TestPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected built-in presets")
	}

	for _, name := range names {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("preset %q listed but absent", name)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %q invalid: %v", name, err)
		}
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for an unknown preset")
	}
}
