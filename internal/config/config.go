package config

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/johnxnguyen/newton/internal/geometry"
	"github.com/johnxnguyen/newton/internal/physics"
)

// ErrInvalid marks a malformed or semantically inconsistent configuration.
var ErrInvalid = errors.New("config: invalid")

const (
	DefaultG       = 1.0
	DefaultMinDist = 1.0
	DefaultDt      = 1.0
)

// GenConfig is a named generator description. The type selects which of
// the fields apply: mass and rotation use the flat min/max pair,
// translation uses x/y, velocity uses dx/dy.
type GenConfig struct {
	Name string  `yaml:"name"`
	Type string  `yaml:"type"`
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	X    Range   `yaml:"x"`
	Y    Range   `yaml:"y"`
	DX   Range   `yaml:"dx"`
	DY   Range   `yaml:"dy"`
}

// GroupConfig describes a group of bodies composed from named generators.
// Absent generator references fall back to unit mass, the origin, and
// zero velocity; the rotation, when present, is applied to both position
// and velocity.
type GroupConfig struct {
	Name        string `yaml:"name"`
	Num         int    `yaml:"num"`
	Mass        string `yaml:"mass"`
	Translation string `yaml:"translation"`
	Velocity    string `yaml:"velocity"`
	Rotation    string `yaml:"rotation"`
}

// RingConfig describes a radial annulus of unit-mass bodies with a
// tangential velocity component.
type RingConfig struct {
	Num     int     `yaml:"num"`
	MinDist float64 `yaml:"min_dist"`
	MaxDist float64 `yaml:"max_dist"`
	Dy      float64 `yaml:"dy"`
}

type Config struct {
	G         float64       `yaml:"g"`
	SolarMass float64       `yaml:"solar_mass"`
	MinDist   float64       `yaml:"min_dist"`
	MaxDist   float64       `yaml:"max_dist"`
	Theta     float64       `yaml:"theta"`
	Dt        float64       `yaml:"dt"`
	Seed      int64         `yaml:"seed"`
	Gens      []GenConfig   `yaml:"gens"`
	Bodies    []GroupConfig `yaml:"bodies"`
	Rings     []RingConfig  `yaml:"rings"`
}

func DefaultConfig() *Config {
	return &Config{
		G:       DefaultG,
		MinDist: DefaultMinDist,
		MaxDist: 0, // no cutoff
		Theta:   physics.DefaultTheta,
		Dt:      DefaultDt,
	}
}

// Load reads and validates a configuration file. Values absent from the
// file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.G <= 0 || math.IsNaN(c.G) {
		return fmt.Errorf("%w: g must be positive, got %v", ErrInvalid, c.G)
	}
	if c.Theta < 0 {
		return fmt.Errorf("%w: theta must not be negative, got %v", ErrInvalid, c.Theta)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %v", ErrInvalid, c.Dt)
	}
	if c.SolarMass < 0 {
		return fmt.Errorf("%w: solar_mass must not be negative, got %v", ErrInvalid, c.SolarMass)
	}

	names := make(map[string]string, len(c.Gens))
	for _, gen := range c.Gens {
		if gen.Name == "" {
			return fmt.Errorf("%w: gen without a name", ErrInvalid)
		}
		if _, dup := names[gen.Name]; dup {
			return fmt.Errorf("%w: duplicate gen %q", ErrInvalid, gen.Name)
		}
		switch gen.Type {
		case "mass", "translation", "velocity", "rotation":
			names[gen.Name] = gen.Type
		default:
			return fmt.Errorf("%w: gen %q has unknown type %q", ErrInvalid, gen.Name, gen.Type)
		}
	}

	check := func(group, ref, wantType string) error {
		if ref == "" {
			return nil
		}
		gotType, known := names[ref]
		if !known {
			return fmt.Errorf("%w: group %q references unknown gen %q", ErrInvalid, group, ref)
		}
		if gotType != wantType {
			return fmt.Errorf("%w: group %q uses %s gen %q as %s",
				ErrInvalid, group, gotType, ref, wantType)
		}
		return nil
	}

	for _, group := range c.Bodies {
		if group.Num <= 0 {
			return fmt.Errorf("%w: group %q count must be positive, got %d",
				ErrInvalid, group.Name, group.Num)
		}
		for _, ref := range []struct{ name, want string }{
			{group.Mass, "mass"},
			{group.Translation, "translation"},
			{group.Velocity, "velocity"},
			{group.Rotation, "rotation"},
		} {
			if err := check(group.Name, ref.name, ref.want); err != nil {
				return err
			}
		}
	}

	for i, ring := range c.Rings {
		if ring.Num <= 0 {
			return fmt.Errorf("%w: ring %d count must be positive, got %d", ErrInvalid, i, ring.Num)
		}
		if ring.MinDist < 0 || ring.MaxDist < ring.MinDist {
			return fmt.Errorf("%w: ring %d has invalid annulus [%v, %v]",
				ErrInvalid, i, ring.MinDist, ring.MaxDist)
		}
	}

	return nil
}

// BodySpec is a fully materialized body record, ready for Field.AddBody.
type BodySpec struct {
	ID       uint32
	Mass     float64
	Position geometry.Point
	Velocity geometry.Vector
}

// Materialize resolves the generator and group descriptions into concrete
// bodies. Ids are sequential from zero; a positive solar_mass claims the
// first id for a central body at the origin. The result is deterministic
// for a given rng state.
func (c *Config) Materialize(rng *rand.Rand) ([]BodySpec, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	massGens := make(map[string]*MassGen)
	translationGens := make(map[string]*TranslationGen)
	velocityGens := make(map[string]*VelocityGen)
	rotationGens := make(map[string]*RotationGen)

	for _, gen := range c.Gens {
		var err error
		switch gen.Type {
		case "mass":
			massGens[gen.Name], err = NewMassGen(rng, Range{gen.Min, gen.Max})
		case "translation":
			translationGens[gen.Name], err = NewTranslationGen(rng, gen.X, gen.Y)
		case "velocity":
			velocityGens[gen.Name], err = NewVelocityGen(rng, gen.DX, gen.DY)
		case "rotation":
			rotationGens[gen.Name], err = NewRotationGen(rng, Range{gen.Min, gen.Max})
		}
		if err != nil {
			return nil, fmt.Errorf("gen %q: %w", gen.Name, err)
		}
	}

	var specs []BodySpec
	var id uint32

	if c.SolarMass > 0 {
		specs = append(specs, BodySpec{ID: id, Mass: c.SolarMass})
		id++
	}

	for _, group := range c.Bodies {
		for i := 0; i < group.Num; i++ {
			spec := BodySpec{ID: id, Mass: 1.0}

			if group.Mass != "" {
				spec.Mass = massGens[group.Mass].Next()
			}
			if group.Translation != "" {
				spec.Position = translationGens[group.Translation].Next()
			}
			if group.Velocity != "" {
				spec.Velocity = velocityGens[group.Velocity].Next()
			}
			if group.Rotation != "" {
				rot := rotationGens[group.Rotation].Next()
				spec.Position = rot.ApplyPoint(spec.Position)
				spec.Velocity = rot.ApplyVector(spec.Velocity)
			}

			specs = append(specs, spec)
			id++
		}
	}

	for _, ring := range c.Rings {
		for i := 0; i < ring.Num; i++ {
			angle := rng.Float64() * 2 * math.Pi
			dist := ring.MinDist + rng.Float64()*(ring.MaxDist-ring.MinDist)

			rot := geometry.Rotation(angle)
			specs = append(specs, BodySpec{
				ID:       id,
				Mass:     1.0,
				Position: rot.ApplyPoint(geometry.Point{X: dist}),
				Velocity: rot.ApplyVector(geometry.Vector{DY: ring.Dy}),
			})
			id++
		}
	}

	return specs, nil
}

// NewField constructs a field with this configuration's simulation
// parameters, without any bodies.
func (c *Config) NewField() *physics.Field {
	field := physics.NewField(c.G, c.MinDist, c.MaxDist)
	field.Theta = c.Theta
	field.Dt = c.Dt
	return field
}

// Populate materializes the configuration into the field.
func (c *Config) Populate(field *physics.Field, rng *rand.Rand) error {
	specs, err := c.Materialize(rng)
	if err != nil {
		return err
	}
	for _, spec := range specs {
		if err := field.AddBody(spec.ID, spec.Mass, spec.Position, spec.Velocity); err != nil {
			return err
		}
	}
	return nil
}
