package config

import (
	"fmt"
	"math/rand"

	"github.com/johnxnguyen/newton/internal/geometry"
)

// Range is a closed interval sampled uniformly.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

func (r Range) valid() bool {
	return r.Min <= r.Max
}

func (r Range) sample(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// MassGen uniformly generates masses within a positive range.
type MassGen struct {
	rng  *rand.Rand
	span Range
}

func NewMassGen(rng *rand.Rand, span Range) (*MassGen, error) {
	if span.Min <= 0 || span.Max <= 0 {
		return nil, fmt.Errorf("%w: mass range must be positive, got [%v, %v]",
			ErrInvalid, span.Min, span.Max)
	}
	if !span.valid() {
		return nil, fmt.Errorf("%w: mass range [%v, %v] is reversed",
			ErrInvalid, span.Min, span.Max)
	}
	return &MassGen{rng: rng, span: span}, nil
}

func (g *MassGen) Next() float64 {
	return g.span.sample(g.rng)
}

// TranslationGen uniformly generates positions within an x/y box.
type TranslationGen struct {
	rng  *rand.Rand
	x, y Range
}

func NewTranslationGen(rng *rand.Rand, x, y Range) (*TranslationGen, error) {
	if !x.valid() || !y.valid() {
		return nil, fmt.Errorf("%w: translation ranges are reversed", ErrInvalid)
	}
	return &TranslationGen{rng: rng, x: x, y: y}, nil
}

func (g *TranslationGen) Next() geometry.Point {
	return geometry.Point{X: g.x.sample(g.rng), Y: g.y.sample(g.rng)}
}

// VelocityGen uniformly generates velocities within a dx/dy box.
type VelocityGen struct {
	rng    *rand.Rand
	dx, dy Range
}

func NewVelocityGen(rng *rand.Rand, dx, dy Range) (*VelocityGen, error) {
	if !dx.valid() || !dy.valid() {
		return nil, fmt.Errorf("%w: velocity ranges are reversed", ErrInvalid)
	}
	return &VelocityGen{rng: rng, dx: dx, dy: dy}, nil
}

func (g *VelocityGen) Next() geometry.Vector {
	return geometry.Vector{DX: g.dx.sample(g.rng), DY: g.dy.sample(g.rng)}
}

// RotationGen uniformly generates rotations within an angle range, in
// radians. A body group applies one sampled rotation to both the position
// and the velocity, preserving tangential motion.
type RotationGen struct {
	rng  *rand.Rand
	span Range
}

func NewRotationGen(rng *rand.Rand, span Range) (*RotationGen, error) {
	if !span.valid() {
		return nil, fmt.Errorf("%w: rotation range [%v, %v] is reversed",
			ErrInvalid, span.Min, span.Max)
	}
	return &RotationGen{rng: rng, span: span}, nil
}

func (g *RotationGen) Next() geometry.Transform {
	return geometry.Rotation(g.span.sample(g.rng))
}
