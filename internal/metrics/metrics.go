// Package metrics provides per-frame observers for simulation health.
// Metrics are sampled after each step and their histories are stored
// alongside the frame output for later inspection.
package metrics

import (
	"math"

	"github.com/johnxnguyen/newton/internal/geometry"
	"github.com/johnxnguyen/newton/internal/physics"
)

type Metric interface {
	Name() string
	Observe(field *physics.Field, frame int)
	Value() float64
	History() []float64
	Reset()
}

// Energy tracks the total mechanical energy of the field: kinetic energy
// plus softened pairwise potential energy. Softening uses the field's
// min_dist clamp, matching the force law.
type Energy struct {
	history []float64
}

func NewEnergy() *Energy {
	return &Energy{}
}

func (e *Energy) Name() string { return "energy" }

func (e *Energy) Observe(field *physics.Field, frame int) {
	bodies := field.Bodies()

	var ke, pe float64
	for i, b := range bodies {
		v := b.Velocity.Magnitude()
		ke += 0.5 * b.Mass * v * v

		for _, other := range bodies[i+1:] {
			r := b.Position.DistanceTo(other.Position)
			pe -= field.G * b.Mass * other.Mass / math.Max(r, field.MinDist)
		}
	}

	e.history = append(e.history, ke+pe)
}

func (e *Energy) Value() float64 {
	if len(e.history) == 0 {
		return 0
	}
	return e.history[len(e.history)-1]
}

func (e *Energy) History() []float64 { return e.history }

func (e *Energy) Reset() { e.history = nil }

// Momentum tracks the magnitude of the field's total linear momentum. For
// an isolated system it should stay constant up to the approximation
// tolerance.
type Momentum struct {
	history []float64
}

func NewMomentum() *Momentum {
	return &Momentum{}
}

func (m *Momentum) Name() string { return "momentum" }

func (m *Momentum) Observe(field *physics.Field, frame int) {
	total := geometry.Zero()
	for _, b := range field.Bodies() {
		total = total.Add(b.Velocity.Scale(b.Mass))
	}
	m.history = append(m.history, total.Magnitude())
}

func (m *Momentum) Value() float64 {
	if len(m.history) == 0 {
		return 0
	}
	return m.history[len(m.history)-1]
}

func (m *Momentum) History() []float64 { return m.history }

func (m *Momentum) Reset() { m.history = nil }

// CenterDrift tracks how far the center of mass has moved from where it
// started. The first observation fixes the reference.
type CenterDrift struct {
	initial geometry.Point
	primed  bool
	history []float64
}

func NewCenterDrift() *CenterDrift {
	return &CenterDrift{}
}

func (c *CenterDrift) Name() string { return "center_drift" }

func (c *CenterDrift) Observe(field *physics.Field, frame int) {
	var mass float64
	var weighted geometry.Point
	for _, b := range field.Bodies() {
		mass += b.Mass
		weighted = weighted.Add(b.Position.Mul(b.Mass))
	}
	if mass == 0 {
		c.history = append(c.history, 0)
		return
	}

	com := weighted.Div(mass)
	if !c.primed {
		c.initial = com
		c.primed = true
	}
	c.history = append(c.history, com.DistanceTo(c.initial))
}

func (c *CenterDrift) Value() float64 {
	if len(c.history) == 0 {
		return 0
	}
	return c.history[len(c.history)-1]
}

func (c *CenterDrift) History() []float64 { return c.history }

func (c *CenterDrift) Reset() {
	c.initial = geometry.Origin()
	c.primed = false
	c.history = nil
}
