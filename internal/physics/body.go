package physics

import "github.com/johnxnguyen/newton/internal/geometry"

// Body is a point mass moving through the field. Force is the transient
// per-step accumulator; it is zero outside of Field.Step.
type Body struct {
	ID       uint32
	Mass     float64
	Position geometry.Point
	Velocity geometry.Vector
	Force    geometry.Vector
}

// NewBody validates the mass and returns the body.
func NewBody(id uint32, mass float64, pos geometry.Point, vel geometry.Vector) (*Body, error) {
	if mass <= 0 {
		return nil, ErrNonPositiveMass
	}
	return &Body{ID: id, Mass: mass, Position: pos, Velocity: vel}, nil
}

// integrate applies the accumulated force with semi-implicit Euler: the
// velocity is updated first, then the position with the new velocity. The
// accumulator is cleared.
func (b *Body) integrate(dt float64) {
	b.Velocity = b.Velocity.Add(b.Force.Scale(dt / b.Mass))
	b.Position = b.Position.Offset(b.Velocity.Scale(dt))
	b.Force = geometry.Zero()
}
