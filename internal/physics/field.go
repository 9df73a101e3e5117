package physics

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/johnxnguyen/newton/internal/geometry"
)

// DefaultTheta is the Barnes-Hut acceptance parameter used unless a field
// overrides it. Smaller values trade speed for accuracy; zero forces exact
// pairwise summation.
const DefaultTheta = 0.5

// Field is an instance of space in which bodies are affected by
// gravitational force. It owns the bodies and the simulation parameters;
// the quadtree built during a step holds non-owning references and never
// outlives it.
//
// A field is not safe for concurrent use.
type Field struct {
	G       float64
	MinDist float64
	MaxDist float64
	Theta   float64
	Dt      float64

	bodies map[uint32]*Body
	order  []uint32
	nextID uint32
}

// NewField creates a field with the given gravitational constant,
// softening floor and culling ceiling. Theta defaults to DefaultTheta and
// the time step to 1; both may be overridden before stepping.
func NewField(g, minDist, maxDist float64) *Field {
	return &Field{
		G:       g,
		MinDist: math.Max(minDist, 0),
		MaxDist: math.Max(maxDist, 0),
		Theta:   DefaultTheta,
		Dt:      1,
		bodies:  make(map[uint32]*Body),
	}
}

// AddBody inserts a new body. Duplicate ids and non-positive masses are
// rejected and leave the field unchanged.
func (f *Field) AddBody(id uint32, mass float64, pos geometry.Point, vel geometry.Vector) error {
	if _, exists := f.bodies[id]; exists {
		return fmt.Errorf("body %d: %w", id, ErrDuplicateBody)
	}

	body, err := NewBody(id, mass, pos, vel)
	if err != nil {
		return fmt.Errorf("body %d: %w", id, err)
	}

	f.bodies[id] = body
	f.order = append(f.order, id)
	if id >= f.nextID {
		f.nextID = id + 1
	}
	return nil
}

// Len returns the number of bodies.
func (f *Field) Len() int {
	return len(f.order)
}

// Bodies returns the bodies in insertion order. The physics is order
// independent, but a stable order makes output and floating point
// summation reproducible.
func (f *Field) Bodies() []*Body {
	bodies := make([]*Body, len(f.order))
	for i, id := range f.order {
		bodies[i] = f.bodies[id]
	}
	return bodies
}

// BodyPosition returns the current position of the body with the given
// id. Unknown ids report the origin and false; the origin sentinel is the
// published contract, so callers that track their ids may ignore ok.
func (f *Field) BodyPosition(id uint32) (geometry.Point, bool) {
	body, exists := f.bodies[id]
	if !exists {
		return geometry.Origin(), false
	}
	return body.Position, true
}

// Step advances the simulation by a single time step: bound the bodies,
// build a fresh quadtree, accumulate forces against that fixed
// configuration, then integrate. Forces are fully computed before any
// body moves.
func (f *Field) Step() {
	if len(f.order) == 0 {
		return
	}

	bodies := f.Bodies()
	positions := make([]geometry.Point, len(bodies))
	for i, b := range bodies {
		positions[i] = b.Position
	}

	tree := NewTree(geometry.Bounds(positions))
	for _, b := range bodies {
		tree.Insert(b)
	}

	gravity := Gravity{G: f.G, MinDist: f.MinDist, MaxDist: f.MaxDist}
	for _, b := range bodies {
		b.Force = tree.ForceOn(b, gravity, f.Theta)
	}

	for _, b := range bodies {
		b.integrate(f.Dt)
	}
}

// DistributeRadial populates the field with n unit-mass bodies on an
// annulus around the origin: angles uniform in [0, 2pi), radii uniform in
// [minDist, maxDist], each with tangential speed dy. Ids continue from
// the highest id already present.
func (f *Field) DistributeRadial(rng *rand.Rand, n int, minDist, maxDist, dy float64) {
	for i := 0; i < n; i++ {
		angle := rng.Float64() * 2 * math.Pi
		dist := minDist + rng.Float64()*(maxDist-minDist)

		rot := geometry.Rotation(angle)
		pos := rot.ApplyPoint(geometry.Point{X: dist})
		vel := rot.ApplyVector(geometry.Vector{DY: dy})

		// ids are fresh by construction, so this cannot fail
		_ = f.AddBody(f.nextID, 1.0, pos, vel)
	}
}
