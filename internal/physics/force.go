package physics

import (
	"math"

	"github.com/johnxnguyen/newton/internal/geometry"
)

// Gravity computes Newton's law of universal gravitation between point
// masses. MinDist is the softening floor: separations below it are clamped
// in the divisor, bounding the force when bodies approach each other.
// MaxDist is the culling ceiling: sources beyond it contribute nothing.
// A MaxDist of zero or +Inf disables the cutoff.
type Gravity struct {
	G       float64
	MinDist float64
	MaxDist float64
}

func NewGravity(g, minDist, maxDist float64) Gravity {
	return Gravity{G: g, MinDist: math.Max(minDist, 0), MaxDist: math.Max(maxDist, 0)}
}

// Between returns the force exerted on the body by a source mass at the
// given position. Force is undefined for two bodies that occupy the same
// space, so coincident positions contribute zero.
func (gr Gravity) Between(b *Body, sourceMass float64, sourcePos geometry.Point) geometry.Vector {
	difference := geometry.Difference(sourcePos, b.Position)
	direction, ok := difference.Normalized()
	if !ok {
		return geometry.Zero()
	}

	distance := difference.Magnitude()
	if gr.MaxDist > 0 && !math.IsInf(gr.MaxDist, 1) && distance > gr.MaxDist {
		return geometry.Zero()
	}

	clamped := math.Max(distance, gr.MinDist)
	force := gr.G * b.Mass * sourceMass / (clamped * clamped)
	return direction.Scale(force)
}
