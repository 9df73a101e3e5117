package geometry

import "math"

// Transform is a 2D linear transformation represented as the pair of
// transformed basis vectors.
type Transform struct {
	A, B Vector
}

// Rotation returns the counterclockwise rotation by the given angle.
func Rotation(radians float64) Transform {
	sin, cos := math.Sincos(radians)
	return Transform{
		A: Vector{DX: cos, DY: sin},
		B: Vector{DX: -sin, DY: cos},
	}
}

func (t Transform) ApplyVector(v Vector) Vector {
	return t.A.Scale(v.DX).Add(t.B.Scale(v.DY))
}

func (t Transform) ApplyPoint(p Point) Point {
	v := t.ApplyVector(Vector{DX: p.X, DY: p.Y})
	return Point{X: v.DX, Y: v.DY}
}
