package geometry

// Point is a coordinate in 2D space.
type Point struct {
	X, Y float64
}

func Origin() Point {
	return Point{}
}

func (p Point) IsOrigin() bool {
	return p.X == 0 && p.Y == 0
}

func (p Point) Add(other Point) Point {
	return Point{p.X + other.X, p.Y + other.Y}
}

func (p Point) Mul(scalar float64) Point {
	return Point{p.X * scalar, p.Y * scalar}
}

func (p Point) Div(scalar float64) Point {
	return Point{p.X / scalar, p.Y / scalar}
}

func (p Point) DistanceTo(other Point) float64 {
	return Difference(other, p).Magnitude()
}

// Offset moves the point by the given displacement.
func (p Point) Offset(v Vector) Point {
	return Point{p.X + v.DX, p.Y + v.DY}
}
