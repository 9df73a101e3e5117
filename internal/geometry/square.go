package geometry

import "math"

// Quadrant indices in canonical traversal order.
const (
	NW = iota
	NE
	SW
	SE
)

// Square is an axis-aligned bounding square given by its center and
// half-width. Containment is half-open on the upper bounds so that
// quadrant assignment is total: [cx-h, cx+h) x [cy-h, cy+h).
type Square struct {
	Center Point
	Half   float64
}

func NewSquare(cx, cy, half float64) Square {
	return Square{Center: Point{cx, cy}, Half: half}
}

func (s Square) Contains(p Point) bool {
	return p.X >= s.Center.X-s.Half && p.X < s.Center.X+s.Half &&
		p.Y >= s.Center.Y-s.Half && p.Y < s.Center.Y+s.Half
}

// Side returns the full side length.
func (s Square) Side() float64 {
	return 2 * s.Half
}

// Quadrant returns the quadrant index for the given point. It is a pure
// function of the point and the center; points outside the square still
// map to the quadrant they fall toward.
func (s Square) Quadrant(p Point) int {
	if p.Y >= s.Center.Y {
		if p.X < s.Center.X {
			return NW
		}
		return NE
	}
	if p.X < s.Center.X {
		return SW
	}
	return SE
}

// Child returns the sub-square covering the given quadrant.
func (s Square) Child(quadrant int) Square {
	h := s.Half / 2
	switch quadrant {
	case NW:
		return Square{Point{s.Center.X - h, s.Center.Y + h}, h}
	case NE:
		return Square{Point{s.Center.X + h, s.Center.Y + h}, h}
	case SW:
		return Square{Point{s.Center.X - h, s.Center.Y - h}, h}
	default:
		return Square{Point{s.Center.X + h, s.Center.Y - h}, h}
	}
}

// Bounds returns a square containing every given point. The tight
// axis-aligned box is expanded to a square on its larger extent and grown
// by a small margin so no point sits exactly on the half-open upper edge.
func Bounds(points []Point) Square {
	if len(points) == 0 {
		return NewSquare(0, 0, 1)
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	center := Point{(minX + maxX) / 2, (minY + maxY) / 2}
	half := math.Max(maxX-minX, maxY-minY) / 2
	if half == 0 {
		half = 1
	}
	return Square{Center: center, Half: half * (1 + boundsMargin)}
}

const boundsMargin = 1e-3
