package viz

import (
	"strings"

	"github.com/johnxnguyen/newton/internal/geometry"
)

// Braille cells pack 2x4 dots per terminal character, giving a drawing
// resolution of (Width*2) x (Height*4) dots. Unicode offset 0x2800.
var dotMask = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot canvas with a world-coordinate viewport. World
// points are projected into dot space through the viewport square, so the
// caller can plot body positions directly.
type Canvas struct {
	Width, Height int
	viewport      geometry.Square
	grid          [][]rune
}

func NewCanvas(width, height int, viewport geometry.Square) *Canvas {
	c := &Canvas{
		Width:    width,
		Height:   height,
		viewport: viewport,
		grid:     make([][]rune, height),
	}
	for i := range c.grid {
		c.grid[i] = make([]rune, width)
	}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = 0x2800
		}
	}
}

// SetViewport changes the visible world square.
func (c *Canvas) SetViewport(viewport geometry.Square) {
	c.viewport = viewport
}

// Plot marks the dot under the given world point. Points outside the
// viewport are dropped.
func (c *Canvas) Plot(p geometry.Point) {
	half := c.viewport.Half
	if half <= 0 {
		return
	}

	// world -> unit square -> dot space, with y flipped for the terminal
	u := (p.X - c.viewport.Center.X + half) / (2 * half)
	v := 1 - (p.Y-c.viewport.Center.Y+half)/(2*half)
	if u < 0 || u >= 1 || v < 0 || v >= 1 {
		return
	}

	x := int(u * float64(c.Width*2))
	y := int(v * float64(c.Height*4))
	c.grid[y/4][x/2] |= dotMask[y%4][x%2]
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}
