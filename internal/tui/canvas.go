package tui

import (
	"math"
	"strings"

	"github.com/san-kum/rigidsim/internal/body"
)

// Braille cells pack 2x4 dots, unicode offset 0x2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille drawing surface with a world-space viewport. World
// coordinates map to sub-pixels: (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	grid          [][]rune

	// viewport extents in world units
	minX, maxX float64
	minY, maxY float64
}

func NewCanvas(w, h int, minX, maxX, minY, maxY float64) *Canvas {
	c := &Canvas{
		Width: w, Height: h,
		minX: minX, maxX: maxX,
		minY: minY, maxY: maxY,
		grid: make([][]rune, h),
	}
	for i := range c.grid {
		c.grid[i] = make([]rune, w)
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

func (c *Canvas) project(p body.Vec2) (int, int) {
	sx := (p.X - c.minX) / (c.maxX - c.minX) * float64(c.Width*2)
	sy := (1 - (p.Y-c.minY)/(c.maxY-c.minY)) * float64(c.Height*4)
	return int(sx), int(sy)
}

func (c *Canvas) set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) line(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	for {
		c.set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawBody outlines a body's oriented bounding box.
func (c *Canvas) DrawBody(b body.Body) {
	t := b.Transform()
	half := b.HalfExtents()
	cos, sin := math.Cos(t.Angle), math.Sin(t.Angle)

	corners := [4]body.Vec2{
		{X: -half.X, Y: -half.Y},
		{X: half.X, Y: -half.Y},
		{X: half.X, Y: half.Y},
		{X: -half.X, Y: half.Y},
	}
	var px, py [4]int
	for i, corner := range corners {
		world := body.Vec2{
			X: t.Pos.X + corner.X*cos - corner.Y*sin,
			Y: t.Pos.Y + corner.X*sin + corner.Y*cos,
		}
		px[i], py[i] = c.project(world)
	}
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		c.line(px[i], py[i], px[j], py[j])
	}
}

func (c *Canvas) String() string {
	var sb strings.Builder
	for _, row := range c.grid {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
