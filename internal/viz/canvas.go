package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a Braille pixel grid. Each cell remembers which series last drew
// into it so it can be coloured on output.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Owner         [][]int
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Owner:  make([][]int, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Owner[i] = make([]int, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Owner[i][j] = -1
		}
	}
	return c
}

// SubWidth and SubHeight are the canvas size in sub-pixels.
func (c *Canvas) SubWidth() int  { return c.Width * 2 }
func (c *Canvas) SubHeight() int { return c.Height * 4 }

// Set sets a pixel at (x, y) in sub-pixel coordinates on behalf of series
// owner. Pixels outside the canvas are dropped.
func (c *Canvas) Set(x, y, owner int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	c.Owner[row][col] = owner
}

// IsSet reports whether the sub-pixel at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1, owner int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, owner)
		if x0 == x1 && y0 == y1 {
			break
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

// DashedVLine draws every other pair of sub-pixels in column x.
func (c *Canvas) DashedVLine(x, owner int) {
	for y := 0; y < c.SubHeight(); y++ {
		if (y/2)%2 == 0 {
			c.Set(x, y, owner)
		}
	}
}

// Render returns the canvas rows, colouring each cell with the style of its
// owner. Cells with an unknown owner are left unstyled.
func (c *Canvas) Render(styles []lipgloss.Style) string {
	var b strings.Builder
	for row := range c.Grid {
		for col, r := range c.Grid[row] {
			owner := c.Owner[row][col]
			if r == blank || owner < 0 || owner >= len(styles) {
				b.WriteRune(r)
				continue
			}
			b.WriteString(styles[owner].Render(string(r)))
		}
		if row < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Viewport maps data coordinates onto a canvas.
type Viewport struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Project returns the sub-pixel position of (x, y) and false when the point
// lies outside the viewport.
func (v Viewport) Project(c *Canvas, x, y float64) (int, int, bool) {
	if x < v.XMin || x > v.XMax || y < v.YMin || y > v.YMax {
		return 0, 0, false
	}
	xr := v.XMax - v.XMin
	yr := v.YMax - v.YMin
	if xr == 0 {
		xr = 1
	}
	if yr == 0 {
		yr = 1
	}
	px := int(float64(c.SubWidth()-1) * (x - v.XMin) / xr)
	py := int(float64(c.SubHeight()-1) * (y - v.YMin) / yr)
	return px, c.SubHeight() - 1 - py, true
}
