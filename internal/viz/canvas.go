package viz

import (
	"math"
	"strings"

	"github.com/san-kum/dartsim/internal/board"
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

const brailleBlank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
	return c
}

// Set lights the dot at sub-pixel (x, y). The canvas is Width*2 by
// Height*4 sub-pixels.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
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
		c.Set(x0, y0)
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

// DrawCircle plots a circle of sub-pixel radius r around (cx, cy).
func (c *Canvas) DrawCircle(cx, cy int, r float64) {
	if r <= 0 {
		c.Set(cx, cy)
		return
	}
	steps := max(int(2*math.Pi*r), 16)
	for i := range steps {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.Set(cx+int(math.Round(r*math.Cos(a))), cy+int(math.Round(r*math.Sin(a))))
	}
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

// boardFrame maps board millimetres onto canvas sub-pixels, with +y up.
type boardFrame struct {
	cx, cy int
	scale  float64
}

func newBoardFrame(c *Canvas, extent float64) boardFrame {
	w, h := c.Width*2, c.Height*4
	return boardFrame{
		cx:    w / 2,
		cy:    h / 2,
		scale: float64(min(w, h)-1) / (2 * extent),
	}
}

func (f boardFrame) project(p board.Point) (int, int) {
	return f.cx + int(math.Round(p.X*f.scale)), f.cy - int(math.Round(p.Y*f.scale))
}

// RenderBoard draws the ring and sector wires of the board and marks each
// landing point. Points beyond the double ring are clipped to the canvas.
func RenderBoard(c *Canvas, points []board.Point) {
	const extent = board.DoubleOuterRadius * 1.05
	f := newBoardFrame(c, extent)

	for _, r := range []float64{
		board.InnerBullRadius, board.OuterBullRadius,
		board.TrebleInnerRadius, board.TrebleOuterRadius,
		board.DoubleInnerRadius, board.DoubleOuterRadius,
	} {
		c.DrawCircle(f.cx, f.cy, r*f.scale)
	}

	for i := range board.NumSectors {
		bearing := float64(i)*board.SectorWidth + board.SectorWidth/2
		x0, y0 := f.project(board.Polar(bearing, board.OuterBullRadius))
		x1, y1 := f.project(board.Polar(bearing, board.DoubleOuterRadius))
		c.DrawLine(x0, y0, x1, y1)
	}

	for _, p := range points {
		x, y := f.project(p)
		c.Set(x, y)
	}
}
