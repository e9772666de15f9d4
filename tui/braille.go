package tui

import "strings"

// Braille patterns: 2x4 dots per cell
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBlank = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Braille is a grid of braille cells addressed in dot coordinates.
// The grid is (Cols*2) x (Rows*4) dots.
type Braille struct {
	Cols, Rows int
	grid       [][]rune
}

// NewBraille creates a blank grid.
func NewBraille(cols, rows int) *Braille {
	b := &Braille{}
	b.Resize(cols, rows)
	return b
}

// Resize reallocates the grid and blanks it.
func (b *Braille) Resize(cols, rows int) {
	b.Cols, b.Rows = max(cols, 0), max(rows, 0)
	b.grid = make([][]rune, b.Rows)
	for i := range b.grid {
		b.grid[i] = make([]rune, b.Cols)
	}
	b.Clear()
}

// Set raises the dot at (x, y). Out of range dots are ignored.
func (b *Braille) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= b.Cols || row >= b.Rows {
		return
	}
	b.grid[row][col] |= pixelMap[y%4][x%2]
}

// IsSet reports whether the dot at (x, y) is raised.
func (b *Braille) IsSet(x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}
	col, row := x/2, y/4
	if col >= b.Cols || row >= b.Rows {
		return false
	}
	return b.grid[row][col]&pixelMap[y%4][x%2] != 0
}

// Clear blanks every cell.
func (b *Braille) Clear() {
	for i := range b.grid {
		for j := range b.grid[i] {
			b.grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (b *Braille) DrawLine(x0, y0, x1, y1 int) {
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
		b.Set(x0, y0)
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

// String renders the grid, one line per row.
func (b *Braille) String() string {
	var sb strings.Builder
	sb.Grow(b.Rows * (b.Cols*3 + 1))
	for i, row := range b.grid {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(row))
	}
	return sb.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
