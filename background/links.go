package background

import "math"

// Link is an unordered pair of particles (I < J) closer than the link distance.
type Link struct {
	I, J int
	Dist float64
}

// LinkFinder enumerates links. Implementations must report every qualifying
// pair exactly once; order is unspecified.
type LinkFinder interface {
	Find(dst []Link, ps []Particle, maxDist float64) []Link
	// Resize is called after the viewport changes.
	Resize(view Viewport, margin float64)
}

// NewLinkFinder returns the finder for a configured method name.
// Unknown names fall back to the pair scan.
func NewLinkFinder(method string) LinkFinder {
	if method == "grid" {
		return &GridLinks{}
	}
	return PairLinks{}
}

// PairLinks checks every unordered pair: n(n-1)/2 distance tests per frame.
type PairLinks struct{}

// Find appends every pair closer than maxDist to dst.
func (PairLinks) Find(dst []Link, ps []Particle, maxDist float64) []Link {
	maxSq := maxDist * maxDist
	for i := 0; i < len(ps); i++ {
		a := &ps[i]
		for j := i + 1; j < len(ps); j++ {
			if d, ok := within(a, &ps[j], maxSq); ok {
				dst = append(dst, Link{I: i, J: j, Dist: d})
			}
		}
	}
	return dst
}

// Resize is a no-op; the pair scan keeps no spatial state.
func (PairLinks) Resize(Viewport, float64) {}

// GridLinks buckets particles into square cells one link distance wide so each
// particle is only tested against the 3x3 block of cells around it.
// The grid is planar: links never cross the wrap seam.
type GridLinks struct {
	originX, originY float64
	width, height    float64
	cellSize         float64
	cols, rows       int
	cells            [][]int32 // flat grid of particle indices
}

// Resize records the inflated viewport the grid must cover. Cells are rebuilt
// lazily on the next Find, once the link distance is known.
func (g *GridLinks) Resize(view Viewport, margin float64) {
	g.originX, g.originY = -margin, -margin
	g.width = view.Width + 2*margin
	g.height = view.Height + 2*margin
	g.cellSize = 0
}

func (g *GridLinks) rebuild(cellSize float64) {
	g.cellSize = cellSize
	g.cols = int(g.width/cellSize) + 1
	g.rows = int(g.height/cellSize) + 1

	n := g.cols * g.rows
	if cap(g.cells) < n {
		g.cells = make([][]int32, n)
	}
	g.cells = g.cells[:n]
	for i := range g.cells {
		if g.cells[i] == nil {
			g.cells[i] = make([]int32, 0, 8)
		}
	}
}

// Find appends every pair closer than maxDist to dst.
func (g *GridLinks) Find(dst []Link, ps []Particle, maxDist float64) []Link {
	if maxDist <= 0 || len(ps) < 2 {
		return dst
	}
	if g.cellSize != maxDist || len(g.cells) == 0 {
		g.rebuild(maxDist)
	}

	maxSq := maxDist * maxDist
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	for i := range ps {
		idx := g.cellIndex(ps[i].X, ps[i].Y)
		g.cells[idx] = append(g.cells[idx], int32(i))
	}

	for i := range ps {
		a := &ps[i]
		col, row := g.cellCoords(a.X, a.Y)

		for dr := -1; dr <= 1; dr++ {
			r := row + dr
			if r < 0 || r >= g.rows {
				continue
			}
			for dc := -1; dc <= 1; dc++ {
				c := col + dc
				if c < 0 || c >= g.cols {
					continue
				}
				for _, j32 := range g.cells[r*g.cols+c] {
					j := int(j32)
					if j <= i {
						continue
					}
					if d, ok := within(a, &ps[j], maxSq); ok {
						dst = append(dst, Link{I: i, J: j, Dist: d})
					}
				}
			}
		}
	}
	return dst
}

// cellCoords returns the clamped cell column and row for a position.
func (g *GridLinks) cellCoords(x, y float64) (int, int) {
	col := int((x - g.originX) / g.cellSize)
	row := int((y - g.originY) / g.cellSize)

	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}

func (g *GridLinks) cellIndex(x, y float64) int {
	col, row := g.cellCoords(x, y)
	return row*g.cols + col
}

// within returns the distance between a and b when it is below the limit
// whose square is maxSq. The square root is taken only for kept pairs.
func within(a, b *Particle, maxSq float64) (float64, bool) {
	dx, dy := a.X-b.X, a.Y-b.Y
	d2 := dx*dx + dy*dy
	if d2 >= maxSq {
		return 0, false
	}
	return math.Sqrt(d2), true
}
