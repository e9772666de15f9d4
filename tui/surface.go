package tui

import (
	"math"

	"github.com/pthm-cable/backdrop/background"
)

// DefaultLineThreshold hides links fainter than this opacity. Braille has no
// intensity, so only the closer pairs are worth a stroke.
const DefaultLineThreshold = 0.06

// Surface is a background.Surface that rasterises onto a Braille grid.
// One dot covers UnitsPerDot logical units. Gradients are not drawn.
type Surface struct {
	grid          *Braille
	unitsPerDot   float64
	lineThreshold float64
}

// NewSurface creates a surface over grid.
func NewSurface(grid *Braille, unitsPerDot float64) *Surface {
	if unitsPerDot <= 0 {
		unitsPerDot = 1
	}
	return &Surface{grid: grid, unitsPerDot: unitsPerDot, lineThreshold: DefaultLineThreshold}
}

// SetScale is ignored: dot density is fixed by UnitsPerDot.
func (s *Surface) SetScale(float64) {}

func (s *Surface) ClearRect(x, y, w, h float64) {
	s.grid.Clear()
}

func (s *Surface) FillRectRadial(x, y, w, h float64, g background.RadialGradient) {}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c background.Color) {
	if c.A < s.lineThreshold {
		return
	}
	ax, ay := s.dot(x0, y0)
	bx, by := s.dot(x1, y1)
	s.grid.DrawLine(ax, ay, bx, by)
}

func (s *Surface) FillCircle(x, y, r float64, c background.Color) {
	dx, dy := s.dot(x, y)
	s.grid.Set(dx, dy)
}

// UnitsPerDot returns the logical size of one dot.
func (s *Surface) UnitsPerDot() float64 { return s.unitsPerDot }

func (s *Surface) dot(x, y float64) (int, int) {
	return int(math.Floor(x / s.unitsPerDot)), int(math.Floor(y / s.unitsPerDot))
}
