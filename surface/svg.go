package surface

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/pthm-cable/backdrop/background"
)

// ErrNoFrame is returned when a recorder holds no frame to export.
var ErrNoFrame = errors.New("surface: no recorded frame")

// WriteSVG writes the recorder's current frame as an SVG document sized to the
// viewport's backing store, with bg painted underneath.
func WriteSVG(w io.Writer, r *Recorder, view background.Viewport, bg background.Color) error {
	if r == nil || len(r.ops) == 0 {
		return ErrNoFrame
	}

	bw := bufio.NewWriter(w)
	pw, ph := view.BackingSize()

	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %.2f %.2f">
<rect width="100%%" height="100%%" fill="%s"/>
`, pw, ph, view.Width, view.Height, rgb(bg))

	gradients := 0
	for _, op := range r.ops {
		switch op.Kind {
		case OpClear:
			// Nothing to paint: the bg rect already stands in for the cleared page.
		case OpRadial:
			id := fmt.Sprintf("vignette%d", gradients)
			gradients++
			g := op.Gradient
			fmt.Fprintf(bw, `<defs><radialGradient id="%s" gradientUnits="userSpaceOnUse" cx="%.2f" cy="%.2f" r="%.2f">
<stop offset="0" stop-color="%s" stop-opacity="%.3f"/>
<stop offset="1" stop-color="%s" stop-opacity="%.3f"/>
</radialGradient></defs>
<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="url(#%s)"/>
`, id, g.CX, g.CY, g.R,
				rgb(g.Inner), g.Inner.A, rgb(g.Outer), g.Outer.A,
				op.X0, op.Y0, op.W, op.H, id)
		case OpLine:
			fmt.Fprintf(bw, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-opacity="%.4f" stroke-width="%.2f"/>
`, op.X0, op.Y0, op.X1, op.Y1, rgb(op.Color), op.Color.A, op.Width)
		case OpCircle:
			fmt.Fprintf(bw, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.3f"/>
`, op.X0, op.Y0, op.R, rgb(op.Color), op.Color.A)
		}
	}

	bw.WriteString("</svg>\n")
	return bw.Flush()
}

func rgb(c background.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
