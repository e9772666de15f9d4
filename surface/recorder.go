// Package surface provides in-memory drawing surfaces for the background:
// a Recorder that keeps the last frame's draw ops, a Discard that only counts
// them, and an SVG writer for recorded frames.
package surface

import "github.com/pthm-cable/backdrop/background"

// OpKind identifies a recorded draw call.
type OpKind uint8

const (
	OpClear OpKind = iota
	OpRadial
	OpLine
	OpCircle
)

func (k OpKind) String() string {
	switch k {
	case OpClear:
		return "clear"
	case OpRadial:
		return "radial"
	case OpLine:
		return "line"
	case OpCircle:
		return "circle"
	}
	return "unknown"
}

// Op is one recorded draw call in logical coordinates.
// Rectangles use X0, Y0, W, H; lines X0, Y0, X1, Y1 and Width; circles X0, Y0 and R.
type Op struct {
	Kind     OpKind
	X0, Y0   float64
	X1, Y1   float64
	W, H     float64
	R        float64
	Width    float64
	Color    background.Color
	Gradient background.RadialGradient
}

// Recorder is a background.Surface that keeps the draw ops of the current
// frame. A ClearRect starts a new frame.
type Recorder struct {
	ops    []Op
	scale  float64
	frames int
	scales int
}

// NewRecorder creates an empty recorder with an identity scale.
func NewRecorder() *Recorder {
	return &Recorder{scale: 1}
}

func (r *Recorder) SetScale(s float64) {
	r.scale = s
	r.scales++
}

func (r *Recorder) ClearRect(x, y, w, h float64) {
	r.ops = r.ops[:0]
	r.frames++
	r.ops = append(r.ops, Op{Kind: OpClear, X0: x, Y0: y, W: w, H: h})
}

func (r *Recorder) FillRectRadial(x, y, w, h float64, g background.RadialGradient) {
	r.ops = append(r.ops, Op{Kind: OpRadial, X0: x, Y0: y, W: w, H: h, Gradient: g})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, c background.Color) {
	r.ops = append(r.ops, Op{Kind: OpLine, X0: x0, Y0: y0, X1: x1, Y1: y1, Width: width, Color: c})
}

func (r *Recorder) FillCircle(x, y, radius float64, c background.Color) {
	r.ops = append(r.ops, Op{Kind: OpCircle, X0: x, Y0: y, R: radius, Color: c})
}

// Ops returns the ops of the current frame. The slice is reused by the next frame.
func (r *Recorder) Ops() []Op { return r.ops }

// Count returns how many ops of kind k the current frame holds.
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for i := range r.ops {
		if r.ops[i].Kind == k {
			n++
		}
	}
	return n
}

// Filter returns copies of the current frame's ops of kind k.
func (r *Recorder) Filter(k OpKind) []Op {
	var out []Op
	for _, op := range r.ops {
		if op.Kind == k {
			out = append(out, op)
		}
	}
	return out
}

// Scale returns the last installed scale.
func (r *Recorder) Scale() float64 { return r.scale }

// Frames returns the number of frames started (ClearRect calls).
func (r *Recorder) Frames() int { return r.frames }

// Scales returns the number of SetScale calls.
func (r *Recorder) Scales() int { return r.scales }

// Discard is a background.Surface that only counts draw calls.
type Discard struct {
	Frames  int
	Lines   int
	Circles int
	Radials int
}

// NewDiscard creates a counting surface.
func NewDiscard() *Discard { return &Discard{} }

func (d *Discard) SetScale(float64) {}

func (d *Discard) ClearRect(x, y, w, h float64) { d.Frames++ }

func (d *Discard) FillRectRadial(x, y, w, h float64, g background.RadialGradient) {
	d.Radials++
}

func (d *Discard) StrokeLine(x0, y0, x1, y1, width float64, c background.Color) {
	d.Lines++
}

func (d *Discard) FillCircle(x, y, r float64, c background.Color) { d.Circles++ }
