package ui

import (
	"fmt"
	"math"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/backdrop/background"
	"github.com/pthm-cable/backdrop/telemetry"
)

// Log interval slider bounds, in seconds.
const (
	minLogInterval = 1
	maxLogInterval = 60
)

// HUDData holds all the data needed to render the HUD.
type HUDData struct {
	FPS         int32
	Counters    telemetry.FrameCounters
	State       background.State
	Viewport    background.Viewport
	LogInterval time.Duration
}

// HUDActions reports what the user did with the HUD controls this frame.
type HUDActions struct {
	Reseed bool
	// LogInterval is non-zero when the slider moved.
	LogInterval time.Duration
}

// HUD renders the heads-up display panel.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewHUD creates a HUD anchored to the top-left corner.
func NewHUD(visible bool) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		x:        10,
		y:        10,
		width:    240,
		visible:  visible,
	}
}

// HandleInput toggles the HUD on F1.
func (h *HUD) HandleInput() {
	if rl.IsKeyPressed(rl.KeyF1) {
		h.Toggle()
	}
}

// Toggle switches HUD visibility.
func (h *HUD) Toggle() bool {
	h.visible = !h.visible
	return h.visible
}

// Visible returns whether the HUD is shown.
func (h *HUD) Visible() bool {
	return h.visible
}

// Draw renders the HUD and returns the user's actions.
func (h *HUD) Draw(data HUDData) HUDActions {
	var actions HUDActions
	if !h.visible {
		return actions
	}

	r := h.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	panelHeight := lineHeight*6 + padding*2 + 4 + 30 + 20 + 28

	r.DrawPanel(h.x, h.y, h.width, panelHeight)

	x := h.x + padding
	y := h.y + padding

	y = r.DrawSectionHeader(x, y, "Background")

	stateColor := r.Theme.StoppedColor
	if data.State == background.Running {
		stateColor = r.Theme.RunningColor
	}
	y = r.DrawLabelValueColor(x, y, "State", data.State.String(), stateColor)
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d", data.FPS))
	y = r.DrawLabelValue(x, y, "Particles", fmt.Sprintf("%d", data.Counters.Particles))
	y = r.DrawLabelValue(x, y, "Links", fmt.Sprintf("%d", data.Counters.Links))
	y = r.DrawLabelValue(x, y, "Viewport", formatViewport(data.Viewport))
	y += 4

	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: 100, Height: 24}, "Reseed") {
		actions.Reseed = true
	}
	y += 30

	label := "Perf log off"
	if data.LogInterval > 0 {
		label = fmt.Sprintf("Perf log every %s", data.LogInterval)
	}
	rl.DrawText(label, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += 16

	next := gui.SliderBar(
		rl.Rectangle{X: float32(x + 20), Y: float32(y), Width: float32(h.width - padding*2 - 50), Height: 16},
		"1s", "60s",
		float32(snapInterval(float32(data.LogInterval.Seconds())).Seconds()), minLogInterval, maxLogInterval,
	)
	actions.LogInterval = sliderInterval(data.LogInterval, next)

	return actions
}

// sliderInterval returns the interval picked on the slider, or 0 when the
// slider still shows the current one. Both sides are clamped to the slider
// range first, so a disabled (zero) interval is not switched on by merely
// drawing the slider at its minimum.
func sliderInterval(current time.Duration, value float32) time.Duration {
	if snapInterval(value) == snapInterval(float32(current.Seconds())) {
		return 0
	}
	return snapInterval(value)
}

// snapInterval rounds a slider value to whole seconds within the slider range.
func snapInterval(v float32) time.Duration {
	s := math.Round(float64(v))
	s = math.Max(minLogInterval, math.Min(maxLogInterval, s))
	return time.Duration(s) * time.Second
}

func formatViewport(v background.Viewport) string {
	return fmt.Sprintf("%.0fx%.0f @%.2gx", v.Width, v.Height, v.DPR)
}
