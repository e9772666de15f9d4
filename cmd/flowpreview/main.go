// Flow field preview tool - interactive visualization with sliders.
//
// Usage: go run ./cmd/flowpreview [-config config.yaml]
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/backdrop/background"
	"github.com/pthm-cable/backdrop/config"
)

const (
	windowWidth  = 1200
	windowHeight = 720
	previewW     = 800
	previewH     = 450
	panelWidth   = windowWidth - previewW - 30
	gridStep     = 25
	tracerCount  = 120
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (empty = use defaults)")
	flag.Parse()

	config.MustInit(*configPath)
	cfg := config.Cfg()
	params := cfg.Background
	view := background.Viewport{Width: previewW, Height: previewH}

	rl.InitWindow(windowWidth, windowHeight, "Flow Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	rng := rand.New(rand.NewSource(1))
	tracers := seedTracers(rng, view)

	var t float64
	animating := true

	for !rl.WindowShouldClose() {
		if animating {
			t += 1.0 / 60
			stepTracers(tracers, &params, view, t)
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Preview
		rl.DrawRectangle(10, 10, previewW, previewH, rl.Color{R: 11, G: 13, B: 16, A: 255})
		drawQuiver(&params, view, t)
		for i := range tracers {
			p := &tracers[i]
			rl.DrawCircleV(rl.Vector2{X: float32(10 + p.X), Y: float32(10 + p.Y)}, float32(p.R), rl.Color{R: 255, G: 255, B: 255, A: 120})
		}
		rl.DrawRectangleLines(10, 10, previewW, previewH, rl.DarkGray)

		rl.DrawText(fmt.Sprintf("Time: %.1f s", t), 15, previewH+25, 16, rl.DarkGray)
		maxF := maxForce(&params, view, t)
		rl.DrawText(fmt.Sprintf("Max force: %.4f  Speed bound: %.2f", maxF, params.VelocityBound()), 15, previewH+45, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewW + 20)
		panelY := float32(10)

		rl.DrawText("Flow Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		params.Force = slider(&panelY, panelX, "Force (amplitude)", params.Force, 0, 0.2, "%.3f")
		params.FlowScaleX = slider(&panelY, panelX, "Flow scale X (column wavelength)", params.FlowScaleX, 20, 600, "%.0f")
		params.FlowScaleY = slider(&panelY, panelX, "Flow scale Y (row wavelength)", params.FlowScaleY, 20, 600, "%.0f")
		params.Damping = slider(&panelY, panelX, "Damping (velocity kept per frame)", params.Damping, 0.9, 1, "%.3f")

		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 15

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset Time") {
			t = 0
			tracers = seedTracers(rng, view)
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = cfg.Background
			t = 0
			tracers = seedTracers(rng, view)
		}
		panelY += 55

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		yamlLines := []string{
			"background:",
			fmt.Sprintf("  force: %.3f", params.Force),
			fmt.Sprintf("  flow_scale_x: %.0f", params.FlowScaleX),
			fmt.Sprintf("  flow_scale_y: %.0f", params.FlowScaleY),
			fmt.Sprintf("  damping: %.3f", params.Damping),
		}
		for _, line := range yamlLines {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy the background section to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			if out, err := backgroundYAML(params); err == nil {
				rl.SetClipboardText(out)
			}
		}

		rl.EndDrawing()
	}
}

func slider(y *float32, x float32, label string, value, lo, hi float64, format string) float64 {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprintf(format, lo), fmt.Sprintf(format, hi),
		float32(value), float32(lo), float32(hi),
	)
	rl.DrawText(fmt.Sprintf(format, value), int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.DarkGray)
	*y += 35
	if v == float32(value) {
		return value
	}
	return float64(v)
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// drawQuiver draws the force at phase 0 on a regular grid, scaled to the cell.
func drawQuiver(cfg *config.BackgroundConfig, view background.Viewport, t float64) {
	if cfg.Force <= 0 {
		return
	}
	scale := gridStep * 0.45 / cfg.Force
	for y := gridStep / 2.0; y < view.Height; y += gridStep {
		for x := gridStep / 2.0; x < view.Width; x += gridStep {
			fx, fy := background.FlowForce(cfg, &background.Particle{X: x, Y: y}, t)
			from := rl.Vector2{X: float32(10 + x), Y: float32(10 + y)}
			to := rl.Vector2{X: from.X + float32(fx*scale), Y: from.Y + float32(fy*scale)}
			rl.DrawLineEx(from, to, 1, rl.Color{R: 90, G: 140, B: 200, A: 160})
			rl.DrawCircleV(to, 1.5, rl.Color{R: 90, G: 140, B: 200, A: 220})
		}
	}
}

func maxForce(cfg *config.BackgroundConfig, view background.Viewport, t float64) float64 {
	var m float64
	for y := 0.0; y < view.Height; y += gridStep {
		for x := 0.0; x < view.Width; x += gridStep {
			fx, fy := background.FlowForce(cfg, &background.Particle{X: x, Y: y}, t)
			m = math.Max(m, math.Hypot(fx, fy))
		}
	}
	return m
}

func seedTracers(rng *rand.Rand, view background.Viewport) []background.Particle {
	ps := make([]background.Particle, tracerCount)
	for i := range ps {
		ps[i] = background.Particle{
			X:     rng.Float64() * view.Width,
			Y:     rng.Float64() * view.Height,
			R:     1 + rng.Float64()*1.2,
			Phase: rng.Float64() * math.Pi * 2,
		}
	}
	return ps
}

// stepTracers applies one frame of forcing and damping, wrapping at the preview edge.
func stepTracers(ps []background.Particle, cfg *config.BackgroundConfig, view background.Viewport, t float64) {
	for i := range ps {
		p := &ps[i]
		fx, fy := background.FlowForce(cfg, p, t)
		p.VX = (p.VX + fx) * cfg.Damping
		p.VY = (p.VY + fy) * cfg.Damping
		p.X = math.Mod(p.X+p.VX+view.Width, view.Width)
		p.Y = math.Mod(p.Y+p.VY+view.Height, view.Height)
	}
}

func backgroundYAML(b config.BackgroundConfig) (string, error) {
	out, err := yaml.Marshal(struct {
		Background config.BackgroundConfig `yaml:"background"`
	}{b})
	if err != nil {
		return "", fmt.Errorf("marshaling background config: %w", err)
	}
	return string(out), nil
}
