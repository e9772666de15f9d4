package renderer

import (
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/backdrop/background"
	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/host"
	"github.com/pthm-cable/backdrop/telemetry"
)

// WindowOptions configures a Window.
type WindowOptions struct {
	Screen        config.ScreenConfig
	DPROverride   float64
	ReducedMotion bool
	Perf          *telemetry.PerfCollector
	Logger        *slog.Logger
}

// Window is a background.Host backed by a raylib window. Frame requests are
// served once per display refresh. Resize and visibility are polled at the
// start of every refresh.
type Window struct {
	screen  config.ScreenConfig
	reduced bool
	perf    *telemetry.PerfCollector
	log     *slog.Logger

	queue     *host.FrameQueue
	surface   *Surface
	canvas    *Canvas
	listeners []background.Listener

	hidden  bool
	lastDPR float32
	start   time.Time
	open    bool

	// Overlay, when set, is drawn over the presented frame every refresh.
	Overlay func()
	// OnRefresh, when set, runs after every refresh with the host timestamp.
	OnRefresh func(now time.Duration)
}

// NewWindow creates a closed window host. Open must be called before Run.
func NewWindow(opts WindowOptions) *Window {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	s := NewSurface(opts.Screen.BackgroundRGB)
	return &Window{
		screen:  opts.Screen,
		reduced: opts.ReducedMotion,
		perf:    opts.Perf,
		log:     log,
		queue:   host.NewFrameQueue(),
		surface: s,
		canvas:  NewCanvas(s, opts.DPROverride),
	}
}

// Open creates the OS window.
func (w *Window) Open() {
	if w.screen.Resizable {
		rl.SetConfigFlags(rl.FlagWindowResizable)
	}
	rl.InitWindow(int32(w.screen.Width), int32(w.screen.Height), w.screen.Title)
	rl.SetTargetFPS(int32(w.screen.TargetFPS))

	w.lastDPR = rl.GetWindowScaleDPI().X
	w.start = time.Now()
	w.open = true
	w.log.Info("window opened", "width", w.screen.Width, "height", w.screen.Height, "dpr", w.lastDPR)
}

// Run drives refreshes until the window is asked to close.
func (w *Window) Run() {
	for !rl.WindowShouldClose() {
		w.Refresh()
	}
}

// Refresh performs one display refresh: poll events, serve pending frame
// requests into the backing store, then present it.
func (w *Window) Refresh() {
	w.poll()

	now := time.Since(w.start)
	w.perf.RecordRefresh()

	if w.queue.Len() > 0 && w.canvas.Begin() {
		w.queue.Pump(now)
		w.canvas.End()
	}

	rl.BeginDrawing()
	rl.ClearBackground(w.surface.clear)
	w.canvas.Present()
	if w.Overlay != nil {
		w.Overlay()
	}
	rl.EndDrawing()

	if w.OnRefresh != nil {
		w.OnRefresh(now)
	}
}

func (w *Window) poll() {
	dpr := rl.GetWindowScaleDPI().X
	if rl.IsWindowResized() || dpr != w.lastDPR {
		w.lastDPR = dpr
		w.log.Debug("window resized", "width", rl.GetScreenWidth(), "height", rl.GetScreenHeight(), "dpr", dpr)
		for _, l := range w.listeners {
			l.OnResize()
		}
	}

	hidden := rl.IsWindowMinimized() || rl.IsWindowHidden()
	if hidden != w.hidden {
		w.hidden = hidden
		w.log.Debug("window visibility changed", "hidden", hidden)
		for _, l := range w.listeners {
			l.OnVisibilityChange()
		}
	}
}

// Lookup returns the window canvas for background.MountID once the window is open.
func (w *Window) Lookup(id string) background.Canvas {
	if id != background.MountID || !w.open {
		return nil
	}
	return w.canvas
}

func (w *Window) PrefersReducedMotion() bool { return w.reduced }
func (w *Window) Hidden() bool               { return w.hidden }

func (w *Window) RequestFrame(fn background.FrameFunc) background.FrameHandle {
	return w.queue.Request(fn)
}

func (w *Window) CancelFrame(h background.FrameHandle) { w.queue.Cancel(h) }

func (w *Window) Listen(l background.Listener) { w.listeners = append(w.listeners, l) }

// Surface returns the drawing surface.
func (w *Window) Surface() *Surface { return w.surface }

// Close frees GPU resources and closes the OS window.
func (w *Window) Close() {
	if !w.open {
		return
	}
	w.canvas.Unload()
	w.surface.Unload()
	rl.CloseWindow()
	w.open = false
}
