// Package tui hosts the background in a terminal, drawn with braille dots.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pthm-cable/backdrop/background"
	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/host"
	"github.com/pthm-cable/backdrop/telemetry"
)

// statusLines is the number of terminal rows below the canvas.
const statusLines = 1

var (
	canvasStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	runningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88")).Bold(true)
	stoppedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaa00")).Bold(true)
	keyHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688")).Italic(true)
)

type frameMsg time.Time

// Options configures a Model.
type Options struct {
	Terminal      config.TerminalConfig
	ReducedMotion bool
	Perf          *telemetry.PerfCollector
	Reporter      *telemetry.Reporter
}

// Model is a bubbletea model that also serves as the background's host.
// Terminal focus stands in for page visibility; a tick at the configured
// rate stands in for the display refresh and runs only while frames are pending.
type Model struct {
	bg       *background.Background
	perf     *telemetry.PerfCollector
	reporter *telemetry.Reporter
	interval time.Duration
	reduced  bool

	queue     *host.FrameQueue
	grid      *Braille
	surface   *Surface
	listeners []background.Listener

	started  bool
	mounted  bool
	hidden   bool
	ticking  bool
	quitting bool
	start    time.Time
}

// NewModel creates a model for bg. The background starts on the first
// window size message.
func NewModel(bg *background.Background, opts Options) *Model {
	fps := opts.Terminal.FPS
	if fps <= 0 {
		fps = 30
	}
	grid := NewBraille(0, 0)
	return &Model{
		bg:       bg,
		perf:     opts.Perf,
		reporter: opts.Reporter,
		interval: time.Second / time.Duration(fps),
		reduced:  opts.ReducedMotion,
		queue:    host.NewFrameQueue(),
		grid:     grid,
		surface:  NewSurface(grid, opts.Terminal.UnitsPerDot),
		start:    time.Now(),
	}
}

// Run runs the model full screen until the user quits.
func Run(m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles input, terminal events and refresh ticks.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.bg.Close()
			m.reporter.Flush(m.bg.Frames())
			m.quitting = true
			return m, tea.Quit
		case "r":
			m.bg.Reseed()
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.BlurMsg:
		m.setHidden(true)
	case tea.FocusMsg:
		m.setHidden(false)
	case frameMsg:
		m.ticking = false
		now := time.Since(m.start)
		m.perf.RecordRefresh()
		m.queue.Pump(now)
		m.reporter.Observe(now, m.bg.Frames())
	}
	return m, m.schedule()
}

// schedule arms one refresh tick when frames are pending and none is in flight.
func (m *Model) schedule() tea.Cmd {
	if m.ticking || m.queue.Len() == 0 {
		return nil
	}
	m.ticking = true
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *Model) resize(width, height int) {
	m.grid.Resize(width, max(height-statusLines, 1))
	if !m.started {
		m.started = true
		m.mounted = m.bg.Start(m)
		return
	}
	for _, l := range m.listeners {
		l.OnResize()
	}
}

func (m *Model) setHidden(hidden bool) {
	if hidden == m.hidden {
		return
	}
	m.hidden = hidden
	for _, l := range m.listeners {
		l.OnVisibilityChange()
	}
}

// View renders the braille canvas and a status line.
func (m *Model) View() string {
	if m.quitting || !m.started {
		return ""
	}

	body := canvasStyle.Render(m.grid.String())
	if !m.mounted {
		body = disabledStyle.Render("background disabled (reduced motion)")
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.status())
}

func (m *Model) status() string {
	state := stoppedStyle.Render(m.bg.State().String())
	if m.bg.State() == background.Running {
		state = runningStyle.Render(m.bg.State().String())
	}
	c := m.bg.Counters()
	return fmt.Sprintf("%s  %s %s  %s %s  %s %s  %s",
		state,
		labelStyle.Render("particles"), valueStyle.Render(fmt.Sprint(c.Particles)),
		labelStyle.Render("links"), valueStyle.Render(fmt.Sprint(c.Links)),
		labelStyle.Render("frames"), valueStyle.Render(fmt.Sprint(c.Frame)),
		keyHintStyle.Render("r reseed · q quit"),
	)
}

// Lookup returns the terminal canvas for background.MountID.
func (m *Model) Lookup(id string) background.Canvas {
	if id != background.MountID {
		return nil
	}
	return termCanvas{m}
}

func (m *Model) PrefersReducedMotion() bool { return m.reduced }
func (m *Model) Hidden() bool               { return m.hidden }

func (m *Model) RequestFrame(fn background.FrameFunc) background.FrameHandle {
	return m.queue.Request(fn)
}

func (m *Model) CancelFrame(h background.FrameHandle) { m.queue.Cancel(h) }

func (m *Model) Listen(l background.Listener) { m.listeners = append(m.listeners, l) }

// termCanvas sizes the logical viewport from the braille grid.
type termCanvas struct{ m *Model }

func (c termCanvas) ClientSize() (float64, float64) {
	u := c.m.surface.UnitsPerDot()
	return float64(c.m.grid.Cols*2) * u, float64(c.m.grid.Rows*4) * u
}

// DevicePixelRatio is fixed at 1: a dot is the device pixel.
func (c termCanvas) DevicePixelRatio() float64 { return 1 }

// SetBackingSize is a no-op; the grid follows the terminal size.
func (c termCanvas) SetBackingSize(w, h int) {}

func (c termCanvas) Context() background.Surface { return c.m.surface }
