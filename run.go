package main

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/pthm-cable/backdrop/background"
	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/host"
	"github.com/pthm-cable/backdrop/renderer"
	"github.com/pthm-cable/backdrop/surface"
	"github.com/pthm-cable/backdrop/telemetry"
	"github.com/pthm-cable/backdrop/tui"
	"github.com/pthm-cable/backdrop/ui"
)

// errDisabled is returned by commands that need a running background when
// the host declined to start one.
var errDisabled = errors.New("background disabled (reduced motion)")

// session bundles the telemetry shared by every command.
type session struct {
	cfg      *config.Config
	log      *slog.Logger
	perf     *telemetry.PerfCollector
	out      *telemetry.OutputManager
	reporter *telemetry.Reporter
}

func openSession(perfWindow int) (*session, error) {
	cfg := config.Cfg()
	log := slog.Default()

	out, err := telemetry.NewOutputManager(cfg.Telemetry.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := out.WriteConfig(cfg); err != nil {
		log.Warn("config snapshot failed", "error", err)
	}

	perf := telemetry.NewPerfCollector(perfWindow)
	interval := time.Duration(cfg.Telemetry.LogIntervalSec * float64(time.Second))

	return &session{
		cfg:      cfg,
		log:      log,
		perf:     perf,
		out:      out,
		reporter: telemetry.NewReporter(perf, out, log, interval),
	}, nil
}

func (s *session) newBackground() *background.Background {
	return background.New(&s.cfg.Background, background.Options{Logger: s.log, Perf: s.perf})
}

func (s *session) reducedMotion() bool {
	return host.ReducedMotion(&s.cfg.Environment)
}

func (s *session) close(frame uint64) {
	s.reporter.Flush(frame)
	if err := s.out.Close(); err != nil {
		s.log.Warn("closing output failed", "error", err)
	}
}

// flagViewport is the viewport named by --width, --height and --dpr.
func flagViewport() background.Viewport {
	return background.Viewport{Width: width, Height: height, DPR: dpr}
}

func (s *session) headless(surf background.Surface, view background.Viewport) *host.Headless {
	return host.NewHeadless(host.HeadlessOptions{
		Width:         view.Width,
		Height:        view.Height,
		DPR:           view.DPR,
		Surface:       surf,
		ReducedMotion: s.reducedMotion(),
	})
}

// runWindow opens the desktop window and animates until it is closed.
func runWindow(cmd *cobra.Command, args []string) error {
	s, err := openSession(config.Cfg().Telemetry.PerfWindow)
	if err != nil {
		return err
	}

	w := renderer.NewWindow(renderer.WindowOptions{
		Screen:        s.cfg.Screen,
		DPROverride:   s.cfg.Environment.DPROverride,
		ReducedMotion: s.reducedMotion(),
		Perf:          s.perf,
		Logger:        s.log,
	})
	w.Open()
	defer w.Close()

	bg := s.newBackground()
	if !bg.Start(w) {
		s.log.Info("background disabled, showing a static page")
	}
	defer bg.Close()

	hud := ui.NewHUD(s.cfg.HUD.Enabled)
	w.Overlay = func() {
		hud.HandleInput()
		actions := hud.Draw(ui.HUDData{
			FPS:         rl.GetFPS(),
			Counters:    bg.Counters(),
			State:       bg.State(),
			Viewport:    bg.Viewport(),
			LogInterval: s.reporter.Interval(),
		})
		if actions.Reseed {
			bg.Reseed()
		}
		if actions.LogInterval > 0 {
			s.reporter.SetInterval(actions.LogInterval)
		}
	}
	w.OnRefresh = func(now time.Duration) {
		s.reporter.Observe(now, bg.Frames())
	}

	w.Run()
	s.close(bg.Frames())
	return nil
}

// runHeadless animates on a simulated host, logging perf as it goes.
func runHeadless(cmd *cobra.Command, args []string) error {
	s, err := openSession(config.Cfg().Telemetry.PerfWindow)
	if err != nil {
		return err
	}

	h := s.headless(nil, flagViewport())
	bg := s.newBackground()
	if !bg.Start(h) {
		s.close(0)
		return errDisabled
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	s.log.Info("starting headless run", "frames", headlessFrames, "seed", s.cfg.Background.Seed)
	for i := 0; headlessFrames == 0 || i < headlessFrames; i++ {
		if ctx.Err() != nil {
			break
		}
		s.perf.RecordRefresh()
		h.Advance(1)
		s.reporter.Observe(h.Now(), bg.Frames())
	}

	bg.Close()
	s.log.Info("headless run complete", "counters", bg.Counters(), "host_time", h.Now())
	s.close(bg.Frames())
	return nil
}

// runSnapshot animates headlessly and writes the final frame as SVG.
func runSnapshot(cmd *cobra.Command, args []string) error {
	s, err := openSession(config.Cfg().Telemetry.PerfWindow)
	if err != nil {
		return err
	}

	svg, counters, err := s.snapshot(flagViewport(), snapshotFrames)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outFile, svg, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	s.log.Info("snapshot written", "path", outFile, "counters", counters)
	return nil
}

// snapshot animates frames on a headless host, closes the session and
// returns the last frame as SVG.
func (s *session) snapshot(view background.Viewport, frames int) ([]byte, telemetry.FrameCounters, error) {
	rec := surface.NewRecorder()
	h := s.headless(rec, view)
	bg := s.newBackground()
	if !bg.Start(h) {
		s.close(0)
		return nil, telemetry.FrameCounters{}, errDisabled
	}
	h.Advance(max(frames, 1))
	bg.Close()
	s.close(bg.Frames())

	rgb := s.cfg.Screen.BackgroundRGB
	page := background.Color{R: rgb[0], G: rgb[1], B: rgb[2], A: 1}
	var buf bytes.Buffer
	if err := surface.WriteSVG(&buf, rec, bg.Viewport(), page); err != nil {
		return nil, telemetry.FrameCounters{}, fmt.Errorf("rendering snapshot: %w", err)
	}
	return buf.Bytes(), bg.Counters(), nil
}

// runTerm animates in the terminal until the user quits.
func runTerm(cmd *cobra.Command, args []string) error {
	s, err := openSession(config.Cfg().Telemetry.PerfWindow)
	if err != nil {
		return err
	}

	bg := s.newBackground()
	m := tui.NewModel(bg, tui.Options{
		Terminal:      s.cfg.Terminal,
		ReducedMotion: s.reducedMotion(),
		Perf:          s.perf,
		Reporter:      s.reporter,
	})
	err = tui.Run(m)
	s.out.Close()
	return err
}

// runBench times a fixed number of frames and plots their durations.
func runBench(cmd *cobra.Command, args []string) error {
	s, err := openSession(max(benchFrames, 1))
	if err != nil {
		return err
	}

	h := s.headless(nil, flagViewport())
	bg := s.newBackground()
	if !bg.Start(h) {
		s.close(0)
		return errDisabled
	}

	start := time.Now()
	h.Advance(max(benchFrames, 1))
	elapsed := time.Since(start)
	bg.Close()

	durations := s.perf.Durations()
	data := make([]float64, len(durations))
	for i, d := range durations {
		data[i] = float64(d) / float64(time.Microsecond)
	}

	stats := s.perf.Stats()
	caption := fmt.Sprintf("frame time (us), %.0fx%.0f @%gx, %s links", width, height, dpr, s.cfg.Background.LinkMethod)
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	))
	fmt.Println()
	fmt.Printf("frames     %d in %s\n", stats.Frames, elapsed.Round(time.Millisecond))
	fmt.Printf("avg        %s\n", stats.AvgFrameDuration)
	fmt.Printf("p50 / p95  %s / %s\n", stats.P50FrameDuration, stats.P95FrameDuration)
	fmt.Printf("max        %s\n", stats.MaxFrameDuration)
	fmt.Printf("particles  %.0f\n", stats.AvgParticles)
	fmt.Printf("links      %.1f\n", stats.AvgLinks)
	for _, phase := range telemetry.Phases {
		fmt.Printf("  %-9s %5.1f%%\n", phase, stats.PhasePct[phase])
	}

	s.close(bg.Frames())
	return nil
}
