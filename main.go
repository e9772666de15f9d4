package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/backdrop/config"
)

var (
	configPath    string
	seed          int64
	logLevel      string
	outputDir     string
	reducedMotion bool

	headlessFrames int
	snapshotFrames int
	benchFrames    int
	width          float64
	height         float64
	dpr            float64
	outFile        string
	linkFlag       string
	logCloser      io.Closer
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "backdrop",
		Short:             "ambient particle background",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				logCloser.Close()
			}
		},
		RunE: runWindow,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "path to config.yaml (empty = use defaults)")
	pf.Int64Var(&seed, "seed", 0, "RNG seed (0 = config value, then time-based)")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&outputDir, "output-dir", "", "directory for perf.csv and a config snapshot")
	pf.BoolVar(&reducedMotion, "reduced-motion", false, "behave as if the host prefers reduced motion")

	headlessCmd := &cobra.Command{
		Use:   "headless",
		Short: "run the background without a display",
		RunE:  runHeadless,
	}
	headlessCmd.Flags().IntVar(&headlessFrames, "frames", 600, "frames to run (0 = until interrupted)")
	viewportFlags(headlessCmd)

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "run headlessly and write the last frame as SVG",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&snapshotFrames, "frames", 120, "frames to run before capturing")
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "backdrop.svg", "output SVG path")
	viewportFlags(snapshotCmd)

	termCmd := &cobra.Command{
		Use:   "term",
		Short: "draw the background in the terminal",
		RunE:  runTerm,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time frames for a viewport and plot the frame times",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 600, "frames to time")
	benchCmd.Flags().StringVar(&linkFlag, "links", "", "link finder override (pairs, grid)")
	viewportFlags(benchCmd)

	rootCmd.AddCommand(headlessCmd, snapshotCmd, termCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func viewportFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&width, "width", 1280, "viewport width in logical units")
	cmd.Flags().Float64Var(&height, "height", 720, "viewport height in logical units")
	cmd.Flags().Float64Var(&dpr, "dpr", 1, "device pixel ratio")
}

// setup loads config, applies flag overrides and installs the default logger.
func setup(cmd *cobra.Command, args []string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("parsing --log-level: %w", err)
	}

	if err := config.Init(configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := config.Cfg()

	if cmd.Flags().Changed("seed") {
		cfg.Background.Seed = seed
	}
	if outputDir != "" {
		cfg.Telemetry.OutputDir = outputDir
	}
	if reducedMotion {
		cfg.Environment.ReducedMotion = true
	}
	if linkFlag != "" {
		cfg.Background.LinkMethod = linkFlag
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	w, err := logWriter(cmd, cfg)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})))
	return nil
}

// logWriter picks the log destination. The terminal host owns stdout, so its
// logs go to a file in the output directory, or nowhere.
func logWriter(cmd *cobra.Command, cfg *config.Config) (io.Writer, error) {
	if cmd.Name() != "term" {
		return os.Stdout, nil
	}
	if cfg.Telemetry.OutputDir == "" {
		return io.Discard, nil
	}
	if err := os.MkdirAll(cfg.Telemetry.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(filepath.Join(cfg.Telemetry.OutputDir, "backdrop.log"))
	if err != nil {
		return nil, fmt.Errorf("creating log file: %w", err)
	}
	logCloser = f
	return f, nil
}
