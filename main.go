package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"particlefield/game"
)

var (
	configPath    string
	particles     int
	width         int
	height        int
	reducedMotion bool
	watch         bool
	showHUD       bool
	profileDir    string
	verbose       bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "particlefield",
	Short: "Animated particle backdrop",
	Long: `particlefield opens a window with a drifting, interconnected particle field
over a soft radial gradient, with floating shapes, pulse rings and meteors.

Keys: F1 debug overlay, Space pause, Esc/Q quit.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = game.NewLogger(verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "YAML config file")
	flags.IntVar(&particles, "particles", 0, "particle count (overrides config)")
	flags.IntVar(&width, "width", 0, "initial window width (overrides config)")
	flags.IntVar(&height, "height", 0, "initial window height (overrides config)")
	flags.BoolVar(&reducedMotion, "reduced-motion", false, "settle decorations and hide meteors")
	flags.BoolVar(&watch, "watch", false, "reload the config file when it changes")
	flags.BoolVar(&showHUD, "hud", false, "start with the debug overlay shown")
	flags.StringVar(&profileDir, "profile-dir", "", "capture CPU profiles here on frame drops")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	config, err := game.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("particles") {
		config.Particles = particles
	}
	if cmd.Flags().Changed("width") {
		config.ScreenWidth = width
	}
	if cmd.Flags().Changed("height") {
		config.ScreenHeight = height
	}
	if reducedMotion {
		config.ReducedMotion = true
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	eg, egCtx := errgroup.WithContext(ctx)

	opts := game.Options{
		Logger:   logger,
		Debug:    &game.DebugState{ShowHUD: showHUD},
		Profiler: game.NewProfiler(config.FrameBudget, profileDir, logger),
	}
	defer opts.Profiler.Close()

	if watch {
		if configPath == "" {
			return errors.New("--watch needs --config")
		}
		watcher, err := game.NewConfigWatcher(configPath, logger)
		if err != nil {
			return err
		}
		opts.Reloads = watcher.Updates()
		eg.Go(func() error { return watcher.Run(egCtx) })
	}

	g := game.NewGame(config, opts)

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Particle Field")
	ebiten.SetWindowResizable(true)

	logger.Info("starting",
		zap.Int("particles", config.Particles),
		zap.Int("width", config.ScreenWidth),
		zap.Int("height", config.ScreenHeight))

	runErr := ebiten.RunGame(g)
	cancel()
	if err := eg.Wait(); err != nil {
		logger.Warn("background task failed", zap.Error(err))
	}
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		return fmt.Errorf("game loop: %w", runErr)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
