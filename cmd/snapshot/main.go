package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"particlefield/game"
)

var (
	configPath    string
	sizes         []string
	frames        int
	out           string
	seed          int64
	reducedMotion bool
	verbose       bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render the particle backdrop headless to PNG",
	Long: `snapshot mounts the particle backdrop on an in-memory surface, lets the
fixed-rate loop run the requested number of frames and writes the last frame
as PNG. Several sizes render concurrently, one file each.`,
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
	flags.StringSliceVar(&sizes, "size", []string{"1280x800"}, "surface size WxH, repeatable")
	flags.IntVarP(&frames, "frames", "n", 120, "frames to run before capturing")
	flags.StringVarP(&out, "out", "o", "snapshot.png", "output PNG path")
	flags.Int64Var(&seed, "seed", 0, "random seed (overrides config)")
	flags.BoolVar(&reducedMotion, "reduced-motion", false, "settle decorations and hide meteors")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	config, err := game.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		config.Seed = seed
	}
	if reducedMotion {
		config.ReducedMotion = true
	}
	if frames <= 0 {
		return fmt.Errorf("--frames must be positive, got %d", frames)
	}

	type target struct {
		w, h int
		path string
	}
	targets := make([]target, 0, len(sizes))
	for _, s := range sizes {
		w, h, err := parseSize(s)
		if err != nil {
			return err
		}
		path := out
		if len(sizes) > 1 {
			ext := filepath.Ext(out)
			path = fmt.Sprintf("%s-%dx%d%s", strings.TrimSuffix(out, ext), w, h, ext)
		}
		targets = append(targets, target{w: w, h: h, path: path})
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	eg, egCtx := errgroup.WithContext(ctx)
	for _, t := range targets {
		eg.Go(func() error {
			return render(egCtx, config, t.w, t.h, t.path)
		})
	}
	return eg.Wait()
}

// render mounts a background on a raster surface, waits for the frame count
// and writes the surface out once the loop has stopped.
func render(ctx context.Context, config game.Config, w, h int, path string) error {
	surface := game.NewRasterSurface(w, h)
	done := make(chan struct{})
	target := uint64(frames)

	bg, err := game.Mount(ctx, config,
		func() game.Surface { return surface },
		game.WithLogger(logger.With(zap.String("size", fmt.Sprintf("%dx%d", w, h)))),
		game.WithFrameHook(func(frame uint64, lines int) {
			if frame == target {
				close(done)
			}
		}),
	)
	if err != nil {
		return err
	}

	select {
	case <-done:
	case <-ctx.Done():
		bg.Unmount()
		return ctx.Err()
	}
	bg.Unmount()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := surface.EncodePNG(f); err != nil {
		return err
	}
	logger.Info("snapshot written",
		zap.String("path", path),
		zap.Int("frames", frames),
		zap.Int("lines", bg.Field().Lines()))
	return nil
}

func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q: want WxH", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("size %q must be positive", s)
	}
	return w, h, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
