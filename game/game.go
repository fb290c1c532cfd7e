package game

import (
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Game runs the backdrop in an ebiten window. Layout is the resize signal,
// Update advances the animation, Draw paints it.
type Game struct {
	config   Config
	logger   *zap.Logger
	rng      *rand.Rand
	field    *Field
	decor    *Decorations
	meteors  *MeteorShower
	hud      *HUD
	debug    *DebugState
	controls *Controls
	profiler *Profiler
	surface  *EbitenSurface
	reloads  <-chan Config

	paused bool

	// FPS tracking
	fps              float64
	fpsUpdateCounter int
	fpsUpdateTimer   float64

	// Last update time for delta time calculation
	lastUpdateTime time.Time
}

// Options configures optional Game collaborators
type Options struct {
	Logger   *zap.Logger
	Debug    *DebugState
	Keys     KeySource
	Profiler *Profiler
	Reloads  <-chan Config // validated configs from a watcher
	Rand     *rand.Rand
}

// NewGame creates a new game instance
func NewGame(config Config, opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	rng := opts.Rand
	if rng == nil {
		rng = NewRand(config.Seed)
	}
	debug := opts.Debug
	if debug == nil {
		debug = &DebugState{}
	}
	profiler := opts.Profiler
	if profiler == nil {
		profiler = NewProfiler(config.FrameBudget, "", logger)
	}

	fc := config.FieldConfig()
	g := &Game{
		config:         config,
		logger:         logger,
		rng:            rng,
		field:          NewField(fc, rng),
		hud:            NewHUD(config.HUDPreset(), config.ReducedMotion),
		debug:          debug,
		controls:       NewControls(opts.Keys),
		profiler:       profiler,
		reloads:        opts.Reloads,
		fps:            60.0,
		lastUpdateTime: time.Now(),
	}
	g.rebuildLayers()
	g.field.Resize(config.ScreenWidth, config.ScreenHeight)

	logger.Debug("game created",
		zap.Int("particles", fc.Count),
		zap.Float64("connection_distance", fc.ConnectionDistance),
		zap.Bool("reduced_motion", config.ReducedMotion))
	return g
}

// NewRand returns a random source for seed, or a clock-seeded one for 0
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func (g *Game) rebuildLayers() {
	fc := g.config.FieldConfig()
	g.decor = nil
	if g.config.Decorations {
		g.decor = NewDecorations(fc.Primary, fc.Secondary, g.config.Easing(), g.config.ReducedMotion)
	}
	g.meteors = nil
	if g.config.Meteors > 0 {
		g.meteors = NewMeteorShower(g.config.Meteors, g.rng, g.config.ReducedMotion)
	}
}

// Field exposes the particle field
func (g *Game) Field() *Field { return g.field }

// Paused reports whether animation is paused
func (g *Game) Paused() bool { return g.paused }

// Update updates the animation state
func (g *Game) Update() error {
	now := time.Now()
	deltaTime := now.Sub(g.lastUpdateTime).Seconds()
	g.lastUpdateTime = now

	// Clamp delta time to prevent large jumps
	if deltaTime > 0.1 {
		deltaTime = 0.1
	}

	g.drainReloads()

	for _, action := range g.controls.Poll() {
		switch action {
		case ActionToggleHUD:
			if g.debug.Toggle() {
				g.hud.Show()
			}
		case ActionTogglePause:
			g.paused = !g.paused
			g.logger.Debug("pause toggled", zap.Bool("paused", g.paused))
		case ActionQuit:
			return ebiten.Termination
		}
	}

	// Update FPS calculation (update every 0.5 seconds)
	g.fpsUpdateTimer += deltaTime
	g.fpsUpdateCounter++
	if g.fpsUpdateTimer >= 0.5 {
		g.fps = float64(g.fpsUpdateCounter) / g.fpsUpdateTimer
		g.fpsUpdateCounter = 0
		g.fpsUpdateTimer = 0.0
	}

	dt := time.Duration(deltaTime * float64(time.Second))
	g.hud.Advance(dt)
	if g.paused {
		return nil
	}

	g.field.Update()
	if g.decor != nil {
		g.decor.Advance(dt)
	}
	if g.meteors != nil {
		g.meteors.Advance(dt)
	}
	return nil
}

// drainReloads applies the newest pending config, if any
func (g *Game) drainReloads() {
	if g.reloads == nil {
		return
	}
	for {
		select {
		case cfg, ok := <-g.reloads:
			if !ok {
				g.reloads = nil
				return
			}
			g.applyConfig(cfg)
		default:
			return
		}
	}
}

// applyConfig swaps style settings in place. The particle set survives, so a
// changed particle count is reported and ignored.
func (g *Game) applyConfig(cfg Config) {
	fc := cfg.FieldConfig()
	if !g.field.SetStyle(fc) {
		g.logger.Warn("particle count is fixed for the field's lifetime; ignoring change",
			zap.Int("current", len(g.field.Particles())),
			zap.Int("requested", fc.Count))
	}
	cfg.Particles = len(g.field.Particles())
	cfg.ScreenWidth, cfg.ScreenHeight = g.config.ScreenWidth, g.config.ScreenHeight
	g.config = cfg
	g.hud = NewHUD(cfg.HUDPreset(), cfg.ReducedMotion)
	g.rebuildLayers()
	g.logger.Info("config reloaded")
}

// Draw renders the backdrop
func (g *Game) Draw(screen *ebiten.Image) {
	if screen == nil {
		return
	}
	start := time.Now()

	if g.surface == nil {
		g.surface = NewEbitenSurface(screen)
	} else {
		g.surface.Reset(screen)
	}
	g.field.Draw(g.surface)
	if g.decor != nil {
		g.decor.Draw(g.surface)
	}
	if g.meteors != nil {
		g.meteors.Draw(g.surface)
	}

	g.profiler.Observe(time.Since(start))

	if g.debug.ShowHUD {
		g.hud.Draw(screen, g.Stats())
	}
}

// Stats collects the HUD numbers
func (g *Game) Stats() Stats {
	vp := g.field.Viewport()
	return Stats{
		FPS:           g.fps,
		Particles:     len(g.field.Particles()),
		Lines:         g.field.Lines(),
		Width:         int(vp.Width),
		Height:        int(vp.Height),
		FrameAverage:  g.profiler.Average(),
		Drops:         g.profiler.Drops(),
		Paused:        g.paused,
		ReducedMotion: g.config.ReducedMotion,
	}
}

// Layout tracks the window size; every call is a potential resize
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return g.config.ScreenWidth, g.config.ScreenHeight
	}
	if g.field.Resize(outsideWidth, outsideHeight) {
		g.logger.Debug("surface resized", zap.Int("width", outsideWidth), zap.Int("height", outsideHeight))
	}
	return outsideWidth, outsideHeight
}
