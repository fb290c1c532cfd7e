package game

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"particlefield/loop"
)

// FrameHook is called on the loop goroutine after every frame
type FrameHook func(frame uint64, lines int)

// Background is a mounted particle backdrop driven by the fixed-rate loop.
// Frames and resizes run on the loop goroutine, so the field is never shared.
type Background struct {
	field   *Field
	decor   *Decorations
	meteors *MeteorShower
	surface Surface
	loop    *loop.Loop
	logger  *zap.Logger
	hook    FrameHook

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	mounted bool
	frame   uint64
}

type mountOptions struct {
	logger *zap.Logger
	rng    *rand.Rand
	hook   FrameHook
}

// MountOption configures Mount
type MountOption func(*mountOptions)

func WithLogger(logger *zap.Logger) MountOption {
	return func(o *mountOptions) { o.logger = logger }
}

func WithRand(rng *rand.Rand) MountOption {
	return func(o *mountOptions) { o.rng = rng }
}

func WithFrameHook(hook FrameHook) MountOption {
	return func(o *mountOptions) { o.hook = hook }
}

// Mount creates the field and starts animating it on the surface returned
// by acquire. An invalid cfg is rejected. When no surface is available the
// background stays idle: nothing is drawn and no error is returned.
func Mount(ctx context.Context, cfg Config, acquire SurfaceFunc, opts ...MountOption) (*Background, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	o := mountOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.rng == nil {
		o.rng = NewRand(cfg.Seed)
	}

	fc := cfg.FieldConfig()
	b := &Background{
		field:   NewField(fc, o.rng),
		logger:  o.logger,
		hook:    o.hook,
		mounted: true,
	}

	var surface Surface
	if acquire != nil {
		surface = acquire()
	}
	if surface == nil {
		b.logger.Debug("no drawing surface; background idle")
		return b, nil
	}
	b.surface = surface

	if cfg.Decorations {
		b.decor = NewDecorations(fc.Primary, fc.Secondary, cfg.Easing(), cfg.ReducedMotion)
	}
	if cfg.Meteors > 0 {
		b.meteors = NewMeteorShower(cfg.Meteors, o.rng, cfg.ReducedMotion)
	}

	w, h := surface.Size()
	b.field.Resize(w, h)

	b.ctx, b.cancel = context.WithCancel(ctx)
	b.loop = loop.New(cfg.FrameInterval(), b.tick)
	if err := b.loop.Start(b.ctx); err != nil {
		b.logger.Warn("failed to start render loop", zap.Error(err))
	}
	b.logger.Debug("background mounted",
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Int("particles", fc.Count),
		zap.Duration("interval", b.loop.Interval()))
	return b, nil
}

// tick runs one frame on the loop goroutine
func (b *Background) tick(time.Time) {
	dt := b.loop.Interval()
	lines := b.field.Frame(b.surface)
	if b.decor != nil {
		b.decor.Advance(dt)
		b.decor.Draw(b.surface)
	}
	if b.meteors != nil {
		b.meteors.Advance(dt)
		b.meteors.Draw(b.surface)
	}
	b.frame++
	if b.hook != nil {
		b.hook(b.frame, lines)
	}
}

// Idle reports whether the background mounted without a surface
func (b *Background) Idle() bool { return b.loop == nil }

// Field returns the particle field. Only touch it after Unmount or from a
// frame hook.
func (b *Background) Field() *Field { return b.field }

// Surface returns the drawing surface, nil when idle.
func (b *Background) Surface() Surface { return b.surface }

// Resize queues a surface resize onto the loop goroutine. Resizable surfaces
// are resized along with the field. No-op once unmounted or when idle.
func (b *Background) Resize(width, height int) {
	b.mu.Lock()
	mounted := b.mounted
	b.mu.Unlock()
	if !mounted || b.loop == nil {
		return
	}

	err := b.loop.Post(b.ctx, func() {
		if r, ok := b.surface.(Resizable); ok {
			r.Resize(width, height)
		}
		if b.field.Resize(width, height) {
			b.logger.Debug("surface resized", zap.Int("width", width), zap.Int("height", height))
		}
	})
	if err != nil {
		b.logger.Debug("resize dropped", zap.Error(err))
	}
}

// Unmount stops the loop and waits for it. No frame runs after Unmount
// returns. Safe to call on an idle background and more than once.
func (b *Background) Unmount() {
	b.mu.Lock()
	if !b.mounted {
		b.mu.Unlock()
		return
	}
	b.mounted = false
	b.mu.Unlock()

	if b.loop != nil {
		b.loop.Stop()
	}
	if b.cancel != nil {
		b.cancel()
	}
	b.logger.Debug("background unmounted", zap.Uint64("frames", b.frame))
}
