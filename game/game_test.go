package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"particlefield/motion"
)

// fakeKeys reports the keys queued for the next Poll
type fakeKeys struct {
	pressed map[ebiten.Key]bool
}

func (k *fakeKeys) IsKeyJustPressed(key ebiten.Key) bool { return k.pressed[key] }

func (k *fakeKeys) press(keys ...ebiten.Key) {
	k.pressed = map[ebiten.Key]bool{}
	for _, key := range keys {
		k.pressed[key] = true
	}
}

func newTestGame(t *testing.T, reloads <-chan Config) (*Game, *fakeKeys) {
	t.Helper()
	keys := &fakeKeys{}
	g := NewGame(DefaultConfig(), Options{
		Keys:    keys,
		Rand:    rand.New(rand.NewSource(1)),
		Reloads: reloads,
	})
	return g, keys
}

func TestControlsPoll(t *testing.T) {
	keys := &fakeKeys{}
	c := NewControls(keys)

	assert.Empty(t, c.Poll())

	keys.press(ebiten.KeyQ, ebiten.KeyF1, ebiten.KeyA)
	assert.Equal(t, []Action{ActionToggleHUD, ActionQuit}, c.Poll())

	keys.press(ebiten.KeySpace)
	assert.Equal(t, []Action{ActionTogglePause}, c.Poll())
}

func TestGameUpdateMovesParticles(t *testing.T) {
	g, _ := newTestGame(t, nil)
	before := append([]Particle(nil), g.Field().Particles()...)

	require.NoError(t, g.Update())

	moved := 0
	for i, p := range g.Field().Particles() {
		if p.Y != before[i].Y {
			moved++
		}
	}
	assert.Equal(t, len(before), moved)
}

func TestGamePauseFreezesField(t *testing.T) {
	g, keys := newTestGame(t, nil)

	keys.press(ebiten.KeySpace)
	require.NoError(t, g.Update())
	assert.True(t, g.Paused())

	keys.press()
	before := append([]Particle(nil), g.Field().Particles()...)
	require.NoError(t, g.Update())
	assert.Equal(t, before, g.Field().Particles())

	keys.press(ebiten.KeySpace)
	require.NoError(t, g.Update())
	assert.False(t, g.Paused())
	assert.False(t, g.Stats().Paused)
}

func TestGameToggleHUDAndQuit(t *testing.T) {
	g, keys := newTestGame(t, nil)

	keys.press(ebiten.KeyF1)
	require.NoError(t, g.Update())
	assert.True(t, g.debug.ShowHUD)

	keys.press(ebiten.KeyEscape)
	assert.ErrorIs(t, g.Update(), ebiten.Termination)
}

func TestGameLayoutResizesField(t *testing.T) {
	g, _ := newTestGame(t, nil)

	w, h := g.Layout(0, 0)
	assert.Equal(t, 1280, w)
	assert.Equal(t, 800, h)

	w, h = g.Layout(1024, 768)
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)
	stats := g.Stats()
	assert.Equal(t, 1024, stats.Width)
	assert.Equal(t, 768, stats.Height)
	assert.Equal(t, 60, stats.Particles)
}

func TestGameAppliesReloadedConfig(t *testing.T) {
	reloads := make(chan Config, 1)
	g, _ := newTestGame(t, reloads)

	cfg := DefaultConfig()
	cfg.OpacityDamping = 0.5
	cfg.Particles = 10
	cfg.Meteors = 0
	reloads <- cfg
	require.NoError(t, g.Update())

	assert.Equal(t, 0.5, g.Field().Config().OpacityDamping)
	assert.Len(t, g.Field().Particles(), 60)
	assert.Nil(t, g.meteors)

	close(reloads)
	require.NoError(t, g.Update())
	assert.Nil(t, g.reloads)
}

func TestStatsLines(t *testing.T) {
	s := Stats{FPS: 59.6, Particles: 60, Lines: 12, Width: 800, Height: 600, FrameAverage: 1500 * time.Microsecond, Drops: 2}
	assert.Equal(t, []string{
		"FPS: 60",
		"Particles: 60",
		"Lines: 12",
		"Surface: 800x600",
		"Frame: 1.5ms (drops 2)",
	}, s.Lines())

	s.Paused = true
	s.ReducedMotion = true
	lines := s.Lines()
	assert.Equal(t, "Paused - Space to resume", lines[5])
	assert.Equal(t, "Reduced motion", lines[6])
}

func TestHUDSlidesIn(t *testing.T) {
	h := NewHUD(motion.SlideInLeft(), false)
	dx, dy, scale, alpha := h.Offset()
	assert.Equal(t, -50.0, dx)
	assert.Equal(t, 0.0, dy)
	assert.Equal(t, 1.0, scale)
	assert.Equal(t, 0.0, alpha)

	h.Advance(time.Second)
	dx, _, _, alpha = h.Offset()
	assert.Equal(t, 0.0, dx)
	assert.Equal(t, 1.0, alpha)

	h.Show()
	dx, _, _, _ = h.Offset()
	assert.Equal(t, -50.0, dx)

	reduced := NewHUD(motion.SlideInLeft(), true)
	reduced.Advance(20 * time.Millisecond)
	dx, _, _, alpha = reduced.Offset()
	assert.Equal(t, 0.0, dx)
	assert.Equal(t, 1.0, alpha)
}

func TestHUDEntranceFollowsConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HUDEnter = "slideInRight"
	dx, _, _, _ := NewHUD(cfg.HUDPreset(), false).Offset()
	assert.Equal(t, 50.0, dx)

	cfg.HUDEnter = "scaleIn"
	dx, _, scale, _ := NewHUD(cfg.HUDPreset(), false).Offset()
	assert.Equal(t, 0.0, dx)
	assert.Equal(t, 0.8, scale)

	cfg.HUDEnter = "fadeIn"
	_, dy, _, _ := NewHUD(cfg.HUDPreset(), false).Offset()
	assert.Equal(t, 20.0, dy)
}

func TestDebugToggle(t *testing.T) {
	d := &DebugState{}
	assert.True(t, d.Toggle())
	assert.False(t, d.Toggle())
}
