package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFieldConfig() FieldConfig {
	return DefaultConfig().FieldConfig()
}

func TestGenerateRanges(t *testing.T) {
	ps := Generate(500, rand.New(rand.NewSource(1)))

	require.Len(t, ps, 500)
	for i, p := range ps {
		assert.Equal(t, i, p.ID)
		assert.True(t, p.X >= 0 && p.X <= 100, "x %v", p.X)
		assert.True(t, p.Y >= 0 && p.Y <= 100, "y %v", p.Y)
		assert.True(t, p.Size >= 2 && p.Size <= 6, "size %v", p.Size)
		assert.True(t, p.Speed >= 0.5 && p.Speed <= 2, "speed %v", p.Speed)
		assert.True(t, p.Opacity >= 0.3 && p.Opacity <= 0.8, "opacity %v", p.Opacity)
	}
}

func TestGenerateIsSeeded(t *testing.T) {
	a := Generate(10, rand.New(rand.NewSource(7)))
	b := Generate(10, rand.New(rand.NewSource(7)))
	assert.Equal(t, a, b)
}

func TestGenerateNegativeCountIsEmpty(t *testing.T) {
	assert.Empty(t, Generate(-1, rand.New(rand.NewSource(1))))
	assert.Empty(t, Generate(0, rand.New(rand.NewSource(1))))
}

func TestFieldWrapsAtTop(t *testing.T) {
	f := NewFieldWithParticles(testFieldConfig(), []Particle{
		{X: 42, Y: 50, Size: 3, Speed: 0.5, Opacity: 0.5},
	}, rand.New(rand.NewSource(3)))
	f.Resize(800, 600)
	f.Particles()[0].Y = -15.0 / 600 * 100

	f.Update()

	p := f.Particles()[0]
	_, py := f.Viewport().ToPixels(p.X, p.Y)
	assert.InDelta(t, 610, py, 1e-9)
	assert.True(t, p.X >= 0 && p.X <= 100)
}

func TestFieldDoesNotWrapAboveMargin(t *testing.T) {
	// -5px minus 0.5% of 600px = -8px, still inside the margin
	f := NewFieldWithParticles(testFieldConfig(), []Particle{
		{X: 42, Y: -5.0 / 600 * 100, Size: 3, Speed: 0.5, Opacity: 0.5},
	}, rand.New(rand.NewSource(3)))
	f.Resize(800, 600)

	f.Update()

	p := f.Particles()[0]
	_, py := f.Viewport().ToPixels(p.X, p.Y)
	assert.InDelta(t, -8, py, 1e-9)
	assert.Equal(t, 42.0, p.X)
}

func TestFieldInvariantsHoldOverManyFrames(t *testing.T) {
	cfg := testFieldConfig()
	cfg.Count = 80
	f := NewField(cfg, rand.New(rand.NewSource(11)))
	f.Resize(1024, 768)
	s := newRecordingSurface(1024, 768)

	for frame := 0; frame < 2000; frame++ {
		f.Frame(s)
		require.Len(t, f.Particles(), 80)
		for _, p := range f.Particles() {
			_, py := f.Viewport().ToPixels(p.X, p.Y)
			require.True(t, p.X >= 0 && p.X <= 100, "frame %d x %v", frame, p.X)
			require.GreaterOrEqual(t, py, -cfg.WrapMargin-1e-9, "frame %d", frame)
			require.LessOrEqual(t, py, 768+cfg.WrapMargin+1e-9, "frame %d", frame)
		}
	}
}

func TestFieldResizeIsIdempotent(t *testing.T) {
	f := NewField(testFieldConfig(), rand.New(rand.NewSource(5)))
	before := append([]Particle(nil), f.Particles()...)

	assert.True(t, f.Resize(800, 600))
	assert.False(t, f.Resize(800, 600))
	assert.Equal(t, 800.0, f.Viewport().Width)
	assert.Equal(t, 600.0, f.Viewport().Height)
	assert.Equal(t, before, f.Particles())
}

func TestFieldResizeKeepsPercentCoordinates(t *testing.T) {
	f := NewFieldWithParticles(testFieldConfig(), []Particle{{X: 50, Y: 50, Size: 2, Speed: 1, Opacity: 0.5}}, rand.New(rand.NewSource(1)))
	f.Resize(800, 600)
	s := newRecordingSurface(800, 600)
	f.Draw(s)
	require.Len(t, s.circles, 1)
	assert.Equal(t, 400.0, s.circles[0].X)

	f.Resize(1600, 1200)
	f.Draw(s)
	assert.Equal(t, 800.0, s.circles[0].X)
	assert.Equal(t, 600.0, s.circles[0].Y)
	assert.Equal(t, 50.0, f.Particles()[0].X)
}

func TestResizeKeepsParticlesInsideWrapBand(t *testing.T) {
	f := NewFieldWithParticles(testFieldConfig(), []Particle{
		{X: 10, Y: -1, Size: 2, Speed: 1, Opacity: 0.5},
		{X: 20, Y: 50, Size: 2, Speed: 1, Opacity: 0.5},
	}, rand.New(rand.NewSource(1)))
	f.Resize(800, 100)

	// wrap the first particle to just below the bottom edge: 110%
	f.Particles()[0].Y = -30
	f.Update()
	_, py := f.Viewport().ToPixels(0, f.Particles()[0].Y)
	require.InDelta(t, 110, py, 1e-9)

	f.Resize(800, 2000)
	_, py = f.Viewport().ToPixels(0, f.Particles()[0].Y)
	assert.InDelta(t, 2010, py, 1e-9)
	assert.InDelta(t, 49, f.Particles()[1].Y, 1e-9)

	// a particle hovering above the top edge stays inside the band too
	f.Resize(800, 100)
	f.Particles()[0].Y = -10
	f.Resize(800, 2000)
	_, py = f.Viewport().ToPixels(0, f.Particles()[0].Y)
	assert.InDelta(t, -10, py, 1e-9)
}

func TestInvariantsHoldAcrossResizes(t *testing.T) {
	cfg := testFieldConfig()
	f := NewField(cfg, rand.New(rand.NewSource(17)))
	sizes := [][2]int{{320, 100}, {1920, 2400}, {640, 60}, {1280, 800}}

	for frame := 0; frame < 1200; frame++ {
		if frame%50 == 0 {
			sz := sizes[(frame/50)%len(sizes)]
			f.Resize(sz[0], sz[1])
		}
		f.Update()
		h := f.Viewport().Height
		for _, p := range f.Particles() {
			_, py := f.Viewport().ToPixels(p.X, p.Y)
			require.GreaterOrEqual(t, py, -cfg.WrapMargin-1e-9, "frame %d", frame)
			require.LessOrEqual(t, py, h+cfg.WrapMargin+1e-9, "frame %d", frame)
		}
	}
}

func TestConnectionScenario(t *testing.T) {
	cfg := testFieldConfig()
	cfg.ConnectionDistance = 120
	f := NewFieldWithParticles(cfg, []Particle{
		{X: 10, Y: 10, Size: 2, Speed: 1, Opacity: 0.5},
		{X: 12, Y: 12, Size: 2, Speed: 1, Opacity: 0.5},
		{X: 90, Y: 90, Size: 2, Speed: 1, Opacity: 0.5},
	}, rand.New(rand.NewSource(1)))
	f.Resize(800, 600)

	conns := f.Connections()
	require.Len(t, conns, 1)
	assert.Equal(t, 0, conns[0].A)
	assert.Equal(t, 1, conns[0].B)
	assert.InDelta(t, 20, conns[0].Distance, 1e-9)

	s := newRecordingSurface(800, 600)
	assert.Equal(t, 1, f.Draw(s))
	require.Len(t, s.lines, 1)
	assert.Equal(t, lineCall{X0: 80, Y0: 60, X1: 96, Y1: 72, Width: cfg.LineWidth, Alpha: s.lines[0].Alpha}, s.lines[0])
}

func TestEveryPairWithinThresholdGetsExactlyOneLine(t *testing.T) {
	cfg := testFieldConfig()
	cfg.Count = 70
	f := NewField(cfg, rand.New(rand.NewSource(21)))
	f.Resize(900, 700)

	want := 0
	ps := f.Particles()
	for i := range ps {
		for j := range ps {
			if i >= j {
				continue
			}
			dx := (ps[i].X - ps[j].X) * 9
			dy := (ps[i].Y - ps[j].Y) * 7
			if math.Hypot(dx, dy) < cfg.ConnectionDistance {
				want++
			}
		}
	}

	seen := map[[2]int]int{}
	for _, c := range f.Connections() {
		require.Less(t, c.A, c.B)
		seen[[2]int{c.A, c.B}]++
	}
	for pair, n := range seen {
		assert.Equal(t, 1, n, "pair %v", pair)
	}
	assert.Equal(t, want, len(seen))

	s := newRecordingSurface(900, 700)
	assert.Equal(t, want, f.Draw(s))
	assert.Len(t, s.lines, want)
}

func TestLineAlphaFallsWithDistance(t *testing.T) {
	f := NewField(testFieldConfig(), rand.New(rand.NewSource(1)))

	assert.InDelta(t, 0.05, f.LineAlpha(0), 1e-12)
	assert.Equal(t, 0.0, f.LineAlpha(100))
	assert.Equal(t, 0.0, f.LineAlpha(150))

	prev := f.LineAlpha(0)
	for d := 1.0; d < 100; d++ {
		a := f.LineAlpha(d)
		assert.Less(t, a, prev, "d=%v", d)
		prev = a
	}
}

func TestDrawPaintsGradientParticlesAndLines(t *testing.T) {
	cfg := testFieldConfig()
	cfg.Count = 30
	f := NewField(cfg, rand.New(rand.NewSource(9)))
	f.Resize(640, 480)
	s := newRecordingSurface(640, 480)

	lines := f.Draw(s)

	assert.Equal(t, 1, s.clears)
	require.Len(t, s.gradients, 1)
	stops := s.gradients[0]
	require.Len(t, stops, 3)
	assert.InDelta(t, 0.03, Alpha(stops[0].Color), 1e-4)
	assert.InDelta(t, 0.02, Alpha(stops[1].Color), 1e-4)
	assert.Equal(t, 0.0, Alpha(stops[2].Color))
	assert.Equal(t, 0.5, stops[1].Offset)

	require.Len(t, s.circles, 30)
	for i, c := range s.circles {
		p := f.Particles()[i]
		assert.Equal(t, p.Size, c.R)
		assert.InDelta(t, p.Opacity*cfg.OpacityDamping, c.Alpha, 1e-4)
	}
	assert.Equal(t, lines, len(s.lines))
	assert.Equal(t, lines, f.Lines())
	for _, l := range s.lines {
		assert.Equal(t, cfg.LineWidth, l.Width)
		assert.LessOrEqual(t, l.Alpha, cfg.LineAlpha+1e-4)
	}
}

func TestDrawWithoutSurfaceIsNoop(t *testing.T) {
	f := NewField(testFieldConfig(), rand.New(rand.NewSource(1)))
	f.Resize(800, 600)
	before := append([]Particle(nil), f.Particles()...)

	assert.Equal(t, 0, f.Draw(nil))
	assert.Equal(t, 0, f.Frame(nil))
	assert.Equal(t, before, f.Particles())
}

func TestUnsizedFieldDoesNothing(t *testing.T) {
	f := NewField(testFieldConfig(), rand.New(rand.NewSource(1)))
	before := append([]Particle(nil), f.Particles()...)
	s := newRecordingSurface(0, 0)

	f.Frame(s)

	assert.Equal(t, before, f.Particles())
	assert.Equal(t, 0, s.clears)
}

func TestSetStyleKeepsParticleCount(t *testing.T) {
	f := NewField(testFieldConfig(), rand.New(rand.NewSource(1)))

	style := testFieldConfig()
	style.OpacityDamping = 0.6
	assert.True(t, f.SetStyle(style))
	assert.Equal(t, 0.6, f.Config().OpacityDamping)

	style.Count = 5
	assert.False(t, f.SetStyle(style))
	assert.Equal(t, 60, f.Config().Count)
	assert.Len(t, f.Particles(), 60)
}
