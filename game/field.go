package game

import (
	"image/color"
	"math"
	"math/rand"
)

// Gradient stop alphas for the ambient tone behind the particles
const (
	gradientCenterAlpha = 0.03
	gradientMidAlpha    = 0.02
)

// FieldConfig holds the particle field settings
type FieldConfig struct {
	Count              int
	ConnectionDistance float64 // pixels
	OpacityDamping     float64
	LineAlpha          float64
	LineWidth          float64
	WrapMargin         float64 // pixels
	Primary            color.RGBA
	Secondary          color.RGBA
}

// Connection is a pair of particles close enough to be joined by a line
type Connection struct {
	A, B     int // particle indices, A < B
	Distance float64
}

// Field is the animated particle backdrop. The particle set is created once
// and only ever repositioned. A Field is owned by a single goroutine.
type Field struct {
	cfg       FieldConfig
	particles []Particle
	viewport  *Viewport
	rng       *rand.Rand

	pairs []Connection
	lines int
}

// NewField generates the particle set. The field draws nothing until it is
// sized with Resize.
func NewField(cfg FieldConfig, rng *rand.Rand) *Field {
	return &Field{
		cfg:       cfg,
		particles: Generate(cfg.Count, rng),
		viewport:  NewViewport(0, 0),
		rng:       rng,
	}
}

// NewFieldWithParticles builds a field around an existing particle set.
func NewFieldWithParticles(cfg FieldConfig, particles []Particle, rng *rand.Rand) *Field {
	cfg.Count = len(particles)
	return &Field{
		cfg:       cfg,
		particles: particles,
		viewport:  NewViewport(0, 0),
		rng:       rng,
	}
}

// Particles returns the live particle slice.
func (f *Field) Particles() []Particle { return f.particles }

// Viewport returns the field's current dimensions.
func (f *Field) Viewport() *Viewport { return f.viewport }

// Lines returns how many connection lines the last Draw produced.
func (f *Field) Lines() int { return f.lines }

// Config returns the active settings.
func (f *Field) Config() FieldConfig { return f.cfg }

// SetStyle replaces the drawing settings. The particle count is fixed for the
// field's lifetime, so cfg.Count is ignored and false is returned when it
// differs from the current count.
func (f *Field) SetStyle(cfg FieldConfig) bool {
	same := cfg.Count == len(f.particles)
	cfg.Count = len(f.particles)
	f.cfg = cfg
	return same
}

// Resize records new surface dimensions. Particles keep their percentage
// coordinates, except that any particle the new height would put outside the
// wrap band is pulled back to its edge. Returns false when nothing changed.
func (f *Field) Resize(width, height int) bool {
	if !f.viewport.Resize(float64(width), float64(height)) {
		return false
	}
	if f.viewport.Empty() {
		return true
	}
	margin := f.cfg.WrapMargin
	_, top := f.viewport.ToPercent(0, -margin)
	_, bottom := f.viewport.ToPercent(0, f.viewport.Height+margin)
	for i := range f.particles {
		f.particles[i].Y = min(max(f.particles[i].Y, top), bottom)
	}
	return true
}

// Update moves every particle upward by its speed. A particle that has passed
// the top edge by more than the wrap margin re-enters just below the bottom
// edge at a new random horizontal position.
func (f *Field) Update() {
	if f.viewport.Empty() {
		return
	}
	margin := f.cfg.WrapMargin
	for i := range f.particles {
		p := &f.particles[i]
		p.Y -= p.Speed
		if _, py := f.viewport.ToPixels(p.X, p.Y); py < -margin {
			_, p.Y = f.viewport.ToPercent(0, f.viewport.Height+margin)
			p.X = f.rng.Float64() * 100
		}
	}
}

// Draw paints the background gradient, the particles and their connection
// lines. It returns the number of lines drawn. A nil surface draws nothing.
func (f *Field) Draw(s Surface) int {
	f.lines = 0
	if s == nil || f.viewport.Empty() {
		return 0
	}

	s.Clear()

	cx, cy := f.viewport.Center()
	s.FillRadialGradient(cx, cy, f.viewport.Extent(), []ColorStop{
		{Offset: 0, Color: tint(f.cfg.Primary, gradientCenterAlpha)},
		{Offset: 0.5, Color: tint(f.cfg.Secondary, gradientMidAlpha)},
		{Offset: 1, Color: color.NRGBA64{}},
	})

	for _, p := range f.particles {
		x, y := f.viewport.ToPixels(p.X, p.Y)
		s.FillCircle(x, y, p.Size, tint(f.cfg.Primary, p.Opacity*f.cfg.OpacityDamping))
	}

	for _, c := range f.Connections() {
		a, b := &f.particles[c.A], &f.particles[c.B]
		x0, y0 := f.viewport.ToPixels(a.X, a.Y)
		x1, y1 := f.viewport.ToPixels(b.X, b.Y)
		s.StrokeLine(x0, y0, x1, y1, f.cfg.LineWidth, tint(f.cfg.Primary, f.LineAlpha(c.Distance)))
		f.lines++
	}
	return f.lines
}

// Frame runs one animation step: Update then Draw.
func (f *Field) Frame(s Surface) int {
	if s == nil {
		return 0
	}
	f.Update()
	return f.Draw(s)
}

// Connections lists every unordered pair of particles whose pixel distance is
// under the connection threshold. Every pair is tested. The returned slice
// is reused by the next call.
func (f *Field) Connections() []Connection {
	f.pairs = f.pairs[:0]
	threshold := f.cfg.ConnectionDistance
	for i := 0; i < len(f.particles); i++ {
		for j := i + 1; j < len(f.particles); j++ {
			dx := (f.particles[i].X - f.particles[j].X) / 100 * f.viewport.Width
			dy := (f.particles[i].Y - f.particles[j].Y) / 100 * f.viewport.Height
			d := math.Sqrt(dx*dx + dy*dy)
			if d < threshold {
				f.pairs = append(f.pairs, Connection{A: i, B: j, Distance: d})
			}
		}
	}
	return f.pairs
}

// LineAlpha is the stroke alpha for two particles d pixels apart; it falls
// linearly to zero at the connection threshold.
func (f *Field) LineAlpha(d float64) float64 {
	if f.cfg.ConnectionDistance <= 0 || d >= f.cfg.ConnectionDistance {
		return 0
	}
	return (1 - d/f.cfg.ConnectionDistance) * f.cfg.LineAlpha
}
