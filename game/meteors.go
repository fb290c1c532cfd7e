package game

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	"particlefield/motion"
)

const (
	meteorTravel     = 500.0 // pixels per cycle
	meteorTail       = 50.0
	meteorTailSteps  = 5
	meteorTop        = -40.0
	meteorFadeStart  = 0.7
	meteorMaxDelay   = 5 * time.Second
	meteorMinCycle   = 5
	meteorMaxCycle   = 10
	meteorLayerFade  = 500 * time.Millisecond
	meteorHeadRadius = 1.0
)

// meteorAngle is the direction of travel, 35 degrees below horizontal to the right
var meteorAngle = 35 * math.Pi / 180

var meteorColor = color.RGBA{R: 100, G: 116, B: 139, A: 0xff} // slate-500

// Meteor is one streak of the shower
type Meteor struct {
	Index    int
	Delay    time.Duration
	Duration time.Duration
}

// At returns the head position and opacity after elapsed time for a surface
// of the given width, spread over count meteors. visible is false before
// the meteor's first start.
func (m Meteor) At(elapsed time.Duration, width float64, count int) (x, y, alpha float64, visible bool) {
	local := elapsed - m.Delay
	if local < 0 || m.Duration <= 0 || count <= 0 {
		return 0, 0, 0, false
	}
	phase := math.Mod(float64(local), float64(m.Duration)) / float64(m.Duration)

	x0 := float64(m.Index) * width / float64(count)
	x = x0 + phase*meteorTravel*math.Cos(meteorAngle)
	y = meteorTop + phase*meteorTravel*math.Sin(meteorAngle)

	alpha = 1
	if phase > meteorFadeStart {
		alpha = 1 - (phase-meteorFadeStart)/(1-meteorFadeStart)
	}
	return x, y, alpha, true
}

// MeteorShower animates a fixed set of meteors on a wall clock
type MeteorShower struct {
	meteors []Meteor
	elapsed time.Duration
	fade    motion.Transition
	hidden  bool
}

// NewMeteorShower creates n meteors with random delays in [0,5)s and whole
// second durations in [5,10)s. Reduced motion hides the shower.
func NewMeteorShower(n int, rng *rand.Rand, reduced bool) *MeteorShower {
	meteors := make([]Meteor, n)
	for i := range meteors {
		meteors[i] = Meteor{
			Index:    i,
			Delay:    time.Duration(rng.Float64() * float64(meteorMaxDelay)),
			Duration: time.Duration(meteorMinCycle+rng.Intn(meteorMaxCycle-meteorMinCycle)) * time.Second,
		}
	}
	return &MeteorShower{
		meteors: meteors,
		fade: motion.Transition{
			Property: motion.Opacity,
			From:     0,
			To:       1,
			Duration: meteorLayerFade,
			Easing:   motion.EaseOut,
		},
		hidden: reduced,
	}
}

// Meteors returns the meteor set
func (m *MeteorShower) Meteors() []Meteor { return m.meteors }

// Advance moves the clock forward
func (m *MeteorShower) Advance(dt time.Duration) {
	m.elapsed += dt
}

// Draw renders every started meteor as a head dot and a fading tail
func (m *MeteorShower) Draw(s Surface) {
	if s == nil || m.hidden || len(m.meteors) == 0 {
		return
	}
	w, _ := s.Size()
	layer := m.fade.Value(m.elapsed)
	if layer <= 0 {
		return
	}

	dx, dy := math.Cos(meteorAngle), math.Sin(meteorAngle)
	step := meteorTail / meteorTailSteps
	for _, mt := range m.meteors {
		x, y, alpha, ok := mt.At(m.elapsed, float64(w), len(m.meteors))
		if !ok || alpha <= 0 {
			continue
		}
		alpha *= layer

		s.FillCircle(x, y, meteorHeadRadius, tint(meteorColor, alpha))
		for i := 0; i < meteorTailSteps; i++ {
			x0, y0 := x-dx*step*float64(i), y-dy*step*float64(i)
			x1, y1 := x0-dx*step, y0-dy*step
			fade := 1 - float64(i)/meteorTailSteps
			s.StrokeLine(x0, y0, x1, y1, 1, tint(meteorColor, alpha*fade))
		}
	}
}
