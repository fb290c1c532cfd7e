// Package motion describes enter/exit transitions and looping keyframe
// animations as plain data, independent of the layer that draws them.
package motion

import (
	"math"
	"time"
)

// Property names the visual attribute a transition drives.
type Property string

const (
	Opacity    Property = "opacity"
	TranslateX Property = "x"
	TranslateY Property = "y"
	Scale      Property = "scale"
	Rotate     Property = "rotate"
)

// ReducedDuration is the duration every transition collapses to when the
// viewer asked for reduced motion.
const ReducedDuration = 10 * time.Millisecond

// Infinite repeats a track forever.
const Infinite = -1

// Transition animates one property from one value to another.
type Transition struct {
	Property Property
	From     float64
	To       float64
	Duration time.Duration
	Delay    time.Duration
	Easing   Easing
}

// Value returns the property value after elapsed time.
func (t Transition) Value(elapsed time.Duration) float64 {
	elapsed -= t.Delay
	if elapsed <= 0 {
		return t.From
	}
	if t.Duration <= 0 || elapsed >= t.Duration {
		return t.To
	}
	ease := t.Easing
	if ease == nil {
		ease = Linear
	}
	p := ease(float64(elapsed) / float64(t.Duration))
	return t.From + (t.To-t.From)*p
}

// Done reports whether the transition has settled.
func (t Transition) Done(elapsed time.Duration) bool {
	return elapsed >= t.Delay+t.Duration
}

// Track is a keyframe animation: values are spaced evenly over Duration and
// each segment is eased independently.
type Track struct {
	Property  Property
	Keyframes []float64
	Duration  time.Duration
	Easing    Easing
	// Repeat is the number of extra cycles after the first; Infinite loops.
	Repeat int
}

// Value returns the track value after elapsed time.
func (tr Track) Value(elapsed time.Duration) float64 {
	n := len(tr.Keyframes)
	switch {
	case n == 0:
		return 0
	case n == 1 || elapsed <= 0:
		return tr.Keyframes[0]
	case tr.Duration <= 0:
		return tr.Keyframes[n-1]
	}

	if tr.Repeat >= 0 && elapsed >= tr.Duration*time.Duration(tr.Repeat+1) {
		return tr.Keyframes[n-1]
	}

	cycle := math.Mod(float64(elapsed), float64(tr.Duration)) / float64(tr.Duration)
	pos := cycle * float64(n-1)
	i := int(pos)
	if i >= n-1 {
		return tr.Keyframes[n-1]
	}
	ease := tr.Easing
	if ease == nil {
		ease = Linear
	}
	local := ease(pos - float64(i))
	return tr.Keyframes[i] + (tr.Keyframes[i+1]-tr.Keyframes[i])*local
}

// Loop builds an infinitely repeating ease-in-out track, the shape every
// ambient decoration uses.
func Loop(p Property, d time.Duration, keyframes ...float64) Track {
	return Track{
		Property:  p,
		Keyframes: keyframes,
		Duration:  d,
		Easing:    EaseInOut,
		Repeat:    Infinite,
	}
}

// Reduce returns the reduced-motion form of t.
func Reduce(t Transition) Transition {
	t.Duration = ReducedDuration
	t.Delay = 0
	return t
}

// ReduceTrack returns the reduced-motion form of tr: one short cycle that
// settles on the final keyframe.
func ReduceTrack(tr Track) Track {
	tr.Duration = ReducedDuration
	tr.Repeat = 0
	return tr
}
