package motion

import "math"

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(t float64) float64

// Linear is the identity curve.
func Linear(t float64) float64 { return clamp01(t) }

// EaseIn is cubic-bezier(0.42, 0, 1, 1).
func EaseIn(t float64) float64 { return bezier(0.42, 0, 1, 1, clamp01(t)) }

// EaseOut is cubic-bezier(0, 0, 0.58, 1).
func EaseOut(t float64) float64 { return bezier(0, 0, 0.58, 1, clamp01(t)) }

// EaseInOut is cubic-bezier(0.42, 0, 0.58, 1).
func EaseInOut(t float64) float64 { return bezier(0.42, 0, 0.58, 1, clamp01(t)) }

// EasingByName resolves a curve name as written in config files.
func EasingByName(name string) (Easing, bool) {
	switch name {
	case "linear":
		return Linear, true
	case "easeIn":
		return EaseIn, true
	case "easeOut":
		return EaseOut, true
	case "easeInOut":
		return EaseInOut, true
	}
	return nil, false
}

// bezier solves the x(s) = t for s by Newton iteration with a bisection fallback,
// then returns y(s). Control points P0=(0,0), P3=(1,1).
func bezier(x1, y1, x2, y2, t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}

	sample := func(a1, a2, s float64) float64 {
		u := 1 - s
		return 3*u*u*s*a1 + 3*u*s*s*a2 + s*s*s
	}
	slope := func(a1, a2, s float64) float64 {
		u := 1 - s
		return 3*u*u*a1 + 6*u*s*(a2-a1) + 3*s*s*(1-a2)
	}

	s := t
	for i := 0; i < 8; i++ {
		d := slope(x1, x2, s)
		if math.Abs(d) < 1e-6 {
			break
		}
		x := sample(x1, x2, s) - t
		if math.Abs(x) < 1e-7 {
			return sample(y1, y2, s)
		}
		s -= x / d
	}

	lo, hi := 0.0, 1.0
	s = t
	for i := 0; i < 32; i++ {
		x := sample(x1, x2, s)
		if math.Abs(x-t) < 1e-7 {
			break
		}
		if x < t {
			lo = s
		} else {
			hi = s
		}
		s = (lo + hi) / 2
	}
	return sample(y1, y2, s)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
