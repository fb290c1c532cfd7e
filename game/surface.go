package game

import (
	"image/color"
	"math"
)

// Surface is a 2D drawing target. Implementations are not safe for
// concurrent use; the frame goroutine owns the surface.
type Surface interface {
	Size() (width, height int)
	Clear()
	FillRadialGradient(cx, cy, radius float64, stops []ColorStop)
	FillCircle(cx, cy, r float64, clr color.Color)
	StrokeLine(x0, y0, x1, y1, width float64, clr color.Color)
}

// Resizable is implemented by surfaces that own their backing store.
type Resizable interface {
	Resize(width, height int)
}

// SurfaceFunc acquires a drawing surface, returning nil when none is available.
type SurfaceFunc func() Surface

// ColorStop is one stop of a radial gradient; Offset runs 0 (center) to 1 (radius).
type ColorStop struct {
	Offset float64
	Color  color.NRGBA64
}

// tint returns c with a straight alpha in [0,1].
func tint(c color.RGBA, alpha float64) color.NRGBA64 {
	a := math.Round(clamp01(alpha) * 0xffff)
	return color.NRGBA64{
		R: uint16(c.R) * 0x101,
		G: uint16(c.G) * 0x101,
		B: uint16(c.B) * 0x101,
		A: uint16(a),
	}
}

// Alpha returns the straight alpha of c in [0,1].
func Alpha(c color.Color) float64 {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return float64(n.A) / 0xffff
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

// strokeCircle outlines a circle with line segments.
func strokeCircle(s Surface, cx, cy, r, width float64, clr color.Color) {
	const segments = 48
	px, py := cx+r, cy
	for i := 1; i <= segments; i++ {
		a := float64(i) / segments * 2 * math.Pi
		x, y := cx+math.Cos(a)*r, cy+math.Sin(a)*r
		s.StrokeLine(px, py, x, y, width, clr)
		px, py = x, y
	}
}
