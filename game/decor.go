package game

import (
	"image/color"
	"math"
	"time"

	"particlefield/motion"
)

// Breakpoints below which decorations are hidden, in pixels of surface width
const (
	shapesMinWidth = 768
	ringsMinWidth  = 1024
)

type decorKind int

const (
	decorDot decorKind = iota
	decorDiamond
	decorBar
	decorRing
)

// Decoration is one ambient shape animated by keyframe tracks. Anchors are
// percentages of the surface; tracks add pixel offsets, scale, rotation and
// opacity on top.
type Decoration struct {
	kind     decorKind
	anchorX  float64
	anchorY  float64
	size     float64 // radius, half-diagonal or length in pixels
	clr      color.RGBA
	alpha    float64 // base alpha when no opacity track is present
	minWidth int
	tracks   []motion.Track
	enter    motion.Preset
}

// State samples the decoration after elapsed time.
func (d *Decoration) State(elapsed time.Duration) DecorState {
	st := DecorState{Scale: 1, Opacity: d.alpha}
	for _, tr := range d.tracks {
		v := tr.Value(elapsed)
		switch tr.Property {
		case motion.TranslateX:
			st.OffsetX = v
		case motion.TranslateY:
			st.OffsetY = v
		case motion.Scale:
			st.Scale = v
		case motion.Rotate:
			st.Rotate = v
		case motion.Opacity:
			st.Opacity = v
		}
	}
	st.Opacity *= d.enter.Value(motion.Opacity, elapsed, 1)
	st.Scale *= d.enter.Value(motion.Scale, elapsed, 1)
	st.OffsetY += d.enter.Value(motion.TranslateY, elapsed, 0)
	return st
}

// DecorState is a sampled decoration
type DecorState struct {
	OffsetX, OffsetY float64
	Scale            float64
	Rotate           float64 // degrees
	Opacity          float64
}

// Decorations holds the floating shapes and pulse rings and their clock
type Decorations struct {
	items   []Decoration
	elapsed time.Duration
}

// NewDecorations builds the ambient decoration set, every loop eased with
// ease (ease-in-out when nil). With reduced motion every track settles
// immediately.
func NewDecorations(primary, secondary color.RGBA, ease motion.Easing, reduced bool) *Decorations {
	light := color.RGBA{R: 96, G: 165, B: 250, A: 0xff} // blue-400

	items := []Decoration{
		{
			kind: decorDot, anchorX: 3, anchorY: 16, size: 6, clr: primary, minWidth: shapesMinWidth,
			tracks: []motion.Track{
				motion.Loop(motion.TranslateY, 4*time.Second, 0, -15, 0),
				motion.Loop(motion.Opacity, 4*time.Second, 0.1, 0.3, 0.1),
			},
			enter: motion.FadeIn(),
		},
		{
			kind: decorDiamond, anchorX: 96, anchorY: 32, size: 8, clr: secondary, alpha: 0.15, minWidth: shapesMinWidth,
			tracks: []motion.Track{
				motion.Loop(motion.TranslateY, 6*time.Second, 0, 12, 0),
				motion.Loop(motion.Rotate, 6*time.Second, 45, 75, 45),
			},
			enter: motion.FadeIn(),
		},
		{
			kind: decorDot, anchorX: 25, anchorY: 72, size: 4, clr: primary, alpha: 0.15, minWidth: shapesMinWidth,
			tracks: []motion.Track{
				motion.Loop(motion.TranslateY, 5*time.Second, 0, -18, 0),
				motion.Loop(motion.Scale, 5*time.Second, 1, 1.3, 1),
			},
			enter: motion.FadeIn(),
		},
		{
			kind: decorBar, anchorX: 66, anchorY: 40, size: 24, clr: light, minWidth: shapesMinWidth,
			tracks: []motion.Track{
				motion.Loop(motion.TranslateY, 7*time.Second, 0, 15, 0),
				motion.Loop(motion.Opacity, 7*time.Second, 0.1, 0.2, 0.1),
			},
			enter: motion.FadeIn(),
		},
		{
			kind: decorRing, anchorX: 50, anchorY: 50, size: 192, clr: primary, minWidth: ringsMinWidth,
			tracks: []motion.Track{
				motion.Loop(motion.Scale, 8*time.Second, 1, 1.1, 1),
				motion.Loop(motion.Opacity, 8*time.Second, 0.1, 0.05, 0.1),
			},
			enter: motion.ScaleIn(),
		},
		{
			kind: decorRing, anchorX: 50, anchorY: 50, size: 144, clr: secondary, minWidth: ringsMinWidth,
			tracks: []motion.Track{
				motion.Loop(motion.Scale, 10*time.Second, 1, 1.2, 1),
				motion.Loop(motion.Opacity, 10*time.Second, 0.08, 0.02, 0.08),
			},
			enter: motion.ScaleIn(),
		},
	}

	if ease != nil {
		for i := range items {
			for j := range items[i].tracks {
				items[i].tracks[j].Easing = ease
			}
		}
	}
	if reduced {
		for i := range items {
			for j := range items[i].tracks {
				items[i].tracks[j] = motion.ReduceTrack(items[i].tracks[j])
			}
			items[i].enter = items[i].enter.Reduced()
		}
	}
	return &Decorations{items: items}
}

// Len returns the number of decorations
func (d *Decorations) Len() int { return len(d.items) }

// Elapsed returns the decoration clock
func (d *Decorations) Elapsed() time.Duration { return d.elapsed }

// Advance moves the clock forward
func (d *Decorations) Advance(dt time.Duration) {
	d.elapsed += dt
}

// Visible returns the decorations shown at the given surface width
func (d *Decorations) Visible(width int) []*Decoration {
	var out []*Decoration
	for i := range d.items {
		if width >= d.items[i].minWidth {
			out = append(out, &d.items[i])
		}
	}
	return out
}

// Draw renders the decorations visible at the surface's width
func (d *Decorations) Draw(s Surface) {
	if s == nil {
		return
	}
	w, h := s.Size()
	vp := NewViewport(float64(w), float64(h))

	for _, item := range d.Visible(w) {
		st := item.State(d.elapsed)
		if st.Opacity <= 0 {
			continue
		}
		x, y := vp.ToPixels(item.anchorX, item.anchorY)
		x += st.OffsetX
		y += st.OffsetY
		clr := tint(item.clr, st.Opacity)
		size := item.size * st.Scale

		switch item.kind {
		case decorDot:
			s.FillCircle(x, y, size, clr)
		case decorDiamond:
			drawDiamond(s, x, y, size, st.Rotate, clr)
		case decorBar:
			s.StrokeLine(x, y-size/2, x, y+size/2, 4, clr)
		case decorRing:
			strokeCircle(s, x, y, size, 1, clr)
		}
	}
}

// drawDiamond outlines a square of half-diagonal r rotated by deg degrees
func drawDiamond(s Surface, cx, cy, r, deg float64, clr color.Color) {
	rad := deg * math.Pi / 180
	// square corners sit at 45 degree offsets from the rotation
	var xs, ys [4]float64
	for i := range xs {
		a := rad + math.Pi/4 + float64(i)*math.Pi/2
		xs[i] = cx + math.Cos(a)*r
		ys[i] = cy + math.Sin(a)*r
	}
	for i := range xs {
		j := (i + 1) % 4
		s.StrokeLine(xs[i], ys[i], xs[j], ys[j], 1, clr)
	}
}
