package game

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"particlefield/motion"
)

const (
	hudX          = 12
	hudY          = 12
	hudPadding    = 6
	hudLineHeight = 14
	hudCharWidth  = 7
)

var hudFace = text.NewGoXFace(basicfont.Face7x13)

// Stats is what the HUD reports
type Stats struct {
	FPS           float64
	Particles     int
	Lines         int
	Width, Height int
	FrameAverage  time.Duration
	Drops         int
	Paused        bool
	ReducedMotion bool
}

// Lines formats the stats one entry per line
func (s Stats) Lines() []string {
	lines := []string{
		fmt.Sprintf("FPS: %.0f", s.FPS),
		fmt.Sprintf("Particles: %d", s.Particles),
		fmt.Sprintf("Lines: %d", s.Lines),
		fmt.Sprintf("Surface: %dx%d", s.Width, s.Height),
		fmt.Sprintf("Frame: %s (drops %d)", s.FrameAverage.Round(time.Microsecond), s.Drops),
	}
	if s.Paused {
		lines = append(lines, "Paused - Space to resume")
	}
	if s.ReducedMotion {
		lines = append(lines, "Reduced motion")
	}
	return lines
}

// HUD is the debug overlay. It replays its entrance each time it is shown.
type HUD struct {
	enter   motion.Preset
	elapsed time.Duration
}

// NewHUD creates a HUD that enters with the given preset; reduced motion
// skips the animation
func NewHUD(enter motion.Preset, reduced bool) *HUD {
	if reduced {
		enter = enter.Reduced()
	}
	return &HUD{enter: enter}
}

// Show restarts the entrance animation
func (h *HUD) Show() { h.elapsed = 0 }

// Advance moves the entrance clock forward
func (h *HUD) Advance(dt time.Duration) { h.elapsed += dt }

// Offset returns the current entrance offset, scale and opacity
func (h *HUD) Offset() (dx, dy, scale, alpha float64) {
	return h.enter.Value(motion.TranslateX, h.elapsed, 0),
		h.enter.Value(motion.TranslateY, h.elapsed, 0),
		h.enter.Value(motion.Scale, h.elapsed, 1),
		h.enter.Value(motion.Opacity, h.elapsed, 1)
}

// Draw renders the stats panel in the top-left corner
func (h *HUD) Draw(screen *ebiten.Image, stats Stats) {
	lines := stats.Lines()
	widest := 0
	for _, l := range lines {
		widest = max(widest, len(l))
	}

	dx, dy, scale, alpha := h.Offset()
	x := float32(hudX + dx)
	y := float32(hudY + dy)
	w := float32(float64(widest*hudCharWidth+2*hudPadding) * scale)
	ph := float32(float64(len(lines)*hudLineHeight+2*hudPadding) * scale)
	vector.DrawFilledRect(screen, x, y, w, ph, color.RGBA{R: 0, G: 0, B: 0, A: uint8(160 * alpha)}, false)

	op := &text.DrawOptions{}
	op.GeoM.Translate(hudPadding, hudPadding)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(color.RGBA{R: 200, G: 210, B: 230, A: 255})
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.LineSpacing = hudLineHeight
	text.Draw(screen, strings.Join(lines, "\n"), hudFace, op)
}
