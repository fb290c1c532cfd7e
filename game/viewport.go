package game

// Viewport maps the field's percentage space onto the current surface.
// Dimensions are read on every conversion so a resize takes effect on the
// next frame without touching particle state.
type Viewport struct {
	Width  float64 // Surface width in pixels
	Height float64 // Surface height in pixels
}

// NewViewport creates a viewport of the given pixel size
func NewViewport(width, height float64) *Viewport {
	return &Viewport{Width: width, Height: height}
}

// Resize updates the dimensions and reports whether they changed
func (v *Viewport) Resize(width, height float64) bool {
	if v.Width == width && v.Height == height {
		return false
	}
	v.Width = width
	v.Height = height
	return true
}

// Empty reports whether there is nothing to draw on
func (v *Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// ToPixels converts percentage coordinates to pixel coordinates
func (v *Viewport) ToPixels(px, py float64) (float64, float64) {
	return px / 100 * v.Width, py / 100 * v.Height
}

// ToPercent converts pixel coordinates to percentage coordinates
func (v *Viewport) ToPercent(x, y float64) (float64, float64) {
	var px, py float64
	if v.Width > 0 {
		px = x / v.Width * 100
	}
	if v.Height > 0 {
		py = y / v.Height * 100
	}
	return px, py
}

// Center returns the surface center in pixels
func (v *Viewport) Center() (float64, float64) {
	return v.Width / 2, v.Height / 2
}

// Extent returns half the larger dimension, the radius that reaches the
// middle of the longer edge from the center
func (v *Viewport) Extent() float64 {
	return max(v.Width, v.Height) / 2
}
