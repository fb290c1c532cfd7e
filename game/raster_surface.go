package game

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"slices"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/vector"
)

// kappa places cubic control points for a quarter-circle arc
const kappa = 0.5522847498

// RasterSurface draws into an in-memory RGBA image with the x/image vector
// rasterizer. It needs no GPU or window and backs the snapshot tool.
type RasterSurface struct {
	img     *image.RGBA
	z       *vector.Rasterizer
	maskPix []uint8
	grad    *gradientLayer
}

// NewRasterSurface allocates a transparent width x height surface
func NewRasterSurface(width, height int) *RasterSurface {
	return &RasterSurface{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		z:   vector.NewRasterizer(0, 0),
	}
}

// Image returns the backing image
func (s *RasterSurface) Image() *image.RGBA { return s.img }

func (s *RasterSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize reallocates the backing image when the size changes
func (s *RasterSurface) Resize(width, height int) {
	if w, h := s.Size(); w == width && h == height {
		return
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

func (s *RasterSurface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// FillRadialGradient composites a radial gradient over the surface. The
// gradient is rasterized once into a layer and reused while the surface size
// and the gradient stay the same.
func (s *RasterSurface) FillRadialGradient(cx, cy, radius float64, stops []ColorStop) {
	if len(stops) == 0 || radius <= 0 {
		return
	}
	if !s.grad.matches(s.img.Bounds(), cx, cy, radius, stops) {
		s.grad = newGradientLayer(s.img.Bounds(), cx, cy, radius, stops)
	}
	draw.Draw(s.img, s.img.Bounds(), s.grad.img, image.Point{}, draw.Over)
}

func (s *RasterSurface) FillCircle(cx, cy, r float64, clr color.Color) {
	if r <= 0 {
		return
	}
	bounds := shapeBounds(cx-r, cy-r, cx+r, cy+r)
	s.fill(bounds, clr, func(z *vector.Rasterizer, ox, oy float64) {
		x, y := float32(cx-ox), float32(cy-oy)
		rr, k := float32(r), float32(r*kappa)
		z.MoveTo(x+rr, y)
		z.CubeTo(x+rr, y+k, x+k, y+rr, x, y+rr)
		z.CubeTo(x-k, y+rr, x-rr, y+k, x-rr, y)
		z.CubeTo(x-rr, y-k, x-k, y-rr, x, y-rr)
		z.CubeTo(x+k, y-rr, x+rr, y-k, x+rr, y)
		z.ClosePath()
	})
}

// StrokeLine fills the quad around the segment; sub-pixel widths come out as
// partial coverage.
func (s *RasterSurface) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 || width <= 0 {
		return
	}
	nx, ny := -dy/length*width/2, dx/length*width/2

	bounds := shapeBounds(
		min(x0, x1)-width, min(y0, y1)-width,
		max(x0, x1)+width, max(y0, y1)+width,
	)
	s.fill(bounds, clr, func(z *vector.Rasterizer, ox, oy float64) {
		z.MoveTo(float32(x0+nx-ox), float32(y0+ny-oy))
		z.LineTo(float32(x1+nx-ox), float32(y1+ny-oy))
		z.LineTo(float32(x1-nx-ox), float32(y1-ny-oy))
		z.LineTo(float32(x0-nx-ox), float32(y0-ny-oy))
		z.ClosePath()
	})
}

// EncodePNG writes the surface as PNG
func (s *RasterSurface) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, s.img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// fill rasterizes a path into a mask sized to bounds and composites clr
// through it. The path is built relative to bounds.Min.
func (s *RasterSurface) fill(bounds image.Rectangle, clr color.Color, path func(z *vector.Rasterizer, ox, oy float64)) {
	if !bounds.Overlaps(s.img.Bounds()) {
		return
	}
	w, h := bounds.Dx(), bounds.Dy()

	s.z.Reset(w, h)
	s.z.DrawOp = draw.Src
	path(s.z, float64(bounds.Min.X), float64(bounds.Min.Y))

	// the rasterizer writes the mask contiguously, so its stride must equal w
	if cap(s.maskPix) < w*h {
		s.maskPix = make([]uint8, w*h)
	}
	mask := &image.Alpha{Pix: s.maskPix[:w*h], Stride: w, Rect: image.Rect(0, 0, w, h)}
	s.z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	draw.DrawMask(s.img, bounds, image.NewUniform(clr), image.Point{}, mask, image.Point{}, draw.Over)
}

func shapeBounds(x0, y0, x1, y1 float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(x0))-1, int(math.Floor(y0))-1,
		int(math.Ceil(x1))+1, int(math.Ceil(y1))+1,
	)
}

// gradientLayer is a radial gradient rasterized with rasterx
type gradientLayer struct {
	bounds         image.Rectangle
	cx, cy, radius float64
	stops          []ColorStop
	img            *image.RGBA
}

func newGradientLayer(bounds image.Rectangle, cx, cy, radius float64, stops []ColorStop) *gradientLayer {
	w, h := bounds.Dx(), bounds.Dy()
	img := image.NewRGBA(bounds)

	grad := rasterx.Gradient{
		Points:   [5]float64{cx, cy, cx, cy, radius},
		Matrix:   rasterx.Identity,
		Units:    rasterx.UserSpaceOnUse,
		IsRadial: true,
	}
	grad.Bounds.W = float64(w)
	grad.Bounds.H = float64(h)
	for _, st := range stops {
		grad.Stops = append(grad.Stops, rasterx.GradStop{
			StopColor: color.NRGBA{R: uint8(st.Color.R >> 8), G: uint8(st.Color.G >> 8), B: uint8(st.Color.B >> 8), A: 0xff},
			Offset:    st.Offset,
			Opacity:   float64(st.Color.A) / 0xffff,
		})
	}

	scanner := rasterx.NewScannerGV(w, h, img, bounds)
	filler := rasterx.NewFiller(w, h, scanner)
	filler.SetColor(grad.GetColorFunction(1))
	rasterx.AddRect(0, 0, float64(w), float64(h), 0, filler)
	filler.Draw()

	return &gradientLayer{
		bounds: bounds,
		cx:     cx,
		cy:     cy,
		radius: radius,
		stops:  slices.Clone(stops),
		img:    img,
	}
}

func (g *gradientLayer) matches(bounds image.Rectangle, cx, cy, radius float64, stops []ColorStop) bool {
	return g != nil && g.bounds == bounds &&
		g.cx == cx && g.cy == cy && g.radius == radius &&
		slices.Equal(g.stops, stops)
}
