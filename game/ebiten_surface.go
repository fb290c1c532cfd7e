package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// gradientSegments is the number of slices in the gradient triangle fan
const gradientSegments = 64

// whiteSubImage is a single white pixel used as the source for solid
// triangles; created on first use so importing the package has no side effects
var whiteSubImage *ebiten.Image

func whitePixel() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// EbitenSurface draws onto an ebiten image with the vector package
type EbitenSurface struct {
	img *ebiten.Image

	vertices []ebiten.Vertex
	indices  []uint16
}

// NewEbitenSurface wraps img
func NewEbitenSurface(img *ebiten.Image) *EbitenSurface {
	return &EbitenSurface{img: img}
}

// Reset points the surface at a new target image, keeping scratch buffers
func (s *EbitenSurface) Reset(img *ebiten.Image) {
	s.img = img
}

func (s *EbitenSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *EbitenSurface) Clear() {
	s.img.Clear()
}

func (s *EbitenSurface) FillCircle(cx, cy, r float64, clr color.Color) {
	vector.DrawFilledCircle(s.img, float32(cx), float32(cy), float32(r), clr, true)
}

func (s *EbitenSurface) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	vector.StrokeLine(s.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), clr, true)
}

// FillRadialGradient draws concentric rings, one per stop, as a triangle
// fan. Vertex colors interpolate linearly between rings, which matches a
// piecewise-linear radial gradient exactly along every spoke.
func (s *EbitenSurface) FillRadialGradient(cx, cy, radius float64, stops []ColorStop) {
	if len(stops) < 2 || radius <= 0 {
		return
	}

	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]

	for _, stop := range stops {
		r := radius * stop.Offset
		cr, cg, cb, ca := straight(stop.Color)
		for i := 0; i <= gradientSegments; i++ {
			a := float64(i) / gradientSegments * 2 * math.Pi
			s.vertices = append(s.vertices, ebiten.Vertex{
				DstX:   float32(cx + math.Cos(a)*r),
				DstY:   float32(cy + math.Sin(a)*r),
				SrcX:   1,
				SrcY:   1,
				ColorR: cr,
				ColorG: cg,
				ColorB: cb,
				ColorA: ca,
			})
		}
	}

	ring := uint16(gradientSegments + 1)
	for k := uint16(0); k < uint16(len(stops)-1); k++ {
		for i := uint16(0); i < gradientSegments; i++ {
			a := k*ring + i
			b := a + 1
			c := (k+1)*ring + i
			d := c + 1
			s.indices = append(s.indices, a, c, b, b, c, d)
		}
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.ColorScaleMode = ebiten.ColorScaleModeStraightAlpha
	s.img.DrawTriangles(s.vertices, s.indices, whitePixel(), op)
}

func straight(c color.NRGBA64) (r, g, b, a float32) {
	return float32(c.R) / 0xffff, float32(c.G) / 0xffff, float32(c.B) / 0xffff, float32(c.A) / 0xffff
}
