package game

import (
	"bytes"
	"image/color"
	"image/png"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRasterFillCircle(t *testing.T) {
	s := NewRasterSurface(64, 64)
	s.FillCircle(32, 32, 10, color.RGBA{R: 255, A: 255})

	img := s.Image()
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(32, 32))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(2, 2))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(32, 45))
}

func TestRasterClipsAtEdges(t *testing.T) {
	s := NewRasterSurface(32, 32)
	s.FillCircle(0, 0, 6, color.RGBA{G: 255, A: 255})
	s.FillCircle(-50, -50, 6, color.RGBA{G: 255, A: 255})
	s.StrokeLine(-10, 16, 100, 16, 2, color.RGBA{B: 255, A: 255})

	img := s.Image()
	assert.Equal(t, uint8(255), img.RGBAAt(1, 1).G)
	assert.Equal(t, uint8(255), img.RGBAAt(31, 16).B)
	assert.Equal(t, uint8(255), img.RGBAAt(0, 16).B)
}

func TestRasterThinLineIsPartial(t *testing.T) {
	s := NewRasterSurface(32, 32)
	s.StrokeLine(0, 16.5, 32, 16.5, 0.3, color.RGBA{R: 255, A: 255})

	a := s.Image().RGBAAt(10, 16).A
	assert.Greater(t, a, uint8(0))
	assert.Less(t, a, uint8(255))

	s.StrokeLine(5, 5, 5, 5, 1, color.White)
	assert.Equal(t, color.RGBA{}, s.Image().RGBAAt(5, 5))
}

func TestRasterRadialGradient(t *testing.T) {
	s := NewRasterSurface(100, 100)
	s.FillRadialGradient(50, 50, 50, []ColorStop{
		{Offset: 0, Color: color.NRGBA64{B: 0xffff, A: 0xffff}},
		{Offset: 1, Color: color.NRGBA64{}},
	})

	img := s.Image()
	center := img.RGBAAt(50, 50).A
	mid := img.RGBAAt(75, 50).A
	assert.Greater(t, center, mid)
	assert.Greater(t, mid, uint8(0))
	assert.Equal(t, uint8(0), img.RGBAAt(0, 0).A)

	s.Clear()
	assert.Equal(t, color.RGBA{}, img.RGBAAt(50, 50))
}

func TestRasterResize(t *testing.T) {
	s := NewRasterSurface(10, 10)
	img := s.Image()

	s.Resize(10, 10)
	assert.Same(t, img, s.Image())

	s.Resize(20, 5)
	w, h := s.Size()
	assert.Equal(t, 20, w)
	assert.Equal(t, 5, h)
}

func TestRasterFieldSnapshot(t *testing.T) {
	s := NewRasterSurface(320, 200)
	f := NewField(testFieldConfig(), rand.New(rand.NewSource(2)))
	w, h := s.Size()
	f.Resize(w, h)
	for i := 0; i < 10; i++ {
		f.Frame(s)
	}

	var buf bytes.Buffer
	require.NoError(t, s.EncodePNG(&buf))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, s.Image().Bounds(), decoded.Bounds())

	painted := 0
	pix := s.Image().Pix
	for i := 3; i < len(pix); i += 4 {
		if pix[i] > 0 {
			painted++
		}
	}
	assert.Greater(t, painted, 0)
}

func TestRasterGradientLayerIsReused(t *testing.T) {
	s := NewRasterSurface(40, 40)
	stops := []ColorStop{
		{Offset: 0, Color: color.NRGBA64{R: 0xffff, A: 0xffff}},
		{Offset: 1, Color: color.NRGBA64{}},
	}

	s.FillRadialGradient(20, 20, 20, stops)
	layer := s.grad
	require.NotNil(t, layer)
	assert.Greater(t, s.Image().RGBAAt(20, 20).R, uint8(200))

	s.Clear()
	s.FillRadialGradient(20, 20, 20, stops)
	assert.Same(t, layer, s.grad)

	stops[0].Color.A = 0x8000
	s.FillRadialGradient(20, 20, 20, stops)
	assert.NotSame(t, layer, s.grad)

	layer = s.grad
	s.Resize(50, 50)
	s.FillRadialGradient(20, 20, 20, stops)
	assert.NotSame(t, layer, s.grad)
	assert.Equal(t, s.Image().Bounds(), s.grad.img.Bounds())
}
