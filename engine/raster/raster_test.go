package raster_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/plus3/tickloop/engine"
	"github.com/plus3/tickloop/engine/raster"
	"github.com/stretchr/testify/assert"
)

var _ engine.Surface = (*raster.Surface)(nil)

var (
	red  = color.RGBA{R: 0xff, A: 0xff}
	blue = color.RGBA{B: 0xff, A: 0xff}
)

func solid(c color.RGBA, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestClearAndPixel(t *testing.T) {
	s := raster.New(8, 4)
	w, h := s.Size()
	assert.Equal(t, 8, w)
	assert.Equal(t, 4, h)

	s.Clear(red)
	assert.Equal(t, red, s.Pixel(0, 0))
	assert.Equal(t, red, s.Pixel(7, 3))
}

func TestDrawImageHonoursScale(t *testing.T) {
	s := raster.New(20, 20)
	s.Clear(red)
	s.Scale(2, 2)

	s.DrawImage(solid(blue, 1, 1), 1, 1, 2, 2)

	assert.Equal(t, blue, s.Pixel(2, 2))
	assert.Equal(t, blue, s.Pixel(5, 5))
	assert.Equal(t, red, s.Pixel(6, 6))
	assert.Equal(t, red, s.Pixel(1, 1))
}

func TestClearResetsScale(t *testing.T) {
	s := raster.New(10, 10)
	s.Scale(5, 5)
	s.Clear(red)

	s.DrawImage(solid(blue, 1, 1), 0, 0, 1, 1)
	assert.Equal(t, blue, s.Pixel(0, 0))
	assert.Equal(t, red, s.Pixel(1, 1))
}

func TestDrawString(t *testing.T) {
	s := raster.New(64, 20)
	s.Clear(color.Black)
	s.DrawString("HI", nil, color.White, 2, 14)

	lit := 0
	img := s.Image()
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 {
			lit++
		}
	}
	assert.Greater(t, lit, 0)
}

func TestResize(t *testing.T) {
	s := raster.New(4, 4)
	s.Resize(6, 3)
	w, h := s.Size()
	assert.Equal(t, 6, w)
	assert.Equal(t, 3, h)
}
