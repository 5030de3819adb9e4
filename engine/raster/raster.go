// Package raster implements engine.Surface on top of an in-memory RGBA
// image. It backs the terminal host, the stress tool and tests.
package raster

import (
	"image"
	"image/color"
	"math"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DefaultFace is used when DrawString is given a nil face.
var DefaultFace font.Face = basicfont.Face7x13

type Surface struct {
	mu     sync.RWMutex
	img    *image.RGBA
	sx, sy float64
	scaler draw.Scaler
}

func New(w, h int) *Surface {
	return &Surface{
		img:    image.NewRGBA(image.Rect(0, 0, w, h)),
		sx:     1,
		sy:     1,
		scaler: draw.NearestNeighbor,
	}
}

// SetScaler changes the interpolation used by DrawImage.
func (s *Surface) SetScaler(scaler draw.Scaler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scaler = scaler
}

// Resize reallocates the backing image when the size changes.
func (s *Surface) Resize(w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b := s.img.Bounds(); b.Dx() == w && b.Dy() == h {
		return
	}
	s.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

func (s *Surface) Size() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear fills the surface and resets the scale.
func (s *Surface) Clear(c color.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	s.sx, s.sy = 1, 1
}

func (s *Surface) Scale(sx, sy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sx *= sx
	s.sy *= sy
}

func (s *Surface) rect(x, y, w, h float64) image.Rectangle {
	x0 := int(math.Round(x * s.sx))
	y0 := int(math.Round(y * s.sy))
	x1 := int(math.Round((x + w) * s.sx))
	y1 := int(math.Round((y + h) * s.sy))
	return image.Rect(x0, y0, x1, y1)
}

func (s *Surface) DrawImage(img image.Image, x, y, w, h float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dst := s.rect(x, y, w, h)
	if dst.Empty() {
		return
	}
	s.scaler.Scale(s.img, dst, img, img.Bounds(), draw.Over, nil)
}

// DrawString draws text with its baseline at y.
func (s *Surface) DrawString(text string, face font.Face, c color.Color, x, y float64) {
	if face == nil {
		face = DefaultFace
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d := font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(int(math.Round(x*s.sx)), int(math.Round(y*s.sy))),
	}
	d.DrawString(text)
}

func (s *Surface) Pixel(x, y int) color.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.img.RGBAAt(x, y)
}

// Image returns a copy of the current contents.
func (s *Surface) Image() *image.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}

// View calls fn with the backing image while holding the read lock.
func (s *Surface) View(fn func(img *image.RGBA)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.img)
}
