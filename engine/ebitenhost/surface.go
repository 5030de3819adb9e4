package ebitenhost

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/plus3/tickloop/engine/raster"
	"golang.org/x/image/font"
)

// evictAfter is how many paint passes an uploaded image survives unused.
const evictAfter = 120

type cachedImage struct {
	img      *ebiten.Image
	lastUsed uint64
}

// Surface implements engine.Surface on an ebiten image. Decoded images are
// uploaded to the GPU once and reused while they keep being drawn.
type Surface struct {
	target *ebiten.Image
	sx, sy float64
	pass   uint64
	images map[image.Image]*cachedImage
	faces  map[font.Face]*text.GoXFace
}

func NewSurface() *Surface {
	return &Surface{
		sx:     1,
		sy:     1,
		images: make(map[image.Image]*cachedImage),
		faces:  make(map[font.Face]*text.GoXFace),
	}
}

// begin starts a paint pass on target.
func (s *Surface) begin(target *ebiten.Image) {
	s.target = target
	s.sx, s.sy = 1, 1
	s.pass++
}

// end releases images that have not been drawn for a while.
func (s *Surface) end() {
	for key, cached := range s.images {
		if s.pass-cached.lastUsed > evictAfter {
			cached.img.Deallocate()
			delete(s.images, key)
		}
	}
}

func (s *Surface) Clear(c color.Color) {
	s.target.Fill(c)
	s.sx, s.sy = 1, 1
}

func (s *Surface) Scale(sx, sy float64) {
	s.sx *= sx
	s.sy *= sy
}

func (s *Surface) upload(img image.Image) *ebiten.Image {
	if eimg, ok := img.(*ebiten.Image); ok {
		return eimg
	}
	cached, ok := s.images[img]
	if !ok {
		cached = &cachedImage{img: ebiten.NewImageFromImage(img)}
		s.images[img] = cached
	}
	cached.lastUsed = s.pass
	return cached.img
}

func (s *Surface) DrawImage(img image.Image, x, y, w, h float64) {
	b := img.Bounds()
	if b.Empty() || w == 0 || h == 0 {
		return
	}
	src := s.upload(img)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	op.GeoM.Scale(s.sx, s.sy)
	s.target.DrawImage(src, op)
}

// DrawString draws text with its baseline at y.
func (s *Surface) DrawString(str string, face font.Face, c color.Color, x, y float64) {
	if face == nil {
		face = raster.DefaultFace
	}
	xf, ok := s.faces[face]
	if !ok {
		xf = text.NewGoXFace(face)
		s.faces[face] = xf
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y-xf.Metrics().HAscent)
	op.GeoM.Scale(s.sx, s.sy)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(s.target, str, xf, op)
}

func (s *Surface) Pixel(x, y int) color.Color {
	return s.target.At(x, y)
}

func (s *Surface) Size() (int, int) {
	b := s.target.Bounds()
	return b.Dx(), b.Dy()
}
