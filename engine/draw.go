package engine

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
)

// MixColor averages two colors channel by channel. The result is opaque.
func MixColor(a, b color.Color) color.RGBA {
	ca := color.RGBAModel.Convert(a).(color.RGBA)
	cb := color.RGBAModel.Convert(b).(color.RGBA)
	return color.RGBA{
		R: uint8((int(ca.R) + int(cb.R)) / 2),
		G: uint8((int(ca.G) + int(cb.G)) / 2),
		B: uint8((int(ca.B) + int(cb.B)) / 2),
		A: 0xff,
	}
}

// GrayShade returns the gray with the mean intensity of c.
func GrayShade(c color.Color) color.RGBA {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	shade := uint8((int(rgba.R) + int(rgba.G) + int(rgba.B)) / 3)
	return color.RGBA{R: shade, G: shade, B: shade, A: 0xff}
}

// DrawCenteredString draws text centered on (x, y).
func DrawCenteredString(s Surface, text string, face font.Face, c color.Color, x, y float64) {
	width := font.MeasureString(face, text).Ceil()
	m := face.Metrics()
	height := (m.Ascent + m.Descent).Ceil()
	// DrawString positions the baseline
	s.DrawString(text, face, c, x-float64(width)/2, y-float64(height)/2+float64(m.Ascent.Ceil()))
}

// PixelSource reads back presented pixels; Engine implements it.
type PixelSource interface {
	PixelColor(x, y int) color.Color
}

// BlurRect samples src inside r, mixes every pixel with its neighbours up to
// intensity pixels away, and draws the result over r.
func BlurRect(s Surface, src PixelSource, bounds Resolution, intensity int, r image.Rectangle) {
	if r.Empty() {
		return
	}

	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	for x := r.Min.X; x < r.Max.X; x++ {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			c := color.RGBAModel.Convert(src.PixelColor(x, y)).(color.RGBA)
			for i := 0; i < intensity; i++ {
				if x-i >= 0 {
					c = MixColor(c, src.PixelColor(x-i, y))
				}
				if x+i < bounds.Width {
					c = MixColor(c, src.PixelColor(x+i, y))
				}
				if y-i >= 0 {
					c = MixColor(c, src.PixelColor(x, y-i))
				}
				if y+i < bounds.Height {
					c = MixColor(c, src.PixelColor(x, y+i))
				}
			}
			out.SetRGBA(x-r.Min.X, y-r.Min.Y, c)
		}
	}
	s.DrawImage(out, float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
}
