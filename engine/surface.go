package engine

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
)

// Surface is the drawing target handed to Tickable.Render. Coordinates passed
// to the drawing calls are multiplied by the current scale.
type Surface interface {
	// Clear fills the whole surface and resets the scale to 1.
	Clear(c color.Color)
	// Scale multiplies the current scale.
	Scale(sx, sy float64)
	DrawImage(img image.Image, x, y, w, h float64)
	DrawString(text string, face font.Face, c color.Color, x, y float64)
	// Pixel reads back an already drawn pixel in unscaled surface coordinates.
	Pixel(x, y int) color.Color
	Size() (w, h int)
}

// Host is the native window the engine runs inside. Hosts deliver paint
// requests through Engine.Paint, input edges through Engine.KeyDown and
// friends, and close requests through Engine.RequestClose.
type Host interface {
	// Invalidate asks the host to run a paint pass soon.
	Invalidate()
	Size() (w, h int)
	SetSize(w, h int)
	Title() string
	SetTitle(title string)
	Fullscreen() bool
	ToggleFullscreen()
	Centerize()
	// PixelColor samples the presented image at window-local coordinates.
	PixelColor(x, y int) color.Color
	SetIcon(img image.Image)
	// Close tears the window down once the loops have exited.
	Close()
}

type Resolution struct {
	Width, Height int
}

// Rect is a floating point rectangle.
type Rect struct {
	X, Y, W, H float64
}
