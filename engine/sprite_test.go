package engine_test

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/plus3/tickloop/engine"
	"github.com/plus3/tickloop/engine/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// strip builds a frames*side x side image whose i-th frame is gray level i*10.
func strip(frames, side int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, frames*side, side))
	for x := 0; x < frames*side; x++ {
		for y := 0; y < side; y++ {
			g := uint8((x / side) * 10)
			img.SetRGBA(x, y, color.RGBA{R: g, G: g, B: g, A: 0xff})
		}
	}
	return img
}

func TestSpriteFrames(t *testing.T) {
	s := engine.NewSprite("coin", strip(5, 4))
	require.Equal(t, 5, s.FrameCount())

	for i := 0; i < 5; i++ {
		f := s.Frame(i)
		assert.Equal(t, 4, f.Bounds().Dx())
		assert.Equal(t, 4, f.Bounds().Dy())
		r, _, _, _ := f.At(f.Bounds().Min.X, f.Bounds().Min.Y).RGBA()
		assert.Equal(t, uint32(i*10)*0x101, r, "frame %d", i)
	}
	assert.Equal(t, s.Frame(1), s.Frame(6))
	assert.Equal(t, s.Frame(4), s.Frame(-1))

	tall := engine.NewSprite("tall", image.NewRGBA(image.Rect(0, 0, 3, 8)))
	assert.Equal(t, 1, tall.FrameCount(), "narrower than tall is a single frame")
}

// opaque hides SubImage from the wrapped image.
type opaque struct{ image.Image }

func TestSpriteFramesWithoutSubImage(t *testing.T) {
	s := engine.NewSprite("coin", opaque{strip(3, 4)})
	require.Equal(t, 3, s.FrameCount())

	for i := 0; i < 3; i++ {
		f := s.Frame(i)
		assert.Equal(t, image.Rect(0, 0, 4, 4), f.Bounds())
		r, _, _, _ := f.At(3, 3).RGBA()
		assert.Equal(t, uint32(i*10)*0x101, r, "frame %d", i)
	}

	s.SetAnimationSpeed(1)
	s.AdvanceAnimation()
	assert.Equal(t, 1, s.FrameIndex())
}

func TestSpriteFrameIndexWraps(t *testing.T) {
	for _, speed := range []float64{0.25, 0.3, 1, 1.7} {
		s := engine.NewSprite("coin", strip(4, 2))
		s.SetAnimationSpeed(speed)

		for k := 1; k <= 40; k++ {
			s.AdvanceAnimation()
			want := int(math.Floor(s.Cursor())) % 4
			assert.Equal(t, want, s.FrameIndex(), "speed %v after %d advances", speed, k)
			assert.Less(t, s.FrameIndex(), s.FrameCount())
		}
		assert.InDelta(t, 40*speed, s.Cursor(), 1e-9)
	}
}

func TestSpriteAnimatesOnUpdate(t *testing.T) {
	e, _ := newTestEngine()
	s := engine.NewSprite("coin", strip(3, 2))
	s.SetAnimationSpeed(1)
	e.AddResource(s)

	still := engine.NewSprite("still", strip(3, 2))
	still.SetAnimationSpeed(1)
	e.AddResource(still)

	s.SetAnimateOnUpdate(true)
	e.Resources().Animate()
	e.Resources().Animate()

	assert.Equal(t, 2.0, s.Cursor())
	assert.Equal(t, 0.0, still.Cursor())
}

func TestSpriteRender(t *testing.T) {
	s := engine.NewSprite("coin", strip(4, 2))
	surface := raster.New(8, 2)

	// still sprites draw the whole strip
	s.Render(surface, 0, 0, 8, 2)
	assert.Equal(t, color.RGBA{A: 0xff}, surface.Pixel(0, 0))
	assert.Equal(t, color.RGBA{R: 30, G: 30, B: 30, A: 0xff}, surface.Pixel(7, 1))

	// animated sprites draw the current frame over the whole target
	s.SetAnimationSpeed(1)
	s.AdvanceAnimation()
	s.AdvanceAnimation()
	surface.Clear(color.White)
	s.Render(surface, 0, 0, 8, 2)
	assert.Equal(t, color.RGBA{R: 20, G: 20, B: 20, A: 0xff}, surface.Pixel(0, 0))
	assert.Equal(t, color.RGBA{R: 20, G: 20, B: 20, A: 0xff}, surface.Pixel(7, 1))
}
