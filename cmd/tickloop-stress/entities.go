package main

import (
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/plus3/tickloop/engine"
)

// mover bounces around the resolution and draws the current frame of a
// shared sprite.
type mover struct {
	sprite       *engine.Sprite
	x, y, dx, dy float64
	size         float64
	bounds       engine.Resolution
}

func newMover(sprite *engine.Sprite, bounds engine.Resolution, rng *rand.Rand) *mover {
	return &mover{
		sprite: sprite,
		x:      rng.Float64() * float64(bounds.Width),
		y:      rng.Float64() * float64(bounds.Height),
		dx:     rng.Float64()*8 - 4,
		dy:     rng.Float64()*8 - 4,
		size:   4 + rng.Float64()*12,
		bounds: bounds,
	}
}

func (m *mover) Update() {
	m.x += m.dx
	m.y += m.dy
	if m.x < 0 || m.x+m.size > float64(m.bounds.Width) {
		m.dx = -m.dx
	}
	if m.y < 0 || m.y+m.size > float64(m.bounds.Height) {
		m.dy = -m.dy
	}
}

func (m *mover) Render(s engine.Surface) {
	m.sprite.Render(s, m.x, m.y, m.size, m.size)
}

// stripSprite builds an animated sprite of frames squares in shifting hues.
func stripSprite(frames, side int) *engine.Sprite {
	img := image.NewRGBA(image.Rect(0, 0, frames*side, side))
	for f := 0; f < frames; f++ {
		c := color.RGBA{
			R: uint8(255 * f / frames),
			G: uint8(255 - 255*f/frames),
			B: 0x80,
			A: 0xff,
		}
		for x := f * side; x < (f+1)*side; x++ {
			for y := 0; y < side; y++ {
				img.SetRGBA(x, y, c)
			}
		}
	}
	return engine.NewSprite("mover", img)
}
