package engine

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"sync"

	"golang.org/x/image/draw"
)

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// Sprite is an image resource, optionally a horizontal strip of square
// animation frames whose side is the image height.
type Sprite struct {
	resourceBase
	bitmap image.Image
	frames []image.Image

	mu      sync.Mutex
	speed   float64
	cursor  float64
	animate bool
}

func newSprite(file, name string) (*Sprite, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", file, err)
	}
	s := NewSprite(name, img)
	s.file = file
	return s, nil
}

// NewSprite wraps an already decoded image.
func NewSprite(name string, img image.Image) *Sprite {
	s := &Sprite{resourceBase: resourceBase{name: name}, bitmap: img}
	s.frames = sliceFrames(img)
	return s
}

func sliceFrames(img image.Image) []image.Image {
	b := img.Bounds()
	side := b.Dy()
	count := 1
	if side > 0 {
		count = max(b.Dx()/side, 1)
	}

	if count == 1 {
		return []image.Image{img}
	}

	si, ok := img.(subImager)
	frames := make([]image.Image, count)
	for i := range frames {
		x := b.Min.X + i*side
		r := image.Rect(x, b.Min.Y, x+side, b.Min.Y+side)
		if ok {
			frames[i] = si.SubImage(r)
			continue
		}
		frame := image.NewRGBA(image.Rect(0, 0, side, side))
		draw.Draw(frame, frame.Bounds(), img, r.Min, draw.Src)
		frames[i] = frame
	}
	return frames
}

func (s *Sprite) Kind() Kind { return KindSprite }

func (s *Sprite) Bitmap() image.Image { return s.bitmap }

func (s *Sprite) FrameCount() int { return len(s.frames) }

// Frame returns the i-th square frame, wrapping around the frame count.
func (s *Sprite) Frame(i int) image.Image {
	n := len(s.frames)
	return s.frames[((i%n)+n)%n]
}

func (s *Sprite) SetAnimationSpeed(speed float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speed = speed
}

func (s *Sprite) AnimationSpeed() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speed
}

func (s *Sprite) SetAnimateOnUpdate(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.animate = enabled
}

func (s *Sprite) AnimateOnUpdate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.animate
}

// AdvanceAnimation adds the speed to the animation cursor. The cursor is not
// clamped; FrameIndex wraps it.
func (s *Sprite) AdvanceAnimation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor += s.speed
}

func (s *Sprite) Cursor() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// FrameIndex is floor(cursor) modulo the frame count.
func (s *Sprite) FrameIndex() int {
	s.mu.Lock()
	cursor := s.cursor
	s.mu.Unlock()

	n := len(s.frames)
	return ((int(math.Floor(cursor)) % n) + n) % n
}

// Render draws the whole bitmap for still sprites and the current frame for
// animated ones.
func (s *Sprite) Render(surface Surface, x, y, w, h float64) {
	if s.AnimationSpeed() <= 0 {
		surface.DrawImage(s.bitmap, x, y, w, h)
		return
	}
	surface.DrawImage(s.Frame(s.FrameIndex()), x, y, w, h)
}
