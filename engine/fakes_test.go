package engine_test

import (
	"image"
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/plus3/tickloop/engine"
	"github.com/plus3/tickloop/engine/audio"
	"github.com/plus3/tickloop/engine/config"
)

type fakeHost struct {
	mu         sync.Mutex
	w, h       int
	title      string
	fullscreen bool
	toggles    int
	centered   int
	icon       image.Image
	pixel      color.Color

	invalidations atomic.Int64
	closed        atomic.Int32
}

func newFakeHost() *fakeHost {
	return &fakeHost{title: "game", pixel: color.RGBA{R: 1, G: 2, B: 3, A: 0xff}}
}

func (h *fakeHost) Invalidate() { h.invalidations.Add(1) }

func (h *fakeHost) Size() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.w, h.h
}

func (h *fakeHost) SetSize(w, hh int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.w, h.h = w, hh
}

func (h *fakeHost) Title() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.title
}

func (h *fakeHost) SetTitle(title string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.title = title
}

func (h *fakeHost) Fullscreen() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.fullscreen
}

func (h *fakeHost) ToggleFullscreen() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fullscreen = !h.fullscreen
	h.toggles++
}

func (h *fakeHost) Centerize() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.centered++
}

func (h *fakeHost) PixelColor(x, y int) color.Color { return h.pixel }

func (h *fakeHost) SetIcon(img image.Image) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.icon = img
}

func (h *fakeHost) Close() { h.closed.Add(1) }

// fakeDevice records opened files and plays.
type fakeDevice struct {
	mu      sync.Mutex
	opened  []string
	streams []string
	plays   map[string]int
	fail    error
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{plays: make(map[string]int)}
}

func (d *fakeDevice) Open(path string) (audio.Clip, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fail != nil {
		return nil, d.fail
	}
	d.opened = append(d.opened, path)
	return &fakeClip{device: d, path: path, volume: 1}, nil
}

func (d *fakeDevice) Stream(path string) (audio.Track, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fail != nil {
		return nil, d.fail
	}
	d.streams = append(d.streams, path)
	return audio.Nop{}.Stream(path)
}

func (d *fakeDevice) playCount(path string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.plays[path]
}

type fakeClip struct {
	device *fakeDevice
	path   string
	volume float64
}

func (c *fakeClip) Play() {
	c.device.mu.Lock()
	defer c.device.mu.Unlock()
	c.device.plays[c.path]++
}

func (c *fakeClip) SetVolume(v float64) { c.volume = v }
func (c *fakeClip) Volume() float64     { return c.volume }

// counter is a tickable that counts its calls.
type counter struct {
	updates atomic.Int64
	renders atomic.Int64
}

func (c *counter) Update()               { c.updates.Add(1) }
func (c *counter) Render(engine.Surface) { c.renders.Add(1) }

// box renders a filled rectangle in engine coordinates.
type box struct {
	rect engine.Rect
	fill color.RGBA
}

func (b *box) Update() {}

func (b *box) Render(s engine.Surface) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, b.fill)
	s.DrawImage(img, b.rect.X, b.rect.Y, b.rect.W, b.rect.H)
}

func testConfig() config.EngineConfig {
	cfg := config.Default().Engine
	cfg.Workspace = "."
	return cfg
}

func newTestEngine(opts ...engine.Option) (*engine.Engine, *fakeHost) {
	e, err := engine.New(testConfig(), opts...)
	if err != nil {
		panic(err)
	}
	host := newFakeHost()
	e.Initialize(host)
	return e, host
}
