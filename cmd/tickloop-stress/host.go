package main

import (
	"image"
	"image/color"
	"sync"
	"sync/atomic"
	"time"

	"github.com/plus3/tickloop/engine"
	"github.com/plus3/tickloop/engine/raster"
)

// headlessHost paints into a raster surface on its own goroutine whenever
// the render loop invalidates it, the way a window host would on its UI
// thread.
type headlessHost struct {
	engine  *engine.Engine
	surface *raster.Surface
	dirty   chan struct{}
	done    chan struct{}
	wg      sync.WaitGroup

	mu      sync.Mutex
	title   string
	samples []time.Duration

	skipped atomic.Int64
	closed  atomic.Bool
}

func newHeadlessHost(e *engine.Engine, w, h int) *headlessHost {
	host := &headlessHost{
		engine:  e,
		surface: raster.New(w, h),
		dirty:   make(chan struct{}, 1),
		done:    make(chan struct{}),
		title:   "tickloop-stress",
	}
	host.wg.Add(1)
	go host.paintLoop()
	return host
}

func (h *headlessHost) paintLoop() {
	defer h.wg.Done()
	for {
		select {
		case <-h.done:
			return
		case <-h.dirty:
			start := time.Now()
			if !h.engine.Paint(h.surface) {
				h.skipped.Add(1)
				continue
			}
			elapsed := time.Since(start)
			h.mu.Lock()
			h.samples = append(h.samples, elapsed)
			h.mu.Unlock()
		}
	}
}

// paintSamples returns the durations of completed paint passes.
func (h *headlessHost) paintSamples() []time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]time.Duration(nil), h.samples...)
}

func (h *headlessHost) Invalidate() {
	select {
	case h.dirty <- struct{}{}:
	default:
	}
}

func (h *headlessHost) Size() (int, int)  { return h.surface.Size() }
func (h *headlessHost) SetSize(w, hh int) { h.surface.Resize(w, hh) }

func (h *headlessHost) Title() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.title
}

func (h *headlessHost) SetTitle(title string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.title = title
}

func (h *headlessHost) Fullscreen() bool                { return false }
func (h *headlessHost) ToggleFullscreen()               {}
func (h *headlessHost) Centerize()                      {}
func (h *headlessHost) PixelColor(x, y int) color.Color { return h.surface.Pixel(x, y) }
func (h *headlessHost) SetIcon(image.Image)             {}

func (h *headlessHost) Close() {
	if h.closed.CompareAndSwap(false, true) {
		close(h.done)
		h.wg.Wait()
	}
}
