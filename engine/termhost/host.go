// Package termhost runs an engine inside a terminal. The engine's output is
// rendered to an in-memory raster two pixels per cell, using the upper half
// block with the top pixel as foreground and the bottom pixel as background.
//
// Terminals report key presses and repeats but no releases, so a key is
// considered released once no press or repeat has arrived for KeyHold.
package termhost

import (
	"context"
	"image"
	"image/color"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/tickloop/engine"
	"github.com/plus3/tickloop/engine/config"
	"github.com/plus3/tickloop/engine/raster"
	"go.uber.org/zap"
)

// DefaultKeyHold covers the usual initial auto-repeat delay of terminals.
const DefaultKeyHold = 550 * time.Millisecond

const halfBlock = '▀'

// keyHold is the pending release of a held key. id tells a release that
// fired before a later press apart from the current one.
type keyHold struct {
	timer *time.Timer
	id    uint64
}

type Host struct {
	// KeyHold is how long a key stays down after its last press or repeat.
	KeyHold time.Duration

	engine  *engine.Engine
	screen  tcell.Screen
	surface *raster.Surface
	log     *zap.Logger

	mu      sync.Mutex
	title   string
	held    map[engine.Key]keyHold
	holds   uint64
	buttons tcell.ButtonMask

	dirty     chan struct{}
	closing   chan struct{}
	closeOnce sync.Once
	requested atomic.Bool
}

// New initializes screen and attaches the host to e.
func New(e *engine.Engine, screen tcell.Screen, cfg config.WindowConfig) (*Host, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()

	cols, rows := screen.Size()
	h := &Host{
		KeyHold: DefaultKeyHold,
		engine:  e,
		screen:  screen,
		surface: raster.New(cols, rows*2),
		log:     e.Logger().Named("termhost"),
		title:   cfg.Title,
		held:    make(map[engine.Key]keyHold),
		dirty:   make(chan struct{}, 1),
		closing: make(chan struct{}),
	}
	e.Initialize(h)
	return h, nil
}

// Run processes terminal events and presents invalidated frames until the
// host is closed or ctx is done. The screen is finalized on return.
func (h *Host) Run(ctx context.Context) error {
	defer h.screen.Fini()

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go h.poll(events, quit)

	h.present()
	for {
		select {
		case <-ctx.Done():
			h.engine.Stop()
			return nil
		case <-h.closing:
			return nil
		case <-h.dirty:
			h.present()
		case ev := <-events:
			h.handle(ev)
		}
	}
}

func (h *Host) poll(events chan<- tcell.Event, quit <-chan struct{}) {
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-quit:
			return
		}
	}
}

func (h *Host) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			if h.requested.CompareAndSwap(false, true) {
				h.engine.RequestClose()
			}
			return
		}
		if k, ok := TranslateKey(ev); ok {
			h.press(k)
		}
	case *tcell.EventMouse:
		h.mouse(ev.Buttons())
	case *tcell.EventResize:
		h.screen.Sync()
		h.Invalidate()
	}
}

// press reports a key down on the first event and postpones its release on
// every repeat.
func (h *Host) press(k engine.Key) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if held, ok := h.held[k]; ok && held.timer.Stop() {
		held.timer.Reset(h.KeyHold)
		return
	}
	// A fired timer whose release is still waiting for mu is replaced; that
	// release then finds a different id and leaves the key down.
	h.engine.KeyDown(k)
	h.holds++
	id := h.holds
	h.held[k] = keyHold{timer: time.AfterFunc(h.KeyHold, func() { h.release(k, id) }), id: id}
}

func (h *Host) release(k engine.Key, id uint64) {
	h.mu.Lock()
	held, ok := h.held[k]
	if !ok || held.id != id {
		h.mu.Unlock()
		return
	}
	delete(h.held, k)
	h.mu.Unlock()
	h.engine.KeyUp(k)
}

func (h *Host) mouse(mask tcell.ButtonMask) {
	h.mu.Lock()
	prev := h.buttons
	h.buttons = mask
	h.mu.Unlock()

	for _, b := range buttons {
		was, is := prev&b.mask != 0, mask&b.mask != 0
		switch {
		case is && !was:
			h.engine.MouseDown(b.button)
		case was && !is:
			h.engine.MouseUp(b.button)
		}
	}
}

// present paints the engine into the raster and copies it to the screen.
func (h *Host) present() {
	cols, rows := h.screen.Size()
	h.surface.Resize(cols, rows*2)
	if !h.engine.Paint(h.surface) {
		return
	}

	h.surface.View(func(img *image.RGBA) {
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				top := img.RGBAAt(x, 2*y)
				bottom := img.RGBAAt(x, 2*y+1)
				style := tcell.StyleDefault.Foreground(cellColor(top)).Background(cellColor(bottom))
				h.screen.SetContent(x, y, halfBlock, nil, style)
			}
		}
	})
	h.screen.Show()
}

func cellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (h *Host) Invalidate() {
	select {
	case h.dirty <- struct{}{}:
	default:
	}
}

// Size is the raster size in pixels: one column and two rows per cell.
func (h *Host) Size() (int, int) { return h.surface.Size() }

// SetSize is a no-op; the terminal decides the size.
func (h *Host) SetSize(w, hh int) {
	h.log.Debug("terminal size is fixed", zap.Int("width", w), zap.Int("height", hh))
}

func (h *Host) Title() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.title
}

func (h *Host) SetTitle(title string) {
	h.mu.Lock()
	h.title = title
	h.mu.Unlock()
	h.screen.SetTitle(title)
}

// Fullscreen is always true for a terminal.
func (h *Host) Fullscreen() bool  { return true }
func (h *Host) ToggleFullscreen() {}
func (h *Host) Centerize()        {}

func (h *Host) PixelColor(x, y int) color.Color { return h.surface.Pixel(x, y) }

func (h *Host) SetIcon(image.Image) {}

// Close ends Run. Pending key releases are dropped.
func (h *Host) Close() {
	h.closeOnce.Do(func() {
		h.mu.Lock()
		for k, held := range h.held {
			held.timer.Stop()
			delete(h.held, k)
		}
		h.mu.Unlock()
		close(h.closing)
		h.log.Info("terminal host closed")
	})
}
