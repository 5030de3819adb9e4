// Package ebitenhost runs an engine inside an ebiten window.
//
// Ebiten owns the main thread: its Update polls input edges and close
// requests, and its Draw repaints an offscreen canvas through Engine.Paint
// whenever the render loop has invalidated it. Debug layers such as the
// imgui overlay draw on top of the canvas.
package ebitenhost

import (
	"image"
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/tickloop/engine"
	"github.com/plus3/tickloop/engine/config"
	"go.uber.org/zap"
)

// Layer is drawn over the engine's canvas on every ebiten frame.
type Layer interface {
	Update() error
	Draw(screen *ebiten.Image)
	Layout(w, h int)
}

// InputCapturer is implemented by layers that can consume input. While a
// layer captures the keyboard or mouse, new press edges are not forwarded
// to the engine. Releases always are, so held state cannot get stuck.
type InputCapturer interface {
	CapturesInput() (mouse, keyboard bool)
}

type Host struct {
	engine *engine.Engine
	log    *zap.Logger

	mu         sync.Mutex
	title      string
	w, h       int
	canvas     *ebiten.Image
	surface    *Surface
	layers     []Layer
	keys       []ebiten.Key
	fullscreen bool

	dirty          atomic.Bool
	started        atomic.Bool
	closed         atomic.Bool
	closeRequested atomic.Bool
}

// New creates a host for e and attaches it with e.Initialize, which sizes the
// window to the engine resolution.
func New(e *engine.Engine, cfg config.WindowConfig) *Host {
	h := &Host{
		engine:  e,
		log:     e.Logger().Named("ebitenhost"),
		title:   cfg.Title,
		surface: NewSurface(),
	}
	h.dirty.Store(true)

	ebiten.SetWindowTitle(cfg.Title)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	e.Initialize(h)
	return h
}

// AddLayer registers a layer drawn above the engine output.
func (h *Host) AddLayer(l Layer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.layers = append(h.layers, l)
}

// Run blocks on the ebiten main loop until the window is closed. It must be
// called from the main goroutine.
func (h *Host) Run() error {
	ebiten.SetWindowClosingHandled(true)
	return ebiten.RunGame(h)
}

func (h *Host) Update() error {
	if h.closed.Load() {
		return ebiten.Termination
	}
	h.started.Store(true)

	if ebiten.IsWindowBeingClosed() && h.closeRequested.CompareAndSwap(false, true) {
		h.engine.RequestClose()
	}

	layers := h.snapshotLayers()
	var captureMouse, captureKeyboard bool
	for _, l := range layers {
		if c, ok := l.(InputCapturer); ok {
			m, k := c.CapturesInput()
			captureMouse = captureMouse || m
			captureKeyboard = captureKeyboard || k
		}
	}

	if !captureKeyboard {
		h.keys = inpututil.AppendJustPressedKeys(h.keys[:0])
		for _, k := range h.keys {
			if key := TranslateKey(k); key != engine.KeyUnknown {
				h.engine.KeyDown(key)
			}
		}
	}
	h.keys = inpututil.AppendJustReleasedKeys(h.keys[:0])
	for _, k := range h.keys {
		if key := TranslateKey(k); key != engine.KeyUnknown {
			h.engine.KeyUp(key)
		}
	}
	for eb, b := range buttonMap {
		if !captureMouse && inpututil.IsMouseButtonJustPressed(eb) {
			h.engine.MouseDown(b)
		}
		if inpututil.IsMouseButtonJustReleased(eb) {
			h.engine.MouseUp(b)
		}
	}

	for _, l := range layers {
		if err := l.Update(); err != nil {
			return err
		}
	}
	return nil
}

// Draw repaints the canvas when it was invalidated. Layout and Draw both run
// on the ebiten main goroutine, so the canvas cannot be swapped mid-paint.
func (h *Host) Draw(screen *ebiten.Image) {
	h.mu.Lock()
	canvas := h.canvas
	h.mu.Unlock()
	if canvas == nil {
		return
	}

	// Paint may call back into PixelColor, so no lock is held here.
	if h.dirty.Swap(false) {
		h.surface.begin(canvas)
		if !h.engine.Paint(h.surface) {
			// a GUI swap is in progress; keep the last frame
			h.dirty.Store(true)
		}
		h.surface.end()
	}

	screen.DrawImage(canvas, nil)
	for _, l := range h.snapshotLayers() {
		l.Draw(screen)
	}
}

func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	h.mu.Lock()
	if h.canvas == nil || h.w != outsideWidth || h.h != outsideHeight {
		if h.canvas != nil {
			h.canvas.Deallocate()
		}
		h.w, h.h = outsideWidth, outsideHeight
		h.canvas = ebiten.NewImage(outsideWidth, outsideHeight)
		h.dirty.Store(true)
	}
	h.mu.Unlock()

	for _, l := range h.snapshotLayers() {
		l.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func (h *Host) snapshotLayers() []Layer {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Layer(nil), h.layers...)
}

func (h *Host) Invalidate() { h.dirty.Store(true) }

func (h *Host) Size() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.w, h.h
}

func (h *Host) SetSize(w, hh int) {
	h.mu.Lock()
	h.w, h.h = w, hh
	h.mu.Unlock()
	ebiten.SetWindowSize(w, hh)
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
	ebiten.SetWindowTitle(title)
}

func (h *Host) Fullscreen() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.fullscreen
}

func (h *Host) ToggleFullscreen() {
	h.mu.Lock()
	h.fullscreen = !h.fullscreen
	fullscreen := h.fullscreen
	h.mu.Unlock()

	ebiten.SetFullscreen(fullscreen)
	h.log.Debug("fullscreen toggled", zap.Bool("fullscreen", fullscreen))
}

// Centerize moves the window to the middle of its monitor.
func (h *Host) Centerize() {
	mw, mh := ebiten.Monitor().Size()
	ww, wh := ebiten.WindowSize()
	ebiten.SetWindowPosition((mw-ww)/2, (mh-wh)/2)
}

// PixelColor samples the last presented canvas.
func (h *Host) PixelColor(x, y int) color.Color {
	if !h.started.Load() {
		return color.Transparent
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.canvas == nil {
		return color.Transparent
	}
	return h.canvas.At(x, y)
}

func (h *Host) SetIcon(img image.Image) {
	ebiten.SetWindowIcon([]image.Image{img})
}

// Close ends the ebiten loop on its next update.
func (h *Host) Close() {
	if h.closed.CompareAndSwap(false, true) {
		h.log.Info("window closed")
	}
}
