// Package debugui draws Dear ImGui diagnostics windows over an ebiten-hosted
// engine. An Overlay is added to the ebiten host as a layer; every ebiten
// frame it runs its panels between BeginFrame and EndFrame.
package debugui

import (
	"sync"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
)

// Panel renders ImGui widgets once per frame.
type Panel interface {
	Render()
}

// PanelFunc adapts a function to Panel.
type PanelFunc func()

func (f PanelFunc) Render() { f() }

// InputCapture reports whether ImGui consumed input during the last frame.
type InputCapture struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay owns the ImGui backend and the panels it draws.
type Overlay struct {
	backend *ebitenbackend.EbitenBackend

	mu      sync.Mutex
	panels  []Panel
	capture InputCapture
	visible bool
}

// NewOverlay creates the ImGui context for a window of the given title and
// size. ImGui's ini persistence is disabled.
func NewOverlay(title string, w, h int) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, w, h)
	imgui.CurrentIO().SetIniFilename("")
	return &Overlay{backend: backend, visible: true}
}

func (o *Overlay) Add(p Panel) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.panels = append(o.panels, p)
}

// SetVisible hides or shows every panel. Hidden overlays capture no input.
func (o *Overlay) SetVisible(visible bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.visible = visible
	if !visible {
		o.capture = InputCapture{}
	}
}

func (o *Overlay) Visible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.visible
}

func (o *Overlay) Capture() InputCapture {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.capture
}

// CapturesInput lets the ebiten host skip input ImGui is consuming.
func (o *Overlay) CapturesInput() (mouse, keyboard bool) {
	c := o.Capture()
	return c.WantCaptureMouse, c.WantCaptureKeyboard
}

func (o *Overlay) Update() error {
	o.mu.Lock()
	visible := o.visible
	panels := append([]Panel(nil), o.panels...)
	o.mu.Unlock()

	o.backend.BeginFrame()
	if visible {
		for _, p := range panels {
			p.Render()
		}
	}
	o.backend.EndFrame()

	if visible {
		io := imgui.CurrentIO()
		o.mu.Lock()
		o.capture = InputCapture{
			WantCaptureMouse:    io.WantCaptureMouse(),
			WantCaptureKeyboard: io.WantCaptureKeyboard(),
		}
		o.mu.Unlock()
	}
	return nil
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

func (o *Overlay) Layout(w, h int) {
	o.backend.Layout(w, h)
}
