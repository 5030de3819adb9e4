package engine

import (
	"sync"

	"go.uber.org/zap"
)

// Component is a GUI element owned by an overlay. Components only receive
// Update and Render calls between Initialize and Dispose.
type Component interface {
	Tickable
	Layouter
	Initialize()
	Dispose()
}

// Overlay is a GUI layer that the engine displays as a unit. Implementations
// embed GUI and override the lifecycle and tick methods they need.
type Overlay interface {
	Tickable
	Initialize()
	Dispose()
	Root() *GUI
}

// GUI is the root of an overlay. It owns the overlay's components in the
// order they were added; later components draw on top.
type GUI struct {
	mu         sync.RWMutex
	components []Component
	engine     *Engine
	host       Host
	resolution Resolution
}

// Add appends a component. Components added after the overlay is displayed
// are not registered with the engine until the overlay is displayed again.
func (g *GUI) Add(c Component) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.components = append(g.components, c)
}

func (g *GUI) Components() []Component {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]Component(nil), g.components...)
}

// Engine returns the engine that displays this overlay, or nil.
func (g *GUI) Engine() *Engine {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.engine
}

func (g *GUI) Host() Host {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.host
}

// Resolution is refreshed once per update tick while the overlay is active.
func (g *GUI) Resolution() Resolution {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.resolution
}

func (g *GUI) Root() *GUI { return g }

func (g *GUI) Initialize()      {}
func (g *GUI) Dispose()         {}
func (g *GUI) Update()          {}
func (g *GUI) Render(s Surface) {}

func (g *GUI) bind(e *Engine, h Host, res Resolution) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.engine = e
	g.host = h
	g.resolution = res
}

func (g *GUI) setResolution(res Resolution) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resolution = res
}

// BaseComponent provides the layout half of Component. Aligner is expressed
// as fractions of the engine resolution; Area is the derived absolute
// rectangle. Layout runs on the update loop while Render may run on the
// host's paint pass, so the area is kept behind a lock. Build values with
// NewBaseComponent.
type BaseComponent struct {
	Aligner Rect
	area    *lockedRect
}

type lockedRect struct {
	mu sync.RWMutex
	r  Rect
}

func NewBaseComponent(aligner Rect) BaseComponent {
	return BaseComponent{Aligner: aligner, area: &lockedRect{r: aligner}}
}

func (b *BaseComponent) Layout(res Resolution) {
	w, h := float64(res.Width), float64(res.Height)
	b.area.mu.Lock()
	defer b.area.mu.Unlock()
	b.area.r = Rect{
		X: w * b.Aligner.X,
		Y: h * b.Aligner.Y,
		W: w * b.Aligner.W,
		H: h * b.Aligner.H,
	}
}

// Area is the rectangle computed by the last Layout.
func (b *BaseComponent) Area() Rect {
	b.area.mu.RLock()
	defer b.area.mu.RUnlock()
	return b.area.r
}

func (b *BaseComponent) Initialize()      {}
func (b *BaseComponent) Dispose()         {}
func (b *BaseComponent) Update()          {}
func (b *BaseComponent) Render(s Surface) {}

// Display swaps the active overlay. The loops are held at the pause gate for
// the duration of the swap: the old overlay's components and root are
// disposed and deregistered, then the new ones are initialized and
// registered. A nil overlay just removes the current one.
//
// Display must not be called from inside Update or Render; use DisplayLater
// there.
func (e *Engine) Display(next Overlay) {
	e.scheduler.Pause()
	defer e.scheduler.Resume()
	e.swap(next)
}

// DisplayLater queues a swap that the update loop applies after the current
// tick. When the engine is not running the swap happens immediately.
func (e *Engine) DisplayLater(next Overlay) {
	if !e.scheduler.Running() {
		e.Display(next)
		return
	}

	e.pendingMu.Lock()
	defer e.pendingMu.Unlock()
	e.pending = append(e.pending, func() { e.Display(next) })
}

func (e *Engine) swap(next Overlay) {
	e.guiMu.Lock()
	defer e.guiMu.Unlock()

	if prev := e.gui; prev != nil {
		for _, c := range prev.Root().Components() {
			c.Dispose()
			e.registry.Remove(c)
		}
		prev.Dispose()
		e.registry.Remove(prev)
		e.log.Debug("overlay disposed", zap.Int("components", len(prev.Root().Components())))
	}

	e.gui = next
	if next == nil {
		return
	}

	next.Root().bind(e, e.Host(), e.Resolution())
	components := next.Root().Components()
	for _, c := range components {
		c.Initialize()
		e.registry.Add(c)
	}
	next.Initialize()
	e.registry.Add(next)
	e.log.Debug("overlay displayed", zap.Int("components", len(components)))
}

// Overlay returns the active overlay, or nil.
func (e *Engine) Overlay() Overlay {
	e.guiMu.Lock()
	defer e.guiMu.Unlock()
	return e.gui
}

func (e *Engine) refreshOverlay(res Resolution) {
	e.guiMu.Lock()
	gui := e.gui
	e.guiMu.Unlock()

	if gui != nil {
		gui.Root().setResolution(res)
	}
}

func (e *Engine) runPending() {
	e.pendingMu.Lock()
	pending := e.pending
	e.pending = nil
	e.pendingMu.Unlock()

	for _, fn := range pending {
		fn()
	}
}
