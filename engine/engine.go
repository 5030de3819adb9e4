// Package engine is a small real-time 2D game loop. An Engine drives an
// update loop and a render loop at independent rates over a registry of
// tickables, tracks held keys and mouse buttons, swaps GUI overlays, and
// keeps a registry of sprites, sounds and music.
//
// The engine does not own a window. A Host (see ebitenhost and termhost)
// delivers paint requests, input edges and close requests, and the engine
// only draws through the Surface the host hands to Paint.
package engine

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"sync"
	"time"

	"github.com/plus3/tickloop/engine/audio"
	"github.com/plus3/tickloop/engine/config"
	"go.uber.org/zap"
)

const titleSuffix = " | Made with tickloop"

type options struct {
	log    *zap.Logger
	device audio.Device
}

type Option func(*options)

func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithAudio sets the device sounds and music are played on. The default
// plays nothing.
func WithAudio(device audio.Device) Option {
	return func(o *options) { o.device = device }
}

type Engine struct {
	log           *zap.Logger
	registry      *Registry
	resources     *Resources
	input         *InputState
	scheduler     *Scheduler
	background    color.RGBA
	fullscreenKey Key

	resMu      sync.RWMutex
	resolution Resolution

	hostMu sync.RWMutex
	host   Host

	guiMu sync.Mutex
	gui   Overlay

	pendingMu sync.Mutex
	pending   []func()

	closeOnce sync.Once
}

func New(cfg config.EngineConfig, opts ...Option) (*Engine, error) {
	o := options{log: zap.NewNop(), device: audio.Nop{}}
	for _, opt := range opts {
		opt(&o)
	}

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidResolution, cfg.Width, cfg.Height)
	}
	background, err := cfg.BackgroundColor()
	if err != nil {
		return nil, err
	}
	fullscreenKey := KeyF11
	if cfg.FullscreenKey != "" {
		if fullscreenKey, err = ParseKey(cfg.FullscreenKey); err != nil {
			return nil, err
		}
	}

	e := &Engine{
		log:           o.log,
		registry:      NewRegistry(),
		resources:     NewResources(Workspace{Root: cfg.Workspace}, o.device, o.log),
		input:         NewInputState(),
		background:    background,
		fullscreenKey: fullscreenKey,
		resolution:    Resolution{Width: cfg.Width, Height: cfg.Height},
	}

	e.scheduler, err = NewScheduler(cfg.TickRate, cfg.FrameRate, e.tick, e.frame, e.runPending, o.log)
	if err != nil {
		return nil, err
	}
	if cfg.Diagnostics {
		e.scheduler.SetDiagnostics(true)
	}
	return e, nil
}

// Initialize attaches the host window, sizes it to the resolution and tags
// its title.
func (e *Engine) Initialize(host Host) {
	e.hostMu.Lock()
	e.host = host
	e.hostMu.Unlock()

	res := e.Resolution()
	host.SetSize(res.Width, res.Height)
	host.SetTitle(host.Title() + titleSuffix)
}

func (e *Engine) Host() Host {
	e.hostMu.RLock()
	defer e.hostMu.RUnlock()
	return e.host
}

func (e *Engine) Logger() *zap.Logger          { return e.log }
func (e *Engine) Registry() *Registry          { return e.registry }
func (e *Engine) Resources() *Resources        { return e.resources }
func (e *Engine) Input() *InputState           { return e.input }
func (e *Engine) Scheduler() *Scheduler        { return e.scheduler }
func (e *Engine) Background() color.RGBA       { return e.background }
func (e *Engine) Stats() *SchedulerStats       { return e.scheduler.GetStats() }
func (e *Engine) TickRate() int                { return e.scheduler.TickRate() }
func (e *Engine) FrameRate() int               { return e.scheduler.FrameRate() }
func (e *Engine) TickInterval() time.Duration  { return e.scheduler.TickInterval() }
func (e *Engine) FrameInterval() time.Duration { return e.scheduler.FrameInterval() }
func (e *Engine) DebugTPS() int                { return e.scheduler.DebugTPS() }
func (e *Engine) DebugFPS() int                { return e.scheduler.DebugFPS() }
func (e *Engine) SetDiagnostics(enabled bool)  { e.scheduler.SetDiagnostics(enabled) }
func (e *Engine) Running() bool                { return e.scheduler.Running() }

// Done is closed once Stop has been called.
func (e *Engine) Done() <-chan struct{} { return e.scheduler.Done() }

func (e *Engine) SetTickRate(rate int) error  { return e.scheduler.SetTickRate(rate) }
func (e *Engine) SetFrameRate(rate int) error { return e.scheduler.SetFrameRate(rate) }

func (e *Engine) SetResolution(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidResolution, w, h)
	}
	e.resMu.Lock()
	defer e.resMu.Unlock()
	e.resolution = Resolution{Width: w, Height: h}
	return nil
}

func (e *Engine) Resolution() Resolution {
	e.resMu.RLock()
	defer e.resMu.RUnlock()
	return e.resolution
}

// Add registers a tickable that is not part of any overlay.
func (e *Engine) Add(t Tickable) bool    { return e.registry.Add(t) }
func (e *Engine) Remove(t Tickable) bool { return e.registry.Remove(t) }

// Start launches the update and render loops. An engine can be started once.
func (e *Engine) Start() error {
	if e.Host() == nil {
		return ErrNotInitialized
	}
	return e.scheduler.Start()
}

// Stop ends both loops, waits for them to return, then closes the host.
// It must not be called from inside Update or Render; use RequestClose.
func (e *Engine) Stop() {
	e.scheduler.Stop()
	e.closeOnce.Do(func() {
		if host := e.Host(); host != nil {
			host.Close()
		}
	})
}

// RequestClose is the host's close notification. It stops the engine
// without blocking the caller.
func (e *Engine) RequestClose() {
	e.log.Info("close requested")
	go e.Stop()
}

func (e *Engine) tick() {
	res := e.Resolution()
	e.registry.UpdateAll(res)
	e.resources.Animate()
	e.refreshOverlay(res)
}

func (e *Engine) frame() {
	if host := e.Host(); host != nil {
		host.Invalidate()
	}
}

// Paint is the host's paint pass: it clears s to the background, scales it so
// the engine resolution covers the whole surface, and renders every
// tickable. It reports false when the pass was skipped because an overlay
// swap is in progress.
func (e *Engine) Paint(s Surface) bool {
	if !e.scheduler.Enter() {
		return false
	}
	defer e.scheduler.Exit()

	s.Clear(e.background)
	w, h := s.Size()
	res := e.Resolution()
	s.Scale(float64(w)/float64(res.Width), float64(h)/float64(res.Height))
	e.registry.RenderAll(s)
	return true
}

// KeyDown records a press edge. The full-screen key toggles full-screen once
// per press, not per repeat.
func (e *Engine) KeyDown(k Key) {
	if e.input.KeyDown(k) && k == e.fullscreenKey {
		e.ToggleFullscreen()
	}
}

func (e *Engine) KeyUp(k Key)                     { e.input.KeyUp(k) }
func (e *Engine) MouseDown(b MouseButton)         { e.input.MouseDown(b) }
func (e *Engine) MouseUp(b MouseButton)           { e.input.MouseUp(b) }
func (e *Engine) IsKeyDown(k Key) bool            { return e.input.IsKeyDown(k) }
func (e *Engine) IsButtonDown(b MouseButton) bool { return e.input.IsButtonDown(b) }

func (e *Engine) ToggleFullscreen() {
	if host := e.Host(); host != nil {
		host.ToggleFullscreen()
	}
}

func (e *Engine) Centerize() {
	if host := e.Host(); host != nil {
		host.Centerize()
	}
}

// PixelColor samples the presented image. Without a host it is transparent.
func (e *Engine) PixelColor(x, y int) color.Color {
	host := e.Host()
	if host == nil {
		return color.Transparent
	}
	return host.PixelColor(x, y)
}

func (e *Engine) AddResource(r Resource)         { e.resources.Add(r) }
func (e *Engine) RemoveResource(r Resource) bool { return e.resources.Remove(r) }

func (e *Engine) LoadResource(kind Kind, path string) (Resource, error) {
	return e.resources.Load(kind, path)
}

// LoadAllResources decodes every registered sound.
func (e *Engine) LoadAllResources() error {
	return e.resources.LoadAll()
}

// LoadManifest loads a workspace-relative YAML resource manifest.
func (e *Engine) LoadManifest(path string) error {
	file, _, err := e.resources.Workspace().Resolve(path)
	if err != nil {
		return err
	}
	m, err := ReadManifest(file)
	if err != nil {
		return err
	}
	return e.resources.LoadManifest(m)
}

func (e *Engine) PlaySound(name string) error {
	s, ok := e.resources.Sound(name)
	if !ok {
		return fmt.Errorf("%w: sound %q", ErrNotFound, name)
	}
	return s.Play()
}

// SetIcon decodes a workspace-relative image and uses it as the window icon.
func (e *Engine) SetIcon(path string) error {
	host := e.Host()
	if host == nil {
		return ErrNotInitialized
	}

	file, _, err := e.resources.Workspace().Resolve(path)
	if err != nil {
		return err
	}
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode icon %s: %w", path, err)
	}
	host.SetIcon(img)
	return nil
}
