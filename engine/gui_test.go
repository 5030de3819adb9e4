package engine_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/plus3/tickloop/engine"
	"github.com/plus3/tickloop/engine/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) take() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := r.events
	r.events = nil
	return events
}

// widget records its lifecycle and flags any tick it receives while not
// initialized.
type widget struct {
	engine.BaseComponent
	name  string
	rec   *recorder
	live  atomic.Bool
	stray atomic.Int64
	ticks atomic.Int64
}

func newWidget(name string, rec *recorder) *widget {
	return &widget{
		BaseComponent: engine.NewBaseComponent(engine.Rect{X: 0.5, Y: 0.5, W: 0.25, H: 0.25}),
		name:          name,
		rec:           rec,
	}
}

func (w *widget) Initialize() {
	w.rec.add("init:" + w.name)
	w.live.Store(true)
}

func (w *widget) Dispose() {
	w.live.Store(false)
	w.rec.add("dispose:" + w.name)
}

func (w *widget) Update() {
	if !w.live.Load() {
		w.stray.Add(1)
	}
	w.ticks.Add(1)
}

func (w *widget) Render(engine.Surface) {
	if !w.live.Load() {
		w.stray.Add(1)
	}
}

type menu struct {
	engine.GUI
	name string
	rec  *recorder
	live atomic.Bool
}

func newMenu(name string, rec *recorder, widgets ...*widget) *menu {
	m := &menu{name: name, rec: rec}
	for _, w := range widgets {
		m.Add(w)
	}
	return m
}

func (m *menu) Initialize() {
	m.rec.add("init:" + m.name)
	m.live.Store(true)
}

func (m *menu) Dispose() {
	m.live.Store(false)
	m.rec.add("dispose:" + m.name)
}

func TestDisplaySwapsOverlays(t *testing.T) {
	e, host := newTestEngine()
	rec := &recorder{}
	a1, a2 := newWidget("a1", rec), newWidget("a2", rec)
	b1 := newWidget("b1", rec)
	a := newMenu("a", rec, a1, a2)
	b := newMenu("b", rec, b1)

	e.Display(a)
	assert.Equal(t, []string{"init:a1", "init:a2", "init:a"}, rec.take())
	assert.Same(t, a, e.Overlay())
	assert.Same(t, e, a.Engine())
	assert.Same(t, host, a.Host())
	assert.Equal(t, e.Resolution(), a.Resolution())
	assert.Equal(t, []engine.Tickable{a1, a2, a}, e.Registry().Snapshot())

	e.Display(b)
	assert.Equal(t, []string{"dispose:a1", "dispose:a2", "dispose:a", "init:b1", "init:b"}, rec.take())
	assert.Equal(t, []engine.Tickable{b1, b}, e.Registry().Snapshot())

	e.Display(nil)
	assert.Equal(t, []string{"dispose:b1", "dispose:b"}, rec.take())
	assert.Nil(t, e.Overlay())
	assert.Zero(t, e.Registry().Len())
}

func TestDisplayKeepsLooseTickables(t *testing.T) {
	e, _ := newTestEngine()
	rec := &recorder{}
	loose := &counter{}
	e.Add(loose)

	e.Display(newMenu("a", rec, newWidget("a1", rec)))
	e.Display(newMenu("b", rec))

	snapshot := e.Registry().Snapshot()
	require.Len(t, snapshot, 2)
	assert.Same(t, loose, snapshot[0])
}

func TestOverlayResolutionFollowsEngine(t *testing.T) {
	e, _ := newTestEngine()
	rec := &recorder{}
	w := newWidget("w", rec)
	m := newMenu("m", rec, w)
	e.Display(m)

	require.NoError(t, e.SetResolution(400, 200))
	e.Registry().UpdateAll(e.Resolution())
	assert.Equal(t, engine.Rect{X: 200, Y: 100, W: 100, H: 50}, w.Area())

	require.NoError(t, e.Start())
	defer e.Stop()
	assert.Eventually(t, func() bool {
		return m.Resolution() == engine.Resolution{Width: 400, Height: 200}
	}, time.Second, 5*time.Millisecond)
}

func TestSwapWhileRunning(t *testing.T) {
	e, _ := newTestEngine()
	require.NoError(t, e.SetTickRate(500))
	require.NoError(t, e.SetFrameRate(500))

	rec := &recorder{}
	var widgets []*widget
	overlay := func(name string) *menu {
		w := newWidget(name+"1", rec)
		widgets = append(widgets, w)
		return newMenu(name, rec, w)
	}

	e.Display(overlay("a"))
	require.NoError(t, e.Start())

	surface := raster.New(32, 32)
	stopPaint := make(chan struct{})
	var painter sync.WaitGroup
	painter.Add(1)
	go func() {
		defer painter.Done()
		for {
			select {
			case <-stopPaint:
				return
			default:
				e.Paint(surface)
			}
		}
	}()

	for i := 0; i < 20; i++ {
		e.Display(overlay("o"))
		time.Sleep(2 * time.Millisecond)
	}

	close(stopPaint)
	painter.Wait()
	e.Stop()

	for _, w := range widgets {
		assert.Zero(t, w.stray.Load(), "%s ticked outside its lifetime", w.name)
	}
}

// switcher swaps to its target from inside its own update.
type switcher struct {
	engine.GUI
	target engine.Overlay
	fired  atomic.Bool
}

func (s *switcher) Update() {
	if s.fired.CompareAndSwap(false, true) {
		s.Engine().DisplayLater(s.target)
	}
}

func TestDisplayLaterFromUpdate(t *testing.T) {
	e, _ := newTestEngine()
	require.NoError(t, e.SetTickRate(200))

	rec := &recorder{}
	w := newWidget("next1", rec)
	next := newMenu("next", rec, w)
	e.Display(&switcher{target: next})

	require.NoError(t, e.Start())
	defer e.Stop()

	assert.Eventually(t, func() bool { return e.Overlay() == engine.Overlay(next) }, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return w.ticks.Load() > 0 }, time.Second, 5*time.Millisecond)
	assert.Zero(t, w.stray.Load())
}

func TestDisplayLaterWhenStopped(t *testing.T) {
	e, _ := newTestEngine()
	rec := &recorder{}
	m := newMenu("m", rec)

	e.DisplayLater(m)
	assert.Same(t, m, e.Overlay())
	assert.Equal(t, []string{"init:m"}, rec.take())
}
