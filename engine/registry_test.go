package engine_test

import (
	"sync"
	"testing"

	"github.com/plus3/tickloop/engine"
	"github.com/plus3/tickloop/engine/raster"
	"github.com/stretchr/testify/assert"
)

type traced struct {
	name string
	log  *[]string
}

func (t *traced) Update()               { *t.log = append(*t.log, "update:"+t.name) }
func (t *traced) Render(engine.Surface) { *t.log = append(*t.log, "render:"+t.name) }

type tracedWidget struct {
	engine.BaseComponent
	traced
}

func (w *tracedWidget) Layout(res engine.Resolution) {
	w.BaseComponent.Layout(res)
	*w.log = append(*w.log, "layout:"+w.name)
}

func (w *tracedWidget) Update()                 { w.traced.Update() }
func (w *tracedWidget) Render(s engine.Surface) { w.traced.Render(s) }

func TestRegistry(t *testing.T) {
	t.Run("add keeps order and rejects duplicates", func(t *testing.T) {
		r := engine.NewRegistry()
		a, b, c := &counter{}, &counter{}, &counter{}

		assert.True(t, r.Add(a))
		assert.True(t, r.Add(b))
		assert.True(t, r.Add(c))
		assert.False(t, r.Add(b))
		assert.Equal(t, 3, r.Len())
		assert.Equal(t, []engine.Tickable{a, b, c}, r.Snapshot())
	})

	t.Run("remove preserves order", func(t *testing.T) {
		r := engine.NewRegistry()
		a, b, c := &counter{}, &counter{}, &counter{}
		r.Add(a)
		r.Add(b)
		r.Add(c)

		assert.True(t, r.Remove(b))
		assert.False(t, r.Remove(b))
		assert.Equal(t, []engine.Tickable{a, c}, r.Snapshot())
		assert.False(t, r.Contains(b))
		assert.True(t, r.Contains(c))
	})

	t.Run("layout runs right before update", func(t *testing.T) {
		var log []string
		r := engine.NewRegistry()
		r.Add(&traced{name: "entity", log: &log})
		w := &tracedWidget{
			BaseComponent: engine.NewBaseComponent(engine.Rect{X: 0.5, Y: 0.25, W: 0.5, H: 0.5}),
			traced:        traced{name: "widget", log: &log},
		}
		r.Add(w)

		r.UpdateAll(engine.Resolution{Width: 200, Height: 100})

		assert.Equal(t, []string{"update:entity", "layout:widget", "update:widget"}, log)
		assert.Equal(t, engine.Rect{X: 100, Y: 25, W: 100, H: 50}, w.Area())
	})

	t.Run("render follows registration order", func(t *testing.T) {
		var log []string
		r := engine.NewRegistry()
		r.Add(&traced{name: "back", log: &log})
		r.Add(&traced{name: "front", log: &log})

		r.RenderAll(raster.New(1, 1))
		assert.Equal(t, []string{"render:back", "render:front"}, log)
	})

	t.Run("snapshots survive concurrent mutation", func(t *testing.T) {
		r := engine.NewRegistry()
		for i := 0; i < 64; i++ {
			r.Add(&counter{})
		}

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				c := &counter{}
				r.Add(c)
				r.Remove(c)
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				r.UpdateAll(engine.Resolution{Width: 1, Height: 1})
			}
		}()
		wg.Wait()

		assert.Equal(t, 64, r.Len())
		for _, entry := range r.Snapshot() {
			assert.Equal(t, int64(500), entry.(*counter).updates.Load())
		}
	})
}
