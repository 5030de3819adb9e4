package termhost_test

import (
	"context"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/tickloop/engine"
	"github.com/plus3/tickloop/engine/config"
	"github.com/plus3/tickloop/engine/termhost"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stripes renders alternating rows of c and blue over the whole resolution.
type stripes struct{ c color.RGBA }

func (f stripes) Update() {}

func (f stripes) Render(s engine.Surface) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 4))
	for y := 0; y < 4; y++ {
		if y%2 == 0 {
			img.SetRGBA(0, y, f.c)
		} else {
			img.SetRGBA(0, y, color.RGBA{B: 0xff, A: 0xff})
		}
	}
	s.DrawImage(img, 0, 0, 40, 20)
}

func newHost(t *testing.T) (*engine.Engine, *termhost.Host, tcell.SimulationScreen) {
	t.Helper()

	cfg := config.Default()
	cfg.Engine.Width, cfg.Engine.Height = 40, 20
	e, err := engine.New(cfg.Engine)
	require.NoError(t, err)

	screen := tcell.NewSimulationScreen("UTF-8")
	h, err := termhost.New(e, screen, config.WindowConfig{Title: "demo"})
	require.NoError(t, err)
	screen.SetSize(4, 2)
	h.KeyHold = 50 * time.Millisecond
	return e, h, screen
}

func run(t *testing.T, h *termhost.Host) (cancel func()) {
	t.Helper()

	ctx, stop := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()
	return func() {
		stop()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("Run did not return")
		}
	}
}

func TestTitle(t *testing.T) {
	_, h, _ := newHost(t)
	assert.Equal(t, "demo | Made with tickloop", h.Title())
	assert.True(t, h.Fullscreen())
}

func TestPresentUsesHalfBlocks(t *testing.T) {
	e, h, screen := newHost(t)
	red := color.RGBA{R: 0xff, A: 0xff}
	e.Add(stripes{c: red})

	cancel := run(t, h)
	defer cancel()

	want := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(0xff, 0, 0)).
		Background(tcell.NewRGBColor(0, 0, 0xff))
	assert.Eventually(t, func() bool {
		cells, w, hh := screen.GetContents()
		if w != 4 || hh != 2 {
			return false
		}
		for _, cell := range cells {
			if len(cell.Runes) == 0 || cell.Runes[0] != '▀' || cell.Style != want {
				return false
			}
		}
		return true
	}, time.Second, 5*time.Millisecond)

	w, hh := h.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 4, hh)
	assert.Equal(t, red, e.PixelColor(0, 0))
}

func TestKeysReleaseAfterHold(t *testing.T) {
	e, h, screen := newHost(t)
	cancel := run(t, h)
	defer cancel()

	screen.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	assert.Eventually(t, func() bool { return e.IsKeyDown(engine.KeyA) }, time.Second, time.Millisecond)
	assert.Eventually(t, func() bool { return !e.IsKeyDown(engine.KeyA) }, time.Second, time.Millisecond)

	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	assert.Eventually(t, func() bool { return e.IsKeyDown(engine.KeyEnter) }, time.Second, time.Millisecond)
}

func TestMouseEdges(t *testing.T) {
	e, h, screen := newHost(t)
	cancel := run(t, h)
	defer cancel()

	screen.InjectMouse(1, 1, tcell.Button1|tcell.Button3, tcell.ModNone)
	assert.Eventually(t, func() bool {
		return e.IsButtonDown(engine.MouseLeft) && e.IsButtonDown(engine.MouseMiddle)
	}, time.Second, time.Millisecond)

	screen.InjectMouse(1, 1, tcell.Button3, tcell.ModNone)
	assert.Eventually(t, func() bool { return !e.IsButtonDown(engine.MouseLeft) }, time.Second, time.Millisecond)
	assert.True(t, e.IsButtonDown(engine.MouseMiddle))
}

func TestCtrlCStopsEngine(t *testing.T) {
	e, h, screen := newHost(t)
	require.NoError(t, e.Start())

	done := make(chan error, 1)
	go func() { done <- h.Run(context.Background()) }()

	screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Ctrl-C")
	}
	assert.False(t, e.Running())
}
