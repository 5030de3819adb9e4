package engine_test

import (
	"fmt"
	"image/color"

	"github.com/plus3/tickloop/engine"
	"github.com/plus3/tickloop/engine/raster"
)

// Button is a component laid out relative to the engine resolution.
type Button struct {
	engine.BaseComponent
	Fill color.RGBA
}

func (b *Button) Render(s engine.Surface) {
	img := raster.New(1, 1)
	img.Clear(b.Fill)
	a := b.Area()
	s.DrawImage(img.Image(), a.X, a.Y, a.W, a.H)
}

type TitleScreen struct {
	engine.GUI
	Start *Button
}

func NewTitleScreen() *TitleScreen {
	t := &TitleScreen{
		Start: &Button{
			BaseComponent: engine.NewBaseComponent(engine.Rect{X: 0.25, Y: 0.5, W: 0.5, H: 0.25}),
			Fill:          color.RGBA{G: 0xff, A: 0xff},
		},
	}
	t.Add(t.Start)
	return t
}

// ExampleEngine_Display shows an overlay being displayed and painted without
// starting the loops. Hosts call Paint from their own draw callback.
func ExampleEngine_Display() {
	cfg := testConfig()
	cfg.Width, cfg.Height = 40, 20
	e, err := engine.New(cfg)
	if err != nil {
		panic(err)
	}
	e.Initialize(newFakeHost())

	title := NewTitleScreen()
	e.Display(title)
	e.Registry().UpdateAll(e.Resolution())
	fmt.Println("button area:", title.Start.Area())

	surface := raster.New(80, 40)
	e.Paint(surface)
	fmt.Println("center:", surface.Pixel(40, 25))
	fmt.Println("corner:", surface.Pixel(0, 0))

	// Output:
	// button area: {10 10 20 5}
	// center: {0 255 0 255}
	// corner: {0 0 0 255}
}
