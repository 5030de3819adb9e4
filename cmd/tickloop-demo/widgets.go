package main

import (
	"image"
	"image/color"
	"sync"

	"github.com/plus3/tickloop/engine"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// label draws centered text in its area. The text can change between ticks.
type label struct {
	engine.BaseComponent
	face  font.Face
	color color.Color

	mu   sync.Mutex
	text string
}

func newLabel(text string, aligner engine.Rect, c color.Color) *label {
	return &label{
		BaseComponent: engine.NewBaseComponent(aligner),
		face:          basicfont.Face7x13,
		color:         c,
		text:          text,
	}
}

func (l *label) SetText(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.text = text
}

func (l *label) Render(s engine.Surface) {
	l.mu.Lock()
	text := l.text
	l.mu.Unlock()

	a := l.Area()
	engine.DrawCenteredString(s, text, l.face, l.color, a.X+a.W/2, a.Y+a.H/2)
}

// frost blurs whatever was drawn below its area.
type frost struct {
	engine.BaseComponent
	source    engine.PixelSource
	bounds    func() engine.Resolution
	intensity int
}

func (f *frost) Render(s engine.Surface) {
	a := f.Area()
	r := image.Rect(int(a.X), int(a.Y), int(a.X+a.W), int(a.Y+a.H))
	engine.BlurRect(s, f.source, f.bounds(), f.intensity, r)
}

// panel fills its area with a solid color.
type panel struct {
	engine.BaseComponent
	swatch *image.RGBA
}

func newPanel(aligner engine.Rect, c color.RGBA) *panel {
	swatch := image.NewRGBA(image.Rect(0, 0, 1, 1))
	swatch.SetRGBA(0, 0, c)
	return &panel{BaseComponent: engine.NewBaseComponent(aligner), swatch: swatch}
}

func (p *panel) Render(s engine.Surface) {
	a := p.Area()
	s.DrawImage(p.swatch, a.X, a.Y, a.W, a.H)
}
