package main

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand/v2"
	"sync"

	"github.com/plus3/tickloop/engine"
	"go.uber.org/zap"
)

var (
	white  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	yellow = color.RGBA{R: 0xff, G: 0xd7, A: 0xff}
	shade  = color.RGBA{R: 0x20, G: 0x28, B: 0x40, A: 0xff}
)

// keyEdges turns polled key state into press edges. It is only used from
// the update loop.
type keyEdges struct {
	e    *engine.Engine
	prev map[engine.Key]bool
}

func newKeyEdges(e *engine.Engine, keys ...engine.Key) *keyEdges {
	k := &keyEdges{e: e, prev: make(map[engine.Key]bool)}
	// keys already held when the overlay appears do not count as presses
	for _, key := range keys {
		k.prev[key] = e.IsKeyDown(key)
	}
	return k
}

func (k *keyEdges) pressed(key engine.Key) bool {
	down := k.e.IsKeyDown(key)
	was := k.prev[key]
	k.prev[key] = down
	return down && !was
}

type menuOverlay struct {
	engine.GUI
	game *game
	keys *keyEdges
	best *label
}

func newMenuOverlay(g *game) *menuOverlay {
	m := &menuOverlay{
		game: g,
		best: newLabel("", engine.Rect{X: 0.2, Y: 0.6, W: 0.6, H: 0.08}, white),
	}
	m.Add(newPanel(engine.Rect{X: 0.2, Y: 0.25, W: 0.6, H: 0.5}, shade))
	m.Add(newLabel("tickloop", engine.Rect{X: 0.2, Y: 0.3, W: 0.6, H: 0.1}, yellow))
	m.Add(&frost{
		BaseComponent: engine.NewBaseComponent(engine.Rect{X: 0.3, Y: 0.45, W: 0.4, H: 0.08}),
		source:        g.e,
		bounds:        g.e.Resolution,
		intensity:     1,
	})
	m.Add(newLabel("Enter to play, Escape to quit", engine.Rect{X: 0.2, Y: 0.45, W: 0.6, H: 0.08}, white))
	m.Add(m.best)
	return m
}

func (m *menuOverlay) Initialize() {
	m.keys = newKeyEdges(m.game.e, engine.KeyEnter, engine.KeyEscape)
	m.best.SetText(fmt.Sprintf("best score %d", m.game.best()))
}

func (m *menuOverlay) Update() {
	switch {
	case m.keys.pressed(engine.KeyEnter):
		m.game.e.DisplayLater(newPlayOverlay(m.game))
	case m.keys.pressed(engine.KeyEscape):
		m.game.e.RequestClose()
	}
}

type playOverlay struct {
	engine.GUI
	game   *game
	keys   *keyEdges
	player *actor
	coin   *actor
	hud    *label
	score  int
}

func newPlayOverlay(g *game) *playOverlay {
	res := g.e.Resolution()
	p := &playOverlay{
		game:   g,
		player: newActor(g.hero, float64(res.Width)/2, float64(res.Height)/2, 48),
		coin:   newActor(g.coin, 0, 0, 32),
		hud:    newLabel("", engine.Rect{X: 0, Y: 0, W: 1, H: 0.06}, white),
	}
	p.placeCoin(res)
	p.Add(p.coin)
	p.Add(p.player)
	p.Add(p.hud)
	return p
}

func (p *playOverlay) Initialize() {
	p.keys = newKeyEdges(p.game.e, engine.KeyEscape)
	if music, ok := p.game.e.Resources().Music("theme"); ok {
		music.Play()
	}
}

func (p *playOverlay) Dispose() {
	if music, ok := p.game.e.Resources().Music("theme"); ok {
		music.Stop()
	}
	p.game.record(p.score)
}

const speed = 6

func (p *playOverlay) Update() {
	e := p.game.e
	if p.keys.pressed(engine.KeyEscape) {
		e.DisplayLater(newMenuOverlay(p.game))
		return
	}

	var dx, dy float64
	if e.IsKeyDown(engine.KeyLeft) || e.IsKeyDown(engine.KeyA) {
		dx -= speed
	}
	if e.IsKeyDown(engine.KeyRight) || e.IsKeyDown(engine.KeyD) {
		dx += speed
	}
	if e.IsKeyDown(engine.KeyUp) || e.IsKeyDown(engine.KeyW) {
		dy -= speed
	}
	if e.IsKeyDown(engine.KeyDown) || e.IsKeyDown(engine.KeyS) {
		dy += speed
	}
	res := p.Resolution()
	p.player.move(dx, dy, res)

	if p.player.overlaps(p.coin) {
		p.score++
		p.placeCoin(res)
		if err := e.PlaySound("pickup"); err != nil && !errors.Is(err, engine.ErrNotFound) {
			p.game.log.Warn("pickup sound failed", zap.Error(err))
		}
	}

	p.hud.SetText(fmt.Sprintf("score %d   tps %d   fps %d", p.score, e.DebugTPS(), e.DebugFPS()))
}

func (p *playOverlay) placeCoin(res engine.Resolution) {
	size := p.coin.size
	p.coin.moveTo(
		rand.Float64()*(float64(res.Width)-size),
		rand.Float64()*(float64(res.Height)-size),
	)
}

// actor is a sprite at a position in engine coordinates.
type actor struct {
	engine.BaseComponent
	sprite *engine.Sprite
	size   float64

	mu   sync.Mutex
	x, y float64
}

func newActor(sprite *engine.Sprite, x, y, size float64) *actor {
	return &actor{BaseComponent: engine.NewBaseComponent(engine.Rect{}), sprite: sprite, size: size, x: x, y: y}
}

func (a *actor) position() (float64, float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.x, a.y
}

func (a *actor) moveTo(x, y float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.x, a.y = x, y
}

func (a *actor) move(dx, dy float64, res engine.Resolution) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.x = min(max(a.x+dx, 0), float64(res.Width)-a.size)
	a.y = min(max(a.y+dy, 0), float64(res.Height)-a.size)
}

func (a *actor) overlaps(o *actor) bool {
	ax, ay := a.position()
	ox, oy := o.position()
	return ax < ox+o.size && ox < ax+a.size && ay < oy+o.size && oy < ay+a.size
}

func (a *actor) Render(s engine.Surface) {
	x, y := a.position()
	a.sprite.Render(s, x, y, a.size, a.size)
}
