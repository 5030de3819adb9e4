package main

import (
	"errors"
	"image"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/plus3/tickloop/engine"
	"go.uber.org/zap"
)

const manifestFile = "assets.yaml"

// game holds what outlives a single overlay.
type game struct {
	e    *engine.Engine
	log  *zap.Logger
	hero *engine.Sprite
	coin *engine.Sprite

	mu        sync.Mutex
	bestScore int
}

func newGame(e *engine.Engine, log *zap.Logger) *game {
	return &game{e: e, log: log}
}

// loadAssets loads the workspace manifest when there is one and falls back
// to generated sprites for anything it does not provide.
func (g *game) loadAssets(workspace string) error {
	_, err := os.Stat(filepath.Join(workspace, manifestFile))
	switch {
	case err == nil:
		if err := g.e.LoadManifest(manifestFile); err != nil {
			return err
		}
		if err := g.e.LoadAllResources(); err != nil {
			return err
		}
		g.log.Info("manifest loaded", zap.Int("resources", g.e.Resources().Len()))
	case errors.Is(err, fs.ErrNotExist):
		g.log.Info("no manifest in workspace, using generated sprites", zap.String("workspace", workspace))
	default:
		return err
	}

	var ok bool
	if g.hero, ok = g.e.Resources().Sprite("hero"); !ok {
		g.hero = engine.NewSprite("hero", square(color.RGBA{R: 0x40, G: 0xa0, B: 0xff, A: 0xff}))
		g.e.AddResource(g.hero)
	}
	if g.coin, ok = g.e.Resources().Sprite("coin"); !ok {
		g.coin = engine.NewSprite("coin", coinStrip(6, 16))
		g.coin.SetAnimationSpeed(0.25)
		g.coin.SetAnimateOnUpdate(true)
		g.e.AddResource(g.coin)
	}
	return nil
}

func (g *game) record(score int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.bestScore = max(g.bestScore, score)
}

func (g *game) best() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.bestScore
}

func square(c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// coinStrip draws a coin spinning over frames: a disc whose width shrinks
// and grows again.
func coinStrip(frames, side int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, frames*side, side))
	r := float64(side) / 2
	for f := 0; f < frames; f++ {
		// 1 at the first frame, 0 at the middle, back to 1
		phase := 1 - 2*float64(min(f, frames-f))/float64(frames)
		rx := max(r*abs(phase), 1)
		for x := 0; x < side; x++ {
			for y := 0; y < side; y++ {
				dx := (float64(x) + 0.5 - r) / rx
				dy := (float64(y) + 0.5 - r) / r
				if dx*dx+dy*dy <= 1 {
					img.SetRGBA(f*side+x, y, yellow)
				}
			}
		}
	}
	return img
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
