package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/tickloop/engine"
	"github.com/plus3/tickloop/engine/audio"
	"github.com/plus3/tickloop/engine/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestGame(t *testing.T) *game {
	t.Helper()
	cfg := config.Default().Engine
	cfg.Workspace = t.TempDir()
	e, err := engine.New(cfg, engine.WithLogger(zap.NewNop()), engine.WithAudio(audio.Nop{}))
	require.NoError(t, err)
	return newGame(e, zap.NewNop())
}

func TestGameBestScore(t *testing.T) {
	g := newTestGame(t)
	assert.Equal(t, 0, g.best())

	g.record(4)
	g.record(2)
	assert.Equal(t, 4, g.best())
}

func TestLoadAssetsWithoutManifest(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.loadAssets(g.e.Resources().Workspace().Root))

	require.NotNil(t, g.hero)
	require.NotNil(t, g.coin)
	assert.Equal(t, 1, g.hero.FrameCount())
	assert.Equal(t, 6, g.coin.FrameCount())
	assert.True(t, g.coin.AnimateOnUpdate())

	found, ok := g.e.Resources().Sprite("coin")
	require.True(t, ok)
	assert.Same(t, g.coin, found)
}

func TestCoinStrip(t *testing.T) {
	img := coinStrip(6, 16)
	assert.Equal(t, 96, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())

	// every frame is drawn through its center
	for f := 0; f < 6; f++ {
		_, _, _, a := img.At(f*16+8, 8).RGBA()
		assert.NotZero(t, a, "frame %d", f)
	}
	assert.Equal(t, color.RGBA{}, img.At(0, 0))
}

func TestExecuteReportsFailures(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "demo.toml")
	data := fmt.Sprintf("[engine]\nworkspace = %q\n\n[audio]\nenabled = false\n\n[logging]\nlevel = \"error\"\n", dir)
	require.NoError(t, os.WriteFile(cfgPath, []byte(data), 0o644))

	assert.Equal(t, 1, execute([]string{"-config", cfgPath, "-host", "printer"}))
	assert.Equal(t, 1, execute([]string{"-config", filepath.Join(dir, "missing.toml")}))
	assert.Equal(t, 2, execute([]string{"-no-such-flag"}))
}
