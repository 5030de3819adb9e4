package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/tickloop/engine/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 24, cfg.Engine.TickRate)
	assert.Equal(t, 60, cfg.Engine.FrameRate)
	assert.Equal(t, 1280, cfg.Engine.Width)
	assert.Equal(t, 720, cfg.Engine.Height)
	assert.Equal(t, "F11", cfg.Engine.FullscreenKey)
	assert.Equal(t, 100*time.Millisecond, cfg.Audio.Buffer)
}

func TestParse(t *testing.T) {
	t.Run("overrides keep unspecified defaults", func(t *testing.T) {
		cfg, err := config.Parse([]byte(`
[engine]
tick_rate = 30
background = "#102030"

[audio]
buffer = "50ms"
`))
		require.NoError(t, err)
		assert.Equal(t, 30, cfg.Engine.TickRate)
		assert.Equal(t, 60, cfg.Engine.FrameRate)
		assert.Equal(t, 50*time.Millisecond, cfg.Audio.Buffer)

		bg, err := cfg.Engine.BackgroundColor()
		require.NoError(t, err)
		assert.Equal(t, uint8(0x10), bg.R)
		assert.Equal(t, uint8(0x20), bg.G)
		assert.Equal(t, uint8(0x30), bg.B)
		assert.Equal(t, uint8(0xff), bg.A)
	})

	t.Run("non-positive rates are rejected", func(t *testing.T) {
		_, err := config.Parse([]byte("[engine]\ntick_rate = 0\n"))
		assert.Error(t, err)

		_, err = config.Parse([]byte("[engine]\nframe_rate = -5\n"))
		assert.Error(t, err)
	})

	t.Run("malformed background is rejected", func(t *testing.T) {
		_, err := config.Parse([]byte("[engine]\nbackground = \"blue\"\n"))
		assert.Error(t, err)
	})

	t.Run("syntax errors surface", func(t *testing.T) {
		_, err := config.Parse([]byte("[engine\n"))
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tickloop.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window]\ntitle = \"demo\"\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Window.Title)

	_, err = config.Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		log, err := config.NewLogger(config.LoggingConfig{Level: "debug", Format: format})
		require.NoError(t, err)
		assert.NotNil(t, log)
	}

	log, err := config.NewLogger(config.LoggingConfig{Level: "nonsense"})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(0))
}
