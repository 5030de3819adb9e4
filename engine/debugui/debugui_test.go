package debugui

import (
	"image"
	"testing"

	"github.com/plus3/tickloop/engine"
	"github.com/plus3/tickloop/engine/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory(t *testing.T) {
	h := NewHistory(3)
	assert.Equal(t, float32(0), h.Average())

	h.Push(3)
	h.Push(6)
	assert.Equal(t, float32(4.5), h.Average())

	h.Push(9)
	h.Push(12) // overwrites 3
	assert.Equal(t, float32(9), h.Average())
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, float32(12), *h.First())
}

func TestFilterAndSortResources(t *testing.T) {
	rows := []ResourceInfo{
		{Kind: engine.KindSound, Name: "jump", File: "sounds/jump.wav"},
		{Kind: engine.KindSprite, Name: "Hero", File: "sprites/hero.png"},
		{Kind: engine.KindMusic, Name: "theme", File: "music/theme.mp3"},
	}

	sortResources(rows, 1, true)
	assert.Equal(t, []string{"Hero", "jump", "theme"}, names(rows))

	sortResources(rows, 0, true)
	assert.Equal(t, []string{"Hero", "jump", "theme"}, names(rows))

	sortResources(rows, 2, false)
	assert.Equal(t, []string{"Hero", "jump", "theme"}, names(rows))

	assert.Equal(t, []string{"Hero"}, names(filterResources(rows, "HER")))
	assert.Equal(t, []string{"jump"}, names(filterResources(rows, "sound")))
	assert.Equal(t, []string{"theme"}, names(filterResources(rows, ".mp3")))
	assert.Len(t, filterResources(rows, ""), 3)
}

func names(rows []ResourceInfo) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func TestDescribeResources(t *testing.T) {
	sprite := engine.NewSprite("coin", image.NewRGBA(image.Rect(0, 0, 8, 2)))
	sprite.SetAnimationSpeed(1)
	sprite.AdvanceAnimation()

	infos := describeResources([]engine.Resource{sprite})
	require.Len(t, infos, 1)
	assert.Equal(t, "coin", infos[0].Name)
	assert.Equal(t, "frame 2/4 speed 1.00", infos[0].Detail)
}

type overlay struct{ engine.GUI }

type loose struct{ n int }

func (*loose) Update()               {}
func (*loose) Render(engine.Surface) {}

func TestDescribeRegistry(t *testing.T) {
	e, err := engine.New(config.Default().Engine)
	require.NoError(t, err)

	l := &loose{}
	o := &overlay{}
	e.Add(l)
	e.Display(o)

	infos := describeRegistry(e.Registry().Snapshot(), e.Overlay())
	require.Len(t, infos, 2)
	assert.Equal(t, "*debugui.loose", infos[0].Type)
	assert.False(t, infos[0].Overlay)
	assert.Equal(t, "*debugui.overlay", infos[1].Type)
	assert.True(t, infos[1].Overlay)
}
