package termhost

import (
	"github.com/gdamore/tcell/v2"
	"github.com/plus3/tickloop/engine"
)

var keyMap = map[tcell.Key]engine.Key{
	tcell.KeyUp:         engine.KeyUp,
	tcell.KeyDown:       engine.KeyDown,
	tcell.KeyLeft:       engine.KeyLeft,
	tcell.KeyRight:      engine.KeyRight,
	tcell.KeyEnter:      engine.KeyEnter,
	tcell.KeyEscape:     engine.KeyEscape,
	tcell.KeyTab:        engine.KeyTab,
	tcell.KeyBackspace:  engine.KeyBackspace,
	tcell.KeyBackspace2: engine.KeyBackspace,
	tcell.KeyDelete:     engine.KeyDelete,
	tcell.KeyF1:         engine.KeyF1,
	tcell.KeyF2:         engine.KeyF2,
	tcell.KeyF3:         engine.KeyF3,
	tcell.KeyF4:         engine.KeyF4,
	tcell.KeyF5:         engine.KeyF5,
	tcell.KeyF6:         engine.KeyF6,
	tcell.KeyF7:         engine.KeyF7,
	tcell.KeyF8:         engine.KeyF8,
	tcell.KeyF9:         engine.KeyF9,
	tcell.KeyF10:        engine.KeyF10,
	tcell.KeyF11:        engine.KeyF11,
	tcell.KeyF12:        engine.KeyF12,
}

// buttons lists the tcell buttons the host tracks, in engine order.
var buttons = []struct {
	mask   tcell.ButtonMask
	button engine.MouseButton
}{
	{tcell.Button1, engine.MouseLeft},
	{tcell.Button2, engine.MouseRight},
	{tcell.Button3, engine.MouseMiddle},
	{tcell.Button4, engine.MouseBack},
	{tcell.Button5, engine.MouseForward},
}

// TranslateKey maps a key event to an engine key.
func TranslateKey(ev *tcell.EventKey) (engine.Key, bool) {
	if ev.Key() == tcell.KeyRune {
		return engine.KeyForRune(ev.Rune())
	}
	k, ok := keyMap[ev.Key()]
	return k, ok
}
