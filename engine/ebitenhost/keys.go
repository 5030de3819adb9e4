package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tickloop/engine"
)

var keyMap = map[ebiten.Key]engine.Key{
	ebiten.KeyA: engine.KeyA,
	ebiten.KeyB: engine.KeyB,
	ebiten.KeyC: engine.KeyC,
	ebiten.KeyD: engine.KeyD,
	ebiten.KeyE: engine.KeyE,
	ebiten.KeyF: engine.KeyF,
	ebiten.KeyG: engine.KeyG,
	ebiten.KeyH: engine.KeyH,
	ebiten.KeyI: engine.KeyI,
	ebiten.KeyJ: engine.KeyJ,
	ebiten.KeyK: engine.KeyK,
	ebiten.KeyL: engine.KeyL,
	ebiten.KeyM: engine.KeyM,
	ebiten.KeyN: engine.KeyN,
	ebiten.KeyO: engine.KeyO,
	ebiten.KeyP: engine.KeyP,
	ebiten.KeyQ: engine.KeyQ,
	ebiten.KeyR: engine.KeyR,
	ebiten.KeyS: engine.KeyS,
	ebiten.KeyT: engine.KeyT,
	ebiten.KeyU: engine.KeyU,
	ebiten.KeyV: engine.KeyV,
	ebiten.KeyW: engine.KeyW,
	ebiten.KeyX: engine.KeyX,
	ebiten.KeyY: engine.KeyY,
	ebiten.KeyZ: engine.KeyZ,

	ebiten.KeyDigit0: engine.Key0,
	ebiten.KeyDigit1: engine.Key1,
	ebiten.KeyDigit2: engine.Key2,
	ebiten.KeyDigit3: engine.Key3,
	ebiten.KeyDigit4: engine.Key4,
	ebiten.KeyDigit5: engine.Key5,
	ebiten.KeyDigit6: engine.Key6,
	ebiten.KeyDigit7: engine.Key7,
	ebiten.KeyDigit8: engine.Key8,
	ebiten.KeyDigit9: engine.Key9,

	ebiten.KeyF1:  engine.KeyF1,
	ebiten.KeyF2:  engine.KeyF2,
	ebiten.KeyF3:  engine.KeyF3,
	ebiten.KeyF4:  engine.KeyF4,
	ebiten.KeyF5:  engine.KeyF5,
	ebiten.KeyF6:  engine.KeyF6,
	ebiten.KeyF7:  engine.KeyF7,
	ebiten.KeyF8:  engine.KeyF8,
	ebiten.KeyF9:  engine.KeyF9,
	ebiten.KeyF10: engine.KeyF10,
	ebiten.KeyF11: engine.KeyF11,
	ebiten.KeyF12: engine.KeyF12,

	ebiten.KeyArrowUp:    engine.KeyUp,
	ebiten.KeyArrowDown:  engine.KeyDown,
	ebiten.KeyArrowLeft:  engine.KeyLeft,
	ebiten.KeyArrowRight: engine.KeyRight,

	ebiten.KeySpace:        engine.KeySpace,
	ebiten.KeyEnter:        engine.KeyEnter,
	ebiten.KeyNumpadEnter:  engine.KeyEnter,
	ebiten.KeyEscape:       engine.KeyEscape,
	ebiten.KeyTab:          engine.KeyTab,
	ebiten.KeyBackspace:    engine.KeyBackspace,
	ebiten.KeyDelete:       engine.KeyDelete,
	ebiten.KeyShiftLeft:    engine.KeyShift,
	ebiten.KeyShiftRight:   engine.KeyShift,
	ebiten.KeyControlLeft:  engine.KeyControl,
	ebiten.KeyControlRight: engine.KeyControl,
	ebiten.KeyAltLeft:      engine.KeyAlt,
	ebiten.KeyAltRight:     engine.KeyAlt,
}

var buttonMap = map[ebiten.MouseButton]engine.MouseButton{
	ebiten.MouseButtonLeft:   engine.MouseLeft,
	ebiten.MouseButtonRight:  engine.MouseRight,
	ebiten.MouseButtonMiddle: engine.MouseMiddle,
	ebiten.MouseButton3:      engine.MouseBack,
	ebiten.MouseButton4:      engine.MouseForward,
}

// TranslateKey maps an ebiten key to an engine key. Unmapped keys return
// engine.KeyUnknown.
func TranslateKey(k ebiten.Key) engine.Key {
	if key, ok := keyMap[k]; ok {
		return key
	}
	return engine.KeyUnknown
}
