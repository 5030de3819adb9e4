package engine

import (
	"fmt"
	"strings"
)

// Key identifies a keyboard key independently of the host backend.
type Key int

const (
	KeyUnknown Key = iota
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyDelete
	KeyShift
	KeyControl
	KeyAlt
	keyCount
)

// MouseButton identifies a mouse button independently of the host backend.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
	MouseBack
	MouseForward
)

var namedKeys = map[Key]string{
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeySpace:     "Space",
	KeyEnter:     "Enter",
	KeyEscape:    "Escape",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyShift:     "Shift",
	KeyControl:   "Control",
	KeyAlt:       "Alt",
}

func (k Key) String() string {
	switch {
	case k >= KeyA && k <= KeyZ:
		return string(rune('A' + int(k-KeyA)))
	case k >= Key0 && k <= Key9:
		return string(rune('0' + int(k-Key0)))
	case k >= KeyF1 && k <= KeyF12:
		return fmt.Sprintf("F%d", int(k-KeyF1)+1)
	}
	if name, ok := namedKeys[k]; ok {
		return name
	}
	return "Unknown"
}

// ParseKey resolves a key name as produced by Key.String, case-insensitively.
func ParseKey(name string) (Key, error) {
	for k := KeyA; k < keyCount; k++ {
		if strings.EqualFold(k.String(), name) {
			return k, nil
		}
	}
	return KeyUnknown, fmt.Errorf("engine: unknown key %q", name)
}

// KeyForRune maps printable characters to their key, ignoring case.
func KeyForRune(r rune) (Key, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return KeyA + Key(r-'a'), true
	case r >= 'A' && r <= 'Z':
		return KeyA + Key(r-'A'), true
	case r >= '0' && r <= '9':
		return Key0 + Key(r-'0'), true
	case r == ' ':
		return KeySpace, true
	}
	return KeyUnknown, false
}
