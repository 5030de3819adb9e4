package engine

import (
	"sync"

	"github.com/kamstrup/intmap"
)

// InputState tracks which keys and mouse buttons are currently held, built
// from press and release edges. Duplicate edges are no-ops.
type InputState struct {
	mu      sync.RWMutex
	keys    *intmap.Map[Key, struct{}]
	buttons *intmap.Map[MouseButton, struct{}]
}

func NewInputState() *InputState {
	return &InputState{
		keys:    intmap.New[Key, struct{}](16),
		buttons: intmap.New[MouseButton, struct{}](8),
	}
}

// KeyDown records a press edge and reports whether the key was newly pressed.
func (in *InputState) KeyDown(k Key) bool {
	in.mu.Lock()
	defer in.mu.Unlock()

	if _, held := in.keys.Get(k); held {
		return false
	}
	in.keys.Put(k, struct{}{})
	return true
}

// KeyUp records a release edge and reports whether the key was held.
func (in *InputState) KeyUp(k Key) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.keys.Del(k)
}

func (in *InputState) MouseDown(b MouseButton) bool {
	in.mu.Lock()
	defer in.mu.Unlock()

	if _, held := in.buttons.Get(b); held {
		return false
	}
	in.buttons.Put(b, struct{}{})
	return true
}

func (in *InputState) MouseUp(b MouseButton) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.buttons.Del(b)
}

func (in *InputState) IsKeyDown(k Key) bool {
	in.mu.RLock()
	defer in.mu.RUnlock()

	_, held := in.keys.Get(k)
	return held
}

func (in *InputState) IsButtonDown(b MouseButton) bool {
	in.mu.RLock()
	defer in.mu.RUnlock()

	_, held := in.buttons.Get(b)
	return held
}

// HeldKeys returns the number of keys currently held.
func (in *InputState) HeldKeys() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.keys.Len()
}

func (in *InputState) HeldButtons() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.buttons.Len()
}
