package engine

import "sync"

// gate suspends loop payloads while the registry is restructured. Loops call
// enter/exit around every payload; pause waits until no payload is in flight
// and keeps new ones out until resume.
type gate struct {
	mu     sync.Mutex
	cond   *sync.Cond
	paused bool
	closed bool
	active int
}

func newGate() *gate {
	g := &gate{}
	g.cond = sync.NewCond(&g.mu)
	return g
}

// enter blocks while the gate is paused. It reports false once the gate is
// closed.
func (g *gate) enter() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	for g.paused && !g.closed {
		g.cond.Wait()
	}
	if g.closed {
		return false
	}
	g.active++
	return true
}

// tryEnter is enter without waiting.
func (g *gate) tryEnter() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.paused || g.closed {
		return false
	}
	g.active++
	return true
}

func (g *gate) exit() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.active--
	if g.active == 0 {
		g.cond.Broadcast()
	}
}

// pause must not be called from inside a payload: it would wait for itself.
func (g *gate) pause() {
	g.mu.Lock()
	defer g.mu.Unlock()

	// concurrent swaps take turns
	for g.paused {
		g.cond.Wait()
	}
	g.paused = true
	for g.active > 0 {
		g.cond.Wait()
	}
}

func (g *gate) resume() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.paused = false
	g.cond.Broadcast()
}

func (g *gate) isPaused() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.paused
}

func (g *gate) close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.closed = true
	g.cond.Broadcast()
}
