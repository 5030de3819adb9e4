package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// SchedulerStats provides statistics about both loops.
type SchedulerStats struct {
	Running         bool
	TotalExecutions int64
	Loops           []LoopStats
}

// LoopStats provides pacing and execution statistics for a single loop.
type LoopStats struct {
	Name           string
	Rate           int
	Interval       time.Duration
	LastSecond     int // cycles completed during the last diagnostics second
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// Scheduler runs the update and render loops side by side. Each loop runs its
// payload, then sleeps for 1000/rate milliseconds; pacing is best effort and
// slow payloads stretch the cycle.
type Scheduler struct {
	update *loop
	render *loop
	gate   *gate
	log    *zap.Logger

	running atomic.Bool
	done    chan struct{}
	wg      sync.WaitGroup

	mu       sync.Mutex
	started  bool
	stopped  bool
	diagStop chan struct{}
}

// NewScheduler creates a scheduler that calls update once per tick and render
// once per frame. after, if non-nil, runs on the update goroutine between
// ticks, outside the pause gate.
func NewScheduler(tickRate, frameRate int, update, render, after func(), log *zap.Logger) (*Scheduler, error) {
	if _, err := IntervalFor(tickRate); err != nil {
		return nil, err
	}
	if _, err := IntervalFor(frameRate); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	s := &Scheduler{
		update: newLoop("update", tickRate, update),
		render: newLoop("render", frameRate, render),
		gate:   newGate(),
		log:    log,
		done:   make(chan struct{}),
	}
	s.update.after = after
	return s, nil
}

// Start launches both loops. A scheduler runs at most once.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrStopped
	}
	if s.started {
		return ErrRunning
	}
	s.started = true
	s.running.Store(true)

	s.wg.Add(2)
	go s.run(s.update)
	go s.run(s.render)

	s.log.Info("scheduler started",
		zap.Int("tick_rate", int(s.update.rate.Load())),
		zap.Int("frame_rate", int(s.render.rate.Load())))
	return nil
}

// Stop clears the running flag and blocks until every loop has returned.
// Calling it from inside a payload deadlocks.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	first := !s.stopped
	if first {
		s.stopped = true
		s.diagStop = nil
		s.running.Store(false)
		s.gate.close()
		close(s.done)
	}
	s.mu.Unlock()

	s.wg.Wait()
	if first {
		s.log.Info("scheduler stopped")
	}
}

func (s *Scheduler) Running() bool {
	return s.running.Load()
}

// Done is closed once Stop has been called.
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

func (s *Scheduler) run(l *loop) {
	defer s.wg.Done()

	timer := time.NewTimer(l.currentInterval())
	defer timer.Stop()

	for s.running.Load() {
		if !s.gate.enter() {
			return
		}
		start := time.Now()
		l.payload()
		l.record(time.Since(start))
		s.gate.exit()

		if l.after != nil {
			l.after()
		}

		timer.Reset(l.currentInterval())
		select {
		case <-s.done:
			return
		case <-timer.C:
		}
	}
}

// Pause blocks until no payload is running and holds both loops until Resume.
func (s *Scheduler) Pause() {
	s.gate.pause()
}

func (s *Scheduler) Resume() {
	s.gate.resume()
}

func (s *Scheduler) Paused() bool {
	return s.gate.isPaused()
}

// Enter and Exit bracket work done outside the loops, such as a host paint
// pass, that must not overlap a pause. Enter reports false while paused.
func (s *Scheduler) Enter() bool {
	return s.gate.tryEnter()
}

func (s *Scheduler) Exit() {
	s.gate.exit()
}

func (s *Scheduler) SetTickRate(rate int) error {
	if err := s.update.setRate(rate); err != nil {
		return err
	}
	s.log.Debug("tick rate changed", zap.Int("rate", rate), zap.Duration("interval", s.update.currentInterval()))
	return nil
}

func (s *Scheduler) SetFrameRate(rate int) error {
	if err := s.render.setRate(rate); err != nil {
		return err
	}
	s.log.Debug("frame rate changed", zap.Int("rate", rate), zap.Duration("interval", s.render.currentInterval()))
	return nil
}

func (s *Scheduler) TickRate() int                { return int(s.update.rate.Load()) }
func (s *Scheduler) FrameRate() int               { return int(s.render.rate.Load()) }
func (s *Scheduler) TickInterval() time.Duration  { return s.update.currentInterval() }
func (s *Scheduler) FrameInterval() time.Duration { return s.render.currentInterval() }

// DebugTPS returns the ticks completed during the last diagnostics second.
func (s *Scheduler) DebugTPS() int { return int(s.update.sampled.Load()) }

// DebugFPS returns the frames completed during the last diagnostics second.
func (s *Scheduler) DebugFPS() int { return int(s.render.sampled.Load()) }

// SetDiagnostics starts or stops the once-per-second sampling of the loop
// counters. The samples never influence pacing.
func (s *Scheduler) SetDiagnostics(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped || enabled == (s.diagStop != nil) {
		return
	}
	if !enabled {
		close(s.diagStop)
		s.diagStop = nil
		return
	}

	stop := make(chan struct{})
	s.diagStop = stop
	s.update.count.Store(0)
	s.render.count.Store(0)

	s.wg.Add(1)
	go s.diagnose(stop)
}

func (s *Scheduler) Diagnostics() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.diagStop != nil
}

func (s *Scheduler) diagnose(stop <-chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-stop:
			return
		case <-ticker.C:
			tps := s.update.sample()
			fps := s.render.sample()
			s.log.Debug("diagnostics", zap.Int64("tps", tps), zap.Int64("fps", fps))
		}
	}
}

// GetStats returns statistics about loop execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		Running: s.Running(),
		Loops:   []LoopStats{s.update.snapshot(), s.render.snapshot()},
	}
	for _, l := range stats.Loops {
		stats.TotalExecutions += l.ExecutionCount
	}
	return stats
}
