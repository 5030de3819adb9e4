package engine

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

const second = 1000 // milliseconds

// IntervalFor converts a rate per second into the sleep between two cycles,
// truncated to whole milliseconds.
func IntervalFor(rate int) (time.Duration, error) {
	if rate <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidRate, rate)
	}
	return time.Duration(second/rate) * time.Millisecond, nil
}

// loop holds the pacing and bookkeeping of one scheduler loop.
type loop struct {
	name     string
	payload  func()
	after    func()
	rate     atomic.Int64
	interval atomic.Int64
	count    atomic.Int64 // cycles since the last diagnostics sample
	sampled  atomic.Int64 // cycles during the last full second

	mu    sync.Mutex
	stats loopStatsInternal
}

type loopStatsInternal struct {
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func newLoop(name string, rate int, payload func()) *loop {
	l := &loop{name: name, payload: payload}
	l.stats.minDuration = time.Duration(1<<63 - 1)
	if err := l.setRate(rate); err != nil {
		panic(err)
	}
	return l
}

func (l *loop) setRate(rate int) error {
	interval, err := IntervalFor(rate)
	if err != nil {
		return err
	}
	l.rate.Store(int64(rate))
	l.interval.Store(int64(interval))
	return nil
}

func (l *loop) currentInterval() time.Duration {
	return time.Duration(l.interval.Load())
}

func (l *loop) record(duration time.Duration) {
	l.count.Add(1)

	l.mu.Lock()
	defer l.mu.Unlock()

	stats := &l.stats
	stats.executionCount++
	stats.lastDuration = duration
	stats.totalDuration += duration
	if duration < stats.minDuration {
		stats.minDuration = duration
	}
	if duration > stats.maxDuration {
		stats.maxDuration = duration
	}
}

func (l *loop) sample() int64 {
	n := l.count.Swap(0)
	l.sampled.Store(n)
	return n
}

func (l *loop) snapshot() LoopStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	internal := l.stats
	avg := time.Duration(0)
	minDuration := internal.minDuration
	if internal.executionCount > 0 {
		avg = internal.totalDuration / time.Duration(internal.executionCount)
	} else {
		minDuration = 0
	}

	return LoopStats{
		Name:           l.name,
		Rate:           int(l.rate.Load()),
		Interval:       l.currentInterval(),
		LastSecond:     int(l.sampled.Load()),
		ExecutionCount: internal.executionCount,
		MinDuration:    minDuration,
		MaxDuration:    internal.maxDuration,
		AvgDuration:    avg,
		LastDuration:   internal.lastDuration,
		TotalDuration:  internal.totalDuration,
	}
}
