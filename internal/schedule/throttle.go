package schedule

import (
	"sync"
	"time"
)

// Throttler runs at most one call per interval. The first call runs
// immediately; calls arriving before the interval elapses are dropped, not
// queued.
type Throttler struct {
	mu      sync.Mutex
	limit   time.Duration
	clock   Clock
	until   time.Time
	started bool
}

// NewThrottler creates a Throttler with the given interval.
func NewThrottler(limit time.Duration, opts ...Option) *Throttler {
	o := buildOptions(opts)
	return &Throttler{limit: limit, clock: o.clock}
}

// Call runs fn on the caller's goroutine unless the throttle window is open.
// It reports whether fn ran.
func (t *Throttler) Call(fn func()) bool {
	t.mu.Lock()
	now := t.clock.Now()
	if t.started && now.Before(t.until) {
		t.mu.Unlock()
		return false
	}
	t.started = true
	t.until = now.Add(t.limit)
	t.mu.Unlock()

	fn()
	return true
}

// Reset reopens the throttle so the next call runs immediately.
func (t *Throttler) Reset() {
	t.mu.Lock()
	t.started = false
	t.mu.Unlock()
}

// Throttle wraps fn with a Throttler. The returned func reports whether the
// call went through.
func Throttle[T any](limit time.Duration, fn func(T), opts ...Option) func(T) bool {
	t := NewThrottler(limit, opts...)
	return func(v T) bool {
		return t.Call(func() { fn(v) })
	}
}
