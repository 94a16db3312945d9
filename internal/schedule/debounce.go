package schedule

import (
	"sync"
	"time"
)

// Debouncer runs only the last function passed to Call once no further call
// has arrived for the wait period. Earlier pending calls are discarded.
type Debouncer struct {
	mu       sync.Mutex
	wait     time.Duration
	clock    Clock
	dispatch func(func())
	timer    Timer
	gen      uint64 // bumped on every Call/Cancel so stale timers no-op
}

// NewDebouncer creates a Debouncer with the given quiet window.
func NewDebouncer(wait time.Duration, opts ...Option) *Debouncer {
	o := buildOptions(opts)
	return &Debouncer{
		wait:     wait,
		clock:    o.clock,
		dispatch: o.dispatch,
	}
}

// Call schedules fn after the quiet window, replacing any pending call.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.wait, func() {
		d.mu.Lock()
		if gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		d.dispatch(fn)
	})
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

// Pending reports whether a call is waiting for the quiet window to elapse.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Debounce wraps fn so that bursts of calls collapse into one call carrying
// the last argument. The returned cancel func drops a pending call.
func Debounce[T any](wait time.Duration, fn func(T), opts ...Option) (call func(T), cancel func()) {
	d := NewDebouncer(wait, opts...)
	call = func(v T) {
		d.Call(func() { fn(v) })
	}
	return call, d.Cancel
}
