// Package schedule provides call-rate limiters (debounce and throttle) used by
// the interactive parts of the client to avoid redundant work.
//
// Time is read through the Clock interface so tests can drive timers
// deterministically with schedtest.FakeClock. Callbacks fired from timers run
// on the timer goroutine unless a dispatch function is supplied; the GUI
// passes fyne.Do so they land on the main loop.
package schedule

import "time"

// Timer is a pending callback that can be cancelled.
type Timer interface {
	// Stop prevents the timer from firing. It reports whether the call
	// stopped the timer, false if it already fired or was stopped.
	Stop() bool
}

// Clock is the time source used by the schedulers.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// System returns the wall clock backed by package time.
func System() Clock {
	return systemClock{}
}

// Option configures a Debouncer, a Throttler or any component built on Resolve.
type Option func(*options)

type options struct {
	clock    Clock
	dispatch func(func())
}

func buildOptions(opts []Option) options {
	o := options{
		clock:    System(),
		dispatch: func(fn func()) { fn() },
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock overrides the time source.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithDispatch routes deferred callbacks through fn, e.g. fyne.Do.
func WithDispatch(fn func(func())) Option {
	return func(o *options) {
		if fn != nil {
			o.dispatch = fn
		}
	}
}

// Resolve applies opts and returns the resulting clock and dispatch func.
// Other timer-driven components accept the same options through it.
func Resolve(opts ...Option) (Clock, func(func())) {
	o := buildOptions(opts)
	return o.clock, o.dispatch
}
