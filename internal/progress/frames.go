package progress

import (
	"sync"
	"time"

	"Cryptbook/internal/schedule"
)

// FrameSource calls step once per frame with the frame time until step
// returns false or the returned stop func is called.
type FrameSource interface {
	Start(step func(now time.Time) bool) (stop func())
}

// DefaultFrameInterval is roughly one frame at 60 Hz.
const DefaultFrameInterval = 16 * time.Millisecond

// TickerFrames produces frames from a clock at a fixed interval.
type TickerFrames struct {
	interval time.Duration
	clock    schedule.Clock
	dispatch func(func())
}

// NewTickerFrames creates a frame source ticking every interval.
func NewTickerFrames(interval time.Duration, opts ...schedule.Option) *TickerFrames {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	clock, dispatch := schedule.Resolve(opts...)
	return &TickerFrames{interval: interval, clock: clock, dispatch: dispatch}
}

func (f *TickerFrames) Start(step func(now time.Time) bool) func() {
	var (
		mu      sync.Mutex
		stopped bool
		timer   schedule.Timer
	)

	var tick func()
	tick = func() {
		f.dispatch(func() {
			mu.Lock()
			if stopped {
				mu.Unlock()
				return
			}
			mu.Unlock()

			more := step(f.clock.Now())

			mu.Lock()
			defer mu.Unlock()
			if !more {
				stopped = true
				return
			}
			if !stopped {
				timer = f.clock.AfterFunc(f.interval, tick)
			}
		})
	}

	mu.Lock()
	timer = f.clock.AfterFunc(f.interval, tick)
	mu.Unlock()

	return func() {
		mu.Lock()
		defer mu.Unlock()
		stopped = true
		if timer != nil {
			timer.Stop()
		}
	}
}
