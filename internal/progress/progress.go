// Package progress animates progress indicators. An animation is a pure
// function of elapsed time sampled once per frame; it stops by itself once
// the target is reached. Real progress goes through SetPercent instead.
package progress

import (
	"sync"
	"time"

	"Cryptbook/internal/event"
	"Cryptbook/internal/log"
	"Cryptbook/internal/schedule"
)

// Defaults for AutoAnimate.
const (
	DefaultDelay    = 500 * time.Millisecond
	DefaultDuration = 2000 * time.Millisecond
)

// Indicator is a percentage display in [0, 100].
type Indicator interface {
	Value() float64
	SetValue(percent float64)
}

// Interpolate returns start + (target-start)*ratio where ratio is
// elapsed/duration clamped to [0, 1]. A non-positive duration jumps straight
// to the target.
func Interpolate(start, target float64, elapsed, duration time.Duration) (value, ratio float64) {
	if duration <= 0 {
		return target, 1
	}
	ratio = float64(elapsed) / float64(duration)
	ratio = min(max(ratio, 0), 1)
	if ratio == 1 {
		return target, 1
	}
	return start + (target-start)*ratio, ratio
}

// Value is an in-memory Indicator.
type Value struct {
	mu      sync.Mutex
	v       float64
	changed event.Registry[float64]
}

// NewValue creates an indicator reading percent.
func NewValue(percent float64) *Value {
	return &Value{v: percent}
}

func (v *Value) Value() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.v
}

func (v *Value) SetValue(percent float64) {
	v.mu.Lock()
	v.v = percent
	v.mu.Unlock()
	v.changed.Emit(percent)
}

// OnChange registers fn for every SetValue.
func (v *Value) OnChange(fn func(float64)) *event.Subscription {
	return v.changed.Subscribe(fn)
}

type animation struct {
	stop func()
}

// Presenter runs at most one animation per indicator.
type Presenter struct {
	frames   FrameSource
	clock    schedule.Clock
	dispatch func(func())

	// Delay and Duration configure AutoAnimate.
	Delay    time.Duration
	Duration time.Duration

	mu      sync.Mutex
	running map[Indicator]*animation
	pending map[Indicator]schedule.Timer
}

// NewPresenter creates a Presenter sampling on frames.
func NewPresenter(frames FrameSource, opts ...schedule.Option) *Presenter {
	clock, dispatch := schedule.Resolve(opts...)
	return &Presenter{
		frames:   frames,
		clock:    clock,
		dispatch: dispatch,
		Delay:    DefaultDelay,
		Duration: DefaultDuration,
		running:  make(map[Indicator]*animation),
		pending:  make(map[Indicator]schedule.Timer),
	}
}

// Animate moves ind from its current value to target over duration,
// replacing any animation already running on ind.
func (p *Presenter) Animate(ind Indicator, target float64, duration time.Duration) {
	p.Stop(ind)

	start := ind.Value()
	t0 := p.clock.Now()
	if duration <= 0 {
		ind.SetValue(target)
		return
	}

	a := &animation{}
	p.mu.Lock()
	p.running[ind] = a
	p.mu.Unlock()

	ind.SetValue(start)
	a.stop = p.frames.Start(func(now time.Time) bool {
		p.mu.Lock()
		current := p.running[ind] == a
		p.mu.Unlock()
		if !current {
			return false
		}

		value, ratio := Interpolate(start, target, now.Sub(t0), duration)
		ind.SetValue(value)
		if ratio < 1 {
			return true
		}

		p.mu.Lock()
		if p.running[ind] == a {
			delete(p.running, ind)
		}
		p.mu.Unlock()
		return false
	})
}

// AutoAnimate schedules a fill to 100 after p.Delay for every indicator that
// reads exactly 0 now. Indicators already showing progress are left alone.
// It returns how many indicators were scheduled.
func (p *Presenter) AutoAnimate(inds ...Indicator) int {
	n := 0
	for _, ind := range inds {
		if ind.Value() != 0 {
			continue
		}
		n++
		p.mu.Lock()
		if t, ok := p.pending[ind]; ok {
			t.Stop()
		}
		p.pending[ind] = p.clock.AfterFunc(p.Delay, func() {
			p.dispatch(func() {
				p.mu.Lock()
				delete(p.pending, ind)
				p.mu.Unlock()
				p.Animate(ind, 100, p.Duration)
			})
		})
		p.mu.Unlock()
	}
	log.Debug("progress auto animation", log.Int("indicators", len(inds)), log.Int("scheduled", n))
	return n
}

// SetPercent shows real progress on ind, cancelling any animation.
// Values are clamped to [0, 100].
func (p *Presenter) SetPercent(ind Indicator, percent float64) {
	p.Stop(ind)
	ind.SetValue(min(max(percent, 0), 100))
}

// Stop cancels a pending or running animation on ind.
func (p *Presenter) Stop(ind Indicator) {
	p.mu.Lock()
	a := p.running[ind]
	delete(p.running, ind)
	t := p.pending[ind]
	delete(p.pending, ind)
	p.mu.Unlock()

	if t != nil {
		t.Stop()
	}
	if a != nil && a.stop != nil {
		a.stop()
	}
}

// Running reports whether ind has an animation in flight.
func (p *Presenter) Running(ind Indicator) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.running[ind]
	return ok
}
