package ui

import (
	"sync"
	"time"

	"Cryptbook/internal/schedule"

	"fyne.io/fyne/v2"
)

// animationFrames drives progress animations from Fyne's animation loop,
// so every step runs on the UI goroutine at the display's frame rate.
type animationFrames struct {
	clock schedule.Clock
}

func newAnimationFrames(clock schedule.Clock) *animationFrames {
	return &animationFrames{clock: clock}
}

func (f *animationFrames) Start(step func(now time.Time) bool) func() {
	var (
		once sync.Once
		anim *fyne.Animation
	)
	stop := func() {
		once.Do(func() { anim.Stop() })
	}
	anim = fyne.NewAnimation(time.Second, func(float32) {
		if !step(f.clock.Now()) {
			stop()
		}
	})
	anim.Curve = fyne.AnimationLinear
	anim.RepeatCount = fyne.AnimationRepeatForever
	anim.Start()
	return stop
}
