package app

import (
	"fmt"
	"sync"

	"Cryptbook/internal/progress"
)

// ProgressReporter receives updates from a job that knows its real progress.
type ProgressReporter interface {
	SetStatus(text string)
	SetProgress(fraction float32, info string)
	SetCanCancel(can bool)
	Update()
	IsCancelled() bool
}

// Ensure UIReporter implements ProgressReporter
var _ ProgressReporter = (*UIReporter)(nil)

// UIReporter forwards job updates to UI callbacks.
type UIReporter struct {
	mu sync.RWMutex

	// Callbacks for UI updates (set by the window)
	OnStatus    func(text string)
	OnProgress  func(fraction float32, info string)
	OnCanCancel func(can bool)
	OnUpdate    func()
	CheckCancel func() bool

	cancelled bool
}

// NewUIReporter creates a new UI reporter with the given callbacks.
func NewUIReporter(
	onStatus func(string),
	onProgress func(float32, string),
	onCanCancel func(bool),
	onUpdate func(),
	checkCancel func() bool,
) *UIReporter {
	return &UIReporter{
		OnStatus:    onStatus,
		OnProgress:  onProgress,
		OnCanCancel: onCanCancel,
		OnUpdate:    onUpdate,
		CheckCancel: checkCancel,
	}
}

// NewPresenterReporter routes real progress into p.SetPercent on ind, so a
// cosmetic animation on the same indicator is replaced by true values.
func NewPresenterReporter(p *progress.Presenter, ind progress.Indicator, onStatus func(string)) *UIReporter {
	return NewUIReporter(
		onStatus,
		func(fraction float32, _ string) {
			p.SetPercent(ind, float64(fraction)*100)
		},
		nil, nil, nil,
	)
}

func (r *UIReporter) SetStatus(text string) {
	if r.OnStatus != nil {
		r.OnStatus(text)
	}
}

func (r *UIReporter) SetProgress(fraction float32, info string) {
	if r.OnProgress != nil {
		r.OnProgress(fraction, info)
	}
}

func (r *UIReporter) SetCanCancel(can bool) {
	if r.OnCanCancel != nil {
		r.OnCanCancel(can)
	}
}

func (r *UIReporter) Update() {
	if r.OnUpdate != nil {
		r.OnUpdate()
	}
}

func (r *UIReporter) IsCancelled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.cancelled {
		return true
	}
	if r.CheckCancel != nil {
		return r.CheckCancel()
	}
	return false
}

// Cancel marks the job as cancelled.
func (r *UIReporter) Cancel() {
	r.mu.Lock()
	r.cancelled = true
	r.mu.Unlock()
}

// Reset clears the cancelled flag.
func (r *UIReporter) Reset() {
	r.mu.Lock()
	r.cancelled = false
	r.mu.Unlock()
}

// percentInfo formats a fraction the way progress labels show it.
func percentInfo(fraction float32) string {
	return fmt.Sprintf("%.2f%%", fraction*100)
}
