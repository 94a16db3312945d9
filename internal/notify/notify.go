// Package notify is the alert surface of the client. Alerts carry a
// severity, are listed newest first and disappear on their own after a fixed
// interval unless dismissed earlier.
package notify

import (
	"strings"
	"sync"
	"time"

	"Cryptbook/internal/event"
	"Cryptbook/internal/log"
	"Cryptbook/internal/schedule"
)

// DefaultTimeout is how long an alert stays visible.
const DefaultTimeout = 5 * time.Second

// Severity of an alert.
type Severity string

const (
	Success Severity = "success"
	Error   Severity = "error"
	Warning Severity = "warning"
	Info    Severity = "info"
)

// ParseSeverity maps s to a Severity. Anything unrecognised is Info.
func ParseSeverity(s string) Severity {
	switch sev := Severity(strings.ToLower(strings.TrimSpace(s))); sev {
	case Success, Error, Warning:
		return sev
	default:
		return Info
	}
}

// Notifier is anything that can show an alert.
type Notifier interface {
	ShowAlert(message string, severity Severity)
}

// Alert is one visible message.
type Alert struct {
	ID       uint64
	Message  string
	Severity Severity
	Shown    time.Time
}

// Center keeps the visible alerts and expires them.
type Center struct {
	mu       sync.Mutex
	timeout  time.Duration
	clock    schedule.Clock
	dispatch func(func())
	nextID   uint64
	alerts   []Alert
	timers   map[uint64]schedule.Timer
	changed  event.Registry[[]Alert]
}

// NewCenter creates an empty Center. A non-positive timeout uses
// DefaultTimeout.
func NewCenter(timeout time.Duration, opts ...schedule.Option) *Center {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	clock, dispatch := schedule.Resolve(opts...)
	return &Center{
		timeout:  timeout,
		clock:    clock,
		dispatch: dispatch,
		timers:   make(map[uint64]schedule.Timer),
	}
}

// ShowAlert implements Notifier.
func (c *Center) ShowAlert(message string, severity Severity) {
	c.Show(message, severity)
}

// Show adds an alert on top of the list and arms its expiry.
func (c *Center) Show(message string, severity Severity) Alert {
	severity = ParseSeverity(string(severity))

	c.mu.Lock()
	c.nextID++
	a := Alert{ID: c.nextID, Message: message, Severity: severity, Shown: c.clock.Now()}
	c.alerts = append([]Alert{a}, c.alerts...)
	id := a.ID
	c.timers[id] = c.clock.AfterFunc(c.timeout, func() {
		c.dispatch(func() { c.expire(id) })
	})
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	log.Debug("alert shown", log.String("severity", string(severity)), log.String("message", message))
	c.changed.Emit(snapshot)
	return a
}

// Dismiss removes the alert with id. It reports whether it was still visible.
func (c *Center) Dismiss(id uint64) bool {
	c.mu.Lock()
	if t, ok := c.timers[id]; ok {
		t.Stop()
	}
	removed := c.removeLocked(id)
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	if removed {
		c.changed.Emit(snapshot)
	}
	return removed
}

func (c *Center) expire(id uint64) {
	c.mu.Lock()
	removed := c.removeLocked(id)
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	if removed {
		c.changed.Emit(snapshot)
	}
}

// Clear dismisses every alert.
func (c *Center) Clear() {
	c.mu.Lock()
	for _, t := range c.timers {
		t.Stop()
	}
	had := len(c.alerts) > 0
	c.alerts = nil
	c.timers = make(map[uint64]schedule.Timer)
	c.mu.Unlock()

	if had {
		c.changed.Emit(nil)
	}
}

// Alerts returns the visible alerts, newest first.
func (c *Center) Alerts() []Alert {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// OnChange registers fn for every change of the visible list.
func (c *Center) OnChange(fn func([]Alert)) *event.Subscription {
	return c.changed.Subscribe(fn)
}

func (c *Center) removeLocked(id uint64) bool {
	delete(c.timers, id)
	for i, a := range c.alerts {
		if a.ID == id {
			c.alerts = append(c.alerts[:i:i], c.alerts[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Center) snapshotLocked() []Alert {
	out := make([]Alert, len(c.alerts))
	copy(out, c.alerts)
	return out
}
