package library

import (
	"sync"
	"time"
)

// Timer is the controllable handle behind a scheduled flush. Stop reports
// whether the timer was still pending, matching *time.Timer.
type Timer interface {
	Stop() bool
}

// TimerFactory creates a timer that fires fn once after d. Tests inject a
// factory with a virtual clock; production uses time.AfterFunc.
type TimerFactory func(d time.Duration, fn func()) Timer

func afterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// debouncer coalesces bursts of mutations into a single deferred flush: each
// Arm cancels any pending timer and starts a fresh quiet period. It cancels
// pending flushes only, never one already in flight.
type debouncer struct {
	mu       sync.Mutex
	delay    time.Duration
	newTimer TimerFactory
	fn       func()
	pending  Timer
}

func newDebouncer(delay time.Duration, factory TimerFactory, fn func()) *debouncer {
	if factory == nil {
		factory = afterFunc
	}
	return &debouncer{delay: delay, newTimer: factory, fn: fn}
}

// Arm schedules fn after the quiet period, replacing any pending schedule.
func (d *debouncer) Arm() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.Stop()
	}
	d.pending = d.newTimer(d.delay, d.fire)
}

// Cancel stops a pending flush. Reports whether one was pending.
func (d *debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending == nil {
		return false
	}
	stopped := d.pending.Stop()
	d.pending = nil
	return stopped
}

func (d *debouncer) fire() {
	d.mu.Lock()
	d.pending = nil
	d.mu.Unlock()
	d.fn()
}
