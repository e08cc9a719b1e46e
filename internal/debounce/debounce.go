// Package debounce provides a save-on-type primitive: an action scheduled
// after a quiet interval of input, rescheduled on every new trigger, and
// flushable immediately (Enter key, field blur).
//
// Thread Safety: all methods are safe for concurrent use.
package debounce

import (
	"sync"
	"time"
)

// Debouncer schedules a function to run after a fixed interval of
// inactivity. Each Trigger cancels and reschedules the pending run.
//
// The zero value is not usable - use New.
type Debouncer struct {
	interval time.Duration
	fn       func()

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// New creates a Debouncer that runs fn after interval of quiet.
func New(interval time.Duration, fn func()) *Debouncer {
	return &Debouncer{interval: interval, fn: fn}
}

// Trigger schedules (or reschedules) the pending run. Called on every
// keystroke; the function fires only after the input goes quiet.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.run)
}

// Flush cancels any pending timer and runs the function immediately if a
// run was pending. A no-op when nothing is scheduled.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.stopped || d.timer == nil {
		d.mu.Unlock()
		return
	}
	pending := d.timer.Stop()
	d.timer = nil
	d.mu.Unlock()

	if pending {
		d.fn()
	}
}

// Stop cancels any pending run and prevents future ones. Idempotent.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// run executes the debounced function once the timer fires.
func (d *Debouncer) run() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()
	d.fn()
}
