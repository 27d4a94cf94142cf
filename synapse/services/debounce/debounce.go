// Package debounce holds at most one delayed task at a time. Scheduling a new
// task discards the pending one, so a burst of triggers collapses into a single
// run after the burst goes quiet.
package debounce

import (
	"sync"
	"time"
)

type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	gen   uint64

	// running counts tasks that have fired and not yet returned.
	running int
}

func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Schedule replaces any pending task with fn, to run after the quiet delay.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// Stop can lose the race against an already-fired timer.
		if gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.running++
		d.mu.Unlock()

		defer func() {
			d.mu.Lock()
			d.running--
			d.mu.Unlock()
		}()
		fn()
	})
}

// Cancel drops the pending task, if any. It reports whether one was pending.
// A task that has already started running is not interrupted.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	pending := d.timer != nil
	d.stopLocked()
	d.gen++
	return pending
}

func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Busy reports whether a task is pending or still running.
func (d *Debouncer) Busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil || d.running > 0
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
