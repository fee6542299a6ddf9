// Package debounce coalesces rapid mutations of one signal (search text, a
// filter fingerprint) into a single downstream trigger once the signal has
// been quiet for a configured duration. Each independent signal gets its
// own Debouncer; instances never share timers.
package debounce

import (
	"sync"
	"time"
)

// Debouncer emits the latest value passed to Update after no further
// update has arrived for the quiet period. Safe for concurrent use.
type Debouncer[T any] struct {
	quiet time.Duration
	emit  func(T)

	// emitMu is held across the timer callback's check-and-emit and is
	// always acquired before mu. Stop takes it too, so a callback that
	// already passed its check finishes emitting before Stop returns.
	emitMu sync.Mutex

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	stopped bool
}

// New creates a debouncer that calls emit with the latest value once the
// signal has been quiet for the given duration.
func New[T any](quiet time.Duration, emit func(T)) *Debouncer[T] {
	return &Debouncer[T]{quiet: quiet, emit: emit}
}

// Update records a new value and restarts the quiet period. Only the value
// from the last Update before the period elapses is emitted.
func (d *Debouncer[T]) Update(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.gen++
	gen := d.gen

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, func() {
		d.emitMu.Lock()
		defer d.emitMu.Unlock()

		d.mu.Lock()
		// A newer update or a Stop may have raced with the timer
		// firing; a superseded or cancelled emission must not leak.
		if d.stopped || gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.mu.Unlock()
		d.emit(value)
	})
}

// Stop cancels any pending emission. No value is emitted after Stop
// returns, even if the timer already fired concurrently.
func (d *Debouncer[T]) Stop() {
	d.emitMu.Lock()
	defer d.emitMu.Unlock()

	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
