// Package activation suppresses rapid repeated row activations while a
// detail transition is still running.
package activation

import (
	"sync"
	"time"
)

// Debouncer accepts an activation only when more than window has elapsed
// since the last accepted one. The first activation is always accepted.
type Debouncer struct {
	window time.Duration
	clock  func() time.Time

	mu           sync.Mutex
	lastAccepted time.Time
	accepted     bool
}

// Option configures a Debouncer
type Option func(*Debouncer)

// WithClock overrides the time source (tests)
func WithClock(clock func() time.Time) Option {
	return func(d *Debouncer) {
		d.clock = clock
	}
}

// New creates a debouncer for the given window. A non-positive window
// accepts every activation.
func New(window time.Duration, opts ...Option) *Debouncer {
	d := &Debouncer{
		window: window,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Window returns the configured debounce window
func (d *Debouncer) Window() time.Duration {
	return d.window
}

// Allow reports whether an activation happening now should be honored, and
// records it if so. Rejected activations do not extend the window.
func (d *Debouncer) Allow() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.clock()
	if d.accepted && now.Sub(d.lastAccepted) <= d.window {
		return false
	}
	d.lastAccepted = now
	d.accepted = true
	return true
}

// Reset forgets the last accepted activation
func (d *Debouncer) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.accepted = false
	d.lastAccepted = time.Time{}
}
