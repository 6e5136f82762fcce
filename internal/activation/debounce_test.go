package activation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestFirstActivationAccepted(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	d := New(300*time.Millisecond, WithClock(clock.Now))

	assert.True(t, d.Allow())
}

func TestActivationsWithinWindowCollapse(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	d := New(300*time.Millisecond, WithClock(clock.Now))

	emitted := 0
	for i := 0; i < 2; i++ {
		if d.Allow() {
			emitted++
		}
		clock.Advance(100 * time.Millisecond)
	}

	assert.Equal(t, 1, emitted)
}

func TestWindowBoundary(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    bool
	}{
		{name: "inside window", elapsed: 100 * time.Millisecond, want: false},
		{name: "exactly at window", elapsed: 300 * time.Millisecond, want: false},
		{name: "past window", elapsed: 301 * time.Millisecond, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &fakeClock{now: time.Unix(1000, 0)}
			d := New(300*time.Millisecond, WithClock(clock.Now))

			assert.True(t, d.Allow())
			clock.Advance(tt.elapsed)
			assert.Equal(t, tt.want, d.Allow())
		})
	}
}

func TestRejectedActivationDoesNotExtendWindow(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	d := New(300*time.Millisecond, WithClock(clock.Now))

	assert.True(t, d.Allow())
	clock.Advance(200 * time.Millisecond)
	assert.False(t, d.Allow())
	clock.Advance(150 * time.Millisecond)
	assert.True(t, d.Allow(), "measured from the last accepted activation")
}

func TestZeroWindowAcceptsEverything(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	d := New(0, WithClock(clock.Now))

	assert.True(t, d.Allow())
	clock.Advance(time.Nanosecond)
	assert.True(t, d.Allow())
}

func TestReset(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	d := New(time.Second, WithClock(clock.Now))

	assert.True(t, d.Allow())
	assert.False(t, d.Allow())
	d.Reset()
	assert.True(t, d.Allow())
}
