package components

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToastsExpire(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	toasts := NewToasts(time.Second)
	toasts.SetClock(func() time.Time { return now })

	toasts.Add("offline", ToastError)
	assert.True(t, toasts.HasToasts())

	now = now.Add(999 * time.Millisecond)
	toasts.Tick()
	assert.True(t, toasts.HasToasts())

	now = now.Add(time.Millisecond)
	toasts.Tick()
	assert.False(t, toasts.HasToasts())
	assert.Empty(t, toasts.View(80))
}

func TestToastsKeepNewest(t *testing.T) {
	toasts := NewToasts(0)
	for _, m := range []string{"a", "b", "c", "d"} {
		toasts.Add(m, ToastInfo)
	}

	assert.Equal(t, []string{"b", "c", "d"}, toasts.Messages())
	assert.Contains(t, toasts.View(40), "d")
}
