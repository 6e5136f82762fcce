package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/pokedex/internal/tui/styles"
)

// ToastLevel classifies toast severity.
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastError
)

const (
	maxToasts       = 3
	defaultToastTTL = 4 * time.Second
)

type toast struct {
	message string
	level   ToastLevel
	expiry  time.Time
}

// Toasts is a queue of auto-dismissing notifications.
type Toasts struct {
	queue []toast
	ttl   time.Duration
	now   func() time.Time
}

// NewToasts creates an empty queue whose toasts live for ttl
func NewToasts(ttl time.Duration) *Toasts {
	if ttl <= 0 {
		ttl = defaultToastTTL
	}
	return &Toasts{ttl: ttl, now: time.Now}
}

// SetClock replaces the time source used for expiry
func (t *Toasts) SetClock(now func() time.Time) {
	t.now = now
}

// Add enqueues a toast. Oldest toasts are dropped past maxToasts.
func (t *Toasts) Add(message string, level ToastLevel) {
	t.queue = append(t.queue, toast{
		message: message,
		level:   level,
		expiry:  t.now().Add(t.ttl),
	})
	if len(t.queue) > maxToasts {
		t.queue = t.queue[len(t.queue)-maxToasts:]
	}
}

// Tick prunes expired toasts. Call on every TickMsg.
func (t *Toasts) Tick() {
	now := t.now()
	alive := t.queue[:0]
	for _, q := range t.queue {
		if now.Before(q.expiry) {
			alive = append(alive, q)
		}
	}
	t.queue = alive
}

// HasToasts reports whether any toasts are visible.
func (t *Toasts) HasToasts() bool {
	return len(t.queue) > 0
}

// Messages returns the visible messages, oldest first
func (t *Toasts) Messages() []string {
	out := make([]string, len(t.queue))
	for i, q := range t.queue {
		out[i] = q.message
	}
	return out
}

// View renders visible toasts right-aligned within width
func (t *Toasts) View(width int) string {
	if len(t.queue) == 0 {
		return ""
	}

	var lines []string
	for _, q := range t.queue {
		style := styles.ToastInfoStyle
		icon := "i"
		if q.level == ToastError {
			style = styles.ToastErrorStyle
			icon = "✘"
		}
		rendered := style.MaxWidth(width).Render(icon + " " + q.message)
		lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Right, rendered))
	}
	return strings.Join(lines, "\n")
}
