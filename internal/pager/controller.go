// Package pager owns the page cursor, busy flag and latest error of a
// paginated list, and applies fetch results with switch-to-latest semantics.
//
// A Controller is owned by a single execution context. Start, Advance and
// Reload must be called from that context, and the Fetcher must deliver every
// callback back onto it. Nothing here blocks.
package pager

import (
	"log/slog"
	"slices"
)

// State is a published snapshot of the fetch state. Items is a copy and may
// be retained by observers.
type State[T any] struct {
	Cursor       int
	Busy         bool
	ErrorMessage string
	Items        []T
}

// HasError reports whether the last fetch failed
func (s State[T]) HasError() bool {
	return s.ErrorMessage != ""
}

// Callbacks receive the lifecycle of one fetch request. Calls for a request
// that has since been superseded are ignored.
type Callbacks[T any] struct {
	OnStart    func()
	OnItems    func(items []T)
	OnComplete func()
	OnError    func(message string)
}

// Fetcher is the fetch capability consumed by the controller. Fetch must not
// block; results are reported through cb on the controller's context.
type Fetcher[T any] interface {
	Fetch(page int, cb Callbacks[T])
}

// FetcherFunc adapts a function to the Fetcher interface
type FetcherFunc[T any] func(page int, cb Callbacks[T])

// Fetch calls f(page, cb)
func (f FetcherFunc[T]) Fetch(page int, cb Callbacks[T]) {
	f(page, cb)
}

// Option configures a Controller
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for lifecycle tracing
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Controller drives paginated fetching for a single list
type Controller[T any] struct {
	fetcher Fetcher[T]
	logger  *slog.Logger

	cursor       int
	busy         bool
	errorMessage string
	items        []T

	// token identifies the latest issued request; callbacks carrying an
	// older token are dropped
	token uint64

	nextListenerID int
	listeners      []listener[T]
}

type listener[T any] struct {
	id int
	fn func(State[T])
}

// New creates a controller around the given fetch capability
func New[T any](fetcher Fetcher[T], opts ...Option) *Controller[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &Controller[T]{
		fetcher: fetcher,
		logger:  o.logger,
	}
}

// Start issues the fetch for the current cursor. It is a no-op while busy.
func (c *Controller[T]) Start() {
	if c.busy {
		return
	}
	c.busy = true
	c.errorMessage = ""
	c.issue()
}

// Advance requests the next page. While busy it does nothing at all.
func (c *Controller[T]) Advance() {
	if c.busy {
		c.logger.Debug("advance ignored while busy", "cursor", c.cursor)
		return
	}
	c.busy = true
	c.errorMessage = ""
	c.cursor++
	c.issue()
}

// Reload resets the cursor to the first page and fetches it, superseding any
// request still in flight.
func (c *Controller[T]) Reload() {
	c.busy = true
	c.errorMessage = ""
	c.cursor = 0
	c.issue()
}

// Cursor returns the current page cursor
func (c *Controller[T]) Cursor() int {
	return c.cursor
}

// Busy reports whether a fetch is outstanding
func (c *Controller[T]) Busy() bool {
	return c.busy
}

// State returns a snapshot of the current state
func (c *Controller[T]) State() State[T] {
	return State[T]{
		Cursor:       c.cursor,
		Busy:         c.busy,
		ErrorMessage: c.errorMessage,
		Items:        slices.Clone(c.items),
	}
}

// Subscribe registers fn to receive a snapshot after every state change.
// The returned function removes the registration.
func (c *Controller[T]) Subscribe(fn func(State[T])) (unsubscribe func()) {
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners = append(c.listeners, listener[T]{id: id, fn: fn})
	return func() {
		c.listeners = slices.DeleteFunc(c.listeners, func(l listener[T]) bool {
			return l.id == id
		})
	}
}

func (c *Controller[T]) issue() {
	c.token++
	token := c.token
	page := c.cursor

	c.logger.Debug("fetch issued", "page", page, "token", token)
	c.publish()

	c.fetcher.Fetch(page, Callbacks[T]{
		OnStart: func() {
			if !c.current(token) {
				return
			}
			if c.busy {
				return
			}
			c.busy = true
			c.publish()
		},
		OnItems: func(items []T) {
			if !c.current(token) {
				c.logger.Debug("dropping superseded result", "page", page, "token", token)
				return
			}
			c.items = slices.Clone(items)
			c.publish()
		},
		OnComplete: func() {
			if !c.current(token) {
				return
			}
			if !c.busy {
				return
			}
			c.busy = false
			c.publish()
		},
		OnError: func(message string) {
			if !c.current(token) {
				c.logger.Debug("dropping superseded error", "page", page, "token", token)
				return
			}
			c.logger.Warn("fetch failed", "page", page, "error", message)
			c.busy = false
			c.errorMessage = message
			c.publish()
		},
	})
}

func (c *Controller[T]) current(token uint64) bool {
	return token == c.token
}

func (c *Controller[T]) publish() {
	// Each observer gets its own copy of Items
	for _, l := range slices.Clone(c.listeners) {
		l.fn(c.State())
	}
}
