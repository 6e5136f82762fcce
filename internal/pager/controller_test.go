package pager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher records every request and lets the test deliver callbacks
// synchronously, standing in for the owning context.
type fakeFetcher struct {
	requests []request
}

type request struct {
	page int
	cb   Callbacks[string]
}

func (f *fakeFetcher) Fetch(page int, cb Callbacks[string]) {
	f.requests = append(f.requests, request{page: page, cb: cb})
}

func (f *fakeFetcher) last(t *testing.T) request {
	t.Helper()
	require.NotEmpty(t, f.requests, "no fetch issued")
	return f.requests[len(f.requests)-1]
}

func succeed(r request, items ...string) {
	r.cb.OnStart()
	r.cb.OnItems(items)
	r.cb.OnComplete()
}

func TestStartFetchesFirstPage(t *testing.T) {
	f := &fakeFetcher{}
	c := New[string](f)

	c.Start()

	require.Len(t, f.requests, 1)
	assert.Equal(t, 0, f.requests[0].page)
	assert.True(t, c.Busy())

	succeed(f.last(t), "bulbasaur", "ivysaur")

	state := c.State()
	assert.False(t, state.Busy)
	assert.Equal(t, 0, state.Cursor)
	assert.Equal(t, []string{"bulbasaur", "ivysaur"}, state.Items)
}

func TestAdvanceIncrementsCursorByOne(t *testing.T) {
	f := &fakeFetcher{}
	c := New[string](f)

	for want := 1; want <= 5; want++ {
		c.Advance()
		assert.Equal(t, want, c.Cursor())
		assert.Equal(t, want, f.last(t).page)
		succeed(f.last(t), "x")
	}
	assert.Len(t, f.requests, 5)
}

func TestAdvanceWhileBusyIsNoOp(t *testing.T) {
	f := &fakeFetcher{}
	c := New[string](f)

	var published int
	c.Subscribe(func(State[string]) { published++ })

	c.Advance()
	before := c.State()
	publishedBefore := published

	c.Advance()
	c.Advance()

	assert.Len(t, f.requests, 1, "no duplicate fetch while busy")
	assert.Equal(t, before, c.State())
	assert.Equal(t, publishedBefore, published, "no state change published")
}

func TestAdvanceClearsPreviousError(t *testing.T) {
	f := &fakeFetcher{}
	c := New[string](f)

	c.Advance()
	f.last(t).cb.OnStart()
	f.last(t).cb.OnError("boom")
	require.Equal(t, "boom", c.State().ErrorMessage)

	c.Advance()
	assert.Empty(t, c.State().ErrorMessage)
	assert.Equal(t, 2, c.Cursor())
}

func TestErrorKeepsItemsAndClearsBusy(t *testing.T) {
	f := &fakeFetcher{}
	c := New[string](f)

	c.Start()
	succeed(f.last(t), "a", "b")

	c.Advance()
	r := f.last(t)
	r.cb.OnStart()
	r.cb.OnError("network down")
	r.cb.OnComplete()

	state := c.State()
	assert.False(t, state.Busy)
	assert.True(t, state.HasError())
	assert.Equal(t, "network down", state.ErrorMessage)
	assert.Equal(t, []string{"a", "b"}, state.Items)

	// Allowed again once busy clears
	c.Advance()
	assert.Len(t, f.requests, 3)
}

func TestOnStartIsIdempotent(t *testing.T) {
	f := &fakeFetcher{}
	c := New[string](f)

	var published int
	c.Subscribe(func(State[string]) { published++ })

	c.Advance()
	n := published
	f.last(t).cb.OnStart()
	f.last(t).cb.OnStart()

	assert.True(t, c.Busy())
	assert.Equal(t, n, published)
}

func TestSupersededFetchIsIgnored(t *testing.T) {
	f := &fakeFetcher{}
	c := New[string](f)

	c.Start()
	first := f.last(t)

	c.Reload()
	second := f.last(t)

	c.Reload()
	third := f.last(t)

	// First resolves late: must not touch items or busy
	succeed(first, "stale")
	assert.True(t, c.Busy())
	assert.Empty(t, c.State().Items)

	// Second resolves late as well, including an error
	second.cb.OnStart()
	second.cb.OnError("late failure")
	second.cb.OnComplete()
	assert.True(t, c.Busy())
	assert.Empty(t, c.State().ErrorMessage)

	succeed(third, "fresh")
	state := c.State()
	assert.False(t, state.Busy)
	assert.Equal(t, []string{"fresh"}, state.Items)
}

func TestLateResultDoesNotOverwriteNewerResult(t *testing.T) {
	f := &fakeFetcher{}
	c := New[string](f)

	c.Start()
	old := f.last(t)

	c.Reload()
	succeed(f.last(t), "new")

	succeed(old, "old")
	assert.Equal(t, []string{"new"}, c.State().Items)
	assert.False(t, c.Busy())
}

func TestReloadResetsCursor(t *testing.T) {
	f := &fakeFetcher{}
	c := New[string](f)

	c.Advance()
	succeed(f.last(t), "a")
	c.Advance()
	succeed(f.last(t), "a", "b")
	require.Equal(t, 2, c.Cursor())

	c.Reload()
	assert.Equal(t, 0, c.Cursor())
	assert.Equal(t, 0, f.last(t).page)
	assert.True(t, c.Busy())
}

func TestSnapshotsAreCopies(t *testing.T) {
	f := &fakeFetcher{}
	c := New[string](f)

	var seen State[string]
	c.Subscribe(func(s State[string]) { seen = s })

	c.Start()
	succeed(f.last(t), "a", "b")

	seen.Items[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, c.State().Items)

	src := []string{"x"}
	c.Reload()
	r := f.last(t)
	r.cb.OnItems(src)
	src[0] = "mutated"
	assert.Equal(t, []string{"x"}, c.State().Items)
}

func TestUnsubscribe(t *testing.T) {
	f := &fakeFetcher{}
	c := New[string](f)

	var a, b int
	unsubA := c.Subscribe(func(State[string]) { a++ })
	c.Subscribe(func(State[string]) { b++ })

	c.Start()
	unsubA()
	succeed(f.last(t), "x")

	assert.Equal(t, 1, a)
	assert.Greater(t, b, a)
}

func TestFetcherFunc(t *testing.T) {
	var pages []int
	c := New[int](FetcherFunc[int](func(page int, cb Callbacks[int]) {
		pages = append(pages, page)
		cb.OnStart()
		cb.OnItems([]int{page})
		cb.OnComplete()
	}))

	c.Start()
	c.Advance()
	c.Advance()

	assert.Equal(t, []int{0, 1, 2}, pages)
	assert.Equal(t, []int{2}, c.State().Items)
	assert.False(t, c.Busy())
}
