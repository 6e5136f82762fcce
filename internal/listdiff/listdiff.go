// Package listdiff computes edit scripts between two versions of a keyed list
// so a display layer can redraw only the rows that changed.
//
// Two comparisons are kept apart: identity decides whether two values are
// the same logical row, equality decides whether that row's content changed.
package listdiff

import "fmt"

// OpKind identifies an edit operation
type OpKind int

const (
	OpRemove OpKind = iota
	OpMove
	OpInsert
	OpUpdate
)

func (k OpKind) String() string {
	switch k {
	case OpRemove:
		return "remove"
	case OpMove:
		return "move"
	case OpInsert:
		return "insert"
	case OpUpdate:
		return "update"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

// Op is a single edit. Indices refer to the list as it stands after every
// preceding op in the script has been applied.
//
//	Remove: delete the row at Index
//	Move:   take the row at From out, then reinsert it at To
//	Insert: insert Item at Index
//	Update: replace the content of the row at Index with Item
type Op[T any] struct {
	Kind  OpKind
	Index int
	From  int
	To    int
	Item  T
}

func (o Op[T]) String() string {
	switch o.Kind {
	case OpMove:
		return fmt.Sprintf("move(%d->%d)", o.From, o.To)
	default:
		return fmt.Sprintf("%s(%d)", o.Kind, o.Index)
	}
}

// Script is an ordered edit script: removals (descending), moves,
// insertions (ascending), then content updates at final positions.
type Script[T any] []Op[T]

// IsEmpty reports whether the two lists were identical
func (s Script[T]) IsEmpty() bool {
	return len(s) == 0
}

// Counts tallies operations by kind
type Counts struct {
	Removed  int
	Moved    int
	Inserted int
	Updated  int
}

// Counts returns the number of operations of each kind
func (s Script[T]) Counts() Counts {
	var c Counts
	for _, op := range s {
		switch op.Kind {
		case OpRemove:
			c.Removed++
		case OpMove:
			c.Moved++
		case OpInsert:
			c.Inserted++
		case OpUpdate:
			c.Updated++
		}
	}
	return c
}

// Changed returns the final indices of inserted and updated rows
func (s Script[T]) Changed() []int {
	var idx []int
	for _, op := range s {
		if op.Kind == OpInsert || op.Kind == OpUpdate {
			idx = append(idx, op.Index)
		}
	}
	return idx
}

// Compute returns the edit script turning before into after.
//
// Rows are paired by identity; when a key repeats, the k-th occurrence in
// before pairs with the k-th occurrence in after. Unpaired rows of before are
// removed and unpaired rows of after inserted. Paired rows outside the
// longest run that already keeps its relative order are moved. Paired rows
// whose content differs are reported as updates, never as remove+insert.
func Compute[T any, K comparable](before, after []T, identity func(T) K, equal func(a, b T) bool) Script[T] {
	// Pair rows in list order
	pending := make(map[K][]int, len(after))
	for j, item := range after {
		k := identity(item)
		pending[k] = append(pending[k], j)
	}
	target := make([]int, len(before)) // position in after for each row of before, -1 if gone
	partner := make([]int, len(after)) // position in before for each row of after, -1 if fresh
	matched := make([]bool, len(after))
	for j := range partner {
		partner[j] = -1
	}
	for i, item := range before {
		k := identity(item)
		if q := pending[k]; len(q) > 0 {
			target[i] = q[0]
			partner[q[0]] = i
			matched[q[0]] = true
			pending[k] = q[1:]
		} else {
			target[i] = -1
		}
	}

	var script Script[T]

	// Removals, back to front so earlier indices stay valid
	for i := len(before) - 1; i >= 0; i-- {
		if target[i] < 0 {
			script = append(script, Op[T]{Kind: OpRemove, Index: i})
		}
	}

	// work holds the position in after of every surviving row, in current order
	work := make([]int, 0, len(before))
	for _, t := range target {
		if t >= 0 {
			work = append(work, t)
		}
	}

	// Rows on the longest increasing run stay put
	placed := make([]bool, len(after))
	for _, p := range lis(work) {
		placed[work[p]] = true
	}

	// Move every other surviving row right after its nearest placed
	// predecessor
	for j := range after {
		if !matched[j] || placed[j] {
			continue
		}
		from := indexOf(work, j)
		to := 0
		for p := j - 1; p >= 0; p-- {
			if matched[p] && placed[p] {
				pp := indexOf(work, p)
				if from < pp {
					to = pp
				} else {
					to = pp + 1
				}
				break
			}
		}
		work = moveInt(work, from, to)
		placed[j] = true
		if from != to {
			script = append(script, Op[T]{Kind: OpMove, From: from, To: to})
		}
	}

	// Survivors are now in final order; insert the rest front to back
	for j, item := range after {
		if !matched[j] {
			script = append(script, Op[T]{Kind: OpInsert, Index: j, Item: item})
		}
	}

	// Content updates at final positions
	for j, item := range after {
		if i := partner[j]; i >= 0 && !equal(before[i], item) {
			script = append(script, Op[T]{Kind: OpUpdate, Index: j, Item: item})
		}
	}

	return script
}

// Apply returns a new slice with script applied to list. list is not modified.
func Apply[T any](list []T, script Script[T]) []T {
	out := make([]T, len(list), len(list)+len(script))
	copy(out, list)
	for _, op := range script {
		switch op.Kind {
		case OpRemove:
			out = append(out[:op.Index], out[op.Index+1:]...)
		case OpMove:
			item := out[op.From]
			out = append(out[:op.From], out[op.From+1:]...)
			out = insertAt(out, op.To, item)
		case OpInsert:
			out = insertAt(out, op.Index, op.Item)
		case OpUpdate:
			out[op.Index] = op.Item
		}
	}
	return out
}

func insertAt[T any](s []T, i int, v T) []T {
	var zero T
	s = append(s, zero)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

func moveInt(s []int, from, to int) []int {
	v := s[from]
	s = append(s[:from], s[from+1:]...)
	return insertAt(s, to, v)
}

func indexOf(s []int, v int) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

// lis returns positions in seq forming a longest strictly increasing
// subsequence (patience sorting, O(n log n)).
func lis(seq []int) []int {
	if len(seq) == 0 {
		return nil
	}
	tails := make([]int, 0, len(seq)) // positions of smallest tail per length
	prev := make([]int, len(seq))
	for i, v := range seq {
		lo, hi := 0, len(tails)
		for lo < hi {
			mid := (lo + hi) / 2
			if seq[tails[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo > 0 {
			prev[i] = tails[lo-1]
		} else {
			prev[i] = -1
		}
		if lo == len(tails) {
			tails = append(tails, i)
		} else {
			tails[lo] = i
		}
	}
	out := make([]int, len(tails))
	for i, k := len(tails)-1, tails[len(tails)-1]; i >= 0; i, k = i-1, prev[k] {
		out[i] = k
	}
	return out
}
