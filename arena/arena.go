// Package arena implements the generational handle pool described in doc.go.
package arena

import (
	"errors"
	"fmt"
)

// Sentinel errors for arena construction and allocation.
var (
	// ErrBadCapacity indicates a non-positive capacity was requested.
	ErrBadCapacity = errors.New("arena: capacity must be positive")

	// ErrArenaFull indicates no free slot remains. Capacity is chosen at
	// start-up to bound worst-case system size, so callers treat this as a
	// fatal configuration error, not a retryable one.
	ErrArenaFull = errors.New("arena: capacity exhausted")
)

// Handle identifies one live record inside one Arena[T]. The zero Handle is
// "unset" (IsNil reports true) and never refers to a live record.
//
// Handles are comparable and freely copyable; they carry no ownership. A
// handle kept past Free of its record goes stale: the arena detects the
// generation mismatch and panics on dereference.
type Handle[T any] struct {
	idx int32
	gen uint32
}

// Index returns the slot index of h, or -1 for the unset handle. It is the
// key used by dense per-slot side tables (randset, adjacency caches).
func (h Handle[T]) Index() int {
	if h.gen == 0 {
		return -1
	}
	return int(h.idx)
}

// IsNil reports whether h is the unset handle.
func (h Handle[T]) IsNil() bool { return h.gen == 0 }

// String renders h for diagnostics, e.g. "#42@3" or "nil".
func (h Handle[T]) String() string {
	if h.gen == 0 {
		return "nil"
	}
	return fmt.Sprintf("#%d@%d", h.idx, h.gen)
}

// slot is one storage cell. next holds the cell's own index while live and
// the bit-complement of the following free index while free (the classic
// intrusive free list: no extra bookkeeping memory).
type slot[T any] struct {
	val  T
	next int32
	gen  uint32
}

// Arena owns contiguous storage for one record type T, referenced only by
// Handle[T]. It is not safe for concurrent use.
type Arena[T any] struct {
	slots []slot[T]
	first int32 // index of the first free slot; == len(slots) when full
	live  int
}

// New allocates an arena with room for capacity records.
// Returns ErrBadCapacity when capacity < 1.
func New[T any](capacity int) (*Arena[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadCapacity, capacity)
	}
	a := &Arena[T]{slots: make([]slot[T], capacity)}
	for i := range a.slots {
		a.slots[i].next = ^int32(i + 1) // chain every slot onto the free list
		a.slots[i].gen = 1
	}
	return a, nil
}

// Allocate claims a free slot, zeroes its record and returns its handle.
// O(1). Returns ErrArenaFull when every slot is live.
func (a *Arena[T]) Allocate() (Handle[T], error) {
	if int(a.first) >= len(a.slots) {
		return Handle[T]{}, fmt.Errorf("%w: capacity %d", ErrArenaFull, len(a.slots))
	}
	i := a.first
	s := &a.slots[i]
	if s.next >= 0 {
		panic("arena: free-list corruption (allocating a live slot)")
	}
	a.first = ^s.next
	s.next = i
	var zero T
	s.val = zero
	a.live++
	return Handle[T]{idx: i, gen: s.gen}, nil
}

// Free returns h's slot to the free list and invalidates every copy of h by
// bumping the slot generation. O(1). Freeing a dead or stale handle is a
// programming error and panics.
func (a *Arena[T]) Free(h Handle[T]) {
	s := a.check(h)
	s.gen++
	if s.gen == 0 { // generation wrapped; 0 is reserved for the unset handle
		s.gen = 1
	}
	s.next = ^a.first
	a.first = h.idx
	a.live--
}

// Get dereferences h. O(1). The returned pointer is valid until the record
// is freed; it must not be retained across mutations of the arena. Panics on
// an unset, out-of-range, dead or stale handle.
func (a *Arena[T]) Get(h Handle[T]) *T {
	return &a.check(h).val
}

// Live reports whether h currently refers to a live record.
func (a *Arena[T]) Live(h Handle[T]) bool {
	if h.gen == 0 || int(h.idx) >= len(a.slots) {
		return false
	}
	s := &a.slots[h.idx]
	return s.next == h.idx && s.gen == h.gen
}

// Count returns the number of live records.
func (a *Arena[T]) Count() int { return a.live }

// Capacity returns the fixed slot count chosen at construction.
func (a *Arena[T]) Capacity() int { return len(a.slots) }

// Each calls fn for every live record, in ascending slot order, until fn
// returns false. A new traversal starts fresh on each call. The arena must
// not be mutated during the traversal.
func (a *Arena[T]) Each(fn func(Handle[T], *T) bool) {
	for i := range a.slots {
		s := &a.slots[i]
		if s.next != int32(i) {
			continue // free slot
		}
		if !fn(Handle[T]{idx: int32(i), gen: s.gen}, &s.val) {
			return
		}
	}
}

// Handles returns the handles of all live records in ascending slot order.
// Convenient for snapshotting a stable traversal order before mutating.
func (a *Arena[T]) Handles() []Handle[T] {
	hs := make([]Handle[T], 0, a.live)
	a.Each(func(h Handle[T], _ *T) bool {
		hs = append(hs, h)
		return true
	})
	return hs
}

// check resolves h to its slot, panicking on any form of invalid handle.
func (a *Arena[T]) check(h Handle[T]) *slot[T] {
	if h.gen == 0 {
		panic("arena: dereference of unset handle")
	}
	if int(h.idx) >= len(a.slots) || h.idx < 0 {
		panic(fmt.Sprintf("arena: handle %v out of range (capacity %d)", h, len(a.slots)))
	}
	s := &a.slots[h.idx]
	if s.next != h.idx {
		panic(fmt.Sprintf("arena: handle %v refers to a freed slot", h))
	}
	if s.gen != h.gen {
		panic(fmt.Sprintf("arena: stale handle %v (slot generation %d)", h, s.gen))
	}
	return s
}
