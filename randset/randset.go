package randset

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/cdt3d/arena"
)

// Sentinel errors for set construction.
var (
	// ErrBadCapacity indicates a non-positive capacity was requested.
	ErrBadCapacity = errors.New("randset: capacity must be positive")

	// ErrNilRand indicates no random generator was supplied.
	ErrNilRand = errors.New("randset: rng is required")
)

// none marks an empty cell of the sparse index table.
const none = -1

// Set is a randomized set of handles drawn from one arena of capacity
// matching the capacity given to New. Not safe for concurrent use.
type Set[T any] struct {
	members []arena.Handle[T] // dense member list
	index   []int32           // slot index -> position in members, or none
	rng     *rand.Rand
}

// New creates an empty set able to track handles of an arena with the given
// capacity, drawing picks from rng. The generator is injected, never
// created here, so one seeded source can drive the whole simulation.
func New[T any](capacity int, rng *rand.Rand) (*Set[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadCapacity, capacity)
	}
	if rng == nil {
		return nil, ErrNilRand
	}
	s := &Set[T]{
		members: make([]arena.Handle[T], 0, 64),
		index:   make([]int32, capacity),
		rng:     rng,
	}
	for i := range s.index {
		s.index[i] = none
	}
	return s, nil
}

// Size returns the number of members. O(1).
func (s *Set[T]) Size() int { return len(s.members) }

// Contains reports membership of h. O(1).
func (s *Set[T]) Contains(h arena.Handle[T]) bool {
	i := h.Index()
	if i < 0 || i >= len(s.index) {
		return false
	}
	pos := s.index[i]
	// The position must exist and hold the same generation: a stale handle
	// whose slot was reused by a current member is not a member.
	return pos != none && s.members[pos] == h
}

// Add inserts h. O(1). Panics if h is unset, out of range, or already a
// member — all symptoms of broken incremental bookkeeping upstream.
func (s *Set[T]) Add(h arena.Handle[T]) {
	i := h.Index()
	if i < 0 || i >= len(s.index) {
		panic(fmt.Sprintf("randset: Add of invalid handle %v", h))
	}
	if s.index[i] != none {
		panic(fmt.Sprintf("randset: duplicate Add of %v", h))
	}
	s.index[i] = int32(len(s.members))
	s.members = append(s.members, h)
}

// Remove deletes h by swapping the last member into its position. O(1),
// order-destroying. Panics if h is not a member.
func (s *Set[T]) Remove(h arena.Handle[T]) {
	if !s.Contains(h) {
		panic(fmt.Sprintf("randset: Remove of absent %v", h))
	}
	pos := s.index[h.Index()]
	last := s.members[len(s.members)-1]
	s.members[pos] = last
	s.index[last.Index()] = pos
	s.members = s.members[:len(s.members)-1]
	s.index[h.Index()] = none
}

// Pick returns one member chosen uniformly at random using a single draw
// from the injected generator. O(1). Panics on an empty set.
func (s *Set[T]) Pick() arena.Handle[T] {
	if len(s.members) == 0 {
		panic("randset: Pick on empty set")
	}
	return s.members[s.rng.Intn(len(s.members))]
}

// Each calls fn for every member until fn returns false. The iteration
// order is arbitrary. The set must not be mutated during the traversal.
func (s *Set[T]) Each(fn func(arena.Handle[T]) bool) {
	for _, h := range s.members {
		if !fn(h) {
			return
		}
	}
}

// Members returns a copy of the current members, in arbitrary order.
func (s *Set[T]) Members() []arena.Handle[T] {
	out := make([]arena.Handle[T], len(s.members))
	copy(out, s.members)
	return out
}
