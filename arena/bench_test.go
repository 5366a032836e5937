// Package arena_test provides benchmarks for the generational pool.
package arena_test

import (
	"testing"

	"github.com/katalvlaran/cdt3d/arena"
)

// BenchmarkAllocateFree measures the steady-state churn pattern: the move
// engine allocates and frees in tight pairs, so the free list stays hot.
func BenchmarkAllocateFree(b *testing.B) {
	a, err := arena.New[[8]int64](1 << 10)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h, _ := a.Allocate()
		a.Free(h)
	}
}

// BenchmarkGet measures handle dereference with validation on a full pool.
func BenchmarkGet(b *testing.B) {
	a, err := arena.New[[8]int64](1 << 10)
	if err != nil {
		b.Fatal(err)
	}
	hs := make([]arena.Handle[[8]int64], 0, a.Capacity())
	for a.Count() < a.Capacity() {
		h, _ := a.Allocate()
		hs = append(hs, h)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = a.Get(hs[i&(len(hs)-1)])
	}
}

// BenchmarkEach measures a full live traversal on a half-occupied pool,
// the validation walk's dominant access pattern.
func BenchmarkEach(b *testing.B) {
	a, err := arena.New[[8]int64](1 << 10)
	if err != nil {
		b.Fatal(err)
	}
	// Occupy every other slot to exercise the free-slot skip.
	var hs []arena.Handle[[8]int64]
	for a.Count() < a.Capacity() {
		h, _ := a.Allocate()
		hs = append(hs, h)
	}
	for i := 1; i < len(hs); i += 2 {
		a.Free(hs[i])
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		n := 0
		a.Each(func(arena.Handle[[8]int64], *[8]int64) bool {
			n++
			return true
		})
		if n != a.Count() {
			b.Fatal("traversal count mismatch")
		}
	}
}
