// Package arena provides a fixed-capacity, handle-indexed object pool:
// the storage substrate every mesh entity lives in.
//
// What
//
//   - Allocate/Free/Get in O(1) via an intrusive free list: a free slot
//     stores the bit-complement of the next free index, a live slot stores
//     its own index.
//   - Handles are index+generation pairs. Freeing a slot bumps its
//     generation, so a handle captured before a free/reuse cycle no longer
//     dereferences: Get panics instead of silently aliasing a new record.
//   - Iteration over exactly the live records, skipping free slots, in
//     O(capacity) per full traversal; restartable, single-threaded.
//
// Why
//
//	Entities reference each other only by handle, never by pointer, which
//	keeps records relocatable, comparable and serializable, and makes the
//	"stale reference" failure mode detectable rather than undefined.
//
// Error policy
//
//	Exhausted capacity and invalid construction surface as sentinel errors
//	(ErrArenaFull, ErrBadCapacity). Dereferencing a dead or stale handle is
//	a programming error and panics: proceeding would corrupt the mesh.
//
// Concurrency
//
//	None. An Arena assumes exclusive access; free-list updates are not
//	atomic. The simulation is single-threaded by design.
package arena
