// Package randset maintains a compact, order-unstable set of arena handles
// with O(1) membership, insert, remove-by-value and uniform-random pick.
//
// What
//
//   - A dense slice of member handles plus a sparse table mapping a slot
//     index to its position in that slice.
//   - Remove swaps the last member into the vacated position: O(1), and
//     member order is never semantically meaningful.
//   - Pick draws one uniform random member using a single integer from the
//     set's injected generator.
//
// Why
//
//	Monte Carlo move selection must sample uniformly over all *eligible*
//	entities (all tetrahedra, all base tetrahedra, all vertices) without
//	scanning an arena. Sets of the eligible handles give that in O(1) per
//	draw, which is what keeps rejection sampling cheap.
//
// Error policy
//
//	Construction validates its inputs and returns sentinel errors. Add of a
//	present member, Remove of an absent one, and Pick on an empty set are
//	programming errors and panic: the surgery operations maintain these
//	sets incrementally, and a missed update means the mesh bookkeeping is
//	already corrupt.
//
// Determinism and concurrency
//
//	The generator is injected (see New); a fixed seed reproduces an
//	identical pick sequence. Single-threaded only; iteration is invalidated
//	by concurrent Add/Remove.
package randset
