// Package mesh implements the combinatorial 3-manifold itself: a causal
// triangulation built from tetrahedra spanning adjacent discrete time
// layers, together with the surgery operations that mutate it and the
// reconstruction pass that derives its secondary adjacency.
//
// What
//
//   - Entities: Vertex, Tetra, HalfEdge, Triangle — plain records that
//     reference each other exclusively by arena handle. A tetrahedron
//     carries 4 vertices, 4 face-neighbors (slot i opposite vertex i) and a
//     kind tag: (3,1) three base vertices on one layer and the apex one
//     layer up, (1,3) its mirror, or (2,2) two vertices on each layer.
//   - Universe: the explicit simulation context owning every arena, the
//     randomized candidate sets, the per-layer volume counters and the one
//     seeded random generator. No package-level state exists; independent
//     universes coexist freely.
//   - Surgery: Expand/Contract, Flip, ShiftUp/ShiftDown and
//     InverseShiftUp/InverseShiftDown — local rewrites of a statically
//     known neighborhood. Every legality precondition is evaluated before
//     any allocation or destruction: a false return means the mesh is
//     byte-for-byte unchanged, which is what keeps Monte Carlo rejection
//     sampling cheap.
//   - Reconstruct: rebuilds vertex-neighbor lists (breadth-first over each
//     vertex star), the directed-edge 3-cycles bounding every spatial
//     triangle with their antiparallel opposites (walking the column of
//     (2,2) tetrahedra between base triangles), and the triangle dual
//     graph of each spatial slice. Edges are rebuilt before triangles;
//     neither interleaves with surgery.
//   - Snapshot: text-format load/export with count checksums and, when the
//     snapshot is unordered, re-derivation of the canonical neighbor-slot
//     convention before anything else runs.
//
// Invariants
//
//	For every live tetrahedron: its 4 vertex handles are pairwise distinct
//	and span exactly two adjacent layers; each face-neighbor lists it back
//	as the neighbor opposite the matching vertex; a neighbor shares the 3
//	face vertices. Vertex coordination statistics and per-layer counters
//	are maintained incrementally by every operation, never recomputed
//	outside load and Validate.
//
// Error policy
//
//	Three classes (strictly separated): legality rejections are bool
//	returns on the surgery operations — expected, frequent, not errors;
//	malformed snapshots return ErrBadSnapshot-wrapped errors; invariant
//	violations (stale handles, capacity exhaustion mid-surgery, broken
//	adjacency) panic, because continuing would silently corrupt every
//	subsequent measurement. Validate reports violations as errors for use
//	as a test oracle.
//
// Concurrency
//
//	None. One goroutine owns a Universe for the duration of a run.
package mesh
