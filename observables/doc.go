// Package observables collects measurements over an evolving universe
// and streams them to per-observable data files, one line per
// measurement. It also carries the shortest-path toolbox the geometric
// observables are built from: breadth-first spheres and distances over
// the vertex graph, its spatial restriction, and the two dual graphs.
//
// What
//
//   - Writer: owns an output directory and a run identifier, appends one
//     formatted record per measurement to <name>-<id>.dat.
//   - VolumeProfile: the (3,1) count of every slice.
//   - Coordination: the spatial coordination histogram over all vertices.
//   - Ricci2d: average sphere distances per radius on the spatial slices,
//     a coarse curvature estimator.
//   - Sphere, Sphere2D, SphereDual, Sphere2DDual, Distance, DistanceDual:
//     breadth-first primitives over the reconstructed adjacency.
//
// The sphere and distance helpers read the derived adjacency, so call
// Universe.Reconstruct after surgery and before using them; the
// simulation driver does this before slice measurements.
//
// # Error policy
//
// Writer construction and appends surface I/O failures verbatim. The
// distance helpers return -1 for unreachable pairs rather than erroring;
// a disconnected slice graph is a caller bug, not an I/O condition.
//
// Concurrency
//
//	None; a Writer serves one measurement loop.
package observables
