// Package cdt3d samples random combinatorial 3-manifolds — discrete
// spacetimes built from tetrahedra stacked in time layers — via Markov-chain
// Monte Carlo, for lattice quantum-gravity studies.
//
// 🚀 What is cdt3d?
//
//	A single-process, deterministic simulation engine that brings together:
//		• arena/      — generational handle pools with O(1) allocate/free
//		• randset/    — O(1) insert/remove/uniform-pick candidate sets
//		• mesh/       — the triangulation itself: entities, the seven
//		                topology-changing surgery operations, geometry
//		                reconstruction, snapshot I/O and invariant audits
//		• montecarlo/ — frequency-weighted move selection, Metropolis
//		                acceptance, coupling tuning, sweep orchestration
//		• observables/— read-only measurements over reconstructed adjacency
//		• config/     — YAML run configuration
//		• cmd/cdt3d   — the CLI binary
//
// ✨ Why cdt3d?
//
//   - Reproducible – one explicitly seeded generator drives every draw
//   - Fast – every mutation primitive is O(1) or O(local neighborhood)
//   - Safe – stale handles are detected, invariant breaks abort the run
//
// Quick ASCII picture of one "slab" between adjacent time layers:
//
//	t+1  ○───○───○      (1,3) and (2,2) tetrahedra interpolate
//	      ╲ ╱ ╲ ╱       between two spatial slices; (3,1) tetrahedra
//	t    ○───○───○      rest their triangular base on the lower slice.
//
//	go get github.com/katalvlaran/cdt3d
package cdt3d
