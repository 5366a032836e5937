// Package montecarlo drives the Metropolis evolution of a mesh.Universe:
// uniform candidate picks, acceptance ratios from the bare couplings,
// optional volume fixing toward a target, coupling auto-tuning during
// thermalization, and scheduled observable measurement.
//
// What
//
//   - Simulation: couplings k0 (vertex cost) and k3 (tetrahedron cost),
//     move frequencies over the three move families (grow/shrink, flip,
//     shift/inverse-shift), and the shared random generator — by default
//     the universe's own, so one seed fixes the entire run.
//   - AttemptMove draws one move family, one direction, picks candidates
//     uniformly, applies the Metropolis acceptance test and then the
//     combinatorial legality check; rejection at either stage leaves the
//     mesh untouched and reports MoveNone.
//   - Run alternates thermalization sweeps (with coupling tuning) and
//     measurement sweeps (with volume drift, observable measurement and
//     periodic snapshot export).
//
// Error policy
//
//	Construction validates its inputs against sentinel errors. Run returns
//	the first observable or exporter failure; move rejections are normal
//	control flow and never errors.
//
// Concurrency
//
//	None; the simulation owns its universe for the duration of Run.
package montecarlo
