// Package physics implements the Newtonian gravity integrator.
//
// [Engine] advances a [dynamo.Universe] by one fixed step using all-pairs
// gravity and semi-implicit Euler:
//
//	v[i] += a[i]·dt
//	x[i] += v[i]·dt   // uses the already-updated velocity
//
// The distance between two bodies is softened as |r| + ε rather than
// sqrt(|r|² + ε²). ε is a singularity guard only; it keeps coincident
// bodies from dividing by zero and has no physical meaning.
//
// # Modes
//
// [ModeDirected] evaluates every ordered pair (i, j) independently, N·(N−1)
// evaluations per step. [ModeSymmetric] evaluates each unordered pair once
// and applies equal and opposite contributions. Both describe the same
// physics but round differently, so trajectories are not bit-identical.
//
// # Diagnostics
//
// [TotalEnergy], [TotalMomentum] and [AngularMomentum] are used by the run
// metrics to track drift of the non-conservative scheme:
//
//	e0 := physics.TotalEnergy(u.All())
//	engine.Advance(u, 3600)
//	drift := math.Abs(physics.TotalEnergy(u.All())-e0) / math.Abs(e0)
package physics
