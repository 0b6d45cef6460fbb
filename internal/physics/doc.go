// Package physics holds the state and force model of the 2D gravity simulation.
//
// The package defines the body-level primitives the rest of the engine
// operates on:
//
//   - [Body]: position, velocity, mass and per-body history buffers
//   - [Store]: the owned, bounded collection of bodies
//   - [Trail]: fixed-capacity ring buffer of past positions
//   - [Prediction]: fixed-horizon buffer of future positions
//   - [Snapshot]: frozen copy of body state taken once per tick
//   - [Field]: softened pairwise gravity evaluated against a snapshot
//   - [Params]: gravity, softening, density and the selected strategies
//
// # Simultaneity
//
// Forces within a tick are always read from the [Snapshot] taken before any
// body moved. A body integrated late in the tick therefore feels the others
// where they were, not where they already are:
//
//	snap := physics.TakeSnapshot(store.Bodies())
//	field := physics.NewField(snap, params)
//	a := field.NetAcceleration(pos, physics.NoExclude)
//
// # Energy
//
// [Energy], [Momentum] and [AngularMomentum] report conserved quantities
// for monitoring integrator drift.
package physics
