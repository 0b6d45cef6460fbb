// Package viz is the live terminal front-end of the simulator.
//
// The world is drawn on a braille [Canvas] (2x4 sub-pixels per cell) through
// a 2D [Camera] that follows the selected body. A fixed-step scheduler is
// fed with the wall-clock time between frames, so the simulation runs at the
// same speed regardless of the frame rate.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	.     - Single step
//	R     - Reset to the initial scenario
//	I / C - Cycle integrator / collision mode
//	[ ]   - Cycle target
//	G / P - Toggle field grid / predictions
//	N     - Spawn a body
//	m / M - Raise / lower the mass of the target, or of the next spawn
//	F     - Toggle movable on the target, or on the next spawn
//	1 2   - Gravity down / up
//	3 4   - Softening down / up
//	5 6   - Density down / up
//	?     - Show help overlay
package viz
