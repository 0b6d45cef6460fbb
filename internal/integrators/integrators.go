// Package integrators advances a single body's state through one fixed step.
//
// Every integrator is a pure strategy: given the force model of the current
// tick, a body index and its state, it returns the next state and never
// touches the body itself. The caller applies the result.
package integrators

import (
	"fmt"

	"github.com/cbass-space/n-body/internal/physics"
)

// Stepper advances one body by dt. self is passed to the force model as the
// excluded index so a body never attracts itself.
type Stepper interface {
	Step(f physics.Accelerator, self int, s physics.State, dt float64) physics.State
}

var steppers = [...]Stepper{
	physics.Euler:  Euler{},
	physics.Verlet: Verlet{},
	physics.RK4:    RK4{},
}

// New returns the stepper for m.
func New(m physics.Method) (Stepper, error) {
	if m < 0 || int(m) >= len(steppers) {
		return nil, fmt.Errorf("integrator %v: %w", m, physics.ErrUnknownParameter)
	}
	return steppers[m], nil
}

// MustNew is New for methods already validated by physics.Params.Sanitized.
func MustNew(m physics.Method) Stepper {
	s, err := New(m)
	if err != nil {
		panic(err)
	}
	return s
}
