package integrators

import "github.com/cbass-space/n-body/internal/physics"

// Euler is the semi-implicit (symplectic) Euler method: velocity first,
// then position with the updated velocity.
type Euler struct{}

func NewEuler() Euler {
	return Euler{}
}

func (Euler) Step(f physics.Accelerator, self int, s physics.State, dt float64) physics.State {
	a := f.NetAcceleration(s.Position, self)
	v := s.Velocity.Add(a.Mul(dt))
	return physics.State{
		Position: s.Position.Add(v.Mul(dt)),
		Velocity: v,
	}
}
