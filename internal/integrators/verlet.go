package integrators

import "github.com/cbass-space/n-body/internal/physics"

// Verlet is velocity Verlet. The second acceleration is sampled at the
// drifted position against the same snapshot.
type Verlet struct{}

func NewVerlet() Verlet {
	return Verlet{}
}

func (Verlet) Step(f physics.Accelerator, self int, s physics.State, dt float64) physics.State {
	a := f.NetAcceleration(s.Position, self)
	x := s.Position.Add(s.Velocity.Mul(dt)).Add(a.Mul(0.5 * dt * dt))

	aNew := f.NetAcceleration(x, self)
	halfDt := 0.5 * dt
	return physics.State{
		Position: x,
		Velocity: s.Velocity.Add(a.Add(aNew).Mul(halfDt)),
	}
}
