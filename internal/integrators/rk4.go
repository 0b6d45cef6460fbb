package integrators

import "github.com/cbass-space/n-body/internal/physics"

// RK4 is classic fourth-order Runge-Kutta over the combined
// (position, velocity) state. Each stage samples the field at its own
// candidate position; other bodies stay where the snapshot put them.
type RK4 struct{}

func NewRK4() RK4 {
	return RK4{}
}

func (RK4) Step(f physics.Accelerator, self int, s physics.State, dt float64) physics.State {
	k1 := derive(f, self, s)
	k2 := derive(f, self, add(s, scale(k1, dt*0.5)))
	k3 := derive(f, self, add(s, scale(k2, dt*0.5)))
	k4 := derive(f, self, add(s, scale(k3, dt)))

	sum := add(add(k1, scale(k2, 2)), add(scale(k3, 2), k4))
	return add(s, scale(sum, dt/6.0))
}

// derive returns d/dt of (x, v) = (v, a(x)).
func derive(f physics.Accelerator, self int, s physics.State) physics.State {
	return physics.State{
		Position: s.Velocity,
		Velocity: f.NetAcceleration(s.Position, self),
	}
}

func add(a, b physics.State) physics.State {
	return physics.State{
		Position: a.Position.Add(b.Position),
		Velocity: a.Velocity.Add(b.Velocity),
	}
}

func scale(s physics.State, k float64) physics.State {
	return physics.State{
		Position: s.Position.Mul(k),
		Velocity: s.Velocity.Mul(k),
	}
}
