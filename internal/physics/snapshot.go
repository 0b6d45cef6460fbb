package physics

import "github.com/go-gl/mathgl/mgl64"

// Snapshot is the frozen body state all force evaluations of one tick read from.
type Snapshot struct {
	Positions  []mgl64.Vec2
	Velocities []mgl64.Vec2
	Masses     []float64
}

// TakeSnapshot copies the current positions, velocities and masses.
func TakeSnapshot(bodies []Body) *Snapshot {
	s := &Snapshot{}
	s.Capture(bodies)
	return s
}

// Capture overwrites s with the state of bodies, reusing its slices.
func (s *Snapshot) Capture(bodies []Body) {
	n := len(bodies)
	s.Positions = resizeVec(s.Positions, n)
	s.Velocities = resizeVec(s.Velocities, n)
	if cap(s.Masses) < n {
		s.Masses = make([]float64, n)
	}
	s.Masses = s.Masses[:n]
	for i := range bodies {
		s.Positions[i] = bodies[i].Position
		s.Velocities[i] = bodies[i].Velocity
		s.Masses[i] = bodies[i].Mass
	}
}

func (s *Snapshot) Len() int { return len(s.Positions) }

func resizeVec(v []mgl64.Vec2, n int) []mgl64.Vec2 {
	if cap(v) < n {
		return make([]mgl64.Vec2, n)
	}
	return v[:n]
}
