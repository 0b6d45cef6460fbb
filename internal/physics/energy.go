package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Energy returns kinetic plus softened potential energy of the system.
func Energy(bodies []Body, p Params) float64 {
	ke := 0.0
	pe := 0.0
	eps2 := p.Softening * p.Softening

	for i := range bodies {
		v := bodies[i].Velocity
		ke += 0.5 * bodies[i].Mass * v.Dot(v)

		for j := i + 1; j < len(bodies); j++ {
			d := bodies[j].Position.Sub(bodies[i].Position)
			r := math.Sqrt(d.Dot(d) + eps2)
			if r*r < Epsilon {
				continue
			}
			pe -= p.Gravity * bodies[i].Mass * bodies[j].Mass / r
		}
	}

	return ke + pe
}

// Momentum is the total linear momentum.
func Momentum(bodies []Body) mgl64.Vec2 {
	var total mgl64.Vec2
	for i := range bodies {
		total = total.Add(bodies[i].Momentum())
	}
	return total
}

// AngularMomentum is the z component of Σ m (r × v) about the origin.
func AngularMomentum(bodies []Body) float64 {
	L := 0.0
	for i := range bodies {
		r, v := bodies[i].Position, bodies[i].Velocity
		L += bodies[i].Mass * (r[0]*v[1] - r[1]*v[0])
	}
	return L
}

// CenterOfMass returns the mass-weighted mean position and the total mass.
func CenterOfMass(bodies []Body) (mgl64.Vec2, float64) {
	var weighted mgl64.Vec2
	total := 0.0
	for i := range bodies {
		weighted = weighted.Add(bodies[i].Position.Mul(bodies[i].Mass))
		total += bodies[i].Mass
	}
	if total == 0 {
		return mgl64.Vec2{}, 0
	}
	return weighted.Mul(1 / total), total
}
