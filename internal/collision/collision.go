// Package collision resolves overlapping bodies once per tick, after
// integration, according to the configured collision mode.
package collision

import (
	"math"

	"github.com/cbass-space/n-body/internal/physics"
	"github.com/go-gl/mathgl/mgl64"
)

// Report summarizes one resolver pass.
type Report struct {
	Pairs   int // pairs tested
	Merges  int
	Bounces int

	// Absorbed lists the pre-scan indices removed by merges.
	Absorbed []int
}

// Resolve scans every pair i<j once and applies p.Collisions.
// Bodies absorbed by a merge are removed from store after the scan,
// so indices stay stable while it runs.
func Resolve(store *physics.Store, p physics.Params) Report {
	switch p.Collisions {
	case physics.Merge:
		return merge(store, p)
	case physics.Elastic:
		return bounce(store, p)
	default:
		return Report{}
	}
}

func radii(bodies []physics.Body, p physics.Params) []float64 {
	r := make([]float64, len(bodies))
	for i := range bodies {
		r[i] = p.Radius(bodies[i].Mass)
	}
	return r
}

func touching(a, b *physics.Body, ra, rb float64) bool {
	return a.Position.Sub(b.Position).Len() <= ra+rb
}

func merge(store *physics.Store, p physics.Params) Report {
	var rep Report
	bodies := store.Bodies()
	r := radii(bodies, p)
	absorbed := make([]bool, len(bodies))

	for i := range bodies {
		if absorbed[i] {
			continue
		}
		for j := i + 1; j < len(bodies); j++ {
			if absorbed[j] {
				continue
			}
			rep.Pairs++
			a, b := &bodies[i], &bodies[j]
			if !touching(a, b, r[i], r[j]) {
				continue
			}

			mass := a.Mass + b.Mass
			a.Velocity = a.Momentum().Add(b.Momentum()).Mul(1 / mass)
			a.Mass = mass
			a.Movable = a.Movable && b.Movable
			r[i] = p.Radius(mass)

			absorbed[j] = true
			rep.Absorbed = append(rep.Absorbed, j)
			rep.Merges++
		}
	}

	store.RemoveSet(rep.Absorbed)
	return rep
}

func bounce(store *physics.Store, p physics.Params) Report {
	var rep Report
	bodies := store.Bodies()
	r := radii(bodies, p)

	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			rep.Pairs++
			a, b := &bodies[i], &bodies[j]
			if !a.Movable && !b.Movable {
				continue
			}
			if !touching(a, b, r[i], r[j]) {
				continue
			}

			delta := a.Position.Sub(b.Position)
			dist := delta.Len()
			normal := mgl64.Vec2{1, 0}
			if dist >= physics.Epsilon {
				normal = delta.Mul(1 / dist)
			}

			if normal.Dot(a.Velocity.Sub(b.Velocity)) < 0 {
				exchange(a, b, math.Atan2(normal[1], normal[0]))
				rep.Bounces++
			}
			separate(a, b, normal, r[i]+r[j]-dist)
		}
	}
	return rep
}

// exchange performs a 1D elastic collision along the normal at angle,
// leaving the tangential components untouched. An immovable body acts as
// infinite mass.
func exchange(a, b *physics.Body, angle float64) {
	an := physics.Rotate(a.Velocity, -angle)
	bn := physics.Rotate(b.Velocity, -angle)

	switch {
	case !a.Movable:
		bn[0] = 2*an[0] - bn[0]
	case !b.Movable:
		an[0] = 2*bn[0] - an[0]
	default:
		sum := a.Mass + b.Mass
		af := (a.Mass-b.Mass)/sum*an[0] + 2*b.Mass/sum*bn[0]
		bf := 2*a.Mass/sum*an[0] + (b.Mass-a.Mass)/sum*bn[0]
		an[0], bn[0] = af, bf
	}

	if a.Movable {
		a.Velocity = physics.Rotate(an, angle)
	}
	if b.Movable {
		b.Velocity = physics.Rotate(bn, angle)
	}
}

// separate pushes a and b apart along normal (which points from b to a)
// until they just touch. Immovable bodies take none of the correction.
func separate(a, b *physics.Body, normal mgl64.Vec2, overlap float64) {
	if overlap <= 0 {
		return
	}
	switch {
	case !a.Movable:
		b.Position = b.Position.Sub(normal.Mul(overlap))
	case !b.Movable:
		a.Position = a.Position.Add(normal.Mul(overlap))
	default:
		half := normal.Mul(overlap / 2)
		a.Position = a.Position.Add(half)
		b.Position = b.Position.Sub(half)
	}
}
