package physics

import "github.com/go-gl/mathgl/mgl64"

// NoExclude passes every snapshot body to NetAcceleration. It is distinct
// from 0, which is a valid body index.
const NoExclude = -1

// Accelerator evaluates the net acceleration felt at a point.
// Integrators depend on this rather than on Field so they can be exercised
// against analytic fields.
type Accelerator interface {
	NetAcceleration(pos mgl64.Vec2, exclude int) mgl64.Vec2
}

// Field is softened Newtonian gravity sourced by a snapshot.
type Field struct {
	snap      *Snapshot
	gravity   float64
	softening float64
}

func NewField(snap *Snapshot, p Params) *Field {
	return &Field{snap: snap, gravity: p.Gravity, softening: p.Softening}
}

// Acceleration is the pull of snapshot body src on a test point at pos.
func (f *Field) Acceleration(pos mgl64.Vec2, src int) mgl64.Vec2 {
	displacement := f.snap.Positions[src].Sub(pos)
	denom := displacement.Dot(displacement) + f.softening*f.softening
	if denom < Epsilon {
		return mgl64.Vec2{}
	}
	return Normalize(displacement).Mul(f.gravity * f.snap.Masses[src] / denom)
}

// NetAcceleration sums the pull of every snapshot body except exclude.
func (f *Field) NetAcceleration(pos mgl64.Vec2, exclude int) mgl64.Vec2 {
	var net mgl64.Vec2
	for i := 0; i < f.snap.Len(); i++ {
		if i == exclude {
			continue
		}
		net = net.Add(f.Acceleration(pos, i))
	}
	return net
}
