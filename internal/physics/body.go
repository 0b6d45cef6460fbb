package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// MinMass is the floor applied to non-positive masses.
const MinMass = 1e-3

// Body is a point mass with its visual tag and history buffers.
type Body struct {
	Position mgl64.Vec2
	Velocity mgl64.Vec2
	Mass     float64
	Movable  bool
	Color    colorful.Color

	Trail      Trail
	Prediction Prediction
}

// BodySpec describes a body to create. Buffers are sized by the store.
type BodySpec struct {
	Position mgl64.Vec2
	Velocity mgl64.Vec2
	Mass     float64
	Movable  bool
	Color    colorful.Color
}

// State is the integrable part of a body.
type State struct {
	Position mgl64.Vec2
	Velocity mgl64.Vec2
}

func (b *Body) State() State {
	return State{Position: b.Position, Velocity: b.Velocity}
}

// Apply writes an integrated state back. The trail is recorded separately,
// once collisions for the tick are resolved.
func (b *Body) Apply(s State) {
	b.Position = s.Position
	b.Velocity = s.Velocity
}

// Momentum returns m·v.
func (b *Body) Momentum() mgl64.Vec2 {
	return b.Velocity.Mul(b.Mass)
}

// ClampMass maps non-positive or NaN masses onto MinMass.
func ClampMass(m float64) float64 {
	if !(m > MinMass) {
		return MinMass
	}
	return m
}

// Clone deep-copies the body including its buffers.
func (b Body) Clone() Body {
	c := b
	c.Trail = b.Trail.Clone()
	c.Prediction = b.Prediction.Clone()
	return c
}
