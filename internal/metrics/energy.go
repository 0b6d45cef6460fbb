// Package metrics implements sim.Metric diagnostics for headless runs.
package metrics

import (
	"math"

	"github.com/cbass-space/n-body/internal/sim"
	"github.com/go-gl/mathgl/mgl64"
)

// EnergyDrift is the largest relative deviation of total energy from its
// first observed value.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(w *sim.World, t float64) {
	energy := w.Energy()

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// MomentumDrift is the largest change of total linear momentum, relative to
// the initial sum of |m v| so that a system at rest overall still has a scale.
type MomentumDrift struct {
	name     string
	initial  mgl64.Vec2
	scale    float64
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(w *sim.World, t float64) {
	p := w.Momentum()
	if m.samples == 0 {
		m.initial = p
		for _, b := range w.Bodies() {
			m.scale += b.Mass * b.Velocity.Len()
		}
	}
	m.samples++

	if m.scale > 0 {
		d := p.Sub(m.initial).Len() / m.scale
		m.maxDrift = math.Max(m.maxDrift, d)
	}
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = mgl64.Vec2{}
	m.scale = 0
	m.maxDrift = 0
	m.samples = 0
}

// AngularMomentumDrift is the largest change of total angular momentum about
// the origin, relative to the initial sum of |m r x v|.
type AngularMomentumDrift struct {
	initial  float64
	scale    float64
	maxDrift float64
	samples  int
}

func NewAngularMomentumDrift() *AngularMomentumDrift {
	return &AngularMomentumDrift{}
}

func (a *AngularMomentumDrift) Name() string { return "angular_momentum_drift" }

func (a *AngularMomentumDrift) Observe(w *sim.World, t float64) {
	L := w.AngularMomentum()
	if a.samples == 0 {
		a.initial = L
		for _, b := range w.Bodies() {
			r, v := b.Position, b.Velocity
			a.scale += b.Mass * math.Abs(r[0]*v[1]-r[1]*v[0])
		}
	}
	a.samples++

	if a.scale > 0 {
		a.maxDrift = math.Max(a.maxDrift, math.Abs(L-a.initial)/a.scale)
	}
}

func (a *AngularMomentumDrift) Value() float64 { return a.maxDrift }

func (a *AngularMomentumDrift) Reset() {
	*a = AngularMomentumDrift{}
}
