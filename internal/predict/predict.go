// Package predict forecasts where every body will be over a short horizon.
package predict

import (
	"github.com/cbass-space/n-body/internal/integrators"
	"github.com/cbass-space/n-body/internal/physics"
)

// Predictor rolls a detached copy of the world forward without collisions
// and records each step's positions into the live bodies' Prediction buffers.
type Predictor struct {
	horizon int
	snap    physics.Snapshot
	scratch []physics.Body
}

func New(horizon int) *Predictor {
	if horizon < 0 {
		horizon = 0
	}
	return &Predictor{horizon: horizon}
}

func (p *Predictor) Horizon() int { return p.horizon }

// Update recomputes the prediction of every body in store. Only the
// Prediction buffers of the live bodies are written.
func (p *Predictor) Update(store *physics.Store, params physics.Params, dt float64) {
	live := store.Bodies()
	steps := p.horizon
	for i := range live {
		if n := live[i].Prediction.Horizon(); n < steps {
			steps = n
		}
	}

	// Only the integrable fields are copied; trails never enter the rollout.
	if cap(p.scratch) < len(live) {
		p.scratch = make([]physics.Body, len(live))
	}
	p.scratch = p.scratch[:len(live)]
	for i := range live {
		p.scratch[i] = physics.Body{
			Position: live[i].Position,
			Velocity: live[i].Velocity,
			Mass:     live[i].Mass,
			Movable:  live[i].Movable,
		}
	}

	step := integrators.MustNew(params.Integrator)
	for k := 0; k < steps; k++ {
		p.snap.Capture(p.scratch)
		field := physics.NewField(&p.snap, params)
		for i := range p.scratch {
			b := &p.scratch[i]
			if b.Movable {
				next := step.Step(field, i, b.State(), dt)
				b.Position, b.Velocity = next.Position, next.Velocity
			}
			live[i].Prediction.Positions[k] = b.Position
			live[i].Prediction.Velocity = b.Velocity
		}
	}
}
