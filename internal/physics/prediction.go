package physics

import "github.com/go-gl/mathgl/mgl64"

// Prediction holds a body's forecast trajectory: one position per step of
// the predictor horizon. Velocity is scratch space used only while rolling
// out a detached copy and is never read back into the live body.
type Prediction struct {
	Positions []mgl64.Vec2
	Velocity  mgl64.Vec2
}

func NewPrediction(horizon int) Prediction {
	if horizon < 0 {
		horizon = 0
	}
	return Prediction{Positions: make([]mgl64.Vec2, horizon)}
}

func (p *Prediction) Horizon() int { return len(p.Positions) }

// Reset fills every step with pos, which is what a body that never moves predicts.
func (p *Prediction) Reset(pos mgl64.Vec2) {
	for i := range p.Positions {
		p.Positions[i] = pos
	}
	p.Velocity = mgl64.Vec2{}
}

func (p Prediction) Clone() Prediction {
	c := p
	c.Positions = make([]mgl64.Vec2, len(p.Positions))
	copy(c.Positions, p.Positions)
	return c
}
