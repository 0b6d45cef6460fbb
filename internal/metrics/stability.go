package metrics

import (
	"github.com/cbass-space/n-body/internal/physics"
	"github.com/cbass-space/n-body/internal/sim"
)

// Bounded is the fraction of samples in which every body stayed within
// threshold of the center of mass.
type Bounded struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewBounded(threshold float64) *Bounded {
	return &Bounded{
		name:      "bounded",
		threshold: threshold,
	}
}

func (s *Bounded) Name() string {
	return s.name
}

func (s *Bounded) Observe(w *sim.World, t float64) {
	s.samples++
	com, _ := physics.CenterOfMass(w.Bodies())
	for _, b := range w.Bodies() {
		if b.Position.Sub(com).Len() > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Bounded) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Bounded) Reset() {
	s.violations = 0
	s.samples = 0
}

// BodyCount is the number of bodies at the last sample.
type BodyCount struct {
	count int
}

func NewBodyCount() *BodyCount { return &BodyCount{} }

func (c *BodyCount) Name() string                     { return "body_count" }
func (c *BodyCount) Observe(w *sim.World, t float64) { c.count = w.Len() }
func (c *BodyCount) Value() float64                   { return float64(c.count) }
func (c *BodyCount) Reset()                           { c.count = 0 }

// Collisions counts merges and bounces over the run.
type Collisions struct {
	merges, bounces int
	lastTick        int
}

func NewCollisions() *Collisions { return &Collisions{} }

func (c *Collisions) Name() string { return "collisions" }

func (c *Collisions) Observe(w *sim.World, t float64) {
	if w.Ticks() == c.lastTick {
		return
	}
	c.lastTick = w.Ticks()
	rep := w.LastReport()
	c.merges += rep.Merges
	c.bounces += rep.Bounces
}

func (c *Collisions) Value() float64 { return float64(c.merges + c.bounces) }
func (c *Collisions) Merges() int     { return c.merges }
func (c *Collisions) Bounces() int    { return c.bounces }

func (c *Collisions) Reset() {
	c.merges, c.bounces, c.lastTick = 0, 0, 0
}
