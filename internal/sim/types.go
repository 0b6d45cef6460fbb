package sim

import (
	"fmt"

	"github.com/cbass-space/n-body/internal/physics"
)

// Metric accumulates a scalar diagnostic over a headless run.
type Metric interface {
	Name() string
	Observe(w *World, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every tick of a headless run.
type Observer interface {
	OnStep(w *World, t float64)
}

// Config controls a headless run.
type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
}

// Result is the time series recorded by Run. Samples are taken before the
// first tick and after every tick.
type Result struct {
	Times      []float64
	Energy     []float64
	Momentum   []float64
	BodyCount  []int
	Metrics    map[string]float64
	StepsTaken int

	EnergyDrift float64
}

// TickError reports the tick at which a run diverged.
type TickError struct {
	Tick int
	Time float64
	Err  error
}

func (e *TickError) Error() string {
	return fmt.Sprintf("tick %d (t=%.4f): %v", e.Tick, e.Time, e.Err)
}

func (e *TickError) Unwrap() error { return e.Err }

// Scenario is a named initial configuration.
type Scenario struct {
	Name   string
	Bodies []physics.BodySpec
}
