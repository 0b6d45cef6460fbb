package sim

import (
	"context"
	"fmt"
	"math"
)

// Run advances w headlessly for cfg.Duration, recording energy, momentum and
// body count after every tick. It stops between ticks when ctx is canceled.
// With cfg.ValidateState a diverged body ends the run with a *TickError.
func Run(ctx context.Context, w *World, cfg Config, metrics []Metric, observers ...Observer) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	result := &Result{
		Times:     make([]float64, 0, steps+1),
		Energy:    make([]float64, 0, steps+1),
		Momentum:  make([]float64, 0, steps+1),
		BodyCount: make([]int, 0, steps+1),
		Metrics:   make(map[string]float64),
	}

	for _, m := range metrics {
		m.Reset()
	}

	record := func(t float64) {
		result.Times = append(result.Times, t)
		result.Energy = append(result.Energy, w.Energy())
		result.Momentum = append(result.Momentum, w.Momentum().Len())
		result.BodyCount = append(result.BodyCount, w.Len())
		for _, m := range metrics {
			m.Observe(w, t)
		}
	}

	t := 0.0
	record(t)
	initialEnergy := result.Energy[0]

	var runErr error
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		w.Tick(cfg.Dt)
		t += cfg.Dt

		if cfg.ValidateState {
			if err := w.Store().Validate(); err != nil {
				runErr = &TickError{Tick: w.Ticks(), Time: t, Err: err}
				break
			}
		}

		result.StepsTaken++
		record(t)
		for _, obs := range observers {
			obs.OnStep(w, t)
		}
	}

	if initialEnergy != 0 {
		final := result.Energy[len(result.Energy)-1]
		result.EnergyDrift = math.Abs(final-initialEnergy) / math.Abs(initialEnergy)
	}
	for _, m := range metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, runErr
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
