// Package experiment runs worlds headlessly and compares integrators.
package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/cbass-space/n-body/internal/physics"
	"github.com/cbass-space/n-body/internal/sim"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

type Config struct {
	Options  sim.Options
	Dt       float64
	Duration float64
	Metrics  []string
}

type Experiment struct {
	cfg     Config
	world   *sim.World
	metrics []sim.Metric
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup builds the world and its metrics.
func (e *Experiment) Setup(reg *Registry) error {
	w, err := sim.NewWorld(e.cfg.Options)
	if err != nil {
		return err
	}
	ms, err := reg.Metrics(e.cfg.Metrics...)
	if err != nil {
		return err
	}
	e.world, e.metrics = w, ms
	return nil
}

func (e *Experiment) Run(ctx context.Context, observers ...sim.Observer) (*sim.Result, error) {
	if e.world == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return sim.Run(ctx, e.world, sim.Config{
		Dt:            e.cfg.Dt,
		Duration:      e.cfg.Duration,
		ValidateState: true,
	}, e.metrics, observers...)
}

// World returns the world for inspection after a run.
func (e *Experiment) World() *sim.World {
	return e.world
}

// Outcome is one integrator's run in a comparison.
type Outcome struct {
	Method  physics.Method
	Result  *sim.Result
	Elapsed time.Duration

	EnergyMean float64
	EnergyStd  float64
}

// Compare runs the same configuration once per method, concurrently, and
// returns the outcomes in the order of methods. Each run owns its world.
func Compare(ctx context.Context, cfg Config, reg *Registry, methods []physics.Method) ([]Outcome, error) {
	outcomes := make([]Outcome, len(methods))
	g, ctx := errgroup.WithContext(ctx)

	for i, m := range methods {
		i, m := i, m
		g.Go(func() error {
			c := cfg
			c.Options.Params.Integrator = m
			e := New(c)
			if err := e.Setup(reg); err != nil {
				return fmt.Errorf("%v: %w", m, err)
			}

			start := time.Now()
			res, err := e.Run(ctx)
			if err != nil {
				return fmt.Errorf("%v: %w", m, err)
			}

			mean, std := stat.MeanStdDev(res.Energy, nil)
			outcomes[i] = Outcome{
				Method:     m,
				Result:     res,
				Elapsed:    time.Since(start),
				EnergyMean: mean,
				EnergyStd:  std,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
