package experiment

import (
	"fmt"
	"sort"

	"github.com/cbass-space/n-body/internal/metrics"
	"github.com/cbass-space/n-body/internal/sim"
)

// DefaultBound is the distance from the center of mass beyond which a body
// counts as escaped for the "bounded" metric.
const DefaultBound = 5000.0

// Registry maps metric names to constructors. Every run gets fresh metrics
// so concurrent runs never share state.
type Registry struct {
	metrics map[string]func() sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func() sim.Metric),
	}

	r.metrics["energy_drift"] = func() sim.Metric { return metrics.NewEnergyDrift() }
	r.metrics["momentum_drift"] = func() sim.Metric { return metrics.NewMomentumDrift() }
	r.metrics["body_count"] = func() sim.Metric { return metrics.NewBodyCount() }
	r.metrics["angular_momentum_drift"] = func() sim.Metric { return metrics.NewAngularMomentumDrift() }
	r.metrics["orbit_radius"] = func() sim.Metric { return metrics.NewOrbitRadius(0, 1) }
	r.metrics["orbit_stddev"] = func() sim.Metric { return metrics.NewOrbitStdDev(0, 1) }
	r.metrics["orbit_drift"] = func() sim.Metric { return metrics.NewOrbitDrift(0, 1) }
	r.metrics["collisions"] = func() sim.Metric { return metrics.NewCollisions() }
	r.metrics["bounded"] = func() sim.Metric { return metrics.NewBounded(DefaultBound) }

	return r
}

func (r *Registry) GetMetric(name string) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

// Metrics builds the named metrics, or every registered one when names is empty.
func (r *Registry) Metrics(names ...string) ([]sim.Metric, error) {
	if len(names) == 0 {
		names = r.ListMetrics()
	}
	out := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		m, err := r.GetMetric(name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
