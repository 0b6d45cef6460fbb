package metrics

import (
	"github.com/cbass-space/n-body/internal/sim"
	"gonum.org/v1/gonum/stat"
)

// OrbitRadius tracks the separation of two bodies. Value is the mean; the
// spread is available through StdDev and Drift.
type OrbitRadius struct {
	a, b    int
	samples []float64
}

// NewOrbitRadius follows the separation of bodies a and b. Samples where
// either body no longer exists are skipped.
func NewOrbitRadius(a, b int) *OrbitRadius {
	return &OrbitRadius{a: a, b: b}
}

func (o *OrbitRadius) Name() string { return "orbit_radius" }

func (o *OrbitRadius) Observe(w *sim.World, t float64) {
	pa, pb := w.Store().At(o.a), w.Store().At(o.b)
	if pa == nil || pb == nil {
		return
	}
	o.samples = append(o.samples, pa.Position.Sub(pb.Position).Len())
}

func (o *OrbitRadius) Value() float64 {
	if len(o.samples) == 0 {
		return 0
	}
	return stat.Mean(o.samples, nil)
}

func (o *OrbitRadius) StdDev() float64 {
	if len(o.samples) < 2 {
		return 0
	}
	_, std := stat.MeanStdDev(o.samples, nil)
	return std
}

// Drift is the largest relative deviation from the first sample.
func (o *OrbitRadius) Drift() float64 {
	if len(o.samples) == 0 || o.samples[0] == 0 {
		return 0
	}
	r0 := o.samples[0]
	var worst float64
	for _, r := range o.samples {
		d := (r - r0) / r0
		if d < 0 {
			d = -d
		}
		if d > worst {
			worst = d
		}
	}
	return worst
}

func (o *OrbitRadius) Samples() []float64 { return o.samples }

func (o *OrbitRadius) Reset() { o.samples = o.samples[:0] }

// orbitStat reports one statistic of an OrbitRadius under its own name.
type orbitStat struct {
	*OrbitRadius
	name string
	stat func(*OrbitRadius) float64
}

func (s orbitStat) Name() string   { return s.name }
func (s orbitStat) Value() float64 { return s.stat(s.OrbitRadius) }

// NewOrbitStdDev is the standard deviation of the a-b separation.
func NewOrbitStdDev(a, b int) sim.Metric {
	return orbitStat{NewOrbitRadius(a, b), "orbit_stddev", (*OrbitRadius).StdDev}
}

// NewOrbitDrift is the largest relative deviation of the a-b separation
// from its first sample.
func NewOrbitDrift(a, b int) sim.Metric {
	return orbitStat{NewOrbitRadius(a, b), "orbit_drift", (*OrbitRadius).Drift}
}
