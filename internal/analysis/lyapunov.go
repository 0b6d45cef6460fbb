package analysis

import (
	"math"

	"github.com/cbass-space/n-body/internal/physics"
	"github.com/cbass-space/n-body/internal/sim"
)

// LyapunovExponent estimates the largest Lyapunov exponent of a configuration
// by running it next to a copy whose first body is nudged by perturbation
// along x. After every tick the separation in phase space is measured and
// the copy is pulled back to distance perturbation (Benettin renormalization).
// A positive value indicates chaos.
//
// Collisions are disabled in both runs so the bodies stay paired.
func LyapunovExponent(opts sim.Options, dt, duration, perturbation float64) (float64, error) {
	opts.Predict = false
	opts.Params.Collisions = physics.NoCollisions

	ref, err := sim.NewWorld(opts)
	if err != nil {
		return 0, err
	}
	nudged, err := sim.NewWorld(opts)
	if err != nil {
		return 0, err
	}
	if ref.Len() == 0 || perturbation <= 0 || dt <= 0 {
		return 0, nil
	}
	nudged.Store().At(0).Position[0] += perturbation

	d0 := perturbation
	sumLog := 0.0
	t := 0.0
	for t < duration {
		ref.Tick(dt)
		nudged.Tick(dt)
		t += dt

		sep := separation(ref.Bodies(), nudged.Bodies())
		if sep == 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			continue
		}
		sumLog += math.Log(sep / d0)

		// Renormalize to prevent overflow
		scale := d0 / sep
		a, b := ref.Bodies(), nudged.Bodies()
		for i := range b {
			b[i].Position = a[i].Position.Add(b[i].Position.Sub(a[i].Position).Mul(scale))
			b[i].Velocity = a[i].Velocity.Add(b[i].Velocity.Sub(a[i].Velocity).Mul(scale))
		}
	}

	if t == 0 {
		return 0, nil
	}
	return sumLog / t, nil
}

func separation(a, b []physics.Body) float64 {
	sep := 0.0
	for i := range a {
		dx := b[i].Position.Sub(a[i].Position)
		dv := b[i].Velocity.Sub(a[i].Velocity)
		sep += dx.Dot(dx) + dv.Dot(dv)
	}
	return math.Sqrt(sep)
}
