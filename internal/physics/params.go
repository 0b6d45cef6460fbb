package physics

import (
	"fmt"
	"math"
	"strings"
)

// Method selects the numerical integrator.
type Method int

const (
	Euler Method = iota
	Verlet
	RK4
)

var methodNames = [...]string{"euler", "verlet", "rk4"}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("method(%d)", int(m))
	}
	return methodNames[m]
}

// Next cycles Euler -> Verlet -> RK4 -> Euler.
func (m Method) Next() Method { return (m + 1) % Method(len(methodNames)) }

// ParseMethod maps a case-insensitive name onto a Method.
func ParseMethod(name string) (Method, error) {
	for i, n := range methodNames {
		if strings.EqualFold(name, n) {
			return Method(i), nil
		}
	}
	return 0, fmt.Errorf("unknown integrator %q: %w", name, ErrUnknownParameter)
}

// CollisionMode selects how overlapping bodies are resolved.
type CollisionMode int

const (
	NoCollisions CollisionMode = iota
	Merge
	Elastic
)

var collisionNames = [...]string{"none", "merge", "elastic"}

func (c CollisionMode) String() string {
	if c < 0 || int(c) >= len(collisionNames) {
		return fmt.Sprintf("collisions(%d)", int(c))
	}
	return collisionNames[c]
}

func (c CollisionMode) Next() CollisionMode {
	return (c + 1) % CollisionMode(len(collisionNames))
}

func ParseCollisionMode(name string) (CollisionMode, error) {
	for i, n := range collisionNames {
		if strings.EqualFold(name, n) {
			return CollisionMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown collision mode %q: %w", name, ErrUnknownParameter)
}

const (
	DefaultGravity   = 10000.0
	MinGravity       = 5000.0
	MaxGravity       = 20000.0
	DefaultSoftening = 0.01
	MinSoftening     = 0.0
	MaxSoftening     = 0.05
	DefaultDensity   = 0.001
	MinDensity       = 0.000125
	MaxDensity       = 0.005
	DefaultMass      = 100.0
	MaxMass          = 600.0
)

// Parameter names accepted by SetParam.
const (
	ParamGravity    = "gravity"
	ParamSoftening  = "softening"
	ParamDensity    = "density"
	ParamIntegrator = "integrator"
	ParamCollisions = "collisions"
)

// Params are the tunable simulation parameters.
type Params struct {
	Gravity    float64
	Softening  float64
	Density    float64
	Integrator Method
	Collisions CollisionMode
}

func DefaultParams() Params {
	return Params{
		Gravity:    DefaultGravity,
		Softening:  DefaultSoftening,
		Density:    DefaultDensity,
		Integrator: Verlet,
		Collisions: NoCollisions,
	}
}

// Radius derives a body's radius from its mass: (mass/density)^(1/3).
func (p Params) Radius(mass float64) float64 {
	return math.Cbrt(ClampMass(mass) / p.density())
}

func (p Params) density() float64 {
	if !(p.Density > 0) {
		return MinDensity
	}
	return p.Density
}

// Sanitized returns a copy with degenerate values replaced: non-positive
// density becomes MinDensity, negative softening becomes zero and unknown
// enum values fall back to the defaults.
func (p Params) Sanitized() Params {
	p.Density = p.density()
	if !(p.Softening > 0) {
		p.Softening = 0
	}
	if p.Integrator < Euler || p.Integrator > RK4 {
		p.Integrator = Verlet
	}
	if p.Collisions < NoCollisions || p.Collisions > Elastic {
		p.Collisions = NoCollisions
	}
	return p
}

func (p Params) GetParams() map[string]float64 {
	return map[string]float64{
		ParamGravity:    p.Gravity,
		ParamSoftening:  p.Softening,
		ParamDensity:    p.Density,
		ParamIntegrator: float64(p.Integrator),
		ParamCollisions: float64(p.Collisions),
	}
}

// SetParam updates one parameter by name. Enumerations take their ordinal.
func (p *Params) SetParam(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%s=%v: %w", name, value, ErrParameterBounds)
	}
	switch strings.ToLower(name) {
	case ParamGravity:
		p.Gravity = value
	case ParamSoftening:
		p.Softening = math.Max(value, 0)
	case ParamDensity:
		if value <= 0 {
			value = MinDensity
		}
		p.Density = value
	case ParamIntegrator:
		m := Method(int(value))
		if m < Euler || m > RK4 {
			return fmt.Errorf("integrator=%v: %w", value, ErrParameterBounds)
		}
		p.Integrator = m
	case ParamCollisions:
		c := CollisionMode(int(value))
		if c < NoCollisions || c > Elastic {
			return fmt.Errorf("collisions=%v: %w", value, ErrParameterBounds)
		}
		p.Collisions = c
	default:
		return fmt.Errorf("%q: %w", name, ErrUnknownParameter)
	}
	return nil
}

// Clamp limits v to [lo, hi]. Front-ends use it with the Min*/Max* bounds.
func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
