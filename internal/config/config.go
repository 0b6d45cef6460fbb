package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/cbass-space/n-body/internal/physics"
	"github.com/cbass-space/n-body/internal/sim"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

const (
	DefaultScenario      = "demo"
	DefaultDt            = sim.DefaultDt
	DefaultDuration      = 10.0
	DefaultTrailCapacity = physics.DefaultTrailCapacity
	DefaultHorizon       = physics.DefaultHorizon
	DefaultMaxBodies     = physics.DefaultMaxBodies
	DefaultIntegrator    = "verlet"
	DefaultCollisions    = "none"
)

// ErrUnknownScenario is returned for a scenario name with no preset.
var ErrUnknownScenario = errors.New("config: unknown scenario")

type Config struct {
	Scenario      string       `yaml:"scenario"`
	Dt            float64      `yaml:"dt"`
	Duration      float64      `yaml:"duration"`
	TrailCapacity int          `yaml:"trail_capacity"`
	Horizon       int          `yaml:"horizon"`
	MaxBodies     int          `yaml:"max_bodies"`
	Predict       bool         `yaml:"predict"`
	Params        ParamsConfig `yaml:"params"`
	Spawn         SpawnConfig  `yaml:"spawn"`
	// Bodies, when set, replace the scenario's bodies.
	Bodies []BodyConfig `yaml:"bodies,omitempty"`
}

type ParamsConfig struct {
	Gravity    float64 `yaml:"gravity"`
	Softening  float64 `yaml:"softening"`
	Density    float64 `yaml:"density"`
	Integrator string  `yaml:"integrator"`
	Collisions string  `yaml:"collisions"`
}

// BodyConfig is one initial body. Bodies are movable unless Fixed is set.
// Color is a hex string; empty picks from the palette by index.
type BodyConfig struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	VX    float64 `yaml:"vx"`
	VY    float64 `yaml:"vy"`
	Mass  float64 `yaml:"mass"`
	Fixed bool    `yaml:"fixed,omitempty"`
	Color string  `yaml:"color,omitempty"`
}

type SpawnConfig struct {
	Mass  float64 `yaml:"mass"`
	Fixed bool    `yaml:"fixed"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:      DefaultScenario,
		Dt:            DefaultDt,
		Duration:      DefaultDuration,
		TrailCapacity: DefaultTrailCapacity,
		Horizon:       DefaultHorizon,
		MaxBodies:     DefaultMaxBodies,
		Predict:       true,
		Params: ParamsConfig{
			Gravity:    physics.DefaultGravity,
			Softening:  physics.DefaultSoftening,
			Density:    physics.DefaultDensity,
			Integrator: DefaultIntegrator,
			Collisions: DefaultCollisions,
		},
		Spawn: SpawnConfig{Mass: physics.DefaultMass},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// PhysicsParams resolves the integrator and collision names.
func (c *Config) PhysicsParams() (physics.Params, error) {
	p := physics.Params{
		Gravity:   c.Params.Gravity,
		Softening: c.Params.Softening,
		Density:   c.Params.Density,
	}
	var err error
	if p.Integrator, err = physics.ParseMethod(c.Params.Integrator); err != nil {
		return p, err
	}
	if p.Collisions, err = physics.ParseCollisionMode(c.Params.Collisions); err != nil {
		return p, err
	}
	return p.Sanitized(), nil
}

func (c *Config) StoreConfig() physics.StoreConfig {
	return physics.StoreConfig{
		MaxBodies:     c.MaxBodies,
		TrailCapacity: c.TrailCapacity,
		Horizon:       c.Horizon,
	}
}

// InitialScenario returns the explicit body list if there is one, otherwise
// the bodies of the named preset.
func (c *Config) InitialScenario() (sim.Scenario, error) {
	bodies := c.Bodies
	name := c.Scenario
	switch {
	case len(bodies) > 0 && name == "":
		name = "custom"
	case len(bodies) == 0:
		preset := GetPreset(c.Scenario)
		if preset == nil {
			return sim.Scenario{}, fmt.Errorf("%q: %w", c.Scenario, ErrUnknownScenario)
		}
		bodies = preset.Bodies
	}

	s := sim.Scenario{Name: name, Bodies: make([]physics.BodySpec, len(bodies))}
	for i, b := range bodies {
		spec, err := b.Spec(i)
		if err != nil {
			return sim.Scenario{}, fmt.Errorf("body %d: %w", i, err)
		}
		s.Bodies[i] = spec
	}
	return s, nil
}

// Options builds the world options the config describes.
func (c *Config) Options() (sim.Options, error) {
	params, err := c.PhysicsParams()
	if err != nil {
		return sim.Options{}, err
	}
	scenario, err := c.InitialScenario()
	if err != nil {
		return sim.Options{}, err
	}
	return sim.Options{
		Store:    c.StoreConfig(),
		Params:   params,
		Scenario: scenario,
		Dt:       c.Dt,
		Predict:  c.Predict,
	}, nil
}

// Spec converts b into a body spec; index picks the palette color when
// Color is empty.
func (b BodyConfig) Spec(index int) (physics.BodySpec, error) {
	color := sim.Palette[index%len(sim.Palette)]
	if b.Color != "" {
		var err error
		if color, err = colorful.Hex(b.Color); err != nil {
			return physics.BodySpec{}, fmt.Errorf("color %q: %w", b.Color, err)
		}
	}
	return physics.BodySpec{
		Position: mgl64.Vec2{b.X, b.Y},
		Velocity: mgl64.Vec2{b.VX, b.VY},
		Mass:     b.Mass,
		Movable:  !b.Fixed,
		Color:    color,
	}, nil
}
