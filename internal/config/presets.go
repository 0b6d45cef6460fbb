package config

import "sort"

func preset(scenario string, bodies ...BodyConfig) *Config {
	cfg := DefaultConfig()
	cfg.Scenario = scenario
	cfg.Bodies = bodies
	return cfg
}

// Presets are complete configurations for each named scenario.
var Presets = map[string]*Config{
	"empty": preset("empty"),
	"demo": preset("demo",
		BodyConfig{X: 400, Y: 300, VX: 10, VY: 60, Mass: 100},
		BodyConfig{X: 800, Y: 300, VX: -80, VY: 10, Mass: 100},
		BodyConfig{X: 600, Y: 600, VX: 50, VY: -10, Mass: 100},
	),
	// Equal masses 200 apart; v^2/r = G m / d^2 gives v = 50.
	"binary": preset("binary",
		BodyConfig{X: 500, Y: 400, VY: -50, Mass: 100},
		BodyConfig{X: 700, Y: 400, VY: 50, Mass: 100},
	),
	"solar": func() *Config {
		cfg := preset("solar",
			BodyConfig{X: 600, Y: 400, Mass: 600, Fixed: true, Color: "#ffd75f"},
			BodyConfig{X: 750, Y: 400, VY: 200, Mass: 5},
			BodyConfig{X: 850, Y: 400, VY: 154.92, Mass: 10},
			BodyConfig{X: 950, Y: 400, VY: 130.93, Mass: 2},
		)
		cfg.Params.Integrator = "rk4"
		return cfg
	}(),
	"collide": func() *Config {
		cfg := preset("collide",
			BodyConfig{X: 300, Y: 400, VX: 80, Mass: 200},
			BodyConfig{X: 900, Y: 400, VX: -80, Mass: 200},
		)
		cfg.Params.Collisions = "merge"
		cfg.Duration = 5
		return cfg
	}(),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	c.Bodies = append([]BodyConfig(nil), cfg.Bodies...)
	return &c
}

// ListPresets returns the preset names in order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
