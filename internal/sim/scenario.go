package sim

import (
	"github.com/cbass-space/n-body/internal/physics"
	"github.com/go-gl/mathgl/mgl64"
)

// Empty starts with no bodies.
func Empty() Scenario {
	return Scenario{Name: "empty"}
}

// Demo is the three-body configuration the simulator opens with.
func Demo() Scenario {
	return Scenario{
		Name: "demo",
		Bodies: []physics.BodySpec{
			{Position: mgl64.Vec2{400, 300}, Velocity: mgl64.Vec2{10, 60}, Mass: 100, Movable: true, Color: Palette[0]},
			{Position: mgl64.Vec2{800, 300}, Velocity: mgl64.Vec2{-80, 10}, Mass: 100, Movable: true, Color: Palette[1]},
			{Position: mgl64.Vec2{600, 600}, Velocity: mgl64.Vec2{50, -10}, Mass: 100, Movable: true, Color: Palette[2]},
		},
	}
}
