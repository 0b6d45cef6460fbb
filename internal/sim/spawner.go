package sim

import (
	"math"

	"github.com/cbass-space/n-body/internal/physics"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Palette is the rotation new bodies are colored from.
var Palette = []colorful.Color{
	rgb(255, 255, 255),
	rgb(242, 96, 151),
	rgb(231, 120, 59),
	rgb(182, 153, 39),
	rgb(94, 179, 81),
	rgb(46, 177, 168),
	rgb(55, 167, 222),
	rgb(142, 141, 246),
}

// Spawner holds the settings the next created body is built from.
type Spawner struct {
	Mass    float64
	Movable bool
	Color   colorful.Color

	next int
}

func NewSpawner() *Spawner {
	return &Spawner{Mass: physics.DefaultMass, Movable: true, Color: Palette[0]}
}

// Spec builds the body to create at pos moving at vel.
func (s *Spawner) Spec(pos, vel mgl64.Vec2) physics.BodySpec {
	return physics.BodySpec{
		Position: pos,
		Velocity: vel,
		Mass:     s.Mass,
		Movable:  s.Movable,
		Color:    s.Color,
	}
}

// Rotate advances Color to the next palette entry.
func (s *Spawner) Rotate() {
	s.next = (s.next + 1) % len(Palette)
	s.Color = Palette[s.next]
}

// Scroll scales the spawn mass exponentially, 0.2 per notch, within the
// slider range.
func (s *Spawner) Scroll(notches float64) {
	s.Mass = physics.Clamp(s.Mass*math.Exp(0.2*notches), physics.MinMass, physics.MaxMass)
}

// LaunchVelocity is the velocity of a body dragged from press to release.
// Dragging away from the spawn point launches it the opposite way, relative
// to the target it was placed around.
func LaunchVelocity(press, release, targetVelocity mgl64.Vec2) mgl64.Vec2 {
	return press.Sub(release).Add(targetVelocity)
}
