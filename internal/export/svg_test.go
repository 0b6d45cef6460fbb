package export

import (
	"strings"
	"testing"

	"github.com/cbass-space/n-body/internal/physics"
	"github.com/cbass-space/n-body/internal/sim"
	"github.com/go-gl/mathgl/mgl64"
)

func tickedWorld(t *testing.T, ticks int) *sim.World {
	t.Helper()
	w, err := sim.NewWorld(sim.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < ticks; i++ {
		w.Tick(0.01)
	}
	return w
}

func TestWorldToSVG(t *testing.T) {
	w := tickedWorld(t, 20)
	svg := WorldToSVG(w.Bodies(), w.Params(), 800, 600, DefaultSVGOptions())

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not an SVG document")
	}
	if n := strings.Count(svg, "<circle"); n != 3 {
		t.Errorf("%d circles, want 3", n)
	}
	// One trail and one prediction per body.
	if n := strings.Count(svg, "<path"); n != 6 {
		t.Errorf("%d paths, want 6", n)
	}
	if !strings.Contains(svg, sim.Palette[1].Hex()) {
		t.Error("body color missing")
	}
}

func TestWorldToSVGOptions(t *testing.T) {
	w := tickedWorld(t, 20)
	svg := WorldToSVG(w.Bodies(), w.Params(), 400, 400, SVGOptions{})

	if strings.Contains(svg, "<path") {
		t.Error("paths drawn with trails and predictions off")
	}
	if !strings.Contains(svg, `fill="#0a0a0a"`) {
		t.Error("default background missing")
	}
}

func TestWorldToSVGFixedBodiesFilled(t *testing.T) {
	s := physics.NewStore(physics.DefaultStoreConfig())
	_, _ = s.Add(physics.BodySpec{Position: mgl64.Vec2{10, 10}, Mass: 100, Color: sim.Palette[3]})

	svg := WorldToSVG(s.Bodies(), physics.DefaultParams(), 100, 100, DefaultSVGOptions())
	if !strings.Contains(svg, `fill="`+sim.Palette[3].Hex()+`"`) {
		t.Error("immovable body should be filled")
	}
}

func TestWorldToSVGEmpty(t *testing.T) {
	svg := WorldToSVG(nil, physics.DefaultParams(), 100, 100, DefaultSVGOptions())
	if strings.Contains(svg, "<circle") || !strings.HasSuffix(svg, "</svg>") {
		t.Errorf("unexpected output for no bodies: %s", svg)
	}
}
