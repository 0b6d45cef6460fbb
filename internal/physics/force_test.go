package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func testBodies(specs ...BodySpec) []Body {
	s := NewStore(StoreConfig{TrailCapacity: 4, Horizon: 4})
	for _, spec := range specs {
		if _, err := s.Add(spec); err != nil {
			panic(err)
		}
	}
	return s.Bodies()
}

func TestField_Acceleration(t *testing.T) {
	bodies := testBodies(BodySpec{Position: mgl64.Vec2{3, 4}, Mass: 2, Movable: true})
	p := Params{Gravity: 10, Softening: 0}
	f := NewField(TakeSnapshot(bodies), p)

	a := f.Acceleration(mgl64.Vec2{0, 0}, 0)

	// |a| = G m / r^2 = 10*2/25 along (3,4)/5
	want := mgl64.Vec2{0.8 * 0.6, 0.8 * 0.8}
	if !a.ApproxEqualThreshold(want, 1e-12) {
		t.Errorf("Acceleration = %v, want %v", a, want)
	}
}

func TestField_Softening(t *testing.T) {
	bodies := testBodies(BodySpec{Position: mgl64.Vec2{1, 0}, Mass: 1})
	p := Params{Gravity: 1, Softening: 1}
	f := NewField(TakeSnapshot(bodies), p)

	a := f.Acceleration(mgl64.Vec2{}, 0)
	if math.Abs(a[0]-0.5) > 1e-12 || a[1] != 0 {
		t.Errorf("softened acceleration = %v, want (0.5, 0)", a)
	}
}

func TestField_SingularityGuard(t *testing.T) {
	bodies := testBodies(BodySpec{Position: mgl64.Vec2{5, 5}, Mass: 100})

	tests := []struct {
		name      string
		softening float64
	}{
		{"no softening", 0},
		{"tiny softening", 1e-9},
		{"default softening", DefaultSoftening},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewField(TakeSnapshot(bodies), Params{Gravity: DefaultGravity, Softening: tt.softening})
			a := f.Acceleration(mgl64.Vec2{5, 5}, 0)
			if !Finite(a) {
				t.Fatalf("acceleration at source is not finite: %v", a)
			}
			if a[0] != 0 || a[1] != 0 {
				t.Errorf("acceleration at source = %v, want zero", a)
			}
		})
	}
}

func TestField_NetAccelerationExclude(t *testing.T) {
	bodies := testBodies(
		BodySpec{Position: mgl64.Vec2{-1, 0}, Mass: 1},
		BodySpec{Position: mgl64.Vec2{1, 0}, Mass: 3},
	)
	f := NewField(TakeSnapshot(bodies), Params{Gravity: 1})
	origin := mgl64.Vec2{}

	all := f.NetAcceleration(origin, NoExclude)
	if math.Abs(all[0]-2) > 1e-12 {
		t.Errorf("NoExclude net = %v, want (2, 0)", all)
	}

	without0 := f.NetAcceleration(origin, 0)
	if math.Abs(without0[0]-3) > 1e-12 {
		t.Errorf("exclude 0 net = %v, want (3, 0)", without0)
	}

	without1 := f.NetAcceleration(origin, 1)
	if math.Abs(without1[0]+1) > 1e-12 {
		t.Errorf("exclude 1 net = %v, want (-1, 0)", without1)
	}
}

func TestField_ReadsSnapshotOnly(t *testing.T) {
	bodies := testBodies(BodySpec{Position: mgl64.Vec2{10, 0}, Mass: 1})
	snap := TakeSnapshot(bodies)
	f := NewField(snap, Params{Gravity: 1})

	before := f.NetAcceleration(mgl64.Vec2{}, NoExclude)
	bodies[0].Position = mgl64.Vec2{1, 0}
	after := f.NetAcceleration(mgl64.Vec2{}, NoExclude)

	if before != after {
		t.Errorf("field followed live body: before %v, after %v", before, after)
	}
}
