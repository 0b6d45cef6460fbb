package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestTrail_NthLatest(t *testing.T) {
	const capacity = 4
	tr := NewTrail(capacity)

	for k := 1; k <= capacity; k++ {
		tr.Push(mgl64.Vec2{float64(k), 0})

		got, ok := tr.NthLatest(0)
		if !ok || got[0] != float64(k) {
			t.Fatalf("after %d pushes NthLatest(0) = %v, %v; want %d", k, got, ok, k)
		}
		if tr.Len() != k {
			t.Errorf("Len() = %d, want %d", tr.Len(), k)
		}
	}

	oldest, ok := tr.NthLatest(capacity - 1)
	if !ok || oldest[0] != 1 {
		t.Errorf("NthLatest(%d) = %v, want first sample", capacity-1, oldest)
	}
}

func TestTrail_Overwrite(t *testing.T) {
	const capacity = 3
	tr := NewTrail(capacity)

	for k := 1; k <= capacity+1; k++ {
		tr.Push(mgl64.Vec2{float64(k), float64(k)})
	}

	if tr.Len() != capacity {
		t.Fatalf("Len() = %d, want %d", tr.Len(), capacity)
	}
	if tr.Oldest() != 1 {
		t.Errorf("Oldest() = %d, want 1", tr.Oldest())
	}

	for _, p := range tr.Points(0) {
		if p[0] == 1 {
			t.Error("first sample still retrievable after capacity+1 pushes")
		}
	}

	want := []float64{4, 3, 2}
	for n, w := range want {
		got, ok := tr.NthLatest(n)
		if !ok || got[0] != w {
			t.Errorf("NthLatest(%d) = %v, want %v", n, got, w)
		}
	}

	if _, ok := tr.NthLatest(capacity); ok {
		t.Error("NthLatest beyond count should report !ok")
	}
}

func TestTrail_PointsLimit(t *testing.T) {
	tr := NewTrail(8)
	for k := 0; k < 20; k++ {
		tr.Push(mgl64.Vec2{float64(k), 0})
	}

	pts := tr.Points(3)
	if len(pts) != 3 {
		t.Fatalf("Points(3) returned %d samples", len(pts))
	}
	if pts[0][0] != 19 || pts[2][0] != 17 {
		t.Errorf("Points(3) = %v, want newest first", pts)
	}
}

func TestTrail_ZeroCapacity(t *testing.T) {
	tr := NewTrail(0)
	tr.Push(mgl64.Vec2{1, 1})

	if tr.Len() != 0 {
		t.Errorf("zero-capacity trail recorded %d samples", tr.Len())
	}
	if _, ok := tr.NthLatest(0); ok {
		t.Error("zero-capacity trail returned a sample")
	}
}

func TestTrail_CloneIndependent(t *testing.T) {
	tr := NewTrail(2)
	tr.Push(mgl64.Vec2{1, 0})

	c := tr.Clone()
	c.Push(mgl64.Vec2{2, 0})

	if tr.Len() != 1 {
		t.Errorf("clone push changed original length to %d", tr.Len())
	}
	if got, _ := tr.NthLatest(0); got[0] != 1 {
		t.Errorf("original newest = %v after clone push", got)
	}
}
