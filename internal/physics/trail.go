package physics

import "github.com/go-gl/mathgl/mgl64"

// Trail is a fixed-capacity ring buffer of past positions.
// Push never allocates; once full, the oldest sample is overwritten.
type Trail struct {
	positions []mgl64.Vec2
	count     int
	oldest    int
}

// NewTrail allocates a trail holding at most capacity positions.
// A capacity of zero yields a trail that records nothing.
func NewTrail(capacity int) Trail {
	if capacity < 0 {
		capacity = 0
	}
	return Trail{positions: make([]mgl64.Vec2, capacity)}
}

func (t *Trail) Cap() int    { return len(t.positions) }
func (t *Trail) Len() int    { return t.count }
func (t *Trail) Oldest() int { return t.oldest }

// Push records p as the newest sample.
func (t *Trail) Push(p mgl64.Vec2) {
	m := len(t.positions)
	if m == 0 {
		return
	}
	t.positions[(t.oldest+t.count)%m] = p
	if t.count < m {
		t.count++
	} else {
		t.oldest = (t.oldest + 1) % m
	}
}

// slot maps n (0 = most recent) to its index in the backing array.
func (t *Trail) slot(n int) int {
	m := len(t.positions)
	return (t.oldest + t.count - 1 - n) % m
}

// NthLatest returns the n-th most recent position (n = 0 is the newest).
// ok is false when fewer than n+1 samples are stored.
func (t *Trail) NthLatest(n int) (p mgl64.Vec2, ok bool) {
	if n < 0 || n >= t.count {
		return mgl64.Vec2{}, false
	}
	return t.positions[t.slot(n)], true
}

// Points returns up to limit samples ordered newest first.
// A non-positive limit returns every stored sample.
func (t *Trail) Points(limit int) []mgl64.Vec2 {
	n := t.count
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]mgl64.Vec2, n)
	for i := 0; i < n; i++ {
		out[i] = t.positions[t.slot(i)]
	}
	return out
}

// Clear drops every sample but keeps the capacity.
func (t *Trail) Clear() {
	t.count = 0
	t.oldest = 0
}

// Clone returns a trail with its own backing array.
func (t Trail) Clone() Trail {
	c := t
	c.positions = make([]mgl64.Vec2, len(t.positions))
	copy(c.positions, t.positions)
	return c
}
