package sim

import "math"

// MaxFrame caps the wall time a single Advance may feed the accumulator,
// so a stalled frame cannot trigger an unbounded catch-up.
const MaxFrame = 0.25

// Scheduler drives a World with a fixed step, decoupled from the frame rate.
// While paused the accumulator is frozen: elapsed time is dropped and the
// remainder from before the pause is kept, so resuming never bursts.
type Scheduler struct {
	world  *World
	dt     float64
	acc    float64
	paused bool
}

func NewScheduler(w *World, dt float64) *Scheduler {
	if !(dt > 0) {
		dt = DefaultDt
	}
	return &Scheduler{world: w, dt: dt}
}

// Advance feeds elapsed wall seconds into the accumulator and runs every
// whole tick that fits. It returns the number of ticks run.
func (s *Scheduler) Advance(elapsed float64) int {
	if s.paused || !(elapsed > 0) {
		return 0
	}
	s.acc += math.Min(elapsed, MaxFrame)

	n := 0
	for s.acc >= s.dt {
		s.world.Tick(s.dt)
		s.acc -= s.dt
		n++
	}
	return n
}

// Step runs exactly one tick, paused or not. The accumulator is untouched.
func (s *Scheduler) Step() {
	s.world.Tick(s.dt)
}

func (s *Scheduler) Pause()  { s.paused = true }
func (s *Scheduler) Resume() { s.paused = false }

// Toggle flips the paused state and returns the new one.
func (s *Scheduler) Toggle() bool {
	s.paused = !s.paused
	return s.paused
}

func (s *Scheduler) Paused() bool         { return s.paused }
func (s *Scheduler) Dt() float64          { return s.dt }
func (s *Scheduler) Accumulator() float64 { return s.acc }
func (s *Scheduler) World() *World        { return s.world }
