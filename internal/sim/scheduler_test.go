package sim_test

import (
	"github.com/cbass-space/n-body/internal/sim"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Scheduler", func() {
	// A power-of-two step keeps the accumulator arithmetic exact.
	const dt = 1.0 / 64

	var (
		w *sim.World
		s *sim.Scheduler
	)

	BeforeEach(func() {
		w = newWorld(nil)
		s = sim.NewScheduler(w, dt)
	})

	It("runs every whole tick that fits and keeps the remainder", func() {
		Expect(s.Advance(2.5 * dt)).To(Equal(2))
		Expect(s.Accumulator()).To(Equal(0.5 * dt))
		Expect(w.Ticks()).To(Equal(2))
	})

	It("freezes the accumulator while paused", func() {
		s.Advance(2.5 * dt)
		s.Pause()

		Expect(s.Advance(10)).To(BeZero())
		Expect(s.Accumulator()).To(Equal(0.5 * dt))

		s.Resume()
		Expect(s.Advance(0.5 * dt)).To(Equal(1))
		Expect(w.Ticks()).To(Equal(3))
	})

	It("does not burst on resume", func() {
		s.Toggle()
		for i := 0; i < 100; i++ {
			s.Advance(0.1)
		}
		Expect(s.Toggle()).To(BeFalse())
		Expect(s.Advance(dt)).To(Equal(1))
	})

	It("clamps long frames", func() {
		Expect(s.Advance(5)).To(Equal(int(sim.MaxFrame / dt)))
	})

	It("single-steps while paused", func() {
		s.Pause()
		s.Step()
		Expect(w.Ticks()).To(Equal(1))
		Expect(s.Accumulator()).To(BeZero())
		Expect(s.Paused()).To(BeTrue())
	})

	It("ignores negative elapsed time", func() {
		Expect(s.Advance(-1)).To(BeZero())
		Expect(s.Accumulator()).To(BeZero())
	})
})
