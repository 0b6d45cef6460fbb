package sim_test

import (
	"context"
	"errors"
	"math"

	"github.com/cbass-space/n-body/internal/integrators"
	"github.com/cbass-space/n-body/internal/physics"
	"github.com/cbass-space/n-body/internal/sim"
	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func newWorld(mutate func(*sim.Options)) *sim.World {
	opts := sim.DefaultOptions()
	opts.Predict = false
	if mutate != nil {
		mutate(&opts)
	}
	w, err := sim.NewWorld(opts)
	Expect(err).NotTo(HaveOccurred())
	return w
}

func expectVec(got, want mgl64.Vec2, tol float64) {
	ExpectWithOffset(1, got[0]).To(BeNumerically("~", want[0], tol))
	ExpectWithOffset(1, got[1]).To(BeNumerically("~", want[1], tol))
}

var _ = Describe("World", func() {
	Describe("Tick", func() {
		It("matches the golden single Euler step of the demo scenario", func() {
			w := newWorld(func(o *sim.Options) { o.Params.Integrator = physics.Euler })

			w.Tick(0.01)

			b := w.Bodies()
			expectVec(b[0].Position, mgl64.Vec2{400.10105169245793, 300.60064003868746}, 1e-9)
			expectVec(b[0].Velocity, mgl64.Vec2{10.105169245791593, 60.064003868745985}, 1e-9)
			expectVec(b[1].Position, mgl64.Vec2{799.1989483075421, 300.10064003868746}, 1e-9)
			expectVec(b[1].Velocity, mgl64.Vec2{-80.1051692457916, 10.064003868745985}, 1e-9)
			expectVec(b[2].Position, mgl64.Vec2{600.5, 599.8987199226251}, 1e-9)
			expectVec(b[2].Velocity, mgl64.Vec2{50.0, -10.12800773749197}, 1e-9)
			Expect(w.Ticks()).To(Equal(1))
			Expect(w.Time()).To(Equal(0.01))
		})

		It("evaluates every force against the pre-tick positions", func() {
			w := newWorld(func(o *sim.Options) { o.Params.Integrator = physics.Euler })
			before := w.Store().Clone()
			field := physics.NewField(physics.TakeSnapshot(before.Bodies()), w.Params())

			w.Tick(0.01)

			for i := range before.Bodies() {
				want := integrators.NewEuler().Step(field, i, before.At(i).State(), 0.01)
				Expect(w.Bodies()[i].State()).To(Equal(want), "body %d", i)
			}
		})

		It("never moves immovable bodies or records their trail", func() {
			w := newWorld(nil)
			Expect(w.EditBody(2, 100, false, sim.Palette[2])).To(Succeed())

			for i := 0; i < 5; i++ {
				w.Tick(0.01)
			}

			Expect(w.Bodies()[2].Position).To(Equal(mgl64.Vec2{600, 600}))
			Expect(w.Bodies()[2].Trail.Len()).To(BeZero())
			Expect(w.Bodies()[0].Trail.Len()).To(Equal(5))
			newest, ok := w.Bodies()[0].Trail.NthLatest(0)
			Expect(ok).To(BeTrue())
			Expect(newest).To(Equal(w.Bodies()[0].Position))
		})

		It("ignores non-positive steps", func() {
			w := newWorld(nil)
			w.Tick(0)
			w.Tick(math.NaN())
			Expect(w.Ticks()).To(BeZero())
			Expect(w.Bodies()[0].Position).To(Equal(mgl64.Vec2{400, 300}))
		})

		It("refreshes predictions when enabled", func() {
			w := newWorld(func(o *sim.Options) { o.Predict = true })
			w.Tick(0.01)

			b := w.Bodies()[0]
			Expect(b.Prediction.Horizon()).To(Equal(physics.DefaultHorizon))
			Expect(b.Prediction.Positions[0]).NotTo(Equal(b.Position))

			w.SetPredictions(false)
			Expect(w.Bodies()[0].Prediction.Positions[0]).To(Equal(w.Bodies()[0].Position))
		})

		It("merges colliding bodies and follows the target", func() {
			w := newWorld(func(o *sim.Options) {
				o.Params.Collisions = physics.Merge
				o.Scenario = sim.Scenario{Name: "pile", Bodies: []physics.BodySpec{
					{Position: mgl64.Vec2{0, 0}, Mass: 100, Movable: true},
					{Position: mgl64.Vec2{10, 0}, Mass: 100, Movable: true},
					{Position: mgl64.Vec2{1000, 0}, Mass: 100, Movable: true},
				}}
			})
			Expect(w.SelectTarget(2)).To(Succeed())

			rep := w.Tick(0.01)

			Expect(rep.Merges).To(Equal(1))
			Expect(w.Len()).To(Equal(2))
			Expect(w.Bodies()[0].Mass).To(Equal(200.0))
			Expect(w.Target()).To(Equal(1))
		})
	})

	Describe("integrator stability", func() {
		// A light satellite on a circular orbit around a heavy primary.
		orbit := func(m physics.Method) float64 {
			const (
				G    = physics.DefaultGravity
				eps  = physics.DefaultSoftening
				big  = 5000.0
				tiny = 0.1
				d    = 100.0
			)
			r1 := d * tiny / (big + tiny)
			r2 := d * big / (big + tiny)
			omega := math.Sqrt(G * big / (d*d + eps*eps) / r2)

			w := newWorld(func(o *sim.Options) {
				o.Params.Integrator = m
				o.Scenario = sim.Scenario{Name: "orbit", Bodies: []physics.BodySpec{
					{Position: mgl64.Vec2{-r1, 0}, Velocity: mgl64.Vec2{0, -omega * r1}, Mass: big, Movable: true},
					{Position: mgl64.Vec2{r2, 0}, Velocity: mgl64.Vec2{0, omega * r2}, Mass: tiny, Movable: true},
				}}
			})

			var worst float64
			for i := 0; i < 10000; i++ {
				w.Tick(0.01)
				sep := w.Bodies()[0].Position.Sub(w.Bodies()[1].Position).Len()
				worst = math.Max(worst, math.Abs(sep-d)/d)
			}
			return worst
		}

		It("keeps an RK4 circular orbit within 1% over 10000 ticks", func() {
			Expect(orbit(physics.RK4)).To(BeNumerically("<", 0.01))
		})

		It("lets semi-implicit Euler drift further than RK4", func() {
			euler, rk4 := orbit(physics.Euler), orbit(physics.RK4)
			Expect(euler).To(BeNumerically(">", 0.01))
			Expect(euler).To(BeNumerically(">", rk4))
		})
	})

	Describe("bodies", func() {
		It("reports a full store", func() {
			w := newWorld(func(o *sim.Options) { o.Store.MaxBodies = 3 })

			_, err := w.AddBody(physics.BodySpec{Mass: 1})
			Expect(errors.Is(err, physics.ErrStoreFull)).To(BeTrue())
			Expect(w.Len()).To(Equal(3))
		})

		It("reports a scenario that does not fit", func() {
			opts := sim.DefaultOptions()
			opts.Store.MaxBodies = 2
			_, err := sim.NewWorld(opts)
			Expect(err).To(MatchError(physics.ErrStoreFull))
		})

		It("clamps non-positive masses", func() {
			w := newWorld(nil)
			i, err := w.AddBody(physics.BodySpec{Mass: -5})
			Expect(err).NotTo(HaveOccurred())
			Expect(w.Bodies()[i].Mass).To(Equal(physics.MinMass))

			Expect(w.EditBody(i, 0, true, sim.Palette[0])).To(Succeed())
			Expect(w.Bodies()[i].Mass).To(Equal(physics.MinMass))
		})

		It("rejects bad indices", func() {
			w := newWorld(nil)
			Expect(w.RemoveBody(3)).To(MatchError(physics.ErrBodyIndex))
			Expect(w.EditBody(-1, 1, true, sim.Palette[0])).To(MatchError(physics.ErrBodyIndex))
			Expect(w.SelectTarget(7)).To(MatchError(physics.ErrBodyIndex))
		})

		It("restores the initial scenario on Init", func() {
			w := newWorld(nil)
			w.Tick(0.01)
			_, _ = w.AddBody(physics.BodySpec{Mass: 1})
			Expect(w.SetParam(physics.ParamGravity, 6000)).To(Succeed())

			Expect(w.Init()).To(Succeed())

			Expect(w.Len()).To(Equal(3))
			Expect(w.Bodies()[0].Position).To(Equal(mgl64.Vec2{400, 300}))
			Expect(w.Params()).To(Equal(physics.DefaultParams()))
			Expect(w.Ticks()).To(BeZero())
		})

		It("switches scenarios on Reset", func() {
			w := newWorld(nil)
			Expect(w.Reset(sim.Empty())).To(Succeed())
			Expect(w.Len()).To(BeZero())
			Expect(w.Scenario().Name).To(Equal("empty"))
		})
	})

	Describe("parameters", func() {
		It("sets parameters by name", func() {
			w := newWorld(nil)

			Expect(w.SetParam("gravity", 7000)).To(Succeed())
			Expect(w.SetIntegrator(physics.RK4)).To(Succeed())
			Expect(w.SetCollisionMode(physics.Elastic)).To(Succeed())

			Expect(w.GetParams()).To(HaveKeyWithValue("gravity", 7000.0))
			Expect(w.Params().Integrator).To(Equal(physics.RK4))
			Expect(w.Params().Collisions).To(Equal(physics.Elastic))
		})

		It("rejects unknown names and non-finite values", func() {
			w := newWorld(nil)
			Expect(w.SetParam("friction", 1)).To(MatchError(physics.ErrUnknownParameter))
			Expect(w.SetParam("gravity", math.Inf(1))).To(MatchError(physics.ErrParameterBounds))
			Expect(w.SetIntegrator(physics.Method(9))).To(MatchError(physics.ErrParameterBounds))
			Expect(w.Params()).To(Equal(physics.DefaultParams()))
		})

		It("derives radius from density", func() {
			w := newWorld(nil)
			Expect(w.Radius(1000)).To(BeNumerically("~", 100, 1e-9))
			Expect(w.SetParam("density", 0)).To(Succeed())
			Expect(w.Radius(0.125)).To(BeNumerically("~", 10, 1e-9))
		})
	})

	Describe("targeting", func() {
		It("cycles in both directions and wraps", func() {
			w := newWorld(nil)
			Expect(w.Target()).To(Equal(sim.NoTarget))

			Expect(w.CycleTarget(1)).To(Equal(0))
			Expect(w.CycleTarget(1)).To(Equal(1))
			Expect(w.CycleTarget(1)).To(Equal(2))
			Expect(w.CycleTarget(1)).To(Equal(0))
			Expect(w.CycleTarget(-1)).To(Equal(2))

			Expect(w.SelectTarget(sim.NoTarget)).To(Succeed())
			Expect(w.CycleTarget(-1)).To(Equal(2))
		})

		It("clears the selection when the world is empty", func() {
			w := newWorld(func(o *sim.Options) { o.Scenario = sim.Empty() })
			Expect(w.CycleTarget(1)).To(Equal(sim.NoTarget))
			Expect(w.TargetBody()).To(BeNil())
		})

		It("follows the target across removals", func() {
			w := newWorld(nil)
			Expect(w.SelectTarget(2)).To(Succeed())

			Expect(w.RemoveBody(0)).To(Succeed())
			Expect(w.Target()).To(Equal(1))
			Expect(w.TargetBody().Position).To(Equal(mgl64.Vec2{600, 600}))

			Expect(w.RemoveBody(1)).To(Succeed())
			Expect(w.Target()).To(Equal(sim.NoTarget))
		})

		It("loads the selected body into the spawner", func() {
			w := newWorld(nil)
			Expect(w.EditBody(2, 250, false, sim.Palette[5])).To(Succeed())

			Expect(w.SelectTarget(2)).To(Succeed())
			sp := w.Spawner()
			Expect(sp.Mass).To(Equal(250.0))
			Expect(sp.Movable).To(BeFalse())
			Expect(sp.Color).To(Equal(sim.Palette[5]))

			Expect(w.CycleTarget(1)).To(Equal(0))
			Expect(sp.Mass).To(Equal(100.0))
			Expect(sp.Movable).To(BeTrue())
			Expect(sp.Color).To(Equal(sim.Palette[0]))
		})

		It("edits the target from the spawner settings", func() {
			w := newWorld(nil)
			Expect(w.EditTarget()).To(Succeed())
			Expect(w.Bodies()[0].Mass).To(Equal(100.0))

			Expect(w.SelectTarget(1)).To(Succeed())
			sp := w.Spawner()
			sp.Mass, sp.Movable, sp.Color = 5000, false, sim.Palette[7]
			Expect(w.EditTarget()).To(Succeed())

			b := w.Bodies()[1]
			Expect(b.Mass).To(Equal(5000.0))
			Expect(b.Movable).To(BeFalse())
			Expect(b.Color).To(Equal(sim.Palette[7]))
			Expect(w.Bodies()[0].Mass).To(Equal(100.0))
		})

		It("hit-tests bodies by radius", func() {
			w := newWorld(nil)
			r := w.Radius(100)

			Expect(w.BodyAt(mgl64.Vec2{400 + r*0.9, 300})).To(Equal(0))
			Expect(w.BodyAt(mgl64.Vec2{400 + r*1.1, 300})).To(Equal(sim.NoTarget))
		})
	})

	Describe("spawning", func() {
		It("rotates the palette only without a target", func() {
			w := newWorld(nil)
			sp := w.Spawner()
			Expect(sp.Color).To(Equal(sim.Palette[0]))

			i, err := w.Spawn(mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0})
			Expect(err).NotTo(HaveOccurred())
			Expect(w.Bodies()[i].Color).To(Equal(sim.Palette[0]))
			Expect(w.Bodies()[i].Mass).To(Equal(physics.DefaultMass))
			Expect(sp.Color).To(Equal(sim.Palette[1]))

			Expect(w.SelectTarget(1)).To(Succeed())
			Expect(sp.Color).To(Equal(sim.Palette[1]))
			_, err = w.Spawn(mgl64.Vec2{50, 0}, mgl64.Vec2{})
			Expect(err).NotTo(HaveOccurred())
			Expect(sp.Color).To(Equal(sim.Palette[1]))
		})

		It("wraps the palette", func() {
			sp := sim.NewSpawner()
			for range sim.Palette {
				sp.Rotate()
			}
			Expect(sp.Color).To(Equal(sim.Palette[0]))
		})

		It("launches opposite the drag, relative to the target", func() {
			v := sim.LaunchVelocity(mgl64.Vec2{10, 10}, mgl64.Vec2{4, 12}, mgl64.Vec2{1, 1})
			Expect(v).To(Equal(mgl64.Vec2{7, -1}))
		})

		It("scales the spawn mass within range", func() {
			sp := sim.NewSpawner()
			sp.Scroll(1)
			Expect(sp.Mass).To(BeNumerically("~", physics.DefaultMass*math.Exp(0.2), 1e-9))
			sp.Scroll(100)
			Expect(sp.Mass).To(Equal(physics.MaxMass))
		})
	})

	Describe("field sampling", func() {
		It("samples cell centers", func() {
			w := newWorld(nil)
			grid := w.FieldGrid(mgl64.Vec2{0, 0}, mgl64.Vec2{1000, 800}, 4, 2)

			Expect(grid).To(HaveLen(2))
			Expect(grid[0]).To(HaveLen(4))
			Expect(grid[1][2]).To(Equal(w.NetAcceleration(mgl64.Vec2{625, 600}, physics.NoExclude)))
		})

		It("is empty for degenerate grids", func() {
			Expect(newWorld(nil).FieldGrid(mgl64.Vec2{}, mgl64.Vec2{1, 1}, 0, 3)).To(BeNil())
		})
	})
})

var _ = Describe("Run", func() {
	It("records a sample per tick", func() {
		w := newWorld(nil)
		res, err := sim.Run(context.Background(), w, sim.Config{Dt: 0.01, Duration: 1}, nil)

		Expect(err).NotTo(HaveOccurred())
		Expect(res.StepsTaken).To(Equal(100))
		Expect(res.Times).To(HaveLen(101))
		Expect(res.Energy).To(HaveLen(101))
		Expect(res.BodyCount[100]).To(Equal(3))
	})

	It("reports divergence as a TickError", func() {
		w := newWorld(nil)
		_, err := w.AddBody(physics.BodySpec{Position: mgl64.Vec2{math.NaN(), 0}, Mass: 1, Movable: true})
		Expect(err).NotTo(HaveOccurred())

		res, err := sim.Run(context.Background(), w, sim.Config{Dt: 0.01, Duration: 1, ValidateState: true}, nil)

		var tickErr *sim.TickError
		Expect(errors.As(err, &tickErr)).To(BeTrue())
		Expect(tickErr.Tick).To(Equal(1))
		Expect(errors.Is(err, physics.ErrInvalidState)).To(BeTrue())
		Expect(res.StepsTaken).To(BeZero())
	})

	It("stops when the context is canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		res, err := sim.Run(ctx, newWorld(nil), sim.Config{Dt: 0.01, Duration: 1}, nil)
		Expect(err).To(MatchError(context.Canceled))
		Expect(res.StepsTaken).To(BeZero())
	})

	It("rejects invalid configs", func() {
		_, err := sim.Run(context.Background(), newWorld(nil), sim.Config{Dt: 0, Duration: 1}, nil)
		Expect(err).To(HaveOccurred())
	})
})
