package sim

import (
	"fmt"

	"github.com/cbass-space/n-body/internal/collision"
	"github.com/cbass-space/n-body/internal/integrators"
	"github.com/cbass-space/n-body/internal/physics"
	"github.com/cbass-space/n-body/internal/predict"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// NoTarget means no body is selected.
const NoTarget = -1

// DefaultDt is the fixed simulation step in seconds.
const DefaultDt = 0.01

// Options configures a World.
type Options struct {
	Store    physics.StoreConfig
	Params   physics.Params
	Scenario Scenario
	// Dt is the step the predictor rolls forward with.
	Dt float64
	// Predict enables trajectory prediction after every tick.
	Predict bool
}

func DefaultOptions() Options {
	return Options{
		Store:    physics.DefaultStoreConfig(),
		Params:   physics.DefaultParams(),
		Scenario: Demo(),
		Dt:       DefaultDt,
		Predict:  true,
	}
}

// World is the simulation state and the operations front-ends drive it with.
// It is not safe for concurrent use; structural changes belong between ticks.
type World struct {
	opts      Options
	store     *physics.Store
	params    physics.Params
	stepper   integrators.Stepper
	predictor *predict.Predictor
	spawner   *Spawner
	target    int
	predict   bool

	snap  physics.Snapshot // reused by Tick
	probe physics.Snapshot // reused by field queries between ticks

	ticks int
	time  float64
	last  collision.Report
}

// NewWorld builds a world and loads opts.Scenario. Bodies beyond the store
// capacity are reported as an error; the ones that fit are kept.
func NewWorld(opts Options) (*World, error) {
	if opts.Dt <= 0 {
		opts.Dt = DefaultDt
	}
	w := &World{
		opts:      opts,
		store:     physics.NewStore(opts.Store),
		predictor: predict.New(opts.Store.Horizon),
		spawner:   NewSpawner(),
		target:    NoTarget,
		predict:   opts.Predict,
	}
	return w, w.Init()
}

// Init restores the configured parameters and initial bodies.
func (w *World) Init() error {
	w.params = w.opts.Params.Sanitized()
	w.stepper = integrators.MustNew(w.params.Integrator)
	w.store.Clear()
	w.target = NoTarget
	w.ticks, w.time = 0, 0
	w.last = collision.Report{}

	for i, spec := range w.opts.Scenario.Bodies {
		if _, err := w.store.Add(spec); err != nil {
			return fmt.Errorf("scenario %s body %d: %w", w.opts.Scenario.Name, i, err)
		}
	}
	w.refreshPredictions()
	return nil
}

// Reset replaces the initial configuration with s and reinitializes.
func (w *World) Reset(s Scenario) error {
	w.opts.Scenario = s
	return w.Init()
}

func (w *World) Scenario() Scenario           { return w.opts.Scenario }
func (w *World) Store() *physics.Store        { return w.store }
func (w *World) Bodies() []physics.Body       { return w.store.Bodies() }
func (w *World) Len() int                     { return w.store.Len() }
func (w *World) Params() physics.Params       { return w.params }
func (w *World) Spawner() *Spawner            { return w.spawner }
func (w *World) Ticks() int                   { return w.ticks }
func (w *World) Time() float64                { return w.time }
func (w *World) Dt() float64                  { return w.opts.Dt }
func (w *World) LastReport() collision.Report { return w.last }

// Tick advances the world by one step of dt: snapshot, integrate every
// movable body against the snapshot, resolve collisions, record trails and
// refresh predictions.
func (w *World) Tick(dt float64) collision.Report {
	if !(dt > 0) {
		return collision.Report{}
	}

	bodies := w.store.Bodies()
	w.snap.Capture(bodies)
	field := physics.NewField(&w.snap, w.params)
	for i := range bodies {
		if bodies[i].Movable {
			bodies[i].Apply(w.stepper.Step(field, i, bodies[i].State(), dt))
		}
	}

	w.last = collision.Resolve(w.store, w.params)
	w.retarget(w.last.Absorbed)

	bodies = w.store.Bodies()
	for i := range bodies {
		if bodies[i].Movable {
			bodies[i].Trail.Push(bodies[i].Position)
		}
	}
	w.ticks++
	w.time += dt

	if w.predict {
		w.predictor.Update(w.store, w.params, w.opts.Dt)
	}
	return w.last
}

// retarget follows the selected body across removals. A removed target is cleared.
func (w *World) retarget(removed []int) {
	if w.target == NoTarget {
		return
	}
	shift := 0
	for _, i := range removed {
		switch {
		case i == w.target:
			w.target = NoTarget
			return
		case i < w.target:
			shift++
		}
	}
	w.target -= shift
}

// AddBody creates a body. The mass is clamped to physics.MinMass.
func (w *World) AddBody(spec physics.BodySpec) (int, error) {
	i, err := w.store.Add(spec)
	if err != nil {
		return i, err
	}
	if w.predict {
		w.predictor.Update(w.store, w.params, w.opts.Dt)
	}
	return i, nil
}

// Spawn creates a body from the spawner settings. When no target is
// selected the spawner moves on to the next palette color.
func (w *World) Spawn(pos, vel mgl64.Vec2) (int, error) {
	i, err := w.AddBody(w.spawner.Spec(pos, vel))
	if err != nil {
		return i, err
	}
	if w.target == NoTarget {
		w.spawner.Rotate()
	}
	return i, nil
}

func (w *World) RemoveBody(i int) error {
	if err := w.store.Remove(i); err != nil {
		return err
	}
	w.retarget([]int{i})
	return nil
}

// EditBody changes a body's mass, movable flag and color.
func (w *World) EditBody(i int, mass float64, movable bool, color colorful.Color) error {
	b := w.store.At(i)
	if b == nil {
		return fmt.Errorf("edit body %d: %w", i, physics.ErrBodyIndex)
	}
	b.Mass = physics.ClampMass(mass)
	b.Movable = movable
	b.Color = color
	return nil
}

// Target returns the selected body index or NoTarget.
func (w *World) Target() int { return w.target }

// TargetBody returns the selected body, or nil.
func (w *World) TargetBody() *physics.Body {
	if w.target == NoTarget {
		return nil
	}
	return w.store.At(w.target)
}

// SelectTarget selects body i; NoTarget clears the selection. A selected
// body's mass, movable flag and color are loaded into the spawner so the
// same settings can be edited back onto it.
func (w *World) SelectTarget(i int) error {
	if i != NoTarget && w.store.At(i) == nil {
		return fmt.Errorf("select target %d: %w", i, physics.ErrBodyIndex)
	}
	w.target = i
	w.loadSpawner()
	return nil
}

func (w *World) loadSpawner() {
	if b := w.TargetBody(); b != nil {
		w.spawner.Mass = b.Mass
		w.spawner.Movable = b.Movable
		w.spawner.Color = b.Color
	}
}

// EditTarget writes the spawner's mass, movable flag and color onto the
// selected body. It is a no-op without a target.
func (w *World) EditTarget() error {
	if w.target == NoTarget {
		return nil
	}
	sp := w.spawner
	return w.EditBody(w.target, sp.Mass, sp.Movable, sp.Color)
}

// CycleTarget moves the selection by dir, wrapping in both directions.
// From no selection, a forward step selects the first body and a backward
// step the last.
func (w *World) CycleTarget(dir int) int {
	n := w.store.Len()
	switch {
	case n == 0:
		w.target = NoTarget
	case w.target == NoTarget && dir >= 0:
		w.target = 0
	case w.target == NoTarget:
		w.target = n - 1
	default:
		w.target = ((w.target+dir)%n + n) % n
	}
	w.loadSpawner()
	return w.target
}

// BodyAt returns the topmost body whose disc contains pos, or NoTarget.
func (w *World) BodyAt(pos mgl64.Vec2) int {
	bodies := w.store.Bodies()
	for i := len(bodies) - 1; i >= 0; i-- {
		if bodies[i].Position.Sub(pos).Len() <= w.params.Radius(bodies[i].Mass) {
			return i
		}
	}
	return NoTarget
}

func (w *World) GetParams() map[string]float64 { return w.params.GetParams() }

// SetParam updates a parameter by name. Enumerations take their ordinal.
func (w *World) SetParam(name string, value float64) error {
	if err := w.params.SetParam(name, value); err != nil {
		return err
	}
	w.stepper = integrators.MustNew(w.params.Integrator)
	return nil
}

func (w *World) SetIntegrator(m physics.Method) error {
	return w.SetParam(physics.ParamIntegrator, float64(m))
}

func (w *World) SetCollisionMode(c physics.CollisionMode) error {
	return w.SetParam(physics.ParamCollisions, float64(c))
}

// SetPredictions enables or disables the trajectory predictor.
func (w *World) SetPredictions(on bool) {
	w.predict = on
	w.refreshPredictions()
}

func (w *World) Predictions() bool { return w.predict }

func (w *World) refreshPredictions() {
	if w.predict {
		w.predictor.Update(w.store, w.params, w.opts.Dt)
		return
	}
	for i := range w.store.Bodies() {
		b := w.store.At(i)
		b.Prediction.Reset(b.Position)
	}
}

// Radius is the drawn and collision radius of a body of the given mass.
func (w *World) Radius(mass float64) float64 { return w.params.Radius(mass) }

// NetAcceleration samples the gravitational field of the current bodies at pos.
func (w *World) NetAcceleration(pos mgl64.Vec2, exclude int) mgl64.Vec2 {
	w.probe.Capture(w.store.Bodies())
	return physics.NewField(&w.probe, w.params).NetAcceleration(pos, exclude)
}

// FieldGrid samples the field at the centers of a rows x cols grid spanning
// [min, max]. The result is indexed [row][col].
func (w *World) FieldGrid(min, max mgl64.Vec2, cols, rows int) [][]mgl64.Vec2 {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	w.probe.Capture(w.store.Bodies())
	field := physics.NewField(&w.probe, w.params)

	cell := mgl64.Vec2{(max[0] - min[0]) / float64(cols), (max[1] - min[1]) / float64(rows)}
	grid := make([][]mgl64.Vec2, rows)
	for r := range grid {
		grid[r] = make([]mgl64.Vec2, cols)
		for c := range grid[r] {
			pos := mgl64.Vec2{min[0] + (float64(c)+0.5)*cell[0], min[1] + (float64(r)+0.5)*cell[1]}
			grid[r][c] = field.NetAcceleration(pos, physics.NoExclude)
		}
	}
	return grid
}

// Energy is the total kinetic plus softened potential energy.
func (w *World) Energy() float64 { return physics.Energy(w.store.Bodies(), w.params) }

func (w *World) Momentum() mgl64.Vec2 { return physics.Momentum(w.store.Bodies()) }

// AngularMomentum is the total angular momentum about the origin.
func (w *World) AngularMomentum() float64 { return physics.AngularMomentum(w.store.Bodies()) }
