package viz

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"

	"github.com/cbass-space/n-body/internal/physics"
	"github.com/cbass-space/n-body/internal/sim"
)

const (
	defaultWidth    = 80
	defaultHeight   = 24
	panelWidth      = 46
	historyCapacity = 600

	gravityStep   = 1000.0
	softeningStep = 0.005
	densityFactor = 2.0
)

// Viewport framing the demo scenario at startup.
var (
	viewMin = mgl64.Vec2{0, 0}
	viewMax = mgl64.Vec2{1200, 900}
)

type TickMsg time.Time

// Options configures the live view.
type Options struct {
	// Dt is the fixed simulation step.
	Dt float64
	// TrailLength is how many trail samples are drawn per body.
	TrailLength int
	Width       int
	Height      int
	Theme       string
}

func DefaultOptions() Options {
	return Options{
		Dt:          sim.DefaultDt,
		TrailLength: 128,
		Width:       defaultWidth,
		Height:      defaultHeight,
		Theme:       ThemeNight.Name,
	}
}

// Model is the bubbletea model of the live view. The world is advanced by a
// fixed-step scheduler fed with wall-clock time between frames.
type Model struct {
	world  *sim.World
	sched  *sim.Scheduler
	canvas *Canvas
	camera *Camera
	opts   Options
	theme  Theme
	styles styles

	last          time.Time
	showField     bool
	showHelp      bool
	energyHistory []float64
	event         string
	err           error
}

func NewModel(w *sim.World, opts Options) Model {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}
	canvas := NewCanvas(opts.Width, opts.Height)
	theme := GetTheme(opts.Theme)
	return Model{
		world:         w,
		sched:         sim.NewScheduler(w, opts.Dt),
		canvas:        canvas,
		camera:        FitCamera(viewMin, viewMax, canvas.SubWidth(), canvas.SubHeight()),
		opts:          opts,
		theme:         theme,
		styles:        newStyles(theme),
		energyHistory: make([]float64, 0, historyCapacity),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Scheduler exposes the scheduler driving the world.
func (m Model) Scheduler() *sim.Scheduler { return m.sched }

// Update handles input events and advances the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.selectAt(msg.X, msg.Y)
			m.follow()
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		now := time.Time(msg)
		if !m.last.IsZero() {
			if n := m.sched.Advance(now.Sub(m.last).Seconds()); n > 0 {
				m.recordEnergy()
			}
		}
		m.last = now
		m.follow()
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	w := m.world
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		if m.sched.Toggle() {
			m.note("paused")
		} else {
			m.note("resumed")
		}
	case ".":
		m.sched.Step()
		m.recordEnergy()
	case "r":
		m.check(w.Init())
		m.energyHistory = m.energyHistory[:0]
		m.camera = FitCamera(viewMin, viewMax, m.canvas.SubWidth(), m.canvas.SubHeight())
		m.note("reset to " + w.Scenario().Name)
	case "i":
		m.check(w.SetIntegrator(w.Params().Integrator.Next()))
		m.note("integrator " + w.Params().Integrator.String())
	case "c":
		m.check(w.SetCollisionMode(w.Params().Collisions.Next()))
		m.note("collisions " + w.Params().Collisions.String())
	case "[":
		w.CycleTarget(-1)
	case "]":
		w.CycleTarget(1)
	case "esc":
		m.check(w.SelectTarget(sim.NoTarget))
	case "x":
		if t := w.Target(); t != sim.NoTarget {
			m.check(w.RemoveBody(t))
			m.note(fmt.Sprintf("removed body %d", t))
		}
	case "g":
		m.showField = !m.showField
	case "p":
		w.SetPredictions(!w.Predictions())
	case "+", "=":
		m.camera.ZoomIn()
	case "-", "_":
		m.camera.ZoomOut()
	case "n":
		m.spawn()
	case "m":
		w.Spawner().Scroll(1)
		m.check(w.EditTarget())
	case "M":
		w.Spawner().Scroll(-1)
		m.check(w.EditTarget())
	case "f":
		w.Spawner().Movable = !w.Spawner().Movable
		m.check(w.EditTarget())
	case "1", "2":
		g := w.Params().Gravity + float64(keySign(msg, "2"))*gravityStep
		m.setParam(physics.ParamGravity, g, physics.MinGravity, physics.MaxGravity)
	case "3", "4":
		s := w.Params().Softening + float64(keySign(msg, "4"))*softeningStep
		m.setParam(physics.ParamSoftening, s, physics.MinSoftening, physics.MaxSoftening)
	case "5", "6":
		d := w.Params().Density * math.Pow(densityFactor, float64(keySign(msg, "6")))
		m.setParam(physics.ParamDensity, d, physics.MinDensity, physics.MaxDensity)
	case "t":
		m.theme = NextTheme(m.theme)
		m.styles = newStyles(m.theme)
	case "?":
		m.showHelp = !m.showHelp
	}
	m.follow()
	return m, nil
}

// keySign is +1 for the key that raises a value and -1 for its pair.
func keySign(msg tea.KeyMsg, up string) int {
	if msg.String() == up {
		return 1
	}
	return -1
}

// setParam clamps value to [lo, hi] and applies it to the running world.
func (m *Model) setParam(name string, value, lo, hi float64) {
	value = physics.Clamp(value, lo, hi)
	if err := m.world.SetParam(name, value); err != nil {
		m.check(err)
		return
	}
	m.note(fmt.Sprintf("%s %.4g", name, value))
}

// follow centers the camera on the selected body.
func (m *Model) follow() {
	if t := m.world.TargetBody(); t != nil {
		m.camera.Center = t.Position
	}
}

// spawn launches a body a quarter view to the right of the camera center,
// as if dragged back for a circular orbit around the target when there is one.
func (m *Model) spawn() {
	w := m.world
	offset := mgl64.Vec2{float64(m.canvas.SubWidth()) / 4 / m.camera.Zoom, 0}
	pos := m.camera.Center.Add(offset)

	var targetVel, drag mgl64.Vec2
	if t := w.TargetBody(); t != nil {
		targetVel = t.Velocity
		r := pos.Sub(t.Position)
		if d := r.Len(); d > physics.Epsilon {
			speed := math.Sqrt(w.Params().Gravity * t.Mass / d)
			drag = mgl64.Vec2{-r[1], r[0]}.Mul(speed / d)
		}
	}

	i, err := w.Spawn(pos, sim.LaunchVelocity(pos, pos.Sub(drag), targetVel))
	if err != nil {
		m.check(err)
		return
	}
	m.note(fmt.Sprintf("spawned body %d", i))
}

func (m *Model) selectAt(cellX, cellY int) {
	// Account for the canvas padding of one row and two columns.
	x := (cellX-2)*2 + 1
	y := (cellY-1)*4 + 2
	m.check(m.world.SelectTarget(m.world.BodyAt(m.camera.Unproject(x, y, m.canvas.SubWidth(), m.canvas.SubHeight()))))
}

func (m *Model) resize(width, height int) {
	cw := width - panelWidth - 8
	ch := height - 3
	if cw < 10 || ch < 5 {
		return
	}
	m.canvas = NewCanvas(cw, ch)
}

func (m *Model) recordEnergy() {
	m.energyHistory = append(m.energyHistory, m.world.Energy())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *Model) note(event string) {
	m.event = event
	m.err = nil
	log.Printf("tick %d: %s", m.world.Ticks(), event)
}

func (m *Model) check(err error) {
	if err != nil {
		m.err = err
		log.Printf("tick %d: %v", m.world.Ticks(), err)
	}
}

// View renders the canvas and the stats panel.
func (m Model) View() string {
	m.draw()
	canvasView := m.styles.canvas.Render(m.canvas.Render())

	w, st := m.world, m.styles
	var s strings.Builder
	s.WriteString(st.header.Render("N-BODY · "+strings.ToUpper(w.Scenario().Name)) + "\n")
	if m.sched.Paused() {
		s.WriteString(st.paused.Render("PAUSED") + "\n")
	} else {
		s.WriteString(st.running.Render("RUNNING") + "\n")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}

	p := w.Params()
	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", w.Time()))
	row("Ticks", fmt.Sprintf("%d", w.Ticks()))
	row("Bodies", fmt.Sprintf("%d", w.Len()))
	row("Energy", fmt.Sprintf("%.4g", w.Energy()))
	row("Momentum", fmt.Sprintf("%.4g", w.Momentum().Len()))
	row("Ang. mom.", fmt.Sprintf("%.4g", w.AngularMomentum()))
	row("Integrator", p.Integrator.String())
	row("Collisions", p.Collisions.String())
	row("Gravity", fmt.Sprintf("%.0f", p.Gravity))
	row("Softening", fmt.Sprintf("%.3f", p.Softening))
	row("Density", fmt.Sprintf("%.6f", p.Density))
	if t := w.TargetBody(); t != nil {
		row("Target", fmt.Sprintf("#%d m=%.1f %s", w.Target(), t.Mass, swatch(t.Color.Hex())))
	} else {
		row("Target", "none")
	}
	sp := w.Spawner()
	kind := "movable"
	if !sp.Movable {
		kind = "fixed"
	}
	label := "Spawn"
	if w.Target() != sim.NoTarget {
		label = "Edit"
	}
	row(label, fmt.Sprintf("m=%.1f %s %s", sp.Mass, kind, swatch(sp.Color.Hex())))

	if m.err != nil {
		s.WriteString("\n" + st.errorMsg.Render(m.err.Error()) + "\n")
	} else if m.event != "" {
		s.WriteString("\n" + st.value.Render(m.event) + "\n")
	}

	s.WriteString(st.help.Render("SP:Pause .:Step R:Reset Q:Quit\nI:Integrator C:Collisions ?:Help"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.stats.Render(s.String()))

	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

const helpText = `
  Space  pause / resume        .      single step
  R      reset scenario        Q      quit
  I      cycle integrator      C      cycle collisions
  [ ]    cycle target          Esc    clear target
  X      remove target         N      spawn body
  M / m  mass -/+              F      fixed/movable
  1 / 2  gravity -/+           3 / 4  softening -/+
  5 / 6  density -/+
  G      field grid            P      predictions
  + -    zoom                  T      theme
  Click  select body           ?      this help
`

// draw renders the world onto the canvas.
func (m *Model) draw() {
	c, w := m.canvas, m.world
	c.Clear()
	sw, sh := c.SubWidth(), c.SubHeight()

	if m.showField {
		m.drawField()
	}

	bodies := w.Bodies()
	for i := range bodies {
		b := &bodies[i]
		c.Pen(b.Color.Hex())

		pts := b.Trail.Points(m.opts.TrailLength)
		for k := 1; k < len(pts); k++ {
			x0, y0 := m.camera.Project(pts[k-1], sw, sh)
			x1, y1 := m.camera.Project(pts[k], sw, sh)
			if m.near(x0, y0) && m.near(x1, y1) {
				c.DrawLine(x0, y0, x1, y1)
			}
		}

		if w.Predictions() && b.Movable {
			for k, p := range b.Prediction.Positions {
				if k%2 == 1 {
					x, y := m.camera.Project(p, sw, sh)
					c.Set(x, y)
				}
			}
		}
	}

	for i := range bodies {
		b := &bodies[i]
		c.Pen(b.Color.Hex())
		x, y := m.camera.Project(b.Position, sw, sh)
		r := w.Radius(b.Mass) * m.camera.Zoom
		if b.Movable {
			c.DrawCircle(x, y, r)
		} else {
			c.FillCircle(x, y, r)
		}
		if i == w.Target() {
			c.Pen(string(m.theme.Accent))
			c.DrawCircle(x, y, r+3)
		}
	}
	c.Pen("")
}

// drawField draws one short arrow shaft per cell block, pointing along the
// net acceleration with log-scaled length.
func (m *Model) drawField() {
	c := m.canvas
	sw, sh := c.SubWidth(), c.SubHeight()
	cols, rows := c.Width/4, c.Height/2
	if cols == 0 || rows == 0 {
		return
	}
	min := m.camera.Unproject(0, 0, sw, sh)
	max := m.camera.Unproject(sw, sh, sw, sh)
	grid := m.world.FieldGrid(min, max, cols, rows)

	c.Pen(string(m.theme.Muted))
	cellW, cellH := float64(sw)/float64(cols), float64(sh)/float64(rows)
	for r, row := range grid {
		for col, a := range row {
			cx := int((float64(col) + 0.5) * cellW)
			cy := int((float64(r) + 0.5) * cellH)
			l := math.Min(math.Log1p(a.Len()), 3.5)
			dir := physics.Normalize(a).Mul(l)
			c.DrawLine(cx, cy, cx+int(math.Round(dir[0])), cy+int(math.Round(dir[1])))
		}
	}
}

// near reports whether a sub-pixel lies within one canvas size of the view,
// which keeps far-away trail segments from being rasterized.
func (m *Model) near(x, y int) bool {
	sw, sh := m.canvas.SubWidth(), m.canvas.SubHeight()
	return x > -sw && x < 2*sw && y > -sh && y < 2*sh
}

// Run starts the live view full-screen with mouse support and blocks until
// the user quits.
func Run(w *sim.World, opts Options) error {
	p := tea.NewProgram(NewModel(w, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
