package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/cbass-space/n-body/internal/analysis"
	"github.com/cbass-space/n-body/internal/config"
	"github.com/cbass-space/n-body/internal/experiment"
	"github.com/cbass-space/n-body/internal/export"
	"github.com/cbass-space/n-body/internal/physics"
	"github.com/cbass-space/n-body/internal/sim"
	"github.com/cbass-space/n-body/internal/viz"
)

var (
	configFile string
	logFile    string
	dt         float64
	duration   float64
	integrator string
	collisions string
	gravity    float64
	softening  float64
	density    float64
	// Live view
	trailLength int
	theme       string
	// Series export
	jsonFile string
	csvFile  string
	// Render output
	outFile string
	width   int
	height  int
	// Lyapunov perturbation
	perturbation float64
)

// main registers the commands and runs the live view when no subcommand is
// given. It exits with status 1 if a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "nbody [scenario]",
		Short:        "interactive 2D gravity simulator",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runLive,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().Float64Var(&dt, "dt", config.DefaultDt, "fixed timestep")
	rootCmd.PersistentFlags().Float64Var(&duration, "time", config.DefaultDuration, "simulated duration (headless commands)")
	rootCmd.PersistentFlags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator (euler, verlet, rk4)")
	rootCmd.PersistentFlags().StringVar(&collisions, "collisions", config.DefaultCollisions, "collision mode (none, merge, elastic)")
	rootCmd.PersistentFlags().Float64Var(&gravity, "gravity", physics.DefaultGravity, "gravitational constant")
	rootCmd.PersistentFlags().Float64Var(&softening, "softening", physics.DefaultSoftening, "softening length")
	rootCmd.PersistentFlags().Float64Var(&density, "density", physics.DefaultDensity, "body density (sets radii)")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run the simulation in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	for _, c := range []*cobra.Command{rootCmd, liveCmd} {
		c.Flags().StringVar(&logFile, "log", "", "write debug log to file")
		c.Flags().IntVar(&trailLength, "trail", 128, "trail samples drawn per body")
		c.Flags().StringVar(&theme, "theme", viz.ThemeNight.Name, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	}

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run headless and print metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHeadless,
	}
	runCmd.Flags().StringVar(&jsonFile, "json", "", "write the energy/momentum series as JSON")
	runCmd.Flags().StringVar(&csvFile, "csv", "", "write the energy/momentum series as CSV")

	compareCmd := &cobra.Command{
		Use:   "compare [scenario] [integrator...]",
		Short: "compare integrators on the same scenario",
		Args:  cobra.ArbitraryArgs,
		RunE:  compareIntegrators,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [scenario]",
		Short: "frequency and chaos analysis",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().Float64Var(&perturbation, "perturbation", 1e-6, "initial separation for the Lyapunov estimate")

	renderCmd := &cobra.Command{
		Use:   "render [scenario]",
		Short: "run headless and draw trails to SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderSVG,
	}
	renderCmd.Flags().StringVarP(&outFile, "out", "o", "nbody.svg", "output file")
	renderCmd.Flags().IntVar(&width, "width", 1200, "image width")
	renderCmd.Flags().IntVar(&height, "height", 900, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBODIES\tINTEG\tCOLLISIONS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", name, len(p.Bodies), p.Params.Integrator, p.Params.Collisions)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [scenario]",
		Short: "print the resolved config as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}

	rootCmd.AddCommand(liveCmd, runCmd, compareCmd, analyzeCmd, renderCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the configuration: the named scenario's preset (or the
// defaults), then the config file, then any flags set on the command line.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	scenario := ""
	if len(args) > 0 {
		scenario = args[0]
		if cfg = config.GetPreset(scenario); cfg == nil {
			return nil, fmt.Errorf("unknown scenario: %s (available: %v)", scenario, config.ListPresets())
		}
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
		if scenario != "" {
			cfg.Scenario = scenario
			cfg.Bodies = nil
		}
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("integrator") {
		cfg.Params.Integrator = integrator
	}
	if flags.Changed("collisions") {
		cfg.Params.Collisions = collisions
	}
	if flags.Changed("gravity") {
		cfg.Params.Gravity = gravity
	}
	if flags.Changed("softening") {
		cfg.Params.Softening = softening
	}
	if flags.Changed("density") {
		cfg.Params.Density = density
	}
	return cfg, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	if logFile != "" {
		f, err := tea.LogToFile(logFile, "nbody")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	w, err := sim.NewWorld(opts)
	if err != nil {
		return err
	}
	if cfg.Spawn.Mass > 0 {
		w.Spawner().Mass = physics.ClampMass(cfg.Spawn.Mass)
	}
	w.Spawner().Movable = !cfg.Spawn.Fixed
	log.Printf("starting %s with %d bodies, %s, dt=%g", w.Scenario().Name, w.Len(), w.Params().Integrator, cfg.Dt)

	vo := viz.DefaultOptions()
	vo.Dt = cfg.Dt
	vo.TrailLength = trailLength
	vo.Theme = theme
	return viz.Run(w, vo)
}

func experimentConfig(cfg *config.Config) (experiment.Config, error) {
	opts, err := cfg.Options()
	if err != nil {
		return experiment.Config{}, err
	}
	opts.Predict = false
	return experiment.Config{
		Options:  opts,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
	}, nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	ecfg, err := experimentConfig(cfg)
	if err != nil {
		return err
	}

	exp := experiment.New(ecfg)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}

	w := exp.World()
	fmt.Printf("running %s: %d bodies, %s, collisions %s\n", w.Scenario().Name, w.Len(), w.Params().Integrator, w.Params().Collisions)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("bodies: %d\n", w.Len())

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\nMETRIC\tVALUE")
	for _, name := range experiment.NewRegistry().ListMetrics() {
		if v, ok := result.Metrics[name]; ok {
			fmt.Fprintf(tw, "%s\t%.6g\n", name, v)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(result.Energy, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("total energy")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(result.Momentum, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("|momentum|")))

	series := export.NewSeries(w, sim.Config{Dt: ecfg.Dt, Duration: ecfg.Duration}, result)
	if jsonFile != "" {
		if err := writeFile(jsonFile, series.WriteJSON); err != nil {
			return err
		}
		fmt.Printf("\nexported to %s\n", jsonFile)
	}
	if csvFile != "" {
		if err := writeFile(csvFile, series.WriteCSV); err != nil {
			return err
		}
		fmt.Printf("\nexported to %s\n", csvFile)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	var scenario []string
	if len(args) > 0 {
		scenario = args[:1]
	}
	cfg, err := loadConfig(cmd, scenario)
	if err != nil {
		return err
	}
	ecfg, err := experimentConfig(cfg)
	if err != nil {
		return err
	}

	methods := []physics.Method{physics.Euler, physics.Verlet, physics.RK4}
	if len(args) > 1 {
		methods = methods[:0]
		for _, name := range args[1:] {
			m, err := physics.ParseMethod(name)
			if err != nil {
				return err
			}
			methods = append(methods, m)
		}
	}

	fmt.Printf("comparing %d integrators on %s (dt=%g, %gs)\n\n", len(methods), ecfg.Options.Scenario.Name, ecfg.Dt, ecfg.Duration)
	outcomes, err := experiment.Compare(context.Background(), ecfg, experiment.NewRegistry(), methods)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEG\tENERGY_DRIFT\tMOMENTUM_DRIFT\tANG_MOM_DRIFT\tORBIT_RADIUS\tORBIT_STD\tORBIT_DRIFT\tENERGY_STD\tTIME")
	for _, o := range outcomes {
		m := o.Result.Metrics
		fmt.Fprintf(w, "%s\t%.6e\t%.6e\t%.6e\t%.3f\t%.3f\t%.4f\t%.4g\t%v\n",
			o.Method,
			m["energy_drift"],
			m["momentum_drift"],
			m["angular_momentum_drift"],
			m["orbit_radius"],
			m["orbit_stddev"],
			m["orbit_drift"],
			o.EnergyStd,
			o.Elapsed.Round(time.Microsecond),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	series := make([][]float64, len(outcomes))
	for i, o := range outcomes {
		series[i] = o.Result.Energy
	}
	fmt.Println()
	fmt.Println(asciigraph.PlotMany(series, asciigraph.Height(12), asciigraph.Width(80), asciigraph.Caption("total energy per integrator")))
	return nil
}

// xRecorder samples body 0's x position after every tick.
type xRecorder struct {
	samples []float64
}

func (r *xRecorder) OnStep(w *sim.World, t float64) {
	if b := w.Store().At(0); b != nil {
		r.samples = append(r.samples, b.Position[0])
	}
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	ecfg, err := experimentConfig(cfg)
	if err != nil {
		return err
	}
	ecfg.Metrics = []string{"energy_drift"}

	exp := experiment.New(ecfg)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}
	rec := &xRecorder{}
	if _, err := exp.Run(context.Background(), rec); err != nil {
		return err
	}
	if len(rec.samples) < 2 {
		return fmt.Errorf("scenario %s has no bodies to analyze", ecfg.Options.Scenario.Name)
	}

	freq, period := analysis.DominantFrequency(rec.samples, ecfg.Dt)
	fmt.Printf("scenario: %s\n", ecfg.Options.Scenario.Name)
	fmt.Printf("samples: %d\n", len(rec.samples))
	fmt.Printf("dominant frequency of body 0 x: %.4f Hz\n", freq)
	fmt.Printf("dominant period: %.4f s\n", period)

	lambda, err := analysis.LyapunovExponent(ecfg.Options, ecfg.Dt, ecfg.Duration, perturbation)
	if err != nil {
		return err
	}
	fmt.Printf("lyapunov exponent: %.4f\n", lambda)
	if lambda > 0.01 {
		fmt.Println("  (chaotic)")
	}

	spectrum := analysis.PowerSpectrum(rec.samples)
	if len(spectrum) > 1 {
		n := len(spectrum)
		if n > 200 {
			n = 200
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(spectrum[1:n], asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("power spectrum (low bins)")))
	}
	return nil
}

func renderSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	opts.Predict = true

	w, err := sim.NewWorld(opts)
	if err != nil {
		return err
	}
	if _, err := sim.Run(context.Background(), w, sim.Config{Dt: cfg.Dt, Duration: cfg.Duration, ValidateState: true}, nil); err != nil {
		return err
	}

	svg := export.WorldToSVG(w.Bodies(), w.Params(), width, height, export.DefaultSVGOptions())
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d bodies, t=%.2fs)\n", outFile, w.Len(), w.Time())
	return nil
}
