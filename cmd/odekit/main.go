package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/odekit/odekit/internal/analysis"
	"github.com/odekit/odekit/internal/config"
	"github.com/odekit/odekit/internal/metrics"
	"github.com/odekit/odekit/internal/ode"
	"github.com/odekit/odekit/internal/physics"
	"github.com/odekit/odekit/internal/rk"
	"github.com/odekit/odekit/internal/sim"
	"github.com/odekit/odekit/internal/storage"
	"github.com/odekit/odekit/internal/tableau"
	"github.com/odekit/odekit/internal/tui"
	"github.com/odekit/odekit/internal/viz"
)

var (
	dataDir string
	verbose bool
	log     zerolog.Logger

	method     string
	dt         float64
	duration   float64
	adaptive   bool
	tolerance  float64
	initState  string
	configFile string
	preset     string
	saveRun    bool

	component int
	xAxis     int
	yAxis     int

	orderMethod string
	orderSpan   float64

	liveMethod   string
	liveDt       float64
	liveDuration float64
	liveFixed    bool
	liveTol      float64
	frameRate    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "odekit",
		Short: "explicit Runge-Kutta integration toolkit",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
				Level(level).
				With().Timestamp().Logger()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".odekit", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "integrate a model and report the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runIntegration,
	}
	runCmd.Flags().StringVar(&method, "method", "rk4", "integration method (see 'methods')")
	runCmd.Flags().Float64Var(&dt, "dt", 0.01, "output spacing")
	runCmd.Flags().Float64Var(&duration, "time", 10.0, "duration")
	runCmd.Flags().BoolVar(&adaptive, "adaptive", false, "adaptive step-size control")
	runCmd.Flags().Float64Var(&tolerance, "tol", 1e-6, "relative error tolerance (adaptive)")
	runCmd.Flags().StringVar(&initState, "y0", "", "initial state, comma separated")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&saveRun, "save", false, "persist the run")

	methodsCmd := &cobra.Command{
		Use:   "methods",
		Short: "list integration methods",
		RunE:  listMethods,
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list models",
		RunE:  listModels,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&component, "component", 0, "state component to plot")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase portrait of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  phaseRun,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x", 0, "x-axis component")
	phaseCmd.Flags().IntVar(&yAxis, "y", 1, "y-axis component")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	orderCmd := &cobra.Command{
		Use:   "order [model]",
		Short: "estimate a method's empirical convergence order",
		Args:  cobra.ExactArgs(1),
		RunE:  estimateOrder,
	}
	orderCmd.Flags().StringVar(&orderMethod, "method", "rk4", "method to study")
	orderCmd.Flags().Float64Var(&orderSpan, "time", 1.0, "integration span")

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "watch an integration as it runs",
		Args:  cobra.ExactArgs(1),
		RunE:  liveRun,
	}
	liveCmd.Flags().StringVar(&liveMethod, "method", "dopri5", "integration method")
	liveCmd.Flags().Float64Var(&liveDt, "dt", 0.02, "output spacing")
	liveCmd.Flags().Float64Var(&liveDuration, "time", 30.0, "duration")
	liveCmd.Flags().BoolVar(&liveFixed, "fixed", false, "fixed steps instead of adaptive control")
	liveCmd.Flags().Float64Var(&liveTol, "tol", 1e-6, "relative error tolerance")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frames per second")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list run presets",
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [model]",
		Short: "compare methods on one model",
		Args:  cobra.ExactArgs(1),
		RunE:  benchModel,
	}
	benchCmd.Flags().Float64Var(&dt, "dt", 0.01, "output spacing")
	benchCmd.Flags().Float64Var(&duration, "time", 10.0, "duration")

	rootCmd.AddCommand(runCmd, methodsCmd, modelsCmd, listCmd, plotCmd,
		phaseCmd, exportCmd, orderCmd, liveCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// resolveConfig merges precedence: preset < config file < flags.
func resolveConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.LookupPreset(model, preset)
		if p == nil {
			return nil, fmt.Errorf("no preset %q for model %q", preset, model)
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.Model = model
	if cmd.Flags().Changed("method") {
		cfg.Method = method
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("adaptive") {
		cfg.Adaptive = adaptive
	}
	if cmd.Flags().Changed("tol") {
		cfg.Tolerance = tolerance
	}
	if initState != "" {
		y0, err := parseState(initState)
		if err != nil {
			return nil, err
		}
		cfg.InitState = y0
	}
	return cfg, cfg.Validate()
}

func parseState(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	y := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad state component %q: %w", p, err)
		}
		y[i] = v
	}
	return y, nil
}

func runIntegration(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	sys, err := physics.Lookup(cfg.Model)
	if err != nil {
		return err
	}
	table, err := tableau.Lookup(cfg.Method)
	if err != nil {
		return err
	}

	y0 := physics.DefaultState(sys)
	if cfg.InitState != nil {
		y0 = ode.Vector(cfg.InitState)
	}

	log.Debug().Str("model", cfg.Model).Str("method", cfg.Method).
		Bool("adaptive", cfg.Adaptive).Float64("dt", cfg.Dt).
		Float64("duration", cfg.Duration).Msg("starting run")

	s := sim.New(sys, table)
	s.AddMetric(metrics.NewAmplitude())
	if h, ok := sys.(ode.Hamiltonian); ok {
		s.AddMetric(metrics.NewEnergyDrift(h))
	}

	start := time.Now()
	res, err := s.Run(context.Background(), y0, sim.Config{
		Dt:            cfg.Dt,
		Duration:      cfg.Duration,
		Adaptive:      cfg.Adaptive,
		Tolerance:     cfg.Tolerance,
		MinStep:       cfg.MinStep,
		MaxRetries:    cfg.MaxRetries,
		ValidateState: true,
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	stats := res.Traj.Stats
	log.Info().Int("points", len(res.Traj.Values)).
		Int("accepted", stats.Accepted).Int("rejected", stats.Rejected).
		Int("evals", stats.Evals).Dur("elapsed", elapsed).Msg("run complete")

	final := res.Traj.Values[len(res.Traj.Values)-1]
	fmt.Printf("final state at t=%.4f: %v\n", res.Traj.Times[len(res.Traj.Times)-1], final)
	for name, v := range res.Metrics {
		fmt.Printf("%-14s %.6e\n", name, v)
	}

	if saveRun {
		store := storage.New(dataDir)
		if err := store.Init(); err != nil {
			return err
		}
		runID, err := store.Save(storage.RunMetadata{
			Model:     cfg.Model,
			Method:    cfg.Method,
			Dt:        cfg.Dt,
			Duration:  cfg.Duration,
			Adaptive:  cfg.Adaptive,
			Tolerance: cfg.Tolerance,
			Metrics:   res.Metrics,
		}, res.Traj)
		if err != nil {
			return err
		}
		log.Info().Str("run", runID).Str("dir", dataDir).Msg("run saved")
		fmt.Println("saved:", runID)
	}
	return nil
}

func listMethods(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTAGES\tADAPTIVE\tORDER")
	for _, name := range tableau.Names() {
		tb, _ := tableau.Lookup(name)
		embedded := "-"
		order := "-"
		if tb.Embedded() {
			embedded = "yes"
			order = fmt.Sprintf("%d(%d)", tb.Order+1, tb.Order)
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", name, tb.Stages(), embedded, order)
	}
	return w.Flush()
}

func listModels(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDIM\tENERGY")
	for _, name := range physics.Names() {
		sys, _ := physics.Lookup(name)
		energy := "-"
		if _, ok := sys.(ode.Hamiltonian); ok {
			energy = "yes"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", name, sys.Dim(), energy)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no saved runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tMETHOD\tWHEN")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.Model, r.Method, r.Timestamp.Format(time.RFC3339))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	traj, err := storage.New(dataDir).LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	out, err := viz.Plot(traj, component, 72, 16, fmt.Sprintf("%s · y%d", args[0], component))
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func phaseRun(cmd *cobra.Command, args []string) error {
	traj, err := storage.New(dataDir).LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	out, err := viz.PhasePortrait(traj, xAxis, yAxis, 60, 20)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, err := storage.New(dataDir).LoadMetadata(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func estimateOrder(cmd *cobra.Command, args []string) error {
	sys, err := physics.Lookup(args[0])
	if err != nil {
		return err
	}
	table, err := tableau.Lookup(orderMethod)
	if err != nil {
		return err
	}

	y0 := physics.DefaultState(sys)
	f := ode.Deriv(sys)

	// Reference solution at a tolerance far below any fixed-step error in
	// the ladder.
	ref, err := rk.IntegrateAdaptive(f, tableau.DoPri5(), []float64{0, orderSpan}, y0,
		rk.AdaptiveConfig{Tol: 1e-13})
	if err != nil {
		return err
	}
	exact := ref.Values[len(ref.Values)-1]

	est, err := analysis.EstimateOrder(f, table, 0, orderSpan, y0, exact,
		[]int{10, 20, 40, 80, 160})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "H\tERROR")
	for _, s := range est.Samples {
		fmt.Fprintf(w, "%.5e\t%.5e\n", s.H, s.Error)
	}
	w.Flush()
	fmt.Printf("empirical order of %s on %s: %.2f\n", orderMethod, args[0], est.Order)
	return nil
}

func liveRun(cmd *cobra.Command, args []string) error {
	sys, err := physics.Lookup(args[0])
	if err != nil {
		return err
	}
	table, err := tableau.Lookup(liveMethod)
	if err != nil {
		return err
	}
	if !liveFixed && !table.Embedded() {
		return fmt.Errorf("method %q has no embedded pair; pass --fixed or pick an adaptive method", liveMethod)
	}

	m, err := tui.NewLive(args[0], sys, table, physics.DefaultState(sys), liveDt, liveDuration, !liveFixed, liveTol, frameRate)
	if err != nil {
		return err
	}
	return tui.Run(m)
}

func benchModel(cmd *cobra.Command, args []string) error {
	sys, err := physics.Lookup(args[0])
	if err != nil {
		return err
	}

	y0 := physics.DefaultState(sys)
	f := ode.Deriv(sys)
	times := sim.TimeGrid(0, duration, dt)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tMODE\tEVALS\tELAPSED")
	for _, name := range tableau.Names() {
		tb, _ := tableau.Lookup(name)

		start := time.Now()
		traj, err := rk.Integrate(f, tb, times, y0.Clone())
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\tfixed\t%d\t%s\n", name, traj.Stats.Evals, time.Since(start).Round(time.Microsecond))

		if !tb.Embedded() {
			continue
		}
		start = time.Now()
		traj, err = rk.IntegrateAdaptive(f, tb, times, y0.Clone(), rk.AdaptiveConfig{Tol: tolerance})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\tadaptive\t%d\t%s\n", name, traj.Stats.Evals, time.Since(start).Round(time.Microsecond))
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tPRESET\tMETHOD\tADAPTIVE\tDURATION")
	for model, group := range config.Presets {
		for name, p := range group {
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%.1f\n", model, name, p.Method, p.Adaptive, p.Duration)
		}
	}
	return w.Flush()
}
