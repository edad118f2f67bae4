// Package sim orchestrates integration runs over the rk kernel: output-grid
// construction, input validation, context cancellation between intervals,
// state sanity checks, and metric/observer fan-out. The kernel itself never
// sees a context; cancellation is only honored at output-time boundaries.
package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/odekit/odekit/internal/metrics"
	"github.com/odekit/odekit/internal/ode"
	"github.com/odekit/odekit/internal/rk"
	"github.com/odekit/odekit/internal/tableau"
)

// Observer is notified of every recorded output point, in order.
type Observer interface {
	OnPoint(t float64, y ode.Vector)
}

// Config selects the stepping mode and its parameters.
type Config struct {
	Dt            float64
	Duration      float64
	Adaptive      bool
	Tolerance     float64
	InitialStep   float64
	MinStep       float64
	MaxRetries    int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      10.0,
		Tolerance:     1e-6,
		ValidateState: true,
	}
}

// Result bundles the trajectory with run-level diagnostics.
type Result struct {
	Traj        *rk.Trajectory[ode.Vector]
	Metrics     map[string]float64
	EnergyDrift float64
}

// RunError wraps a failure with the output interval it occurred in.
type RunError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("sim: step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *RunError) Unwrap() error { return e.Wrapped }

// Simulator runs one system with one method.
type Simulator struct {
	sys       ode.System
	table     tableau.Table
	metrics   []metrics.Metric
	observers []Observer
}

func New(sys ode.System, table tableau.Table) *Simulator {
	return &Simulator{sys: sys, table: table}
}

func (s *Simulator) AddMetric(m metrics.Metric) { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)     { s.observers = append(s.observers, o) }

// Run integrates from t=0 over a uniform output grid built from cfg.
func (s *Simulator) Run(ctx context.Context, y0 ode.Vector, cfg Config) (*Result, error) {
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("sim: dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return nil, fmt.Errorf("sim: duration must be positive, got %f", cfg.Duration)
	}
	return s.RunOver(ctx, y0, TimeGrid(0, cfg.Duration, cfg.Dt), cfg)
}

// RunOver integrates across an explicit strictly increasing time sequence.
func (s *Simulator) RunOver(ctx context.Context, y0 ode.Vector, times []float64, cfg Config) (*Result, error) {
	if err := s.validate(y0, times, cfg); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	var ctrl *rk.Controller[ode.Vector]
	if cfg.Adaptive {
		var err error
		ctrl, err = rk.NewController(ode.Deriv(s.sys), s.table, times[0], y0.Clone(), rk.AdaptiveConfig{
			Tol:         cfg.Tolerance,
			InitialStep: cfg.InitialStep,
			MinStep:     cfg.MinStep,
			MaxRetries:  cfg.MaxRetries,
		})
		if err != nil {
			return nil, err
		}
	}

	traj := &rk.Trajectory[ode.Vector]{
		Times:  append([]float64(nil), times...),
		Values: make([]ode.Vector, 1, len(times)),
	}
	traj.Values[0] = y0.Clone()
	s.observe(times[0], y0)

	initialEnergy := s.energy(y0)

	y := y0.Clone()
	for i := 1; i < len(times); i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		var err error
		if cfg.Adaptive {
			y, err = ctrl.AdvanceTo(times[i])
		} else {
			y, err = rk.Step(ode.Deriv(s.sys), times[i-1], times[i]-times[i-1], y, s.table)
		}
		if err != nil {
			return nil, &RunError{Step: i, Time: times[i-1], Wrapped: err}
		}

		if cfg.ValidateState && !y.IsValid() {
			return nil, &RunError{Step: i, Time: times[i], Wrapped: ode.ErrInvalidState}
		}

		traj.Values = append(traj.Values, y)
		s.observe(times[i], y)
	}

	if cfg.Adaptive {
		traj.Stats = ctrl.Stats()
	} else {
		traj.Stats.Accepted = len(times) - 1
		traj.Stats.Evals = s.table.Stages() * (len(times) - 1)
	}

	res := &Result{Traj: traj, Metrics: make(map[string]float64)}
	for _, m := range s.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	if finalEnergy := s.energy(y); initialEnergy != 0 {
		res.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}
	return res, nil
}

func (s *Simulator) validate(y0 ode.Vector, times []float64, cfg Config) error {
	if len(y0) != s.sys.Dim() {
		return ode.ErrDimensionMismatch
	}
	if !y0.IsValid() {
		return ode.ErrInvalidState
	}
	if len(times) == 0 {
		return rk.ErrEmptyTimes
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return ode.ErrNonIncreasingTimes
		}
	}
	if cfg.Adaptive && cfg.Tolerance <= 0 {
		return fmt.Errorf("sim: tolerance must be positive for adaptive stepping")
	}
	return nil
}

func (s *Simulator) observe(t float64, y ode.Vector) {
	for _, m := range s.metrics {
		m.Observe(t, y)
	}
	for _, o := range s.observers {
		o.OnPoint(t, y)
	}
}

func (s *Simulator) energy(y ode.Vector) float64 {
	if h, ok := s.sys.(ode.Hamiltonian); ok {
		return h.Energy(y)
	}
	return 0
}

// TimeGrid builds a uniform output grid from t0 spanning duration with
// spacing dt. The final point lands exactly on t0+duration.
func TimeGrid(t0, duration, dt float64) []float64 {
	n := int(math.Round(duration / dt))
	if n < 1 {
		n = 1
	}
	times := make([]float64, n+1)
	for i := 0; i < n; i++ {
		times[i] = t0 + float64(i)*dt
	}
	times[n] = t0 + duration
	return times
}
