package rk

import (
	"math"

	"github.com/odekit/odekit/internal/ode"
	"github.com/odekit/odekit/internal/tableau"
)

// Step-size adjustment bounds, applied to the scaling factor derived from
// the tolerance/error ratio.
const (
	minFactor = 0.01
	maxFactor = 10.0
)

// AdaptiveConfig tunes the step-size controller. Zero values fall back to
// the defaults below; InitialStep zero means "start with the width of the
// first interval".
type AdaptiveConfig struct {
	Tol         float64
	InitialStep float64
	MinStep     float64
	MaxRetries  int
}

const (
	DefaultTol        = 1e-6
	DefaultMinStep    = 1e-12
	DefaultMaxRetries = 64
)

func (c AdaptiveConfig) withDefaults() AdaptiveConfig {
	if c.Tol <= 0 {
		c.Tol = DefaultTol
	}
	if c.MinStep <= 0 {
		c.MinStep = DefaultMinStep
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	return c
}

// Stats counts the work done by a driver or controller run.
type Stats struct {
	Accepted int
	Rejected int
	Evals    int
	LastStep float64
	NextStep float64
}

// Controller owns the (t, y, h) state of one adaptive integration and
// advances it across output intervals. It is not safe for concurrent use;
// each integration run owns exactly one controller.
type Controller[V ode.Normed[V]] struct {
	f     ode.DerivFunc[V]
	table tableau.Table
	cfg   AdaptiveConfig

	t float64
	y V
	h float64

	stats Stats
}

// NewController validates the table and seeds the controller at (t0, y0).
func NewController[V ode.Normed[V]](f ode.DerivFunc[V], tb tableau.Table, t0 float64, y0 V, cfg AdaptiveConfig) (*Controller[V], error) {
	if err := tb.Validate(); err != nil {
		return nil, err
	}
	if !tb.Embedded() {
		return nil, ErrNotEmbedded
	}
	cfg = cfg.withDefaults()
	return &Controller[V]{
		f:     f,
		table: tb,
		cfg:   cfg,
		t:     t0,
		y:     y0,
		h:     cfg.InitialStep,
	}, nil
}

// Time returns the latest accepted time.
func (c *Controller[V]) Time() float64 { return c.t }

// Value returns the latest accepted state.
func (c *Controller[V]) Value() V { return c.y }

// Stats returns the work counters accumulated so far.
func (c *Controller[V]) Stats() Stats { return c.stats }

// AdvanceTo integrates from the current time to tNext with embedded
// dual-order sub-steps, shrinking the candidate step on rejection and
// relaxing it after intermediate acceptances. The returned value is the
// higher-order estimate at exactly tNext. The candidate step size carries
// over, unreduced, to the next interval.
func (c *Controller[V]) AdvanceTo(tNext float64) (V, error) {
	var zero V
	if c.h <= 0 {
		c.h = tNext - c.t
	}

	rejections := 0
	for {
		dt := c.h
		terminal := false
		if maxStep := tNext - c.t; dt >= maxStep {
			dt = maxStep
			terminal = true
		}

		high, low, err := EmbeddedStep(c.f, c.t, dt, c.y, c.table)
		if err != nil {
			return zero, err
		}
		c.stats.Evals += c.table.Stages()

		relErr := relativeError(high, low)
		if relErr > c.cfg.Tol {
			rejections++
			c.stats.Rejected++
			c.h = dt * shrinkFactor(c.cfg.Tol, relErr, c.table.Order)
			if rejections > c.cfg.MaxRetries || c.h < c.cfg.MinStep {
				return zero, &ConvergenceError{
					Time:       c.t,
					LastStep:   dt,
					ErrRatio:   relErr,
					Rejections: rejections,
				}
			}
			continue
		}

		c.stats.Accepted++
		c.stats.LastStep = dt
		rejections = 0

		if terminal {
			c.t = tNext
			c.y = high
			c.stats.NextStep = c.h
			return high, nil
		}

		c.t += dt
		c.y = high
		// Grow toward half the tolerance after an intermediate accept to
		// keep consecutive step sizes from oscillating.
		c.h = dt * growFactor(c.cfg.Tol/2, relErr, c.table.Order)
		c.stats.NextStep = c.h
	}
}

// relativeError measures the largest per-component discrepancy between the
// two estimates, scaled by the magnitude of the higher-order one. A zero
// discrepancy is an exact reproduction and counts as zero error even when
// the reference magnitude is also zero; a nonzero discrepancy over a zero
// reference is unbounded and forces a rejection.
func relativeError[V ode.Normed[V]](high, low V) float64 {
	absErr := high.Sub(low).SupNorm()
	if absErr == 0 {
		return 0
	}
	ref := high.SupNorm()
	if ref == 0 {
		return math.Inf(1)
	}
	return absErr / ref
}

// shrinkFactor scales a rejected step: (tol/relErr)^(1/order) clamped to
// [minFactor, maxFactor], or a plain halving when the table carries no
// order information.
func shrinkFactor(tol, relErr float64, order int) float64 {
	if order <= 0 {
		return 0.5
	}
	return clampFactor(math.Pow(tol/relErr, 1/float64(order)))
}

// growFactor scales an accepted intermediate step. Without order
// information the step is left unchanged; with a zero error estimate the
// step grows by the maximum allowed factor.
func growFactor(tol, relErr float64, order int) float64 {
	if order <= 0 {
		return 1
	}
	if relErr == 0 {
		return maxFactor
	}
	return clampFactor(math.Pow(tol/relErr, 1/float64(order)))
}

func clampFactor(f float64) float64 {
	return math.Min(maxFactor, math.Max(minFactor, f))
}
