package rk

import (
	"github.com/odekit/odekit/internal/ode"
	"github.com/odekit/odekit/internal/tableau"
)

// Trajectory holds the integration output: one value per requested output
// time, with Values[0] equal to the initial condition. Times is a copy of
// the caller's sequence.
type Trajectory[V any] struct {
	Times  []float64
	Values []V
	Stats  Stats
}

// Integrate runs fixed-step integration: one Step of tb per interval of the
// strictly increasing times sequence, starting from y0 at times[0].
// Monotonicity of times is the caller's contract.
func Integrate[V ode.Operand[V]](f ode.DerivFunc[V], tb tableau.Table, times []float64, y0 V) (*Trajectory[V], error) {
	if len(times) == 0 {
		return nil, ErrEmptyTimes
	}
	if err := tb.Validate(); err != nil {
		return nil, err
	}

	out := newTrajectory(times, y0)
	y := y0
	for i := 1; i < len(times); i++ {
		dt := times[i] - times[i-1]
		next, err := Step(f, times[i-1], dt, y, tb)
		if err != nil {
			return nil, err
		}
		y = next
		out.Values = append(out.Values, y)
		out.Stats.Accepted++
		out.Stats.Evals += tb.Stages()
		out.Stats.LastStep = dt
	}
	return out, nil
}

// IntegrateAdaptive runs embedded adaptive integration: one controller pass
// per interval, recording only the values at the requested output times.
func IntegrateAdaptive[V ode.Normed[V]](f ode.DerivFunc[V], tb tableau.Table, times []float64, y0 V, cfg AdaptiveConfig) (*Trajectory[V], error) {
	if len(times) == 0 {
		return nil, ErrEmptyTimes
	}
	ctrl, err := NewController(f, tb, times[0], y0, cfg)
	if err != nil {
		return nil, err
	}

	out := newTrajectory(times, y0)
	for i := 1; i < len(times); i++ {
		y, err := ctrl.AdvanceTo(times[i])
		if err != nil {
			return nil, err
		}
		out.Values = append(out.Values, y)
	}
	out.Stats = ctrl.Stats()
	return out, nil
}

func newTrajectory[V any](times []float64, y0 V) *Trajectory[V] {
	out := &Trajectory[V]{
		Times:  append([]float64(nil), times...),
		Values: make([]V, 1, len(times)),
	}
	out.Values[0] = y0
	return out
}
