// Package analysis provides empirical accuracy studies of integration
// methods: convergence-order estimation for fixed-step runs and
// work-precision sweeps for adaptive ones.
package analysis

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/odekit/odekit/internal/ode"
	"github.com/odekit/odekit/internal/rk"
	"github.com/odekit/odekit/internal/tableau"
)

var (
	ErrTooFewSamples = errors.New("analysis: need at least two step sizes")
	ErrZeroError     = errors.New("analysis: exact solution reproduced, no order to estimate")
)

// Sample is one fixed-step run of a convergence study.
type Sample struct {
	H     float64
	Error float64
}

// OrderEstimate is the result of a log-log regression of global error
// against step size.
type OrderEstimate struct {
	Order   float64
	Samples []Sample
}

// EstimateOrder integrates f from (t0, y0) to t1 once per entry of stepCounts
// (each entry is the number of uniform steps across [t0, t1]), measures the
// final-point error against exact, and regresses log error on log h. For a
// method of order p the slope comes out near p.
func EstimateOrder(f ode.DerivFunc[ode.Vector], tb tableau.Table, t0, t1 float64, y0, exact ode.Vector, stepCounts []int) (*OrderEstimate, error) {
	if len(stepCounts) < 2 {
		return nil, ErrTooFewSamples
	}

	est := &OrderEstimate{Samples: make([]Sample, 0, len(stepCounts))}
	logH := make([]float64, 0, len(stepCounts))
	logE := make([]float64, 0, len(stepCounts))

	for _, n := range stepCounts {
		h := (t1 - t0) / float64(n)
		times := make([]float64, n+1)
		for i := 0; i <= n; i++ {
			times[i] = t0 + float64(i)*h
		}
		times[n] = t1

		traj, err := rk.Integrate(f, tb, times, y0)
		if err != nil {
			return nil, err
		}

		e := traj.Values[len(traj.Values)-1].Sub(exact).SupNorm()
		est.Samples = append(est.Samples, Sample{H: h, Error: e})
		if e == 0 {
			return nil, ErrZeroError
		}
		logH = append(logH, math.Log(h))
		logE = append(logE, math.Log(e))
	}

	_, slope := stat.LinearRegression(logH, logE, nil, false)
	est.Order = slope
	return est, nil
}
