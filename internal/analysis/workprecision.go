package analysis

import (
	"github.com/odekit/odekit/internal/ode"
	"github.com/odekit/odekit/internal/rk"
	"github.com/odekit/odekit/internal/tableau"
)

// WorkPoint records the cost and achieved accuracy of one adaptive run.
type WorkPoint struct {
	Tol      float64
	Error    float64
	Evals    int
	Accepted int
	Rejected int
}

// WorkPrecision runs adaptive integration across times once per tolerance
// and reports derivative-evaluation counts against the final-point error
// measured with respect to exact.
func WorkPrecision(f ode.DerivFunc[ode.Vector], tb tableau.Table, times []float64, y0, exact ode.Vector, tols []float64) ([]WorkPoint, error) {
	points := make([]WorkPoint, 0, len(tols))
	for _, tol := range tols {
		traj, err := rk.IntegrateAdaptive(f, tb, times, y0, rk.AdaptiveConfig{Tol: tol})
		if err != nil {
			return nil, err
		}
		points = append(points, WorkPoint{
			Tol:      tol,
			Error:    traj.Values[len(traj.Values)-1].Sub(exact).SupNorm(),
			Evals:    traj.Stats.Evals,
			Accepted: traj.Stats.Accepted,
			Rejected: traj.Stats.Rejected,
		})
	}
	return points, nil
}
