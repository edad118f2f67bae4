package physics

import (
	"math"

	"github.com/odekit/odekit/internal/ode"
)

// Decay is first-order exponential decay y' = -λy with the closed-form
// solution y(t) = y(0)·e^(−λt), used as an accuracy reference.
type Decay struct {
	Lambda float64
}

func NewDecay() *Decay { return &Decay{Lambda: 1.0} }

func (d *Decay) Dim() int { return 1 }

func (d *Decay) Derive(_ float64, y ode.Vector) (ode.Vector, error) {
	return ode.Vector{-d.Lambda * y[0]}, nil
}

func (d *Decay) DefaultState() ode.Vector { return ode.Vector{1.0} }

// Exact returns the analytic solution at time t for initial value y0.
func (d *Decay) Exact(y0, t float64) float64 {
	return y0 * math.Exp(-d.Lambda*t)
}
