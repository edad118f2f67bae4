package physics

import "github.com/odekit/odekit/internal/ode"

// VanDerPol is the Van der Pol oscillator.
// State: [x, y] where y = dx/dt
// Equations:
//
//	dx/dt = y
//	dy/dt = μ(1 - x²)y - x
type VanDerPol struct {
	Mu float64
}

func NewVanDerPol() *VanDerPol {
	return &VanDerPol{Mu: 1.0} // classic limit-cycle value
}

func (v *VanDerPol) Dim() int { return 2 }

func (v *VanDerPol) Derive(_ float64, s ode.Vector) (ode.Vector, error) {
	x, y := s[0], s[1]
	return ode.Vector{y, v.Mu*(1-x*x)*y - x}, nil
}

func (v *VanDerPol) DefaultState() ode.Vector { return ode.Vector{2.0, 0.0} }
