package physics

import "github.com/odekit/odekit/internal/ode"

// Lorenz is the classic three-variable convection model. State: [x, y, z].
type Lorenz struct{ Sigma, Rho, Beta float64 }

func NewLorenz() *Lorenz { return &Lorenz{10.0, 28.0, 8.0 / 3.0} }

func (l *Lorenz) Dim() int { return 3 }

func (l *Lorenz) Derive(_ float64, s ode.Vector) (ode.Vector, error) {
	return ode.Vector{
		l.Sigma * (s[1] - s[0]),
		s[0]*(l.Rho-s[2]) - s[1],
		s[0]*s[1] - l.Beta*s[2],
	}, nil
}

func (l *Lorenz) DefaultState() ode.Vector { return ode.Vector{1.0, 1.0, 1.0} }

func (l *Lorenz) GetParams() map[string]float64 {
	return map[string]float64{"sigma": l.Sigma, "rho": l.Rho, "beta": l.Beta}
}
