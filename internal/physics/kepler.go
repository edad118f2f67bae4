package physics

import (
	"errors"
	"math"

	"github.com/odekit/odekit/internal/ode"
)

// ErrSingularOrbit indicates an orbit evaluated at (or numerically at) the
// central body, where the gravitational acceleration is undefined.
var ErrSingularOrbit = errors.New("physics: orbit passed through the central body")

// Kepler is planar two-body motion around a fixed central mass.
// State: [x, y, vx, vy]; Mu is the standard gravitational parameter.
type Kepler struct {
	Mu float64
}

func NewKepler() *Kepler { return &Kepler{Mu: 1.0} }

func (k *Kepler) Dim() int { return 4 }

func (k *Kepler) Derive(_ float64, s ode.Vector) (ode.Vector, error) {
	x, y := s[0], s[1]
	r2 := x*x + y*y
	if r2 == 0 {
		return nil, ErrSingularOrbit
	}
	r3 := r2 * math.Sqrt(r2)
	return ode.Vector{s[2], s[3], -k.Mu * x / r3, -k.Mu * y / r3}, nil
}

// DefaultState is a mildly eccentric bound orbit.
func (k *Kepler) DefaultState() ode.Vector { return ode.Vector{1.0, 0.0, 0.0, 1.2} }

// Energy is the specific orbital energy v²/2 − μ/r, conserved along any
// exact trajectory.
func (k *Kepler) Energy(s ode.Vector) float64 {
	r := math.Hypot(s[0], s[1])
	v2 := s[2]*s[2] + s[3]*s[3]
	return 0.5*v2 - k.Mu/r
}
