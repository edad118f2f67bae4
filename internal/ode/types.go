package ode

import "math"

// Operand is the capability set a value type must provide for explicit
// Runge-Kutta stepping: scalar multiplication and addition. There is no
// additive-identity requirement; the kernel never needs a zero value.
type Operand[V any] interface {
	Scale(c float64) V
	Add(other V) V
}

// Normed extends Operand with the operations adaptive step-size control
// needs to measure local error.
type Normed[V any] interface {
	Operand[V]
	Sub(other V) V
	SupNorm() float64
}

// DerivFunc evaluates the right-hand side y'(t) = f(t, y). Any error it
// returns propagates unmodified through the stepping kernel.
type DerivFunc[V any] func(t float64, y V) (V, error)

// Scalar is a float64 operand for one-dimensional problems.
type Scalar float64

func (s Scalar) Scale(c float64) Scalar  { return Scalar(float64(s) * c) }
func (s Scalar) Add(other Scalar) Scalar { return s + other }
func (s Scalar) Sub(other Scalar) Scalar { return s - other }
func (s Scalar) SupNorm() float64        { return math.Abs(float64(s)) }

// Vector is a dense float64 state vector.
type Vector []float64

func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

func (v Vector) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func (v Vector) Scale(c float64) Vector {
	result := make(Vector, len(v))
	for i := range v {
		result[i] = v[i] * c
	}
	return result
}

func (v Vector) Add(other Vector) Vector {
	result := make(Vector, len(v))
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

func (v Vector) Sub(other Vector) Vector {
	result := make(Vector, len(v))
	for i := range v {
		result[i] = v[i] - other[i]
	}
	return result
}

// SupNorm returns the largest per-component magnitude.
func (v Vector) SupNorm() float64 {
	max := 0.0
	for _, x := range v {
		if a := math.Abs(x); a > max {
			max = a
		}
	}
	return max
}

func (v Vector) Norm() float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// System is a vector-valued right-hand side with a fixed dimension.
type System interface {
	Dim() int
	Derive(t float64, y Vector) (Vector, error)
}

// Hamiltonian is implemented by systems with a conserved energy, used for
// drift diagnostics.
type Hamiltonian interface {
	Energy(y Vector) float64
}

// Deriv adapts a System to the DerivFunc the kernel consumes.
func Deriv(sys System) DerivFunc[Vector] {
	return func(t float64, y Vector) (Vector, error) {
		return sys.Derive(t, y)
	}
}
