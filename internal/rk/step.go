package rk

import (
	"github.com/odekit/odekit/internal/ode"
	"github.com/odekit/odekit/internal/tableau"
)

// Step advances y from t to t+dt with one fixed step of the method tb
// describes. Stage i evaluates f at t + c[i]*dt with input
// y + dt·Σ a[i][j]·k[j]; the result is y + dt·Σ b[i]·k[i]. Errors from f
// propagate unmodified.
func Step[V ode.Operand[V]](f ode.DerivFunc[V], t, dt float64, y V, tb tableau.Table) (V, error) {
	var zero V
	if err := tb.Validate(); err != nil {
		return zero, err
	}
	k, err := stageDerivs(f, t, dt, y, tb)
	if err != nil {
		return zero, err
	}
	return assemble(y, dt, tb.B, k)
}

// EmbeddedStep runs the stage loop once and assembles both weight vectors
// of an embedded pair, returning the higher-order estimate first. Tables
// without a B2 vector are a configuration error.
func EmbeddedStep[V ode.Operand[V]](f ode.DerivFunc[V], t, dt float64, y V, tb tableau.Table) (high, low V, err error) {
	var zero V
	if err := tb.Validate(); err != nil {
		return zero, zero, err
	}
	if !tb.Embedded() {
		return zero, zero, ErrNotEmbedded
	}
	k, err := stageDerivs(f, t, dt, y, tb)
	if err != nil {
		return zero, zero, err
	}
	if high, err = assemble(y, dt, tb.B, k); err != nil {
		return zero, zero, err
	}
	if low, err = assemble(y, dt, tb.B2, k); err != nil {
		return zero, zero, err
	}
	return high, low, nil
}

// stageDerivs runs the explicit stage recurrence. Row 0 of A is empty, so
// the first stage evaluates f at the base value directly.
func stageDerivs[V ode.Operand[V]](f ode.DerivFunc[V], t, dt float64, y V, tb tableau.Table) ([]V, error) {
	k := make([]V, tb.Stages())
	for i := range k {
		yi := y
		if i > 0 {
			sum, err := Combine(tb.A[i], k[:i])
			if err != nil {
				return nil, err
			}
			yi = y.Add(sum.Scale(dt))
		}
		ki, err := f(t+tb.C[i]*dt, yi)
		if err != nil {
			return nil, err
		}
		k[i] = ki
	}
	return k, nil
}

func assemble[V ode.Operand[V]](y V, dt float64, weights []float64, k []V) (V, error) {
	sum, err := Combine(weights, k)
	if err != nil {
		var zero V
		return zero, err
	}
	return y.Add(sum.Scale(dt)), nil
}
