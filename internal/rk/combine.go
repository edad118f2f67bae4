package rk

import "github.com/odekit/odekit/internal/ode"

// Combine returns the weighted sum Σ coeffs[i]·vals[i]. The accumulator is
// seeded with the first term rather than a zero value, so V needs no
// additive identity. Pure; inputs are not mutated.
func Combine[V ode.Operand[V]](coeffs []float64, vals []V) (V, error) {
	var zero V
	if len(coeffs) == 0 {
		return zero, ErrEmptyCombination
	}
	if len(coeffs) != len(vals) {
		return zero, ErrCoeffLength
	}
	acc := vals[0].Scale(coeffs[0])
	for i := 1; i < len(coeffs); i++ {
		acc = acc.Add(vals[i].Scale(coeffs[i]))
	}
	return acc, nil
}
