package rk

import (
	"errors"
	"testing"

	"github.com/odekit/odekit/internal/ode"
)

func TestCombineSingleTerm(t *testing.T) {
	got, err := Combine([]float64{3}, []ode.Scalar{2})
	if err != nil {
		t.Fatal(err)
	}
	if got != 6 {
		t.Errorf("got %v, want exactly coeff[0]*value[0] = 6", got)
	}
}

func TestCombineVectors(t *testing.T) {
	vals := []ode.Vector{{1, 0}, {0, 1}, {1, 1}}
	got, err := Combine([]float64{2, 3, -1}, vals)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 1 || got[1] != 2 {
		t.Errorf("got %v, want [1 2]", got)
	}
	// Inputs must survive untouched.
	if vals[0][0] != 1 || vals[2][1] != 1 {
		t.Error("Combine mutated its inputs")
	}
}

func TestCombineEmpty(t *testing.T) {
	_, err := Combine(nil, []ode.Scalar{})
	if !errors.Is(err, ErrEmptyCombination) {
		t.Errorf("got %v, want ErrEmptyCombination", err)
	}
}

func TestCombineLengthMismatch(t *testing.T) {
	_, err := Combine([]float64{1, 2}, []ode.Scalar{1})
	if !errors.Is(err, ErrCoeffLength) {
		t.Errorf("got %v, want ErrCoeffLength", err)
	}
}
