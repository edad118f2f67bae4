// Package tableau describes explicit Runge-Kutta methods as Butcher
// tableaux: the stage coefficient matrix A, combination weights B, time
// offsets C, and optionally an embedded second weight vector B2 for error
// estimation. Tables are static configuration; all structural checks
// happen at construction, never at stepping time.
package tableau

import "errors"

// Configuration errors for malformed tables and registry misses.
var (
	ErrEmptyTable     = errors.New("tableau: table has no stages")
	ErrStageMismatch  = errors.New("tableau: a, b, c stage counts differ")
	ErrRowLength      = errors.New("tableau: row i of a must have exactly i entries")
	ErrEmbeddedLength = errors.New("tableau: embedded weights length differs from stage count")
	ErrBadOrder       = errors.New("tableau: order must not be negative")
	ErrUnknownMethod  = errors.New("tableau: unknown method name")
)

// Table is an immutable Butcher tableau. A[i] holds the weights applied to
// the first i stage derivatives when building stage i's evaluation point;
// A[0] is empty. B and C have one entry per stage. B2, when present, is an
// alternative weight vector of a different consistency order, and Order is
// the order of the lower of the two estimates (zero when unknown, which
// limits the step-size controller to plain halving on rejection).
type Table struct {
	Name  string
	A     [][]float64
	B     []float64
	B2    []float64
	C     []float64
	Order int
}

// New builds and validates a fixed-step table.
func New(name string, a [][]float64, b, c []float64) (Table, error) {
	t := Table{Name: name, A: a, B: b, C: c}
	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}

// NewEmbedded builds and validates a table carrying an embedded weight
// pair. order is the consistency order of the lower estimate.
func NewEmbedded(name string, a [][]float64, b, b2, c []float64, order int) (Table, error) {
	t := Table{Name: name, A: a, B: b, B2: b2, C: c, Order: order}
	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}

// Stages returns the number of derivative evaluations per step.
func (t Table) Stages() int { return len(t.B) }

// Embedded reports whether the table carries a second weight vector.
func (t Table) Embedded() bool { return t.B2 != nil }

// Validate checks the structural invariants of the tableau.
func (t Table) Validate() error {
	n := len(t.B)
	if n == 0 {
		return ErrEmptyTable
	}
	if len(t.A) != n || len(t.C) != n {
		return ErrStageMismatch
	}
	for i, row := range t.A {
		if len(row) != i {
			return ErrRowLength
		}
	}
	if t.B2 != nil && len(t.B2) != n {
		return ErrEmbeddedLength
	}
	if t.Order < 0 {
		return ErrBadOrder
	}
	return nil
}
