package rk

import (
	"errors"
	"fmt"
)

// Kernel errors. Configuration problems surface as sentinels; the adaptive
// controller wraps ErrNonConvergence with diagnostics.
var (
	ErrEmptyCombination = errors.New("rk: weighted combination needs at least one term")
	ErrCoeffLength      = errors.New("rk: coefficient row and stage value counts differ")
	ErrNotEmbedded      = errors.New("rk: table has no embedded weight pair")
	ErrEmptyTimes       = errors.New("rk: output time sequence is empty")
	ErrNonConvergence   = errors.New("rk: step-size control failed to meet tolerance")
)

// ConvergenceError reports the state of the adaptive controller when it
// gave up on an interval: the last step size it attempted, the relative
// error that step produced, and how many consecutive rejections occurred.
type ConvergenceError struct {
	Time       float64
	LastStep   float64
	ErrRatio   float64
	Rejections int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%v (t=%g, dt=%g, relative error %g after %d rejections)",
		ErrNonConvergence, e.Time, e.LastStep, e.ErrRatio, e.Rejections)
}

func (e *ConvergenceError) Unwrap() error { return ErrNonConvergence }
