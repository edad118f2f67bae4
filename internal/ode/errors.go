package ode

import "errors"

// Domain errors shared by the wrapper layers around the kernel.
var (
	// ErrInvalidState indicates a state vector containing NaN or Inf.
	ErrInvalidState = errors.New("ode: invalid state (NaN or Inf detected)")

	// ErrDimensionMismatch indicates a state whose length disagrees with the system dimension.
	ErrDimensionMismatch = errors.New("ode: dimension mismatch between state and system")

	// ErrNonIncreasingTimes indicates an output time sequence that is not strictly increasing.
	ErrNonIncreasingTimes = errors.New("ode: output times must be strictly increasing")
)
