// Package rk implements the generic explicit Runge-Kutta stepping kernel:
// the weighted-combination primitive, single fixed steps, embedded
// dual-order steps, the adaptive step-size controller, and the trajectory
// drivers that integrate across a caller-supplied sequence of output times.
//
// The kernel is purely sequential. The only external call it makes is the
// caller's derivative function, whose errors propagate unmodified. The
// method itself is supplied as a tableau.Table; package rk contains no
// method coefficients of its own.
package rk
