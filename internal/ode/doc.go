// Package ode defines the value-type capabilities and system contracts
// shared by the Runge-Kutta kernel and the packages built on top of it.
//
// The stepping kernel in internal/rk is generic over any value type that
// provides scalar multiplication and addition (Operand); adaptive error
// control additionally needs subtraction and a max-magnitude norm (Normed).
// Scalar and Vector are the two operand implementations shipped here.
package ode
