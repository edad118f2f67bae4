// Package metrics provides observation metrics computed over the output
// points of an integration run.
package metrics

import "github.com/odekit/odekit/internal/ode"

// Metric accumulates a scalar diagnostic over output points, in order.
type Metric interface {
	Name() string
	Observe(t float64, y ode.Vector)
	Value() float64
	Reset()
}
