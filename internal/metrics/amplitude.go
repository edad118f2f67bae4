package metrics

import "github.com/odekit/odekit/internal/ode"

// Amplitude records the largest per-component magnitude seen across all
// observed states, a cheap divergence indicator.
type Amplitude struct {
	name string
	max  float64
}

func NewAmplitude() *Amplitude {
	return &Amplitude{name: "amplitude"}
}

func (a *Amplitude) Name() string { return a.name }

func (a *Amplitude) Observe(_ float64, y ode.Vector) {
	if n := y.SupNorm(); n > a.max {
		a.max = n
	}
}

func (a *Amplitude) Value() float64 { return a.max }

func (a *Amplitude) Reset() { a.max = 0 }
