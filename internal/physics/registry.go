package physics

import (
	"fmt"
	"sort"

	"github.com/odekit/odekit/internal/ode"
)

var builders = map[string]func() ode.System{
	"pendulum":  func() ode.System { return NewPendulum() },
	"lorenz":    func() ode.System { return NewLorenz() },
	"vanderpol": func() ode.System { return NewVanDerPol() },
	"kepler":    func() ode.System { return NewKepler() },
	"decay":     func() ode.System { return NewDecay() },
}

// Lookup builds a fresh instance of the named model with default
// parameters.
func Lookup(name string) (ode.System, error) {
	fn, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("physics: unknown model %q", name)
	}
	return fn(), nil
}

// Names lists the registered model names, sorted.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultState returns the canonical initial condition of any registered
// System, falling back to a unit vector when the model exposes none.
func DefaultState(sys ode.System) ode.Vector {
	type defaulter interface{ DefaultState() ode.Vector }
	if d, ok := sys.(defaulter); ok {
		return d.DefaultState()
	}
	y := make(ode.Vector, sys.Dim())
	for i := range y {
		y[i] = 1
	}
	return y
}
