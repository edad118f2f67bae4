// Package physics provides dynamical system models for the integration
// kernel.
//
// Each model implements the [ode.System] interface, defining the
// differential equations governing the system's evolution:
//
//   - [Pendulum]: damped rigid pendulum
//   - [Lorenz]: butterfly attractor
//   - [VanDerPol]: self-sustaining nonlinear oscillator
//   - [Kepler]: planar two-body orbital motion
//   - [Decay]: exponential decay with a closed-form solution
//
// Models with a conserved energy also implement [ode.Hamiltonian] so the
// simulation layer can report energy drift:
//
//	sys := physics.NewPendulum()
//	if h, ok := sys.(ode.Hamiltonian); ok {
//	    energy := h.Energy(state)
//	}
package physics
