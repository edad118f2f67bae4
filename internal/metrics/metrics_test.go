package metrics

import (
	"testing"

	"github.com/odekit/odekit/internal/ode"
	"github.com/odekit/odekit/internal/physics"
)

func TestEnergyDrift(t *testing.T) {
	p := physics.NewPendulum()
	m := NewEnergyDrift(p)

	if m.Name() != "energy_drift" {
		t.Errorf("unexpected name %q", m.Name())
	}

	// Same state twice: no drift.
	y := ode.Vector{0.5, 0}
	m.Observe(0, y)
	m.Observe(1, y)
	if m.Value() != 0 {
		t.Errorf("drift %f for identical states, want 0", m.Value())
	}

	// A lower-energy state registers relative drift.
	m.Observe(2, ode.Vector{0.25, 0})
	if m.Value() <= 0 {
		t.Error("expected positive drift after energy change")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("Reset did not clear drift")
	}
}

func TestAmplitude(t *testing.T) {
	m := NewAmplitude()
	m.Observe(0, ode.Vector{1, -3})
	m.Observe(1, ode.Vector{2, 0})
	if m.Value() != 3 {
		t.Errorf("amplitude %f, want 3", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("Reset did not clear amplitude")
	}
}
