package viz

import (
	"strings"
	"testing"

	"github.com/odekit/odekit/internal/ode"
	"github.com/odekit/odekit/internal/rk"
)

func testTraj() *rk.Trajectory[ode.Vector] {
	return &rk.Trajectory[ode.Vector]{
		Times:  []float64{0, 1, 2, 3},
		Values: []ode.Vector{{0, 1}, {1, 0}, {0, -1}, {-1, 0}},
	}
}

func TestComponent(t *testing.T) {
	s, err := Component(testTraj(), 1)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 0, -1, 0}
	for i := range want {
		if s[i] != want[i] {
			t.Errorf("s[%d] = %v, want %v", i, s[i], want[i])
		}
	}

	if _, err := Component(testTraj(), 2); err == nil {
		t.Error("out-of-range component accepted")
	}
	if _, err := Component(&rk.Trajectory[ode.Vector]{}, 0); err == nil {
		t.Error("empty trajectory accepted")
	}
}

func TestPlot(t *testing.T) {
	out, err := Plot(testTraj(), 0, 40, 8, "x vs t")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "x vs t") {
		t.Error("caption missing from plot")
	}
}

func TestPhasePortraitCoversCanvas(t *testing.T) {
	out, err := PhasePortrait(testTraj(), 0, 1, 20, 10)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("%d lines, want canvas height 10", len(lines))
	}
	// Something must have been drawn.
	if !strings.ContainsFunc(out, func(r rune) bool { return r > 0x2800 && r <= 0x28FF }) {
		t.Error("no braille dots set")
	}
}

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(0, 0)
	if !strings.ContainsRune(c.String(), 0x2801) {
		t.Error("top-left dot not set")
	}

	// Out of range is a no-op, not a panic.
	c.Set(-1, 5)
	c.Set(100, 100)

	c.Clear()
	for _, r := range strings.ReplaceAll(c.String(), "\n", "") {
		if r != 0x2800 {
			t.Fatalf("cell %q after Clear", r)
		}
	}
}
