package tableau

import (
	"errors"
	"math"
	"testing"
)

func TestNamedTablesValidate(t *testing.T) {
	for _, name := range Names() {
		tb, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
		if err := tb.Validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
		if tb.Name != name {
			t.Errorf("%s: registered under wrong name %q", name, tb.Name)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("midpoint")
	if !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("want ErrUnknownMethod, got %v", err)
	}
}

// Every consistent table has b summing to 1 and c[i] equal to the i-th row
// sum of a.
func TestNamedTablesConsistency(t *testing.T) {
	for _, name := range Names() {
		tb, _ := Lookup(name)

		sumB := 0.0
		for _, w := range tb.B {
			sumB += w
		}
		if math.Abs(sumB-1) > 1e-14 {
			t.Errorf("%s: sum(b) = %.17f, want 1", name, sumB)
		}

		if tb.Embedded() {
			sumB2 := 0.0
			for _, w := range tb.B2 {
				sumB2 += w
			}
			if math.Abs(sumB2-1) > 1e-14 {
				t.Errorf("%s: sum(b2) = %.17f, want 1", name, sumB2)
			}
		}

		for i, row := range tb.A {
			rowSum := 0.0
			for _, w := range row {
				rowSum += w
			}
			if math.Abs(rowSum-tb.C[i]) > 1e-12 {
				t.Errorf("%s: row %d sums to %.17f, c[%d] = %.17f", name, i, rowSum, i, tb.C[i])
			}
		}
	}
}

func TestValidateRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		tb   Table
		want error
	}{
		{"empty", Table{}, ErrEmptyTable},
		{"stage mismatch", Table{A: [][]float64{{}}, B: []float64{1}, C: []float64{0, 1}}, ErrStageMismatch},
		{"row length", Table{A: [][]float64{{0.5}}, B: []float64{1}, C: []float64{0}}, ErrRowLength},
		{"embedded length", Table{A: [][]float64{{}}, B: []float64{1}, B2: []float64{1, 0}, C: []float64{0}, Order: 1}, ErrEmbeddedLength},
		{"bad order", Table{A: [][]float64{{}}, B: []float64{1}, B2: []float64{1}, C: []float64{0}, Order: -1}, ErrBadOrder},
	}

	for _, tc := range cases {
		if err := tc.tb.Validate(); !errors.Is(err, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestNewRejectsMalformed(t *testing.T) {
	if _, err := New("bad", [][]float64{{1}}, []float64{1}, []float64{0}); !errors.Is(err, ErrRowLength) {
		t.Errorf("New: got %v, want ErrRowLength", err)
	}
	if _, err := NewEmbedded("bad", [][]float64{{}}, []float64{1}, []float64{1}, []float64{0}, -1); !errors.Is(err, ErrBadOrder) {
		t.Errorf("NewEmbedded: got %v, want ErrBadOrder", err)
	}
}

func TestStageCounts(t *testing.T) {
	counts := map[string]int{
		"euler": 1, "heun": 2, "kutta3": 3, "rk4": 4, "fehlberg45": 6, "dopri5": 7,
	}
	for name, want := range counts {
		tb, _ := Lookup(name)
		if tb.Stages() != want {
			t.Errorf("%s: %d stages, want %d", name, tb.Stages(), want)
		}
	}
	for _, name := range []string{"fehlberg45", "dopri5"} {
		tb, _ := Lookup(name)
		if !tb.Embedded() || tb.Order != 4 {
			t.Errorf("%s: expected embedded pair of lower order 4", name)
		}
	}
}
