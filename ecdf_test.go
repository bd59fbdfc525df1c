package metallab

import (
	"math"
	"testing"
)

func TestECDF_PlottingPositions(t *testing.T) {
	samples := []float64{5, 1, 4, 2, 3}
	original := append([]float64(nil), samples...)

	sorted, probs := ECDF(samples)

	wantSorted := []float64{1, 2, 3, 4, 5}
	wantProbs := []float64{1.0 / 6, 2.0 / 6, 3.0 / 6, 4.0 / 6, 5.0 / 6}
	for i := range wantSorted {
		if sorted[i] != wantSorted[i] {
			t.Errorf("sorted[%d] = %g, want %g", i, sorted[i], wantSorted[i])
		}
		if math.Abs(probs[i]-wantProbs[i]) > 1e-15 {
			t.Errorf("P[%d] = %g, want %g", i, probs[i], wantProbs[i])
		}
	}

	for i := range samples {
		if samples[i] != original[i] {
			t.Fatalf("input modified: %v", samples)
		}
	}
}

func TestECDF_Monotonic(t *testing.T) {
	for _, n := range []int{1, 2, 24, 1000} {
		samples := make([]float64, n)
		for i := range samples {
			samples[i] = float64((i * 7919) % 101)
		}

		sorted, probs := ECDF(samples)
		if len(sorted) != n || len(probs) != n {
			t.Fatalf("N=%d: got %d values, %d probabilities", n, len(sorted), len(probs))
		}

		for i := range probs {
			if !(probs[i] > 0 && probs[i] < 1) {
				t.Errorf("N=%d: P[%d] = %g outside (0, 1)", n, i, probs[i])
			}
			if i > 0 {
				if probs[i] <= probs[i-1] {
					t.Errorf("N=%d: P not strictly increasing at %d", n, i)
				}
				if sorted[i] < sorted[i-1] {
					t.Errorf("N=%d: values not ascending at %d", n, i)
				}
			}
		}

		if want := float64(n) / float64(n+1); probs[n-1] != want {
			t.Errorf("N=%d: P_N = %g, want %g", n, probs[n-1], want)
		}
	}
}

func TestECDF_Empty(t *testing.T) {
	sorted, probs := ECDF(nil)
	if len(sorted) != 0 || len(probs) != 0 {
		t.Errorf("expected empty output, got %v %v", sorted, probs)
	}
}

func TestReducedVariable(t *testing.T) {
	// F = exp(−1) ⇒ y = 0
	if y := ReducedVariable(math.Exp(-1)); math.Abs(y) > 1e-14 {
		t.Errorf("ReducedVariable(1/e) = %g, want 0", y)
	}

	// F(y) = exp(−exp(−y)) inverts the reduced variable.
	for _, y := range []float64{-1.5, 0.3, 2, 4.6} {
		F := math.Exp(-math.Exp(-y))
		if got := ReducedVariable(F); math.Abs(got-y) > 1e-12 {
			t.Errorf("ReducedVariable(F(%g)) = %g", y, got)
		}
	}
}
