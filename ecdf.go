package metallab

import (
	"math"
	"sort"
)

// ECDF returns the samples in ascending order together with their plotting
// positions P_i = i/(N+1), i = 1..N.
//
// The Weibull plotting position keeps P_N below 1, so the reduced variable
// −ln(−ln P) stays finite for every point. The input slice is not modified.
func ECDF(samples []float64) (sorted, probabilities []float64) {
	n := len(samples)
	sorted = make([]float64, n)
	copy(sorted, samples)
	sort.Float64s(sorted)

	probabilities = make([]float64, n)
	for i := range probabilities {
		probabilities[i] = float64(i+1) / float64(n+1)
	}

	return sorted, probabilities
}

// ReducedVariable linearizes the Gumbel CDF: y = −ln(−ln F).
func ReducedVariable(F float64) float64 {
	return -math.Log(-math.Log(F))
}
