package metallab

import (
	"math"
	"testing"
)

// RecoveryConfig contains tolerances for parameter recovery checks.
type RecoveryConfig struct {
	// Relative tolerance on λ (0.05 = ±5%)
	LocationTolerance float64

	// Relative tolerance on δ
	ScaleTolerance float64
}

// DefaultRecoveryConfig returns the ±5% tolerances used for large samples.
func DefaultRecoveryConfig() RecoveryConfig {
	return RecoveryConfig{
		LocationTolerance: 0.05,
		ScaleTolerance:    0.05,
	}
}

// AssertGumbelRecovery verifies an estimator recovers known parameters from
// a sample drawn from them.
func AssertGumbelRecovery(t *testing.T, name string, est Estimator, samples []float64, truth GumbelParameters, cfg RecoveryConfig) {
	t.Helper()

	got, err := est(samples)
	if err != nil {
		t.Fatalf("%s: fit failed: %v", name, err)
	}

	relLoc := math.Abs(got.Location-truth.Location) / math.Abs(truth.Location)
	relScale := math.Abs(got.Scale-truth.Scale) / truth.Scale

	if relLoc > cfg.LocationTolerance {
		t.Errorf("%s: λ = %.4f, want %.4f ±%.1f%% (off by %.2f%%)",
			name, got.Location, truth.Location, cfg.LocationTolerance*100, relLoc*100)
	}
	if relScale > cfg.ScaleTolerance {
		t.Errorf("%s: δ = %.4f, want %.4f ±%.1f%% (off by %.2f%%)",
			name, got.Scale, truth.Scale, cfg.ScaleTolerance*100, relScale*100)
	}

	t.Logf("✓ %s recovered λ=%.4f (true %.4f), δ=%.4f (true %.4f) from N=%d",
		name, got.Location, truth.Location, got.Scale, truth.Scale, len(samples))
}

// AssertLikelihoodOptimal verifies the maximum likelihood fit is at least as
// likely as the moment estimate on the same sample.
func AssertLikelihoodOptimal(t *testing.T, samples []float64) {
	t.Helper()

	mom, err := FitMoments(samples)
	if err != nil {
		t.Fatalf("moments fit failed: %v", err)
	}
	ml, err := FitMaxLikelihood(samples)
	if err != nil {
		t.Fatalf("maximum likelihood fit failed: %v", err)
	}

	llMom := mom.LogLikelihood(samples)
	llML := ml.LogLikelihood(samples)

	if llML < llMom {
		t.Errorf("Likelihood not optimal: ML log L = %.6f < moments log L = %.6f", llML, llMom)
	}

	t.Logf("✓ Likelihood optimal: log L(ML) = %.6f ≥ log L(MoM) = %.6f", llML, llMom)
}

// AssertBounded verifies no defined point of a sweep exceeds the bound and
// every undefined point carries NaN.
func AssertBounded(t *testing.T, points []EquilibriumPoint, bound float64) {
	t.Helper()

	undefined := 0
	for _, p := range points {
		if !p.Defined {
			undefined++
			if !math.IsNaN(p.PctO) {
				t.Errorf("[%%Al]=%g: undefined point carries %g, want NaN", p.PctAl, p.PctO)
			}
			continue
		}
		if p.PctO > bound {
			t.Errorf("[%%Al]=%g: [%%O]=%g exceeds bound %g", p.PctAl, p.PctO, bound)
		}
	}

	t.Logf("✓ Bounded: %d/%d points defined below [%%O] ≤ %g", len(points)-undefined, len(points), bound)
}

// PrintGumbelAnalysis outputs a fit summary and plot table to the test log.
func PrintGumbelAnalysis(t *testing.T, samples []float64, p GumbelParameters) {
	t.Helper()

	points, err := GumbelPlot(samples, p)
	if err != nil {
		t.Fatalf("Failed to build Gumbel plot: %v", err)
	}

	t.Logf("\n=== Gumbel Analysis ===")
	t.Logf("  λ (location) = %.4f", p.Location)
	t.Logf("  δ (scale)    = %.4f", p.Scale)
	t.Logf("  log L        = %.4f", p.LogLikelihood(samples))

	t.Logf("\n  x         P        y        x_fit     -2SE      +2SE")
	t.Logf("  --------  -------  -------  --------  --------  --------")
	for _, pt := range points {
		t.Logf("  %8.2f  %7.4f  %7.3f  %8.2f  %8.2f  %8.2f",
			pt.Value, pt.Probability, pt.Reduced, pt.Fitted, pt.Lower, pt.Upper)
	}
}
