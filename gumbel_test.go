package metallab

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

// e2283Sample is the worked example of ASTM E2283: longest inclusion length
// per specimen, four runs of six specimens.
var e2283Sample = []float64{
	40.29, 37.24, 29.03, 52.46, 62.21, 33.98,
	30.73, 37.43, 35.00, 44.82, 66.13, 48.55,
	73.48, 44.79, 70.87, 59.83, 22.18, 64.32,
	78.91, 46.53, 94.28, 49.15, 82.39, 37.43,
}

// gumbelDraws samples by inversion: x = λ − δ·ln(−ln U).
func gumbelDraws(n int, p GumbelParameters, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, 0, n)
	for len(out) < n {
		u := rng.Float64()
		if u == 0 {
			continue
		}
		out = append(out, p.Location-p.Scale*math.Log(-math.Log(u)))
	}
	return out
}

func TestFitMoments_E2283Example(t *testing.T) {
	p, err := FitMoments(e2283Sample)
	if err != nil {
		t.Fatalf("FitMoments: %v", err)
	}

	// mean = 51.75125, s = 18.86394
	if math.Abs(p.Location-43.2617) > 0.005 {
		t.Errorf("λ = %.4f, want 43.26", p.Location)
	}
	if math.Abs(p.Scale-14.7082) > 0.005 {
		t.Errorf("δ = %.4f, want 14.71", p.Scale)
	}

	t.Logf("✓ Moments: λ=%.4f δ=%.4f", p.Location, p.Scale)
}

func TestFitMaxLikelihood_E2283Example(t *testing.T) {
	p, err := FitMaxLikelihood(e2283Sample)
	if err != nil {
		t.Fatalf("FitMaxLikelihood: %v", err)
	}

	// Solution of the profile score equation for δ.
	if math.Abs(p.Location-43.0562) > 0.01 {
		t.Errorf("λ = %.4f, want 43.056", p.Location)
	}
	if math.Abs(p.Scale-14.9813) > 0.01 {
		t.Errorf("δ = %.4f, want 14.981", p.Scale)
	}

	AssertLikelihoodOptimal(t, e2283Sample)
	PrintGumbelAnalysis(t, e2283Sample, p)
}

// TestEstimators_RecoverKnownParameters fits 10,000 draws from λ=50, δ=10.
func TestEstimators_RecoverKnownParameters(t *testing.T) {
	truth := GumbelParameters{Location: 50, Scale: 10}
	samples := gumbelDraws(10000, truth, 1)

	AssertGumbelRecovery(t, "moments", FitMoments, samples, truth, DefaultRecoveryConfig())
	AssertGumbelRecovery(t, "maximum likelihood", FitMaxLikelihood, samples, truth, DefaultRecoveryConfig())
	AssertLikelihoodOptimal(t, samples)
}

func TestEstimators_SmallSamples(t *testing.T) {
	if _, err := FitMoments(nil); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("FitMoments(nil): expected ErrInsufficientData, got %v", err)
	}
	if _, err := FitMoments([]float64{3}); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("FitMoments(1 value): expected ErrInsufficientData, got %v", err)
	}
	if _, err := FitMaxLikelihood(nil); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("FitMaxLikelihood(nil): expected ErrInsufficientData, got %v", err)
	}
	if _, err := FitMaxLikelihood([]float64{3}); !errors.Is(err, ErrDegenerateSample) {
		t.Errorf("FitMaxLikelihood(1 value): expected ErrDegenerateSample, got %v", err)
	}
	if _, err := FitMaxLikelihood([]float64{7, 7, 7}); !errors.Is(err, ErrDegenerateSample) {
		t.Errorf("FitMaxLikelihood(constant): expected ErrDegenerateSample, got %v", err)
	}
	if _, err := FitMoments([]float64{7, 7, 7}); !errors.Is(err, ErrDegenerateSample) {
		t.Errorf("FitMoments(constant): expected ErrDegenerateSample, got %v", err)
	}
	if _, err := FitGumbel([]float64{7, 7, 7}, MethodMoments); !errors.Is(err, ErrDegenerateSample) {
		t.Errorf("FitGumbel(constant, moments): expected ErrDegenerateSample, got %v", err)
	}

	// Two distinct values are enough for both estimators.
	for name, est := range map[string]Estimator{"moments": FitMoments, "ml": FitMaxLikelihood} {
		p, err := est([]float64{10, 20})
		if err != nil {
			t.Errorf("%s: unexpected error %v", name, err)
			continue
		}
		if !(p.Scale > 0) {
			t.Errorf("%s: δ = %g, want > 0", name, p.Scale)
		}
	}
}

func TestEstimators_RejectNonFinite(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		samples := []float64{40.29, bad, 37.24}
		for name, est := range map[string]Estimator{"moments": FitMoments, "ml": FitMaxLikelihood} {
			if _, err := est(samples); !errors.Is(err, ErrDomain) {
				t.Errorf("%s with %g: expected ErrDomain, got %v", name, bad, err)
			}
		}
	}
	t.Logf("✓ NaN and ±Inf samples rejected by both estimators")
}

func TestEstimatorByName(t *testing.T) {
	for _, name := range []string{"moments", "MoM", " ml ", "MLE"} {
		if _, err := EstimatorByName(name); err != nil {
			t.Errorf("EstimatorByName(%q): %v", name, err)
		}
	}
	if _, err := EstimatorByName("bayes"); err == nil {
		t.Error("EstimatorByName(bayes): expected error")
	}
}

func TestGumbelParameters_Distribution(t *testing.T) {
	p := GumbelParameters{Location: 43, Scale: 15}

	if got := p.CDF(p.Location); math.Abs(got-math.Exp(-1)) > 1e-12 {
		t.Errorf("CDF(λ) = %g, want 1/e", got)
	}
	for _, prob := range []float64{0.05, 0.5, 0.95, 0.999} {
		if got := p.CDF(p.Quantile(prob)); math.Abs(got-prob) > 1e-12 {
			t.Errorf("CDF(Quantile(%g)) = %g", prob, got)
		}
	}

	x := 60.0
	if got := p.Predict(p.Reduced(x)); math.Abs(got-x) > 1e-12 {
		t.Errorf("Predict(Reduced(%g)) = %g", x, got)
	}

	// log f(λ) = −ln δ − 1
	if got := p.LogLikelihood([]float64{43}); math.Abs(got-(-math.Log(15)-1)) > 1e-12 {
		t.Errorf("LogLikelihood at λ = %g", got)
	}
}

func TestGumbelParameters_Validate(t *testing.T) {
	bad := []GumbelParameters{
		{Location: 1, Scale: 0},
		{Location: 1, Scale: -2},
		{Location: math.NaN(), Scale: 1},
		{Location: 1, Scale: math.Inf(1)},
	}
	for _, p := range bad {
		if err := p.Validate(); !errors.Is(err, ErrDomain) {
			t.Errorf("%+v: expected ErrDomain, got %v", p, err)
		}
	}
	if err := (GumbelParameters{Location: 0, Scale: 1}).Validate(); err != nil {
		t.Errorf("valid parameters rejected: %v", err)
	}
}
