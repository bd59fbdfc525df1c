package metallab

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// EulerGamma is the Euler–Mascheroni constant as tabulated in ASTM E2283.
const EulerGamma = 0.5772

// GumbelParameters are the location (λ) and scale (δ) of the largest extreme
// value distribution
//
//	F(x) = exp(−exp(−(x−λ)/δ))
type GumbelParameters struct {
	Location float64 // λ
	Scale    float64 // δ, always > 0
}

// Validate rejects non-finite values and a non-positive scale.
func (p GumbelParameters) Validate() error {
	if math.IsNaN(p.Location) || math.IsInf(p.Location, 0) {
		return fmt.Errorf("%w: location must be finite, got %g", ErrDomain, p.Location)
	}
	if !(p.Scale > 0) || math.IsInf(p.Scale, 0) {
		return fmt.Errorf("%w: scale must be finite and > 0, got %g", ErrDomain, p.Scale)
	}
	return nil
}

func (p GumbelParameters) dist() distuv.GumbelRight {
	return distuv.GumbelRight{Mu: p.Location, Beta: p.Scale}
}

// CDF returns F(x).
func (p GumbelParameters) CDF(x float64) float64 {
	return p.dist().CDF(x)
}

// Quantile returns the x with F(x) = prob.
func (p GumbelParameters) Quantile(prob float64) float64 {
	return p.dist().Quantile(prob)
}

// Reduced maps a value to the reduced variable y = (x−λ)/δ.
func (p GumbelParameters) Reduced(x float64) float64 {
	return (x - p.Location) / p.Scale
}

// Predict maps a reduced variable back to a value: x = δy + λ.
func (p GumbelParameters) Predict(y float64) float64 {
	return p.Scale*y + p.Location
}

// LogLikelihood returns Σ log f(x_i; λ, δ).
func (p GumbelParameters) LogLikelihood(samples []float64) float64 {
	d := p.dist()
	var ll float64
	for _, x := range samples {
		ll += d.LogProb(x)
	}
	return ll
}

// Estimator fits Gumbel parameters to a sample.
type Estimator func(samples []float64) (GumbelParameters, error)

// Estimator names accepted by EstimatorByName.
const (
	MethodMoments       = "moments"
	MethodMaxLikelihood = "ml"
)

// EstimatorByName returns the estimator for "moments" (or "mom") and
// "ml" (or "mle").
func EstimatorByName(name string) (Estimator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case MethodMoments, "mom":
		return FitMoments, nil
	case MethodMaxLikelihood, "mle":
		return FitMaxLikelihood, nil
	}
	return nil, fmt.Errorf("unknown estimator %q (use %q or %q)", name, MethodMoments, MethodMaxLikelihood)
}

// FitMoments estimates λ and δ by the method of moments (ASTM E2283):
//
//	δ = s·√6/π
//	λ = x̄ − 0.5772·δ
//
// where s is the sample standard deviation with Bessel's correction.
func FitMoments(samples []float64) (GumbelParameters, error) {
	if err := checkFinite(samples); err != nil {
		return GumbelParameters{}, err
	}
	if len(samples) < 2 {
		return GumbelParameters{}, fmt.Errorf("%w: method of moments needs at least 2 samples, got %d",
			ErrInsufficientData, len(samples))
	}

	mean, std := stat.MeanStdDev(samples, nil)
	if !(std > 0) || math.IsInf(std, 0) {
		return GumbelParameters{}, fmt.Errorf("%w: %d samples without spread", ErrDegenerateSample, len(samples))
	}
	delta := std * math.Sqrt(6) / math.Pi

	return GumbelParameters{
		Location: mean - EulerGamma*delta,
		Scale:    delta,
	}, nil
}

// FitMaxLikelihood maximizes the Gumbel log-likelihood over (λ, δ).
//
// The search runs on (λ, ln δ) so δ stays positive, and starts at the moment
// estimate; the returned parameters are never less likely than that seed.
func FitMaxLikelihood(samples []float64) (GumbelParameters, error) {
	if len(samples) == 0 {
		return GumbelParameters{}, fmt.Errorf("%w: maximum likelihood needs at least 1 sample", ErrInsufficientData)
	}

	if err := checkFinite(samples); err != nil {
		return GumbelParameters{}, err
	}
	// With one value, or a constant sample, the likelihood grows without
	// bound as δ → 0.
	if len(samples) == 1 {
		return GumbelParameters{}, fmt.Errorf("%w: a single sample has no spread", ErrDegenerateSample)
	}

	seed, err := FitMoments(samples)
	if err != nil {
		return GumbelParameters{}, err
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return -gumbelLogLikelihood(samples, x[0], math.Exp(x[1]))
		},
	}
	settings := &optimize.Settings{
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-10,
			Relative:   1e-12,
			Iterations: 100,
		},
		MajorIterations: 10000,
	}

	result, err := optimize.Minimize(problem, []float64{seed.Location, math.Log(seed.Scale)}, settings, &optimize.NelderMead{})
	if result == nil {
		return GumbelParameters{}, fmt.Errorf("likelihood maximization failed: %w", err)
	}

	fit := GumbelParameters{Location: result.X[0], Scale: math.Exp(result.X[1])}
	if fit.Validate() != nil || fit.LogLikelihood(samples) < seed.LogLikelihood(samples) {
		return seed, nil
	}
	return fit, nil
}

func checkFinite(samples []float64) error {
	for i, x := range samples {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: sample %d is %g", ErrDomain, i, x)
		}
	}
	return nil
}

// gumbelLogLikelihood is LogLikelihood written out for the optimizer's inner loop.
func gumbelLogLikelihood(samples []float64, lambda, delta float64) float64 {
	ll := -float64(len(samples)) * math.Log(delta)
	for _, x := range samples {
		z := (x - lambda) / delta
		ll -= z + math.Exp(-z)
	}
	return ll
}
