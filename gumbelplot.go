package metallab

import (
	"fmt"
	"math"
)

// ConfidenceMultiplier widens the standard error into an approximate 95% band.
const ConfidenceMultiplier = 2.0

// StandardError returns the asymptotic standard error of a size estimate x
// under maximum likelihood parameters:
//
//	y  = (x − λ)/δ
//	SE = δ·√((1.109 + 0.514·y + 0.608·y²)/N)
func StandardError(x, lambda, delta float64, n int) float64 {
	y := (x - lambda) / delta
	return delta * math.Sqrt((1.109+0.514*y+0.608*y*y)/float64(n))
}

// StandardError is the package-level StandardError with these parameters.
func (p GumbelParameters) StandardError(x float64, n int) float64 {
	return StandardError(x, p.Location, p.Scale, n)
}

// GumbelPlotPoint is one row of a Gumbel probability plot.
type GumbelPlotPoint struct {
	Value       float64 // Sorted measurement
	Probability float64 // i/(N+1)
	Reduced     float64 // −ln(−ln P)
	Fitted      float64 // δ·y + λ
	Lower       float64 // Fitted − 2·SE
	Upper       float64 // Fitted + 2·SE
}

// GumbelPlot computes the linearized plot geometry for a sample and a fit.
// The band is evaluated at the fitted value of each point.
func GumbelPlot(samples []float64, p GumbelParameters) ([]GumbelPlotPoint, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: gumbel plot needs at least 1 sample", ErrInsufficientData)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	n := len(samples)
	sorted, probs := ECDF(samples)
	points := make([]GumbelPlotPoint, n)

	for i := range sorted {
		y := ReducedVariable(probs[i])
		fitted := p.Predict(y)
		band := ConfidenceMultiplier * p.StandardError(fitted, n)

		points[i] = GumbelPlotPoint{
			Value:       sorted[i],
			Probability: probs[i],
			Reduced:     y,
			Fitted:      fitted,
			Lower:       fitted - band,
			Upper:       fitted + band,
		}
	}

	return points, nil
}

// GumbelFit bundles a parameter fit with its plot geometry.
type GumbelFit struct {
	Method        string
	Parameters    GumbelParameters
	N             int
	LogLikelihood float64
	Points        []GumbelPlotPoint
}

// FitGumbel fits the sample with the named estimator and builds the plot.
// An empty method means maximum likelihood.
func FitGumbel(samples []float64, method string) (GumbelFit, error) {
	if method == "" {
		method = MethodMaxLikelihood
	}
	estimate, err := EstimatorByName(method)
	if err != nil {
		return GumbelFit{}, err
	}

	params, err := estimate(samples)
	if err != nil {
		return GumbelFit{}, fmt.Errorf("fit %s: %w", method, err)
	}

	points, err := GumbelPlot(samples, params)
	if err != nil {
		return GumbelFit{}, err
	}

	return GumbelFit{
		Method:        method,
		Parameters:    params,
		N:             len(samples),
		LogLikelihood: params.LogLikelihood(samples),
		Points:        points,
	}, nil
}

// ExtremePrediction is the expected largest feature over ReturnPeriod control
// areas, with its confidence band.
type ExtremePrediction struct {
	ReturnPeriod  float64
	Reduced       float64
	Value         float64
	StandardError float64
	Lower         float64
	Upper         float64
}

// PredictExtreme returns the return level for period T (ASTM E2283):
//
//	y_T = −ln(−ln((T−1)/T))
//	x_T = λ + δ·y_T
//
// T is the ratio of the reference area to the inspected control area; n is
// the number of measurements behind p.
func (p GumbelParameters) PredictExtreme(period float64, n int) (ExtremePrediction, error) {
	if err := p.Validate(); err != nil {
		return ExtremePrediction{}, err
	}
	if !(period > 1) {
		return ExtremePrediction{}, fmt.Errorf("%w: return period must be > 1, got %g", ErrDomain, period)
	}
	if n < 1 {
		return ExtremePrediction{}, fmt.Errorf("%w: standard error needs n >= 1, got %d", ErrInsufficientData, n)
	}

	y := ReducedVariable((period - 1) / period)
	x := p.Predict(y)
	se := p.StandardError(x, n)

	return ExtremePrediction{
		ReturnPeriod:  period,
		Reduced:       y,
		Value:         x,
		StandardError: se,
		Lower:         x - ConfidenceMultiplier*se,
		Upper:         x + ConfidenceMultiplier*se,
	}, nil
}
