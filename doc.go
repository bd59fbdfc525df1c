// Package metallab provides the numeric core of two steelmaking calculations:
// Al-O deoxidation equilibrium and extreme value analysis of inclusion sizes.
//
// # Overview
//
// Both pipelines are pure functions of their inputs. Nothing is cached, no I/O
// happens here, and every call builds its results from scratch.
//
//   - coefficients  - Temperature functions for log K and interaction coefficients
//   - deoxidation   - Equilibrium residual, oxygen root search, curve sweep
//   - ecdf          - Empirical CDF with Weibull plotting positions
//   - gumbel        - Moment and maximum likelihood Gumbel estimators
//   - gumbelplot    - Standard error band, plot geometry, return levels
//   - assertions    - Test helpers for estimator and sweep properties
//
// # Deoxidation Equilibrium
//
// Aluminum removes dissolved oxygen by forming alumina:
//
//	(Al2O3) = 2[Al] + 3[O]
//
// At equilibrium the residual
//
//	ε = 2·log f_Al + 2·log[%Al] + 3·log f_O + 3·log[%O] − log a_Al2O3 − log K
//
// is zero. The activity coefficients f_i include none (order 0), first-order
// (order 1), or first and second-order (order 2) interaction terms.
//
// Compute one equilibrium point:
//
//	sol, err := metallab.CalcPure(metallab.EquilibriumQuery{
//	    PctAl:         0.03,
//	    Temperature:   1873,
//	    ActivityAl2O3: 1,
//	    Order:         metallab.OrderSecond,
//	}, metallab.DefaultInitialGuess)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("[%%O] = %.2e (converged: %v)\n", sol.PctO, sol.Converged)
//
// Sweep a curve and drop the out-of-range part:
//
//	grid, _ := metallab.LogSpace(1e-4, 10, 100)
//	points, err := metallab.DataDeox(grid, metallab.SweepParams{
//	    Temperature:   1873,
//	    ActivityAl2O3: 1,
//	    Order:         metallab.OrderFirst,
//	    Bound:         1e-2,
//	})
//
// Points above the bound come back with Defined == false and NaN oxygen.
//
// The root search does not bracket. A search that stalls returns the iterate
// with the smallest residual it saw and Converged == false. The sweep drops
// such a point unless its residual is within ResidualTolerance.
//
// # Extreme Value Analysis
//
// The largest inclusion per control area follows a Gumbel distribution
//
//	F(x) = exp(−exp(−(x−λ)/δ))
//
// Fit and linearize (ASTM E2283):
//
//	params, err := metallab.FitMaxLikelihood(lengths)
//	points, err := metallab.GumbelPlot(lengths, params)
//
//	for _, p := range points {
//	    // p.Value vs p.Reduced: measurements
//	    // p.Fitted, p.Lower, p.Upper vs p.Reduced: fit and ±2SE band
//	}
//
// Predict the largest inclusion over T control areas:
//
//	pred, err := params.PredictExtreme(1000, len(lengths))
//
// The standard error model
//
//	SE = δ·√((1.109 + 0.514·y + 0.608·y²)/N)
//
// is the asymptotic approximation for maximum likelihood estimates.
//
// # Errors
//
// Validation fails fast with wrapped sentinels: ErrInvalidOrder,
// ErrDomain, ErrInsufficientData and ErrDegenerateSample. Use errors.Is.
package metallab
