package metallab

import "math"

// SolverConfig controls the scalar root search used for equilibrium oxygen.
type SolverConfig struct {
	XTol          float64 // Relative step size that counts as converged
	MaxIterations int     // Newton iterations before giving up
}

// DefaultSolverConfig returns tolerances matching MINPACK's hybrd defaults
// for a one-dimensional problem.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		XTol:          1.49012e-8,
		MaxIterations: 400,
	}
}

func (c SolverConfig) withDefaults() SolverConfig {
	d := DefaultSolverConfig()
	if c.XTol <= 0 {
		c.XTol = d.XTol
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = d.MaxIterations
	}
	return c
}

// rootResult is the outcome of one scalar root search.
type rootResult struct {
	X          float64
	F          float64
	Iterations int
	Converged  bool
}

// sqrtEpsilon is the forward-difference step scale.
var sqrtEpsilon = math.Sqrt(2.220446049250313e-16)

// findPositiveRoot runs a damped Newton iteration on f starting at x0 > 0.
//
// The derivative is a forward difference, so f only has to be evaluable.
// Steps are halved until the trial point is positive and f is finite there.
// When the search stalls the iterate with the smallest |f| seen is returned
// with Converged unset.
func findPositiveRoot(f func(float64) float64, x0 float64, cfg SolverConfig) rootResult {
	x := x0
	fx := f(x)
	best := rootResult{X: x, F: fx}

	for it := 1; it <= cfg.MaxIterations; it++ {
		if fx == 0 {
			return rootResult{X: x, F: fx, Iterations: it - 1, Converged: true}
		}

		h := sqrtEpsilon * math.Abs(x)
		if h == 0 {
			h = sqrtEpsilon
		}
		slope := (f(x+h) - fx) / h
		if slope == 0 || math.IsNaN(slope) || math.IsInf(slope, 0) {
			best.Iterations = it
			return best
		}

		step := -fx / slope
		damping := 1.0
		var xNext, fNext float64
		for {
			xNext = x + damping*step
			if xNext > 0 {
				fNext = f(xNext)
				if !math.IsNaN(fNext) && !math.IsInf(fNext, 0) {
					break
				}
			}
			damping /= 2
			if damping < 1e-10 {
				best.Iterations = it
				return best
			}
		}

		converged := math.Abs(xNext-x) <= cfg.XTol*math.Abs(xNext)
		x, fx = xNext, fNext
		if math.IsNaN(best.F) || math.Abs(fx) < math.Abs(best.F) {
			best.X, best.F = x, fx
		}
		if converged {
			return rootResult{X: x, F: fx, Iterations: it, Converged: true}
		}
	}

	best.Iterations = cfg.MaxIterations
	return best
}
