package metallab

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Order selects how many interaction terms enter the activity coefficients.
type Order int

const (
	OrderIdeal  Order = 0 // f_Al = f_O = 1
	OrderFirst  Order = 1 // e_i^j terms
	OrderSecond Order = 2 // e_i^j, r_i^j and r_i^(j,k) terms
)

// ValidOrders lists every accepted refinement order.
var ValidOrders = []Order{OrderIdeal, OrderFirst, OrderSecond}

// Validate reports ErrInvalidOrder for anything outside ValidOrders.
func (o Order) Validate() error {
	switch o {
	case OrderIdeal, OrderFirst, OrderSecond:
		return nil
	}
	return fmt.Errorf("%w: %d is not valid, choose either %v", ErrInvalidOrder, int(o), ValidOrders)
}

// Label is the legend text used for curves of this order.
func (o Order) Label() string {
	switch o {
	case OrderIdeal:
		return "0th order"
	case OrderFirst:
		return "1st order"
	case OrderSecond:
		return "2nd order"
	}
	return fmt.Sprintf("order %d", int(o))
}

// DefaultInitialGuess seeds the oxygen search. Dissolved oxygen in Al-killed
// steel is always a small positive quantity.
const DefaultInitialGuess = 1e-8

// ResidualTolerance is the largest |ε| a sweep accepts from a search that did
// not converge. Where no root exists the search stalls well above it.
const ResidualTolerance = 1e-6

// EquilibriumQuery fixes everything except the oxygen content.
type EquilibriumQuery struct {
	PctAl         float64 // [%Al], weight percent
	Temperature   float64 // K
	ActivityAl2O3 float64 // Raoultian activity of the oxide, (0, 1]
	Order         Order
}

// Validate checks the order first, then the physical domain.
func (q EquilibriumQuery) Validate() error {
	if err := q.Order.Validate(); err != nil {
		return err
	}
	if !(q.Temperature > 0) {
		return fmt.Errorf("%w: temperature must be > 0 K, got %g", ErrDomain, q.Temperature)
	}
	if !(q.PctAl > 0) {
		return fmt.Errorf("%w: [%%Al] must be > 0, got %g", ErrDomain, q.PctAl)
	}
	if !(q.ActivityAl2O3 > 0 && q.ActivityAl2O3 <= 1) {
		return fmt.Errorf("%w: Al2O3 activity must be in (0, 1], got %g", ErrDomain, q.ActivityAl2O3)
	}
	return nil
}

// OxygenSolution is the result of one equilibrium search. PctO is whatever the
// search ended on; check Converged before trusting it.
type OxygenSolution struct {
	PctO       float64
	Residual   float64
	Iterations int
	Converged  bool
}

// EquilibriumPoint is one point of a deoxidation curve. Undefined points carry
// NaN oxygen and Defined == false.
type EquilibriumPoint struct {
	PctAl   float64
	PctO    float64
	Defined bool
}

// Curve is a deoxidation curve for one refinement order.
type Curve struct {
	Order  Order
	Label  string
	Points []EquilibriumPoint
}

// Undefined counts the points removed by the bound.
func (c Curve) Undefined() int {
	n := 0
	for _, p := range c.Points {
		if !p.Defined {
			n++
		}
	}
	return n
}

// SweepParams holds the fixed inputs of a curve sweep.
type SweepParams struct {
	Temperature   float64
	ActivityAl2O3 float64
	Order         Order
	InitialGuess  float64 // 0 means DefaultInitialGuess
	Bound         float64 // [%O] above this is undefined
	Solver        SolverConfig
}

// residual is the unchecked equilibrium expression.
func residual(c Coefficients, pctO float64, q EquilibriumQuery) float64 {
	logFAl, logFO := c.LogActivityCoefficients(q.PctAl, pctO, q.Order)

	return 2*logFAl + 2*math.Log10(q.PctAl) +
		3*logFO + 3*math.Log10(pctO) -
		math.Log10(q.ActivityAl2O3) - c.LogK
}

// Residual evaluates
//
//	ε = 2·log f_Al + 2·log[%Al] + 3·log f_O + 3·log[%O] − log a_Al2O3 − log K
//
// at a trial oxygen content. ε = 0 at equilibrium.
func (s AlOSystem) Residual(pctO float64, q EquilibriumQuery) (float64, error) {
	if err := q.Validate(); err != nil {
		return 0, err
	}
	if !(pctO > 0) {
		return 0, fmt.Errorf("%w: [%%O] must be > 0, got %g", ErrDomain, pctO)
	}
	return residual(s.At(q.Temperature), pctO, q), nil
}

// Solve finds the oxygen content in equilibrium with q.PctAl, starting from x0.
func (s AlOSystem) Solve(q EquilibriumQuery, x0 float64, cfg SolverConfig) (OxygenSolution, error) {
	if err := q.Validate(); err != nil {
		return OxygenSolution{}, err
	}
	if !(x0 > 0) {
		return OxygenSolution{}, fmt.Errorf("%w: initial [%%O] guess must be > 0, got %g", ErrDomain, x0)
	}

	c := s.At(q.Temperature)
	root := findPositiveRoot(func(pctO float64) float64 {
		return residual(c, pctO, q)
	}, x0, cfg.withDefaults())

	return OxygenSolution{
		PctO:       root.X,
		Residual:   root.F,
		Iterations: root.Iterations,
		Converged:  root.Converged,
	}, nil
}

// Sweep solves the equilibrium once per aluminum content. Results above
// p.Bound, non-finite, or from a stalled search whose residual exceeds
// ResidualTolerance are marked undefined rather than clamped.
func (s AlOSystem) Sweep(pctAl []float64, p SweepParams) ([]EquilibriumPoint, error) {
	if !(p.Bound > 0) {
		return nil, fmt.Errorf("%w: bound must be > 0, got %g", ErrDomain, p.Bound)
	}
	x0 := p.InitialGuess
	if x0 == 0 {
		x0 = DefaultInitialGuess
	}

	points := make([]EquilibriumPoint, 0, len(pctAl))
	for _, al := range pctAl {
		q := EquilibriumQuery{
			PctAl:         al,
			Temperature:   p.Temperature,
			ActivityAl2O3: p.ActivityAl2O3,
			Order:         p.Order,
		}

		sol, err := s.Solve(q, x0, p.Solver)
		if err != nil {
			return nil, fmt.Errorf("failed at [%%Al]=%g: %w", al, err)
		}

		pt := EquilibriumPoint{PctAl: al, PctO: sol.PctO, Defined: true}
		stalled := !sol.Converged && !(math.Abs(sol.Residual) <= ResidualTolerance)
		if stalled || sol.PctO > p.Bound || math.IsNaN(sol.PctO) || math.IsInf(sol.PctO, 0) {
			pt.PctO = math.NaN()
			pt.Defined = false
		}
		points = append(points, pt)
	}

	return points, nil
}

// ReferenceCurves sweeps every order in ValidOrders with otherwise identical
// parameters. p.Order is ignored.
func (s AlOSystem) ReferenceCurves(pctAl []float64, p SweepParams) ([]Curve, error) {
	curves := make([]Curve, 0, len(ValidOrders))
	for _, order := range ValidOrders {
		p.Order = order
		points, err := s.Sweep(pctAl, p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", order.Label(), err)
		}
		curves = append(curves, Curve{Order: order, Label: order.Label(), Points: points})
	}
	return curves, nil
}

// Residual evaluates the equilibrium residual with the literature coefficients.
func Residual(pctO float64, q EquilibriumQuery) (float64, error) {
	return LiteratureAlO().Residual(pctO, q)
}

// CalcPure solves for equilibrium oxygen with the literature coefficients and
// default solver settings.
func CalcPure(q EquilibriumQuery, x0 float64) (OxygenSolution, error) {
	return LiteratureAlO().Solve(q, x0, DefaultSolverConfig())
}

// DataDeox sweeps a deoxidation curve with the literature coefficients.
func DataDeox(pctAl []float64, p SweepParams) ([]EquilibriumPoint, error) {
	return LiteratureAlO().Sweep(pctAl, p)
}

// LogSpace returns n values spaced evenly on a log scale from lo to hi
// inclusive.
func LogSpace(lo, hi float64, n int) ([]float64, error) {
	if !(lo > 0) || !(hi > lo) {
		return nil, fmt.Errorf("%w: log grid needs 0 < min < max, got [%g, %g]", ErrDomain, lo, hi)
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: log grid needs at least 2 points, got %d", ErrInsufficientData, n)
	}
	return floats.LogSpan(make([]float64, n), lo, hi), nil
}
