package metallab

import "errors"

var (
	// ErrInvalidOrder is returned when a refinement order is not one of ValidOrders.
	ErrInvalidOrder = errors.New("invalid interaction order")

	// ErrDomain is returned for non-physical inputs: non-positive temperature,
	// content or activity, activity above 1, or a non-positive bound.
	ErrDomain = errors.New("input outside physical domain")

	// ErrInsufficientData is returned when a sample is too small for an estimator.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrDegenerateSample is returned when a sample has no spread and the
	// likelihood has no finite maximizer.
	ErrDegenerateSample = errors.New("degenerate sample")
)
