package common

import "errors"

var (
	ErrorInvalidValue = errors.New("invalid value")

	// ErrorInvalidGrid covers non-uniform spacing, fewer than 2 points, or a
	// truncation window that does not fit around the grid midpoint.
	ErrorInvalidGrid = errors.New("invalid pdf grid")

	// ErrorInvalidSigmaGrid covers non-positive or non-uniform sigma grids.
	ErrorInvalidSigmaGrid = errors.New("invalid sigma grid")

	// ErrorMissingInput means neither raw (value, sigma) pairs nor
	// pre-quantized indices were supplied.
	ErrorMissingInput = errors.New("missing input")
)
