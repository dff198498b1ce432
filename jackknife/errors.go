package jackknife

import "errors"

// Failures surfaced by the jackknife engines. Callers test for them with
// errors.Is; wrapped messages carry the offending dimensions or block.
var (
	// ErrShapeMismatch signals disagreeing row counts or dimensions
	// between operands.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidParam signals a parameter outside its valid range.
	ErrInvalidParam = errors.New("invalid parameter")

	// ErrSingular signals a cross-product matrix that could not be
	// inverted, typically a block whose removal leaves a constant
	// predictor column.
	ErrSingular = errors.New("singular matrix")
)
