package jackknife

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Ratio jackknifes a quantity of the form numerator/denominator from the
// delete-values of two upstream jackknifes, without access to the raw
// data that produced them. Its delete-values are the elementwise
// quotients; the biased point estimate is supplied by the caller.
type Ratio struct {
	Summary

	NumerDeleteValues *mat.Dense
	DenomDeleteValues *mat.Dense
}

// NewRatio builds the ratio jackknife from a biased ratio estimate and
// numerator/denominator delete-value matrices of shape numBlocks x dim.
func NewRatio(est []float64, numer, denom mat.Matrix) (*Ratio, error) {
	nr, nc := numer.Dims()
	dr, dc := denom.Dims()
	if nr != dr || nc != dc {
		return nil, fmt.Errorf("%w: numerator delete values are %dx%d, denominator %dx%d", ErrShapeMismatch, nr, nc, dr, dc)
	}
	if len(est) != nc {
		return nil, fmt.Errorf("%w: estimate has %d dimensions, delete values have %d", ErrShapeMismatch, len(est), nc)
	}

	deletes := mat.NewDense(nr, nc, nil)
	for j := 0; j < nr; j++ {
		for k := 0; k < nc; k++ {
			deletes.Set(j, k, numer.At(j, k)/denom.At(j, k))
		}
	}

	s, err := newSummary(est, deletes)
	if err != nil {
		return nil, err
	}
	return &Ratio{
		Summary:           s,
		NumerDeleteValues: mat.DenseCopyOf(numer),
		DenomDeleteValues: mat.DenseCopyOf(denom),
	}, nil
}
