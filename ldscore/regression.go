package ldscore

import (
	"fmt"
	"math"

	"github.com/hhcho/ldsc-go/jackknife"
	"gonum.org/v1/gonum/mat"
)

// DefaultBlockSize is the jackknife block size used when a caller passes
// a non-positive one.
const DefaultBlockSize = 1000

// Regress runs the LD Score regression of y on the LD-score matrix with
// per-SNP weights and jackknifes the coefficients.
//
// Weighted least squares is reduced to ordinary least squares on
// transformed data: every LD-score row and response entry is multiplied
// by sqrt(weight), and the appended intercept column is sqrt(weight)
// itself rather than a constant one. Coefficients come back on the
// regression scale; callers rescale slopes by M/N (heritability) or M
// (covariance) themselves.
//
// y must be a vector; a single-row LD-score matrix is treated as one
// annotation column. nil weights mean equal weighting.
func Regress(y, ldScores mat.Matrix, weights []float64, blockSize int) (*jackknife.Lstsq, error) {
	yr, yc := y.Dims()
	if yr != 1 && yc != 1 {
		return nil, fmt.Errorf("%w: response must be a vector, got %dx%d", jackknife.ErrShapeMismatch, yr, yc)
	}
	resp := flatten(y)
	mSnps := len(resp)

	ld := asColumns(ldScores)
	lr, lc := ld.Dims()
	if lr != mSnps {
		return nil, fmt.Errorf("%w: %d responses, %d LD score rows", jackknife.ErrShapeMismatch, mSnps, lr)
	}

	if weights == nil {
		weights = make([]float64, mSnps)
		for i := range weights {
			weights[i] = 1
		}
	}
	if len(weights) != mSnps {
		return nil, fmt.Errorf("%w: %d weights for %d SNPs", jackknife.ErrShapeMismatch, len(weights), mSnps)
	}
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}

	x := mat.NewDense(mSnps, lc+1, nil)
	yw := mat.NewDense(mSnps, 1, nil)
	for i := 0; i < mSnps; i++ {
		if weights[i] <= 0 {
			return nil, fmt.Errorf("%w: weight %v at SNP %d, weights must be positive", jackknife.ErrInvalidParam, weights[i], i)
		}
		sw := math.Sqrt(weights[i])
		for k := 0; k < lc; k++ {
			x.Set(i, k, ld.At(i, k)*sw)
		}
		x.Set(i, lc, sw)
		yw.Set(i, 0, resp[i]*sw)
	}

	return jackknife.NewLstsq(x, yw, blockSize)
}

// flatten copies a single-row or single-column matrix into a slice.
func flatten(v mat.Matrix) []float64 {
	r, c := v.Dims()
	if r == 1 && c != 1 {
		out := make([]float64, c)
		for i := range out {
			out[i] = v.At(0, i)
		}
		return out
	}
	out := make([]float64, r)
	for i := range out {
		out[i] = v.At(i, 0)
	}
	return out
}

// asColumns promotes a row vector to a single annotation column and
// leaves other matrices as they are.
func asColumns(a mat.Matrix) mat.Matrix {
	r, c := a.Dims()
	if r == 1 && c > 1 {
		return a.T()
	}
	return a
}
