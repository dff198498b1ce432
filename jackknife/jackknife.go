// Package jackknife implements block jackknife resampling for regression
// estimates. Rows are partitioned into contiguous blocks; deleting one
// block at a time yields delete-values, pseudovalues and jackknife
// moments that quantify estimator uncertainty under local dependence,
// such as linkage disequilibrium between neighboring SNPs.
package jackknife

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Lstsq is the block jackknife of an ordinary least squares fit.
//
// Instead of refitting the regression once per deleted block, the
// constructor accumulates per-block X'X and X'y and forms every
// delete-value from differences of the totals, so a deletion costs one
// p x p inversion rather than a pass over the data.
type Lstsq struct {
	Summary
	BlockSize int
}

type blockBound struct {
	start, end int
}

// blockBounds partitions n rows into ceil(n/size) contiguous index
// ranges; the final block may be short.
func blockBounds(n, size int) []blockBound {
	nb := (n + size - 1) / size
	bounds := make([]blockBound, nb)
	for j := 0; j < nb; j++ {
		end := (j + 1) * size
		if end > n {
			end = n
		}
		bounds[j] = blockBound{start: j * size, end: end}
	}
	return bounds
}

// NewLstsq fits y on x and jackknifes the coefficients over contiguous
// blocks of blockSize rows. x is n x p; y must carry n entries in a
// single column or row. blockSize must stay below n/2.
//
// Fails with ErrSingular when the full system or any deleted system is
// not invertible, e.g. when a predictor is constant outside one block.
func NewLstsq(x, y mat.Matrix, blockSize int) (*Lstsq, error) {
	yv, err := columnVector(y)
	if err != nil {
		return nil, err
	}
	xd := mat.DenseCopyOf(x)
	n, p := xd.Dims()
	if yv.Len() != n {
		yr, yc := y.Dims()
		return nil, fmt.Errorf("%w: x is %dx%d, y is %dx%d", ErrShapeMismatch, n, p, yr, yc)
	}
	if blockSize < 1 {
		return nil, fmt.Errorf("%w: block size %d", ErrInvalidParam, blockSize)
	}
	if 2*blockSize >= n {
		return nil, fmt.Errorf("%w: block size %d with %d observations, need block size < n/2", ErrInvalidParam, blockSize, n)
	}

	bounds := blockBounds(n, blockSize)
	nb := len(bounds)
	if nb > n {
		return nil, fmt.Errorf("%w: %d blocks for %d observations", ErrInvalidParam, nb, n)
	}

	// Per-block sufficient statistics; raw rows are not needed again.
	xtxTot := mat.NewDense(p, p, nil)
	xtyTot := mat.NewVecDense(p, nil)
	xtxBlk := make([]*mat.Dense, nb)
	xtyBlk := make([]*mat.VecDense, nb)
	for j, b := range bounds {
		xb := xd.Slice(b.start, b.end, 0, p)
		yb := yv.SliceVec(b.start, b.end)
		xtx := mat.NewDense(p, p, nil)
		xtx.Mul(xb.T(), xb)
		xty := mat.NewVecDense(p, nil)
		xty.MulVec(xb.T(), yb)
		xtxBlk[j] = xtx
		xtyBlk[j] = xty
		xtxTot.Add(xtxTot, xtx)
		xtyTot.AddVec(xtyTot, xty)
	}

	est, err := solveInv(xtxTot, xtyTot)
	if err != nil {
		return nil, fmt.Errorf("%w: full cross-product matrix: %v", ErrSingular, err)
	}

	deletes := mat.NewDense(nb, p, nil)
	dxtx := mat.NewDense(p, p, nil)
	dxty := mat.NewVecDense(p, nil)
	for j := 0; j < nb; j++ {
		dxtx.Sub(xtxTot, xtxBlk[j])
		dxty.SubVec(xtyTot, xtyBlk[j])
		dv, err := solveInv(dxtx, dxty)
		if err != nil {
			return nil, fmt.Errorf("%w: deleting block %d (rows %d:%d): %v", ErrSingular, j, bounds[j].start, bounds[j].end, err)
		}
		deletes.SetRow(j, dv)
	}

	s, err := newSummary(est, deletes)
	if err != nil {
		return nil, err
	}
	return &Lstsq{Summary: s, BlockSize: blockSize}, nil
}

// solveInv computes inv(a)*b for the p x p normal equations.
func solveInv(a *mat.Dense, b *mat.VecDense) ([]float64, error) {
	var inv mat.Dense
	if err := inv.Inverse(a); err != nil {
		return nil, err
	}
	p := b.Len()
	sol := mat.NewVecDense(p, nil)
	sol.MulVec(&inv, b)
	out := make([]float64, p)
	for k := 0; k < p; k++ {
		out[k] = sol.AtVec(k)
	}
	return out, nil
}

// columnVector flattens a single-column or single-row matrix.
func columnVector(y mat.Matrix) (*mat.VecDense, error) {
	r, c := y.Dims()
	if r != 1 && c != 1 {
		return nil, fmt.Errorf("%w: response must be a vector, got %dx%d", ErrShapeMismatch, r, c)
	}
	n := r
	if r == 1 {
		n = c
	}
	v := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		if c == 1 {
			v.SetVec(i, y.At(i, 0))
		} else {
			v.SetVec(i, y.At(0, i))
		}
	}
	return v, nil
}
