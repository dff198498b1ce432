package ldscore

import (
	"testing"

	"github.com/hhcho/ldsc-go/jackknife"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestRegressExactLinearFit(t *testing.T) {
	m := 6
	ld := mat.NewDense(m, 1, []float64{1, 2, 3, 4, 5, 6})
	y := mat.NewDense(m, 1, nil)
	for i := 0; i < m; i++ {
		y.Set(i, 0, 3*ld.At(i, 0)+0.5)
	}
	w := []float64{1, 2, 3, 4, 5, 6}
	res, err := Regress(y, ld, w, 2)
	require.NoError(t, err)
	require.Equal(t, 2, res.Dim)
	require.Equal(t, 3, res.NumBlocks)
	require.InDelta(t, 3.0, res.Est[0], 1e-9)
	require.InDelta(t, 0.5, res.Est[1], 1e-9)
	require.InDelta(t, 0.0, res.JackSE[0], 1e-7)
	require.InDelta(t, 0.0, res.JackSE[1], 1e-7)
}

func TestRegressMatchesClosedFormWLS(t *testing.T) {
	l := []float64{1, 2, 3, 4, 5, 6}
	yv := []float64{1, 2, 2, 3, 5, 4}
	w := []float64{1, 1, 2, 2, 4, 4}
	m := len(l)

	res, err := Regress(mat.NewDense(m, 1, yv), mat.NewDense(m, 1, l), w, 2)
	require.NoError(t, err)

	var s0, s1, s2, t0, t1 float64
	for i := range l {
		s0 += w[i]
		s1 += w[i] * l[i]
		s2 += w[i] * l[i] * l[i]
		t0 += w[i] * yv[i]
		t1 += w[i] * l[i] * yv[i]
	}
	det := s0*s2 - s1*s1
	slope := (s0*t1 - s1*t0) / det
	intercept := (s2*t0 - s1*t1) / det
	require.InDelta(t, slope, res.Est[0], 1e-9)
	require.InDelta(t, intercept, res.Est[1], 1e-9)
}

func TestRegressRejectsMatrixResponse(t *testing.T) {
	ld := mat.NewDense(6, 1, []float64{1, 2, 3, 4, 5, 6})
	y := mat.NewDense(3, 2, nil)
	_, err := Regress(y, ld, nil, 2)
	require.ErrorIs(t, err, jackknife.ErrShapeMismatch)
}

func TestRegressNilWeightsMeanOnes(t *testing.T) {
	l := []float64{1, 2, 3, 4, 5, 6}
	yv := []float64{1, 2, 2, 3, 5, 4}
	m := len(l)

	implicit, err := Regress(mat.NewDense(m, 1, yv), mat.NewDense(m, 1, l), nil, 2)
	require.NoError(t, err)
	ones := []float64{1, 1, 1, 1, 1, 1}
	explicit, err := Regress(mat.NewDense(m, 1, yv), mat.NewDense(m, 1, l), ones, 2)
	require.NoError(t, err)
	require.Equal(t, explicit.Est, implicit.Est)
}

func TestRegressRowVectorInputs(t *testing.T) {
	l := []float64{1, 2, 3, 4, 5, 6}
	yv := []float64{1, 2, 2, 3, 5, 4}
	m := len(l)

	col, err := Regress(mat.NewDense(m, 1, yv), mat.NewDense(m, 1, l), nil, 2)
	require.NoError(t, err)
	row, err := Regress(mat.NewDense(1, m, yv), mat.NewDense(1, m, l), nil, 2)
	require.NoError(t, err)
	for k := 0; k < col.Dim; k++ {
		require.InDelta(t, col.Est[k], row.Est[k], 1e-12)
	}
}

func TestRegressWeightValidation(t *testing.T) {
	l := []float64{1, 2, 3, 4, 5, 6}
	yv := []float64{1, 2, 2, 3, 5, 4}
	m := len(l)
	y := mat.NewDense(m, 1, yv)
	ld := mat.NewDense(m, 1, l)

	_, err := Regress(y, ld, []float64{1, 1, 0, 1, 1, 1}, 2)
	require.ErrorIs(t, err, jackknife.ErrInvalidParam)

	_, err = Regress(y, ld, []float64{1, 1, -2, 1, 1, 1}, 2)
	require.ErrorIs(t, err, jackknife.ErrInvalidParam)

	_, err = Regress(y, ld, []float64{1, 1, 1, 1, 1}, 2)
	require.ErrorIs(t, err, jackknife.ErrShapeMismatch)
}

func TestRegressDefaultBlockSize(t *testing.T) {
	m := 2500
	ld := mat.NewDense(m, 1, nil)
	y := mat.NewDense(m, 1, nil)
	for i := 0; i < m; i++ {
		l := float64(i%97) + 0.5
		ld.Set(i, 0, l)
		y.Set(i, 0, 1+0.002*l)
	}
	res, err := Regress(y, ld, nil, 0)
	require.NoError(t, err)
	require.Equal(t, DefaultBlockSize, res.BlockSize)
	require.Equal(t, 3, res.NumBlocks)
	require.InDelta(t, 0.002, res.Est[0], 1e-9)
	require.InDelta(t, 1.0, res.Est[1], 1e-9)
}
