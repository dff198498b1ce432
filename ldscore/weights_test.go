package ldscore

import (
	"testing"

	"github.com/hhcho/ldsc-go/jackknife"
	"github.com/stretchr/testify/require"
)

func TestH2WeightsFormula(t *testing.T) {
	// c = hsq*n/m = 0.2; the first score clamps to 1.
	w, err := H2Weights([]float64{0.5, 2}, []float64{100, 100}, 200, 0.4)
	require.NoError(t, err)
	require.InEpsilon(t, 1/1.44, w[0], 1e-12)
	require.InEpsilon(t, 1/1.96, w[1], 1e-12)
}

func TestH2WeightsClampEquivalence(t *testing.T) {
	n := []float64{50, 50, 50, 50}
	a, err := H2Weights([]float64{0.2, 0.7, -3, 1.5}, n, 100, 0.5)
	require.NoError(t, err)
	b, err := H2Weights([]float64{1, 1, 1, 1.5}, n, 100, 0.5)
	require.NoError(t, err)
	require.Equal(t, b, a)
}

func TestH2WeightsErrors(t *testing.T) {
	_, err := H2Weights([]float64{1}, []float64{100}, 0, 0.5)
	require.ErrorIs(t, err, jackknife.ErrInvalidParam)

	_, err = H2Weights([]float64{1, 2}, []float64{100}, 200, 0.5)
	require.ErrorIs(t, err, jackknife.ErrShapeMismatch)
}

func TestGencovWeightsFormula(t *testing.T) {
	// a = 0.01, b = 0.007, c = 0.0045, w = 1/(ab + 2c^2)
	w, err := GencovWeights(200, []float64{2}, []float64{100}, []float64{400}, []float64{50},
		0.3, 0.6, 0.2, 0.5)
	require.NoError(t, err)
	require.InEpsilon(t, 9049.773755656109, w[0], 1e-9)
}

func TestGencovWeightsClampEquivalence(t *testing.T) {
	n1 := []float64{50}
	n2 := []float64{60}
	nov := []float64{0}
	low, err := GencovWeights(100, []float64{0.4}, n1, n2, nov, 0.2, 0.3, 0.1, 0)
	require.NoError(t, err)
	unit, err := GencovWeights(100, []float64{1}, n1, n2, nov, 0.2, 0.3, 0.1, 0)
	require.NoError(t, err)
	require.Equal(t, unit, low)
}

func TestGencovWeightsErrors(t *testing.T) {
	ld := []float64{1}
	n := []float64{100}
	_, err := GencovWeights(-1, ld, n, n, n, 0.5, 0.5, 0.2, 0)
	require.ErrorIs(t, err, jackknife.ErrInvalidParam)

	_, err = GencovWeights(200, ld, n, []float64{100, 100}, n, 0.5, 0.5, 0.2, 0)
	require.ErrorIs(t, err, jackknife.ErrShapeMismatch)
}
