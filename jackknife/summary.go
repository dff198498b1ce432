package jackknife

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"
)

// Summary bundles the pseudovalue statistics common to every jackknife
// flavor. All fields are filled in at construction and read-only after.
//
// For a jackknife with n blocks, delete-value j is the estimate with
// block j removed and pseudovalue j is n*est - (n-1)*delete_value_j.
// The jackknife moments are taken over the pseudovalues:
//
//	JackVar = popvar(pseudovalues) / (n-1)
//	JackCov = samplecov(pseudovalues) / n
type Summary struct {
	NumBlocks int
	Dim       int

	// Est is the full-data point estimate, one entry per output dimension.
	Est []float64

	// DeleteValues and Pseudovalues are NumBlocks x Dim.
	DeleteValues *mat.Dense
	Pseudovalues *mat.Dense

	JackEst []float64
	JackVar []float64
	JackSE  []float64
	JackCov *mat.SymDense
}

// newSummary derives pseudovalues and the jackknife moments from a point
// estimate and per-block delete-values. Both construction routes, least
// squares and ratio, end here.
func newSummary(est []float64, deleteValues *mat.Dense) (Summary, error) {
	nb, dim := deleteValues.Dims()
	if len(est) != dim {
		return Summary{}, fmt.Errorf("%w: estimate has %d dimensions, delete values have %d", ErrShapeMismatch, len(est), dim)
	}
	if nb < 2 {
		return Summary{}, fmt.Errorf("%w: need at least 2 blocks, got %d", ErrInvalidParam, nb)
	}

	n := float64(nb)
	pseudo := mat.NewDense(nb, dim, nil)
	for j := 0; j < nb; j++ {
		for k := 0; k < dim; k++ {
			pseudo.Set(j, k, n*est[k]-(n-1)*deleteValues.At(j, k))
		}
	}

	cols := make([][]float64, dim)
	for k := 0; k < dim; k++ {
		cols[k] = mat.Col(nil, k, pseudo)
	}

	jackEst := make([]float64, dim)
	jackVar := make([]float64, dim)
	jackSE := make([]float64, dim)
	for k := 0; k < dim; k++ {
		m, _ := stats.Mean(cols[k])
		v, _ := stats.PopulationVariance(cols[k])
		jackEst[k] = m
		jackVar[k] = v / (n - 1)
		jackSE[k] = math.Sqrt(jackVar[k])
	}

	jackCov := mat.NewSymDense(dim, nil)
	for a := 0; a < dim; a++ {
		for b := a; b < dim; b++ {
			c, _ := stats.Covariance(cols[a], cols[b])
			jackCov.SetSym(a, b, c/n)
		}
	}

	estCopy := make([]float64, dim)
	copy(estCopy, est)

	return Summary{
		NumBlocks:    nb,
		Dim:          dim,
		Est:          estCopy,
		DeleteValues: deleteValues,
		Pseudovalues: pseudo,
		JackEst:      jackEst,
		JackVar:      jackVar,
		JackSE:       jackSE,
		JackCov:      jackCov,
	}, nil
}

// Autocov returns the lag autocovariance of the pseudovalues per output
// dimension, a diagnostic for leftover dependence between blocks.
func (s *Summary) Autocov(lag int) ([]float64, error) {
	if lag <= 0 || lag >= s.NumBlocks {
		return nil, fmt.Errorf("%w: lag %d outside [1, %d]", ErrInvalidParam, lag, s.NumBlocks-1)
	}
	out := make([]float64, s.Dim)
	for k := 0; k < s.Dim; k++ {
		sum := 0.0
		for j := 0; j+lag < s.NumBlocks; j++ {
			v := s.Pseudovalues.At(j+lag, k) - s.JackEst[k]
			w := s.Pseudovalues.At(j, k) - s.JackEst[k]
			sum += v * w
		}
		out[k] = sum / float64(s.NumBlocks-lag)
	}
	return out, nil
}

// Autocor returns Autocov(lag) normalized by the jackknife standard error.
func (s *Summary) Autocor(lag int) ([]float64, error) {
	ac, err := s.Autocov(lag)
	if err != nil {
		return nil, err
	}
	for k := range ac {
		ac[k] /= s.JackSE[k]
	}
	return ac, nil
}
