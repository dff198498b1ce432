package ldscore

import (
	"fmt"
	"math"

	"github.com/hhcho/ldsc-go/jackknife"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// HsqSummary reports a single-annotation heritability fit on the scales
// analysts read: the slope rescaled to a heritability, the intercept,
// mean chi-square, lambda GC and the intercept ratio.
type HsqSummary struct {
	Hsq   float64
	HsqSE float64

	Intercept   float64
	InterceptSE float64

	MeanChisq float64
	LambdaGC  float64

	// Ratio is (intercept-1)/(mean(chisq)-1), the share of the average
	// inflation the intercept attributes to confounding.
	Ratio float64

	// Liability-scale conversion of Hsq and HsqSE, populated when
	// sample and population prevalences are configured.
	LiabilityScale bool
	HsqLiab        float64
	HsqLiabSE      float64
}

// SummarizeHsq rescales a single-annotation heritability fit by m over
// the mean sample size and derives the usual diagnostics from the raw
// chi-squares.
func SummarizeHsq(res *jackknife.Lstsq, chisq, n []float64, m float64) (*HsqSummary, error) {
	if res.Dim != 2 {
		return nil, fmt.Errorf("%w: expected slope and intercept, got %d coefficients", jackknife.ErrInvalidParam, res.Dim)
	}
	if len(chisq) != len(n) || len(chisq) == 0 {
		return nil, fmt.Errorf("%w: %d chi-squares, %d sample sizes", jackknife.ErrShapeMismatch, len(chisq), len(n))
	}
	nbar, _ := stats.Mean(n)
	scale := m / nbar
	meanChisq, _ := stats.Mean(chisq)
	medChisq, _ := stats.Median(chisq)

	s := &HsqSummary{
		Hsq:         res.Est[0] * scale,
		HsqSE:       res.JackSE[0] * scale,
		Intercept:   res.Est[1],
		InterceptSE: res.JackSE[1],
		MeanChisq:   meanChisq,
		LambdaGC:    medChisq / distuv.ChiSquared{K: 1}.Quantile(0.5),
	}
	if meanChisq != 1 {
		s.Ratio = (s.Intercept - 1) / (meanChisq - 1)
	} else {
		s.Ratio = math.NaN()
	}
	return s, nil
}

// RgSummary reports a genetic correlation with its jackknife uncertainty,
// the two-sided test against zero, and the rescaled covariance behind it.
type RgSummary struct {
	Rg   float64
	RgSE float64
	Z    float64
	P    float64

	Gencov   float64
	GencovSE float64
}

// SummarizeRg rescales the slope-dimension ratio from a Gencor run into
// the genetic correlation. The raw ratio divides the covariance slope by
// sqrt of the product of chi-square slopes, which carry a factor of N
// apiece that the covariance slope does not; multiplying by sqrt of the
// mean sample sizes restores cov/sqrt(h1*h2). The covariance itself only
// needs the factor of m.
func SummarizeRg(g *GencorResult, m float64, n1, n2 []float64) (*RgSummary, error) {
	if g == nil || g.Gencor == nil || g.Gencov == nil {
		return nil, fmt.Errorf("%w: missing correlation result", jackknife.ErrInvalidParam)
	}
	if g.Gencor.Dim != 2 {
		return nil, fmt.Errorf("%w: expected slope and intercept, got %d coefficients", jackknife.ErrInvalidParam, g.Gencor.Dim)
	}
	if len(n1) == 0 || len(n2) == 0 {
		return nil, fmt.Errorf("%w: empty sample size arrays", jackknife.ErrShapeMismatch)
	}
	nbar1, _ := stats.Mean(n1)
	nbar2, _ := stats.Mean(n2)
	scale := math.Sqrt(nbar1 * nbar2)

	rg := g.Gencor.Est[0] * scale
	se := g.Gencor.JackSE[0] * scale
	z := rg / se
	return &RgSummary{
		Rg:       rg,
		RgSE:     se,
		Z:        z,
		P:        2 * distuv.UnitNormal.Survival(math.Abs(z)),
		Gencov:   g.Gencov.Est[0] * m,
		GencovSE: g.Gencov.JackSE[0] * m,
	}, nil
}
