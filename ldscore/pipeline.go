// Package ldscore estimates heritability and genetic covariance or
// correlation from GWAS summary statistics by LD Score regression, with
// block jackknife uncertainty from package jackknife.
package ldscore

import (
	"fmt"
	"math"
	"time"

	"github.com/hhcho/ldsc-go/jackknife"
	"github.com/montanaflynn/stats"
	"go.dedis.ch/onet/v3/log"
	"gonum.org/v1/gonum/mat"
)

// H2G estimates observed-scale heritability regression coefficients from
// chi-square statistics. A provisional method-of-moments heritability
// seeds the weight model; the returned coefficients are unscaled, one
// slope per annotation column plus the intercept.
func H2G(chisq []float64, ldScores mat.Matrix, n []float64, m float64, blockSize int) (*jackknife.Lstsq, error) {
	if m <= 0 {
		return nil, fmt.Errorf("%w: number of SNPs m = %v", jackknife.ErrInvalidParam, m)
	}
	ld := asColumns(ldScores)
	lr, _ := ld.Dims()
	if len(chisq) != lr || len(n) != lr {
		return nil, fmt.Errorf("%w: %d chi-squares, %d LD score rows, %d sample sizes",
			jackknife.ErrShapeMismatch, len(chisq), lr, len(n))
	}

	meanChisq, _ := stats.Mean(chisq)
	agg := (meanChisq - 1) / meanNLD(ld, n, m)

	w, err := H2Weights(totalLD(ld), n, m, agg)
	if err != nil {
		return nil, err
	}
	return Regress(mat.NewDense(lr, 1, chisq), ld, w, blockSize)
}

// Gencov estimates genetic-covariance regression coefficients from the
// per-SNP product of effect estimates of two studies. nOverlap counts
// shared samples per SNP (nil for disjoint studies) and rho is the
// phenotypic correlation among them; hsq1 and hsq2 are aggregate
// observed-scale heritabilities consumed only by the weight model.
func Gencov(betahat1, betahat2 []float64, ldScores mat.Matrix, n1, n2 []float64, m float64,
	nOverlap []float64, rho, hsq1, hsq2 float64, blockSize int) (*jackknife.Lstsq, error) {
	if m <= 0 {
		return nil, fmt.Errorf("%w: number of SNPs m = %v", jackknife.ErrInvalidParam, m)
	}
	ld := asColumns(ldScores)
	lr, _ := ld.Dims()
	if len(betahat1) != lr || len(betahat2) != lr || len(n1) != lr || len(n2) != lr {
		return nil, fmt.Errorf("%w: %d LD score rows, effects %d/%d, sample sizes %d/%d",
			jackknife.ErrShapeMismatch, lr, len(betahat1), len(betahat2), len(n1), len(n2))
	}
	if nOverlap == nil {
		nOverlap = make([]float64, lr)
	}

	betaprod := make([]float64, lr)
	for i := range betaprod {
		betaprod[i] = betahat1[i] * betahat2[i]
	}
	meanProd, _ := stats.Mean(betaprod)
	agg := meanProd / meanLD(ld, m)

	w, err := GencovWeights(m, totalLD(ld), n1, n2, nOverlap, hsq1, hsq2, agg, rho)
	if err != nil {
		return nil, err
	}
	return Regress(mat.NewDense(lr, 1, betaprod), ld, w, blockSize)
}

// GencorResult bundles the three coefficient jackknifes behind a genetic
// correlation and the correlation ratio jackknife assembled from their
// delete-values.
type GencorResult struct {
	Hsq1   *jackknife.Lstsq
	Hsq2   *jackknife.Lstsq
	Gencov *jackknife.Lstsq
	Gencor *jackknife.Ratio
}

// Gencor estimates the genetic correlation between two studies: two
// heritability jackknifes, one covariance jackknife, and a ratio
// jackknife of cov / sqrt(h1*h2) built from their delete-values without
// refitting. Aggregate heritabilities for the covariance weights are
// derived from the two heritability fits.
func Gencor(betahat1, betahat2 []float64, ldScores mat.Matrix, n1, n2 []float64, m float64,
	nOverlap []float64, rho float64, blockSize int) (*GencorResult, error) {
	lr := len(betahat1)
	if len(betahat2) != lr || len(n1) != lr || len(n2) != lr {
		return nil, fmt.Errorf("%w: effects %d/%d, sample sizes %d/%d",
			jackknife.ErrShapeMismatch, lr, len(betahat2), len(n1), len(n2))
	}

	chisq1 := make([]float64, lr)
	chisq2 := make([]float64, lr)
	for i := 0; i < lr; i++ {
		chisq1[i] = n1[i] * betahat1[i] * betahat1[i]
		chisq2[i] = n2[i] * betahat2[i] * betahat2[i]
	}

	start := time.Now()
	hsq1, err := H2G(chisq1, ldScores, n1, m, blockSize)
	if err != nil {
		return nil, err
	}
	hsq2, err := H2G(chisq2, ldScores, n2, m, blockSize)
	if err != nil {
		return nil, err
	}
	log.LLvl1(time.Now().Format(time.StampMilli), "Gencor heritability fits:", time.Since(start).String())

	cov, err := Gencov(betahat1, betahat2, ldScores, n1, n2, m, nOverlap, rho,
		aggHsq(hsq1, m, n1), aggHsq(hsq2, m, n2), blockSize)
	if err != nil {
		return nil, err
	}

	dim := cov.Dim
	biased := make([]float64, dim)
	for k := 0; k < dim; k++ {
		biased[k] = cov.Est[k] / math.Sqrt(hsq1.Est[k]*hsq2.Est[k])
	}
	denom := mat.NewDense(cov.NumBlocks, dim, nil)
	for j := 0; j < cov.NumBlocks; j++ {
		for k := 0; k < dim; k++ {
			denom.Set(j, k, math.Sqrt(hsq1.DeleteValues.At(j, k)*hsq2.DeleteValues.At(j, k)))
		}
	}
	cor, err := jackknife.NewRatio(biased, cov.DeleteValues, denom)
	if err != nil {
		return nil, err
	}
	log.LLvl1(time.Now().Format(time.StampMilli), "Gencor time:", time.Since(start).String())

	return &GencorResult{Hsq1: hsq1, Hsq2: hsq2, Gencov: cov, Gencor: cor}, nil
}

// aggHsq turns a heritability fit into the aggregate scalar the weight
// model needs: summed slopes rescaled by m over the mean sample size.
func aggHsq(res *jackknife.Lstsq, m float64, n []float64) float64 {
	nbar, _ := stats.Mean(n)
	total := 0.0
	for k := 0; k < res.Dim-1; k++ {
		total += res.Est[k]
	}
	return total * m / nbar
}

// totalLD returns per-SNP LD scores summed across annotation columns.
func totalLD(ld mat.Matrix) []float64 {
	r, c := ld.Dims()
	out := make([]float64, r)
	for i := 0; i < r; i++ {
		for k := 0; k < c; k++ {
			out[i] += ld.At(i, k)
		}
	}
	return out
}

// meanNLD is the mean of n_i * l_ik / m over every matrix entry.
func meanNLD(ld mat.Matrix, n []float64, m float64) float64 {
	r, c := ld.Dims()
	sum := 0.0
	for i := 0; i < r; i++ {
		for k := 0; k < c; k++ {
			sum += n[i] * ld.At(i, k) / m
		}
	}
	return sum / float64(r*c)
}

// meanLD is the mean of l_ik / m over every matrix entry.
func meanLD(ld mat.Matrix, m float64) float64 {
	r, c := ld.Dims()
	sum := 0.0
	for i := 0; i < r; i++ {
		for k := 0; k < c; k++ {
			sum += ld.At(i, k) / m
		}
	}
	return sum / float64(r*c)
}
