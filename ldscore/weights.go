package ldscore

import (
	"fmt"

	"github.com/hhcho/ldsc-go/jackknife"
)

// H2Weights returns heteroskedasticity weights for the chi-square
// regression: the reciprocal of the approximate conditional variance of
// a chi-square statistic under an infinitesimal architecture with
// aggregate heritability hsq. LD scores are clamped to a floor of 1
// inside the formula only; the regression itself sees them unclamped.
func H2Weights(ldScores, n []float64, m, hsq float64) ([]float64, error) {
	if m <= 0 {
		return nil, fmt.Errorf("%w: number of SNPs m = %v", jackknife.ErrInvalidParam, m)
	}
	if len(ldScores) != len(n) {
		return nil, fmt.Errorf("%w: %d LD scores, %d sample sizes", jackknife.ErrShapeMismatch, len(ldScores), len(n))
	}
	w := make([]float64, len(ldScores))
	for i := range w {
		l := ldScores[i]
		if l < 1 {
			l = 1
		}
		c := hsq * n[i] / m
		v := 1 + c*l
		w[i] = 1 / (v * v)
	}
	return w, nil
}

// GencovWeights is the bivariate analogue of H2Weights for the per-SNP
// product of effect estimates from two studies. nOverlap counts samples
// present in both studies and rho is their phenotypic correlation; h1,
// h2 and rhoG are aggregate heritabilities and genetic covariance.
func GencovWeights(m float64, ldScores, n1, n2, nOverlap []float64, h1, h2, rhoG, rho float64) ([]float64, error) {
	if m <= 0 {
		return nil, fmt.Errorf("%w: number of SNPs m = %v", jackknife.ErrInvalidParam, m)
	}
	if len(n1) != len(ldScores) || len(n2) != len(ldScores) || len(nOverlap) != len(ldScores) {
		return nil, fmt.Errorf("%w: %d LD scores, sample sizes %d/%d/%d", jackknife.ErrShapeMismatch,
			len(ldScores), len(n1), len(n2), len(nOverlap))
	}
	w := make([]float64, len(ldScores))
	for i := range w {
		l := ldScores[i]
		if l < 1 {
			l = 1
		}
		a := h1*l/m + (1-h1)/n1[i]
		b := h2*l/m + (1-h2)/n2[i]
		// TODO: confirm the overlap term against the variance
		// derivation; it scales by n1^2 where a symmetric form would
		// use n1*n2.
		c := rhoG*l/m + nOverlap[i]*rho/(n1[i]*n1[i])
		w[i] = 1 / (a*b + 2*c*c)
	}
	return w, nil
}
