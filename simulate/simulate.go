// Package simulate draws synthetic GWAS summary statistics from the LD
// Score regression moment model, for validating the estimation pipeline
// against known parameters.
package simulate

import (
	"fmt"
	"math"
	"time"

	"github.com/hhcho/ldsc-go/jackknife"
	"go.dedis.ch/onet/v3/log"
	"gonum.org/v1/gonum/stat/distuv"
)

// Config sets the generative parameters for a pair of studies over the
// same SNP panel. RefSnps is the reference SNP count entering the moment
// model denominator; it may exceed the regression panel size NumSnps,
// which keeps per-SNP chi-squares at realistic magnitudes. Zero means
// RefSnps = NumSnps.
type Config struct {
	NumSnps int
	RefSnps float64

	N1 float64
	N2 float64

	Hsq1 float64
	Hsq2 float64

	// RhoG is the genetic correlation; Rho the phenotypic correlation
	// among the NumOverlap samples present in both studies.
	RhoG       float64
	Rho        float64
	NumOverlap float64

	// MeanLD sets the expectation of the Gamma-distributed LD scores.
	// LDNoiseSD adds estimation noise to the reported scores, which can
	// push individual scores negative.
	MeanLD    float64
	LDNoiseSD float64

	// Intercept1 and Intercept2 inflate the null variance of each
	// study, mimicking confounding picked up by the intercept.
	Intercept1 float64
	Intercept2 float64

	Seed uint64
}

// DefaultConfig mirrors a well-powered two-study design with a shared
// genetic basis.
func DefaultConfig() Config {
	return Config{
		NumSnps:    20000,
		RefSnps:    400000,
		N1:         30000,
		N2:         30000,
		Hsq1:       0.5,
		Hsq2:       0.5,
		RhoG:       0.5,
		Rho:        0,
		NumOverlap: 0,
		MeanLD:     40,
		LDNoiseSD:  0,
		Intercept1: 1,
		Intercept2: 1,
		Seed:       1,
	}
}

// Dataset holds a simulated panel: reported LD scores, z-score derived
// effect estimates and chi-squares for both studies, and per-SNP sample
// size arrays shaped for the pipeline. M is the reference SNP count to
// pass alongside.
type Dataset struct {
	M        float64
	LDScores []float64

	Betahat1 []float64
	Betahat2 []float64
	Chisq1   []float64
	Chisq2   []float64

	N1       []float64
	N2       []float64
	NOverlap []float64
}

// Generate draws a dataset under cfg. The same seed always produces the
// same dataset.
func Generate(cfg Config) (*Dataset, error) {
	if cfg.NumSnps < 1 {
		return nil, fmt.Errorf("%w: num snps %d", jackknife.ErrInvalidParam, cfg.NumSnps)
	}
	if cfg.RefSnps == 0 {
		cfg.RefSnps = float64(cfg.NumSnps)
	}
	if cfg.RefSnps < 0 {
		return nil, fmt.Errorf("%w: reference snps %v", jackknife.ErrInvalidParam, cfg.RefSnps)
	}
	if cfg.N1 <= 0 || cfg.N2 <= 0 {
		return nil, fmt.Errorf("%w: sample sizes %v, %v", jackknife.ErrInvalidParam, cfg.N1, cfg.N2)
	}
	if cfg.Hsq1 < 0 || cfg.Hsq1 > 1 || cfg.Hsq2 < 0 || cfg.Hsq2 > 1 {
		return nil, fmt.Errorf("%w: heritabilities %v, %v outside [0,1]", jackknife.ErrInvalidParam, cfg.Hsq1, cfg.Hsq2)
	}
	if cfg.RhoG < -1 || cfg.RhoG > 1 {
		return nil, fmt.Errorf("%w: genetic correlation %v outside [-1,1]", jackknife.ErrInvalidParam, cfg.RhoG)
	}
	if cfg.MeanLD <= 0 {
		return nil, fmt.Errorf("%w: mean LD score %v", jackknife.ErrInvalidParam, cfg.MeanLD)
	}
	if cfg.Intercept1 <= 0 || cfg.Intercept2 <= 0 {
		return nil, fmt.Errorf("%w: intercepts %v, %v must be positive", jackknife.ErrInvalidParam, cfg.Intercept1, cfg.Intercept2)
	}

	src := NewSource(cfg.Seed)
	// Shape 2 keeps the LD score distribution skewed like real panels.
	gamma := distuv.Gamma{Alpha: 2, Beta: 2 / cfg.MeanLD, Src: src}
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	m := cfg.RefSnps
	ds := &Dataset{
		M:        m,
		LDScores: make([]float64, cfg.NumSnps),
		Betahat1: make([]float64, cfg.NumSnps),
		Betahat2: make([]float64, cfg.NumSnps),
		Chisq1:   make([]float64, cfg.NumSnps),
		Chisq2:   make([]float64, cfg.NumSnps),
		N1:       make([]float64, cfg.NumSnps),
		N2:       make([]float64, cfg.NumSnps),
		NOverlap: make([]float64, cfg.NumSnps),
	}

	for i := 0; i < cfg.NumSnps; i++ {
		l := gamma.Rand()
		ds.LDScores[i] = l
		if cfg.LDNoiseSD > 0 {
			ds.LDScores[i] += cfg.LDNoiseSD * normal.Rand()
		}

		v1 := cfg.Intercept1 + cfg.N1*cfg.Hsq1*l/m
		v2 := cfg.Intercept2 + cfg.N2*cfg.Hsq2*l/m
		cv := math.Sqrt(cfg.N1*cfg.N2)*cfg.RhoG*math.Sqrt(cfg.Hsq1*cfg.Hsq2)*l/m +
			cfg.NumOverlap*cfg.Rho/math.Sqrt(cfg.N1*cfg.N2)

		// 2x2 Cholesky of the z-score covariance.
		s1 := math.Sqrt(v1)
		c21 := cv / s1
		rem := v2 - c21*c21
		if rem <= 0 {
			return nil, fmt.Errorf("%w: z-score covariance not positive definite at SNP %d", jackknife.ErrInvalidParam, i)
		}
		s2 := math.Sqrt(rem)

		e1 := normal.Rand()
		e2 := normal.Rand()
		z1 := s1 * e1
		z2 := c21*e1 + s2*e2

		ds.Chisq1[i] = z1 * z1
		ds.Chisq2[i] = z2 * z2
		ds.Betahat1[i] = z1 / math.Sqrt(cfg.N1)
		ds.Betahat2[i] = z2 / math.Sqrt(cfg.N2)
		ds.N1[i] = cfg.N1
		ds.N2[i] = cfg.N2
		ds.NOverlap[i] = cfg.NumOverlap
	}

	log.LLvl1(time.Now().Format(time.StampMilli), "Simulated", cfg.NumSnps, "SNPs, seed", cfg.Seed)
	return ds, nil
}
