package ldscore

import (
	"runtime"
	"time"

	"go.dedis.ch/onet/v3/log"
	"gonum.org/v1/gonum/mat"
)

// EstimateH2 runs the heritability pipeline under a Config: regression
// with cfg.BlockSize, observed-scale summary, and liability conversion
// when the first trait's prevalences are configured.
func EstimateH2(cfg *Config, chisq []float64, ldScores mat.Matrix, n []float64, m float64) (*HsqSummary, error) {
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	if cfg.LocalNumThreads > 0 {
		runtime.GOMAXPROCS(cfg.LocalNumThreads)
	}
	start := time.Now()

	res, err := H2G(chisq, ldScores, n, m, cfg.BlockSize)
	if err != nil {
		return nil, err
	}
	sum, err := SummarizeHsq(res, chisq, n, m)
	if err != nil {
		return nil, err
	}
	if len(cfg.PopPrev) > 0 {
		factor, err := ObsToLiab(1, cfg.SampPrev[0], cfg.PopPrev[0])
		if err != nil {
			return nil, err
		}
		sum.LiabilityScale = true
		sum.HsqLiab = sum.Hsq * factor
		sum.HsqLiabSE = sum.HsqSE * factor
	}
	log.LLvl1(time.Now().Format(time.StampMilli), "EstimateH2 time:", time.Since(start).String())
	return sum, nil
}

// EstimateRg runs the correlation pipeline under a Config, expanding the
// configured overlap count to a per-SNP array. The correlation itself is
// scale-free, so prevalences do not enter.
func EstimateRg(cfg *Config, betahat1, betahat2 []float64, ldScores mat.Matrix, n1, n2 []float64, m float64) (*RgSummary, error) {
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	if cfg.LocalNumThreads > 0 {
		runtime.GOMAXPROCS(cfg.LocalNumThreads)
	}
	start := time.Now()

	var nOverlap []float64
	if cfg.NumOverlap > 0 {
		nOverlap = make([]float64, len(betahat1))
		for i := range nOverlap {
			nOverlap[i] = cfg.NumOverlap
		}
	}
	g, err := Gencor(betahat1, betahat2, ldScores, n1, n2, m, nOverlap, cfg.PhenoCorr, cfg.BlockSize)
	if err != nil {
		return nil, err
	}
	sum, err := SummarizeRg(g, m, n1, n2)
	if err != nil {
		return nil, err
	}
	log.LLvl1(time.Now().Format(time.StampMilli), "EstimateRg time:", time.Since(start).String())
	return sum, nil
}
