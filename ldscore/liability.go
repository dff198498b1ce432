package ldscore

import (
	"fmt"

	"github.com/hhcho/ldsc-go/jackknife"
	"gonum.org/v1/gonum/stat/distuv"
)

// ObsToLiab converts an observed-scale heritability of a binary trait to
// the liability scale under the liability-threshold model. p is the
// sample (ascertained) prevalence and k the population prevalence; both
// must lie strictly inside (0,1).
func ObsToLiab(h2Obs, p, k float64) (float64, error) {
	if k <= 0 || k >= 1 {
		return 0, fmt.Errorf("%w: population prevalence %v outside (0,1)", jackknife.ErrInvalidParam, k)
	}
	if p <= 0 || p >= 1 {
		return 0, fmt.Errorf("%w: sample prevalence %v outside (0,1)", jackknife.ErrInvalidParam, p)
	}
	thresh := distuv.UnitNormal.Quantile(1 - k)
	z := distuv.UnitNormal.Prob(thresh)
	factor := k * k * (1 - k) * (1 - k) / (p * (1 - p) * z * z)
	return h2Obs * factor, nil
}
