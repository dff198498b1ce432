package ldscore

import (
	"fmt"

	"github.com/hhcho/ldsc-go/jackknife"
)

// Config carries the analysis parameters decoded from TOML. SampPrev and
// PopPrev are per-trait prevalences for binary phenotypes; leaving them
// empty keeps estimates on the observed scale. NumOverlap and PhenoCorr
// describe samples shared between the two studies of a correlation run.
type Config struct {
	BlockSize int `toml:"block_size"`

	SampPrev []float64 `toml:"samp_prev"`
	PopPrev  []float64 `toml:"pop_prev"`

	PhenoCorr  float64 `toml:"pheno_corr"`
	NumOverlap float64 `toml:"num_overlap"`

	LocalNumThreads int    `toml:"local_num_threads"`
	MemoryLimit     uint64 `toml:"memory_limit"`

	Debug bool `toml:"debug"`
}

// DefaultConfig returns the analysis defaults: 1000-SNP jackknife blocks,
// quantitative traits, disjoint studies.
func DefaultConfig() *Config {
	return &Config{
		BlockSize: DefaultBlockSize,
	}
}

// Check validates the analysis parameters.
func (c *Config) Check() error {
	if c.BlockSize < 1 {
		return fmt.Errorf("%w: block_size %d", jackknife.ErrInvalidParam, c.BlockSize)
	}
	if len(c.SampPrev) != len(c.PopPrev) {
		return fmt.Errorf("%w: %d sample prevalences, %d population prevalences",
			jackknife.ErrShapeMismatch, len(c.SampPrev), len(c.PopPrev))
	}
	for i := range c.SampPrev {
		if c.SampPrev[i] <= 0 || c.SampPrev[i] >= 1 {
			return fmt.Errorf("%w: samp_prev %v outside (0,1)", jackknife.ErrInvalidParam, c.SampPrev[i])
		}
		if c.PopPrev[i] <= 0 || c.PopPrev[i] >= 1 {
			return fmt.Errorf("%w: pop_prev %v outside (0,1)", jackknife.ErrInvalidParam, c.PopPrev[i])
		}
	}
	if c.PhenoCorr < -1 || c.PhenoCorr > 1 {
		return fmt.Errorf("%w: pheno_corr %v outside [-1,1]", jackknife.ErrInvalidParam, c.PhenoCorr)
	}
	if c.NumOverlap < 0 {
		return fmt.Errorf("%w: num_overlap %v", jackknife.ErrInvalidParam, c.NumOverlap)
	}
	return nil
}
