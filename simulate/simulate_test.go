package simulate

import (
	"testing"

	"github.com/hhcho/ldsc-go/jackknife"
	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/require"
)

func TestGenerateDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumSnps = 500
	cfg.Seed = 7

	a, err := Generate(cfg)
	require.NoError(t, err)
	b, err := Generate(cfg)
	require.NoError(t, err)
	require.Equal(t, a.LDScores, b.LDScores)
	require.Equal(t, a.Betahat1, b.Betahat1)
	require.Equal(t, a.Chisq2, b.Chisq2)

	cfg.Seed = 8
	c, err := Generate(cfg)
	require.NoError(t, err)
	require.NotEqual(t, a.LDScores, c.LDScores)
}

func TestGenerateMatchesMomentModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumSnps = 50000
	cfg.Seed = 3

	ds, err := Generate(cfg)
	require.NoError(t, err)
	require.Len(t, ds.LDScores, cfg.NumSnps)
	require.Equal(t, cfg.RefSnps, ds.M)

	meanLD, _ := stats.Mean(ds.LDScores)
	require.InDelta(t, cfg.MeanLD, meanLD, 1.0)

	// E[chisq] = intercept + N*h2*E[LD]/M under the moment model.
	meanChisq, _ := stats.Mean(ds.Chisq1)
	want := cfg.Intercept1 + cfg.N1*cfg.Hsq1*cfg.MeanLD/cfg.RefSnps
	require.InDelta(t, want, meanChisq, 0.15)

	// E[z1*z2] tracks the genetic covariance term.
	prod := make([]float64, cfg.NumSnps)
	for i := range prod {
		prod[i] = ds.Betahat1[i] * ds.Betahat2[i] * cfg.N1
	}
	meanProd, _ := stats.Mean(prod)
	wantCov := cfg.RhoG * cfg.Hsq1 * cfg.MeanLD / cfg.RefSnps * cfg.N1
	require.InDelta(t, wantCov, meanProd, 0.15)
}

func TestGenerateRefSnpsDefaultsToPanel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumSnps = 100
	cfg.RefSnps = 0
	cfg.N1, cfg.N2 = 50, 50

	ds, err := Generate(cfg)
	require.NoError(t, err)
	require.Equal(t, float64(cfg.NumSnps), ds.M)
}

func TestGenerateValidation(t *testing.T) {
	for _, tweak := range []func(*Config){
		func(c *Config) { c.NumSnps = 0 },
		func(c *Config) { c.RefSnps = -1 },
		func(c *Config) { c.N1 = 0 },
		func(c *Config) { c.Hsq1 = 1.5 },
		func(c *Config) { c.RhoG = -2 },
		func(c *Config) { c.MeanLD = 0 },
		func(c *Config) { c.Intercept2 = 0 },
	} {
		cfg := DefaultConfig()
		tweak(&cfg)
		_, err := Generate(cfg)
		require.ErrorIs(t, err, jackknife.ErrInvalidParam)
	}
}
