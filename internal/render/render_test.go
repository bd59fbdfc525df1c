package render

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexshd/metallab"
	"github.com/alexshd/metallab/internal/dataset"
)

func TestDefinedXYs_DropsUndefined(t *testing.T) {
	xys := definedXYs([]metallab.EquilibriumPoint{
		{PctAl: 1e-4, PctO: math.NaN()},
		{PctAl: 1e-3, PctO: 6e-3, Defined: true},
		{PctAl: 1e-2, PctO: 1.4e-3, Defined: true},
	})
	require.Len(t, xys, 2)
	assert.Equal(t, 1e-3, xys[0].X)
}

func TestDeoxPlot_WritesFile(t *testing.T) {
	grid, err := metallab.LogSpace(1e-4, 10, 40)
	require.NoError(t, err)

	curves, err := metallab.LiteratureAlO().ReferenceCurves(grid, metallab.SweepParams{
		Temperature:   1873,
		ActivityAl2O3: 1,
		Bound:         1e-2,
	})
	require.NoError(t, err)

	obs := []dataset.Observation{
		{PctAl: 0.01, PctO: 0.0015, Source: "A"},
		{PctAl: 0.1, PctO: 0.0004, Source: "B"},
	}

	path := filepath.Join(t.TempDir(), "deox.png")
	require.NoError(t, DeoxPlot(curves, obs, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestDeoxPlot_NothingToDraw(t *testing.T) {
	curves := []metallab.Curve{{Points: []metallab.EquilibriumPoint{{PctAl: 1, PctO: math.NaN()}}}}
	err := DeoxPlot(curves, nil, filepath.Join(t.TempDir(), "empty.png"))
	assert.Error(t, err)
}

func TestGumbelPlot_WritesFile(t *testing.T) {
	fit, err := metallab.FitGumbel(dataset.Values(dataset.E2283Example()), metallab.MethodMaxLikelihood)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "gumbel.svg")
	require.NoError(t, GumbelPlot(fit, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	assert.Error(t, GumbelPlot(metallab.GumbelFit{}, path))
}
