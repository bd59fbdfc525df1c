package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const alOTable = "pctAl\tpctO\tSource\n" +
	"0.001234\t0.006789\tRohde 1971\n" +
	"0.01\t0.0015\tRohde 1971\n" +
	"0.05\t0.00049999\tJanke 1978\n" +
	"# comment rows are skipped\n" +
	"0.2\t0.0003\tRohde 1971\n"

func TestReadObservations(t *testing.T) {
	obs, err := ReadObservations(strings.NewReader(alOTable))
	require.NoError(t, err)
	require.Len(t, obs, 4)

	assert.Equal(t, Observation{PctAl: 0.0012, PctO: 0.0068, Source: "Rohde 1971"}, obs[0])
	assert.Equal(t, 0.0005, obs[2].PctO, "rounded to 4 decimals")
	assert.Equal(t, []string{"Rohde 1971", "Janke 1978"}, Sources(obs))
	assert.Len(t, BySource(obs, "Rohde 1971"), 3)
	assert.Empty(t, BySource(obs, "unknown"))
}

func TestReadObservations_Errors(t *testing.T) {
	_, err := ReadObservations(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ReadObservations(strings.NewReader("pctAl\tSource\n0.1\tX\n"))
	assert.ErrorContains(t, err, `missing column "pctO"`)

	_, err = ReadObservations(strings.NewReader("pctAl\tpctO\tSource\n0.1\tabc\tX\n"))
	assert.ErrorContains(t, err, "line 2: pctO")

	_, err = ReadObservations(strings.NewReader("pctAl\tpctO\tSource\n"))
	assert.Error(t, err, "header only")
}

func TestReadMeasurements_CommaSeparated(t *testing.T) {
	in := "run,specimen,Y\nA,1,40.29\nA,2,37.24\nB,1,30.73\n"

	ms, err := ReadMeasurements(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, ms, 3)

	assert.Equal(t, Measurement{Run: "B", Specimen: 1, Y: 30.73}, ms[2])
	assert.Equal(t, []float64{40.29, 37.24, 30.73}, Values(ms))
}

func TestReadMeasurements_Errors(t *testing.T) {
	_, err := ReadMeasurements(strings.NewReader("run,specimen,Y\nA,one,40\n"))
	assert.ErrorContains(t, err, "specimen")

	_, err = ReadMeasurements(strings.NewReader("run,Y\nA,40\n"))
	assert.ErrorContains(t, err, `missing column "specimen"`)
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()

	obsPath := filepath.Join(dir, "AlO.tsv")
	require.NoError(t, os.WriteFile(obsPath, []byte(alOTable), 0o644))
	obs, err := LoadObservations(obsPath)
	require.NoError(t, err)
	assert.Len(t, obs, 4)

	msPath := filepath.Join(dir, "e2283.tsv")
	require.NoError(t, os.WriteFile(msPath, []byte("run\tspecimen\tY\nC\t3\t70.87\n"), 0o644))
	ms, err := LoadMeasurements(msPath)
	require.NoError(t, err)
	assert.Equal(t, []Measurement{{Run: "C", Specimen: 3, Y: 70.87}}, ms)

	_, err = LoadObservations(filepath.Join(dir, "missing.tsv"))
	assert.ErrorContains(t, err, "failed to open observations")
	_, err = LoadMeasurements(filepath.Join(dir, "missing.tsv"))
	assert.ErrorContains(t, err, "failed to open measurements")
}

func TestE2283Example(t *testing.T) {
	ms := E2283Example()
	require.Len(t, ms, 24)

	assert.Equal(t, Measurement{Run: "A", Specimen: 1, Y: 40.29}, ms[0])
	assert.Equal(t, Measurement{Run: "D", Specimen: 6, Y: 37.43}, ms[23])

	var sum float64
	for _, v := range Values(ms) {
		sum += v
	}
	assert.InDelta(t, 51.75125, sum/24, 1e-9)
}
