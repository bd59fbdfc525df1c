// Package dataset reads the tabular inputs of the two pipelines: literature
// Al-O equilibrium measurements and ASTM E2283 inclusion-length tables.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Observation is one experimental Al-O equilibrium measurement.
type Observation struct {
	PctAl  float64 `json:"pctAl" yaml:"pctAl"`
	PctO   float64 `json:"pctO" yaml:"pctO"`
	Source string  `json:"source" yaml:"source"`
}

// Measurement is the longest feature length found on one specimen.
type Measurement struct {
	Run      string  `json:"run" yaml:"run"`
	Specimen int     `json:"specimen" yaml:"specimen"`
	Y        float64 `json:"y" yaml:"y"`
}

var errEmpty = errors.New("no data rows")

// roundTo rounds half away from zero to the given number of decimals.
func roundTo(x float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(x*scale) / scale
}

// newReader detects a tab or comma delimiter from the header line.
func newReader(r io.Reader) (*csv.Reader, []string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	text := string(data)

	header := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		header = text[:i]
	}

	cr := csv.NewReader(strings.NewReader(text))
	if strings.Contains(header, "\t") {
		cr.Comma = '\t'
	}
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	cols, err := cr.Read()
	if err == io.EOF {
		return nil, nil, errEmpty
	}
	if err != nil {
		return nil, nil, fmt.Errorf("header: %w", err)
	}
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}
	return cr, cols, nil
}

// columns maps each required name to its header position.
func columns(header []string, names ...string) (map[string]int, error) {
	idx := make(map[string]int, len(names))
	for i, h := range header {
		for _, n := range names {
			if strings.EqualFold(h, n) {
				idx[n] = i
			}
		}
	}
	for _, n := range names {
		if _, ok := idx[n]; !ok {
			return nil, fmt.Errorf("missing column %q in header %v", n, header)
		}
	}
	return idx, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// ReadObservations parses a table with columns pctAl, pctO and Source.
// Contents are rounded to 4 decimals.
func ReadObservations(r io.Reader) ([]Observation, error) {
	cr, header, err := newReader(r)
	if err != nil {
		return nil, err
	}
	idx, err := columns(header, "pctAl", "pctO", "Source")
	if err != nil {
		return nil, err
	}

	var out []Observation
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		al, err := parseFloat(rec[idx["pctAl"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: pctAl: %w", line, err)
		}
		o, err := parseFloat(rec[idx["pctO"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: pctO: %w", line, err)
		}

		out = append(out, Observation{
			PctAl:  roundTo(al, 4),
			PctO:   roundTo(o, 4),
			Source: strings.TrimSpace(rec[idx["Source"]]),
		})
	}

	if len(out) == 0 {
		return nil, errEmpty
	}
	return out, nil
}

// LoadObservations reads an observation table from disk.
func LoadObservations(path string) ([]Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open observations '%s': %w", path, err)
	}
	defer f.Close()

	obs, err := ReadObservations(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read observations '%s': %w", path, err)
	}
	return obs, nil
}

// Sources lists the distinct sources in order of first appearance.
func Sources(obs []Observation) []string {
	seen := make(map[string]bool)
	var out []string
	for _, o := range obs {
		if !seen[o.Source] {
			seen[o.Source] = true
			out = append(out, o.Source)
		}
	}
	return out
}

// BySource returns the observations reported by one source.
func BySource(obs []Observation, source string) []Observation {
	var out []Observation
	for _, o := range obs {
		if o.Source == source {
			out = append(out, o)
		}
	}
	return out
}

// ReadMeasurements parses a table with columns run, specimen and Y.
func ReadMeasurements(r io.Reader) ([]Measurement, error) {
	cr, header, err := newReader(r)
	if err != nil {
		return nil, err
	}
	idx, err := columns(header, "run", "specimen", "Y")
	if err != nil {
		return nil, err
	}

	var out []Measurement
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		spec, err := strconv.Atoi(strings.TrimSpace(rec[idx["specimen"]]))
		if err != nil {
			return nil, fmt.Errorf("line %d: specimen: %w", line, err)
		}
		y, err := parseFloat(rec[idx["Y"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: Y: %w", line, err)
		}

		out = append(out, Measurement{
			Run:      strings.TrimSpace(rec[idx["run"]]),
			Specimen: spec,
			Y:        y,
		})
	}

	if len(out) == 0 {
		return nil, errEmpty
	}
	return out, nil
}

// LoadMeasurements reads a measurement table from disk.
func LoadMeasurements(path string) ([]Measurement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open measurements '%s': %w", path, err)
	}
	defer f.Close()

	ms, err := ReadMeasurements(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read measurements '%s': %w", path, err)
	}
	return ms, nil
}

// Values extracts Y in table order.
func Values(ms []Measurement) []float64 {
	out := make([]float64, len(ms))
	for i, m := range ms {
		out[i] = m.Y
	}
	return out
}

// E2283Example returns the worked example of ASTM E2283: four runs (A–D) of
// six specimens each.
func E2283Example() []Measurement {
	y := []float64{
		40.29, 37.24, 29.03, 52.46, 62.21, 33.98,
		30.73, 37.43, 35.00, 44.82, 66.13, 48.55,
		73.48, 44.79, 70.87, 59.83, 22.18, 64.32,
		78.91, 46.53, 94.28, 49.15, 82.39, 37.43,
	}
	runs := []string{"A", "B", "C", "D"}

	out := make([]Measurement, 0, len(y))
	for i, v := range y {
		out = append(out, Measurement{Run: runs[i/6], Specimen: i%6 + 1, Y: v})
	}
	return out
}
