// Package report turns pipeline results into YAML or JSON documents for an
// external plotting or reporting tool.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/alexshd/metallab"
	"github.com/alexshd/metallab/internal/dataset"
)

// Point is an equilibrium point; PctO is nil for undefined points.
type Point struct {
	PctAl float64  `json:"pctAl" yaml:"pctAl"`
	PctO  *float64 `json:"pctO" yaml:"pctO"`
}

type Curve struct {
	Order     int     `json:"order" yaml:"order"`
	Label     string  `json:"label" yaml:"label"`
	Undefined int     `json:"undefined" yaml:"undefined"`
	Points    []Point `json:"points" yaml:"points"`
}

type DeoxReport struct {
	ID            string                `json:"id" yaml:"id"`
	CreatedAt     time.Time             `json:"createdAt" yaml:"createdAt"`
	Temperature   float64               `json:"temperature" yaml:"temperature"`
	ActivityAl2O3 float64               `json:"activityAl2O3" yaml:"activityAl2O3"`
	Bound         float64               `json:"bound" yaml:"bound"`
	Curves        []Curve               `json:"curves" yaml:"curves"`
	Observations  []dataset.Observation `json:"observations,omitempty" yaml:"observations,omitempty"`
}

type Parameters struct {
	Location float64 `json:"lambda" yaml:"lambda"`
	Scale    float64 `json:"delta" yaml:"delta"`
}

type PlotPoint struct {
	Value       float64 `json:"x" yaml:"x"`
	Probability float64 `json:"p" yaml:"p"`
	Reduced     float64 `json:"y" yaml:"y"`
	Fitted      float64 `json:"xFit" yaml:"xFit"`
	Lower       float64 `json:"lower" yaml:"lower"`
	Upper       float64 `json:"upper" yaml:"upper"`
}

type Prediction struct {
	ReturnPeriod  float64 `json:"returnPeriod" yaml:"returnPeriod"`
	Reduced       float64 `json:"y" yaml:"y"`
	Value         float64 `json:"x" yaml:"x"`
	StandardError float64 `json:"standardError" yaml:"standardError"`
	Lower         float64 `json:"lower" yaml:"lower"`
	Upper         float64 `json:"upper" yaml:"upper"`
}

type GumbelReport struct {
	ID            string      `json:"id" yaml:"id"`
	CreatedAt     time.Time   `json:"createdAt" yaml:"createdAt"`
	Method        string      `json:"method" yaml:"method"`
	N             int         `json:"n" yaml:"n"`
	Parameters    Parameters  `json:"parameters" yaml:"parameters"`
	LogLikelihood float64     `json:"logLikelihood" yaml:"logLikelihood"`
	Points        []PlotPoint `json:"points" yaml:"points"`
	Prediction    *Prediction `json:"prediction,omitempty" yaml:"prediction,omitempty"`
}

// NewDeoxReport converts sweep curves. Undefined points keep their [%Al] with
// a null [%O] so the grid stays aligned across curves.
func NewDeoxReport(p metallab.SweepParams, curves []metallab.Curve, obs []dataset.Observation) DeoxReport {
	r := DeoxReport{
		ID:            uuid.New().String(),
		CreatedAt:     time.Now().UTC(),
		Temperature:   p.Temperature,
		ActivityAl2O3: p.ActivityAl2O3,
		Bound:         p.Bound,
		Observations:  obs,
	}

	for _, c := range curves {
		rc := Curve{Order: int(c.Order), Label: c.Label, Undefined: c.Undefined()}
		for _, pt := range c.Points {
			out := Point{PctAl: pt.PctAl}
			if pt.Defined && !math.IsNaN(pt.PctO) {
				o := pt.PctO
				out.PctO = &o
			}
			rc.Points = append(rc.Points, out)
		}
		r.Curves = append(r.Curves, rc)
	}

	return r
}

// NewGumbelReport converts a fit and an optional return-level prediction.
func NewGumbelReport(fit metallab.GumbelFit, pred *metallab.ExtremePrediction) GumbelReport {
	r := GumbelReport{
		ID:            uuid.New().String(),
		CreatedAt:     time.Now().UTC(),
		Method:        fit.Method,
		N:             fit.N,
		Parameters:    Parameters{Location: fit.Parameters.Location, Scale: fit.Parameters.Scale},
		LogLikelihood: fit.LogLikelihood,
	}

	for _, p := range fit.Points {
		r.Points = append(r.Points, PlotPoint(p))
	}

	if pred != nil {
		rp := Prediction(*pred)
		r.Prediction = &rp
	}

	return r
}

// Encode writes v as "yaml" or "json".
func Encode(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown report format %q", format)
}

// Extension returns the file extension for a format.
func Extension(format string) string {
	if strings.EqualFold(format, "json") {
		return ".json"
	}
	return ".yaml"
}
