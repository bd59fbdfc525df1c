// Package render draws deoxidation curves and Gumbel probability plots with
// gonum/plot. The output format follows the file extension (png, svg, pdf).
package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/alexshd/metallab"
	"github.com/alexshd/metallab/internal/dataset"
)

const (
	width  = 6 * vg.Inch
	height = 4.5 * vg.Inch
)

var gridColor = color.Gray{Y: 211}

// dashes per order: dotted, dashed, solid
var orderDashes = map[metallab.Order][]vg.Length{
	metallab.OrderIdeal:  {vg.Points(1), vg.Points(3)},
	metallab.OrderFirst:  {vg.Points(5), vg.Points(3)},
	metallab.OrderSecond: nil,
}

func grid() *plotter.Grid {
	g := plotter.NewGrid()
	g.Vertical.Color = gridColor
	g.Vertical.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	g.Horizontal.Color = gridColor
	g.Horizontal.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	return g
}

// definedXYs keeps only points a log-log axis can show.
func definedXYs(points []metallab.EquilibriumPoint) plotter.XYs {
	xys := make(plotter.XYs, 0, len(points))
	for _, p := range points {
		if !p.Defined || math.IsNaN(p.PctO) || p.PctO <= 0 || p.PctAl <= 0 {
			continue
		}
		xys = append(xys, plotter.XY{X: p.PctAl, Y: p.PctO})
	}
	return xys
}

// DeoxPlot draws [%O] against [%Al] on log-log axes: one scatter per
// literature source and one black line per computed curve.
func DeoxPlot(curves []metallab.Curve, obs []dataset.Observation, path string) error {
	p := plot.New()
	p.Title.Text = "Al-O deoxidation equilibrium"
	p.X.Label.Text = "[%Al]"
	p.Y.Label.Text = "[%O]"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(grid())
	p.Legend.Top = true

	for i, src := range dataset.Sources(obs) {
		var xys plotter.XYs
		for _, o := range dataset.BySource(obs, src) {
			if o.PctAl > 0 && o.PctO > 0 {
				xys = append(xys, plotter.XY{X: o.PctAl, Y: o.PctO})
			}
		}
		if len(xys) == 0 {
			continue
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("scatter %q: %w", src, err)
		}
		s.GlyphStyle.Color = plotutil.Color(i)
		s.GlyphStyle.Shape = plotutil.Shape(i)
		p.Add(s)
		p.Legend.Add(src, s)
	}

	drawn := 0
	for _, c := range curves {
		xys := definedXYs(c.Points)
		if len(xys) < 2 {
			continue
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("line %q: %w", c.Label, err)
		}
		l.LineStyle.Color = color.Black
		l.LineStyle.Dashes = orderDashes[c.Order]
		p.Add(l)
		p.Legend.Add(c.Label, l)
		drawn++
	}

	if drawn == 0 && len(obs) == 0 {
		return fmt.Errorf("nothing to plot: every curve point is undefined")
	}

	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("failed to save plot '%s': %w", path, err)
	}
	return nil
}

// GumbelPlot draws the reduced variable against size: measurements as open
// circles, the fitted line and its dashed ±2SE band.
func GumbelPlot(fit metallab.GumbelFit, path string) error {
	if len(fit.Points) == 0 {
		return fmt.Errorf("nothing to plot: fit has no points")
	}

	n := len(fit.Points)
	data := make(plotter.XYs, n)
	fitted := make(plotter.XYs, n)
	lower := make(plotter.XYs, n)
	upper := make(plotter.XYs, n)
	for i, pt := range fit.Points {
		data[i] = plotter.XY{X: pt.Value, Y: pt.Reduced}
		fitted[i] = plotter.XY{X: pt.Fitted, Y: pt.Reduced}
		lower[i] = plotter.XY{X: pt.Lower, Y: pt.Reduced}
		upper[i] = plotter.XY{X: pt.Upper, Y: pt.Reduced}
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Gumbel plot (%s): λ=%.4f δ=%.4f",
		fit.Method, fit.Parameters.Location, fit.Parameters.Scale)
	p.X.Label.Text = "x (size, length, etc.)"
	p.Y.Label.Text = "Reduced variable"
	p.Add(grid())
	p.Legend.Top = true
	p.Legend.Left = true

	s, err := plotter.NewScatter(data)
	if err != nil {
		return fmt.Errorf("scatter: %w", err)
	}
	s.GlyphStyle.Color = color.Black
	s.GlyphStyle.Shape = plotutil.Shape(0)

	line, err := plotter.NewLine(fitted)
	if err != nil {
		return fmt.Errorf("fit line: %w", err)
	}
	line.LineStyle.Color = color.Black

	p.Add(s, line)
	p.Legend.Add("measurements", s)
	p.Legend.Add("EV distribution", line)

	for i, band := range []plotter.XYs{lower, upper} {
		l, err := plotter.NewLine(band)
		if err != nil {
			return fmt.Errorf("band: %w", err)
		}
		l.LineStyle.Color = color.Black
		l.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(l)
		if i == 0 {
			p.Legend.Add("95% CI", l)
		}
	}

	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("failed to save plot '%s': %w", path, err)
	}
	return nil
}
