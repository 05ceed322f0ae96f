package render

import (
	"fmt"
	"image/color"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/mrhapile/fuzzy-heater/pkg/fuzzy"
	"github.com/mrhapile/fuzzy-heater/pkg/types"
)

const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 4 * vg.Inch
)

// PlotVariable writes the term curves of v to path. When marker is not nil a
// dashed vertical line is drawn at that input value.
func PlotVariable(path string, v *fuzzy.Variable, marker *float64) error {
	p := newPlot(v.Name())
	curves := v.Curves()
	for i, t := range v.Terms() {
		line, err := plotter.NewLine(toXYs(curves[t.Name]))
		if err != nil {
			return fmt.Errorf("plot term %s: %w", t.Name, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(t.Name, line)
	}
	if marker != nil {
		if err := addMarker(p, *marker, "input"); err != nil {
			return err
		}
	}
	return save(p, path)
}

// PlotResult writes the consequent terms and the aggregated curve of res to path,
// with the crisp output marked when the evaluation succeeded.
func PlotResult(path string, out *fuzzy.Variable, res types.InferenceResult) error {
	p := newPlot(out.Name())
	curves := out.Curves()
	for i, t := range out.Terms() {
		line, err := plotter.NewLine(toXYs(curves[t.Name]))
		if err != nil {
			return fmt.Errorf("plot term %s: %w", t.Name, err)
		}
		line.Color = plotutil.Color(i)
		line.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
		p.Add(line)
		p.Legend.Add(t.Name, line)
	}

	agg, err := plotter.NewLine(toXYs(res.Aggregated))
	if err != nil {
		return fmt.Errorf("plot aggregated curve: %w", err)
	}
	agg.Color = color.RGBA{R: 30, G: 90, B: 200, A: 255}
	agg.FillColor = color.RGBA{R: 30, G: 90, B: 200, A: 90}
	agg.Width = vg.Points(2)
	p.Add(agg)
	p.Legend.Add("aggregated", agg)

	if res.State == types.StateDone {
		if err := addMarker(p, res.Output, fmt.Sprintf("%s %.2f", res.Method, res.Output)); err != nil {
			return err
		}
	}
	return save(p, path)
}

// PlotAll writes one PNG per antecedent plus one for the result into dir and
// returns the written paths.
func PlotAll(dir string, rb *fuzzy.RuleBase, res types.InferenceResult) ([]string, error) {
	var paths []string
	for _, v := range rb.Antecedents() {
		path := filepath.Join(dir, v.Name()+".png")
		var marker *float64
		if x, ok := res.Inputs.Value(v.Name()); ok {
			marker = &x
		}
		if err := PlotVariable(path, v, marker); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	path := filepath.Join(dir, rb.Consequent().Name()+".png")
	if err := PlotResult(path, rb.Consequent(), res); err != nil {
		return paths, err
	}
	return append(paths, path), nil
}

func newPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = title
	p.Y.Label.Text = "membership"
	p.Y.Min = 0
	p.Y.Max = 1.05
	p.Legend.Top = true
	return p
}

func addMarker(p *plot.Plot, x float64, label string) error {
	line, err := plotter.NewLine(plotter.XYs{{X: x, Y: 0}, {X: x, Y: 1}})
	if err != nil {
		return fmt.Errorf("plot marker: %w", err)
	}
	line.Color = color.Black
	line.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
	p.Add(line)
	p.Legend.Add(label, line)
	return nil
}

func save(p *plot.Plot, path string) error {
	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return fmt.Errorf("save plot %s: %w", path, err)
	}
	return nil
}

func toXYs(c types.Curve) plotter.XYs {
	xys := make(plotter.XYs, len(c))
	for i, pt := range c {
		xys[i].X = pt.X
		xys[i].Y = pt.Degree
	}
	return xys
}
