package export

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/dartsim/internal/board"
	"github.com/san-kum/dartsim/internal/sweep"
	"github.com/san-kum/dartsim/internal/viz"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// WritePNG saves a line chart of average score against dispersion, one
// line per aim point. The image format follows the file extension.
func WritePNG(rows []sweep.Row, path string) error {
	series := viz.GroupRows(rows)
	if len(series) == 0 {
		return errors.New("export: no rows to plot")
	}

	p := plot.New()
	p.Title.Text = "Average Score by Dispersion"
	p.X.Label.Text = "dispersion (mm)"
	p.Y.Label.Text = "average score"
	p.Legend.Top = true

	lines := make([]any, 0, 2*len(series))
	for _, s := range series {
		xys := make(plotter.XYs, len(s.Scores))
		for i := range s.Scores {
			xys[i] = plotter.XY{X: s.Dispersions[i], Y: s.Scores[i]}
		}
		lines = append(lines, s.AimPoint, xys)
	}
	if err := plotutil.AddLinePoints(p, lines...); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

// WriteBoardPNG saves a scatter of landing points over the board wires.
func WriteBoardPNG(points []board.Point, path string) error {
	p := plot.New()
	p.Title.Text = "Landing Points"
	p.X.Label.Text = "x (mm)"
	p.Y.Label.Text = "y (mm)"

	for _, r := range []float64{
		board.InnerBullRadius, board.OuterBullRadius,
		board.TrebleInnerRadius, board.TrebleOuterRadius,
		board.DoubleInnerRadius, board.DoubleOuterRadius,
	} {
		l, err := plotter.NewLine(circle(r, 180))
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		p.Add(l)
	}

	if len(points) > 0 {
		xys := make(plotter.XYs, len(points))
		for i, pt := range points {
			xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		s.GlyphStyle.Radius = vg.Points(1)
		s.GlyphStyle.Color = plotutil.Color(0)
		p.Add(s)
	}

	lim := board.DoubleOuterRadius * 1.1
	p.X.Min, p.X.Max = -lim, lim
	p.Y.Min, p.Y.Max = -lim, lim

	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}

func circle(r float64, n int) plotter.XYs {
	xys := make(plotter.XYs, n+1)
	for i := range xys {
		a := 2 * math.Pi * float64(i) / float64(n)
		xys[i] = plotter.XY{X: r * math.Cos(a), Y: r * math.Sin(a)}
	}
	return xys
}
