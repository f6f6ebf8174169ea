package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/dartsim/internal/sweep"
)

// Series is one aim point's average score across the swept dispersions.
type Series struct {
	AimPoint    string
	Dispersions []float64
	Scores      []float64
}

// GroupRows splits sweep rows into per-aim series, keeping the order in
// which aim points first appear.
func GroupRows(rows []sweep.Row) []Series {
	idx := make(map[string]int)
	var out []Series
	for _, row := range rows {
		i, ok := idx[row.AimPoint]
		if !ok {
			i = len(out)
			idx[row.AimPoint] = i
			out = append(out, Series{AimPoint: row.AimPoint})
		}
		out[i].Dispersions = append(out[i].Dispersions, row.Dispersion)
		out[i].Scores = append(out[i].Scores, row.AverageScore)
	}
	return out
}

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Red, asciigraph.Green, asciigraph.Yellow, asciigraph.Blue,
	asciigraph.Magenta, asciigraph.Cyan, asciigraph.White, asciigraph.Orange,
}

// PlotRows charts average score against dispersion, one line per aim point.
func PlotRows(rows []sweep.Row, width, height int) string {
	series := GroupRows(rows)
	if len(series) == 0 {
		return Subtle.Render("no results")
	}

	data := make([][]float64, len(series))
	colors := make([]asciigraph.AnsiColor, len(series))
	for i, s := range series {
		data[i] = s.Scores
		colors[i] = seriesColors[i%len(seriesColors)]
	}

	first := series[0].Dispersions
	caption := fmt.Sprintf("average score vs dispersion (%gmm to %gmm)", first[0], first[len(first)-1])

	graph := asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(1),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(caption),
	)

	var legend []string
	for i, s := range series {
		legend = append(legend, colors[i].String()+"━━"+asciigraph.Default.String()+" "+s.AimPoint)
	}
	return graph + "\n\n" + strings.Join(legend, "  ")
}

// BestAims returns, for each dispersion, the row with the highest average
// score. Dispersions keep their first-seen order.
func BestAims(rows []sweep.Row) []sweep.Row {
	idx := make(map[float64]int)
	var best []sweep.Row
	for _, row := range rows {
		i, ok := idx[row.Dispersion]
		if !ok {
			idx[row.Dispersion] = len(best)
			best = append(best, row)
			continue
		}
		if row.AverageScore > best[i].AverageScore {
			best[i] = row
		}
	}
	return best
}

// Table renders rows as aligned columns under a styled header.
func Table(rows []sweep.Row) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("%-12s %10s %14s %10s", "aim point", "dispersion", "average score", "std dev")))
	b.WriteString("\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "%-12s %10g %s %10.3f\n",
			row.AimPoint, row.Dispersion, MetricValue.Render(fmt.Sprintf("%14.3f", row.AverageScore)), row.StdDev)
	}
	return b.String()
}
