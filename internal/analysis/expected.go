package analysis

import (
	"math"

	"github.com/san-kum/dartsim/internal/board"
)

const (
	defaultSpan     = 6.0
	defaultSteps    = 25
	defaultMaxStep  = 0.5
	defaultMinSteps = 200
)

type Options struct {
	// Span is the half width of the grid in standard deviations.
	Span float64
	// Step is the grid spacing in mm. Zero picks one from the dispersion.
	Step float64
}

func (o Options) grid(dispersion float64) (span, step float64) {
	span = o.Span
	if span <= 0 {
		span = defaultSpan
	}
	step = o.Step
	if step <= 0 {
		step = math.Min(dispersion/defaultSteps, defaultMaxStep)
		if n := 2 * span * dispersion / step; n < defaultMinSteps {
			step = 2 * span * dispersion / defaultMinSteps
		}
	}
	return span, step
}

// integrate visits every grid cell around aim with its normalised weight.
func integrate(aim board.Point, dispersion float64, opts Options, visit func(seg board.Segment, w float64)) {
	if dispersion <= 0 {
		visit(board.SegmentAt(aim), 1)
		return
	}

	span, step := opts.grid(dispersion)
	half := int(math.Ceil(span * dispersion / step))

	offsets := make([]float64, 2*half)
	weights := make([]float64, 2*half)
	total := 0.0
	for i := range offsets {
		offsets[i] = (float64(i-half) + 0.5) * step
		u := offsets[i] / dispersion
		weights[i] = math.Exp(-u * u / 2)
		total += weights[i]
	}
	norm := total * total

	for i, dx := range offsets {
		for j, dy := range offsets {
			w := weights[i] * weights[j] / norm
			visit(board.SegmentAt(board.Point{X: aim.X + dx, Y: aim.Y + dy}), w)
		}
	}
}

// ExpectedScore is the mean score of a throw at aim with the given
// dispersion (mm). A dispersion of zero returns ScoreAt(aim).
func ExpectedScore(aim board.Point, dispersion float64, opts Options) float64 {
	mean, _ := ScoreMoments(aim, dispersion, opts)
	return mean
}

// ScoreMoments returns the mean and standard deviation of the score.
func ScoreMoments(aim board.Point, dispersion float64, opts Options) (mean, stdDev float64) {
	var m1, m2 float64
	integrate(aim, dispersion, opts, func(seg board.Segment, w float64) {
		v := float64(seg.Value())
		m1 += w * v
		m2 += w * v * v
	})
	variance := m2 - m1*m1
	if variance < 0 {
		variance = 0
	}
	return m1, math.Sqrt(variance)
}

func RingProbabilities(aim board.Point, dispersion float64, opts Options) map[board.Ring]float64 {
	out := make(map[board.Ring]float64)
	integrate(aim, dispersion, opts, func(seg board.Segment, w float64) {
		out[seg.Ring] += w
	})
	return out
}
