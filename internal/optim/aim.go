package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/dartsim/internal/analysis"
	"github.com/san-kum/dartsim/internal/board"
	"github.com/san-kum/dartsim/internal/sim"
)

// Scorer estimates the mean score of throws at aim.
type Scorer func(ctx context.Context, aim board.Point, dispersion float64) (float64, error)

// AnalyticScorer integrates the score numerically.
func AnalyticScorer(opts analysis.Options) Scorer {
	return func(_ context.Context, aim board.Point, dispersion float64) (float64, error) {
		return analysis.ExpectedScore(aim, dispersion, opts), nil
	}
}

// SimulatedScorer estimates the score with n simulated throws per aim.
func SimulatedScorer(s *sim.Simulator, n int) Scorer {
	return func(ctx context.Context, aim board.Point, dispersion float64) (float64, error) {
		r, err := s.Simulate(ctx, n, dispersion, aim)
		if err != nil {
			return 0, err
		}
		return r.AverageScore, nil
	}
}

type AimSearch struct {
	Dispersion float64
	// Spacing of the cartesian grid in mm.
	Spacing float64
	// Radius limits candidates to a disc around the centre.
	Radius float64
}

// BestAim grid-searches the board for the aim point with the highest
// expected score at the given dispersion.
func BestAim(ctx context.Context, search AimSearch, score Scorer) (board.AimPoint, float64, error) {
	if search.Dispersion < 0 {
		return board.AimPoint{}, 0, errors.New("optim: dispersion must not be negative")
	}
	if search.Spacing <= 0 {
		return board.AimPoint{}, 0, errors.New("optim: spacing must be positive")
	}
	radius := search.Radius
	if radius <= 0 {
		radius = board.DoubleOuterRadius
	}

	// centre the grid on the bullseye so both axes pass through 0
	half := math.Floor(radius/search.Spacing) * search.Spacing
	axis := Linspace(-half, half, search.Spacing)

	gs := NewGridSearch([]string{"x", "y"}, [][]float64{axis, axis})
	params, best, err := gs.Search(ctx, func(ctx context.Context, p map[string]float64) (float64, error) {
		aim := board.Point{X: p["x"], Y: p["y"]}
		if aim.Radius() > radius {
			return math.Inf(-1), nil
		}
		return score(ctx, aim, search.Dispersion)
	})
	if err != nil {
		return board.AimPoint{}, 0, err
	}
	if params == nil {
		return board.AimPoint{}, 0, errors.New("optim: no candidate aim points")
	}

	p := board.Point{X: params["x"], Y: params["y"]}
	return board.AimPoint{Name: fmt.Sprintf("best_%g", search.Dispersion), Point: p}, best, nil
}
