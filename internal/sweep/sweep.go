package sweep

import (
	"context"
	"errors"
	"fmt"

	"github.com/san-kum/dartsim/internal/board"
	"github.com/san-kum/dartsim/internal/config"
	"github.com/san-kum/dartsim/internal/metrics"
	"github.com/san-kum/dartsim/internal/sim"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_simulator.go github.com/san-kum/dartsim/internal/sweep Simulator
type Simulator interface {
	Simulate(ctx context.Context, nSims int, dispersion float64, aim board.Point) (*sim.Result, error)
}

// Row is one line of sweep output.
type Row struct {
	AimPoint     string             `json:"aim_point"`
	Dispersion   float64            `json:"dispersion"`
	AverageScore float64            `json:"average_score"`
	StdDev       float64            `json:"std_dev"`
	Metrics      map[string]float64 `json:"metrics,omitempty"`
}

// Sink receives rows as they are produced.
type Sink interface {
	Write(row Row) error
}

// Observer is told about progress; it cannot fail the sweep.
type Observer interface {
	OnStart(step Step)
	OnResult(step Step, row Row, result *sim.Result)
}

// Step identifies a configuration within a sweep.
type Step struct {
	Index      int
	Total      int
	Aim        board.AimPoint
	Dispersion float64
	NSims      int
}

type Plan struct {
	NSims       int
	Aims        []board.AimPoint
	Dispersions []float64
}

func (p Plan) Size() int { return len(p.Aims) * len(p.Dispersions) }

func PlanFromConfig(cfg *config.Config) (Plan, error) {
	if err := cfg.Validate(); err != nil {
		return Plan{}, err
	}
	aims, err := cfg.Aims()
	if err != nil {
		return Plan{}, err
	}
	return Plan{NSims: cfg.NSims, Aims: aims, Dispersions: cfg.Dispersions()}, nil
}

type Runner struct {
	sim       Simulator
	observers []Observer
}

func NewRunner(s Simulator) *Runner {
	return &Runner{sim: s}
}

func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run simulates every aim point at every dispersion, aim-major, and hands
// each row to the sinks in order. The first error stops the sweep; rows
// produced so far are returned with it.
func (r *Runner) Run(ctx context.Context, plan Plan, sinks ...Sink) ([]Row, error) {
	if r.sim == nil {
		return nil, errors.New("sweep: no simulator")
	}

	rows := make([]Row, 0, plan.Size())
	idx := 0
	for _, aim := range plan.Aims {
		for _, d := range plan.Dispersions {
			if err := ctx.Err(); err != nil {
				return rows, err
			}

			step := Step{Index: idx, Total: plan.Size(), Aim: aim, Dispersion: d, NSims: plan.NSims}
			idx++
			for _, o := range r.observers {
				o.OnStart(step)
			}

			result, err := r.sim.Simulate(ctx, plan.NSims, d, aim.Point)
			if err != nil {
				return rows, fmt.Errorf("sweep: %s at dispersion %g: %w", aim.Name, d, err)
			}

			row := Row{
				AimPoint:     aim.Name,
				Dispersion:   d,
				AverageScore: result.AverageScore,
				StdDev:       result.StdDev,
				Metrics:      metrics.Evaluate(result, metrics.Default(aim.Point)...),
			}
			for _, s := range sinks {
				if err := s.Write(row); err != nil {
					return rows, fmt.Errorf("sweep: write %s at dispersion %g: %w", aim.Name, d, err)
				}
			}
			rows = append(rows, row)

			for _, o := range r.observers {
				o.OnResult(step, row, result)
			}
		}
	}

	return rows, nil
}
