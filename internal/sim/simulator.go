package sim

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/san-kum/dartsim/internal/board"
)

// Simulator throws batches of darts. It holds no mutable state, so one
// instance may serve concurrent calls.
type Simulator struct {
	seed      int64
	workers   int
	chunkSize int
}

func New(cfg Config) *Simulator {
	def := DefaultConfig()
	s := &Simulator{
		seed:      cfg.Seed,
		workers:   cfg.Workers,
		chunkSize: cfg.ChunkSize,
	}
	if s.workers <= 0 {
		s.workers = def.Workers
	}
	if s.chunkSize <= 0 {
		s.chunkSize = def.ChunkSize
	}
	return s
}

// Seed is the configured seed, or zero when every call draws its own.
func (s *Simulator) Seed() int64 { return s.seed }

// WithSeed returns a copy of s pinned to seed. Passing a Result.Seed
// replays that run exactly.
func (s *Simulator) WithSeed(seed int64) *Simulator {
	c := *s
	c.seed = seed
	return &c
}

func (s *Simulator) callSeed() int64 {
	if s.seed != 0 {
		return s.seed
	}
	for {
		if v := rand.Int64(); v != 0 {
			return v
		}
	}
}

// Simulate throws nSims darts at aim with a Gaussian error of standard
// deviation dispersion (mm) on each axis and summarises the scores.
// With a fixed seed the result depends only on the arguments; an unseeded
// simulator draws a fresh seed per call and reports it in Result.Seed.
func (s *Simulator) Simulate(ctx context.Context, nSims int, dispersion float64, aim board.Point) (*Result, error) {
	if err := validate(nSims, dispersion, aim); err != nil {
		return nil, err
	}
	seed := s.callSeed()

	var t *tally
	if dispersion == 0 {
		t = &tally{}
		t.addN(board.SegmentAt(aim), int64(nSims))
	} else {
		var err error
		t, err = runChunks(ctx, s.workers, planChunks(nSims, s.chunkSize), func(c chunk) *tally {
			return throwChunk(seed, c, dispersion, aim)
		})
		if err != nil {
			return nil, err
		}
	}

	return &Result{
		Seed:         seed,
		NSims:        nSims,
		Dispersion:   dispersion,
		Aim:          aim,
		AverageScore: t.mean(),
		StdDev:       t.stdDev(),
		Counts:       t.segments(),
	}, nil
}

// Sample returns the landing points of the first n throws Simulate would
// make with the same arguments. Unseeded, each call draws its own stream.
func (s *Simulator) Sample(n int, dispersion float64, aim board.Point) ([]board.Point, error) {
	if err := validate(n, dispersion, aim); err != nil {
		return nil, err
	}
	seed := s.callSeed()
	pts := make([]board.Point, 0, n)
	var rng *rand.Rand
	for i := range n {
		if i%s.chunkSize == 0 {
			rng = streamRand(seed, uint64(i/s.chunkSize))
		}
		pts = append(pts, land(rng, dispersion, aim))
	}
	return pts, nil
}

// Simulate runs a one-off simulation with a freshly drawn seed.
func Simulate(nSims int, dispersion float64, aim board.Point) (*Result, error) {
	return New(Config{}).Simulate(context.Background(), nSims, dispersion, aim)
}

func validate(nSims int, dispersion float64, aim board.Point) error {
	if nSims <= 0 {
		return &InputError{Field: "n_sims", Value: nSims, Reason: "must be positive"}
	}
	if math.IsNaN(dispersion) || math.IsInf(dispersion, 0) {
		return &InputError{Field: "dispersion", Value: dispersion, Reason: "must be finite"}
	}
	if dispersion < 0 {
		return &InputError{Field: "dispersion", Value: dispersion, Reason: "must not be negative"}
	}
	if !aim.IsFinite() {
		return &InputError{Field: "aim point", Value: aim, Reason: "coordinates must be finite"}
	}
	return nil
}
