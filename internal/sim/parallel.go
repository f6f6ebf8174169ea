package sim

import (
	"context"
	"math/rand/v2"

	"github.com/san-kum/dartsim/internal/board"
	"golang.org/x/sync/errgroup"
)

// chunk is a contiguous run of throws drawn from its own random stream.
type chunk struct {
	stream uint64
	n      int
}

func planChunks(n, size int) []chunk {
	if size < 1 {
		size = DefaultChunkSize
	}
	chunks := make([]chunk, 0, (n+size-1)/size)
	for start, i := 0, 0; start < n; start, i = start+size, i+1 {
		end := start + size
		if end > n {
			end = n
		}
		chunks = append(chunks, chunk{stream: uint64(i), n: end - start})
	}
	return chunks
}

// throwChunk lands c.n darts around aim. The PCG stream is keyed on
// (seed, chunk index), so every chunk sees an independent sequence
// regardless of which worker runs it.
func throwChunk(seed int64, c chunk, dispersion float64, aim board.Point) *tally {
	rng := streamRand(seed, c.stream)
	t := &tally{}
	for range c.n {
		t.add(board.SegmentAt(land(rng, dispersion, aim)))
	}
	return t
}

func streamRand(seed int64, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), stream))
}

func land(rng *rand.Rand, dispersion float64, aim board.Point) board.Point {
	dx := rng.NormFloat64() * dispersion
	dy := rng.NormFloat64() * dispersion
	return board.Point{X: aim.X + dx, Y: aim.Y + dy}
}

// runChunks fans chunks out over at most workers goroutines and merges the
// partial tallies in chunk order.
func runChunks(ctx context.Context, workers int, chunks []chunk, fn func(chunk) *tally) (*tally, error) {
	partials := make([]*tally, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, c := range chunks {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			partials[i] = fn(c)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := &tally{}
	for _, p := range partials {
		total.merge(p)
	}
	return total, nil
}
