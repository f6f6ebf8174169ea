package sim

import (
	"math"

	"github.com/san-kum/dartsim/internal/board"
)

const numSlots = (int(board.Double) + 1) * (board.NumSectors + 1)

// tally accumulates scores for one chunk of throws. Counts are kept per
// segment so the variance can be taken about the exact mean.
type tally struct {
	n      int64
	sum    int64
	counts [numSlots]int64
}

func slot(seg board.Segment) int {
	return int(seg.Ring)*(board.NumSectors+1) + seg.Sector
}

func segmentOf(i int) board.Segment {
	return board.Segment{Ring: board.Ring(i / (board.NumSectors + 1)), Sector: i % (board.NumSectors + 1)}
}

func (t *tally) add(seg board.Segment) {
	t.addN(seg, 1)
}

func (t *tally) addN(seg board.Segment, n int64) {
	t.n += n
	t.sum += int64(seg.Value()) * n
	t.counts[slot(seg)] += n
}

func (t *tally) merge(o *tally) {
	t.n += o.n
	t.sum += o.sum
	for i, c := range o.counts {
		t.counts[i] += c
	}
}

func (t *tally) mean() float64 {
	if t.n == 0 {
		return 0
	}
	return float64(t.sum) / float64(t.n)
}

// stdDev is the sample standard deviation; a single throw has none.
func (t *tally) stdDev() float64 {
	if t.n < 2 {
		return 0
	}
	m := t.mean()
	ss := 0.0
	for i, c := range t.counts {
		if c == 0 {
			continue
		}
		d := float64(segmentOf(i).Value()) - m
		ss += float64(c) * d * d
	}
	return math.Sqrt(ss / float64(t.n-1))
}

func (t *tally) segments() map[board.Segment]int64 {
	out := make(map[board.Segment]int64)
	for i, c := range t.counts {
		if c > 0 {
			out[segmentOf(i)] = c
		}
	}
	return out
}
