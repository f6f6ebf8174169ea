package metrics

import (
	"sort"

	"github.com/san-kum/dartsim/internal/board"
	"github.com/san-kum/dartsim/internal/sim"
)

type Metric interface {
	Name() string
	Observe(seg board.Segment, count int64)
	Value() float64
	Reset()
}

// Rate is the fraction of observed throws whose segment matches.
type Rate struct {
	name  string
	match func(board.Segment) bool
	hits  int64
	total int64
}

func NewRate(name string, match func(board.Segment) bool) *Rate {
	return &Rate{name: name, match: match}
}

func (r *Rate) Name() string { return r.name }

func (r *Rate) Observe(seg board.Segment, count int64) {
	r.total += count
	if r.match(seg) {
		r.hits += count
	}
}

func (r *Rate) Value() float64 {
	if r.total == 0 {
		return 0
	}
	return float64(r.hits) / float64(r.total)
}

func (r *Rate) Reset() {
	r.hits = 0
	r.total = 0
}

func ringIs(rings ...board.Ring) func(board.Segment) bool {
	return func(s board.Segment) bool {
		for _, r := range rings {
			if s.Ring == r {
				return true
			}
		}
		return false
	}
}

func NewMissRate() *Rate   { return NewRate("miss_rate", ringIs(board.Miss)) }
func NewBullRate() *Rate   { return NewRate("bull_rate", ringIs(board.InnerBull, board.OuterBull)) }
func NewTrebleRate() *Rate { return NewRate("treble_rate", ringIs(board.Triple)) }
func NewDoubleRate() *Rate { return NewRate("double_rate", ringIs(board.Double)) }

// NewOnTarget counts throws that landed in the segment under the aim point.
// Aiming at either bull counts both bull rings as on target.
func NewOnTarget(aim board.Point) *Rate {
	target := board.SegmentAt(aim)
	return NewRate("on_target_rate", func(s board.Segment) bool {
		switch target.Ring {
		case board.InnerBull, board.OuterBull:
			return s.Ring == board.InnerBull || s.Ring == board.OuterBull
		default:
			return s == target
		}
	})
}

// Default is the metric set reported for every simulated configuration.
func Default(aim board.Point) []Metric {
	return []Metric{
		NewMissRate(),
		NewBullRate(),
		NewTrebleRate(),
		NewDoubleRate(),
		NewOnTarget(aim),
	}
}

// Evaluate resets each metric, feeds it the result's histogram and
// collects the values by name.
func Evaluate(r *sim.Result, ms ...Metric) map[string]float64 {
	segs := make([]board.Segment, 0, len(r.Counts))
	for seg := range r.Counts {
		segs = append(segs, seg)
	}
	sort.Slice(segs, func(i, j int) bool {
		if segs[i].Ring != segs[j].Ring {
			return segs[i].Ring < segs[j].Ring
		}
		return segs[i].Sector < segs[j].Sector
	})

	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for _, seg := range segs {
			m.Observe(seg, r.Counts[seg])
		}
		out[m.Name()] = m.Value()
	}
	return out
}
