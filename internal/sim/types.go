package sim

import (
	"fmt"
	"runtime"
	"sort"

	"github.com/san-kum/dartsim/internal/board"
)

// DefaultChunkSize is the number of throws drawn from one random stream.
const DefaultChunkSize = 1 << 14

type Config struct {
	// Seed of zero draws a fresh seed on every call.
	Seed int64 `yaml:"seed"`
	// Workers caps concurrent chunks; zero means one per CPU.
	Workers   int `yaml:"workers"`
	ChunkSize int `yaml:"chunk_size"`
}

func DefaultConfig() Config {
	return Config{
		Workers:   runtime.NumCPU(),
		ChunkSize: DefaultChunkSize,
	}
}

// Result summarises one simulation run.
type Result struct {
	// Seed the throws were drawn from.
	Seed         int64
	NSims        int
	Dispersion   float64
	Aim          board.Point
	AverageScore float64
	StdDev       float64
	Counts       map[board.Segment]int64
}

func (r *Result) String() string {
	return fmt.Sprintf("SimulationResult(average_score=%g, std_dev=%g)", r.AverageScore, r.StdDev)
}

// Frequency is the fraction of throws that landed in seg.
func (r *Result) Frequency(seg board.Segment) float64 {
	if r.NSims == 0 {
		return 0
	}
	return float64(r.Counts[seg]) / float64(r.NSims)
}

// SegmentCount pairs a segment with its hit count.
type SegmentCount struct {
	Segment board.Segment
	Count   int64
}

// TopSegments returns the n most hit segments, ties broken by score value.
func (r *Result) TopSegments(n int) []SegmentCount {
	out := make([]SegmentCount, 0, len(r.Counts))
	for seg, c := range r.Counts {
		out = append(out, SegmentCount{Segment: seg, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Segment.Value() > out[j].Segment.Value()
	})
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
