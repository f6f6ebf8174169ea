package sim

import (
	"math"
	"testing"

	"github.com/san-kum/dartsim/internal/board"
)

func TestTallyStats(t *testing.T) {
	tests := []struct {
		name  string
		add   map[board.Segment]int64
		mean  float64
		stdev float64
	}{
		{"empty", nil, 0, 0},
		{"single throw", map[board.Segment]int64{{Ring: board.Triple, Sector: 20}: 1}, 60, 0},
		{"two throws", map[board.Segment]int64{{Ring: board.Triple, Sector: 20}: 1, {Ring: board.Miss}: 1}, 30, math.Sqrt(1800)},
		{"constant", map[board.Segment]int64{{Ring: board.OuterBull}: 1000}, 25, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tl tally
			for seg, n := range tt.add {
				tl.addN(seg, n)
			}
			if got := tl.mean(); math.Abs(got-tt.mean) > 1e-12 {
				t.Errorf("mean = %f, want %f", got, tt.mean)
			}
			if got := tl.stdDev(); math.Abs(got-tt.stdev) > 1e-9 {
				t.Errorf("stdDev = %f, want %f", got, tt.stdev)
			}
		})
	}
}

func TestTallyMerge(t *testing.T) {
	var a, b tally
	a.addN(board.Segment{Ring: board.Single, Sector: 5}, 3)
	b.addN(board.Segment{Ring: board.Double, Sector: 5}, 2)
	b.add(board.Segment{Ring: board.Single, Sector: 5})

	a.merge(&b)
	if a.n != 6 || a.sum != 3*5+2*10+5 {
		t.Errorf("merged n=%d sum=%d", a.n, a.sum)
	}

	segs := a.segments()
	if segs[board.Segment{Ring: board.Single, Sector: 5}] != 4 {
		t.Errorf("expected 4 single 5s, got %v", segs)
	}
}

func TestSlotRoundTrip(t *testing.T) {
	for ring := board.Miss; ring <= board.Double; ring++ {
		for sector := 0; sector <= board.NumSectors; sector++ {
			seg := board.Segment{Ring: ring, Sector: sector}
			if got := segmentOf(slot(seg)); got != seg {
				t.Errorf("slot round trip %v -> %v", seg, got)
			}
		}
	}
}

func TestPlanChunks(t *testing.T) {
	chunks := planChunks(10, 4)
	want := []chunk{{0, 4}, {1, 4}, {2, 2}}
	if len(chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %d", len(want), len(chunks))
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d = %+v, want %+v", i, chunks[i], want[i])
		}
	}
}
