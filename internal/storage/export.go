package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/dartsim/internal/board"
	"github.com/san-kum/dartsim/internal/sim"
)

// SegmentShare is one segment's share of a simulation's throws.
type SegmentShare struct {
	Segment   string  `json:"segment"`
	Value     int     `json:"value"`
	Count     int64   `json:"count"`
	Frequency float64 `json:"frequency"`
}

type ExportData struct {
	AimPoint     string             `json:"aim_point"`
	Aim          board.Point        `json:"aim"`
	Dispersion   float64            `json:"dispersion"`
	NSims        int                `json:"n_sims"`
	Seed         int64              `json:"seed"`
	AverageScore float64            `json:"average_score"`
	StdDev       float64            `json:"std_dev"`
	Metrics      map[string]float64 `json:"metrics,omitempty"`
	Segments     []SegmentShare     `json:"segments"`
}

func NewExportData(name string, seed int64, r *sim.Result, metrics map[string]float64) ExportData {
	data := ExportData{
		AimPoint:     name,
		Aim:          r.Aim,
		Dispersion:   r.Dispersion,
		NSims:        r.NSims,
		Seed:         seed,
		AverageScore: r.AverageScore,
		StdDev:       r.StdDev,
		Metrics:      metrics,
		Segments:     make([]SegmentShare, 0, len(r.Counts)),
	}
	for _, sc := range r.TopSegments(-1) {
		data.Segments = append(data.Segments, SegmentShare{
			Segment:   sc.Segment.String(),
			Value:     sc.Segment.Value(),
			Count:     sc.Count,
			Frequency: r.Frequency(sc.Segment),
		})
	}
	return data
}

func WriteJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, data)
}
