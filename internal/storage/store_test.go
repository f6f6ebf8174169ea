package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/dartsim/internal/board"
	"github.com/san-kum/dartsim/internal/sim"
	"github.com/san-kum/dartsim/internal/sweep"
)

func sampleRows() []sweep.Row {
	return []sweep.Row{
		{AimPoint: "bullseye", Dispersion: 2.5, AverageScore: 48.125, StdDev: 4.5, Metrics: map[string]float64{"bull_rate": 0.9}},
		{AimPoint: "treble_20", Dispersion: 2.5, AverageScore: 41.3, StdDev: 19.75},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	st.newID = func() string { return "run-1" }

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{
		NSims:       1000,
		Seed:        42,
		AimPoints:   []string{"bullseye", "treble_20"},
		Dispersions: []float64{2.5},
		Rows:        sampleRows(),
	})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID != "run-1" {
		t.Errorf("expected run id 'run-1', got %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
	if got := meta.Rows[0].Metrics["bull_rate"]; got != 0.9 {
		t.Errorf("expected bull_rate 0.9, got %f", got)
	}

	rows, err := st.LoadRows(runID)
	if err != nil {
		t.Fatalf("load rows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1].AimPoint != "treble_20" || rows[1].AverageScore != 41.3 {
		t.Errorf("unexpected row %+v", rows[1])
	}
}

func TestStoreGeneratesIDs(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	a, err := st.Save(RunMetadata{NSims: 1})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	b, err := st.Save(RunMetadata{NSims: 1})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if a == "" || a == b {
		t.Errorf("expected distinct non-empty ids, got %q and %q", a, b)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list on missing dir failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"late", "early"} {
		_, err := st.Save(RunMetadata{
			ID:        id,
			Timestamp: base.Add(time.Duration(1-i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "stray.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != "early" || runs[1].ID != "late" {
		t.Errorf("expected runs oldest first, got %s then %s", runs[0].ID, runs[1].ID)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save(RunMetadata{Rows: sampleRows()})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(st.ResultsPath(runID)); os.IsNotExist(err) {
		t.Error("results.csv not created")
	}
}

func TestExportJSON(t *testing.T) {
	r := &sim.Result{
		NSims:        4,
		Dispersion:   0,
		Aim:          board.Point{},
		AverageScore: 50,
		Counts: map[board.Segment]int64{
			{Ring: board.InnerBull}: 4,
		},
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, NewExportData("bullseye", 3, r, nil)); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var got ExportData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got.AimPoint != "bullseye" || got.Seed != 3 {
		t.Errorf("unexpected header %+v", got)
	}
	if len(got.Segments) != 1 || got.Segments[0].Frequency != 1 || got.Segments[0].Value != 50 {
		t.Errorf("unexpected segments %+v", got.Segments)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("expected indented output")
	}

	path := filepath.Join(t.TempDir(), "out.json")
	if err := ExportJSON(path, got); err != nil {
		t.Fatalf("export failed: %v", err)
	}
}
