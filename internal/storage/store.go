package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/dartsim/internal/sweep"
)

const (
	metadataFile = "metadata.json"
	resultsFile  = "results.csv"
)

// Store keeps a history of sweeps, one directory per run.
type Store struct {
	baseDir string
	newID   func() string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{
		baseDir: baseDir,
		newID:   uuid.NewString,
		now:     time.Now,
	}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string      `json:"id"`
	Timestamp   time.Time   `json:"timestamp"`
	Preset      string      `json:"preset,omitempty"`
	NSims       int         `json:"n_sims"`
	Seed        int64       `json:"seed"`
	Workers     int         `json:"workers"`
	AimPoints   []string    `json:"aim_points"`
	Dispersions []float64   `json:"dispersions"`
	Elapsed     float64     `json:"elapsed_seconds"`
	Rows        []sweep.Row `json:"rows"`
}

// Save writes the run's metadata and a results.csv copy of its rows and
// returns the run id.
func (s *Store) Save(meta RunMetadata) (string, error) {
	if meta.ID == "" {
		meta.ID = s.newID()
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = s.now()
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	rw, err := CreateResultFile(filepath.Join(runDir, resultsFile))
	if err != nil {
		return "", err
	}
	for _, row := range meta.Rows {
		if err := rw.Write(row); err != nil {
			rw.Close()
			return "", err
		}
	}
	if err := rw.Close(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns all readable runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadRows(runID string) ([]sweep.Row, error) {
	return ReadResultsFile(filepath.Join(s.baseDir, runID, resultsFile))
}

// ResultsPath is where a run's CSV lives.
func (s *Store) ResultsPath(runID string) string {
	return filepath.Join(s.baseDir, runID, resultsFile)
}
