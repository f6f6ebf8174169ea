package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/dartsim/internal/sweep"
)

// Header is the column layout of a results file.
var Header = []string{"aim_point", "dispersion", "average_score", "std_dev"}

// ResultWriter writes sweep rows as CSV, flushing after every row so a
// partial sweep still leaves a readable file.
type ResultWriter struct {
	w           *csv.Writer
	closer      io.Closer
	wroteHeader bool
}

func NewResultWriter(w io.Writer) *ResultWriter {
	return &ResultWriter{w: csv.NewWriter(w)}
}

// CreateResultFile truncates path and returns a writer for it.
func CreateResultFile(path string) (*ResultWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	rw := NewResultWriter(f)
	rw.closer = f
	return rw, nil
}

func (rw *ResultWriter) WriteHeader() error {
	if rw.wroteHeader {
		return nil
	}
	rw.wroteHeader = true
	if err := rw.w.Write(Header); err != nil {
		return err
	}
	rw.w.Flush()
	return rw.w.Error()
}

func (rw *ResultWriter) Write(row sweep.Row) error {
	if err := rw.WriteHeader(); err != nil {
		return err
	}
	record := []string{
		row.AimPoint,
		formatFloat(row.Dispersion),
		formatFloat(row.AverageScore),
		formatFloat(row.StdDev),
	}
	if err := rw.w.Write(record); err != nil {
		return err
	}
	rw.w.Flush()
	return rw.w.Error()
}

func (rw *ResultWriter) Close() error {
	if err := rw.WriteHeader(); err != nil {
		return err
	}
	if rw.closer == nil {
		return nil
	}
	return rw.closer.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ReadResults parses a results file written by [ResultWriter].
func ReadResults(r io.Reader) ([]sweep.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("results: empty file")
		}
		return nil, err
	}
	for i, col := range Header {
		if header[i] != col {
			return nil, fmt.Errorf("results: unexpected column %q, want %q", header[i], col)
		}
	}

	rows := make([]sweep.Row, 0)
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		var vals [3]float64
		for i := range vals {
			vals[i], err = strconv.ParseFloat(record[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("results: line %d column %s: %w", line, Header[i+1], err)
			}
		}
		rows = append(rows, sweep.Row{
			AimPoint:     record[0],
			Dispersion:   vals[0],
			AverageScore: vals[1],
			StdDev:       vals[2],
		})
	}
	return rows, nil
}

func ReadResultsFile(path string) ([]sweep.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadResults(f)
}
