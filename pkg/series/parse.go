package series

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

const (
	runColumn    = "run"
	signalColumn = "signal"
)

var (
	// ErrShortRow is returned when a pair row has fewer than two columns.
	ErrShortRow = errors.New("row has fewer than two columns")

	// ErrNoHeader is returned when a run file has no header row.
	ErrNoHeader = errors.New("missing header row")

	// ErrMissingColumn is returned when a run file header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")
)

// runRecord is one decoded row of a run file.
type runRecord struct {
	Run    int
	Signal float64
}

// ParsePairsFile parses a headerless key,value CSV file.
func ParsePairsFile(path string) (*Grouping[string], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pairs file: %s: %w", path, err)
	}
	defer f.Close()

	g, err := ParsePairs(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pairs file: %s: %w", path, err)
	}

	slog.Debug("parsed pairs", "path", path, "keys", g.Len(), "rows", g.Total())
	return g, nil
}

// ParsePairs reads headerless rows of (key, value) and groups the values by key.
func ParsePairs(r io.Reader) (*Grouping[string], error) {
	cr := newReader(r)
	g := NewGrouping[string]()

	for line := 1; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", line, err)
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("row %d: %w", line, ErrShortRow)
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid value %q: %w", line, row[1], err)
		}
		g.Add(row[0], v)
	}

	return g, nil
}

// ParseRunsFile parses a CSV file with run and signal columns.
func ParseRunsFile(path string) (*Grouping[int], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open runs file: %s: %w", path, err)
	}
	defer f.Close()

	g, err := ParseRuns(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse runs file: %s: %w", path, err)
	}

	slog.Debug("parsed runs", "path", path, "runs", g.Len(), "rows", g.Total())
	return g, nil
}

// ParseRuns reads rows with a header naming run and signal columns and groups
// signal values by run number. Column order is irrelevant and extra columns
// are ignored.
func ParseRuns(r io.Reader) (*Grouping[int], error) {
	cr := newReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	dec, err := newRunDecoder(header)
	if err != nil {
		return nil, err
	}

	g := NewGrouping[int]()
	// header is line 1
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", line, err)
		}

		rec, err := dec.decode(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		g.Add(rec.Run, rec.Signal)
	}

	return g, nil
}

type runDecoder struct {
	runIdx    int
	signalIdx int
}

func newRunDecoder(header []string) (*runDecoder, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}

	d := &runDecoder{}
	var ok bool
	if d.runIdx, ok = idx[runColumn]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, runColumn)
	}
	if d.signalIdx, ok = idx[signalColumn]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, signalColumn)
	}
	return d, nil
}

func (d *runDecoder) decode(row []string) (*runRecord, error) {
	if d.runIdx >= len(row) || d.signalIdx >= len(row) {
		return nil, fmt.Errorf("%w: expected %d columns, got %d",
			ErrMissingColumn, max(d.runIdx, d.signalIdx)+1, len(row))
	}

	run, err := strconv.Atoi(strings.TrimSpace(row[d.runIdx]))
	if err != nil {
		return nil, fmt.Errorf("invalid run %q: %w", row[d.runIdx], err)
	}

	sig, err := strconv.ParseFloat(strings.TrimSpace(row[d.signalIdx]), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid signal %q: %w", row[d.signalIdx], err)
	}

	return &runRecord{Run: run, Signal: sig}, nil
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	return cr
}
