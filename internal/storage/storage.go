package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ganot/worklog/internal/model"
)

// header is the fixed column set of the log file. Every row carries all
// columns regardless of kind, blank where irrelevant, so later appends of
// a different kind never change the schema.
var header = []string{"timestamp", "type", "ticket_number", "qa_name", "description"}

// BaseDir returns the root data directory (~/.worklog).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".worklog"), nil
}

// LogPath returns the flat log file path inside base.
func LogPath(base string) string {
	return filepath.Join(base, "work_log.csv")
}

// Log is the file-backed record store: a single append-only CSV with no
// user partitioning.
type Log struct {
	path string
}

// NewLog returns a Log persisting to the given file path.
func NewLog(path string) *Log {
	return &Log{path: path}
}

// Append durably adds one record. The first append creates the file with
// its header row; later appends add one row without touching existing
// rows.
func (l *Log) Append(ctx context.Context, rec model.Record) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("storage error opening %s: %w", l.path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("storage error inspecting %s: %w", l.path, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("storage error writing header to %s: %w", l.path, err)
		}
	}
	if err := w.Write(encode(rec)); err != nil {
		return fmt.Errorf("storage error appending to %s: %w", l.path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("storage error appending to %s: %w", l.path, err)
	}
	return nil
}

// Query returns every logged record in file (append) order. The file
// backend has no user concept, so userName is ignored. A missing log file
// is an empty result, not an error.
func (l *Log) Query(ctx context.Context, userName string) ([]model.Record, error) {
	f, err := os.Open(l.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", l.path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("storage error parsing %s: %w", l.path, err)
	}

	var recs []model.Record
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		rec, err := decode(row)
		if err != nil {
			return nil, fmt.Errorf("storage error in %s line %d: %w", l.path, i+1, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Latest always reports nothing to resume: the flat file is a single
// global log without user partitioning.
func (l *Log) Latest(ctx context.Context, userName string) (*model.Record, error) {
	return nil, nil
}

func encode(rec model.Record) []string {
	return []string{
		rec.Timestamp.Format(time.RFC3339),
		string(rec.Kind),
		rec.TicketNumber,
		rec.QAName,
		rec.Description,
	}
}

func decode(row []string) (model.Record, error) {
	if len(row) != len(header) {
		return model.Record{}, fmt.Errorf("expected %d columns, got %d", len(header), len(row))
	}
	ts, err := time.Parse(time.RFC3339, row[0])
	if err != nil {
		return model.Record{}, fmt.Errorf("bad timestamp %q: %w", row[0], err)
	}
	kind, err := model.ParseKind(row[1])
	if err != nil {
		return model.Record{}, err
	}
	return model.Record{
		Timestamp:    ts,
		Kind:         kind,
		TicketNumber: row[2],
		QAName:       row[3],
		Description:  row[4],
	}, nil
}
