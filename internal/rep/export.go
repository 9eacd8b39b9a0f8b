package rep

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// WriteHistory writes the session's per-tick channel history as CSV:
// the fixed six-column header, then one row per tick. Export reads the
// accumulated series without mutating them, so repeated calls produce
// identical output.
func (s *Session) WriteHistory(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(s.limbs.Header()); err != nil {
		return fmt.Errorf("write history header: %w", err)
	}
	for _, row := range s.limbs.Rows() {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write history row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveHistory writes the history CSV into dir, embedding the session
// clock's current time in the filename to avoid collisions across runs.
// Returns the path written. Failures are surfaced to the caller; the
// count itself is unaffected.
func (s *Session) SaveHistory(dir string) (string, error) {
	filename := fmt.Sprintf("repcount-%s.csv", s.clock.Now().Format("20060102-150405"))
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create history file: %w", err)
	}
	if err := s.WriteHistory(f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close history file: %w", err)
	}
	return path, nil
}
