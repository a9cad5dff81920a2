package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"

	"bds-pipeline/internal/census"
)

// Snapshots land next to the database so a run's inputs and outputs can be
// eyeballed (or diffed against last year's) without opening sqlite.

func writeTableCSV(path string, header []string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("snapshot %s: %w", path, err)
	}
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("snapshot %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("snapshot %s: %w", path, err)
	}
	return nil
}

func writeRawCSV(path string, t census.Table) error {
	return writeTableCSV(path, t.Columns, t.Rows)
}
