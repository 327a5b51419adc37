// Package dataset loads batches of explanations from tabular files.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"slices"
)

// DefaultTextColumn is the column holding the explanation text when none
// is named.
const DefaultTextColumn = "explanation"

// Record is one explanation read from a dataset.
type Record struct {
	// Name identifies the record: the ID column's value, or "<path>#<row>"
	// where row 1 is the first data row.
	Name string
	Text string
}

// LoadCSV reads explanations from the CSV file at path. The first row is
// the header. textColumn names the column holding the explanation
// (DefaultTextColumn when empty); idColumn, when non-empty, names the
// column used for Record.Name.
func LoadCSV(path, textColumn, idColumn string) ([]Record, error) {
	if textColumn == "" {
		textColumn = DefaultTextColumn
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv: %s is empty (no header row)", path)
	}

	headers := records[0]
	textIdx := slices.Index(headers, textColumn)
	if textIdx < 0 {
		return nil, fmt.Errorf("csv: %s has no %q column", path, textColumn)
	}
	idIdx := -1
	if idColumn != "" {
		if idIdx = slices.Index(headers, idColumn); idIdx < 0 {
			return nil, fmt.Errorf("csv: %s has no %q column", path, idColumn)
		}
	}

	out := make([]Record, 0, len(records)-1)
	var errs []error
	for i, row := range records[1:] {
		name := fmt.Sprintf("%s#%d", path, i+1)
		if idIdx >= 0 {
			if id := row[idIdx]; id != "" {
				name = id
			} else {
				errs = append(errs, fmt.Errorf("csv: row %d of %s has an empty %q", i+2, path, idColumn))
				continue
			}
		}
		out = append(out, Record{Name: name, Text: row[textIdx]})
	}

	return out, errors.Join(errs...)
}
