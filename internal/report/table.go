package report

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/mkealoha/budgetparse/internal/budget"
)

// WriteCSV writes the allocation table to w, one row per record, with
// a header row from the record's column tags.
func WriteCSV(w io.Writer, records []budget.AllocationRecord) error {
	if err := gocsv.Marshal(&records, w); err != nil {
		return fmt.Errorf("write allocation csv: %w", err)
	}
	return nil
}

// WriteCSVFile writes the allocation table to path, creating or
// truncating the file.
func WriteCSVFile(path string, records []budget.AllocationRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteCSV(f, records); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Filter returns the records matching the given fiscal year and
// section. A zero fiscalYear or empty section means "all". The input
// slice is never modified.
func Filter(records []budget.AllocationRecord, fiscalYear int, section budget.Section) []budget.AllocationRecord {
	out := make([]budget.AllocationRecord, 0, len(records))
	for _, rec := range records {
		if fiscalYear != 0 && rec.FiscalYear != fiscalYear {
			continue
		}
		if section != "" && rec.Section != section {
			continue
		}
		out = append(out, rec)
	}
	return out
}
