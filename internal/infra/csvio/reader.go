package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// Record maps a column name from the header row onto that row's value.
type Record map[string]string

// ReadRecords reads a delimited file with a header row and returns one record
// per data row, in file order. A file with no data rows (header-only or fully
// empty) yields an empty slice; deciding what that means is the caller's job.
//
// Rows shorter than the header simply lack the trailing columns, matching how
// operators hand-edit these files; the missing fields surface later as
// per-row validation failures rather than aborting the whole read.
func ReadRecords(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row: %w", err)
		}

		record := make(Record, len(header))
		for i, column := range header {
			if i < len(row) {
				record[column] = row[i]
			}
		}
		records = append(records, record)
	}

	return records, nil
}

// Lookup reports the value for a column and whether the column existed in the
// header at all, mirroring the distinction between an absent column and an
// empty value.
func (r Record) Lookup(column string) (string, bool) {
	value, ok := r[column]
	return value, ok
}
