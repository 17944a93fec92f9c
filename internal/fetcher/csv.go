// Package fetcher reads and writes the tabular CSV and XLSX files the batch
// imports from and exports to.
package fetcher

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// ReadCSV reads a CSV file and returns the header row and the data rows.
// Fields are trimmed; rows may have a variable number of fields.
func ReadCSV(path string) (header []string, rows [][]string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "csv: open %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // allow variable fields
	reader.LazyQuotes = true

	first := true
	for {
		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, nil, eris.Wrap(readErr, "csv: read row")
		}

		for i, field := range record {
			record[i] = strings.TrimSpace(field)
		}

		if first {
			header = record
			first = false
			continue
		}
		rows = append(rows, record)
	}

	if header == nil {
		return nil, nil, eris.Errorf("csv: %s is empty", path)
	}
	return header, rows, nil
}

// WriteCSV writes a header row and data rows to path.
func WriteCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "csv: create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return eris.Wrap(err, "csv: write header")
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return eris.Wrap(err, "csv: write row")
		}
	}
	w.Flush()
	return eris.Wrap(w.Error(), "csv: flush")
}
