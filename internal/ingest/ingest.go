// Package ingest maps spreadsheet rows onto contact records and back.
package ingest

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Up-Bizz/ContactVerifier/internal/fetcher"
	"github.com/Up-Bizz/ContactVerifier/internal/model"
)

// Column names recognized in input files. decision_maker_source carries the
// URL each record is verified against and is the only required column.
const (
	ColFirstName = "first_name"
	ColLastName  = "last_name"
	ColPhone     = "phone"
	ColJobTitle  = "job_title"
	ColSourceURL = "decision_maker_source"
)

// LoadFile reads a CSV or XLSX file (dispatched on extension) and maps its
// rows onto records. Rows without a source URL are skipped: no check can run
// without a page to load.
func LoadFile(path string) ([]model.Record, error) {
	var (
		header []string
		rows   [][]string
		err    error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		header, rows, err = fetcher.ReadCSV(path)
	case ".xlsx":
		header, rows, err = fetcher.ReadXLSX(path)
	default:
		return nil, eris.Errorf("ingest: unsupported file format %q (want .csv or .xlsx)", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	return RecordsFromRows(header, rows)
}

// RecordsFromRows maps tabular data onto records using header names.
func RecordsFromRows(header []string, rows [][]string) ([]model.Record, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}

	srcCol, ok := idx[ColSourceURL]
	if !ok {
		return nil, eris.Errorf("ingest: missing required column %q", ColSourceURL)
	}

	col := func(name string) int {
		if i, ok := idx[name]; ok {
			return i
		}
		return -1
	}
	firstCol := col(ColFirstName)
	lastCol := col(ColLastName)
	phoneCol := col(ColPhone)
	titleCol := col(ColJobTitle)

	var recs []model.Record
	skipped := 0
	for _, row := range rows {
		url := cell(row, srcCol)
		if url == "" {
			skipped++
			continue
		}
		recs = append(recs, model.Record{
			ID:        uuid.New().String(),
			FirstName: cell(row, firstCol),
			LastName:  cell(row, lastCol),
			Phone:     cell(row, phoneCol),
			JobTitle:  cell(row, titleCol),
			SourceURL: url,
			Status:    model.StatusNotProcessed,
		})
	}

	if skipped > 0 {
		zap.L().Warn("ingest: skipped rows without a source URL", zap.Int("skipped", skipped))
	}
	return recs, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
