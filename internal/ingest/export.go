package ingest

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/Up-Bizz/ContactVerifier/internal/fetcher"
	"github.com/Up-Bizz/ContactVerifier/internal/model"
)

// exportHeader matches the column layout downstream spreadsheets expect.
var exportHeader = []string{
	ColFirstName, ColLastName, ColPhone, ColJobTitle, ColSourceURL,
	"presence_of_fullname", "presence_of_phone", "presence_of_job_title",
	"status", "error",
}

// ExportFile writes records to a CSV or XLSX file, dispatched on extension.
func ExportFile(path string, recs []model.Record) error {
	rows := RowsFromRecords(recs)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return fetcher.WriteCSV(path, exportHeader, rows)
	case ".xlsx":
		return fetcher.WriteXLSX(path, exportHeader, rows)
	default:
		return eris.Errorf("ingest: unsupported export format %q (want .csv or .xlsx)", filepath.Ext(path))
	}
}

// RowsFromRecords flattens records into tabular form. Presence columns stay
// empty for records that have not been verified yet.
func RowsFromRecords(recs []model.Record) [][]string {
	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		name, phone, title, errMsg := "", "", "", ""
		if rec.Result != nil {
			name = strconv.FormatBool(rec.Result.NamePresent)
			phone = strconv.FormatBool(rec.Result.PhonePresent)
			title = strconv.FormatBool(rec.Result.TitlePresent)
			errMsg = rec.Result.Error
		}
		rows = append(rows, []string{
			rec.FirstName, rec.LastName, rec.Phone, rec.JobTitle, rec.SourceURL,
			name, phone, title,
			string(rec.Status), errMsg,
		})
	}
	return rows
}
