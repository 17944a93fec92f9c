// Package split divides an input spreadsheet into equal parts so separate
// machines can each work a slice of the dataset.
package split

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/Up-Bizz/ContactVerifier/internal/fetcher"
)

// File splits the rows of a CSV or XLSX file into parts files written to
// outDir, named "01_<base>", "02_<base>", and so on. The last part receives
// any remainder rows. When toCSV is set the parts are written as CSV
// regardless of the input format. Returns the written file paths.
func File(path, outDir string, parts int, toCSV bool) ([]string, error) {
	if parts < 2 {
		return nil, eris.Errorf("split: parts must be at least 2, got %d", parts)
	}

	var (
		header []string
		rows   [][]string
		err    error
	)
	inExt := strings.ToLower(filepath.Ext(path))
	switch inExt {
	case ".csv":
		header, rows, err = fetcher.ReadCSV(path)
	case ".xlsx":
		header, rows, err = fetcher.ReadXLSX(path)
	default:
		return nil, eris.Errorf("split: unsupported file format %q (want .csv or .xlsx)", inExt)
	}
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "split: create output dir %s", outDir)
	}

	outExt := inExt
	if toCSV {
		outExt = ".csv"
	}
	base := strings.TrimSuffix(filepath.Base(path), inExt)

	perFile := len(rows) / parts
	var written []string
	for i := 0; i < parts; i++ {
		start := i * perFile
		end := start + perFile
		if i == parts-1 {
			end = len(rows)
		}

		outPath := filepath.Join(outDir, fmt.Sprintf("%02d_%s%s", i+1, base, outExt))
		var writeErr error
		if outExt == ".csv" {
			writeErr = fetcher.WriteCSV(outPath, header, rows[start:end])
		} else {
			writeErr = fetcher.WriteXLSX(outPath, header, rows[start:end])
		}
		if writeErr != nil {
			return written, writeErr
		}
		written = append(written, outPath)
	}

	return written, nil
}
