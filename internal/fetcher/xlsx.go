package fetcher

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// ReadXLSX reads the first sheet of an XLSX file and returns the header row
// and the data rows.
func ReadXLSX(path string) (header []string, rows [][]string, err error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "xlsx: open %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, nil, eris.Errorf("xlsx: %s has no sheets", path)
	}

	sheet := f.Sheets[0]
	for i, row := range sheet.Rows {
		cells := rowToStrings(row)
		if i == 0 {
			header = cells
			continue
		}
		rows = append(rows, cells)
	}

	if header == nil {
		return nil, nil, eris.Errorf("xlsx: %s is empty", path)
	}
	return header, rows, nil
}

// WriteXLSX writes a header row and data rows to a single-sheet XLSX file.
func WriteXLSX(path string, header []string, rows [][]string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("contacts")
	if err != nil {
		return eris.Wrap(err, "xlsx: add sheet")
	}

	writeRow := func(cells []string) {
		row := sheet.AddRow()
		for _, c := range cells {
			row.AddCell().Value = c
		}
	}
	writeRow(header)
	for _, r := range rows {
		writeRow(r)
	}

	return eris.Wrapf(f.Save(path), "xlsx: save %s", path)
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, 0, len(row.Cells))
	for _, c := range row.Cells {
		cells = append(cells, c.String())
	}
	return cells
}
