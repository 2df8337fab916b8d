package spreadsheet

import (
	"encoding/csv"
	"io"

	"github.com/xuri/excelize/v2"
)

// Column is one exported column.
type Column struct {
	Key    string
	Header string
}

func headerRow(columns []Column) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.Header
		if out[i] == "" {
			out[i] = c.Key
		}
	}
	return out
}

// WriteRecords writes rows as a single-sheet workbook.
func WriteRecords(w io.Writer, sheet string, columns []Column, rows []map[string]string) error {
	f := excelize.NewFile()
	defer f.Close()
	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	header := headerRow(columns)
	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &cells); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if len(columns) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(columns), 1)
		if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
			return err
		}
	}

	for i, row := range rows {
		vals := make([]interface{}, len(columns))
		for c, col := range columns {
			vals[c] = row[col.Key]
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
			return err
		}
	}
	return f.Write(w)
}

// WriteCSV writes rows as UTF-8 CSV with a byte order mark, which
// spreadsheet programs need to show Arabic text correctly.
func WriteCSV(w io.Writer, columns []Column, rows []map[string]string) error {
	if _, err := io.WriteString(w, "\xef\xbb\xbf"); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(headerRow(columns)); err != nil {
		return err
	}
	for _, row := range rows {
		rec := make([]string, len(columns))
		for i, col := range columns {
			rec[i] = row[col.Key]
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
