// Package spreadsheet reads import files and writes exports. Both .xlsx and
// .csv are supported.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrFileTooLarge      = errors.New("file is too large")
	ErrTooManyRows       = errors.New("too many rows")
	ErrUnsupportedFormat = errors.New("unsupported file format, expected .xlsx or .csv")
	ErrNoHeader          = errors.New("file has no header row")
)

type Limits struct {
	MaxBytes int64
	MaxRows  int
}

var DefaultLimits = Limits{MaxBytes: 10 << 20, MaxRows: 5000}

// Row is one data line. Line is the 1-based line number in the file, so
// errors can point the operator at it.
type Row struct {
	Line   int
	Values map[string]string
}

type Sheet struct {
	Header []string
	Rows   []Row
}

// ReadRows parses an uploaded file. size is the size the client declared;
// the limit is enforced on the bytes actually read as well.
func ReadRows(r io.Reader, size int64, filename string, lim Limits) (*Sheet, error) {
	if lim.MaxBytes > 0 && size > lim.MaxBytes {
		return nil, ErrFileTooLarge
	}
	if lim.MaxBytes > 0 {
		r = io.LimitReader(r, lim.MaxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if lim.MaxBytes > 0 && int64(len(data)) > lim.MaxBytes {
		return nil, ErrFileTooLarge
	}

	var table [][]string
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		table, err = readXLSX(data)
	case ".csv", ".txt":
		table, err = readCSV(data)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}
	return toSheet(table, lim.MaxRows)
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid xlsx file: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoHeader
	}
	return f.GetRows(sheets[0])
}

func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = detectComma(data)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	table, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid csv file: %w", err)
	}
	return table, nil
}

// detectComma picks the separator used by the header line. Spreadsheets
// saved with a French locale use semicolons.
func detectComma(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	best, bestCount := ',', bytes.Count(line, []byte{','})
	for _, c := range []rune{';', '\t'} {
		if n := bytes.Count(line, []byte(string(c))); n > bestCount {
			best, bestCount = c, n
		}
	}
	return best
}

func toSheet(table [][]string, maxRows int) (*Sheet, error) {
	start := -1
	for i, cells := range table {
		if !blank(cells) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, ErrNoHeader
	}
	header := make([]string, len(table[start]))
	for i, h := range table[start] {
		header[i] = strings.TrimSpace(h)
	}

	sheet := &Sheet{Header: header}
	for i := start + 1; i < len(table); i++ {
		cells := table[i]
		if blank(cells) {
			continue
		}
		if maxRows > 0 && len(sheet.Rows) >= maxRows {
			return nil, fmt.Errorf("%w: more than %d", ErrTooManyRows, maxRows)
		}
		values := make(map[string]string, len(header))
		for c, h := range header {
			if h == "" || c >= len(cells) {
				continue
			}
			if v := strings.TrimSpace(cells[c]); v != "" {
				values[h] = v
			}
		}
		sheet.Rows = append(sheet.Rows, Row{Line: i + 1, Values: values})
	}
	return sheet, nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// NormalizeHeader lowercases a column title and joins its words with
// underscores, so "Full Name AR" matches the key full_name_ar.
func NormalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.Join(strings.FieldsFunc(h, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '.'
	}), "_")
}

// MapRows renames columns to record keys. Columns missing from mapping keep
// their normalized title.
func MapRows(rows []Row, mapping map[string]string) []Row {
	lookup := make(map[string]string, len(mapping))
	for from, to := range mapping {
		lookup[NormalizeHeader(from)] = to
	}
	out := make([]Row, len(rows))
	for i, r := range rows {
		values := make(map[string]string, len(r.Values))
		for col, v := range r.Values {
			key := NormalizeHeader(col)
			if to, ok := lookup[key]; ok {
				key = to
			}
			if key == "" {
				continue
			}
			values[key] = v
		}
		out[i] = Row{Line: r.Line, Values: values}
	}
	return out
}
