package spreadsheet

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	data := "\xef\xbb\xbfStudent Number;Full Name AR;Mention\n" +
		"M-001;أحمد بن علي;tres_bien\n" +
		";;\n" +
		"M-002; سارة ;\n"
	sheet, err := ReadRows(strings.NewReader(data), int64(len(data)), "students.csv", DefaultLimits)
	if err != nil {
		t.Fatal(err)
	}
	if len(sheet.Header) != 3 || sheet.Header[0] != "Student Number" {
		t.Fatalf("header = %q", sheet.Header)
	}
	if len(sheet.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(sheet.Rows))
	}
	second := sheet.Rows[1]
	if second.Line != 4 {
		t.Errorf("line = %d, want 4", second.Line)
	}
	if second.Values["Full Name AR"] != "سارة" {
		t.Errorf("value not trimmed: %q", second.Values["Full Name AR"])
	}
	if _, ok := second.Values["Mention"]; ok {
		t.Error("empty cell kept")
	}
}

func TestReadXLSXRoundTrip(t *testing.T) {
	columns := []Column{{Key: "student_number", Header: "Student Number"}, {Key: "full_name_ar", Header: "Full Name AR"}}
	rows := []map[string]string{
		{"student_number": "D-10", "full_name_ar": "ليلى"},
		{"student_number": "D-11", "full_name_ar": "يوسف"},
	}
	var buf bytes.Buffer
	if err := WriteRecords(&buf, "phd_lmd", columns, rows); err != nil {
		t.Fatal(err)
	}

	sheet, err := ReadRows(bytes.NewReader(buf.Bytes()), int64(buf.Len()), "export.XLSX", DefaultLimits)
	if err != nil {
		t.Fatal(err)
	}
	mapped := MapRows(sheet.Rows, nil)
	if len(mapped) != 2 || mapped[1].Values["full_name_ar"] != "يوسف" || mapped[0].Values["student_number"] != "D-10" {
		t.Fatalf("rows = %+v", mapped)
	}
}

func TestReadRowsLimits(t *testing.T) {
	data := "a,b\n1,2\n3,4\n5,6\n"
	_, err := ReadRows(strings.NewReader(data), int64(len(data)), "x.csv", Limits{MaxRows: 2})
	if !errors.Is(err, ErrTooManyRows) {
		t.Errorf("err = %v, want ErrTooManyRows", err)
	}
	_, err = ReadRows(strings.NewReader(data), 0, "x.csv", Limits{MaxBytes: 8})
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("undeclared size: err = %v, want ErrFileTooLarge", err)
	}
	_, err = ReadRows(strings.NewReader(data), 1<<30, "x.csv", Limits{MaxBytes: 1 << 20})
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("declared size: err = %v, want ErrFileTooLarge", err)
	}
	_, err = ReadRows(strings.NewReader(data), int64(len(data)), "x.pdf", DefaultLimits)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
	_, err = ReadRows(strings.NewReader("\n , \n"), 5, "x.csv", DefaultLimits)
	if !errors.Is(err, ErrNoHeader) {
		t.Errorf("err = %v, want ErrNoHeader", err)
	}
}

func TestMapRows(t *testing.T) {
	rows := []Row{{Line: 2, Values: map[string]string{
		"Matricule":    "M-1",
		"Full-Name FR": "Ali",
		"Note":         "x",
	}}}
	got := MapRows(rows, map[string]string{"matricule": "student_number"})
	want := map[string]string{"student_number": "M-1", "full_name_fr": "Ali", "note": "x"}
	for k, v := range want {
		if got[0].Values[k] != v {
			t.Errorf("%s = %q, want %q", k, got[0].Values[k], v)
		}
	}
	if got[0].Line != 2 {
		t.Errorf("line = %d", got[0].Line)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []Column{{Key: "a", Header: "A"}, {Key: "b"}}, []map[string]string{{"a": "1", "b": "x,y"}})
	if err != nil {
		t.Fatal(err)
	}
	want := "\xef\xbb\xbfA,b\n1,\"x,y\"\n"
	if buf.String() != want {
		t.Errorf("csv = %q, want %q", buf.String(), want)
	}
}

func TestNormalizeHeader(t *testing.T) {
	tests := map[string]string{
		" Full Name AR ":   "full_name_ar",
		"date-of-birth":    "date_of_birth",
		"Student_Number":   "student_number",
		"thesis  title.fr": "thesis_title_fr",
	}
	for in, want := range tests {
		if got := NormalizeHeader(in); got != want {
			t.Errorf("NormalizeHeader(%q) = %q, want %q", in, got, want)
		}
	}
}
