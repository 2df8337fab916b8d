package pdfgen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/lolobelaiba-droid/graduation-guardian/fieldvalue"
	"github.com/lolobelaiba-droid/graduation-guardian/fonts"
	"github.com/lolobelaiba-droid/graduation-guardian/models"
)

type drawn struct {
	x, y   float64
	text   string
	family string
	color  [3]int
}

// fakeSurface records drawing calls. Strings are 2 mm per rune wide.
type fakeSurface struct {
	pages      [][]drawn
	sizes      []gofpdf.SizeType
	registered map[string]bool
	family     string
	color      [3]int
	err        error
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{registered: map[string]bool{}}
}

func (s *fakeSurface) AddUTF8FontFromBytes(family, style string, b []byte) {
	s.registered[strings.ToLower(family+style)] = true
}
func (s *fakeSurface) Error() error { return s.err }
func (s *fakeSurface) ClearError()  { s.err = nil }
func (s *fakeSurface) Err() bool    { return s.err != nil }

func (s *fakeSurface) AddPageFormat(o string, size gofpdf.SizeType) {
	s.pages = append(s.pages, nil)
	s.sizes = append(s.sizes, size)
}

func (s *fakeSurface) SetFont(family, style string, size float64) {
	switch strings.ToLower(family) {
	case "helvetica", "times", "courier":
	default:
		if !s.registered[strings.ToLower(family+style)] {
			s.err = fmt.Errorf("undefined font: %s %s", family, style)
			return
		}
	}
	s.family = family
}

func (s *fakeSurface) SetTextColor(r, g, b int) { s.color = [3]int{r, g, b} }

func (s *fakeSurface) GetStringWidth(txt string) float64 {
	return float64(utf8.RuneCountInString(txt)) * 2
}

func (s *fakeSurface) Text(x, y float64, txt string) {
	p := len(s.pages) - 1
	s.pages[p] = append(s.pages[p], drawn{x: x, y: y, text: txt, family: s.family, color: s.color})
}

func fptr(v float64) *float64 { return &v }

func testLoader() *fonts.Loader {
	fetch := fonts.FetcherFunc(func(ctx context.Context, url string) ([]byte, error) {
		if strings.Contains(url, "lateef") {
			return nil, errors.New("offline")
		}
		return goregular.TTF, nil
	})
	return fonts.NewLoader(fonts.DefaultRegistry("https://fonts.example.test"), fonts.NewCache(), fetch)
}

func masterTemplate() models.Template {
	return models.Template{ID: uuid.New(), Name: "Master 2024", Category: models.CategoryMaster, PageSize: "A4", Orientation: models.OrientationLandscape}
}

func TestRenderPagePerRecordInFieldOrder(t *testing.T) {
	tpl := masterTemplate()
	fields := []models.TemplateField{
		{ID: uuid.New(), FieldKey: "specialty_fr", X: 100, Y: 90, FontName: "Times", IsVisible: true, SortOrder: 3},
		{ID: uuid.New(), FieldKey: "full_name_fr", X: 100, Y: 50, FontName: "Times", IsVisible: true, SortOrder: 1},
		{ID: uuid.New(), FieldKey: "student_number", X: 30, Y: 25, FontName: "Times", IsVisible: true, SortOrder: 2, Alignment: models.AlignLeft},
		{ID: uuid.New(), FieldKey: "university_fr", X: 100, Y: 120, FontName: "Times", IsVisible: false, SortOrder: 4},
	}
	records := []fieldvalue.Record{
		{"full_name_fr": "Karim", "student_number": "M-001", "specialty_fr": "Physique", "university_fr": "Batna"},
		{"full_name_fr": "Amina", "student_number": "M-002", "specialty_fr": "Chimie", "university_fr": "Batna"},
	}

	s := newFakeSurface()
	e := NewEngine(testLoader(), nil)
	if err := e.render(context.Background(), s, nil, records, fields, tpl); err != nil {
		t.Fatal(err)
	}
	if len(s.pages) != 2 {
		t.Fatalf("pages = %d, want 2", len(s.pages))
	}
	if s.sizes[0].Wd != 297 || s.sizes[0].Ht != 210 {
		t.Errorf("page size = %+v, want 297x210", s.sizes[0])
	}
	want := [][]string{{"Karim", "M-001", "Physique"}, {"Amina", "M-002", "Chimie"}}
	for p, page := range s.pages {
		if len(page) != 3 {
			t.Fatalf("page %d has %d texts, want 3: %+v", p, len(page), page)
		}
		for i, d := range page {
			if d.text != want[p][i] {
				t.Errorf("page %d text %d = %q, want %q", p, i, d.text, want[p][i])
			}
			if d.text == "Batna" {
				t.Error("hidden field was drawn")
			}
		}
	}
}

func TestRenderAlignmentAnchors(t *testing.T) {
	fields := []models.TemplateField{
		{ID: uuid.New(), FieldKey: "a", X: 100, Y: 40, FontName: "Times", IsVisible: true, Alignment: models.AlignLeft, SortOrder: 1},
		{ID: uuid.New(), FieldKey: "a", X: 100, Y: 50, FontName: "Times", IsVisible: true, Alignment: models.AlignRight, SortOrder: 2},
		{ID: uuid.New(), FieldKey: "a", X: 100, Y: 60, FontName: "Times", IsVisible: true, SortOrder: 3},
	}
	s := newFakeSurface()
	e := NewEngine(testLoader(), nil)
	if err := e.render(context.Background(), s, nil, []fieldvalue.Record{{"a": "abcde"}}, fields, masterTemplate()); err != nil {
		t.Fatal(err)
	}
	// "abcde" is 10 mm wide.
	wantX := []float64{100, 90, 95}
	for i, d := range s.pages[0] {
		if d.x != wantX[i] {
			t.Errorf("text %d x = %v, want %v", i, d.x, wantX[i])
		}
		if d.y != fields[i].Y {
			t.Errorf("text %d y = %v, want baseline %v", i, d.y, fields[i].Y)
		}
	}
}

func TestRenderSkipsEmptyValuesAndKeepsBlankPages(t *testing.T) {
	fields := []models.TemplateField{
		{ID: uuid.New(), FieldKey: "full_name_fr", X: 100, Y: 50, IsVisible: true},
	}
	records := []fieldvalue.Record{{"full_name_fr": "  "}, {"full_name_fr": "Nadia"}}
	s := newFakeSurface()
	e := NewEngine(testLoader(), nil)
	if err := e.render(context.Background(), s, nil, records, fields, masterTemplate()); err != nil {
		t.Fatal(err)
	}
	if len(s.pages) != 2 || len(s.pages[0]) != 0 || len(s.pages[1]) != 1 {
		t.Fatalf("pages = %+v", s.pages)
	}
}

func TestRenderFontFallback(t *testing.T) {
	fields := []models.TemplateField{
		{ID: uuid.New(), FieldKey: "a", FontName: "No Such Font", IsVisible: true, SortOrder: 1},
		{ID: uuid.New(), FieldKey: "a", FontName: "Lateef", IsVisible: true, SortOrder: 2},
		{ID: uuid.New(), FieldKey: "a", FontName: "Tajawal", IsVisible: true, SortOrder: 3},
		{ID: uuid.New(), FieldKey: "b", FontName: "Times", IsVisible: true, SortOrder: 4},
		{ID: uuid.New(), FieldKey: "a", FontName: "", IsVisible: true, SortOrder: 5},
	}
	rec := fieldvalue.Record{"a": "Doctorat", "b": "جامعة"}
	s := newFakeSurface()
	e := NewEngine(testLoader(), nil)
	if err := e.render(context.Background(), s, nil, []fieldvalue.Record{rec}, fields, masterTemplate()); err != nil {
		t.Fatal(err)
	}
	want := []string{"Amiri", "Amiri", "Tajawal", "Amiri", "Amiri"}
	for i, d := range s.pages[0] {
		if d.family != want[i] {
			t.Errorf("field %d drawn with %q, want %q", i, d.family, want[i])
		}
	}
}

func TestRenderSetFontFailureFallsBack(t *testing.T) {
	s := newFakeSurface()
	d := &drawer{s: s, faces: fonts.Faces{Fallback: fonts.Face{Family: "Helvetica", Builtin: true}}, spacing: 1.3}
	face := d.setFont(fonts.Face{Family: "Ghost"}, 12)
	if face.Family != "Helvetica" || s.family != "Helvetica" || s.Err() {
		t.Fatalf("setFont = %+v, surface family %q, err %v", face, s.family, s.err)
	}
}

func TestRenderWrapsToWidth(t *testing.T) {
	fields := []models.TemplateField{
		{ID: uuid.New(), FieldKey: "thesis_title_fr", X: 100, Y: 100, FontSize: 12, Width: fptr(30), IsVisible: true, Alignment: models.AlignLeft},
	}
	rec := fieldvalue.Record{"thesis_title_fr": "Etude des alliages de titane"}
	s := newFakeSurface()
	e := NewEngine(testLoader(), nil)
	if err := e.render(context.Background(), s, nil, []fieldvalue.Record{rec}, fields, masterTemplate()); err != nil {
		t.Fatal(err)
	}
	page := s.pages[0]
	if len(page) < 2 {
		t.Fatalf("text was not wrapped: %+v", page)
	}
	var words []string
	for i, d := range page {
		if w := float64(utf8.RuneCountInString(d.text)) * 2; w > 30 && strings.Contains(d.text, " ") {
			t.Errorf("line %q is %v mm wide", d.text, w)
		}
		if i > 0 && d.y <= page[i-1].y {
			t.Errorf("line %d baseline %v not below %v", i, d.y, page[i-1].y)
		}
		words = append(words, d.text)
	}
	if got := strings.Join(words, " "); got != "Etude des alliages de titane" {
		t.Errorf("wrapped text = %q", got)
	}
}

func TestRenderColors(t *testing.T) {
	fields := []models.TemplateField{
		{ID: uuid.New(), FieldKey: "a", FontColor: "#1a2B3c", IsVisible: true},
	}
	s := newFakeSurface()
	e := NewEngine(testLoader(), nil)
	if err := e.render(context.Background(), s, nil, []fieldvalue.Record{{"a": "x"}}, fields, masterTemplate()); err != nil {
		t.Fatal(err)
	}
	if got := s.pages[0][0].color; got != [3]int{0x1a, 0x2b, 0x3c} {
		t.Errorf("color = %v", got)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b int
	}{
		{"#000000", 0, 0, 0},
		{"#ff8000", 255, 128, 0},
		{"#FFF", 255, 255, 255},
		{"1e3a8a", 0x1e, 0x3a, 0x8a},
		{"", 0, 0, 0},
		{"#12345", 0, 0, 0},
		{"#zzzzzz", 0, 0, 0},
	}
	for _, tt := range tests {
		r, g, b := parseColor(tt.in)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("parseColor(%q) = %d,%d,%d, want %d,%d,%d", tt.in, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}

func TestRenderSingleCertificateProducesPDF(t *testing.T) {
	fields := []models.TemplateField{
		{ID: uuid.New(), FieldKey: "full_name_fr", X: 148, Y: 80, FontName: "Amiri", FontSize: 18, IsVisible: true, SortOrder: 1},
		{ID: uuid.New(), FieldKey: "specialty_fr", X: 148, Y: 100, FontName: "Times", IsVisible: true, SortOrder: 2},
		{ID: uuid.New(), FieldKey: "defense_date", X: 60, Y: 140, IsVisible: true, SortOrder: 3},
	}
	rec := fieldvalue.Record{"full_name_fr": "Karim Benali", "specialty_fr": "Génie électrique", "defense_date": "2024-06-15"}

	e := NewEngine(testLoader(), nil)
	out, err := e.RenderSingleCertificate(context.Background(), rec, fields, masterTemplate())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output does not start with %%PDF: %.10q", out)
	}
	if n := bytes.Count(out, []byte("/Type /Page\n")); n != 1 {
		t.Errorf("page objects = %d, want 1", n)
	}
}

func TestRenderToFile(t *testing.T) {
	fields := []models.TemplateField{
		{ID: uuid.New(), FieldKey: "full_name_fr", X: 148, Y: 80, IsVisible: true},
	}
	records := []fieldvalue.Record{{"full_name_fr": "A"}, {"full_name_fr": "B"}, {"full_name_fr": "C"}}
	path := filepath.Join(t.TempDir(), "batch.pdf")

	e := NewEngine(testLoader(), nil)
	if err := e.RenderToFile(context.Background(), path, records, fields, masterTemplate()); err != nil {
		t.Fatal(err)
	}
	out, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := bytes.Count(out, []byte("/Type /Page\n")); n != 3 {
		t.Errorf("page objects = %d, want 3", n)
	}
}

func TestRenderWithoutRecords(t *testing.T) {
	e := NewEngine(testLoader(), nil)
	err := e.RenderCertificates(context.Background(), &bytes.Buffer{}, nil, nil, masterTemplate())
	var re *RenderError
	if !errors.As(err, &re) || !errors.Is(err, ErrNoRecords) {
		t.Fatalf("err = %v, want RenderError wrapping ErrNoRecords", err)
	}
}
