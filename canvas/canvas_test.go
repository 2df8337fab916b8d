package canvas

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/lolobelaiba-droid/graduation-guardian/layout"
	"github.com/lolobelaiba-droid/graduation-guardian/models"
)

func fptr(v float64) *float64 { return &v }

func a4Landscape() models.Template {
	return models.Template{ID: uuid.New(), Name: "Master", PageSize: "A4", Orientation: models.OrientationLandscape}
}

// newInteraction uses 4 px per mm so pointer deltas map to whole millimetres.
func newInteraction(fields ...models.TemplateField) (*Interaction, *layout.Layout) {
	l := layout.New(a4Landscape(), fields)
	in := NewInteraction(l)
	in.Scale = 4
	return in, l
}

func TestDragCommitsMovedField(t *testing.T) {
	f := models.TemplateField{ID: uuid.New(), X: 50, Y: 50, IsVisible: true}
	in, l := newInteraction(f)

	if err := in.BeginDrag(f.ID, 100, 100); err != nil {
		t.Fatal(err)
	}
	if in.State() != Dragging {
		t.Fatalf("state = %v", in.State())
	}
	p := in.Move(140, 60)
	if p.X != 60 || p.Y != 40 {
		t.Fatalf("preview = (%v, %v), want (60, 40)", p.X, p.Y)
	}
	if got, _ := l.Field(f.ID); got.X != 50 {
		t.Fatal("preview leaked into the layout before End")
	}

	res, err := in.End()
	if err != nil {
		t.Fatal(err)
	}
	if !res.Committed || res.Field.X != 60 || res.Field.Y != 40 {
		t.Fatalf("End = %+v", res)
	}
	if in.State() != Idle {
		t.Fatalf("state after End = %v", in.State())
	}
}

func TestClickWithoutMoveDoesNotCommit(t *testing.T) {
	f := models.TemplateField{ID: uuid.New(), X: 50, Y: 50, IsVisible: true}
	in, l := newInteraction(f)

	_ = in.BeginDrag(f.ID, 10, 10)
	res, err := in.End()
	if err != nil {
		t.Fatal(err)
	}
	if res.Committed {
		t.Error("simple click committed a change")
	}
	if len(l.Changes()) != 0 {
		t.Errorf("Changes = %+v", l.Changes())
	}
}

func TestDragClampsToPage(t *testing.T) {
	f := models.TemplateField{ID: uuid.New(), X: 50, Y: 50, IsVisible: true}
	in, _ := newInteraction(f)

	_ = in.BeginDrag(f.ID, 0, 0)
	p := in.Move(5000, 5000)
	if p.X != 287 || p.Y != 200 {
		t.Fatalf("preview = (%v, %v), want (287, 200)", p.X, p.Y)
	}
	p = in.Move(-5000, -5000)
	if p.X != 0 || p.Y != 0 {
		t.Fatalf("preview = (%v, %v), want (0, 0)", p.X, p.Y)
	}
	res, _ := in.Leave()
	if !res.Committed || res.Field.X != 0 || res.Field.Y != 0 {
		t.Fatalf("Leave = %+v", res)
	}
}

func TestDragPreviewMatchesCommit(t *testing.T) {
	f := models.TemplateField{ID: uuid.New(), X: 50, Y: 50, IsVisible: true}
	in, _ := newInteraction(f)

	_ = in.BeginDrag(f.ID, 0, 0)
	// 9 px and 5 px at 4 px/mm: 2.25 mm and 1.25 mm.
	p := in.Move(9, 5)
	if p.X != 52.5 || p.Y != 51.5 {
		t.Fatalf("preview = (%v, %v), want (52.5, 51.5)", p.X, p.Y)
	}
	res, err := in.End()
	if err != nil {
		t.Fatal(err)
	}
	if res.Field.X != p.X || res.Field.Y != p.Y {
		t.Fatalf("committed (%v, %v), previewed (%v, %v)", res.Field.X, res.Field.Y, p.X, p.Y)
	}
}

func TestCancelDiscardsPreview(t *testing.T) {
	f := models.TemplateField{ID: uuid.New(), X: 50, Y: 50, IsVisible: true}
	in, l := newInteraction(f)

	_ = in.BeginDrag(f.ID, 0, 0)
	in.Move(40, 40)
	in.Cancel()
	if got, _ := l.Field(f.ID); got.X != 50 || got.Y != 50 {
		t.Fatalf("Cancel moved the field to (%v, %v)", got.X, got.Y)
	}
	if in.State() != Idle {
		t.Fatal("Cancel did not return to Idle")
	}
}

func TestGesturesAreExclusive(t *testing.T) {
	a := models.TemplateField{ID: uuid.New(), IsVisible: true}
	b := models.TemplateField{ID: uuid.New(), IsVisible: true}
	hidden := models.TemplateField{ID: uuid.New()}
	in, _ := newInteraction(a, b, hidden)

	if err := in.BeginResize(hidden.ID, 0, 0); !errors.Is(err, ErrFieldHidden) {
		t.Fatalf("hidden field: err = %v", err)
	}
	if err := in.BeginDrag(uuid.New(), 0, 0); !errors.Is(err, layout.ErrFieldNotFound) {
		t.Fatalf("unknown field: err = %v", err)
	}
	if err := in.BeginDrag(a.ID, 0, 0); err != nil {
		t.Fatal(err)
	}
	if err := in.BeginResize(b.ID, 0, 0); !errors.Is(err, ErrBusy) {
		t.Fatalf("second gesture: err = %v, want ErrBusy", err)
	}
	if err := in.BeginDrag(a.ID, 0, 0); !errors.Is(err, ErrBusy) {
		t.Fatalf("same field twice: err = %v, want ErrBusy", err)
	}
}

func TestResizeDirections(t *testing.T) {
	ltr := models.TemplateField{ID: uuid.New(), Width: fptr(60), IsVisible: true}
	rtl := models.TemplateField{ID: uuid.New(), Width: fptr(60), IsVisible: true, IsRTL: true}
	unset := models.TemplateField{ID: uuid.New(), IsVisible: true}
	tests := []struct {
		name  string
		field models.TemplateField
		dxPx  float64
		want  float64
	}{
		{"ltr grows right", ltr, 40, 70},
		{"rtl grows left", rtl, -40, 70},
		{"rtl shrinks right", rtl, 40, 50},
		{"floor", ltr, -1000, layout.MinFieldWidth},
		{"no width yet", unset, 20, UnsetWidth + 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, _ := newInteraction(tt.field)
			if err := in.BeginResize(tt.field.ID, 200, 50); err != nil {
				t.Fatal(err)
			}
			if p := in.Move(200+tt.dxPx, 80); p.Width != tt.want {
				t.Fatalf("preview width = %v, want %v", p.Width, tt.want)
			}
			res, err := in.End()
			if err != nil {
				t.Fatal(err)
			}
			if !res.Committed || *res.Field.Width != tt.want {
				t.Fatalf("End = %+v", res)
			}
		})
	}
}

func TestMoveWhileIdleIsIgnored(t *testing.T) {
	in, _ := newInteraction()
	if p := in.Move(10, 10); p.State != Idle || p.FieldID != uuid.Nil {
		t.Fatalf("Move while idle = %+v", p)
	}
	if res, err := in.End(); err != nil || res.Committed {
		t.Fatalf("End while idle = %+v, %v", res, err)
	}
}

func TestSessionDragAndSave(t *testing.T) {
	f := models.TemplateField{ID: uuid.New(), X: 30, Y: 30, IsVisible: true}
	l := layout.New(a4Landscape(), []models.TemplateField{f})
	var saved []models.TemplateField
	s := NewSession(l, func(ctx context.Context, changed []models.TemplateField, deleted []uuid.UUID) error {
		saved = changed
		return nil
	})
	s.Interaction.Scale = 4
	ctx := context.Background()

	steps := []struct {
		ev   Event
		want string
	}{
		{Event{Type: EventMove, X: 1, Y: 1}, ReplyIdle},
		{Event{Type: EventDragStart, FieldID: f.ID, X: 0, Y: 0}, ReplyPreview},
		{Event{Type: EventMove, X: 20, Y: 0}, ReplyPreview},
		{Event{Type: EventEnd}, ReplyCommitted},
		{Event{Type: EventNudge, FieldID: f.ID, Direction: "down", Step: 2}, ReplyCommitted},
		{Event{Type: EventNudge, FieldID: f.ID, Direction: "sideways"}, ReplyError},
		{Event{Type: "bogus"}, ReplyError},
		{Event{Type: EventSave}, ReplySaved},
	}
	for i, st := range steps {
		if r := s.Handle(ctx, st.ev); r.Type != st.want {
			t.Fatalf("step %d (%s): reply %+v, want %s", i, st.ev.Type, r, st.want)
		}
	}
	if len(saved) != 1 || saved[0].X != 35 || saved[0].Y != 32 {
		t.Fatalf("saved = %+v", saved)
	}
	if l.Dirty() {
		t.Error("layout still dirty after save")
	}
}

func TestSessionSaveError(t *testing.T) {
	f := models.TemplateField{ID: uuid.New(), IsVisible: true}
	l := layout.New(a4Landscape(), []models.TemplateField{f})
	s := NewSession(l, func(context.Context, []models.TemplateField, []uuid.UUID) error {
		return errors.New("disk full")
	})
	s.Handle(context.Background(), Event{Type: EventToggle, FieldID: f.ID})
	r := s.Handle(context.Background(), Event{Type: EventSave})
	if r.Type != ReplyError || r.Error != "disk full" {
		t.Fatalf("reply = %+v", r)
	}
	if !l.Dirty() {
		t.Error("failed save cleared pending changes")
	}
}

func TestRenderHTML(t *testing.T) {
	static := "الجمهورية الجزائرية"
	fields := []models.TemplateField{
		{ID: uuid.New(), FieldKey: "full_name_ar", NameAr: "الاسم", X: 222, Y: 80, FontSize: 16, IsRTL: true, IsVisible: true, Alignment: models.AlignRight},
		{ID: uuid.New(), FieldKey: "full_name_fr", NameFr: "Nom", X: 75, Y: 80, FontSize: 14, IsVisible: true, Width: fptr(100)},
		{ID: uuid.New(), FieldKey: "static_text", StaticText: &static, X: 148.5, Y: 20, IsVisible: true},
		{ID: uuid.New(), FieldKey: "mention_fr", NameFr: "Mention secrète", IsVisible: false},
	}
	var buf bytes.Buffer
	err := RenderHTML(&buf, a4Landscape(), fields, RenderOptions{
		Grid:   true,
		Values: map[uuid.UUID]string{fields[1].ID: "Benali Karim"},
	})
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{`class="grid"`, "الاسم", "Benali Karim", static, `dir="rtl"`, "wrap"} {
		if !strings.Contains(out, want) {
			t.Errorf("preview is missing %q", want)
		}
	}
	if strings.Contains(out, "Mention secrète") {
		t.Error("hidden field rendered")
	}

	buf.Reset()
	if err := RenderHTML(&buf, a4Landscape(), fields, RenderOptions{}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), `class="grid"`) {
		t.Error("grid rendered without the option")
	}
}

func TestThumbnail(t *testing.T) {
	img := imaging.New(1600, 1131, color.NRGBA{R: 240, G: 230, B: 200, A: 255})
	var src bytes.Buffer
	if err := imaging.Encode(&src, img, imaging.JPEG); err != nil {
		t.Fatal(err)
	}
	uri, err := Thumbnail(bytes.NewReader(src.Bytes()), 400)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("uri prefix = %.30q", uri)
	}

	if _, err := Thumbnail(strings.NewReader("not an image"), 400); err == nil {
		t.Error("expected a decode error")
	}
}
