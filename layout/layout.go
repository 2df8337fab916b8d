// Package layout holds the editable field layout of one template. Every
// mutation is local; callers persist Changes and Deleted explicitly.
package layout

import (
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/lolobelaiba-droid/graduation-guardian/models"
	"github.com/lolobelaiba-droid/graduation-guardian/textshape"
)

const (
	MinFieldSize  = 10.0
	MinFieldWidth = 20.0
	DragGridMM    = 0.5
)

var ErrFieldNotFound = errors.New("layout: field not found")

type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

func ParseDirection(s string) (Direction, bool) {
	switch d := Direction(strings.ToLower(s)); d {
	case Up, Down, Left, Right:
		return d, true
	}
	return "", false
}

type Layout struct {
	// DirectionOf reports a field's effective direction. Defaults to the
	// field's own RTL flag.
	DirectionOf func(models.TemplateField) textshape.Direction

	page    Size
	fields  []models.TemplateField
	dirty   map[uuid.UUID]bool
	deleted []uuid.UUID
}

func New(t models.Template, fields []models.TemplateField) *Layout {
	fs := make([]models.TemplateField, len(fields))
	copy(fs, fields)
	sort.SliceStable(fs, func(i, j int) bool { return fs[i].SortOrder < fs[j].SortOrder })
	return &Layout{
		page:   PageSize(t),
		fields: fs,
		dirty:  map[uuid.UUID]bool{},
	}
}

func (l *Layout) Page() Size { return l.page }

func (l *Layout) index(id uuid.UUID) int {
	for i := range l.fields {
		if l.fields[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *Layout) Field(id uuid.UUID) (models.TemplateField, bool) {
	i := l.index(id)
	if i < 0 {
		return models.TemplateField{}, false
	}
	return l.fields[i], true
}

// Fields returns a copy of the fields in drawing order.
func (l *Layout) Fields() []models.TemplateField {
	out := make([]models.TemplateField, len(l.fields))
	copy(out, l.fields)
	return out
}

func (l *Layout) direction(f models.TemplateField) textshape.Direction {
	if l.DirectionOf != nil {
		return l.DirectionOf(f)
	}
	if f.IsRTL {
		return textshape.RTL
	}
	return textshape.LTR
}

// Clamp bounds a position to [0, page-MinFieldSize] on both axes.
func (l *Layout) Clamp(x, y float64) (float64, float64) {
	return clamp(x, 0, l.page.Width-MinFieldSize), clamp(y, 0, l.page.Height-MinFieldSize)
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return math.Max(lo, math.Min(v, hi))
}

func snap(v float64) float64 {
	return math.Round(v/DragGridMM) * DragGridMM
}

// DragPosition is where DragField would place a field dropped at (x, y).
func (l *Layout) DragPosition(x, y float64) (float64, float64) {
	return l.Clamp(snap(x), snap(y))
}

func (l *Layout) setPosition(i int, x, y float64) bool {
	x, y = l.Clamp(x, y)
	f := &l.fields[i]
	if f.X == x && f.Y == y {
		return false
	}
	f.X, f.Y = x, y
	l.dirty[f.ID] = true
	return true
}

// MoveField translates a field by step millimetres.
func (l *Layout) MoveField(id uuid.UUID, dir Direction, step float64) (models.TemplateField, error) {
	i := l.index(id)
	if i < 0 {
		return models.TemplateField{}, ErrFieldNotFound
	}
	x, y := l.fields[i].X, l.fields[i].Y
	switch dir {
	case Up:
		y -= step
	case Down:
		y += step
	case Left:
		x -= step
	case Right:
		x += step
	}
	l.setPosition(i, x, y)
	return l.fields[i], nil
}

// DragField places a field at an absolute position snapped to the drag
// grid. changed is false when the result equals the current position.
// Snapping happens before clamping, so on pages whose size is not a
// multiple of DragGridMM the far edge position is off the grid.
func (l *Layout) DragField(id uuid.UUID, x, y float64) (f models.TemplateField, changed bool, err error) {
	i := l.index(id)
	if i < 0 {
		return models.TemplateField{}, false, ErrFieldNotFound
	}
	changed = l.setPosition(i, snap(x), snap(y))
	return l.fields[i], changed, nil
}

// ResizeField sets a field's width, never below MinFieldWidth.
func (l *Layout) ResizeField(id uuid.UUID, width float64) (f models.TemplateField, changed bool, err error) {
	i := l.index(id)
	if i < 0 {
		return models.TemplateField{}, false, ErrFieldNotFound
	}
	width = math.Max(MinFieldWidth, width)
	fp := &l.fields[i]
	if fp.Width != nil && *fp.Width == width {
		return *fp, false, nil
	}
	fp.Width = &width
	l.dirty[fp.ID] = true
	return *fp, true, nil
}

// ResizeBy applies a horizontal pointer delta to a width captured at the
// start of a resize gesture. RTL fields grow when the pointer moves left.
func (l *Layout) ResizeBy(id uuid.UUID, startWidth, delta float64) (models.TemplateField, bool, error) {
	f, ok := l.Field(id)
	if !ok {
		return models.TemplateField{}, false, ErrFieldNotFound
	}
	return l.ResizeField(id, ResizedWidth(startWidth, delta, l.direction(f)))
}

// ResizedWidth is the width a resize gesture produces before it is applied.
func ResizedWidth(startWidth, delta float64, dir textshape.Direction) float64 {
	if dir == textshape.RTL {
		delta = -delta
	}
	return math.Max(MinFieldWidth, startWidth+delta)
}

func (l *Layout) ToggleVisibility(id uuid.UUID) (models.TemplateField, error) {
	i := l.index(id)
	if i < 0 {
		return models.TemplateField{}, ErrFieldNotFound
	}
	l.fields[i].IsVisible = !l.fields[i].IsVisible
	l.dirty[id] = true
	return l.fields[i], nil
}

func (l *Layout) DeleteField(id uuid.UUID) error {
	i := l.index(id)
	if i < 0 {
		return ErrFieldNotFound
	}
	l.fields = append(l.fields[:i], l.fields[i+1:]...)
	delete(l.dirty, id)
	l.deleted = append(l.deleted, id)
	return nil
}

// AddField appends a field after the current last one.
func (l *Layout) AddField(f models.TemplateField) models.TemplateField {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if n := len(l.fields); n > 0 && f.SortOrder <= l.fields[n-1].SortOrder {
		f.SortOrder = l.fields[n-1].SortOrder + 1
	}
	f.X, f.Y = l.Clamp(f.X, f.Y)
	if f.Width != nil && *f.Width < MinFieldWidth {
		w := MinFieldWidth
		f.Width = &w
	}
	l.fields = append(l.fields, f)
	l.dirty[f.ID] = true
	return f
}

// UpdateField replaces a field's editable properties. Position and width
// are held to the same bounds as drag and resize.
func (l *Layout) UpdateField(f models.TemplateField) (models.TemplateField, error) {
	i := l.index(f.ID)
	if i < 0 {
		return models.TemplateField{}, ErrFieldNotFound
	}
	cur := l.fields[i]
	f.TemplateID = cur.TemplateID
	f.CreatedAt = cur.CreatedAt
	f.X, f.Y = l.Clamp(f.X, f.Y)
	if f.Width != nil && *f.Width < MinFieldWidth {
		w := MinFieldWidth
		f.Width = &w
	}
	l.fields[i] = f
	if f.SortOrder != cur.SortOrder {
		sort.SliceStable(l.fields, func(a, b int) bool { return l.fields[a].SortOrder < l.fields[b].SortOrder })
	}
	l.dirty[f.ID] = true
	return f, nil
}

// Changes returns modified fields awaiting persistence, in drawing order.
func (l *Layout) Changes() []models.TemplateField {
	var out []models.TemplateField
	for _, f := range l.fields {
		if l.dirty[f.ID] {
			out = append(out, f)
		}
	}
	return out
}

func (l *Layout) Deleted() []uuid.UUID {
	return append([]uuid.UUID(nil), l.deleted...)
}

func (l *Layout) Dirty() bool { return len(l.dirty) > 0 || len(l.deleted) > 0 }

func (l *Layout) MarkSaved() {
	l.dirty = map[uuid.UUID]bool{}
	l.deleted = nil
}
