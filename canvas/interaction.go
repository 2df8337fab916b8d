// Package canvas drives the interactive layout surface: pointer gestures
// that move and resize fields, and the HTML/PNG preview of a template.
package canvas

import (
	"errors"

	"github.com/google/uuid"

	"github.com/lolobelaiba-droid/graduation-guardian/layout"
	"github.com/lolobelaiba-droid/graduation-guardian/models"
	"github.com/lolobelaiba-droid/graduation-guardian/textshape"
)

// PixelsPerMM is the render scale of the canvas (96 dpi).
const PixelsPerMM = 96 / 25.4

// UnsetWidth is the width a resize starts from when a field has none.
const UnsetWidth = 60.0

type State int

const (
	Idle State = iota
	Dragging
	Resizing
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	}
	return "idle"
}

var (
	ErrBusy        = errors.New("canvas: another gesture is active")
	ErrFieldHidden = errors.New("canvas: field is hidden")
)

// Preview is the uncommitted state of the active gesture.
type Preview struct {
	State   State     `json:"-"`
	FieldID uuid.UUID `json:"field_id"`
	X       float64   `json:"x"`
	Y       float64   `json:"y"`
	Width   float64   `json:"width,omitempty"`
}

// Result reports what End committed.
type Result struct {
	Committed bool                 `json:"committed"`
	Field     models.TemplateField `json:"field"`
}

type Interaction struct {
	Scale float64

	layout *layout.Layout
	state  State

	fieldID          uuid.UUID
	originX, originY float64
	startX, startY   float64
	startWidth       float64
	dir              textshape.Direction
	preview          Preview
}

func NewInteraction(l *layout.Layout) *Interaction {
	return &Interaction{Scale: PixelsPerMM, layout: l}
}

func (in *Interaction) State() State { return in.state }

func (in *Interaction) Preview() Preview {
	p := in.preview
	p.State = in.state
	return p
}

func (in *Interaction) begin(id uuid.UUID, px, py float64, s State) error {
	if in.state != Idle {
		return ErrBusy
	}
	f, ok := in.layout.Field(id)
	if !ok {
		return layout.ErrFieldNotFound
	}
	if !f.IsVisible {
		return ErrFieldHidden
	}
	in.state = s
	in.fieldID = id
	in.originX, in.originY = px, py
	in.startX, in.startY = f.X, f.Y
	in.startWidth = UnsetWidth
	if f.Width != nil {
		in.startWidth = *f.Width
	}
	in.dir = textshape.LTR
	if f.IsRTL {
		in.dir = textshape.RTL
	}
	if in.layout.DirectionOf != nil {
		in.dir = in.layout.DirectionOf(f)
	}
	in.preview = Preview{FieldID: id, X: f.X, Y: f.Y, Width: in.startWidth}
	return nil
}

// BeginDrag starts moving a visible field from pointer position (px, py).
func (in *Interaction) BeginDrag(id uuid.UUID, px, py float64) error {
	return in.begin(id, px, py, Dragging)
}

// BeginResize starts resizing a visible field from pointer position (px, py).
func (in *Interaction) BeginResize(id uuid.UUID, px, py float64) error {
	return in.begin(id, px, py, Resizing)
}

// Move updates the live preview. It has no effect while Idle.
func (in *Interaction) Move(px, py float64) Preview {
	dx := (px - in.originX) / in.Scale
	dy := (py - in.originY) / in.Scale
	switch in.state {
	case Dragging:
		in.preview.X, in.preview.Y = in.layout.DragPosition(in.startX+dx, in.startY+dy)
	case Resizing:
		in.preview.Width = layout.ResizedWidth(in.startWidth, dx, in.dir)
	}
	return in.Preview()
}

// End commits the preview to the layout when it differs from where the
// gesture started, then returns to Idle.
func (in *Interaction) End() (Result, error) {
	defer in.reset()
	var (
		f       models.TemplateField
		changed bool
		err     error
	)
	switch in.state {
	case Dragging:
		if in.preview.X == in.startX && in.preview.Y == in.startY {
			f, _ = in.layout.Field(in.fieldID)
			return Result{Field: f}, nil
		}
		f, changed, err = in.layout.DragField(in.fieldID, in.preview.X, in.preview.Y)
	case Resizing:
		if in.preview.Width == in.startWidth {
			f, _ = in.layout.Field(in.fieldID)
			return Result{Field: f}, nil
		}
		f, changed, err = in.layout.ResizeField(in.fieldID, in.preview.Width)
	default:
		return Result{}, nil
	}
	return Result{Committed: changed, Field: f}, err
}

// Leave handles the pointer leaving the canvas. It behaves like End.
func (in *Interaction) Leave() (Result, error) { return in.End() }

// Cancel drops the active gesture without committing.
func (in *Interaction) Cancel() { in.reset() }

func (in *Interaction) reset() {
	in.state = Idle
	in.fieldID = uuid.Nil
	in.preview = Preview{}
}
