package canvas

import (
	"context"

	"github.com/google/uuid"

	"github.com/lolobelaiba-droid/graduation-guardian/layout"
	"github.com/lolobelaiba-droid/graduation-guardian/models"
)

// Event types a canvas client sends.
const (
	EventDragStart   = "drag_start"
	EventResizeStart = "resize_start"
	EventMove        = "move"
	EventEnd         = "end"
	EventLeave       = "leave"
	EventCancel      = "cancel"
	EventNudge       = "nudge"
	EventToggle      = "toggle"
	EventSave        = "save"
)

// Reply types.
const (
	ReplyPreview   = "preview"
	ReplyCommitted = "committed"
	ReplyUnchanged = "unchanged"
	ReplyIdle      = "idle"
	ReplySaved     = "saved"
	ReplyError     = "error"
)

type Event struct {
	Type      string    `json:"type"`
	FieldID   uuid.UUID `json:"field_id,omitempty"`
	X         float64   `json:"x,omitempty"`
	Y         float64   `json:"y,omitempty"`
	Direction string    `json:"direction,omitempty"`
	Step      float64   `json:"step,omitempty"`
}

type Reply struct {
	Type    string                `json:"type"`
	Preview *Preview              `json:"preview,omitempty"`
	Field   *models.TemplateField `json:"field,omitempty"`
	Saved   int                   `json:"saved,omitempty"`
	Error   string                `json:"error,omitempty"`
}

// SaveFunc persists the layout's pending changes.
type SaveFunc func(ctx context.Context, changed []models.TemplateField, deleted []uuid.UUID) error

// Session is one client's editing session over a template layout.
type Session struct {
	Layout      *layout.Layout
	Interaction *Interaction
	save        SaveFunc
}

func NewSession(l *layout.Layout, save SaveFunc) *Session {
	return &Session{Layout: l, Interaction: NewInteraction(l), save: save}
}

func errorReply(err error) Reply { return Reply{Type: ReplyError, Error: err.Error()} }

func (s *Session) Handle(ctx context.Context, ev Event) Reply {
	switch ev.Type {
	case EventDragStart, EventResizeStart:
		var err error
		if ev.Type == EventDragStart {
			err = s.Interaction.BeginDrag(ev.FieldID, ev.X, ev.Y)
		} else {
			err = s.Interaction.BeginResize(ev.FieldID, ev.X, ev.Y)
		}
		if err != nil {
			return errorReply(err)
		}
		p := s.Interaction.Preview()
		return Reply{Type: ReplyPreview, Preview: &p}

	case EventMove:
		if s.Interaction.State() == Idle {
			return Reply{Type: ReplyIdle}
		}
		p := s.Interaction.Move(ev.X, ev.Y)
		return Reply{Type: ReplyPreview, Preview: &p}

	case EventEnd, EventLeave:
		if s.Interaction.State() == Idle {
			return Reply{Type: ReplyIdle}
		}
		res, err := s.Interaction.End()
		if err != nil {
			return errorReply(err)
		}
		return committed(res.Committed, res.Field)

	case EventCancel:
		s.Interaction.Cancel()
		return Reply{Type: ReplyIdle}

	case EventNudge:
		dir, ok := layout.ParseDirection(ev.Direction)
		if !ok {
			return Reply{Type: ReplyError, Error: "invalid direction"}
		}
		step := ev.Step
		if step <= 0 {
			step = 1
		}
		before, _ := s.Layout.Field(ev.FieldID)
		f, err := s.Layout.MoveField(ev.FieldID, dir, step)
		if err != nil {
			return errorReply(err)
		}
		return committed(f.X != before.X || f.Y != before.Y, f)

	case EventToggle:
		f, err := s.Layout.ToggleVisibility(ev.FieldID)
		if err != nil {
			return errorReply(err)
		}
		return committed(true, f)

	case EventSave:
		changed, deleted := s.Layout.Changes(), s.Layout.Deleted()
		if s.save != nil && (len(changed) > 0 || len(deleted) > 0) {
			if err := s.save(ctx, changed, deleted); err != nil {
				return errorReply(err)
			}
		}
		s.Layout.MarkSaved()
		return Reply{Type: ReplySaved, Saved: len(changed) + len(deleted)}
	}
	return Reply{Type: ReplyError, Error: "unknown event type"}
}

func committed(changed bool, f models.TemplateField) Reply {
	if !changed {
		return Reply{Type: ReplyUnchanged, Field: &f}
	}
	return Reply{Type: ReplyCommitted, Field: &f}
}
