package websocket

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

type recorder struct {
	got  []interface{}
	fail bool
}

func (r *recorder) WriteJSON(v interface{}) error {
	if r.fail {
		return errors.New("broken pipe")
	}
	r.got = append(r.got, v)
	return nil
}

func TestBroadcastSkipsSenderAndOtherTemplates(t *testing.T) {
	h := NewHub()
	tpl, other := uuid.New(), uuid.New()

	a := &Client{UserID: uuid.New(), TemplateID: tpl, Conn: &recorder{}}
	b := &Client{UserID: uuid.New(), TemplateID: tpl, Conn: &recorder{}}
	c := &Client{UserID: uuid.New(), TemplateID: other, Conn: &recorder{}}
	for _, cl := range []*Client{a, b, c} {
		h.Register(cl)
	}
	if h.Count(tpl) != 2 {
		t.Fatalf("Count = %d, want 2", h.Count(tpl))
	}

	n := h.Broadcast(a, LayoutUpdate{Type: "layout_saved", TemplateID: tpl})
	if n != 1 {
		t.Fatalf("reached %d clients, want 1", n)
	}
	if len(a.Conn.(*recorder).got) != 0 || len(b.Conn.(*recorder).got) != 1 || len(c.Conn.(*recorder).got) != 0 {
		t.Error("update delivered to the wrong clients")
	}
}

func TestUnregisterAndFailedWrites(t *testing.T) {
	h := NewHub()
	tpl := uuid.New()
	a := &Client{UserID: uuid.New(), TemplateID: tpl, Conn: &recorder{}}
	b := &Client{UserID: uuid.New(), TemplateID: tpl, Conn: &recorder{fail: true}}
	h.Register(a)
	h.Register(b)

	if n := h.Broadcast(nil, LayoutUpdate{TemplateID: tpl}); n != 1 {
		t.Errorf("reached %d clients, want 1", n)
	}

	h.Unregister(a)
	h.Unregister(b)
	if h.Count(tpl) != 0 {
		t.Errorf("Count = %d after unregister", h.Count(tpl))
	}
}
