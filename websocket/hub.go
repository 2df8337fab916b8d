// Package websocket keeps track of the canvas editors connected to each
// template and relays saved layout changes between them.
package websocket

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
}

type Client struct {
	UserID     uuid.UUID
	TemplateID uuid.UUID
	Conn       Conn

	mu sync.Mutex
}

// Send writes v to the client. Writes to one connection are serialised.
func (c *Client) Send(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteJSON(v)
}

// LayoutUpdate announces fields saved by another editor of a template.
type LayoutUpdate struct {
	Type       string      `json:"type"`
	TemplateID uuid.UUID   `json:"template_id"`
	UserID     uuid.UUID   `json:"user_id"`
	Fields     interface{} `json:"fields,omitempty"`
	Deleted    []uuid.UUID `json:"deleted,omitempty"`
}

type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[uuid.UUID]map[*Client]bool)}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.TemplateID]
	if !ok {
		set = make(map[*Client]bool)
		h.clients[c.TemplateID] = set
	}
	set[c] = true
	log.Printf("Canvas client registered: %s on template %s", c.UserID, c.TemplateID)
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.clients[c.TemplateID]
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.TemplateID)
	}
	log.Printf("Canvas client unregistered: %s", c.UserID)
}

// Count reports the editors connected to a template.
func (h *Hub) Count(templateID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[templateID])
}

// Broadcast sends u to every editor of its template except from. It
// returns the number of clients reached.
func (h *Hub) Broadcast(from *Client, u LayoutUpdate) int {
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients[u.TemplateID]))
	for c := range h.clients[u.TemplateID] {
		if c != from {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	n := 0
	for _, c := range targets {
		if err := c.Send(u); err != nil {
			log.Printf("Error sending layout update to %s: %v", c.UserID, err)
			continue
		}
		n++
	}
	return n
}
