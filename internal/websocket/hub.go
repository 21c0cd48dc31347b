package websocket

import (
	"encoding/json"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Message tells a venue's clients to reload the named entity.
type Message struct {
	Type   string `json:"type"`
	Entity string `json:"entity"`
	Action string `json:"action"`
	ID     string `json:"id,omitempty"`
}

func NewMessage(entity, action, id string) Message {
	return Message{
		Type:   fmt.Sprintf("%s_%s", entity, action),
		Entity: entity,
		Action: action,
		ID:     id,
	}
}

// Hub keeps the connected clients grouped by venue.
type Hub struct {
	mu      sync.RWMutex
	clients map[int]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[int]map[*Client]struct{}),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	venueClients, ok := h.clients[c.venueId]
	if !ok {
		venueClients = make(map[*Client]struct{})
		h.clients[c.venueId] = venueClients
	}
	venueClients[c] = struct{}{}
}

// Unregister removes the client and closes its send channel. Safe to call twice.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	venueClients := h.clients[c.venueId]
	if _, ok := venueClients[c]; !ok {
		return
	}
	delete(venueClients, c)
	close(c.send)
	if len(venueClients) == 0 {
		delete(h.clients, c.venueId)
	}
}

// Broadcast sends msg to every client of the venue. Clients with a full buffer miss the message.
func (h *Hub) Broadcast(venueId int, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("failed to marshal websocket message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[venueId] {
		select {
		case c.send <- data:
		default:
			log.Debugf("dropping %s for slow client of venue %d", msg.Type, venueId)
		}
	}
}

func (h *Hub) ClientCount(venueId int) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[venueId])
}
