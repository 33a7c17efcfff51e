package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"coverbot/internal/lib/sl"
)

// Event is a WebSocket event pushed to the clients watching one session.
type Event struct {
	Type      string      `json:"type"` // bot_message, typing, widget, history_trimmed, completed, error
	SessionID string      `json:"session_id"`
	Data      interface{} `json:"data,omitempty"`
}

// Hub maintains the set of active WebSocket clients and fans events out to
// the clients subscribed to the event's session.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *Event
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	log        *slog.Logger
}

// NewHub creates a new Hub instance.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log.With(sl.Module("ws.hub")),
	}
}

// Run starts the hub's event loop. Should be called in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				h.log.Warn("marshal event", sl.Err(err))
				continue
			}
			h.mu.Lock()
			for client := range h.clients {
				if client.sessionID != event.SessionID {
					continue
				}
				select {
				case client.send <- data:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues an event for the session's clients. Never blocks the caller
// beyond the hub's buffer.
func (h *Hub) Publish(sessionID, eventType string, data interface{}) {
	select {
	case h.broadcast <- &Event{Type: eventType, SessionID: sessionID, Data: data}:
	default:
		h.log.Warn("event dropped, hub buffer full",
			slog.String("type", eventType),
			slog.String("session_id", sessionID),
		)
	}
}
