package ws

import (
	"encoding/json"
	"sync"
)

// Event represents a WebSocket message to be pushed to the browser
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// sessionEvent is an internal struct for routing events to one console session
type sessionEvent struct {
	SessionID string
	Event     Event
}

// Hub maintains the set of active clients and pushes events to them.
// Each console session gets its own room so a toast only reaches the tabs
// of the user who triggered it.
type Hub struct {
	// Registered clients by console session ID
	rooms map[string]map[*Client]bool

	// Inbound messages from clients (register/unregister)
	register   chan *Client
	unregister chan *Client

	// Outbound messages to broadcast
	broadcast chan *sessionEvent

	// Mutex for thread-safe room access
	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *sessionEvent, 256),
	}
}

// Run starts the hub's main loop
// This should be called as a goroutine: go hub.Run()
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.sessionID] == nil {
				h.rooms[client.sessionID] = make(map[*Client]bool)
			}
			h.rooms[client.sessionID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.sessionID]; ok {
				if _, exists := clients[client]; exists {
					delete(clients, client)
					close(client.send)
					// Clean up empty rooms
					if len(clients) == 0 {
						delete(h.rooms, client.sessionID)
					}
				}
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.Lock()
			clients := h.rooms[event.SessionID]

			// Marshal event to JSON once
			message, err := json.Marshal(event.Event)
			if err != nil {
				h.mu.Unlock()
				continue
			}

			// Send to every tab open under this session
			for client := range clients {
				select {
				case client.send <- message:
				default:
					// Client's send buffer is full, close and unregister
					close(client.send)
					delete(h.rooms[event.SessionID], client)
					if len(h.rooms[event.SessionID]) == 0 {
						delete(h.rooms, event.SessionID)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToSession sends an event to all clients of one console session.
// This is the public API for the notification bridge.
func (h *Hub) BroadcastToSession(sessionID string, event Event) {
	h.broadcast <- &sessionEvent{
		SessionID: sessionID,
		Event:     event,
	}
}
