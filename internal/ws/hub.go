// Package ws pushes badge activity to connected browsers. Connections are
// tracked in a registry keyed by a generated session id; broadcast walks a
// snapshot of the registry so connects and disconnects during a broadcast
// are safe.
package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Event is one activity message pushed to clients.
type Event struct {
	Type     string `json:"type"`
	UserID   string `json:"user_id,omitempty"`
	BadgeID  string `json:"badge_id,omitempty"`
	Username string `json:"username,omitempty"`
	Badge    string `json:"badge,omitempty"`
	Date     string `json:"date,omitempty"`
}

const (
	EventBadgeAwarded = "badge_awarded"
	EventBadgeRevoked = "badge_revoked"
)

// session wraps one connection with a write lock; gorilla permits only one
// concurrent writer per connection.
type session struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *session) send(event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(event)
}

type Hub struct {
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*session
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		sessions: make(map[string]*session),
	}
}

func (h *Hub) add(id string, s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[id] = s
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, id)
}

// Count reports the number of connected sessions.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Broadcast sends the event to every connected session. Send failures are
// logged and skipped; the failing session is cleaned up by its read loop.
func (h *Hub) Broadcast(event Event) {
	h.mu.Lock()
	snapshot := make([]*session, 0, len(h.sessions))
	for _, s := range h.sessions {
		snapshot = append(snapshot, s)
	}
	h.mu.Unlock()

	for _, s := range snapshot {
		if err := s.send(event); err != nil {
			log.Printf("Error broadcasting message: %v", err)
		}
	}
}

// ServeHTTP upgrades the request and parks the connection in the registry
// until the client goes away. Inbound frames carry no protocol and are
// discarded; reading them keeps the close handshake working.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	id := uuid.NewString()
	s := &session{conn: conn}
	h.add(id, s)
	defer func() {
		h.remove(id)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
