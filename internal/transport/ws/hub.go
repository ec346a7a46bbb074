// Package ws pushes state-change hints to connected UIs. The engine itself
// emits nothing; handlers call Notify after a mutating operation and the UI
// re-reads session state over the v1 API.
package ws

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Notice tells a UI which part of its session state went stale.
type Notice struct {
	SessionID string `json:"session_id"`
	Scope     string `json:"scope"`
}

// Scopes a Notice can carry.
const (
	ScopeConversations = "conversations"
	ScopeTimeline      = "timeline"
)

// Hub tracks websocket connections per session.
type Hub struct {
	mu    sync.Mutex
	conns map[string]map[*websocket.Conn]bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[string]map[*websocket.Conn]bool)}
}

// Add registers a connection for the given session.
func (h *Hub) Add(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[sessionID]; !ok {
		h.conns[sessionID] = make(map[*websocket.Conn]bool)
	}
	h.conns[sessionID][conn] = true
}

// Remove unregisters and closes a connection.
func (h *Hub) Remove(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	if set, ok := h.conns[sessionID]; ok {
		delete(set, conn)
		if len(set) == 0 {
			delete(h.conns, sessionID)
		}
	}
	h.mu.Unlock()
	conn.Close()
}

// Notify sends a Notice to every connection watching the session. Dead
// connections are dropped.
func (h *Hub) Notify(sessionID, scope string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.conns[sessionID]
	if !ok {
		return
	}
	notice := Notice{SessionID: sessionID, Scope: scope}
	for conn := range set {
		if err := conn.WriteJSON(notice); err != nil {
			log.Printf("WARN: dropping websocket for session %s: %v", sessionID, err)
			delete(set, conn)
			conn.Close()
		}
	}
	if len(set) == 0 {
		delete(h.conns, sessionID)
	}
}

// CloseSession drops every connection watching the session.
func (h *Hub) CloseSession(sessionID string) {
	h.mu.Lock()
	set := h.conns[sessionID]
	delete(h.conns, sessionID)
	h.mu.Unlock()

	for conn := range set {
		conn.Close()
	}
}
