// Package v1 provides the HTTP handlers for the sidecar's local API.
package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lexbridge/chatsync/internal/session"
	"github.com/lexbridge/chatsync/internal/transport/ws"
)

// Handler handles HTTP requests.
type Handler struct {
	sessions *session.Manager
	hub      *ws.Hub
}

// NewHandler creates a new handler.
func NewHandler(sessions *session.Manager, hub *ws.Hub) *Handler {
	return &Handler{
		sessions: sessions,
		hub:      hub,
	}
}

// RegisterRoutes registers the local API routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Session lifecycle
	e.POST("/v1/sessions", h.CreateSession)
	e.DELETE("/v1/sessions/:session_id", h.DeleteSession)

	// Conversation list
	e.GET("/v1/sessions/:session_id/conversations", h.GetConversations)
	e.POST("/v1/sessions/:session_id/conversations/refresh", h.RefreshConversations)
	e.POST("/v1/sessions/:session_id/conversations/select", h.SelectConversation)
	e.POST("/v1/sessions/:session_id/conversations/start", h.StartConversation)

	// Active timeline
	e.GET("/v1/sessions/:session_id/timeline", h.GetTimeline)
	e.POST("/v1/sessions/:session_id/messages", h.SendMessage)

	// Notification stream
	e.GET("/v1/ws", h.Watch)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// lookup resolves the session named in the path, writing a 404 when it is
// unknown.
func (h *Handler) lookup(c echo.Context) (*session.Session, string, bool) {
	id := c.Param("session_id")
	sess, ok := h.sessions.Get(id)
	if !ok {
		_ = c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
		return nil, id, false
	}
	return sess, id, true
}
