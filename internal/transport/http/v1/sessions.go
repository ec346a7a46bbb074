package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type createSessionRequest struct {
	UserID int64  `json:"user_id"`
	Token  string `json:"token"`
}

type createSessionResponse struct {
	SessionID string `json:"session_id"`
}

// CreateSession opens a chat session for an authenticated user.
// POST /v1/sessions
func (h *Handler) CreateSession(c echo.Context) error {
	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.UserID <= 0 || req.Token == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_id and token are required"})
	}

	id, _ := h.sessions.Create(req.UserID, req.Token)
	return c.JSON(http.StatusCreated, createSessionResponse{SessionID: id})
}

// DeleteSession disposes a chat session.
// DELETE /v1/sessions/:session_id
func (h *Handler) DeleteSession(c echo.Context) error {
	id := c.Param("session_id")
	if !h.sessions.Dispose(id) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
	}
	h.hub.CloseSession(id)
	return c.NoContent(http.StatusNoContent)
}
