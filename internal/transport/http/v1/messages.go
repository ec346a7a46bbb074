package v1

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lexbridge/chatsync/internal/transport/ws"
)

// GetTimeline returns the active conversation's messages and load state.
// GET /v1/sessions/:session_id/timeline
func (h *Handler) GetTimeline(c echo.Context) error {
	sess, _, ok := h.lookup(c)
	if !ok {
		return nil
	}
	snap := sess.Snapshot()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"messages": snap.Timeline,
		"state":    snap.TimelineState,
	})
}

type sendMessageRequest struct {
	Content    string `json:"content"`
	ReceiverID int64  `json:"receiver_id"`
	CaseID     *int64 `json:"case_id,omitempty"`
}

// SendMessage posts a message through the session's send pipeline.
// POST /v1/sessions/:session_id/messages
func (h *Handler) SendMessage(c echo.Context) error {
	sess, id, ok := h.lookup(c)
	if !ok {
		return nil
	}
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Content) == "" || req.ReceiverID <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "content and receiver_id are required"})
	}

	if err := sess.Send(req.Content, req.ReceiverID, req.CaseID); err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	h.hub.Notify(id, ws.ScopeTimeline)

	snap := sess.Snapshot()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"messages": snap.Timeline,
		"state":    snap.TimelineState,
	})
}
