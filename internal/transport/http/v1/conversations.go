package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lexbridge/chatsync/internal/domain"
	"github.com/lexbridge/chatsync/internal/transport/ws"
)

// GetConversations returns the session's conversation list and selection.
// GET /v1/sessions/:session_id/conversations
func (h *Handler) GetConversations(c echo.Context) error {
	sess, _, ok := h.lookup(c)
	if !ok {
		return nil
	}
	snap := sess.Snapshot()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"conversations": snap.Conversations,
		"active_id":     snap.ActiveID,
		"refreshing":    snap.Refreshing,
	})
}

// RefreshConversations re-fetches the conversation list from the message
// service and returns the reconciled state.
// POST /v1/sessions/:session_id/conversations/refresh
func (h *Handler) RefreshConversations(c echo.Context) error {
	sess, id, ok := h.lookup(c)
	if !ok {
		return nil
	}
	if err := sess.Refresh(); err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	h.hub.Notify(id, ws.ScopeConversations)

	snap := sess.Snapshot()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"conversations": snap.Conversations,
		"active_id":     snap.ActiveID,
	})
}

type selectConversationRequest struct {
	ConversationID *int64 `json:"conversation_id"`
}

// SelectConversation changes the active conversation. A null conversation_id
// clears the selection.
// POST /v1/sessions/:session_id/conversations/select
func (h *Handler) SelectConversation(c echo.Context) error {
	sess, id, ok := h.lookup(c)
	if !ok {
		return nil
	}
	var req selectConversationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if req.ConversationID == nil {
		sess.Select(nil)
		h.hub.Notify(id, ws.ScopeTimeline)
		return c.NoContent(http.StatusNoContent)
	}

	conv, found := sess.Conversation(*req.ConversationID)
	if !found {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "conversation not found"})
	}
	sess.Select(&conv)
	h.hub.Notify(id, ws.ScopeTimeline)
	return c.NoContent(http.StatusNoContent)
}

// StartConversation begins messaging a counterpart, creating a provisional
// conversation when none exists yet, and selects it.
// POST /v1/sessions/:session_id/conversations/start
func (h *Handler) StartConversation(c echo.Context) error {
	sess, id, ok := h.lookup(c)
	if !ok {
		return nil
	}
	var cp domain.Counterpart
	if err := c.Bind(&cp); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if cp.ID <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "id is required"})
	}

	sess.StartOrSelect(cp)
	h.hub.Notify(id, ws.ScopeConversations)
	h.hub.Notify(id, ws.ScopeTimeline)

	snap := sess.Snapshot()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"conversations": snap.Conversations,
		"active_id":     snap.ActiveID,
	})
}
