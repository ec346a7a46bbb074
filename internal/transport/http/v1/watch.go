package v1

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Watch upgrades the connection to a websocket and streams state-change
// notices for one session until the client disconnects.
// GET /v1/ws?session_id=...
func (h *Handler) Watch(c echo.Context) error {
	sessionID := c.QueryParam("session_id")
	if _, ok := h.sessions.Get(sessionID); !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Printf("WARN: websocket upgrade failed: %v", err)
		return nil
	}
	h.hub.Add(sessionID, conn)

	// Reads only detect the client going away; notices flow the other way.
	go func() {
		defer h.hub.Remove(sessionID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	return nil
}
