// Package http provides the local HTTP server serving session state to the UI.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	v1 "github.com/lexbridge/chatsync/internal/transport/http/v1"
	"github.com/lexbridge/chatsync/internal/session"
	"github.com/lexbridge/chatsync/internal/transport/ws"
)

// NewServer creates and configures the sidecar's HTTP server.
func NewServer(sessions *session.Manager, hub *ws.Hub) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Handlers
	v1Handler := v1.NewHandler(sessions, hub)

	// Register Routes
	v1Handler.RegisterRoutes(e)

	return e
}
