package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/lexbridge/chatsync/internal/adapter/gateway"
	"github.com/lexbridge/chatsync/internal/config"
	"github.com/lexbridge/chatsync/internal/session"
	transport "github.com/lexbridge/chatsync/internal/transport/http"
	"github.com/lexbridge/chatsync/internal/transport/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load configuration
	cfg := config.Load()

	log.Printf("Starting chatsync sidecar...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Message API: %s", cfg.MessageAPIURL)

	// Sessions dial the message API with the token presented at creation.
	sessions := session.NewManager(func(token string) session.Gateway {
		return gateway.NewClient(cfg.MessageAPIURL, token, cfg.GatewayTimeout)
	})

	// Notification hub
	hub := ws.NewHub()

	// Create the local server
	server := transport.NewServer(sessions, hub)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Local API started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down chatsync...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}
	sessions.CloseAll()

	log.Println("Chatsync stopped")
}
