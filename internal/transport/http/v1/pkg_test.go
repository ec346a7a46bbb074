package v1

import (
	"context"
	"sync"
	"time"

	"github.com/lexbridge/chatsync/internal/domain"
	"github.com/lexbridge/chatsync/internal/session"
	"github.com/lexbridge/chatsync/internal/transport/ws"
)

// stubGateway is a programmable in-memory message service for handler tests.
type stubGateway struct {
	mu            sync.Mutex
	conversations []domain.Conversation
	history       map[int64][]domain.Message
	nextID        int64
}

var _ session.Gateway = (*stubGateway)(nil)

func newStubGateway() *stubGateway {
	return &stubGateway{history: make(map[int64][]domain.Message)}
}

func (g *stubGateway) ListConversations(ctx context.Context) ([]domain.Conversation, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]domain.Conversation(nil), g.conversations...), nil
}

func (g *stubGateway) FetchHistory(ctx context.Context, counterpartID int64) ([]domain.Message, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]domain.Message(nil), g.history[counterpartID]...), nil
}

func (g *stubGateway) PostMessage(ctx context.Context, content string, receiverID int64, caseID *int64) (*domain.Message, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextID++
	msg := domain.Message{
		ID:         g.nextID,
		SenderID:   1,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  time.Now(),
		CaseID:     caseID,
	}
	g.history[receiverID] = append(g.history[receiverID], msg)
	return &msg, nil
}

// newTestHandler builds a handler whose session manager dials the returned
// stub gateway.
func newTestHandler() (*Handler, *stubGateway) {
	gw := newStubGateway()
	mgr := session.NewManager(func(token string) session.Gateway {
		return gw
	})
	return NewHandler(mgr, ws.NewHub()), gw
}
