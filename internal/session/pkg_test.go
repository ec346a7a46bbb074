package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lexbridge/chatsync/internal/domain"
)

// fakeGateway is an in-memory stand-in for the remote message service.
// History fetches can be gated per counterpart so tests control the order in
// which in-flight loads resolve.
type fakeGateway struct {
	mu sync.Mutex

	conversations []domain.Conversation
	history       map[int64][]domain.Message
	historyGate   map[int64]chan struct{}

	listErr    error
	historyErr error
	postErr    error

	listCalls int
	postCalls int
	nextID    int64
}

var _ Gateway = (*fakeGateway)(nil)

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		history:     make(map[int64][]domain.Message),
		historyGate: make(map[int64]chan struct{}),
	}
}

func (g *fakeGateway) ListConversations(ctx context.Context) ([]domain.Conversation, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listCalls++
	if g.listErr != nil {
		return nil, g.listErr
	}
	return append([]domain.Conversation(nil), g.conversations...), nil
}

func (g *fakeGateway) FetchHistory(ctx context.Context, counterpartID int64) ([]domain.Message, error) {
	g.mu.Lock()
	gate := g.historyGate[counterpartID]
	g.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.historyErr != nil {
		return nil, g.historyErr
	}
	return append([]domain.Message(nil), g.history[counterpartID]...), nil
}

func (g *fakeGateway) PostMessage(ctx context.Context, content string, receiverID int64, caseID *int64) (*domain.Message, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.postCalls++
	if g.postErr != nil {
		return nil, g.postErr
	}
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

	// The server's chat list reflects the new message immediately.
	found := false
	for i := range g.conversations {
		if g.conversations[i].ID == receiverID {
			g.conversations[i].LastMessage = content
			t := msg.CreatedAt
			g.conversations[i].LastMessageTime = &t
			found = true
		}
	}
	if !found {
		t := msg.CreatedAt
		g.conversations = append([]domain.Conversation{{
			ID:              receiverID,
			Name:            fmt.Sprintf("user-%d", receiverID),
			LastMessage:     content,
			LastMessageTime: &t,
		}}, g.conversations...)
	}
	return &msg, nil
}

// gateHistory makes FetchHistory for the given counterpart block until the
// returned channel is closed.
func (g *fakeGateway) gateHistory(counterpartID int64) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	gate := make(chan struct{})
	g.historyGate[counterpartID] = gate
	return gate
}

func (g *fakeGateway) callCounts() (list, post int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.listCalls, g.postCalls
}

func testMessage(content string) domain.Message {
	return domain.Message{SenderID: 1, ReceiverID: 2, Content: content, CreatedAt: time.Now()}
}
