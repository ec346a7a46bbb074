// Package session implements the conversation and message synchronization
// engine: a per-user, memory-resident view of the conversation list and the
// active conversation's timeline, reconciled against the remote message
// service.
package session

import (
	"context"
	"sync"

	"github.com/lexbridge/chatsync/internal/domain"
)

// Gateway is the remote message service a session synchronizes against.
type Gateway interface {
	ListConversations(ctx context.Context) ([]domain.Conversation, error)
	FetchHistory(ctx context.Context, counterpartID int64) ([]domain.Message, error)
	PostMessage(ctx context.Context, content string, receiverID int64, caseID *int64) (*domain.Message, error)
}

// TimelineState tracks where the active conversation's history load stands.
type TimelineState string

const (
	// StateIdle means no conversation is selected.
	StateIdle TimelineState = "idle"
	// StateLoading means a history load for the active conversation is in flight.
	StateLoading TimelineState = "loading"
	// StateReady means the timeline reflects the active conversation's last load.
	StateReady TimelineState = "ready"
)

// Session holds one user's chat state. All state is memory-resident and
// rebuilt from the gateway; a session owns its registry and timeline and is
// mutated only through the operations defined here.
type Session struct {
	gateway Gateway
	userID  int64

	ctx    context.Context
	cancel context.CancelFunc

	mu            sync.Mutex
	conversations []domain.Conversation
	active        *domain.Conversation
	timeline      []domain.Message
	state         TimelineState
	refreshing    bool
	generation    uint64
	closed        bool
}

// New creates a session for the given user backed by the given gateway.
func New(userID int64, gw Gateway) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		gateway: gw,
		userID:  userID,
		ctx:     ctx,
		cancel:  cancel,
		state:   StateIdle,
	}
}

// Close disposes the session. In-flight gateway calls are cancelled and any
// late results are dropped.
func (s *Session) Close() {
	s.cancel()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// UserID returns the id of the user this session belongs to.
func (s *Session) UserID() int64 {
	return s.userID
}

// Select makes conv the active conversation, clears the timeline and starts
// loading the conversation's history in the background. Selecting nil clears
// the selection with no load.
//
// Every call bumps the session's generation counter; a history load carries
// the generation captured here and is discarded if another Select happened
// before it resolved.
func (s *Session) Select(conv *domain.Conversation) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.timeline = nil
	s.generation++
	gen := s.generation
	if conv == nil {
		s.active = nil
		s.state = StateIdle
		s.mu.Unlock()
		return
	}
	c := *conv
	s.active = &c
	s.state = StateLoading
	s.mu.Unlock()

	go s.loadTimeline(c.ID, gen)
}

// Active returns a copy of the active conversation, or nil.
func (s *Session) Active() *domain.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil
	}
	c := *s.active
	return &c
}

// Snapshot is a consistent read of the whole session state, taken under one
// lock so the conversation list, selection and timeline never disagree.
type Snapshot struct {
	Conversations []domain.Conversation `json:"conversations"`
	ActiveID      *int64                `json:"active_id,omitempty"`
	Timeline      []domain.Message      `json:"timeline"`
	TimelineState TimelineState         `json:"timeline_state"`
	Refreshing    bool                  `json:"refreshing"`
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Conversations: make([]domain.Conversation, len(s.conversations)),
		Timeline:      make([]domain.Message, len(s.timeline)),
		TimelineState: s.state,
		Refreshing:    s.refreshing,
	}
	copy(snap.Conversations, s.conversations)
	copy(snap.Timeline, s.timeline)
	if s.active != nil {
		id := s.active.ID
		snap.ActiveID = &id
	}
	return snap
}
