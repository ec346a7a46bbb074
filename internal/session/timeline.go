package session

import (
	"log"

	"github.com/lexbridge/chatsync/internal/domain"
)

// loadTimeline fetches the message history for one counterpart and installs
// it as the timeline. gen is the generation counter captured by the Select
// that started this load; if the user selected something else in the
// meantime the result is stale and dropped.
func (s *Session) loadTimeline(counterpartID int64, gen uint64) {
	messages, err := s.gateway.FetchHistory(s.ctx, counterpartID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.generation {
		return
	}
	if err != nil {
		log.Printf("ERROR: failed to load history for conversation %d: %v", counterpartID, err)
		s.timeline = nil
	} else {
		s.timeline = messages
	}
	s.state = StateReady
}

// Append adds a message to the end of the timeline without a network call.
func (s *Session) Append(msg domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.timeline = append(s.timeline, msg)
}

// Timeline returns a copy of the current timeline.
func (s *Session) Timeline() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Message, len(s.timeline))
	copy(out, s.timeline)
	return out
}
