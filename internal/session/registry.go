package session

import (
	"fmt"
	"log"

	"github.com/lexbridge/chatsync/internal/domain"
)

// Refresh replaces the conversation list with the server's view.
//
// Reconciliation rules:
//   - A confirmed record from the server replaces any provisional record with
//     the same id; exactly one conversation per counterpart survives.
//   - Provisional conversations the server has not confirmed yet are kept and
//     prepended so they stay visible (and, if active, selected).
//   - If the active conversation's id is in the fetched set, the active
//     reference is swapped for the fetched record so it picks up the latest
//     preview and unread count.
//
// On gateway failure the previous list is left untouched and the error is
// returned; there is no retry.
func (s *Session) Refresh() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.refreshing = true
	s.mu.Unlock()

	fetched, err := s.gateway.ListConversations(s.ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshing = false
	if s.closed {
		return nil
	}
	if err != nil {
		log.Printf("ERROR: failed to refresh conversations for user %d: %v", s.userID, err)
		return fmt.Errorf("refresh conversations: %w", err)
	}

	confirmed := make(map[int64]int, len(fetched))
	for i := range fetched {
		confirmed[fetched[i].ID] = i
	}

	merged := make([]domain.Conversation, 0, len(fetched))
	for _, c := range s.conversations {
		if c.Provisional {
			if _, ok := confirmed[c.ID]; !ok {
				merged = append(merged, c)
			}
		}
	}
	merged = append(merged, fetched...)
	s.conversations = merged

	if s.active != nil {
		if i, ok := confirmed[s.active.ID]; ok {
			c := fetched[i]
			s.active = &c
		}
	}
	return nil
}

// StartOrSelect begins messaging the given counterpart. If a conversation
// with them already exists, confirmed or provisional, it is selected without
// creating a duplicate. Otherwise a provisional conversation is prepended to
// the list and selected; it stays provisional until a refresh returns its id.
func (s *Session) StartOrSelect(cp domain.Counterpart) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	for i := range s.conversations {
		if s.conversations[i].ID == cp.ID {
			existing := s.conversations[i]
			s.mu.Unlock()
			s.Select(&existing)
			return
		}
	}
	conv := domain.Conversation{
		ID:          cp.ID,
		Name:        cp.Name,
		Role:        cp.Role,
		AvatarURL:   cp.AvatarURL,
		UnreadCount: 0,
		Provisional: true,
	}
	s.conversations = append([]domain.Conversation{conv}, s.conversations...)
	s.mu.Unlock()

	s.Select(&conv)
}

// Conversation looks up a conversation by counterpart id.
func (s *Session) Conversation(id int64) (domain.Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.conversations {
		if s.conversations[i].ID == id {
			return s.conversations[i], true
		}
	}
	return domain.Conversation{}, false
}
