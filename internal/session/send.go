package session

import (
	"fmt"
	"log"
	"strings"
)

// Send posts a message to the given counterpart, appends the server-confirmed
// record to the timeline and refreshes the conversation list in the
// background so the last-message preview catches up.
//
// Blank content (after trimming) or a non-positive receiver id is a caller
// contract violation and a silent no-op: no gateway call is made and no state
// changes. On gateway failure nothing is appended and no refresh is
// triggered.
func (s *Session) Send(content string, receiverID int64, caseID *int64) error {
	if strings.TrimSpace(content) == "" || receiverID <= 0 {
		return nil
	}

	msg, err := s.gateway.PostMessage(s.ctx, content, receiverID, caseID)
	if err != nil {
		log.Printf("ERROR: failed to send message to %d: %v", receiverID, err)
		return fmt.Errorf("send message: %w", err)
	}

	s.Append(*msg)

	// Refresh already logs its own failures; a stale preview fixes itself on
	// the next refresh.
	go func() {
		_ = s.Refresh()
	}()
	return nil
}
