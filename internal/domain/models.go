// Package domain defines the core domain models for the chat sync engine.
package domain

import "time"

// Conversation represents the messaging relationship with one counterpart.
// Its ID is the counterpart's user id; the platform keeps exactly one
// conversation per counterpart.
type Conversation struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email,omitempty"`
	Role            string     `json:"role,omitempty"`
	AvatarURL       string     `json:"profile_image_url,omitempty"`
	LastMessage     string     `json:"last_message,omitempty"`
	LastMessageTime *time.Time `json:"last_message_time,omitempty"`
	UnreadCount     int        `json:"unread_count"`

	// Provisional marks a conversation created locally before the server has
	// any record of exchanged messages with that counterpart. It is cleared
	// when a refresh returns the counterpart's id.
	Provisional bool `json:"provisional,omitempty"`
}

// Message represents a single directed message between two users.
type Message struct {
	ID         int64     `json:"id"`
	SenderID   int64     `json:"sender_id"`
	ReceiverID int64     `json:"receiver_id"`
	Content    string    `json:"content"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
	CaseID     *int64    `json:"case_id,omitempty"`
}

// Counterpart carries the display fields needed to start a conversation with
// a user before any message has been exchanged.
type Counterpart struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}
