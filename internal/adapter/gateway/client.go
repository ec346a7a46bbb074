// Package gateway implements the HTTP client for the platform's remote
// message service. One client acts on behalf of one authenticated user; the
// server resolves the current-user identity from the bearer token.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/lexbridge/chatsync/internal/domain"
)

// Client talks to the message API.
type Client struct {
	http *resty.Client
}

// NewClient creates a gateway client for the given API base URL and bearer
// token.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(token).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &Client{http: c}
}

// ListConversations fetches the conversation summaries for the current user,
// ordered by most recent message first.
func (c *Client) ListConversations(ctx context.Context) ([]domain.Conversation, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/messages/chats")
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("list conversations: unexpected status %d", resp.StatusCode())
	}
	var conversations []domain.Conversation
	if err := json.Unmarshal(resp.Body(), &conversations); err != nil {
		return nil, fmt.Errorf("list conversations: decode response: %w", err)
	}
	return conversations, nil
}

// FetchHistory fetches all messages between the current user and the given
// counterpart, in chronological order.
func (c *Client) FetchHistory(ctx context.Context, counterpartID int64) ([]domain.Message, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/messages/conversation/%d", counterpartID))
	if err != nil {
		return nil, fmt.Errorf("fetch history for %d: %w", counterpartID, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch history for %d: unexpected status %d", counterpartID, resp.StatusCode())
	}
	var messages []domain.Message
	if err := json.Unmarshal(resp.Body(), &messages); err != nil {
		return nil, fmt.Errorf("fetch history for %d: decode response: %w", counterpartID, err)
	}
	return messages, nil
}

type postMessageRequest struct {
	Content    string `json:"content"`
	ReceiverID int64  `json:"receiver_id"`
	CaseID     *int64 `json:"case_id,omitempty"`
}

// PostMessage persists a new message and returns the server-assigned record.
func (c *Client) PostMessage(ctx context.Context, content string, receiverID int64, caseID *int64) (*domain.Message, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(postMessageRequest{Content: content, ReceiverID: receiverID, CaseID: caseID}).
		Post("/messages")
	if err != nil {
		return nil, fmt.Errorf("post message: %w", err)
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated {
		return nil, fmt.Errorf("post message: unexpected status %d", resp.StatusCode())
	}
	var msg domain.Message
	if err := json.Unmarshal(resp.Body(), &msg); err != nil {
		return nil, fmt.Errorf("post message: decode response: %w", err)
	}
	return &msg, nil
}
