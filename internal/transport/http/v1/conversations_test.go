package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexbridge/chatsync/internal/domain"
)

type conversationsResponse struct {
	Conversations []domain.Conversation `json:"conversations"`
	ActiveID      *int64                `json:"active_id"`
}

func TestRefreshConversations(t *testing.T) {
	e := echo.New()
	h, gw := newTestHandler()
	id := createTestSession(t, e, h)

	gw.mu.Lock()
	gw.conversations = []domain.Conversation{
		{ID: 2, Name: "Alice Hart", Role: "lawyer", UnreadCount: 1},
	}
	gw.mu.Unlock()

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/"+id+"/conversations/refresh", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("session_id")
	c.SetParamValues(id)

	require.NoError(t, h.RefreshConversations(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp conversationsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Conversations, 1)
	assert.Equal(t, "Alice Hart", resp.Conversations[0].Name)
	assert.Nil(t, resp.ActiveID)
}

func TestStartConversation(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler()
	id := createTestSession(t, e, h)

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/"+id+"/conversations/start",
		strings.NewReader(`{"id": 9, "name": "Dana Cole", "avatar_url": "https://cdn.example/dana.png"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("session_id")
	c.SetParamValues(id)

	require.NoError(t, h.StartConversation(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp conversationsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Conversations, 1)
	assert.True(t, resp.Conversations[0].Provisional)
	require.NotNil(t, resp.ActiveID)
	assert.Equal(t, int64(9), *resp.ActiveID)
}

func TestSelectConversationNotFound(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler()
	id := createTestSession(t, e, h)

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/"+id+"/conversations/select",
		strings.NewReader(`{"conversation_id": 404}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("session_id")
	c.SetParamValues(id)

	require.NoError(t, h.SelectConversation(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSelectConversationNullClears(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler()
	id := createTestSession(t, e, h)

	// Start a conversation first so there is a selection to clear.
	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/"+id+"/conversations/start",
		strings.NewReader(`{"id": 9, "name": "Dana Cole"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("session_id")
	c.SetParamValues(id)
	require.NoError(t, h.StartConversation(c))

	req = httptest.NewRequest(http.MethodPost, "/v1/sessions/"+id+"/conversations/select",
		strings.NewReader(`{"conversation_id": null}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("session_id")
	c.SetParamValues(id)

	require.NoError(t, h.SelectConversation(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	sess, ok := h.sessions.Get(id)
	require.True(t, ok)
	assert.Nil(t, sess.Active())
}

func TestGetConversationsUnknownSession(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/sess_nope/conversations", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("session_id")
	c.SetParamValues("sess_nope")

	require.NoError(t, h.GetConversations(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
