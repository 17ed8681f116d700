package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	apierrors "github.com/pedrosal/intervue/internal/errors"
	"github.com/pedrosal/intervue/internal/models"
)

// ListChats fetches the session summaries, newest first as ordered by the
// backend.
func (c *Client) ListChats(ctx context.Context) ([]models.ChatItem, error) {
	data, err := c.doJSON(ctx, http.MethodGet, "/api/chats", nil, nil)
	if err != nil {
		return nil, err
	}

	var chats []models.ChatItem
	if err := json.Unmarshal(data, &chats); err != nil {
		return nil, apierrors.NewParseError("chat list is not valid JSON", "/api/chats")
	}

	return chats, nil
}

type newChatResponse struct {
	ChatID string `json:"chat_id"`
}

// NewChat creates a new interview session and returns its id. The request
// carries an idempotency key so a retried create cannot fork two sessions.
func (c *Client) NewChat(ctx context.Context) (string, error) {
	header := http.Header{}
	header.Set("Idempotency-Key", uuid.NewString())

	data, err := c.doJSON(ctx, http.MethodPost, "/api/chats", nil, header)
	if err != nil {
		return "", err
	}

	var parsed newChatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", apierrors.NewParseError("new chat response is not valid JSON", "/api/chats")
	}
	if parsed.ChatID == "" {
		return "", apierrors.NewParseError("new chat response missing chat_id", "/api/chats")
	}

	return parsed.ChatID, nil
}

// LoadChat fetches the full session record including its message history.
func (c *Client) LoadChat(ctx context.Context, id string) (*models.Chat, error) {
	data, err := c.doJSON(ctx, http.MethodGet, "/api/chats/"+id, nil, nil)
	if err != nil {
		return nil, err
	}

	var chat models.Chat
	if err := json.Unmarshal(data, &chat); err != nil {
		return nil, apierrors.NewParseError("chat record is not valid JSON", "/api/chats/"+id)
	}
	if chat.ID == "" {
		chat.ID = id
	}

	return &chat, nil
}
