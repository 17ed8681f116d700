package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tidwall/gjson"

	apierrors "github.com/pedrosal/intervue/internal/errors"
	"github.com/pedrosal/intervue/internal/models"
)

type sendMessageRequest struct {
	Content string `json:"content"`
}

// SendMessage posts a user turn and returns the interviewer's reply text.
func (c *Client) SendMessage(ctx context.Context, chatID, text string) (string, error) {
	return c.replyAction(ctx, chatID, "/messages", sendMessageRequest{Content: text})
}

// GetHint asks the interviewer for a hint on the current question.
func (c *Client) GetHint(ctx context.Context, chatID string) (string, error) {
	return c.replyAction(ctx, chatID, "/hint", nil)
}

// GetAnswer asks the interviewer to reveal the expected answer.
func (c *Client) GetAnswer(ctx context.Context, chatID string) (string, error) {
	return c.replyAction(ctx, chatID, "/answer", nil)
}

// FinishChat ends the interview and returns the structured evaluation. The
// summary JSON is kept raw so formatting preserves the backend's field
// order.
func (c *Client) FinishChat(ctx context.Context, chatID string) (models.Summary, error) {
	endpoint := "/api/chats/" + chatID + "/finish"

	data, err := c.doJSON(ctx, http.MethodPost, endpoint, nil, nil)
	if err != nil {
		return models.Summary{}, err
	}

	if !gjson.ValidBytes(data) {
		return models.Summary{}, apierrors.NewParseError("finish response is not valid JSON", endpoint)
	}

	return models.Summary{Raw: json.RawMessage(data)}, nil
}

// replyAction posts to a chat sub-endpoint and extracts the reply field.
func (c *Client) replyAction(ctx context.Context, chatID, suffix string, body any) (string, error) {
	endpoint := "/api/chats/" + chatID + suffix

	data, err := c.doJSON(ctx, http.MethodPost, endpoint, body, nil)
	if err != nil {
		return "", err
	}

	reply := gjson.GetBytes(data, "reply")
	if !reply.Exists() {
		return "", apierrors.NewParseError("response missing reply", endpoint)
	}

	return reply.String(), nil
}
