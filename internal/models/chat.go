package models

import (
	"fmt"
	"time"
)

// ChatItem is a session summary as returned by the chat list endpoint.
// The backend returns the list newest-first; the client preserves its order.
type ChatItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Finished  bool      `json:"finished"`
}

// DisplayTitle returns the title, falling back to a date-based label for
// sessions the backend never titled.
func (c ChatItem) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	if c.CreatedAt.IsZero() {
		return "Interview"
	}
	return fmt.Sprintf("Interview %s", c.CreatedAt.Format("2006-01-02 15:04"))
}

// Chat is a full session record including its message history.
type Chat struct {
	ChatItem
	Messages []Message `json:"messages"`
}
