// Package models defines the data types shared between the API client and the TUI.
package models

// Message roles as used by the backend.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Synthetic user-turn text shown when an action shortcut is used instead of
// typed input. The backend receives the action, not this text; it exists so
// the transcript reads naturally.
const (
	HintPrompt   = "Give me a hint."
	AnswerPrompt = "Show me the answer."
	FinishPrompt = "Finish the interview and evaluate me."
)

// Message represents a single turn in a conversation.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}
