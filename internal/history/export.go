package history

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pedrosal/intervue/internal/models"
)

// ExportToMarkdown renders an archived transcript as a Markdown document.
func (s *Store) ExportToMarkdown(chatID string) (string, error) {
	t, err := s.Get(chatID)
	if err != nil {
		return "", err
	}

	var sb strings.Builder

	// Header
	title := t.Title
	if title == "" {
		title = fmt.Sprintf("Interview %s", t.ChatID)
	}
	sb.WriteString("# ")
	sb.WriteString(title)
	sb.WriteString("\n\n")

	// Metadata
	if !t.CreatedAt.IsZero() {
		sb.WriteString("**Started:** ")
		sb.WriteString(t.CreatedAt.Format("2006-01-02 15:04:05"))
		sb.WriteString("\n")
	}
	sb.WriteString("**Archived:** ")
	sb.WriteString(t.SavedAt.Format("2006-01-02 15:04:05"))
	sb.WriteString("\n")
	sb.WriteString("**Turns:** ")
	sb.WriteString(fmt.Sprintf("%d", len(t.Messages)))
	sb.WriteString("\n\n---\n\n")

	// Messages
	for _, msg := range t.Messages {
		role := "Candidate"
		if msg.Role == models.RoleAssistant {
			role = "Interviewer"
		}

		sb.WriteString("## ")
		sb.WriteString(role)
		sb.WriteString("\n\n")
		sb.WriteString(msg.Content)
		sb.WriteString("\n\n")
	}

	// Evaluation
	if len(t.Summary) > 0 {
		sb.WriteString("---\n\n## Evaluation\n\n```json\n")
		var buf bytes.Buffer
		if err := json.Indent(&buf, t.Summary, "", "  "); err == nil {
			sb.Write(buf.Bytes())
		} else {
			sb.Write(t.Summary)
		}
		sb.WriteString("\n```\n")
	}

	return sb.String(), nil
}
