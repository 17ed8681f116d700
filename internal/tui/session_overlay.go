package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// updateSessionOverlay handles updates while the session list overlay is
// open. The first entry is always "+ New interview"; the rest mirror the
// backend's list order.
func (m Model) updateSessionOverlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case sessionListMsg:
		m.sessionsLoading = false
		if msg.err != nil {
			// Same policy as the list refresh: silent, status line only.
			m.selectingSession = false
			m.statusNote = "offline"
		} else {
			m.chats = msg.chats
			// The cursor may have moved over the stale list; keep it inside
			// the new one.
			if m.sessionCursor > len(m.chats) {
				m.sessionCursor = len(m.chats)
			}
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			m.selectingSession = false
			m.sessionCursor = 0

		case "up", "k":
			m.sessionCursor--
			if m.sessionCursor < 0 {
				m.sessionCursor = len(m.chats)
			}

		case "down", "j":
			m.sessionCursor++
			if m.sessionCursor > len(m.chats) {
				m.sessionCursor = 0
			}

		case "enter":
			if m.sessionsLoading {
				return m, nil
			}
			m.selectingSession = false

			if m.sessionCursor == 0 {
				return m, m.startNewChat()
			}

			selected := m.chats[m.sessionCursor-1]
			m.sessionCursor = 0
			if selected.ID == m.chatID {
				return m, nil
			}
			_ = m.phases.beginRequest()
			return m, m.openChat(selected.ID)
		}
	}

	return m, nil
}

// renderSessionOverlay renders the session list overlay
func (m Model) renderSessionOverlay() string {
	width := m.width - 8
	if width < 40 {
		width = 40
	}

	var content strings.Builder

	content.WriteString(selectorTitleStyle.Render("Interview Sessions"))
	content.WriteString("\n\n")

	if m.sessionsLoading {
		content.WriteString(loadingStyle.Render("  Loading sessions..."))
	} else {
		content.WriteString(m.renderSessionItems(width))
	}

	content.WriteString("\n")

	shortcuts := []string{
		statusKeyStyle.Render("up/down") + statusDescStyle.Render(" Navigate"),
		statusKeyStyle.Render("Enter") + statusDescStyle.Render(" Open"),
		statusKeyStyle.Render("Esc") + statusDescStyle.Render(" Cancel"),
	}
	content.WriteString(strings.Join(shortcuts, "  |  "))

	return selectorPanelStyle.Width(width).Render(content.String())
}

func (m Model) renderSessionItems(width int) string {
	var items []string

	items = append(items, m.renderSessionItem(0, "+ New interview", "", false))

	if len(m.chats) == 0 {
		items = append(items, hintStyle.Render("  No previous sessions"))
	} else {
		// Window the list around the cursor.
		maxItems := 8
		startIdx := 0
		if m.sessionCursor >= maxItems {
			startIdx = m.sessionCursor - maxItems + 1
		}
		endIdx := startIdx + maxItems
		if endIdx > len(m.chats) {
			endIdx = len(m.chats)
		}

		if startIdx > 0 {
			items = append(items, hintStyle.Render("  ..."))
		}

		for i := startIdx; i < endIdx; i++ {
			chat := m.chats[i]
			items = append(items, m.renderSessionItem(i+1, chat.DisplayTitle(), relativeTime(chat.CreatedAt), chat.Finished))
		}

		if endIdx < len(m.chats) {
			items = append(items, hintStyle.Render("  ..."))
		}
	}

	return strings.Join(items, "\n")
}

func (m Model) renderSessionItem(index int, title, timeStr string, finished bool) string {
	cursor := "  "
	style := selectorItemStyle
	if index == m.sessionCursor {
		cursor = selectorCursorStyle.Render("> ")
		style = selectorSelectedStyle
	}

	line := cursor + style.Render(title)
	if timeStr != "" {
		line += hintStyle.Render(fmt.Sprintf(" - %s", timeStr))
	}
	if finished {
		line += finishedBadgeStyle.Render(" [finished]")
	}
	return line
}

// relativeTime formats a timestamp the way the session list shows it.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	diff := time.Since(t)
	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}
