package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pedrosal/intervue/internal/history"
)

// TranscriptStore defines the archive operations the selector needs.
type TranscriptStore interface {
	List() ([]*history.Transcript, error)
}

// transcriptsLoadedMsg is sent when archived transcripts are loaded
type transcriptsLoadedMsg struct {
	transcripts []*history.Transcript
	err         error
}

// TranscriptSelectorModel lets the user pick an archived transcript.
type TranscriptSelectorModel struct {
	store TranscriptStore

	transcripts []*history.Transcript
	cursor      int

	loading   bool
	err       error
	confirmed bool
	selected  *history.Transcript

	width  int
	height int
	ready  bool
}

// NewTranscriptSelectorModel creates a new selector model
func NewTranscriptSelectorModel(store TranscriptStore) TranscriptSelectorModel {
	return TranscriptSelectorModel{
		store:   store,
		loading: true,
	}
}

// Init starts loading the archive
func (m TranscriptSelectorModel) Init() tea.Cmd {
	return m.loadTranscripts()
}

func (m TranscriptSelectorModel) loadTranscripts() tea.Cmd {
	return func() tea.Msg {
		transcripts, err := m.store.List()
		if err != nil {
			return transcriptsLoadedMsg{err: err}
		}
		return transcriptsLoadedMsg{transcripts: transcripts}
	}
}

// Update handles messages and updates the model
func (m TranscriptSelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case transcriptsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.transcripts = msg.transcripts
		}

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit

		case "up", "k":
			if len(m.transcripts) > 0 {
				m.cursor--
				if m.cursor < 0 {
					m.cursor = len(m.transcripts) - 1
				}
			}

		case "down", "j":
			if len(m.transcripts) > 0 {
				m.cursor++
				if m.cursor >= len(m.transcripts) {
					m.cursor = 0
				}
			}

		case "home", "g":
			m.cursor = 0

		case "end", "G":
			if len(m.transcripts) > 0 {
				m.cursor = len(m.transcripts) - 1
			}

		case "enter":
			if len(m.transcripts) > 0 {
				m.confirmed = true
				m.selected = m.transcripts[m.cursor]
				return m, tea.Quit
			}
		}
	}

	return m, nil
}

// View renders the selector
func (m TranscriptSelectorModel) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	if m.loading {
		return loadingStyle.Render("  Loading archive...")
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("  Error: %v", m.err))
	}

	width := m.width - 4
	if width < 40 {
		width = 40
	}

	var content strings.Builder
	content.WriteString(selectorTitleStyle.Render("Archived Interviews"))
	content.WriteString("\n\n")

	if len(m.transcripts) == 0 {
		content.WriteString(hintStyle.Render("  No archived interviews"))
		content.WriteString("\n")
	} else {
		for i, t := range m.transcripts {
			cursor := "  "
			style := selectorItemStyle
			if i == m.cursor {
				cursor = selectorCursorStyle.Render("> ")
				style = selectorSelectedStyle
			}

			title := t.Title
			if title == "" {
				title = t.ChatID
			}

			line := cursor + style.Render(title)
			line += hintStyle.Render(fmt.Sprintf(" - %d turns, %s", len(t.Messages), relativeTime(t.SavedAt)))
			content.WriteString(line)
			content.WriteString("\n")
		}
	}

	content.WriteString("\n")
	shortcuts := []string{
		statusKeyStyle.Render("up/down") + statusDescStyle.Render(" Navigate"),
		statusKeyStyle.Render("Enter") + statusDescStyle.Render(" Show"),
		statusKeyStyle.Render("Esc") + statusDescStyle.Render(" Quit"),
	}
	content.WriteString(strings.Join(shortcuts, "  |  "))

	return lipgloss.JoinVertical(lipgloss.Left, selectorPanelStyle.Width(width).Render(content.String()))
}

// Result returns the selected transcript and whether one was confirmed
func (m TranscriptSelectorModel) Result() (*history.Transcript, bool) {
	return m.selected, m.confirmed
}

// RunTranscriptSelector starts the selector TUI and returns the result
func RunTranscriptSelector(store TranscriptStore) (*history.Transcript, bool, error) {
	m := NewTranscriptSelectorModel(store)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, false, err
	}

	if sm, ok := finalModel.(TranscriptSelectorModel); ok {
		selected, confirmed := sm.Result()
		return selected, confirmed, nil
	}

	return nil, false, nil
}
