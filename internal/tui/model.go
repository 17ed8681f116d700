package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pedrosal/intervue/internal/api"
	"github.com/pedrosal/intervue/internal/config"
	apierrors "github.com/pedrosal/intervue/internal/errors"
	"github.com/pedrosal/intervue/internal/history"
	"github.com/pedrosal/intervue/internal/models"
	"github.com/pedrosal/intervue/internal/render"
)

// action identifies which conversation operation produced a reply.
type action int

const (
	actionSend action = iota
	actionHint
	actionAnswer
	actionFinish
)

// Message types for the TUI
type (
	// chatsLoadedMsg carries the session list. bootstrap marks the
	// initial fetch, which decides what to open.
	chatsLoadedMsg struct {
		chats     []models.ChatItem
		err       error
		bootstrap bool
	}
	chatCreatedMsg struct {
		chatID string
		err    error
	}
	chatOpenedMsg struct {
		chat *models.Chat
		err  error
	}
	replyMsg struct {
		action action
		reply  string
		err    error
	}
	finishedMsg struct {
		summary models.Summary
		err     error
	}
	// sessionListMsg refreshes the in-chat session overlay.
	sessionListMsg struct {
		chats []models.ChatItem
		err   error
	}
)

// chatMessage represents a message in the chat
type chatMessage struct {
	role    string // "user" or "assistant"
	content string
}

// Model represents the chat TUI state
type Model struct {
	client api.ClientInterface
	store  *history.Store // nil disables local archiving

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// Conversation state
	phases       phaseMachine
	chatID       string
	chatTitle    string
	chatFinished bool
	messages     []chatMessage
	chats        []models.ChatItem

	// Typing reveal
	revealGen      int
	rev            *reveal
	typingInterval time.Duration
	autoCopy       bool

	// Session overlay state
	selectingSession bool
	sessionCursor    int
	sessionsLoading  bool

	// Feedback
	errText    string // user-visible error panel
	statusNote string // transient status-line note ("offline", "copied")

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewChatModel creates a new chat TUI model
func NewChatModel(client api.ClientInterface, store *history.Store, cfg config.Config) Model {
	ta := textarea.New()
	ta.Placeholder = "Answer the interviewer, or type /hint, /answer, /finish..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	interval := time.Duration(cfg.TypingIntervalMs) * time.Millisecond
	if interval <= 0 {
		interval = 20 * time.Millisecond
	}

	return Model{
		client:         client,
		store:          store,
		textarea:       ta,
		spinner:        s,
		messages:       []chatMessage{},
		typingInterval: interval,
		autoCopy:       cfg.CopyToClipboard,
	}
}

// Init starts the session bootstrap: fetch the chat list once, then open
// the most recent session or create a new one.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		m.loadChats(true),
	)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if m.selectingSession {
		return m.updateSessionOverlay(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.phases.canAct() {
				return m, tea.Quit
			}

		case "ctrl+y":
			m.statusNote = m.copyLastReply()

		case "enter":
			if cmd, handled := m.handleSubmit(); handled {
				return m, tea.Batch(cmd, m.spinner.Tick)
			}
		}

	case chatsLoadedMsg:
		return m.handleChatsLoaded(msg)

	case chatCreatedMsg:
		return m.handleChatCreated(msg)

	case chatOpenedMsg:
		return m.handleChatOpened(msg)

	case replyMsg:
		return m.handleReply(msg)

	case finishedMsg:
		return m.handleFinished(msg)

	case typingTickMsg:
		return m.handleTypingTick(msg)

	case spinner.TickMsg:
		if m.phases.current() == phaseLoading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// Only pass key input to the textarea while idle, so typed text cannot
	// leak into a request in flight.
	if m.phases.canAct() {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	headerHeight := 3
	inputHeight := 5
	statusHeight := 1
	padding := 2

	vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
	if vpHeight < 5 {
		vpHeight = 5
	}

	contentWidth := m.width - 4

	if !m.ready {
		m.viewport = viewport.New(contentWidth, vpHeight)
		m.textarea.SetWidth(contentWidth - 4)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = vpHeight
		m.textarea.SetWidth(contentWidth - 4)
	}
	m.updateViewport()
}

// handleSubmit dispatches the textarea content: slash commands first, plain
// text as a send. Returns handled=false when there is nothing to do.
func (m *Model) handleSubmit() (tea.Cmd, bool) {
	input := strings.TrimSpace(m.textarea.Value())
	if input == "" {
		return nil, false
	}

	switch input {
	case "exit", "quit", "/exit", "/quit":
		return tea.Quit, true

	case "/sessions":
		if !m.phases.canAct() {
			return nil, true
		}
		m.textarea.Reset()
		m.selectingSession = true
		m.sessionsLoading = true
		m.sessionCursor = 0
		return m.loadSessionList(), true

	case "/new":
		m.textarea.Reset()
		return m.startNewChat(), true

	case "/hint":
		m.textarea.Reset()
		return m.dispatch(actionHint, ""), true

	case "/answer":
		m.textarea.Reset()
		return m.dispatch(actionAnswer, ""), true

	case "/finish":
		m.textarea.Reset()
		return m.dispatch(actionFinish, ""), true
	}

	cmd := m.dispatch(actionSend, input)
	if cmd != nil {
		// Input clears as soon as the send is accepted.
		m.textarea.Reset()
	}
	return cmd, cmd != nil
}

// startNewChat clears any visible error and requests a fresh session.
func (m *Model) startNewChat() tea.Cmd {
	if !m.phases.canAct() {
		return nil
	}
	m.errText = ""
	_ = m.phases.beginRequest()

	client := m.client
	return func() tea.Msg {
		chatID, err := client.NewChat(context.Background())
		return chatCreatedMsg{chatID: chatID, err: err}
	}
}

// dispatch runs one of the four conversation actions. It is a no-op unless
// a session is open and the panel is idle.
func (m *Model) dispatch(act action, text string) tea.Cmd {
	if m.chatID == "" || !m.phases.canAct() {
		return nil
	}
	if act == actionSend && strings.TrimSpace(text) == "" {
		return nil
	}

	m.errText = ""
	_ = m.phases.beginRequest()

	// Optimistic user turn.
	m.messages = append(m.messages, chatMessage{role: models.RoleUser, content: userTurnText(act, text)})
	m.updateViewport()
	m.viewport.GotoBottom()

	client := m.client
	chatID := m.chatID

	if act == actionFinish {
		return func() tea.Msg {
			summary, err := client.FinishChat(context.Background(), chatID)
			return finishedMsg{summary: summary, err: err}
		}
	}

	return func() tea.Msg {
		var reply string
		var err error
		switch act {
		case actionSend:
			reply, err = client.SendMessage(context.Background(), chatID, text)
		case actionHint:
			reply, err = client.GetHint(context.Background(), chatID)
		case actionAnswer:
			reply, err = client.GetAnswer(context.Background(), chatID)
		}
		return replyMsg{action: act, reply: reply, err: err}
	}
}

func userTurnText(act action, text string) string {
	switch act {
	case actionHint:
		return models.HintPrompt
	case actionAnswer:
		return models.AnswerPrompt
	case actionFinish:
		return models.FinishPrompt
	default:
		return text
	}
}

// loadChats fetches the session list. Failures are silent: bootstrap and
// list refresh only mark the status line.
func (m Model) loadChats(bootstrap bool) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		chats, err := client.ListChats(context.Background())
		return chatsLoadedMsg{chats: chats, err: err, bootstrap: bootstrap}
	}
}

func (m Model) openChat(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		chat, err := client.LoadChat(context.Background(), id)
		return chatOpenedMsg{chat: chat, err: err}
	}
}

func (m Model) loadSessionList() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		chats, err := client.ListChats(context.Background())
		return sessionListMsg{chats: chats, err: err}
	}
}

func (m Model) handleChatsLoaded(msg chatsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.statusNote = "offline"
		return m, nil
	}
	m.statusNote = ""
	m.chats = msg.chats

	if !msg.bootstrap {
		return m, nil
	}

	// Bootstrap: open the most recent session, or start fresh.
	if len(m.chats) > 0 {
		_ = m.phases.beginRequest()
		return m, m.openChat(m.chats[0].ID)
	}

	_ = m.phases.beginRequest()
	client := m.client
	return m, func() tea.Msg {
		chatID, err := client.NewChat(context.Background())
		return chatCreatedMsg{chatID: chatID, err: err}
	}
}

func (m Model) handleChatCreated(msg chatCreatedMsg) (tea.Model, tea.Cmd) {
	_ = m.phases.endRequest()
	if msg.err != nil {
		m.errText = apierrors.Detail(msg.err, "Failed to start a new interview. Please try again.")
		return m, nil
	}

	m.chatID = msg.chatID
	m.chatTitle = ""
	m.chatFinished = false
	m.messages = []chatMessage{}
	m.errText = ""
	m.updateViewport()

	// Refresh the list so the new session shows up.
	return m, m.loadChats(false)
}

func (m Model) handleChatOpened(msg chatOpenedMsg) (tea.Model, tea.Cmd) {
	_ = m.phases.endRequest()
	if msg.err != nil {
		// Open failures stay off the error panel; the previous session
		// remains current.
		m.statusNote = "offline"
		return m, nil
	}

	chat := msg.chat
	m.chatID = chat.ID
	m.chatTitle = chat.DisplayTitle()
	m.chatFinished = chat.Finished
	m.messages = make([]chatMessage, 0, len(chat.Messages))
	for _, msg := range chat.Messages {
		m.messages = append(m.messages, chatMessage{role: msg.Role, content: msg.Content})
	}
	m.statusNote = ""
	m.updateViewport()
	m.viewport.GotoBottom()

	return m, nil
}

func (m Model) handleReply(msg replyMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		_ = m.phases.endRequest()
		m.errText = apierrors.Detail(msg.err, actionErrText(msg.action))
		return m, nil
	}

	return m.startReveal(msg.reply)
}

func (m Model) handleFinished(msg finishedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		_ = m.phases.endRequest()
		m.errText = apierrors.Detail(msg.err, "Failed to finish the interview. Please try again.")
		return m, nil
	}

	m.chatFinished = true
	text := msg.summary.Text()
	m.archiveTranscript(text, msg.summary)

	model, cmd := m.startReveal(text)
	// Refetch the list so the finished flag is reflected.
	return model, tea.Batch(cmd, m.loadChats(false))
}

func actionErrText(act action) string {
	switch act {
	case actionHint:
		return "Failed to get a hint. Please try again."
	case actionAnswer:
		return "Failed to get the answer. Please try again."
	default:
		return "Failed to send message. Please try again."
	}
}

// startReveal appends an empty assistant turn and discloses text through
// timed ticks. Any reveal still in flight is superseded: its generation
// goes stale and its remaining ticks are dropped.
func (m Model) startReveal(text string) (tea.Model, tea.Cmd) {
	m.revealGen++
	if m.phases.current() != phaseLoading {
		// A superseded reveal left the machine in typing; force the
		// documented path loading->typing.
		m.phases.reset()
		_ = m.phases.beginRequest()
	}

	m.messages = append(m.messages, chatMessage{role: models.RoleAssistant})
	m.updateViewport()
	m.viewport.GotoBottom()

	if len(text) == 0 {
		_ = m.phases.endRequest()
		return m, nil
	}

	_ = m.phases.beginTyping()
	m.rev = newReveal(m.revealGen, text)
	return m, typingTick(m.revealGen, m.typingInterval)
}

func (m Model) handleTypingTick(msg typingTickMsg) (tea.Model, tea.Cmd) {
	if m.rev == nil || msg.gen != m.rev.gen {
		return m, nil // stale tick from a superseded reveal
	}

	prefix, done := m.rev.advance()
	if len(m.messages) > 0 {
		m.messages[len(m.messages)-1].content = prefix
	}
	m.updateViewport()
	m.viewport.GotoBottom()

	if done {
		m.rev = nil
		_ = m.phases.endTyping()
		if m.autoCopy {
			m.statusNote = m.copyLastReply()
		}
		return m, nil
	}

	return m, typingTick(msg.gen, m.typingInterval)
}

// archiveTranscript mirrors the finished interview into the local store.
// Best effort: archive failures never block the conversation.
func (m *Model) archiveTranscript(summaryText string, summary models.Summary) {
	if m.store == nil || m.chatID == "" {
		return
	}

	msgs := make([]models.Message, 0, len(m.messages)+1)
	for _, msg := range m.messages {
		msgs = append(msgs, models.Message{Role: msg.role, Content: msg.content})
	}
	msgs = append(msgs, models.Message{Role: models.RoleAssistant, Content: summaryText})

	t := &history.Transcript{
		ChatID:   m.chatID,
		Title:    m.chatTitle,
		Finished: true,
		Messages: msgs,
		Summary:  summary.Raw,
	}
	if err := m.store.Save(t); err != nil {
		m.statusNote = "archive failed"
	}
}

// copyLastReply copies the most recent assistant turn to the clipboard.
func (m *Model) copyLastReply() string {
	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].role == models.RoleAssistant && m.messages[i].content != "" {
			if err := clipboard.WriteAll(m.messages[i].content); err != nil {
				return "copy failed"
			}
			return "copied"
		}
	}
	return ""
}

// updateViewport refreshes the viewport content with styled messages
func (m *Model) updateViewport() {
	if !m.ready {
		return
	}

	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6

	for i, msg := range m.messages {
		if i > 0 {
			content.WriteString("\n")
		}

		if msg.role == models.RoleUser {
			label := userLabelStyle.Render("You")
			bubble := userBubbleStyle.Width(bubbleWidth).Render(msg.content)
			content.WriteString(label + "\n" + bubble)
		} else {
			label := assistantLabelStyle.Render("Interviewer")

			rendered, err := render.MarkdownWithWidth(msg.content, bubbleWidth-4)
			if err != nil {
				rendered = msg.content
			}
			rendered = strings.TrimRight(rendered, "\n")

			bubble := assistantBubbleStyle.Width(bubbleWidth).Render(rendered)
			content.WriteString(label + "\n" + bubble)
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	if m.selectingSession {
		return m.renderSessionOverlay()
	}

	var sections []string
	contentWidth := m.width - 4

	sections = append(sections, m.renderHeader(contentWidth))

	var messagesContent string
	if len(m.messages) == 0 {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent))

	var inputContent string
	if m.phases.current() == phaseLoading {
		inputContent = m.spinner.View() + loadingStyle.Render("  Interviewer is thinking...")
	} else {
		inputContent = lipgloss.JoinVertical(
			lipgloss.Left,
			inputLabelStyle.Render("You"),
			m.textarea.View(),
		)
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	sections = append(sections, m.renderStatusBar(contentWidth))

	if m.errText != "" {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("  Error: %s", m.errText)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader(width int) string {
	headerParts := []string{
		titleStyle.Render("Intervue"),
	}
	if m.chatTitle != "" {
		headerParts = append(headerParts,
			hintStyle.Render("  -  "),
			subtitleStyle.Render(m.chatTitle),
		)
	}
	if m.chatFinished {
		headerParts = append(headerParts,
			hintStyle.Render("  -  "),
			finishedBadgeStyle.Render("finished"),
		)
	}
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center, headerParts...)
	return headerStyle.Width(width).Render(headerContent)
}

func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	title := titleStyle.Width(width).Align(lipgloss.Center).Render("Welcome to Intervue")
	subtitle := hintStyle.Width(width).Align(lipgloss.Center).
		Render("The interviewer will ask you questions. Answer below, or use /hint when stuck.")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		title,
		"",
		subtitle,
		"",
	)

	contentHeight := lipgloss.Height(content)
	topPadding := (height - contentHeight) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	return strings.Repeat("\n", topPadding) + content
}

func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"/hint /answer /finish", "Actions"},
		{"/sessions", "Switch"},
		{"Esc", "Quit"},
	}

	var items []string
	for _, s := range shortcuts {
		item := lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(s.key),
			statusDescStyle.Render(" "+s.desc),
		)
		items = append(items, item)
	}

	bar := strings.Join(items, "  |  ")
	if m.statusNote != "" {
		bar += statusDescStyle.Render("  |  " + m.statusNote)
	}
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// RunChat starts the chat TUI
func RunChat(client api.ClientInterface, store *history.Store, cfg config.Config) error {
	m := NewChatModel(client, store, cfg)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
