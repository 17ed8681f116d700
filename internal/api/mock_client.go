package api

import (
	"context"
	"fmt"

	"github.com/pedrosal/intervue/internal/models"
)

// MockClient is a configurable ClientInterface implementation for tests.
// Unset funcs fail loudly so a test cannot silently exercise the wrong
// operation.
type MockClient struct {
	ListChatsFunc   func(ctx context.Context) ([]models.ChatItem, error)
	NewChatFunc     func(ctx context.Context) (string, error)
	LoadChatFunc    func(ctx context.Context, id string) (*models.Chat, error)
	SendMessageFunc func(ctx context.Context, chatID, text string) (string, error)
	GetHintFunc     func(ctx context.Context, chatID string) (string, error)
	GetAnswerFunc   func(ctx context.Context, chatID string) (string, error)
	FinishChatFunc  func(ctx context.Context, chatID string) (models.Summary, error)

	// Call counters
	ListChatsCalls   int
	NewChatCalls     int
	LoadChatCalls    int
	SendMessageCalls int
	GetHintCalls     int
	GetAnswerCalls   int
	FinishChatCalls  int
}

var _ ClientInterface = (*MockClient)(nil)

func (m *MockClient) ListChats(ctx context.Context) ([]models.ChatItem, error) {
	m.ListChatsCalls++
	if m.ListChatsFunc == nil {
		return nil, fmt.Errorf("ListChats not configured")
	}
	return m.ListChatsFunc(ctx)
}

func (m *MockClient) NewChat(ctx context.Context) (string, error) {
	m.NewChatCalls++
	if m.NewChatFunc == nil {
		return "", fmt.Errorf("NewChat not configured")
	}
	return m.NewChatFunc(ctx)
}

func (m *MockClient) LoadChat(ctx context.Context, id string) (*models.Chat, error) {
	m.LoadChatCalls++
	if m.LoadChatFunc == nil {
		return nil, fmt.Errorf("LoadChat not configured")
	}
	return m.LoadChatFunc(ctx, id)
}

func (m *MockClient) SendMessage(ctx context.Context, chatID, text string) (string, error) {
	m.SendMessageCalls++
	if m.SendMessageFunc == nil {
		return "", fmt.Errorf("SendMessage not configured")
	}
	return m.SendMessageFunc(ctx, chatID, text)
}

func (m *MockClient) GetHint(ctx context.Context, chatID string) (string, error) {
	m.GetHintCalls++
	if m.GetHintFunc == nil {
		return "", fmt.Errorf("GetHint not configured")
	}
	return m.GetHintFunc(ctx, chatID)
}

func (m *MockClient) GetAnswer(ctx context.Context, chatID string) (string, error) {
	m.GetAnswerCalls++
	if m.GetAnswerFunc == nil {
		return "", fmt.Errorf("GetAnswer not configured")
	}
	return m.GetAnswerFunc(ctx, chatID)
}

func (m *MockClient) FinishChat(ctx context.Context, chatID string) (models.Summary, error) {
	m.FinishChatCalls++
	if m.FinishChatFunc == nil {
		return models.Summary{}, fmt.Errorf("FinishChat not configured")
	}
	return m.FinishChatFunc(ctx, chatID)
}
