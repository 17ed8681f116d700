// Package history provides a local archive of interview transcripts.
//
// The backend owns the sessions; this store only mirrors what the client
// has seen, so finished interviews stay readable offline and exportable.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/pedrosal/intervue/internal/models"
)

// Transcript is a locally archived copy of one interview session.
type Transcript struct {
	ChatID    string           `json:"chat_id"`
	Title     string           `json:"title"`
	CreatedAt time.Time        `json:"created_at"`
	SavedAt   time.Time        `json:"saved_at"`
	Finished  bool             `json:"finished"`
	Messages  []models.Message `json:"messages"`
	// Summary is the backend's evaluation object, kept raw.
	Summary json.RawMessage `json:"summary,omitempty"`
}

// Store manages transcript persistence
type Store struct {
	baseDir string
	mu      sync.RWMutex
}

// NewStore creates a new transcript store rooted at baseDir
func NewStore(baseDir string) (*Store, error) {
	transcriptsDir := filepath.Join(baseDir, "transcripts")
	if err := os.MkdirAll(transcriptsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create transcripts directory: %w", err)
	}

	return &Store{
		baseDir: transcriptsDir,
	}, nil
}

// DefaultStore creates a store under the user's config directory
func DefaultStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewStore(filepath.Join(home, ".intervue"))
}

// Save writes a transcript, replacing any previous copy of the same chat
func (s *Store) Save(t *Transcript) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ChatID == "" {
		return fmt.Errorf("transcript has no chat id")
	}
	t.SavedAt = time.Now()

	return s.saveTranscript(t)
}

// Get retrieves a transcript by chat id
func (s *Store) Get(chatID string) (*Transcript, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loadTranscript(chatID)
}

// List returns all transcripts, most recently saved first
func (s *Store) List() ([]*Transcript, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcripts directory: %w", err)
	}

	var transcripts []*Transcript
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		id := entry.Name()[:len(entry.Name())-5] // Remove .json
		t, err := s.loadTranscript(id)
		if err != nil {
			continue // Skip corrupted files
		}
		transcripts = append(transcripts, t)
	}

	sort.Slice(transcripts, func(i, j int) bool {
		return transcripts[i].SavedAt.After(transcripts[j].SavedAt)
	})

	return transcripts, nil
}

// Delete removes a transcript
func (s *Store) Delete(chatID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.transcriptPath(chatID)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("transcript not found: %s", chatID)
		}
		return fmt.Errorf("failed to delete transcript: %w", err)
	}

	return nil
}

// ClearAll deletes all transcripts
func (s *Store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return fmt.Errorf("failed to read transcripts directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		path := filepath.Join(s.baseDir, entry.Name())
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to delete %s: %w", entry.Name(), err)
		}
	}

	return nil
}

// Internal methods

func (s *Store) transcriptPath(chatID string) string {
	return filepath.Join(s.baseDir, chatID+".json")
}

func (s *Store) loadTranscript(chatID string) (*Transcript, error) {
	path := s.transcriptPath(chatID)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("transcript not found: %s", chatID)
		}
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}

	var t Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse transcript: %w", err)
	}

	return &t, nil
}

func (s *Store) saveTranscript(t *Transcript) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal transcript: %w", err)
	}

	path := s.transcriptPath(t.ChatID)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}

	return nil
}
