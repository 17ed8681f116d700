package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pedrosal/intervue/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return store
}

func sampleTranscript(id string) *Transcript {
	return &Transcript{
		ChatID:    id,
		Title:     "Algorithms round",
		CreatedAt: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
		Messages: []models.Message{
			{Role: models.RoleAssistant, Content: "Reverse a linked list."},
			{Role: models.RoleUser, Content: "Three pointers, walk and flip."},
		},
	}
}

func TestStoreSaveAndGet(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save(sampleTranscript("c1")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Get("c1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if got.ChatID != "c1" {
		t.Errorf("ChatID = %q", got.ChatID)
	}
	if len(got.Messages) != 2 {
		t.Errorf("len(Messages) = %d, want 2", len(got.Messages))
	}
	if got.SavedAt.IsZero() {
		t.Error("SavedAt should be stamped on save")
	}
}

func TestStoreSave_NoChatID(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save(&Transcript{}); err == nil {
		t.Error("transcript without a chat id should be rejected")
	}
}

func TestStoreSave_ReplacesExisting(t *testing.T) {
	store := newTestStore(t)

	first := sampleTranscript("c1")
	if err := store.Save(first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	second := sampleTranscript("c1")
	second.Finished = true
	second.Summary = json.RawMessage(`{"score":9}`)
	if err := store.Save(second); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Get("c1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !got.Finished {
		t.Error("Finished should be true after resave")
	}
	if string(got.Summary) != `{"score":9}` {
		t.Errorf("Summary = %s", got.Summary)
	}

	list, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("len(list) = %d, want 1 after resave", len(list))
	}
}

func TestStoreGet_Missing(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Get("nope"); err == nil {
		t.Error("expected error for missing transcript")
	}
}

func TestStoreList_OrderAndCorruptSkip(t *testing.T) {
	base := t.TempDir()
	store, err := NewStore(base)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	for _, id := range []string{"c1", "c2", "c3"} {
		if err := store.Save(sampleTranscript(id)); err != nil {
			t.Fatalf("Save %s failed: %v", id, err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	// A corrupt file must not break listing
	corrupt := filepath.Join(base, "transcripts", "bad.json")
	if err := os.WriteFile(corrupt, []byte("{truncated"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	list, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len(list) = %d, want 3", len(list))
	}
	if list[0].ChatID != "c3" || list[2].ChatID != "c1" {
		t.Errorf("list not sorted newest first: %s, %s, %s",
			list[0].ChatID, list[1].ChatID, list[2].ChatID)
	}
}

func TestStoreDelete(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save(sampleTranscript("c1")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Delete("c1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get("c1"); err == nil {
		t.Error("transcript should be gone after delete")
	}
	if err := store.Delete("c1"); err == nil {
		t.Error("deleting a missing transcript should error")
	}
}

func TestStoreClearAll(t *testing.T) {
	store := newTestStore(t)

	for _, id := range []string{"c1", "c2"} {
		if err := store.Save(sampleTranscript(id)); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}
	if err := store.ClearAll(); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}

	list, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("len(list) = %d, want 0", len(list))
	}
}
