package history

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pedrosal/intervue/internal/models"
)

func TestExportToMarkdown(t *testing.T) {
	store := newTestStore(t)

	tr := sampleTranscript("c1")
	tr.Finished = true
	tr.Summary = json.RawMessage(`{"verdict":"hire","score":8}`)
	if err := store.Save(tr); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	md, err := store.ExportToMarkdown("c1")
	if err != nil {
		t.Fatalf("ExportToMarkdown failed: %v", err)
	}

	for _, want := range []string{
		"# Algorithms round",
		"**Turns:** 2",
		"## Interviewer",
		"Reverse a linked list.",
		"## Candidate",
		"Three pointers, walk and flip.",
		"## Evaluation",
		"```json",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("export missing %q:\n%s", want, md)
		}
	}

	// Evaluation JSON is pretty-printed with field order preserved
	if !strings.Contains(md, "\"verdict\": \"hire\"") {
		t.Errorf("summary not indented:\n%s", md)
	}
	if strings.Index(md, "verdict") > strings.Index(md, "\"score\"") {
		t.Error("summary field order not preserved")
	}
}

func TestExportToMarkdown_UntitledNoSummary(t *testing.T) {
	store := newTestStore(t)

	tr := &Transcript{
		ChatID:   "c2",
		Messages: []models.Message{{Role: models.RoleUser, Content: "hi"}},
	}
	if err := store.Save(tr); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	md, err := store.ExportToMarkdown("c2")
	if err != nil {
		t.Fatalf("ExportToMarkdown failed: %v", err)
	}

	if !strings.Contains(md, "# Interview c2") {
		t.Errorf("fallback title missing:\n%s", md)
	}
	if strings.Contains(md, "## Evaluation") {
		t.Error("export should omit evaluation section when there is no summary")
	}
}

func TestExportToMarkdown_Missing(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.ExportToMarkdown("nope"); err == nil {
		t.Error("expected error for missing transcript")
	}
}
