package models

import (
	"testing"
	"time"
)

func TestChatItem_DisplayTitle(t *testing.T) {
	tests := []struct {
		name string
		item ChatItem
		want string
	}{
		{
			name: "explicit title",
			item: ChatItem{Title: "Graph traversal"},
			want: "Graph traversal",
		},
		{
			name: "untitled with timestamp",
			item: ChatItem{CreatedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)},
			want: "Interview 2026-03-14 09:30",
		},
		{
			name: "untitled without timestamp",
			item: ChatItem{},
			want: "Interview",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.DisplayTitle(); got != tt.want {
				t.Errorf("DisplayTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}
