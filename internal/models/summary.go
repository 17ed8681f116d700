package models

import (
	"bytes"
	"encoding/json"
)

// Summary holds the structured evaluation the backend returns when an
// interview is finished. The raw JSON is kept as-is so field order and
// unknown fields survive formatting.
type Summary struct {
	Raw json.RawMessage
}

// Text pretty-prints the summary for display as an assistant turn.
// Invalid or empty payloads fall back to the raw bytes so the user always
// sees what the backend sent.
func (s Summary) Text() string {
	if len(s.Raw) == 0 {
		return ""
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, s.Raw, "", "  "); err != nil {
		return string(s.Raw)
	}
	return buf.String()
}
