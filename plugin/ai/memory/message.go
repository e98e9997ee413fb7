// Package memory provides conversation history handling: sanitization, the
// recent-window + summary view fed into prompts, and the in-memory session
// store backing it.
package memory

import "strings"

// Message roles accepted by the pipeline.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one conversation message. Immutable once created.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SanitizeHistory drops messages with an unknown role or empty/whitespace-only
// content. The result preserves the original order.
func SanitizeHistory(history []Message) []Message {
	if len(history) == 0 {
		return nil
	}
	out := make([]Message, 0, len(history))
	for _, m := range history {
		if m.Role != RoleUser && m.Role != RoleAssistant {
			continue
		}
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		out = append(out, m)
	}
	return out
}
