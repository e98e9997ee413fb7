package memory

import (
	"fmt"
	"strings"
)

const (
	// DefaultMaxTurns is the number of user+assistant exchanges kept verbatim.
	DefaultMaxTurns = 4

	// maxSummaryPairs bounds how many earlier turn pairs the summary covers.
	maxSummaryPairs = 3

	// maxSummaryContentLen is the per-message character cap inside the summary.
	maxSummaryContentLen = 300
)

// ConversationContext is the windowed view of a conversation: the most recent
// messages verbatim plus a compact summary of everything before them.
// Derived, never persisted; recomputed every turn.
type ConversationContext struct {
	// Summary covers the earlier messages. Empty means absent.
	Summary string `json:"summary,omitempty"`
	// RecentMessages are the last maxTurns*2 messages in original order.
	RecentMessages []Message `json:"recent_messages"`
}

// BuildConversationContext windows a conversation history. The last
// maxTurns*2 sanitized messages are kept verbatim; the remainder is paired
// into turns and rendered into a bounded summary string. Pure function.
func BuildConversationContext(history []Message, maxTurns int) ConversationContext {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}

	sanitized := SanitizeHistory(history)
	if len(sanitized) == 0 {
		return ConversationContext{}
	}

	window := maxTurns * 2
	if len(sanitized) <= window {
		return ConversationContext{RecentMessages: sanitized}
	}

	cut := len(sanitized) - window
	earlier := sanitized[:cut]
	recent := sanitized[cut:]

	return ConversationContext{
		Summary:        summarizeTurns(pairTurns(earlier)),
		RecentMessages: recent,
	}
}

// turnPair groups one user+assistant exchange. Either half may be absent.
type turnPair struct {
	user      string
	assistant string
}

// pairTurns scans messages in order, starting a new pair whenever a user
// message arrives while the current pair already has content and closing a
// pair immediately after an assistant message.
func pairTurns(messages []Message) []turnPair {
	var pairs []turnPair
	var cur *turnPair

	for _, m := range messages {
		switch m.Role {
		case RoleUser:
			if cur != nil {
				pairs = append(pairs, *cur)
			}
			cur = &turnPair{user: condenseContent(m.Content)}
		case RoleAssistant:
			if cur == nil {
				cur = &turnPair{}
			}
			cur.assistant = condenseContent(m.Content)
			pairs = append(pairs, *cur)
			cur = nil
		}
	}
	if cur != nil {
		pairs = append(pairs, *cur)
	}
	return pairs
}

// summarizeTurns renders the last maxSummaryPairs pairs, one line each.
func summarizeTurns(pairs []turnPair) string {
	if len(pairs) == 0 {
		return ""
	}
	if len(pairs) > maxSummaryPairs {
		pairs = pairs[len(pairs)-maxSummaryPairs:]
	}

	lines := make([]string, 0, len(pairs))
	for i, p := range pairs {
		parts := make([]string, 0, 2)
		if p.user != "" {
			parts = append(parts, "U: "+p.user)
		}
		if p.assistant != "" {
			parts = append(parts, "A: "+p.assistant)
		}
		lines = append(lines, fmt.Sprintf("Turn %d: %s", i+1, strings.Join(parts, " | ")))
	}
	return strings.Join(lines, "\n")
}

// condenseContent collapses whitespace runs to single spaces and truncates
// to the summary cap. Content at exactly the cap is left untouched; longer
// content is cut to cap-1 characters plus an ellipsis marker.
func condenseContent(content string) string {
	condensed := strings.Join(strings.Fields(content), " ")
	runes := []rune(condensed)
	if len(runes) <= maxSummaryContentLen {
		return condensed
	}
	return string(runes[:maxSummaryContentLen-1]) + "…"
}
