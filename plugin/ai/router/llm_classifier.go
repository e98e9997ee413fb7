package router

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/voyago/concierge/plugin/ai"
	"github.com/voyago/concierge/plugin/ai/memory"
)

// classificationPrompt asks the model for a strict JSON verdict.
const classificationPrompt = `You classify the intent of one message sent to a travel concierge.

The possible labels:
- inspiration: the user wants open-ended suggestions ("any ideas for tonight?")
- specific: the user names a concrete place, cuisine, or venue type to find
- details: the user asks about a place already shown in the conversation (hours, address, reviews, price)
- clarify: the message is too ambiguous to act on

Recent conversation (may be empty):
%s

Message: %s

Reply with JSON only, no prose:
{"label": "<one of the four labels>", "reason": "<one short sentence>"}`

// historyLinesForPrompt bounds how much history the classifier sees.
const historyLinesForPrompt = 4

// LLMClassifier is the optional AI classification layer. It is a
// collaborator: any failure here is expected and falls through to the rules.
type LLMClassifier struct {
	llm ai.LLMService
}

// NewLLMClassifier wraps an LLM service. A nil service yields a classifier
// whose Classify always errors, which callers treat as "AI unavailable".
func NewLLMClassifier(llm ai.LLMService) *LLMClassifier {
	return &LLMClassifier{llm: llm}
}

// Classify asks the model for an intent label. Each call is independent and
// idempotent for the same message text.
func (c *LLMClassifier) Classify(ctx context.Context, message string, history []memory.Message) (Classification, error) {
	if c.llm == nil {
		return Classification{}, fmt.Errorf("LLM service not configured")
	}

	prompt := fmt.Sprintf(classificationPrompt, formatHistory(history), message)
	response, err := c.llm.Chat(ctx, []ai.Message{ai.UserMessage(prompt)})
	if err != nil {
		return Classification{}, fmt.Errorf("AI classification call failed: %w", err)
	}

	result, err := parseClassification(response)
	if err != nil {
		return Classification{}, err
	}
	result.Method = "ai"
	return result, nil
}

func formatHistory(history []memory.Message) string {
	if len(history) == 0 {
		return "(none)"
	}
	if len(history) > historyLinesForPrompt {
		history = history[len(history)-historyLinesForPrompt:]
	}
	var sb strings.Builder
	for _, m := range history {
		sb.WriteString(m.Role)
		sb.WriteString(": ")
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

type llmVerdict struct {
	Label  string `json:"label"`
	Reason string `json:"reason"`
}

// parseClassification extracts and validates the JSON verdict, tolerating a
// markdown code fence around it.
func parseClassification(response string) (Classification, error) {
	cleaned := strings.TrimSpace(response)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		if idx := strings.LastIndex(cleaned, "```"); idx >= 0 {
			cleaned = cleaned[:idx]
		}
		cleaned = strings.TrimSpace(cleaned)
	}

	var verdict llmVerdict
	if err := json.Unmarshal([]byte(cleaned), &verdict); err != nil {
		return Classification{}, fmt.Errorf("malformed classification response: %w", err)
	}

	label := IntentLabel(strings.ToLower(strings.TrimSpace(verdict.Label)))
	if !ValidLabel(label) {
		return Classification{}, fmt.Errorf("invalid intent label %q", verdict.Label)
	}

	return Classification{Label: label, Reason: verdict.Reason}, nil
}
