// Package prompt composes the final ordered message list handed to the model:
// system instructions first, then history, then the newest utterance.
package prompt

import (
	"context"

	"github.com/voyago/concierge/plugin/ai"
	"github.com/voyago/concierge/plugin/ai/memory"
	"github.com/voyago/concierge/plugin/ai/router"
	"github.com/voyago/concierge/plugin/ai/tripcontext"
	"github.com/voyago/concierge/plugin/ai/traveltype"
)

// genericSystemPrompt applies when no valid travel type is known yet.
const genericSystemPrompt = `You are a friendly travel concierge. Suggest places and experiences that fit the user's situation, keep answers short and concrete, and ask one clarifying question when the request is ambiguous.`

// Params is the raw per-turn input to prompt assembly.
type Params struct {
	// Message is the newest user utterance.
	Message string
	// History is the raw prior conversation, possibly malformed.
	History []memory.Message
	// UserContext is the per-turn snapshot; its Intent field is overwritten
	// by the assembler's own classification.
	UserContext *tripcontext.UserContext
	// MaxTurns overrides the conversation window size (default 4).
	MaxTurns int
}

// Result is the assembled prompt state for one turn.
type Result struct {
	UserContext        *tripcontext.UserContext
	PromptMessages     []ai.Message
	SystemPrompt       string
	DynamicContext     string
	HistorySummary     string
	ConversationLength int
}

// Assembler wires the windower, intent classifier, and context builder.
type Assembler struct {
	intents router.IntentService
	builder *tripcontext.Builder
}

// NewAssembler creates a prompt assembler. intents must not be nil.
func NewAssembler(intents router.IntentService) *Assembler {
	return &Assembler{
		intents: intents,
		builder: tripcontext.NewBuilder(),
	}
}

// Build assembles the prompt for one turn. It never fails: malformed input
// degrades through the pipeline's safe defaults.
func (a *Assembler) Build(ctx context.Context, p Params) *Result {
	uc := p.UserContext
	if uc == nil {
		uc = &tripcontext.UserContext{}
	}

	sanitized := memory.SanitizeHistory(p.History)
	window := memory.BuildConversationContext(sanitized, p.MaxTurns)

	uc.Intent = a.intents.Classify(ctx, p.Message, window.RecentMessages)

	systemPrompt := a.resolveSystemPrompt(uc)
	dynamicContext := a.builder.Build(uc)

	messages := make([]ai.Message, 0, len(window.RecentMessages)+4)
	messages = append(messages, ai.SystemMessage(systemPrompt+"\n\n"+dynamicContext))
	if uc.Weather != nil {
		messages = append(messages, ai.SystemMessage("WEATHER_CONTEXT:\n"+FormatWeather(uc.Weather)))
	}
	if window.Summary != "" {
		messages = append(messages, ai.SystemMessage("CONVERSATION_SUMMARY:\n"+window.Summary))
	}
	for _, m := range window.RecentMessages {
		messages = append(messages, ai.Message{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, ai.UserMessage(p.Message))

	return &Result{
		UserContext:        uc,
		PromptMessages:     messages,
		SystemPrompt:       systemPrompt,
		DynamicContext:     dynamicContext,
		HistorySummary:     window.Summary,
		ConversationLength: len(sanitized),
	}
}

// resolveSystemPrompt picks the persona prompt for a valid travel type and
// the generic concierge prompt otherwise.
func (a *Assembler) resolveSystemPrompt(uc *tripcontext.UserContext) string {
	if uc.Quiz != nil && traveltype.IsValidTravelTypeCode(uc.Quiz.TravelTypeCode) {
		return traveltype.GetSystemPromptForTravelType(uc.Quiz.TravelTypeCode)
	}
	return genericSystemPrompt
}
