// Package router classifies user utterances into the behavior modes the
// prompt pipeline can request of the model.
package router

import (
	"context"

	"github.com/voyago/concierge/plugin/ai/memory"
)

// IntentLabel is the classified purpose of a user's message.
type IntentLabel string

const (
	// IntentInspiration: the user wants open-ended suggestions.
	IntentInspiration IntentLabel = "inspiration"
	// IntentSpecific: the user names a concrete thing to find.
	IntentSpecific IntentLabel = "specific"
	// IntentDetails: the user asks about something already shown.
	IntentDetails IntentLabel = "details"
	// IntentClarify: no clear pattern; ask the user to clarify.
	IntentClarify IntentLabel = "clarify"
)

// ValidLabel reports whether l is one of the four intent labels.
func ValidLabel(l IntentLabel) bool {
	switch l {
	case IntentInspiration, IntentSpecific, IntentDetails, IntentClarify:
		return true
	}
	return false
}

// Classification is the result of one intent classification call.
// Exactly one label per call; Clarify is the fallback.
type Classification struct {
	Label  IntentLabel `json:"label"`
	Reason string      `json:"reason"`
	Method string      `json:"method"` // "rule", "ai", or "cache"
}

// IntentService classifies messages. Implementations must never surface a
// failure: any internal error resolves to the deterministic rule path.
type IntentService interface {
	Classify(ctx context.Context, message string, history []memory.Message) Classification
}
