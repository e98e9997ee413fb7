package v1

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/voyago/concierge/plugin/ai"
	"github.com/voyago/concierge/plugin/ai/memory"
	"github.com/voyago/concierge/plugin/ai/prompt"
	"github.com/voyago/concierge/plugin/ai/router"
	"github.com/voyago/concierge/plugin/ai/tripcontext"
	"github.com/voyago/concierge/server/internal/errors"
	"github.com/voyago/concierge/server/internal/observability"
)

// BuildChatContextRequest is the per-turn input for prompt assembly.
// History is used only when no session ID is given; with a session the
// server-side history wins.
type BuildChatContextRequest struct {
	SessionID   string                   `json:"session_id,omitempty"`
	Message     string                   `json:"message"`
	History     []memory.Message         `json:"history,omitempty"`
	UserContext *tripcontext.UserContext `json:"user_context,omitempty"`
	MaxTurns    int                      `json:"max_turns,omitempty"`
}

// BuildChatContextResponse carries the assembled prompt state.
type BuildChatContextResponse struct {
	SessionID          string                `json:"session_id,omitempty"`
	SystemPrompt       string                `json:"system_prompt"`
	DynamicContext     string                `json:"dynamic_context"`
	HistorySummary     string                `json:"history_summary,omitempty"`
	ConversationLength int                   `json:"conversation_length"`
	Intent             router.Classification `json:"intent"`
	PromptMessages     []ai.Message          `json:"prompt_messages"`
}

// BuildChatContext assembles the full model input for one user turn.
// POST /api/v1/chat/context
func (s *APIV1Service) BuildChatContext(c echo.Context) error {
	const op = "chat_context"
	start := time.Now()
	s.Metrics.RecordRequest(op)

	var req BuildChatContextRequest
	if err := c.Bind(&req); err != nil {
		s.Metrics.RecordFailure(op)
		return writeError(c, errors.InvalidArgument("malformed request body"))
	}
	if strings.TrimSpace(req.Message) == "" {
		s.Metrics.RecordFailure(op)
		return writeError(c, errors.InvalidArgument("message is required"))
	}

	logger := observability.NewRequestContext(slog.Default(), op, req.SessionID)
	logger.Info("chat context build started",
		slog.Int(observability.LogFieldMessageLen, len(req.Message)))

	history := req.History
	if req.SessionID != "" {
		history = s.Sessions.History(req.SessionID)
	}

	uc := req.UserContext
	if uc == nil {
		uc = &tripcontext.UserContext{}
	}
	if len(uc.DisplayedCards) == 0 && req.SessionID != "" {
		uc.DisplayedCards = s.Cards.Cards(req.SessionID)
	}
	maxTurns := req.MaxTurns
	if maxTurns <= 0 {
		maxTurns = s.Profile.MaxTurns
	}

	result := s.Assembler.Build(c.Request().Context(), prompt.Params{
		Message:     req.Message,
		History:     history,
		UserContext: uc,
		MaxTurns:    maxTurns,
	})

	sessionID := req.SessionID
	if sessionID != "" {
		s.Sessions.Append(sessionID, memory.Message{Role: memory.RoleUser, Content: req.Message})
	}

	s.Metrics.RecordDuration(op, time.Since(start))
	logger.Info("chat context build completed",
		slog.String(observability.LogFieldIntent, string(result.UserContext.Intent.Label)),
		slog.Int64(observability.LogFieldDuration, logger.DurationMs()))
	return c.JSON(http.StatusOK, BuildChatContextResponse{
		SessionID:          sessionID,
		SystemPrompt:       result.SystemPrompt,
		DynamicContext:     result.DynamicContext,
		HistorySummary:     result.HistorySummary,
		ConversationLength: result.ConversationLength,
		Intent:             result.UserContext.Intent,
		PromptMessages:     result.PromptMessages,
	})
}

// ClassifyIntentRequest is the standalone classification input.
type ClassifyIntentRequest struct {
	Message string           `json:"message"`
	History []memory.Message `json:"history,omitempty"`
}

// ClassifyIntent runs intent classification without prompt assembly.
// POST /api/v1/intent
func (s *APIV1Service) ClassifyIntent(c echo.Context) error {
	const op = "intent"
	start := time.Now()
	s.Metrics.RecordRequest(op)

	var req ClassifyIntentRequest
	if err := c.Bind(&req); err != nil {
		s.Metrics.RecordFailure(op)
		return writeError(c, errors.InvalidArgument("malformed request body"))
	}

	result := s.Intents.Classify(c.Request().Context(), req.Message, memory.SanitizeHistory(req.History))
	if result.Method == "cache" {
		s.Metrics.RecordCacheHit()
	}

	s.Metrics.RecordDuration(op, time.Since(start))
	return c.JSON(http.StatusOK, result)
}

// CreateSessionResponse returns the freshly allocated session ID.
type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}

// CreateSession allocates a new conversation session.
// POST /api/v1/sessions
func (s *APIV1Service) CreateSession(c echo.Context) error {
	return c.JSON(http.StatusOK, CreateSessionResponse{SessionID: s.Sessions.NewSession()})
}

// SessionHistoryResponse returns the stored conversation for a session.
type SessionHistoryResponse struct {
	SessionID string           `json:"session_id"`
	Messages  []memory.Message `json:"messages"`
}

// GetSessionHistory returns a session's stored messages in order.
// GET /api/v1/sessions/:id/history
func (s *APIV1Service) GetSessionHistory(c echo.Context) error {
	sessionID := c.Param("id")
	history := s.Sessions.History(sessionID)
	if history == nil {
		return writeError(c, errors.SessionNotFound(sessionID))
	}
	return c.JSON(http.StatusOK, SessionHistoryResponse{SessionID: sessionID, Messages: history})
}

// AppendAssistantRequest carries the model reply to record against a session.
type AppendAssistantRequest struct {
	Content string `json:"content"`
}

// AppendAssistantMessage records the assistant's reply so the next turn's
// window sees it.
// POST /api/v1/sessions/:id/assistant
func (s *APIV1Service) AppendAssistantMessage(c echo.Context) error {
	var req AppendAssistantRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, errors.InvalidArgument("malformed request body"))
	}
	if strings.TrimSpace(req.Content) == "" {
		return writeError(c, errors.InvalidArgument("content is required"))
	}
	s.Sessions.Append(c.Param("id"), memory.Message{Role: memory.RoleAssistant, Content: req.Content})
	return c.NoContent(http.StatusNoContent)
}

// ClearSession discards a session, its history, and its displayed cards.
// DELETE /api/v1/sessions/:id
func (s *APIV1Service) ClearSession(c echo.Context) error {
	sessionID := c.Param("id")
	s.Sessions.Clear(sessionID)
	s.Cards.Clear(sessionID)
	return c.NoContent(http.StatusNoContent)
}

// RecordDisplayedCardsRequest carries cards shown to the user by the UI.
type RecordDisplayedCardsRequest struct {
	SessionID string                      `json:"session_id"`
	Cards     []tripcontext.DisplayedCard `json:"cards"`
}

// RecordDisplayedCardsResponse reports the tracker size after the merge.
type RecordDisplayedCardsResponse struct {
	TrackedCards int `json:"tracked_cards"`
}

// RecordDisplayedCards merges displayed place cards into the session's
// tracker so later turns can ground "that place" references. Cards are
// scoped to their session and never visible to another one.
// POST /api/v1/cards/displayed
func (s *APIV1Service) RecordDisplayedCards(c echo.Context) error {
	var req RecordDisplayedCardsRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, errors.InvalidArgument("malformed request body"))
	}
	if req.SessionID == "" {
		return writeError(c, errors.InvalidArgument("session_id is required"))
	}
	for _, card := range req.Cards {
		if card.PlaceID == "" {
			return writeError(c, errors.InvalidArgument("card place_id is required"))
		}
		s.Cards.Upsert(req.SessionID, card)
	}
	return c.JSON(http.StatusOK, RecordDisplayedCardsResponse{TrackedCards: s.Cards.Len(req.SessionID)})
}
