package v1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voyago/concierge/internal/profile"
	"github.com/voyago/concierge/plugin/ai"
	"github.com/voyago/concierge/plugin/ai/memory"
	"github.com/voyago/concierge/plugin/ai/prompt"
	"github.com/voyago/concierge/plugin/ai/router"
	"github.com/voyago/concierge/plugin/ai/tripcontext"
	"github.com/voyago/concierge/server/internal/errors"
	"github.com/voyago/concierge/server/internal/observability"
)

// APIV1Service exposes the prompt pipeline over HTTP.
type APIV1Service struct {
	Profile   *profile.Profile
	Intents   router.IntentService
	Assembler *prompt.Assembler
	Sessions  *memory.SessionStore
	Cards     *tripcontext.CardStore
	Metrics   *observability.Metrics
}

// NewAPIV1Service wires the pipeline from the profile. The AI classification
// layer is attached only when the profile enables it and carries an API key;
// otherwise the deterministic rule path serves alone.
func NewAPIV1Service(p *profile.Profile) *APIV1Service {
	var llm ai.LLMService
	if p.IsAIIntentEnabled() {
		cfg := ai.DefaultLLMConfig()
		cfg.APIKey = p.AIOpenAIAPIKey
		cfg.BaseURL = p.AIOpenAIBaseURL
		cfg.Model = p.AILLMModel
		cfg.Timeout = p.AILLMTimeout
		cfg.RequestsPerSecond = p.AIRatePerSecond

		svc, err := ai.NewLLMService(cfg)
		if err != nil {
			slog.Warn("LLM service unavailable, intent classification falls back to rules",
				"error", err)
		} else {
			llm = svc
		}
	}

	intents := router.NewService(router.Config{
		LLM:       llm,
		AIEnabled: llm != nil,
		AITimeout: p.AILLMTimeout,
		CacheTTL:  p.IntentCacheTTL,
	})

	return &APIV1Service{
		Profile:   p,
		Intents:   intents,
		Assembler: prompt.NewAssembler(intents),
		Sessions:  memory.NewSessionStore(0),
		Cards:     tripcontext.NewCardStore(),
		Metrics:   observability.GlobalMetrics(),
	}
}

// RegisterRoutes mounts all v1 endpoints on the echo instance.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1")

	g.POST("/chat/context", s.BuildChatContext)
	g.POST("/intent", s.ClassifyIntent)

	g.POST("/sessions", s.CreateSession)
	g.GET("/sessions/:id/history", s.GetSessionHistory)
	g.POST("/sessions/:id/assistant", s.AppendAssistantMessage)
	g.DELETE("/sessions/:id", s.ClearSession)

	g.POST("/cards/displayed", s.RecordDisplayedCards)

	g.POST("/quiz/score", s.ScoreQuiz)
	g.POST("/quiz/score-scale", s.ScoreScaleQuiz)
	g.GET("/quiz/statements", s.ListScaleStatements)

	g.GET("/travel-types", s.ListTravelTypes)
	g.GET("/travel-types/:code", s.GetTravelType)

	g.GET("/system/metrics", s.GetMetricsSnapshot)
}

// Close releases background resources held by the service.
func (s *APIV1Service) Close() {
	s.Sessions.Close()
	s.Cards.Close()
}

// errorResponse is the uniform error body for all v1 endpoints.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps a domain error to its HTTP status and body.
func writeError(c echo.Context, err error) error {
	code := errors.GetCodeFromError(err, errors.ErrCodeInvalidArgument)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidArgument:
		status = http.StatusBadRequest
	case errors.ErrCodeSessionNotFound, errors.ErrCodeTravelTypeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeLLMUnavailable:
		status = http.StatusServiceUnavailable
	case errors.ErrCodeTimeout, errors.ErrCodeContextCanceled:
		status = http.StatusGatewayTimeout
	}
	return c.JSON(status, errorResponse{Code: string(code), Message: err.Error()})
}
