package router

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/voyago/concierge/plugin/ai"
	"github.com/voyago/concierge/plugin/ai/cache"
	"github.com/voyago/concierge/plugin/ai/memory"
)

const (
	defaultAITimeout = 5 * time.Second
	cacheCapacity    = 100
	cacheTTL         = 5 * time.Minute
)

// Service layers the AI classifier over the rule matcher. The AI path is
// attempted first when enabled, memoized per normalized message, and capped
// by a timeout; "AI unavailable" is an ordinary outcome, not an error, so
// Classify never fails.
type Service struct {
	rules     *RuleMatcher
	ai        *LLMClassifier
	cache     *cache.TTLCache[Classification]
	group     singleflight.Group
	aiEnabled bool
	aiTimeout time.Duration
}

// Config configures the intent service.
type Config struct {
	// LLM enables the AI-first path when non-nil and AIEnabled is true.
	LLM ai.LLMService
	// AIEnabled selects whether the AI classifier is attempted before the
	// rule path. Callers default this to true.
	AIEnabled bool
	// AITimeout bounds the single AI call (default 5s). No retries.
	AITimeout time.Duration
	// CacheTTL overrides how long AI classifications are memoized (default 5m).
	CacheTTL time.Duration
}

// NewService creates the intent classification service.
func NewService(cfg Config) *Service {
	timeout := cfg.AITimeout
	if timeout <= 0 {
		timeout = defaultAITimeout
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = cacheTTL
	}
	return &Service{
		rules:     NewRuleMatcher(),
		ai:        NewLLMClassifier(cfg.LLM),
		cache:     cache.NewTTLCache[Classification](cacheCapacity, ttl),
		aiEnabled: cfg.AIEnabled && cfg.LLM != nil,
		aiTimeout: timeout,
	}
}

// Classify resolves the message's intent. Empty input and every AI failure
// mode resolve through the deterministic rule path.
func (s *Service) Classify(ctx context.Context, message string, history []memory.Message) Classification {
	if strings.TrimSpace(message) == "" {
		return s.rules.Match(message)
	}

	if s.aiEnabled {
		if result, ok := s.classifyWithAI(ctx, message, history); ok {
			return result
		}
	}
	return s.rules.Match(message)
}

// classifyWithAI runs the memoized AI path. Returns ok=false on any failure.
func (s *Service) classifyWithAI(ctx context.Context, message string, history []memory.Message) (Classification, bool) {
	key := normalizeMessage(message)

	if hit, ok := s.cache.Get(key); ok {
		hit.Method = "cache"
		return hit, true
	}

	// Concurrent misses for the same normalized message share one call.
	v, err, _ := s.group.Do(key, func() (any, error) {
		callCtx, cancel := context.WithTimeout(ctx, s.aiTimeout)
		defer cancel()

		result, err := s.ai.Classify(callCtx, message, history)
		if err != nil {
			return nil, err
		}
		s.cache.Set(key, result)
		return result, nil
	})
	if err != nil {
		slog.Warn("AI intent classification failed, falling back to rules",
			"error", err,
			"message", truncateForLog(message, 50))
		return Classification{}, false
	}
	return v.(Classification), true
}

// normalizeMessage builds the cache key: lowercased, whitespace-collapsed.
func normalizeMessage(message string) string {
	return strings.ToLower(strings.Join(strings.Fields(message), " "))
}

func truncateForLog(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

var _ IntentService = (*Service)(nil)
