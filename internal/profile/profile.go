package profile

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Version is the current version of server
	Version string

	// AI Configuration
	AIIntentEnabled bool          // CONCIERGE_AI_INTENT_ENABLED (default: true)
	AIOpenAIAPIKey  string        // CONCIERGE_AI_OPENAI_API_KEY
	AIOpenAIBaseURL string        // CONCIERGE_AI_OPENAI_BASE_URL (default: https://api.openai.com/v1)
	AILLMModel      string        // CONCIERGE_AI_LLM_MODEL (default: gpt-4o-mini)
	AILLMTimeout    time.Duration // CONCIERGE_AI_LLM_TIMEOUT_SEC (default: 5s)
	AIRatePerSecond float64       // CONCIERGE_AI_RATE_PER_SECOND (default: 0, unlimited)

	// Pipeline Configuration
	MaxTurns       int           // CONCIERGE_MAX_TURNS (default: 4)
	IntentCacheTTL time.Duration // CONCIERGE_INTENT_CACHE_TTL_SEC (default: 300s)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsAIIntentEnabled returns true if the AI classification layer is enabled
// and an API key is configured for it.
func (p *Profile) IsAIIntentEnabled() bool {
	return p.AIIntentEnabled && p.AIOpenAIAPIKey != ""
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnvOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true"
}

func getIntEnvOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getFloatEnvOrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}

// FromEnv loads configuration from CONCIERGE_* environment variables.
func (p *Profile) FromEnv() {
	p.AIIntentEnabled = getBoolEnvOrDefault("CONCIERGE_AI_INTENT_ENABLED", true)
	p.AIOpenAIAPIKey = os.Getenv("CONCIERGE_AI_OPENAI_API_KEY")
	p.AIOpenAIBaseURL = getEnvOrDefault("CONCIERGE_AI_OPENAI_BASE_URL", "https://api.openai.com/v1")
	p.AILLMModel = getEnvOrDefault("CONCIERGE_AI_LLM_MODEL", "gpt-4o-mini")
	p.AILLMTimeout = time.Duration(getIntEnvOrDefault("CONCIERGE_AI_LLM_TIMEOUT_SEC", 5)) * time.Second
	p.AIRatePerSecond = getFloatEnvOrDefault("CONCIERGE_AI_RATE_PER_SECOND", 0)

	p.MaxTurns = getIntEnvOrDefault("CONCIERGE_MAX_TURNS", 4)
	p.IntentCacheTTL = time.Duration(getIntEnvOrDefault("CONCIERGE_INTENT_CACHE_TTL_SEC", 300)) * time.Second
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Port < 0 || p.Port > 65535 {
		return errors.Errorf("invalid port %d", p.Port)
	}

	if p.MaxTurns <= 0 {
		p.MaxTurns = 4
	}
	if p.AILLMTimeout <= 0 {
		p.AILLMTimeout = 5 * time.Second
	}
	if p.IntentCacheTTL <= 0 {
		p.IntentCacheTTL = 5 * time.Minute
	}

	return nil
}
