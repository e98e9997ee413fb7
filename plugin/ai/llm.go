// Package ai provides the LLM collaborator used by the prompt pipeline.
// The pipeline itself never performs I/O; everything network-bound lives here.
package ai

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// Message roles on the model wire.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged message handed to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SystemMessage builds a system message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage builds a user message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage builds an assistant message.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// LLMService is the model-invocation collaborator interface.
type LLMService interface {
	// Chat performs a synchronous chat completion.
	Chat(ctx context.Context, messages []Message) (string, error)
}

// LLMConfig configures the OpenAI-compatible provider.
type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
	MaxRetries  int
	Timeout     time.Duration
	// RequestsPerSecond caps outbound calls; 0 disables limiting.
	RequestsPerSecond float64
}

// DefaultLLMConfig returns the default provider configuration.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		BaseURL:     "https://api.openai.com/v1",
		Model:       "gpt-4o-mini",
		MaxTokens:   1024,
		Temperature: 0.7,
		MaxRetries:  3,
		Timeout:     30 * time.Second,
	}
}

type llmService struct {
	client  *openai.Client
	config  LLMConfig
	limiter *rate.Limiter
}

// NewLLMService creates an OpenAI-compatible LLM service.
func NewLLMService(cfg LLMConfig) (LLMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("LLM API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &llmService{
		client:  openai.NewClientWithConfig(clientConfig),
		config:  cfg,
		limiter: limiter,
	}, nil
}

// Chat performs a chat completion with rate limiting and retry.
func (s *llmService) Chat(ctx context.Context, messages []Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	llmMessages := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		llmMessages[i] = openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		}
	}

	var result string
	err := s.doWithRetry(ctx, func() error {
		resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       s.config.Model,
			MaxTokens:   s.config.MaxTokens,
			Temperature: s.config.Temperature,
			Messages:    llmMessages,
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("empty chat response")
		}
		result = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	return result, nil
}

// doWithRetry executes fn with exponential backoff.
func (s *llmService) doWithRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < s.config.MaxRetries; attempt++ {
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
		}
		if attempt < s.config.MaxRetries-1 {
			waitTime := time.Duration(math.Pow(2, float64(attempt))) * time.Second
			slog.Debug("LLM request failed, retrying",
				"attempt", attempt+1,
				"wait_time", waitTime,
				"error", lastErr)
			select {
			case <-time.After(waitTime):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return lastErr
}
