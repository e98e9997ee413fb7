package router

import (
	"context"
	"sync/atomic"

	"github.com/voyago/concierge/plugin/ai"
)

// MockLLM is a test double for the LLM collaborator.
type MockLLM struct {
	Response string
	Err      error
	calls    atomic.Int64
}

// Chat returns the configured response or error and counts the call.
func (m *MockLLM) Chat(_ context.Context, _ []ai.Message) (string, error) {
	m.calls.Add(1)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// Calls returns how many times Chat was invoked.
func (m *MockLLM) Calls() int64 {
	return m.calls.Load()
}

var _ ai.LLMService = (*MockLLM)(nil)
