package services

import (
	"context"
	"errors"
	"sync"

	"github.com/jwebster45206/legacy-engine/pkg/chat"
)

// MockLLMAPI is a mock implementation of LLMService for testing
type MockLLMAPI struct {
	CompleteFunc func(ctx context.Context, req chat.CompletionRequest) (*chat.ChatResponse, error)

	// Track calls for testing
	CompleteCalls []chat.CompletionRequest

	mu sync.Mutex // protects all fields above
}

// Ensure MockLLMAPI implements LLMService
var _ LLMService = (*MockLLMAPI)(nil)

// NewMockLLMAPI creates a new mock LLM service
func NewMockLLMAPI() *MockLLMAPI {
	return &MockLLMAPI{
		CompleteCalls: make([]chat.CompletionRequest, 0),
	}
}

// Complete records the request and returns CompleteFunc's result, or a
// canned reply when no func is set.
func (m *MockLLMAPI) Complete(ctx context.Context, req chat.CompletionRequest) (*chat.ChatResponse, error) {
	m.mu.Lock()
	m.CompleteCalls = append(m.CompleteCalls, req)
	fn := m.CompleteFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}

	if req.JSONMode {
		return &chat.ChatResponse{Message: `{"shouldEvolve": false}`, Model: "mock"}, nil
	}
	return &chat.ChatResponse{Message: "Mock response", Model: "mock"}, nil
}

// SetResponse makes every call return msg.
func (m *MockLLMAPI) SetResponse(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CompleteFunc = func(ctx context.Context, req chat.CompletionRequest) (*chat.ChatResponse, error) {
		return &chat.ChatResponse{Message: msg, Model: "mock"}, nil
	}
}

// SetResponses returns msgs in order, repeating the last one once exhausted.
func (m *MockLLMAPI) SetResponses(msgs ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var i int
	var seq sync.Mutex
	m.CompleteFunc = func(ctx context.Context, req chat.CompletionRequest) (*chat.ChatResponse, error) {
		seq.Lock()
		defer seq.Unlock()
		if len(msgs) == 0 {
			return nil, errors.New("no responses configured")
		}
		msg := msgs[min(i, len(msgs)-1)]
		i++
		return &chat.ChatResponse{Message: msg, Model: "mock"}, nil
	}
}

// SetCompleteError sets up the mock to return an error on Complete
func (m *MockLLMAPI) SetCompleteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CompleteFunc = func(ctx context.Context, req chat.CompletionRequest) (*chat.ChatResponse, error) {
		return nil, err
	}
}

// Reset clears all call tracking
func (m *MockLLMAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CompleteCalls = make([]chat.CompletionRequest, 0)
}

// GetCalls returns a copy of the call tracking data in a thread-safe way
func (m *MockLLMAPI) GetCalls() []chat.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]chat.CompletionRequest, len(m.CompleteCalls))
	copy(calls, m.CompleteCalls)
	return calls
}
