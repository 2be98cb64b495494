package services

import (
	"context"

	"github.com/jwebster45206/legacy-engine/pkg/chat"
)

const msgNoResponse = "(no response)"

// jsonOnlyInstruction is appended to the system prompt for providers that
// have no native JSON response mode.
const jsonOnlyInstruction = "Respond with a single JSON object and nothing else."

// LLMService defines the interface for interacting with a language model.
type LLMService interface {
	// Complete sends one completion request and returns the model's text.
	// Requests with JSONMode set are routed to the backend model when one
	// is configured.
	Complete(ctx context.Context, req chat.CompletionRequest) (*chat.ChatResponse, error)
}

// pickModel returns the backend model for structured requests when set.
func pickModel(req chat.CompletionRequest, modelName, backendModelName string) string {
	if req.JSONMode && backendModelName != "" {
		return backendModelName
	}
	return modelName
}
