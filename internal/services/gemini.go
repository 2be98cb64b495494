package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/jwebster45206/legacy-engine/pkg/chat"
	"google.golang.org/api/option"
)

// GeminiService implements LLMService for Google Gemini
type GeminiService struct {
	client           *genai.Client
	modelName        string
	backendModelName string
	logger           *slog.Logger
}

// Ensure GeminiService implements LLMService
var _ LLMService = (*GeminiService)(nil)

func NewGeminiService(ctx context.Context, apiKey, modelName, backendModelName string, logger *slog.Logger) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiService{
		client:           client,
		modelName:        modelName,
		backendModelName: backendModelName,
		logger:           logger,
	}, nil
}

func (g *GeminiService) Close() error {
	return g.client.Close()
}

func (g *GeminiService) Complete(ctx context.Context, req chat.CompletionRequest) (*chat.ChatResponse, error) {
	modelName := pickModel(req, g.modelName, g.backendModelName)

	// GenerativeModel carries per-request settings, so each call gets its own.
	model := g.client.GenerativeModel(modelName)
	model.SetTemperature(float32(req.Temperature))
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	if req.JSONMode {
		model.ResponseMIMEType = "application/json"
	}

	system, history, last := splitGeminiMessages(req.Messages)
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}
	if last == "" {
		return nil, fmt.Errorf("no user message to send")
	}

	session := model.StartChat()
	session.History = history

	resp, err := session.SendMessage(ctx, genai.Text(last))
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		g.logger.Warn("Gemini returned no candidates", "model", modelName)
		return &chat.ChatResponse{Message: msgNoResponse, Model: modelName}, nil
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}

	return &chat.ChatResponse{
		Message: text.String(),
		Model:   modelName,
	}, nil
}

// splitGeminiMessages joins system messages into one instruction, converts
// earlier turns to chat history and returns the final non-system message.
func splitGeminiMessages(messages []chat.ChatMessage) (string, []*genai.Content, string) {
	var systemParts []string
	var turns []chat.ChatMessage
	for _, m := range messages {
		if m.Role == chat.ChatRoleSystem {
			systemParts = append(systemParts, m.Content)
			continue
		}
		turns = append(turns, m)
	}
	if len(turns) == 0 {
		return strings.Join(systemParts, "\n\n"), nil, ""
	}

	history := make([]*genai.Content, 0, len(turns)-1)
	for _, m := range turns[:len(turns)-1] {
		role := "user"
		if m.Role == chat.ChatRoleAgent {
			role = "model"
		}
		history = append(history, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(m.Content)}})
	}
	return strings.Join(systemParts, "\n\n"), history, turns[len(turns)-1].Content
}
