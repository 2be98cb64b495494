package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jwebster45206/legacy-engine/pkg/chat"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// OpenAIService implements LLMService for OpenAI and OpenAI-compatible
// endpoints.
type OpenAIService struct {
	client           *openai.Client
	modelName        string
	backendModelName string
	logger           *slog.Logger
}

// Ensure OpenAIService implements LLMService
var _ LLMService = (*OpenAIService)(nil)

// NewOpenAIService creates a client. An empty baseURL uses the OpenAI API.
func NewOpenAIService(apiKey, baseURL, modelName, backendModelName string, logger *slog.Logger) *OpenAIService {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)

	return &OpenAIService{
		client:           &client,
		modelName:        modelName,
		backendModelName: backendModelName,
		logger:           logger,
	}
}

func (s *OpenAIService) Complete(ctx context.Context, req chat.CompletionRequest) (*chat.ChatResponse, error) {
	model := pickModel(req, s.modelName, s.backendModelName)

	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(model),
		Messages:    toOpenAIMessages(req.Messages),
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.JSONMode {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: func() *shared.ResponseFormatJSONObjectParam {
				p := shared.NewResponseFormatJSONObjectParam()
				return &p
			}(),
		}
	}

	resp, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		s.logger.Warn("OpenAI returned no choices", "model", model)
		return &chat.ChatResponse{Message: msgNoResponse, Model: model}, nil
	}

	s.logger.Debug("OpenAI completion",
		"model", model,
		"input_tokens", resp.Usage.PromptTokens,
		"output_tokens", resp.Usage.CompletionTokens,
		"finish_reason", resp.Choices[0].FinishReason)

	return &chat.ChatResponse{
		Message: resp.Choices[0].Message.Content,
		Model:   model,
	}, nil
}

func toOpenAIMessages(messages []chat.ChatMessage) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case chat.ChatRoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case chat.ChatRoleAgent:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
