package chat

import "fmt"

const (
	ChatRoleUser   = "user"      // Player or prompt input
	ChatRoleAgent  = "assistant" // Model output
	ChatRoleSystem = "system"    // Instructions
)

// ChatMessage represents a single message sent to the LLM.
type ChatMessage struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// CompletionRequest is one round trip to a language model.
type CompletionRequest struct {
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
	// JSONMode asks the provider to return a single JSON object.
	JSONMode bool `json:"json_mode,omitempty"`
}

// ChatResponse is the text returned by a language model.
type ChatResponse struct {
	Message string `json:"message,omitempty"`
	Model   string `json:"model,omitempty"`
}

// System builds a system-role message.
func System(content string) ChatMessage {
	return ChatMessage{Role: ChatRoleSystem, Content: content}
}

// User builds a user-role message.
func User(content string) ChatMessage {
	return ChatMessage{Role: ChatRoleUser, Content: content}
}

func (r CompletionRequest) Validate() error {
	if len(r.Messages) == 0 {
		return fmt.Errorf("messages cannot be empty")
	}
	if r.Temperature < 0 || r.Temperature > 2 {
		return fmt.Errorf("temperature out of range: %v", r.Temperature)
	}
	return nil
}
