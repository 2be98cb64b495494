package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompletionRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CompletionRequest
		wantErr bool
	}{
		{"valid", CompletionRequest{Messages: []ChatMessage{User("hi")}, Temperature: 0.7}, false},
		{"no messages", CompletionRequest{Temperature: 0.7}, true},
		{"negative temperature", CompletionRequest{Messages: []ChatMessage{User("hi")}, Temperature: -1}, true},
		{"temperature too high", CompletionRequest{Messages: []ChatMessage{User("hi")}, Temperature: 2.5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMessageBuilders(t *testing.T) {
	assert.Equal(t, ChatMessage{Role: ChatRoleSystem, Content: "rules"}, System("rules"))
	assert.Equal(t, ChatMessage{Role: ChatRoleUser, Content: "go north"}, User("go north"))
}
