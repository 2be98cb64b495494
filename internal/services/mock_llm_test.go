package services

import (
	"context"
	"errors"
	"testing"

	"github.com/jwebster45206/legacy-engine/pkg/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLLMService(t *testing.T) {
	mockService := NewMockLLMAPI()

	req := chat.CompletionRequest{Messages: []chat.ChatMessage{chat.User("Hello")}, Temperature: 0.7}
	response, err := mockService.Complete(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Mock response", response.Message)

	calls := mockService.GetCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, req, calls[0])

	mockService.Reset()
	assert.Empty(t, mockService.GetCalls())
}

func TestMockLLMService_JSONModeDefault(t *testing.T) {
	mockService := NewMockLLMAPI()
	response, err := mockService.Complete(context.Background(), chat.CompletionRequest{JSONMode: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"shouldEvolve": false}`, response.Message)
}

func TestMockLLMService_Responses(t *testing.T) {
	mockService := NewMockLLMAPI()
	mockService.SetResponses("first", "second")

	ctx := context.Background()
	var got []string
	for range 3 {
		resp, err := mockService.Complete(ctx, chat.CompletionRequest{})
		require.NoError(t, err)
		got = append(got, resp.Message)
	}
	assert.Equal(t, []string{"first", "second", "second"}, got)
}

func TestMockLLMService_ErrorHandling(t *testing.T) {
	mockService := NewMockLLMAPI()
	expectedErr := errors.New("service unavailable")
	mockService.SetCompleteError(expectedErr)

	_, err := mockService.Complete(context.Background(), chat.CompletionRequest{})
	assert.ErrorIs(t, err, expectedErr)
	assert.Len(t, mockService.GetCalls(), 1)
}
