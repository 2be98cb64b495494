package generation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jwebster45206/legacy-engine/internal/services"
	"github.com/jwebster45206/legacy-engine/pkg/chat"
	"github.com/jwebster45206/legacy-engine/pkg/command"
	"github.com/jwebster45206/legacy-engine/pkg/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(t *testing.T, opts ...Option) (*Generator, *services.MockLLMAPI) {
	t.Helper()
	llm := services.NewMockLLMAPI()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(llm, logger, opts...), llm
}

func testGameState() *world.GameState {
	player := world.NewPlayer("Ana", "")
	return &world.GameState{
		Player: player,
		CurrentLocation: &world.Place{
			Name:             "village square",
			Description:      "A bustling square.",
			Coordinates:      world.Coordinates{World: "main", X: 0, Y: 1},
			Objects:          []string{"stone well"},
			NPCs:             []string{"village elder"},
			EvolutionTrigger: "When the well runs dry",
		},
	}
}

func mustParse(t *testing.T, text string) command.ParsedCommand {
	t.Helper()
	cmd, err := command.Parse(text)
	require.NoError(t, err)
	return cmd
}

func TestGenerator_TimeoutFallsBack(t *testing.T) {
	gen, llm := newTestGenerator(t, WithTimeout(20*time.Millisecond))
	llm.CompleteFunc = func(ctx context.Context, req chat.CompletionRequest) (*chat.ChatResponse, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	out := gen.EnhanceNarrative(context.Background(), mustParse(t, "look"), testGameState(), "baseline")
	assert.Equal(t, SourceFallback, out.Source)
	assert.Equal(t, "baseline", out.Value)
	assert.ErrorIs(t, out.Err, context.DeadlineExceeded)
}

func TestGenerator_NilServiceFallsBack(t *testing.T) {
	gen := New(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	out := gen.GenerateLocation(context.Background(), world.Coordinates{World: "main", X: 3}, nil)
	assert.ErrorIs(t, out.Err, ErrNoService)
	assert.Equal(t, "uncharted lands", out.Value.Name)
}

func TestGenerator_ContentRating(t *testing.T) {
	tests := []struct {
		rating string
		want   string
	}{
		{"PG", "What the heck is that?"},
		{"pg-13", "What the heck is that?"},
		{"G", "What the heck is that?"},
		{"R", "What the hell is that?"},
		{"", "What the hell is that?"},
	}

	for _, tt := range tests {
		t.Run(tt.rating, func(t *testing.T) {
			gen, llm := newTestGenerator(t, WithContentRating(tt.rating))
			llm.SetResponse("What the hell is that?")

			out := gen.EnhanceNarrative(context.Background(), mustParse(t, "look"), testGameState(), "baseline")
			require.True(t, out.Generated())
			assert.Equal(t, tt.want, out.Value)
		})
	}
}

func TestOutcome_Generated(t *testing.T) {
	assert.True(t, generated("x").Generated())
	assert.False(t, fallback("x", errors.New("boom")).Generated())
	assert.False(t, skipped("x").Generated())
}
