package generation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jwebster45206/legacy-engine/pkg/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLocation(t *testing.T) {
	coords := world.Coordinates{World: "main", X: 2, Y: -1}

	tests := []struct {
		name     string
		response string
		want     *world.Place
	}{
		{
			name:     "plain json",
			response: `{"name": "misty fen", "description": "Reeds hide a *rusted lantern*.", "objects": ["rusted lantern"], "npcs": [], "evolution_trigger": "When the lantern is lit"}`,
			want: &world.Place{
				Name:             "misty fen",
				Description:      "Reeds hide a *rusted lantern*.",
				Coordinates:      coords,
				Objects:          []string{"rusted lantern"},
				NPCs:             []string{},
				EvolutionTrigger: "When the lantern is lit",
			},
		},
		{
			name:     "fenced json with missing lists",
			response: "```json\n{\"name\": \"stone bridge\", \"description\": \"A bridge.\"}\n```",
			want: &world.Place{
				Name:        "stone bridge",
				Description: "A bridge.",
				Coordinates: coords,
				Objects:     []string{},
				NPCs:        []string{},
			},
		},
		{
			name:     "prose around json",
			response: "Here you go:\n{\"name\": \"old mill\", \"description\": \"Wheels creak.\", \"npcs\": [\"miller\"]}\nEnjoy!",
			want: &world.Place{
				Name:        "old mill",
				Description: "Wheels creak.",
				Coordinates: coords,
				Objects:     []string{},
				NPCs:        []string{"miller"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, llm := newTestGenerator(t)
			llm.SetResponse(tt.response)

			out := gen.GenerateLocation(context.Background(), coords, nil)
			require.True(t, out.Generated(), "unexpected fallback: %v", out.Err)
			assert.Equal(t, tt.want, out.Value)
			assert.False(t, out.Value.Placeholder)
		})
	}
}

func TestGenerateLocation_Fallbacks(t *testing.T) {
	coords := world.Coordinates{World: "main", X: 5, Y: 5}

	tests := []struct {
		name     string
		response string
		err      error
	}{
		{"service error", "", errors.New("timeout")},
		{"not json", "A lovely meadow.", nil},
		{"broken json", `{"name": "x", "description": `, nil},
		{"missing name", `{"description": "somewhere"}`, nil},
		{"blank description", `{"name": "somewhere", "description": "  "}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, llm := newTestGenerator(t)
			if tt.err != nil {
				llm.SetCompleteError(tt.err)
			} else {
				llm.SetResponse(tt.response)
			}

			out := gen.GenerateLocation(context.Background(), coords, nil)
			assert.Equal(t, SourceFallback, out.Source)
			assert.Error(t, out.Err)
			assert.Equal(t, FallbackLocation(coords), out.Value)
			assert.Equal(t, "uncharted lands", out.Value.Name)
			assert.Equal(t, world.GenericEvolutionTrigger, out.Value.EvolutionTrigger)
		})
	}
}

func TestGenerateLocation_Request(t *testing.T) {
	gen, llm := newTestGenerator(t)
	llm.SetResponse(`{"name": "a", "description": "b"}`)

	var history []string
	for i := 1; i <= 7; i++ {
		history = append(history, fmt.Sprintf("event %d", i))
	}

	gen.GenerateLocation(context.Background(), world.Coordinates{World: "deep", X: -3, Y: 4}, history)

	calls := llm.GetCalls()
	require.Len(t, calls, 1)
	assert.True(t, calls[0].JSONMode)
	assert.Equal(t, 400, calls[0].MaxTokens)
	assert.InDelta(t, 0.8, calls[0].Temperature, 0.0001)

	system := calls[0].Messages[0].Content
	assert.Contains(t, system, `coordinates (-3, 4) in world "deep"`)
	assert.Contains(t, system, "event 3; event 4; event 5; event 6; event 7")
	assert.NotContains(t, system, "event 2")
	// The caller's slice is not modified.
	assert.Len(t, history, 7)
}
