package generation

import (
	"context"
	"errors"
	"testing"

	"github.com/jwebster45206/legacy-engine/pkg/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNPC() *world.NPC {
	square := &world.Place{Name: "village square", Coordinates: world.Coordinates{World: "main", Y: 1}}
	return world.NewNPC("village elder", square)
}

func TestNPCDialogue(t *testing.T) {
	gen, llm := newTestGenerator(t)
	llm.SetResponse("Welcome back, traveler.")

	npc := testNPC()
	for _, m := range []string{"m1", "m2", "m3", "m4"} {
		npc.Remember(m)
	}

	out := gen.NPCDialogue(context.Background(), npc, world.NewPlayer("Ana", ""))
	require.True(t, out.Generated())
	assert.Equal(t, "Welcome back, traveler.", out.Value)

	calls := llm.GetCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, 100, calls[0].MaxTokens)
	assert.Contains(t, calls[0].Messages[0].Content, "Recent conversation: m2 -> m3 -> m4")
	assert.Equal(t, "Player Ana is talking to you.", calls[0].Messages[1].Content)
}

func TestNPCDialogue_FirstInteraction(t *testing.T) {
	gen, llm := newTestGenerator(t)
	gen.NPCDialogue(context.Background(), testNPC(), world.NewPlayer("Ana", ""))

	calls := llm.GetCalls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Messages[0].Content, "Recent conversation: first interaction")
}

func TestNPCDialogue_Fallbacks(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		gen, llm := newTestGenerator(t)
		llm.SetCompleteError(errors.New("down"))

		out := gen.NPCDialogue(context.Background(), testNPC(), world.NewPlayer("Ana", ""))
		assert.Equal(t, SourceFallback, out.Source)
		assert.Equal(t, "village elder looks at you thoughtfully but doesn't say much.", out.Value)
	})

	t.Run("empty", func(t *testing.T) {
		gen, llm := newTestGenerator(t)
		llm.SetResponse("")

		out := gen.NPCDialogue(context.Background(), testNPC(), world.NewPlayer("Ana", ""))
		assert.Equal(t, SourceFallback, out.Source)
		assert.Equal(t, "village elder nods but seems preoccupied with other matters.", out.Value)
	})
}
