package generation

import (
	"context"
	"errors"
	"fmt"

	"github.com/jwebster45206/legacy-engine/pkg/chat"
	"github.com/jwebster45206/legacy-engine/pkg/world"
)

const dialogueMemoryWindow = 3

// NPCDialogue produces one in-character line from npc to player.
func (g *Generator) NPCDialogue(ctx context.Context, npc *world.NPC, player *world.Player) Outcome[string] {
	quiet := fmt.Sprintf("%s looks at you thoughtfully but doesn't say much.", npc.Name)

	system, err := render("dialogue.tmpl", struct {
		NPC    *world.NPC
		Player *world.Player
		Memory []string
	}{npc, player, npc.RecentMemory(dialogueMemoryWindow)})
	if err != nil {
		return fallback(quiet, err)
	}

	text, err := g.complete(ctx, "npc_dialogue", chat.CompletionRequest{
		Messages: []chat.ChatMessage{
			chat.System(system),
			chat.User(fmt.Sprintf("Player %s is talking to you.", player.Name)),
		},
		MaxTokens:   100,
		Temperature: 0.7,
	})
	switch {
	case errors.Is(err, ErrEmptyResponse):
		g.warnFallback("npc_dialogue", err)
		return fallback(fmt.Sprintf("%s nods but seems preoccupied with other matters.", npc.Name), err)
	case err != nil:
		g.warnFallback("npc_dialogue", err)
		return fallback(quiet, err)
	}
	return generated(text)
}
