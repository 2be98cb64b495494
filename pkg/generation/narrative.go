package generation

import (
	"context"
	"fmt"

	"github.com/jwebster45206/legacy-engine/pkg/chat"
	"github.com/jwebster45206/legacy-engine/pkg/command"
	"github.com/jwebster45206/legacy-engine/pkg/world"
)

// EnhanceNarrative embellishes a deterministic action result. On any
// failure the baseline is returned verbatim.
func (g *Generator) EnhanceNarrative(ctx context.Context, cmd command.ParsedCommand, gs *world.GameState, baseline string) Outcome[string] {
	system, err := render("narrative.tmpl", struct {
		Player   *world.Player
		Place    *world.Place
		Baseline string
	}{gs.Player, gs.CurrentLocation, baseline})
	if err != nil {
		return fallback(baseline, err)
	}

	text, err := g.complete(ctx, "enhance_narrative", chat.CompletionRequest{
		Messages: []chat.ChatMessage{
			chat.System(system),
			chat.User(fmt.Sprintf("Player performed: %q. Generate an enhanced narrative response.", cmd.Original)),
		},
		MaxTokens:   200,
		Temperature: 0.7,
	})
	if err != nil {
		g.warnFallback("enhance_narrative", err)
		return fallback(baseline, err)
	}
	return generated(text)
}

// EnhanceDescription re-renders a place's description with its current
// objects and NPCs marked up. On failure the stored description is used.
func (g *Generator) EnhanceDescription(ctx context.Context, place *world.Place) Outcome[string] {
	system, err := render("description.tmpl", place)
	if err != nil {
		return fallback(place.Description, err)
	}

	text, err := g.complete(ctx, "enhance_description", chat.CompletionRequest{
		Messages: []chat.ChatMessage{
			chat.System(system),
			chat.User("Generate the location description."),
		},
		MaxTokens:   200,
		Temperature: 0.6,
	})
	if err != nil {
		g.warnFallback("enhance_description", err)
		return fallback(place.Description, err)
	}

	g.checkMarkup("enhance_description", text)
	return generated(text)
}
