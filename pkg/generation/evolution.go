package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/jwebster45206/legacy-engine/pkg/chat"
	"github.com/jwebster45206/legacy-engine/pkg/command"
	"github.com/jwebster45206/legacy-engine/pkg/world"
)

// evolutionHistoryWindow is how many history entries the evaluator sees.
const evolutionHistoryWindow = 3

// EvolutionResult is a fired evolution. EvolvedPlace has its trigger cleared.
type EvolutionResult struct {
	ShouldEvolve bool
	EvolvedPlace *world.Place
	Narrative    string
}

type evolutionPayload struct {
	ShouldEvolve       bool   `json:"shouldEvolve"`
	Reasoning          string `json:"reasoning"`
	NewName            string `json:"newName"`
	NewDescription     string `json:"newDescription"`
	EvolutionNarrative string `json:"evolutionNarrative"`
}

// EvaluateEvolution asks whether the current location's trigger has been
// met. Only the location is evaluated; item and NPC triggers are stored but
// not yet in scope. No call is made when the location has no trigger. The
// result holds at most one fired evolution.
func (g *Generator) EvaluateEvolution(ctx context.Context, cmd command.ParsedCommand, gs *world.GameState, actionResult string) Outcome[[]EvolutionResult] {
	place := gs.CurrentLocation
	if place == nil || !place.CanEvolve() {
		return skipped[[]EvolutionResult](nil)
	}

	system, err := render("evolution.tmpl", struct {
		Place        *world.Place
		Player       *world.Player
		Command      string
		ActionResult string
		History      []string
	}{place, gs.Player, cmd.Original, actionResult, gs.Player.RecentHistory(evolutionHistoryWindow)})
	if err != nil {
		return fallback[[]EvolutionResult](nil, err)
	}

	text, err := g.complete(ctx, "evaluate_evolution", chat.CompletionRequest{
		Messages: []chat.ChatMessage{
			chat.System(system),
			chat.User("Evaluate whether this location should evolve given the current context."),
		},
		MaxTokens:   400,
		Temperature: 0.3,
		JSONMode:    true,
	})
	if err != nil {
		g.warnFallback("evaluate_evolution", err)
		return fallback[[]EvolutionResult](nil, err)
	}

	var payload evolutionPayload
	if err := decodeJSON(text, &payload); err != nil {
		g.warnFallback("evaluate_evolution", err)
		return fallback[[]EvolutionResult](nil, err)
	}
	if !payload.ShouldEvolve {
		g.logger.Debug("Location did not evolve", "place", place.Name, "reasoning", payload.Reasoning)
		return generated[[]EvolutionResult](nil)
	}

	newName := strings.TrimSpace(payload.NewName)
	newDescription := strings.TrimSpace(payload.NewDescription)
	if newName == "" || newDescription == "" {
		err := fmt.Errorf("%w: evolution without newName or newDescription", errMalformed)
		g.warnFallback("evaluate_evolution", err)
		return fallback[[]EvolutionResult](nil, err)
	}

	evolved := *place
	evolved.Name = newName
	evolved.Description = newDescription
	evolved.Objects = append([]string{}, place.Objects...)
	evolved.NPCs = append([]string{}, place.NPCs...)
	evolved.EvolutionTrigger = ""

	g.logger.Info("Location evolved", "from", place.Name, "to", newName, "coordinates", place.Coordinates.Key())

	return generated([]EvolutionResult{{
		ShouldEvolve: true,
		EvolvedPlace: &evolved,
		Narrative:    strings.TrimSpace(payload.EvolutionNarrative),
	}})
}
