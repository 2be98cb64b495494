package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jwebster45206/legacy-engine/pkg/chat"
	"github.com/jwebster45206/legacy-engine/pkg/world"
)

// locationHistoryWindow is how many history entries seed a new location.
const locationHistoryWindow = 5

var errMalformed = errors.New("malformed generated payload")

type locationPayload struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Objects          []string `json:"objects"`
	NPCs             []string `json:"npcs"`
	EvolutionTrigger string   `json:"evolution_trigger"`
}

// FallbackLocation is the fixed place served when generation fails.
func FallbackLocation(c world.Coordinates) *world.Place {
	return &world.Place{
		Name:             "uncharted lands",
		Description:      "You find yourself in uncharted territory. The landscape stretches before you, wild and unexplored.",
		Coordinates:      c,
		Objects:          []string{},
		NPCs:             []string{},
		EvolutionTrigger: world.GenericEvolutionTrigger,
	}
}

// GenerateLocation creates a new place at c, seeded by the player's recent
// history. The returned place is never a placeholder.
func (g *Generator) GenerateLocation(ctx context.Context, c world.Coordinates, history []string) Outcome[*world.Place] {
	if len(history) > locationHistoryWindow {
		history = history[len(history)-locationHistoryWindow:]
	}

	system, err := render("location.tmpl", struct {
		Coordinates world.Coordinates
		History     []string
	}{c, history})
	if err != nil {
		return fallback(FallbackLocation(c), err)
	}

	text, err := g.complete(ctx, "generate_location", chat.CompletionRequest{
		Messages: []chat.ChatMessage{
			chat.System(system),
			chat.User(fmt.Sprintf("Generate a new location at coordinates (%d, %d).", c.X, c.Y)),
		},
		MaxTokens:   400,
		Temperature: 0.8,
		JSONMode:    true,
	})
	if err != nil {
		g.warnFallback("generate_location", err)
		return fallback(FallbackLocation(c), err)
	}

	var payload locationPayload
	if err := decodeJSON(text, &payload); err != nil {
		g.warnFallback("generate_location", err)
		return fallback(FallbackLocation(c), err)
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Description = strings.TrimSpace(payload.Description)
	if payload.Name == "" || payload.Description == "" {
		err := fmt.Errorf("%w: name and description are required", errMalformed)
		g.warnFallback("generate_location", err)
		return fallback(FallbackLocation(c), err)
	}

	g.checkMarkup("generate_location", payload.Description)

	return generated(&world.Place{
		Name:             payload.Name,
		Description:      payload.Description,
		Coordinates:      c,
		Objects:          nonNil(payload.Objects),
		NPCs:             nonNil(payload.NPCs),
		EvolutionTrigger: strings.TrimSpace(payload.EvolutionTrigger),
	})
}

// decodeJSON unmarshals the first JSON object in raw, tolerating code fences
// and surrounding prose.
func decodeJSON(raw string, v any) error {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return fmt.Errorf("%w: no JSON object found", errMalformed)
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), v); err != nil {
		return fmt.Errorf("%w: %v", errMalformed, err)
	}
	return nil
}

func nonNil(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
