package engine

import (
	"context"
	"fmt"

	"github.com/jwebster45206/legacy-engine/pkg/command"
	"github.com/jwebster45206/legacy-engine/pkg/world"
)

func (e *Engine) move(ctx context.Context, cmd command.ParsedCommand, gs *world.GameState) (CommandResult, error) {
	if cmd.Direction == "" {
		return failure("No direction specified.", ErrCodeParse, gs), nil
	}

	player := *gs.Player
	player.History = append([]string(nil), gs.Player.History...)
	player.Location = gs.Player.Location.Move(cmd.Direction)

	place, err := e.LoadPlace(ctx, player.Location, player.History)
	if err != nil {
		return CommandResult{}, err
	}

	if err := e.store.SavePlayer(ctx, &player); err != nil {
		return CommandResult{}, persistErr("save player", err)
	}
	if err := e.appendHistory(ctx, &player, fmt.Sprintf("Moved %s to %s", cmd.Direction, place.Name)); err != nil {
		return CommandResult{}, err
	}

	next := &world.GameState{Player: &player, CurrentLocation: place}

	baseline := fmt.Sprintf("You move %s to %s.\n\n%s", cmd.Direction, place.Name, place.Description)
	message := e.gen.EnhanceNarrative(ctx, cmd, next, baseline).Value

	evolutions := e.gen.EvaluateEvolution(ctx, cmd, next, message)
	for _, ev := range evolutions.Value {
		if !ev.ShouldEvolve || ev.EvolvedPlace == nil {
			continue
		}
		if err := e.store.SavePlace(ctx, ev.EvolvedPlace); err != nil {
			return CommandResult{}, persistErr("save evolved place", err)
		}
		if ev.Narrative != "" {
			message += "\n\n" + ev.Narrative
		}
		entry := fmt.Sprintf("Witnessed %s become %s", next.CurrentLocation.Name, ev.EvolvedPlace.Name)
		if err := e.appendHistory(ctx, &player, entry); err != nil {
			return CommandResult{}, err
		}
		next.CurrentLocation = ev.EvolvedPlace
	}

	return success(message, next), nil
}
