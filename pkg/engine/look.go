package engine

import (
	"context"
	"fmt"

	"github.com/jwebster45206/legacy-engine/pkg/command"
	"github.com/jwebster45206/legacy-engine/pkg/world"
)

func (e *Engine) look(ctx context.Context, _ command.ParsedCommand, gs *world.GameState) (CommandResult, error) {
	place := gs.CurrentLocation
	description := e.gen.EnhanceDescription(ctx, place).Value
	return success(fmt.Sprintf("%s\n\n%s", place.Name, description), gs), nil
}

// selfReferences name the current location when examined.
var selfReferences = map[string]bool{
	"room": true,
	"area": true,
}

func (e *Engine) examine(ctx context.Context, cmd command.ParsedCommand, gs *world.GameState) (CommandResult, error) {
	place := gs.CurrentLocation
	target := world.Key(cmd.Target)

	if target == world.Key(place.Name) || selfReferences[target] {
		return e.look(ctx, cmd, gs)
	}

	if object, ok := place.FindObject(target); ok {
		item, err := e.store.GetItem(ctx, object)
		if err != nil {
			return CommandResult{}, persistErr("load item", err)
		}
		if item != nil && item.Description != "" {
			return success(item.Description, gs), nil
		}
		return success(fmt.Sprintf("You examine the %s. It appears to be an ordinary %s.", target, target), gs), nil
	}

	if name, ok := place.FindNPC(target); ok {
		npc, err := e.store.GetNPC(ctx, name)
		if err != nil {
			return CommandResult{}, persistErr("load npc", err)
		}
		if npc != nil && npc.Description != "" {
			return success(npc.Description, gs), nil
		}
		return success(fmt.Sprintf("You look at %s. They seem to be going about their business.", target), gs), nil
	}

	return failure(fmt.Sprintf("You don't see any %q here.", target), ErrCodeNotFound, gs), nil
}
