package engine

import (
	"context"
	"fmt"

	"github.com/jwebster45206/legacy-engine/pkg/command"
	"github.com/jwebster45206/legacy-engine/pkg/world"
)

func (e *Engine) talk(ctx context.Context, cmd command.ParsedCommand, gs *world.GameState) (CommandResult, error) {
	name, ok := gs.CurrentLocation.FindNPC(cmd.Target)
	if !ok {
		return failure(fmt.Sprintf("There is no %q here to talk to.", cmd.Target), ErrCodeNotFound, gs), nil
	}

	npc, err := e.store.GetNPC(ctx, name)
	if err != nil {
		return CommandResult{}, persistErr("load npc", err)
	}
	if npc == nil {
		npc = world.NewNPC(name, gs.CurrentLocation)
		e.logger.Debug("Met new NPC", "npc", name, "place", gs.CurrentLocation.Name)
	}

	dialogue := e.gen.NPCDialogue(ctx, npc, gs.Player).Value

	npc.Remember(fmt.Sprintf("Spoke with %s: %s", gs.Player.Name, dialogue))
	if err := e.store.SaveNPC(ctx, npc); err != nil {
		return CommandResult{}, persistErr("save npc", err)
	}
	if err := e.appendHistory(ctx, gs.Player, fmt.Sprintf("Talked to %s", npc.Name)); err != nil {
		return CommandResult{}, err
	}

	return success(fmt.Sprintf("%s: %s", npc.Name, dialogue), gs), nil
}
