package engine

import (
	"context"

	"github.com/jwebster45206/legacy-engine/pkg/command"
	"github.com/jwebster45206/legacy-engine/pkg/world"
)

const msgEmptyInventory = "Your inventory is empty."

func (e *Engine) inventory(_ context.Context, _ command.ParsedCommand, gs *world.GameState) (CommandResult, error) {
	if gs.Player.Inventory.Len() == 0 {
		return success(msgEmptyInventory, gs), nil
	}
	return success("You are carrying: "+gs.Player.Inventory.String(), gs), nil
}

func (e *Engine) help(_ context.Context, _ command.ParsedCommand, gs *world.GameState) (CommandResult, error) {
	return success(command.HelpText(), gs), nil
}
