package engine

import (
	"context"
	"fmt"

	"github.com/jwebster45206/legacy-engine/pkg/command"
	"github.com/jwebster45206/legacy-engine/pkg/world"
)

// Item handling is not implemented yet: take, drop and use always decline
// without touching state.

func (e *Engine) take(_ context.Context, cmd command.ParsedCommand, gs *world.GameState) (CommandResult, error) {
	return failure(fmt.Sprintf("You can't take the %s.", cmd.Target), "", gs), nil
}

func (e *Engine) drop(_ context.Context, cmd command.ParsedCommand, gs *world.GameState) (CommandResult, error) {
	return failure(fmt.Sprintf("You don't have a %s to drop.", cmd.Target), "", gs), nil
}

func (e *Engine) use(_ context.Context, cmd command.ParsedCommand, gs *world.GameState) (CommandResult, error) {
	return failure(fmt.Sprintf("You don't know how to use the %s.", cmd.Target), "", gs), nil
}
