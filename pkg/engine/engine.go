// Package engine executes player commands against persisted world state.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jwebster45206/legacy-engine/pkg/command"
	"github.com/jwebster45206/legacy-engine/pkg/generation"
	"github.com/jwebster45206/legacy-engine/pkg/storage"
	"github.com/jwebster45206/legacy-engine/pkg/world"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultPlayerName is used when a command arrives without a player.
const DefaultPlayerName = "player"

const msgPersistenceFailure = "Something went wrong while saving your progress. Please try again."

type handlerFunc func(e *Engine, ctx context.Context, cmd command.ParsedCommand, gs *world.GameState) (CommandResult, error)

var handlers = map[command.Action]handlerFunc{
	command.ActionMove:      (*Engine).move,
	command.ActionLook:      (*Engine).look,
	command.ActionExamine:   (*Engine).examine,
	command.ActionTake:      (*Engine).take,
	command.ActionDrop:      (*Engine).drop,
	command.ActionUse:       (*Engine).use,
	command.ActionTalk:      (*Engine).talk,
	command.ActionInventory: (*Engine).inventory,
	command.ActionHelp:      (*Engine).help,
}

// Engine is safe for concurrent use; all durable state lives in the store.
type Engine struct {
	store        storage.Storage
	gen          *generation.Generator
	logger       *slog.Logger
	defaultWorld string
	tracer       trace.Tracer
}

type Option func(*Engine)

// WithDefaultWorld sets the world new players start in.
func WithDefaultWorld(name string) Option {
	return func(e *Engine) {
		if name != "" {
			e.defaultWorld = name
		}
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		e.tracer = t
	}
}

func New(store storage.Storage, gen *generation.Generator, logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:        store,
		gen:          gen,
		logger:       logger,
		defaultWorld: world.DefaultWorld,
		tracer:       otel.Tracer("github.com/jwebster45206/legacy-engine/pkg/engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExecuteCommand parses text and executes it for playerID.
func (e *Engine) ExecuteCommand(ctx context.Context, text string, playerID string) CommandResult {
	cmd, err := command.Parse(text)
	if err != nil {
		var pe *command.ParseError
		if errors.As(err, &pe) {
			e.logger.Debug("Command rejected by parser", "input", text, "reason", pe.Reason)
			return failure(pe.Reason, ErrCodeParse, e.snapshotState(ctx, playerID))
		}
		return failure(err.Error(), ErrCodeParse, e.snapshotState(ctx, playerID))
	}
	return e.Execute(ctx, cmd, playerID)
}

// Execute runs a parsed command. It never panics; failures come back as a
// CommandResult carrying freshly reloaded state.
func (e *Engine) Execute(ctx context.Context, cmd command.ParsedCommand, playerID string) (result CommandResult) {
	playerID = normalizePlayer(playerID)

	ctx, span := e.tracer.Start(ctx, "engine.execute", trace.WithAttributes(
		attribute.String("command.action", string(cmd.Action)),
		attribute.String("player", playerID),
	))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Command handler panicked", "action", cmd.Action, "player", playerID, "panic", r)
			span.SetStatus(codes.Error, "panic")
			result = failure("An unexpected error occurred.", ErrCodeInternal, e.bestEffortState(ctx, playerID))
		}
	}()

	handler, ok := handlers[cmd.Action]
	if !ok {
		return failure(fmt.Sprintf("Unknown action: %s", cmd.Action), ErrCodeUnknownAction, e.snapshotState(ctx, playerID))
	}

	// help needs no state of its own.
	if cmd.Action == command.ActionHelp {
		help, _ := handler(e, ctx, cmd, e.snapshotState(ctx, playerID))
		return help
	}

	gs, err := e.LoadGameState(ctx, playerID)
	if err != nil {
		return e.persistenceFailure(ctx, span, playerID, err)
	}

	result, err = handler(e, ctx, cmd, gs)
	if err != nil {
		return e.persistenceFailure(ctx, span, playerID, err)
	}

	span.SetAttributes(attribute.Bool("command.success", result.Success))
	return result
}

func (e *Engine) persistenceFailure(ctx context.Context, span trace.Span, playerID string, err error) CommandResult {
	e.logger.Error("Command failed to persist", "player", playerID, "error", err)
	span.RecordError(err)
	span.SetStatus(codes.Error, "persistence failure")

	code := ErrCodePersistence
	if !IsPersistenceError(err) {
		code = ErrCodeInternal
	}
	return failure(msgPersistenceFailure, code, e.bestEffortState(ctx, playerID))
}

// bestEffortState reloads state, falling back to the stub state.
func (e *Engine) bestEffortState(ctx context.Context, playerID string) *world.GameState {
	gs, err := e.LoadGameState(ctx, normalizePlayer(playerID))
	if err != nil {
		e.logger.Warn("Could not reload game state", "player", playerID, "error", err)
		return world.StubGameState()
	}
	return gs
}

// snapshotState reads current state without creating or generating
// anything. Unknown players and unreadable stores yield the stub state.
func (e *Engine) snapshotState(ctx context.Context, playerID string) *world.GameState {
	player, err := e.store.GetPlayer(ctx, normalizePlayer(playerID))
	if err != nil {
		e.logger.Warn("Could not read game state", "player", playerID, "error", err)
		return world.StubGameState()
	}
	if player == nil {
		return world.StubGameState()
	}

	place, err := e.PeekPlace(ctx, player.Location)
	if err != nil {
		e.logger.Warn("Could not read current place", "player", playerID, "error", err)
		return world.StubGameState()
	}
	return &world.GameState{Player: player, CurrentLocation: place}
}

// LoadGameState loads the player and their current place, creating either
// when absent.
func (e *Engine) LoadGameState(ctx context.Context, playerID string) (*world.GameState, error) {
	playerID = normalizePlayer(playerID)

	player, err := e.store.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, persistErr("load player", err)
	}
	if player == nil {
		player = world.NewPlayer(playerID, e.defaultWorld)
		if err := e.store.SavePlayer(ctx, player); err != nil {
			return nil, persistErr("create player", err)
		}
		e.logger.Info("Created new player", "player", playerID, "world", player.Location.World)
	}

	place, err := e.LoadPlace(ctx, player.Location, player.History)
	if err != nil {
		return nil, err
	}

	return &world.GameState{Player: player, CurrentLocation: place}, nil
}

// LoadPlace returns the place at c. Unexplored coordinates are filled with
// generated content, seeded by history, and persisted before returning.
func (e *Engine) LoadPlace(ctx context.Context, c world.Coordinates, history []string) (*world.Place, error) {
	place, err := e.store.GetPlace(ctx, c)
	if err != nil {
		return nil, persistErr("load place", err)
	}
	if place != nil {
		return place, nil
	}

	out := e.gen.GenerateLocation(ctx, c, history)
	place = out.Value
	if err := e.store.SavePlace(ctx, place); err != nil {
		return nil, persistErr("save place", err)
	}

	e.logger.Info("Discovered new location",
		"coordinates", c.Key(),
		"name", place.Name,
		"source", out.Source)
	return place, nil
}

// PeekPlace returns the stored place at c, or a placeholder when the
// coordinates are unexplored. It never generates or persists anything.
func (e *Engine) PeekPlace(ctx context.Context, c world.Coordinates) (*world.Place, error) {
	place, err := e.store.GetPlace(ctx, c)
	if err != nil {
		return nil, persistErr("load place", err)
	}
	if place == nil {
		return world.NewPlaceholder(c), nil
	}
	return place, nil
}

// appendHistory records entries in the store and on the in-memory player.
func (e *Engine) appendHistory(ctx context.Context, p *world.Player, entries ...string) error {
	if err := e.store.AppendToHistory(ctx, p.Name, entries...); err != nil {
		return persistErr("append history", err)
	}
	p.History = append(p.History, entries...)
	return nil
}

func normalizePlayer(playerID string) string {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return DefaultPlayerName
	}
	return playerID
}
