package engine

import (
	"errors"
	"fmt"

	"github.com/jwebster45206/legacy-engine/pkg/world"
)

// Error codes carried in CommandResult.Error.
const (
	ErrCodeParse         = "parse_error"
	ErrCodeNotFound      = "not_found"
	ErrCodePersistence   = "persistence_error"
	ErrCodeUnknownAction = "unknown_action"
	ErrCodeInternal      = "internal_error"
)

// CommandResult is the response to one player command. GameState is always
// set, even on failure.
type CommandResult struct {
	Success   bool             `json:"success"`
	Message   string           `json:"message"`
	GameState *world.GameState `json:"gameState"`
	Error     string           `json:"error,omitempty"`
}

// PersistenceError wraps a store failure with the operation that hit it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsPersistenceError reports whether err is (or wraps) a *PersistenceError.
func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

func persistErr(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

func success(message string, gs *world.GameState) CommandResult {
	return CommandResult{Success: true, Message: message, GameState: gs}
}

func failure(message, code string, gs *world.GameState) CommandResult {
	return CommandResult{Success: false, Message: message, GameState: gs, Error: code}
}
