package command

import (
	"errors"
	"fmt"
	"strings"
)

// Action is the canonical verb of a parsed command.
type Action string

const (
	ActionMove      Action = "move"
	ActionLook      Action = "look"
	ActionExamine   Action = "examine"
	ActionTake      Action = "take"
	ActionDrop      Action = "drop"
	ActionUse       Action = "use"
	ActionTalk      Action = "talk"
	ActionInventory Action = "inventory"
	ActionHelp      Action = "help"
)

// Direction is a canonical compass direction.
type Direction string

const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

// ParsedCommand is the structured form of a player's free-text input.
type ParsedCommand struct {
	Action    Action    `json:"action"`
	Target    string    `json:"target,omitempty"`
	Object    string    `json:"object,omitempty"`
	Direction Direction `json:"direction,omitempty"`
	Original  string    `json:"original"`
}

// ParseError reports input that could not be turned into a command.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return e.Reason
}

// IsParseError reports whether err is (or wraps) a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

var directions = map[string]Direction{
	"north": North,
	"n":     North,
	"south": South,
	"s":     South,
	"east":  East,
	"e":     East,
	"west":  West,
	"w":     West,
}

// rule turns the tokens that follow a verb into a command.
type rule func(input string, args []string) (ParsedCommand, error)

// grammar maps every known verb alias to its rule.
var grammar = map[string]rule{}

func init() {
	register(parseMove, "move", "go", "walk")
	register(parseLook, "look", "l")
	register(requireTarget(ActionExamine, "", "Examine command requires a target"), "examine")
	register(requireTarget(ActionTake, "up", "Take command requires an item"), "take", "get", "pick")
	register(requireTarget(ActionDrop, "", "Drop command requires an item"), "drop")
	register(parseUse, "use")
	register(requireTarget(ActionTalk, "to", "Talk command requires a target"), "talk", "speak")
	register(bare(ActionInventory), "inventory", "inv", "i")
	register(bare(ActionHelp), "help", "h", "?")
}

func register(r rule, verbs ...string) {
	for _, v := range verbs {
		grammar[v] = r
	}
}

// Parse converts free text into a ParsedCommand.
func Parse(input string) (ParsedCommand, error) {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	if len(words) == 0 {
		return ParsedCommand{}, &ParseError{Input: input, Reason: "Empty command"}
	}

	verb, args := words[0], words[1:]

	// A bare direction is an implicit move and wins over any other reading.
	if dir, ok := directions[verb]; ok {
		return ParsedCommand{Action: ActionMove, Direction: dir, Original: input}, nil
	}

	r, ok := grammar[verb]
	if !ok {
		return ParsedCommand{}, &ParseError{Input: input, Reason: fmt.Sprintf("unknown command: %s", verb)}
	}
	return r(input, args)
}

func parseMove(input string, args []string) (ParsedCommand, error) {
	if len(args) == 0 {
		return ParsedCommand{}, &ParseError{Input: input, Reason: "Movement commands require a direction"}
	}
	dir, ok := directions[args[0]]
	if !ok {
		return ParsedCommand{}, &ParseError{Input: input, Reason: fmt.Sprintf("Invalid direction: %s", args[0])}
	}
	return ParsedCommand{Action: ActionMove, Direction: dir, Original: input}, nil
}

func parseLook(input string, args []string) (ParsedCommand, error) {
	if len(args) == 0 {
		return ParsedCommand{Action: ActionLook, Original: input}, nil
	}
	target := strings.Join(skipLeading(args, "at"), " ")
	if target == "" {
		return ParsedCommand{}, &ParseError{Input: input, Reason: "Examine command requires a target"}
	}
	return ParsedCommand{Action: ActionExamine, Target: target, Original: input}, nil
}

func parseUse(input string, args []string) (ParsedCommand, error) {
	if len(args) == 0 {
		return ParsedCommand{}, &ParseError{Input: input, Reason: "Use command requires an item"}
	}

	cmd := ParsedCommand{Action: ActionUse, Original: input}
	// "on" must follow at least one target word to split the phrase.
	for i := 1; i < len(args); i++ {
		if args[i] == "on" {
			cmd.Target = strings.Join(args[:i], " ")
			cmd.Object = strings.Join(args[i+1:], " ")
			return cmd, nil
		}
	}
	cmd.Target = strings.Join(args, " ")
	return cmd, nil
}

// requireTarget builds a rule for verbs that take the remaining words as a
// target, optionally skipping one leading filler word ("pick up", "talk to").
func requireTarget(action Action, filler string, missing string) rule {
	return func(input string, args []string) (ParsedCommand, error) {
		if filler != "" {
			args = skipLeading(args, filler)
		}
		if len(args) == 0 {
			return ParsedCommand{}, &ParseError{Input: input, Reason: missing}
		}
		return ParsedCommand{Action: action, Target: strings.Join(args, " "), Original: input}, nil
	}
}

func bare(action Action) rule {
	return func(input string, _ []string) (ParsedCommand, error) {
		return ParsedCommand{Action: action, Original: input}, nil
	}
}

func skipLeading(args []string, word string) []string {
	if len(args) > 0 && args[0] == word {
		return args[1:]
	}
	return args
}

// HelpText returns the static command reference shown by "help".
func HelpText() string {
	return `Available commands:
Movement: north/n, south/s, east/e, west/w, move [direction]
Interaction: look, examine [target], take [item], drop [item]
Social: talk to [character]
Items: use [item], use [item] on [target], inventory/inv
General: help/?`
}
