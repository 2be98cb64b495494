package world

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/legacy-engine/pkg/command"
	"golang.org/x/text/cases"
)

// DefaultWorld is the world new players start in.
const DefaultWorld = "main"

// Coordinates address a single Place. Origin (0,0) is the starting location.
type Coordinates struct {
	World string `json:"world" yaml:"world"`
	X     int    `json:"x" yaml:"x"`
	Y     int    `json:"y" yaml:"y"`
}

var deltas = map[command.Direction][2]int{
	command.North: {0, 1},
	command.South: {0, -1},
	command.East:  {1, 0},
	command.West:  {-1, 0},
}

// Move returns the neighbouring coordinates one step in dir.
// Unknown directions return c unchanged.
func (c Coordinates) Move(dir command.Direction) Coordinates {
	d, ok := deltas[dir]
	if !ok {
		return c
	}
	return Coordinates{World: c.World, X: c.X + d[0], Y: c.Y + d[1]}
}

// Key is the storage key of the place at c.
func (c Coordinates) Key() string {
	return fmt.Sprintf("%s:%d,%d", c.World, c.X, c.Y)
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%s (%d, %d)", c.World, c.X, c.Y)
}

var folder = cases.Fold()

// Key normalises an entity name into its case-insensitive storage key.
func Key(name string) string {
	return folder.String(strings.TrimSpace(name))
}

// ContainsFold reports whether s contains substr, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(Key(s), Key(substr))
}
