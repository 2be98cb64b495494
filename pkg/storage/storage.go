package storage

import (
	"context"
	"errors"

	"github.com/jwebster45206/legacy-engine/pkg/world"
)

// ErrNotFound is returned by operations that require an existing record.
var ErrNotFound = errors.New("record not found")

// Storage is the key-addressed gateway to persisted world and player state.
// Get methods return (nil, nil) when the record does not exist.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Players are keyed by case-folded name. SavePlayer never rewrites
	// history; history only grows through AppendToHistory.
	GetPlayer(ctx context.Context, name string) (*world.Player, error)
	SavePlayer(ctx context.Context, p *world.Player) error
	AppendToHistory(ctx context.Context, name string, entries ...string) error

	// Places are keyed by coordinates
	GetPlace(ctx context.Context, c world.Coordinates) (*world.Place, error)
	SavePlace(ctx context.Context, p *world.Place) error

	// NPCs and items are keyed by case-folded name
	GetNPC(ctx context.Context, name string) (*world.NPC, error)
	SaveNPC(ctx context.Context, n *world.NPC) error
	GetItem(ctx context.Context, name string) (*world.GameItem, error)
	SaveItem(ctx context.Context, i *world.GameItem) error
}
